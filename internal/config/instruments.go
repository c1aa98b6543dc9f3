package config

// Instruments — адреса приборов в виде host:port (raw socket LXI либо
// GPIB-Ethernet шлюз). Калибратор опционален: пустой адрес означает,
// что 5720A на стенде нет.
type Instruments struct {
	SMU        string `yaml:"k6430" env:"K6430_ADDRESS" validate:"required,hostname_port"`
	DMM        string `yaml:"hp3458a" env:"HP3458A_ADDRESS" validate:"required,hostname_port"`
	Calibrator string `yaml:"fluke5720a" env:"FLUKE5720A_ADDRESS" validate:"omitempty,hostname_port"`
}

func (i Instruments) HasCalibrator() bool {
	return i.Calibrator != ""
}
