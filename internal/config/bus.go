package config

import "time"

// Bus — таймауты сокетных подключений к приборам. Единый бюджет на все
// три шины: других таймаутов выше транспорта в системе нет.
type Bus struct {
	DialTimeoutMs int `yaml:"dial_timeout_ms" env:"BUS_DIAL_TIMEOUT_MS" validate:"gt=0"`
	TimeoutMs     int `yaml:"timeout_ms" env:"BUS_TIMEOUT_MS" validate:"gt=0"`
}

func (b Bus) DialTimeout() time.Duration {
	return time.Duration(b.DialTimeoutMs) * time.Millisecond
}

func (b Bus) IOTimeout() time.Duration {
	return time.Duration(b.TimeoutMs) * time.Millisecond
}
