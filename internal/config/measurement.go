package config

import "time"

// Measurement — параметры съёма и политика выбора диапазонов источника.
// Интервалы заданы секундами, как в конфиге оригинальной методики.
type Measurement struct {
	SettleS         float64 `yaml:"settle_s" env:"SETTLE_S" validate:"gte=0"`
	NPLC            float64 `yaml:"nplc_3458" env:"NPLC_3458" validate:"gt=0"`
	SamplesPerPoint int     `yaml:"samples_per_point" env:"SAMPLES_PER_POINT" validate:"gte=1"`
	SampleDelayS    float64 `yaml:"sample_delay_s" env:"SAMPLE_DELAY_S" validate:"gte=0"`

	// Руководство задаёт запас 1.2x к уставке и потолок 200 V, но
	// однозначно не говорит, входит ли выбор диапазона в критерий
	// годности. Поэтому политика настраиваемая.
	RangeHeadroom float64 `yaml:"range_headroom" env:"RANGE_HEADROOM" validate:"gte=1"`
	RangeCeilingV float64 `yaml:"range_ceiling_v" env:"RANGE_CEILING_V" validate:"gt=0"`
}

func (m Measurement) Settle() time.Duration {
	return time.Duration(m.SettleS * float64(time.Second))
}

func (m Measurement) SampleDelay() time.Duration {
	return time.Duration(m.SampleDelayS * float64(time.Second))
}
