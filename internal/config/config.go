package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"smuverify/internal/domain"
	"smuverify/pkg/errcodes"
)

const envPrefix = "SMUVERIFY_"

// Config — полный конфиг прогона. Порядок источников: значения по
// умолчанию, поверх них YAML файл, поверх него переменные окружения
// SMUVERIFY_*, затем валидация целиком.
type Config struct {
	Bus         Bus         `yaml:"bus"`
	Instruments Instruments `yaml:"instruments"`
	Measurement Measurement `yaml:"measurement"`

	// Источником напряжения в проверке измерения напряжения работает
	// калибратор 5720A вместо собственного источника DUT.
	UseCalibratorSource bool `yaml:"use_calibrator_source" env:"USE_CALIBRATOR_SOURCE"`

	// Действительные значения эталонных резисторов 5156 по ключам
	// "100M", "1G", "10G", "100G". Пропущенный ключ = номинал.
	StandardsActualOhm map[string]float64 `yaml:"standards_actual_ohm"`
}

// Default — параметры съёма из руководства; адреса приборов обязаны
// прийти из файла либо окружения.
func Default() Config {
	return Config{
		Bus: Bus{
			DialTimeoutMs: 5000,
			TimeoutMs:     15000,
		},
		Instruments: Instruments{},
		Measurement: Measurement{
			SettleS:         1.0,
			NPLC:            10,
			SamplesPerPoint: 5,
			SampleDelayS:    0.2,
			RangeHeadroom:   1.2,
			RangeCeilingV:   200,
		},
		UseCalibratorSource: false,
		StandardsActualOhm:  map[string]float64{},
	}
}

func Load(path string) (Config, error) {
	_ = godotenv.Load()

	config := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&config, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, domain.WrapError(err, errcodes.ValidationError, "invalid config")
	}

	return config, nil
}
