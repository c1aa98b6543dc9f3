package instrument

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"smuverify/internal/domain"
	"smuverify/internal/domain/value"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/metrics"
)

// Переключение SENS:FUNC у 6430 требует выдержки перед выключением
// парной функции.
const senseFuncSettle = 500 * time.Millisecond

// K6430 — поверяемый источник-измеритель Keithley 6430.
type K6430 struct {
	bus Bus
}

func NewK6430(bus Bus) *K6430 {
	return &K6430{bus: bus}
}

func (k *K6430) Reset(ctx context.Context) error {
	if err := k.bus.Command(ctx, "*RST"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	if err := k.bus.Command(ctx, "*CLS"); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	return nil
}

func (k *K6430) Identify(ctx context.Context) (string, error) {
	idn, err := k.bus.Query(ctx, "*IDN?")
	if err != nil {
		return "", fmt.Errorf("idn: %w", err)
	}

	return strings.TrimSpace(idn), nil
}

func (k *K6430) Output(ctx context.Context, on bool) error {
	state := "OFF"
	if on {
		state = "ON"
	}

	return k.bus.Command(ctx, ":OUTP "+state)
}

// SourceVoltage задаёт функцию источника, диапазон и уставку напряжения.
func (k *K6430) SourceVoltage(ctx context.Context, volts, rng float64) error {
	if err := k.bus.Command(ctx, ":SOUR:FUNC VOLT"); err != nil {
		return err
	}

	if err := k.bus.Command(ctx, ":SOUR:VOLT:RANG "+formatFloat(rng)); err != nil {
		return err
	}

	return k.bus.Command(ctx, ":SOUR:VOLT "+formatFloat(volts))
}

// SourceCurrent задаёт функцию источника, диапазон и уставку тока.
func (k *K6430) SourceCurrent(ctx context.Context, amps, rng float64) error {
	if err := k.bus.Command(ctx, ":SOUR:FUNC CURR"); err != nil {
		return err
	}

	if err := k.bus.Command(ctx, ":SOUR:CURR:RANG "+formatFloat(rng)); err != nil {
		return err
	}

	return k.bus.Command(ctx, ":SOUR:CURR "+formatFloat(amps))
}

func (k *K6430) SourceVoltageSetpoint(ctx context.Context) (float64, error) {
	return k.querySetpoint(ctx, ":SOUR:VOLT?")
}

func (k *K6430) SourceCurrentSetpoint(ctx context.Context) (float64, error) {
	return k.querySetpoint(ctx, ":SOUR:CURR?")
}

func (k *K6430) querySetpoint(ctx context.Context, cmd string) (float64, error) {
	raw, err := k.bus.Query(ctx, cmd)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ParseFault,
			fmt.Sprintf("k6430: setpoint reply %q", raw))
	}

	return v, nil
}

// SenseFunction включает измерительную функцию и гасит парную.
func (k *K6430) SenseFunction(ctx context.Context, fn value.Function) error {
	var on, off string

	switch fn {
	case value.FunctionVoltage:
		on, off = "VOLT", "CURR"
	case value.FunctionCurrent:
		on, off = "CURR", "VOLT"
	default:
		return domain.NewError(errcodes.InstrumentFault,
			fmt.Sprintf("k6430: sense function %q", fn))
	}

	if err := k.bus.Command(ctx, ":SENS:FUNC:ON '"+on+"'"); err != nil {
		return err
	}

	if err := pause(ctx, senseFuncSettle); err != nil {
		return err
	}

	return k.bus.Command(ctx, ":FUNC:OFF '"+off+"'")
}

func (k *K6430) SenseRange(ctx context.Context, fn value.Function, rng float64) error {
	switch fn {
	case value.FunctionVoltage:
		return k.bus.Command(ctx, ":SENS:VOLT:RANG "+formatFloat(rng))
	case value.FunctionCurrent:
		return k.bus.Command(ctx, ":SENS:CURR:RANG "+formatFloat(rng))
	default:
		return domain.NewError(errcodes.InstrumentFault,
			fmt.Sprintf("k6430: sense range function %q", fn))
	}
}

// Read запускает одиночное измерение. READ? отвечает набором полей через
// запятую, показание — первое поле.
func (k *K6430) Read(ctx context.Context) (float64, error) {
	raw, err := k.bus.Query(ctx, ":READ?")
	if err != nil {
		return 0, err
	}

	metrics.SamplesTaken.WithLabelValues(NameK6430).Inc()

	field, _, _ := strings.Cut(raw, ",")

	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ParseFault,
			fmt.Sprintf("k6430: reading %q", raw))
	}

	return v, nil
}

// Fetch возвращает последнее измеренное значение без нового запуска.
func (k *K6430) Fetch(ctx context.Context) (float64, error) {
	raw, err := k.bus.Query(ctx, ":FETC?")
	if err != nil {
		return 0, err
	}

	field, _, _ := strings.Cut(raw, ",")

	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.ParseFault,
			fmt.Sprintf("k6430: fetch reply %q", raw))
	}

	return v, nil
}

func (k *K6430) Close() error {
	return k.bus.Close()
}
