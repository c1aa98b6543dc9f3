package instrument

import (
	"context"
	"strings"
)

// Fluke5720A — калибратор, в прогоне работает вспомогательным источником
// напряжения. Командный язык серии 5700A/5720A: STBY/OPER и OUT с явной
// единицей.
type Fluke5720A struct {
	bus Bus
}

func NewFluke5720A(bus Bus) *Fluke5720A {
	return &Fluke5720A{bus: bus}
}

// Reset сбрасывает прибор и уводит выход в standby. Все шаги best-effort:
// калибратор опционален и не должен валить подготовку прогона.
func (f *Fluke5720A) Reset(ctx context.Context) error {
	tryCommand(ctx, f.bus, "*RST")
	tryCommand(ctx, f.bus, "*CLS")
	tryCommand(ctx, f.bus, "STBY")

	return ctx.Err()
}

// Identify пробует варианты запроса идентификации по старшинству прошивок.
func (f *Fluke5720A) Identify(ctx context.Context) (string, error) {
	for _, cmd := range []string{"*IDN?", "IDN?", "ID?"} {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		idn, err := f.bus.Query(ctx, cmd)
		if err != nil {
			continue
		}

		if idn = strings.TrimSpace(idn); idn != "" {
			return idn, nil
		}
	}

	return "", nil
}

func (f *Fluke5720A) Standby(ctx context.Context) error {
	return f.bus.Command(ctx, "STBY")
}

func (f *Fluke5720A) Operate(ctx context.Context) error {
	return f.bus.Command(ctx, "OPER")
}

func (f *Fluke5720A) OutputVoltage(ctx context.Context, volts float64) error {
	return f.bus.Command(ctx, "OUT "+formatFloat(volts)+" V")
}

func (f *Fluke5720A) OutputCurrent(ctx context.Context, amps float64) error {
	return f.bus.Command(ctx, "OUT "+formatFloat(amps)+" A")
}

func (f *Fluke5720A) OutputResistance(ctx context.Context, ohms float64) error {
	return f.bus.Command(ctx, "OUT "+formatFloat(ohms)+" OHM")
}

func (f *Fluke5720A) Close() error {
	return f.bus.Close()
}
