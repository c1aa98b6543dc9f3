package instrument_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"smuverify/internal/domain"
	"smuverify/internal/domain/value"
	"smuverify/internal/infrastructure/instrument"
	"smuverify/pkg/errcodes"
)

// fakeBus пишет команды в журнал и отвечает по таблице. Запрос без ответа
// в таблице считается неподдержанным прибором.
type fakeBus struct {
	commands []string
	replies  map[string]string
	lines    []string
	lineIdx  int
	cmdErr   map[string]error
}

func (b *fakeBus) Name() string { return "fake" }

func (b *fakeBus) Command(_ context.Context, cmd string) error {
	if err := b.cmdErr[cmd]; err != nil {
		return err
	}

	b.commands = append(b.commands, cmd)

	return nil
}

func (b *fakeBus) Query(ctx context.Context, cmd string) (string, error) {
	if err := b.Command(ctx, cmd); err != nil {
		return "", err
	}

	reply, ok := b.replies[cmd]
	if !ok {
		return "", fmt.Errorf("unsupported query %q", cmd)
	}

	return reply, nil
}

func (b *fakeBus) ReadLine(context.Context) (string, error) {
	if b.lineIdx >= len(b.lines) {
		return "", errors.New("no more lines")
	}

	line := b.lines[b.lineIdx]
	b.lineIdx++

	return line, nil
}

func (b *fakeBus) Close() error { return nil }

func TestK6430SourceAndOutput(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{}
	smu := instrument.NewK6430(bus)

	rq.NoError(smu.SourceVoltage(ctx, 0.2, 0.24))
	rq.NoError(smu.SourceCurrent(ctx, 1e-6, 1.2e-6))
	rq.NoError(smu.Output(ctx, true))
	rq.NoError(smu.Output(ctx, false))

	rq.Equal([]string{
		":SOUR:FUNC VOLT",
		":SOUR:VOLT:RANG 0.24",
		":SOUR:VOLT 0.2",
		":SOUR:FUNC CURR",
		":SOUR:CURR:RANG 1.2e-06",
		":SOUR:CURR 1e-06",
		":OUTP ON",
		":OUTP OFF",
	}, bus.commands)
}

func TestK6430ResetAndIdentify(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{replies: map[string]string{
		"*IDN?": "KEITHLEY INSTRUMENTS INC.,MODEL 6430,1234567,C33 ",
	}}
	smu := instrument.NewK6430(bus)

	rq.NoError(smu.Reset(ctx))

	idn, err := smu.Identify(ctx)
	rq.NoError(err)
	rq.Equal("KEITHLEY INSTRUMENTS INC.,MODEL 6430,1234567,C33", idn)

	rq.Equal([]string{"*RST", "*CLS", "*IDN?"}, bus.commands)
}

func TestK6430Read(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{replies: map[string]string{
		":READ?": "+2.000013E-01,+9.910000E+37,+9.910000E+37,+1.3E+4,+2.1E+4",
	}}
	smu := instrument.NewK6430(bus)

	v, err := smu.Read(ctx)
	rq.NoError(err)
	rq.InDelta(0.2000013, v, 1e-12, "reading is the first comma-separated field")
}

func TestK6430ReadParseFault(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{replies: map[string]string{":READ?": "ERROR -113"}}
	smu := instrument.NewK6430(bus)

	_, err := smu.Read(ctx)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.ParseFault, code)
}

func TestK6430SourceCurrentSetpoint(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{replies: map[string]string{":SOUR:CURR?": " 1.000000E-12 "}}
	smu := instrument.NewK6430(bus)

	v, err := smu.SourceCurrentSetpoint(ctx)
	rq.NoError(err)
	rq.InDelta(1e-12, v, 1e-24)
}

func TestK6430SenseFunction(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{}
	smu := instrument.NewK6430(bus)

	rq.NoError(smu.SenseFunction(ctx, value.FunctionVoltage))
	rq.NoError(smu.SenseFunction(ctx, value.FunctionCurrent))

	rq.Equal([]string{
		":SENS:FUNC:ON 'VOLT'",
		":FUNC:OFF 'CURR'",
		":SENS:FUNC:ON 'CURR'",
		":FUNC:OFF 'VOLT'",
	}, bus.commands)

	err := smu.SenseFunction(ctx, value.Function("RES"))
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.InstrumentFault, code)
}

func TestHP3458AConfigDCV(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{}
	dmm := instrument.NewHP3458A(bus)

	rq.NoError(dmm.ConfigDCV(ctx, 0.2, 10))

	rq.Equal([]string{
		"PRESET NORM",
		"DCV",
		"NDIG 8",
		"TRIG SGL",
		"RANGE 1.2",
		"NPLC 10",
		"AZERO ON",
		"FIXEDZ OFF",
	}, bus.commands)
}

func TestHP3458AConfigDCIRangeLadder(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	cases := []struct {
		expected float64
		rangeCmd string
	}{
		{expected: 100e-9, rangeCmd: "RANGE 1.2e-07"},
		{expected: 1e-6, rangeCmd: "RANGE 1.2e-06"},
		{expected: 100e-6, rangeCmd: "RANGE 0.00012"},
		{expected: 10e-3, rangeCmd: "RANGE 0.012"},
		{expected: 0.1, rangeCmd: "RANGE 0.12"},
		{expected: 0.5, rangeCmd: "RANGE 1.05"},
	}

	for _, tc := range cases {
		bus := &fakeBus{}
		dmm := instrument.NewHP3458A(bus)

		rq.NoError(dmm.ConfigDCI(ctx, tc.expected, 10))
		rq.Contains(bus.commands, tc.rangeCmd)
		rq.Contains(bus.commands, "FIXEDZ ON")
		rq.Contains(bus.commands, "DCI")
	}
}

func TestHP3458ARead(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{lines: []string{" 2.000013E-01"}}
	dmm := instrument.NewHP3458A(bus)

	v, err := dmm.Read(ctx)
	rq.NoError(err)
	rq.InDelta(0.2000013, v, 1e-12)
	rq.Equal([]string{"TRIG SGL"}, bus.commands)
}

func TestHP3458AReadNoNumericToken(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{lines: []string{"OVLD"}}
	dmm := instrument.NewHP3458A(bus)

	_, err := dmm.Read(ctx)
	rq.Error(err)
	rq.ErrorContains(err, `no numeric token in "OVLD"`)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.ParseFault, code)
}

func TestHP3458AIdentify(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	t.Run("first supported query wins", func(t *testing.T) {
		bus := &fakeBus{replies: map[string]string{"IDN?": "HP3458A,REV 9"}}
		dmm := instrument.NewHP3458A(bus)

		idn, err := dmm.Identify(ctx)
		rq.NoError(err)
		rq.Equal("HP3458A,REV 9", idn)
	})

	t.Run("silent instrument falls back to the model name", func(t *testing.T) {
		bus := &fakeBus{}
		dmm := instrument.NewHP3458A(bus)

		idn, err := dmm.Identify(ctx)
		rq.NoError(err)
		rq.Equal("HP3458A", idn)
	})
}

func TestHP3458AResetSurvivesOldFirmware(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{cmdErr: map[string]error{"END ALWAYS": errors.New("syntax error")}}
	dmm := instrument.NewHP3458A(bus)

	rq.NoError(dmm.Reset(ctx))
	rq.Equal([]string{"PRESET NORM", "AZERO ON"}, bus.commands)
}

func TestFluke5720A(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	bus := &fakeBus{cmdErr: map[string]error{"*RST": errors.New("nak")}}
	cal := instrument.NewFluke5720A(bus)

	rq.NoError(cal.Reset(ctx), "reset is best-effort")
	rq.NoError(cal.Operate(ctx))
	rq.NoError(cal.OutputVoltage(ctx, 0.2))
	rq.NoError(cal.OutputCurrent(ctx, 1e-3))
	rq.NoError(cal.OutputResistance(ctx, 1e9))
	rq.NoError(cal.Standby(ctx))

	rq.Equal([]string{
		"*CLS",
		"STBY",
		"OPER",
		"OUT 0.2 V",
		"OUT 0.001 A",
		"OUT 1e+09 OHM",
		"STBY",
	}, bus.commands)
}
