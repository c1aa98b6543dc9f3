package verify_test

import (
	"context"
	"errors"

	"smuverify/internal/domain/value"
)

// Скриптованные приборы: каждое чтение отдаёт следующее значение из
// заранее заданной серии.

type script struct {
	values []float64
	idx    int
}

func (s *script) next() (float64, error) {
	if s.idx >= len(s.values) {
		return 0, errors.New("no more scripted readings")
	}

	v := s.values[s.idx]
	s.idx++

	return v, nil
}

type sourceCall struct {
	Value float64
	Range float64
}

type fakeSMU struct {
	outputLog    []bool
	sourceVLog   []sourceCall
	sourceILog   []sourceCall
	senseLog     []value.Function
	reads        script
	setpoints    script
	setpointErr  error
	outputErr    error
	onRead       func()
}

func (f *fakeSMU) Output(_ context.Context, on bool) error {
	if f.outputErr != nil && on {
		return f.outputErr
	}

	f.outputLog = append(f.outputLog, on)

	return nil
}

func (f *fakeSMU) SourceVoltage(_ context.Context, volts, rng float64) error {
	f.sourceVLog = append(f.sourceVLog, sourceCall{Value: volts, Range: rng})
	return nil
}

func (f *fakeSMU) SourceCurrent(_ context.Context, amps, rng float64) error {
	f.sourceILog = append(f.sourceILog, sourceCall{Value: amps, Range: rng})
	return nil
}

func (f *fakeSMU) SourceCurrentSetpoint(context.Context) (float64, error) {
	if f.setpointErr != nil {
		return 0, f.setpointErr
	}

	return f.setpoints.next()
}

func (f *fakeSMU) SenseFunction(_ context.Context, fn value.Function) error {
	f.senseLog = append(f.senseLog, fn)
	return nil
}

func (f *fakeSMU) Read(context.Context) (float64, error) {
	if f.onRead != nil {
		f.onRead()
	}

	return f.reads.next()
}

type fakeDMM struct {
	dcvLog  []float64
	dciLog  []float64
	reads   script
	readErr error
	onRead  func()
}

func (f *fakeDMM) ConfigDCV(_ context.Context, expected, _ float64) error {
	f.dcvLog = append(f.dcvLog, expected)
	return nil
}

func (f *fakeDMM) ConfigDCI(_ context.Context, expected, _ float64) error {
	f.dciLog = append(f.dciLog, expected)
	return nil
}

func (f *fakeDMM) Read(context.Context) (float64, error) {
	if f.onRead != nil {
		f.onRead()
	}

	if f.readErr != nil {
		return 0, f.readErr
	}

	return f.reads.next()
}

type fakeCalibrator struct {
	operateCalls int
	standbyCalls int
	outs         []float64
}

func (f *fakeCalibrator) Operate(context.Context) error {
	f.operateCalls++
	return nil
}

func (f *fakeCalibrator) Standby(context.Context) error {
	f.standbyCalls++
	return nil
}

func (f *fakeCalibrator) OutputVoltage(_ context.Context, volts float64) error {
	f.outs = append(f.outs, volts)
	return nil
}

type fakePrompter struct {
	messages []string
	err      error
}

func (f *fakePrompter) Prompt(_ context.Context, message string) error {
	if f.err != nil {
		return f.err
	}

	f.messages = append(f.messages, message)

	return nil
}

// repeat строит серию из value, повторённого n раз.
func repeat(v float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v
	}

	return xs
}

func concat(series ...[]float64) []float64 {
	var out []float64
	for _, s := range series {
		out = append(out, s...)
	}

	return out
}
