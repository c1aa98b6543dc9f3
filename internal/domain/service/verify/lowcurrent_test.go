package verify_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/service/verify"
	"smuverify/internal/domain/value"
)

// Номиналы строк 18-11/18-13 и напряжения, дающие ровно номинальный ток
// на аттестованном (100GΩ → 99.8GΩ) и номинальных остальных резисторах.
//
//nolint:gochecknoglobals
var (
	lowCurrentNominals = []float64{1e-12, 10e-12, 100e-12, 1e-9, 10e-9, 100e-9}
	lowCurrentVolts    = []float64{0.0998, 0.998, 1.0, 1.0, 10.0, 10.0}
)

func lowCurrentStandards() entity.StandardsMap {
	return entity.StandardsMap{"100G": 99.8e9}
}

func TestPreampLowCurrentOutput(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	// Первая строка: на резисторе 1.2 V вместо ~0.1 V, точка обязана упасть.
	dmm := &fakeDMM{reads: script{values: concat(
		repeat(1.2, 3),
		repeat(0.998, 3),
		repeat(1.0, 3),
		repeat(1.0, 3),
		repeat(10.0, 3),
		repeat(10.0, 3),
	)}}
	smu := &fakeSMU{setpoints: script{values: lowCurrentNominals}}
	prompter := &fakePrompter{}

	params := testParams()
	params.Standards = lowCurrentStandards()

	svc := verify.NewService(smu, dmm, prompter).WithParams(params)

	results, err := svc.PreampLowCurrentOutput(ctx)
	rq.NoError(err)
	rq.Len(results, 6)

	first := results[0]
	rq.Equal(verify.TestPreampOutILow, first.Test)
	rq.Equal("1pA", first.RangeName)
	rq.InDelta(1e-12, first.ActualSet, 1e-24)
	rq.InDelta(1.2/99.8e9, first.DMMMean, 1e-22)
	rq.Zero(first.DMMStdev)
	rq.True(math.IsNaN(first.DUTMean))
	rq.True(math.IsNaN(first.DUTStdev))
	rq.InDelta(0.9795e-12, first.Low, 1e-24)
	rq.InDelta(1.0205e-12, first.High, 1e-24)
	rq.Equal(value.UnitAmpere, first.Unit)
	rq.Equal(value.VerdictFail, first.Verdict, "12 pA computed current cannot fit the 1 pA band")
	rq.Equal(&entity.Standard{Key: "100G", NominalOhm: 100e9, ActualOhm: 99.8e9}, first.Std)

	for _, point := range results[1:] {
		rq.Equal(value.VerdictPass, point.Verdict)
	}

	// Неаттестованный резистор берётся по номиналу.
	rq.Equal(&entity.Standard{Key: "10G", NominalOhm: 10e9, ActualOhm: 10e9}, results[2].Std)

	rq.Len(prompter.messages, 7)
	rq.Contains(prompter.messages[1], "1pA")
	rq.Contains(prompter.messages[1], "5156")

	rq.Equal([]float64{20.0}, dmm.dcvLog, "DMM is configured once for the 20 V sense range")
	rq.Empty(dmm.dciLog)
	rq.Equal([]bool{true, false}, smu.outputLog)

	rq.Len(smu.sourceILog, 6)

	for i, call := range smu.sourceILog {
		rq.InDelta(lowCurrentNominals[i], call.Value, 1e-24)
		rq.InDelta(lowCurrentNominals[i]*1.2, call.Range, 1e-24)
	}
}

func TestPreampLowCurrentOutputSetpointFallback(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var readings []float64
	for _, v := range lowCurrentVolts {
		readings = concat(readings, repeat(v, 3))
	}

	dmm := &fakeDMM{reads: script{values: readings}}
	smu := &fakeSMU{setpointErr: errors.New("query rejected")}

	params := testParams()
	params.Standards = lowCurrentStandards()

	svc := verify.NewService(smu, dmm, &fakePrompter{}).WithParams(params)

	results, err := svc.PreampLowCurrentOutput(ctx)
	rq.NoError(err)
	rq.Len(results, 6)

	// При отказе запроса уставки допуск остаётся на номинале строки.
	for i, point := range results {
		rq.InDelta(lowCurrentNominals[i], point.ActualSet, 1e-24)
		rq.Equal(value.VerdictPass, point.Verdict)
	}
}

func TestPreampLowCurrentOutputPromptAbort(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	smu := &fakeSMU{}
	prompter := &fakePrompter{err: context.Canceled}

	svc := verify.NewService(smu, &fakeDMM{}, prompter).WithParams(testParams())

	_, err := svc.PreampLowCurrentOutput(ctx)
	rq.ErrorIs(err, context.Canceled)
	rq.Empty(smu.outputLog, "output stays off when the operator aborts at the first prompt")
}

func TestPreampLowCurrentMeasure(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var readings []float64
	for _, v := range lowCurrentVolts {
		readings = concat(readings, repeat(v, 3))
	}

	var dutReadings []float64
	for _, nominal := range lowCurrentNominals {
		dutReadings = concat(dutReadings, repeat(nominal, 3))
	}

	dmm := &fakeDMM{reads: script{values: readings}}
	smu := &fakeSMU{
		reads:     script{values: dutReadings},
		setpoints: script{values: lowCurrentNominals},
	}
	prompter := &fakePrompter{}

	params := testParams()
	params.Standards = lowCurrentStandards()

	svc := verify.NewService(smu, dmm, prompter).WithParams(params)

	results, err := svc.PreampLowCurrentMeasure(ctx)
	rq.NoError(err)
	rq.Len(results, 6)

	for _, point := range results {
		rq.Equal(verify.TestPreampMeasILow, point.Test)
		rq.Equal(value.VerdictPass, point.Verdict)
		rq.NotNil(point.Std)
	}

	first := results[0]
	rq.InDelta(0.0998, first.DMMMean, 1e-15)
	rq.InDelta(0, first.DMMStdev, 1e-15)
	rq.InDelta(1e-12, first.DUTMean, 1e-24)
	rq.InDelta(1e-12, first.ActualSet, 1e-24)

	rq.Equal([]value.Function{value.FunctionCurrent}, smu.senseLog)
	rq.Equal([]float64{20.0}, dmm.dcvLog)
	rq.Equal([]bool{true, false}, smu.outputLog)
	rq.Len(prompter.messages, 7)

	// Ток источника вычислен из напряжения, снятого до включения источника.
	rq.Len(smu.sourceILog, 6)
	rq.InDelta(0.0998/99.8e9, smu.sourceILog[0].Value, 1e-24)
	rq.InDelta(0.0998/99.8e9*1.2, smu.sourceILog[0].Range, 1e-24)
}

func TestPreampLowCurrentMeasureSetpointFallback(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var readings []float64
	for _, v := range lowCurrentVolts {
		readings = concat(readings, repeat(v, 3))
	}

	var dutReadings []float64
	for _, nominal := range lowCurrentNominals {
		dutReadings = concat(dutReadings, repeat(nominal, 3))
	}

	dmm := &fakeDMM{reads: script{values: readings}}
	smu := &fakeSMU{
		reads:       script{values: dutReadings},
		setpointErr: errors.New("query rejected"),
	}

	params := testParams()
	params.Standards = lowCurrentStandards()

	svc := verify.NewService(smu, dmm, &fakePrompter{}).WithParams(params)

	results, err := svc.PreampLowCurrentMeasure(ctx)
	rq.NoError(err)
	rq.Len(results, 6)

	// Фоллбэком уставки служит вычисленный ток, не номинал строки.
	rq.InDelta(0.0998/99.8e9, results[0].ActualSet, 1e-24)

	for _, point := range results {
		rq.Equal(value.VerdictPass, point.Verdict)
	}
}

func TestPreampLowCurrentMeasureBusFaultKeepsPartialResults(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	// Напряжения хватает на три строки, дальше шина молчит.
	dmm := &fakeDMM{reads: script{values: concat(
		repeat(0.0998, 3), repeat(0.998, 3), repeat(1.0, 3),
	)}}
	smu := &fakeSMU{
		reads:     script{values: concat(repeat(1e-12, 3), repeat(10e-12, 3), repeat(100e-12, 3))},
		setpoints: script{values: lowCurrentNominals},
	}

	params := testParams()
	params.Standards = lowCurrentStandards()

	svc := verify.NewService(smu, dmm, &fakePrompter{}).WithParams(params)

	results, err := svc.PreampLowCurrentMeasure(ctx)
	rq.ErrorContains(err, "dmm series 1nA")
	rq.ErrorContains(err, "no more scripted readings")
	rq.Len(results, 3, "completed rows survive the abort")
	rq.Equal([]bool{true, false}, smu.outputLog)
}
