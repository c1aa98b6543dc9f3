package verify

import (
	"context"
	"fmt"
	"math"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/tables"
	"smuverify/internal/domain/value"
	"smuverify/pkg/logx"
)

// Напряжение на эталонном резисторе измеряется на фиксированном
// диапазоне 20 V 3458A.
const lowCurrentSenseV = 20.0

// PreampLowCurrentOutput — Table 18-11, воспроизведение токов 1 pA - 100 nA.
// Ток не измерить амперметром напрямую: DUT задаёт ток через эталонный
// резистор 5156, эталон меряет падение напряжения, I = V/R. Допуск
// переносится к считанной с DUT уставке тока.
func (s *Service) PreampLowCurrentOutput(ctx context.Context) ([]entity.PointResult, error) {
	err := s.prompter.Prompt(ctx,
		"REMOTE PREAMP 1pA-100nA range OUTPUT current accuracy (Table 18-11):\n"+
			"Подключения как Figure 18-7: 3458A измеряет напряжение на эталонном R (5156).\n"+
			"Алгоритм: задать I на 6430, измерить V, вычислить I=V/R, сравнить с лимитами.")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.dmm.ConfigDCV(ctx, lowCurrentSenseV, s.params.NPLC); err != nil {
		return nil, fmt.Errorf("dmm dcv: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	var results []entity.PointResult

	for _, row := range tables.PreampOutILow() {
		std := s.params.Standards.Resolve(row.RNominal)

		if err := s.promptStandard(ctx, row.RangeName, std); err != nil {
			return results, fmt.Errorf("prompt %s: %w", row.RangeName, err)
		}

		if err := s.smu.SourceCurrent(ctx, row.SetValue, s.params.sourceCurrentRange(row.SetValue)); err != nil {
			return results, fmt.Errorf("smu source %s: %w", row.RangeName, err)
		}

		if err := sleep(ctx, s.params.Settle); err != nil {
			return results, err
		}

		ref, err := s.sample(ctx, s.dmm.Read)
		if err != nil {
			return results, fmt.Errorf("dmm series %s: %w", row.RangeName, err)
		}

		volts := Mean(ref)
		iCalc := volts / std.ActualOhm
		iSet := s.setpointOr(ctx, row.SetValue)

		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		band := row.ShiftTo(iSet)

		results = s.keep(ctx, results, entity.PointResult{
			Test:      TestPreampOutILow,
			RangeName: row.RangeName,
			SetValue:  row.SetValue,
			ActualSet: iSet,
			DMMMean:   iCalc,
			DMMStdev:  0.0,
			DUTMean:   math.NaN(),
			DUTStdev:  math.NaN(),
			Low:       band.Low,
			High:      band.High,
			Unit:      row.Unit,
			Verdict:   value.VerdictOf(band.Contains(iCalc)),
			Std:       &std,
		})
	}

	return results, nil
}

// PreampLowCurrentMeasure — Table 18-13, измерение токов 1 pA - 100 nA.
// Целевой ток вычисляется по падению напряжения на эталонном резисторе,
// выставляется на DUT, и его показание сверяется с перенесённым допуском.
func (s *Service) PreampLowCurrentMeasure(ctx context.Context) ([]entity.PointResult, error) {
	err := s.prompter.Prompt(ctx,
		"REMOTE PREAMP 1pA-100nA range MEASUREMENT accuracy (Table 18-13):\n"+
			"Подключения как Figure 18-7: 3458A измеряет напряжение на выходе 5156/резистора.\n"+
			"5156 и резисторы подключаются вручную, прогон будет просить переключать джек.\n"+
			"Алгоритм: измерить V на эталонном R, вычислить I=V/R, выставить I на 6430, проверить показание.")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.dmm.ConfigDCV(ctx, lowCurrentSenseV, s.params.NPLC); err != nil {
		return nil, fmt.Errorf("dmm dcv: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	if err := s.smu.SenseFunction(ctx, value.FunctionCurrent); err != nil {
		return nil, fmt.Errorf("smu sense: %w", err)
	}

	var results []entity.PointResult

	for _, row := range tables.PreampMeasILow() {
		std := s.params.Standards.Resolve(row.RNominal)

		if err := s.promptStandard(ctx, row.RangeName, std); err != nil {
			return results, fmt.Errorf("prompt %s: %w", row.RangeName, err)
		}

		ref, err := s.sample(ctx, s.dmm.Read)
		if err != nil {
			return results, fmt.Errorf("dmm series %s: %w", row.RangeName, err)
		}

		volts := Mean(ref)
		iCalc := volts / std.ActualOhm

		if err := s.smu.SourceCurrent(ctx, iCalc, s.params.sourceCurrentRange(iCalc)); err != nil {
			return results, fmt.Errorf("smu source %s: %w", row.RangeName, err)
		}

		if err := sleep(ctx, s.params.Settle); err != nil {
			return results, err
		}

		iSet := s.setpointOr(ctx, iCalc)

		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		band := row.ShiftTo(iSet)

		dut, err := s.sample(ctx, s.smu.Read)
		if err != nil {
			return results, fmt.Errorf("dut series %s: %w", row.RangeName, err)
		}

		dutMean := Mean(dut)

		results = s.keep(ctx, results, entity.PointResult{
			Test:      TestPreampMeasILow,
			RangeName: row.RangeName,
			SetValue:  row.SetValue,
			ActualSet: iSet,
			DMMMean:   volts,
			DMMStdev:  Stdev(ref),
			DUTMean:   dutMean,
			DUTStdev:  Stdev(dut),
			Low:       band.Low,
			High:      band.High,
			Unit:      row.Unit,
			Verdict:   value.VerdictOf(band.Contains(dutMean)),
			Std:       &std,
		})
	}

	return results, nil
}

func (s *Service) promptStandard(ctx context.Context, rangeName string, std entity.Standard) error {
	return s.prompter.Prompt(ctx, fmt.Sprintf(
		"Подключи BNC shorting cap к нужному джеку 5156 для %s (R_nom≈%.3gΩ, R_act=%.6gΩ).",
		rangeName, std.NominalOhm, std.ActualOhm,
	))
}

// setpointOr читает фактическую уставку тока с DUT. Если прибор не ответил
// на запрос, уставкой считается fallback. Отмену контекста проверяет
// вызывающий, здесь она не глотается.
func (s *Service) setpointOr(ctx context.Context, fallback float64) float64 {
	iSet, err := s.smu.SourceCurrentSetpoint(ctx)
	if err != nil {
		logger(ctx).Warn("setpoint query failed, using fallback", logx.Error(err))
		return fallback
	}

	return iSet
}
