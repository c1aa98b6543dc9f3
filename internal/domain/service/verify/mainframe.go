package verify

import (
	"context"
	"fmt"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/tables"
	"smuverify/internal/domain/value"
)

// MainframeOutputVoltage — Table 18-3, точность воспроизведения напряжения.
// Эталон измеряет выход DUT, допуск переносится к показанию эталона.
func (s *Service) MainframeOutputVoltage(ctx context.Context) ([]entity.PointResult, error) {
	err := s.prompter.Prompt(ctx,
		"MAINFRAME output voltage accuracy (Table 18-3):\n"+
			"Подключи 3458A к INPUT/OUTPUT HI/LO 6430 (Figure 18-2).\n"+
			"На 6430: SOURCE V, OUTPUT ON. На 3458A: DCV.")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	var results []entity.PointResult

	for _, row := range tables.MainframeOutV() {
		if err := s.dmm.ConfigDCV(ctx, row.SetValue, s.params.NPLC); err != nil {
			return results, fmt.Errorf("dmm dcv %s: %w", row.RangeName, err)
		}

		if err := s.smu.SourceVoltage(ctx, row.SetValue, s.params.sourceVoltageRange(row.SetValue)); err != nil {
			return results, fmt.Errorf("smu source %s: %w", row.RangeName, err)
		}

		if err := sleep(ctx, s.params.Settle); err != nil {
			return results, err
		}

		ref, err := s.sample(ctx, s.dmm.Read)
		if err != nil {
			return results, fmt.Errorf("dmm series %s: %w", row.RangeName, err)
		}

		results = s.keep(ctx, results, evalOutputPoint(TestMainframeOutV, row, ref))
	}

	return results, nil
}

// MainframeMeasureVoltage — Table 18-4, точность измерения напряжения.
// Источником служит сам DUT либо калибратор 5720A, если он подключён и
// включён в конфигурации; выбор делается один раз на процедуру.
func (s *Service) MainframeMeasureVoltage(ctx context.Context) ([]entity.PointResult, error) {
	useCalibrator := s.params.UseCalibrator && s.cal != nil

	err := s.prompter.Prompt(ctx,
		"MAINFRAME voltage measurement accuracy (Table 18-4):\n"+
			"Подключи 3458A к INPUT/OUTPUT HI/LO 6430 (Figure 18-2).\n"+
			"На 6430: SOURCE V + MEAS V, OUTPUT ON. На 3458A: DCV.\n"+
			"Если включён use_calibrator_source, напряжение задаёт 5720A (иначе 6430 сам).")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	if useCalibrator {
		if err := s.cal.Operate(ctx); err != nil {
			return nil, fmt.Errorf("calibrator operate: %w", err)
		}
		defer s.standbyCalibrator(ctx)
	}

	var results []entity.PointResult

	for _, row := range tables.MainframeMeasV() {
		if err := s.dmm.ConfigDCV(ctx, row.SetValue, s.params.NPLC); err != nil {
			return results, fmt.Errorf("dmm dcv %s: %w", row.RangeName, err)
		}

		ref, dut, err := s.measureVoltagePoint(ctx, row, useCalibrator)
		if err != nil {
			return results, fmt.Errorf("point %s: %w", row.RangeName, err)
		}

		results = s.keep(ctx, results, evalMeasurePoint(TestMainframeMeasV, row, ref, dut))
	}

	return results, nil
}

func (s *Service) measureVoltagePoint(ctx context.Context, row entity.LimitRow, useCalibrator bool) (ref, dut []float64, err error) {
	if useCalibrator {
		if err := s.cal.OutputVoltage(ctx, row.SetValue); err != nil {
			return nil, nil, fmt.Errorf("calibrator out: %w", err)
		}

		if err := sleep(ctx, s.params.Settle); err != nil {
			return nil, nil, err
		}

		if ref, err = s.sample(ctx, s.dmm.Read); err != nil {
			return nil, nil, fmt.Errorf("dmm series: %w", err)
		}

		// DUT только измеряет.
		if err := s.smu.SenseFunction(ctx, value.FunctionVoltage); err != nil {
			return nil, nil, fmt.Errorf("smu sense: %w", err)
		}

		if dut, err = s.sample(ctx, s.smu.Read); err != nil {
			return nil, nil, fmt.Errorf("dut series: %w", err)
		}

		return ref, dut, nil
	}

	if err := s.smu.SourceVoltage(ctx, row.SetValue, s.params.sourceVoltageRange(row.SetValue)); err != nil {
		return nil, nil, fmt.Errorf("smu source: %w", err)
	}

	if err := s.smu.SenseFunction(ctx, value.FunctionVoltage); err != nil {
		return nil, nil, fmt.Errorf("smu sense: %w", err)
	}

	if err := sleep(ctx, s.params.Settle); err != nil {
		return nil, nil, err
	}

	if ref, err = s.sample(ctx, s.dmm.Read); err != nil {
		return nil, nil, fmt.Errorf("dmm series: %w", err)
	}

	if dut, err = s.sample(ctx, s.smu.Read); err != nil {
		return nil, nil, fmt.Errorf("dut series: %w", err)
	}

	return ref, dut, nil
}

// MainframeOutputCurrent — Table 18-5, точность воспроизведения тока.
func (s *Service) MainframeOutputCurrent(ctx context.Context) ([]entity.PointResult, error) {
	err := s.prompter.Prompt(ctx,
		"MAINFRAME output current accuracy (Table 18-5):\n"+
			"Подключи 3458A (AMPS/INPUT LO) к INPUT/OUTPUT HI/LO 6430 (Figure 18-3).\n"+
			"На 6430: SOURCE I, OUTPUT ON. На 3458A: DCI.")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	var results []entity.PointResult

	for _, row := range tables.MainframeOutI() {
		if err := s.dmm.ConfigDCI(ctx, row.SetValue, s.params.NPLC); err != nil {
			return results, fmt.Errorf("dmm dci %s: %w", row.RangeName, err)
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

		results = s.keep(ctx, results, evalOutputPoint(TestMainframeOutI, row, ref))
	}

	return results, nil
}

// MainframeMeasureCurrent — Table 18-6, точность измерения тока.
func (s *Service) MainframeMeasureCurrent(ctx context.Context) ([]entity.PointResult, error) {
	err := s.prompter.Prompt(ctx,
		"MAINFRAME current measurement accuracy (Table 18-6):\n"+
			"Подключи 3458A (AMPS/INPUT LO) к INPUT/OUTPUT HI/LO 6430 (Figure 18-3).\n"+
			"На 6430: SOURCE I + MEAS I, OUTPUT ON. На 3458A: DCI.")
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	if err := s.smu.Output(ctx, true); err != nil {
		return nil, fmt.Errorf("smu output on: %w", err)
	}
	defer s.disableOutput(ctx)

	if err := s.smu.SenseFunction(ctx, value.FunctionCurrent); err != nil {
		return nil, fmt.Errorf("smu sense: %w", err)
	}

	var results []entity.PointResult

	for _, row := range tables.MainframeMeasI() {
		if err := s.dmm.ConfigDCI(ctx, row.SetValue, s.params.NPLC); err != nil {
			return results, fmt.Errorf("dmm dci %s: %w", row.RangeName, err)
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

		dut, err := s.sample(ctx, s.smu.Read)
		if err != nil {
			return results, fmt.Errorf("dut series %s: %w", row.RangeName, err)
		}

		results = s.keep(ctx, results, evalMeasurePoint(TestMainframeMeasI, row, ref, dut))
	}

	return results, nil
}
