package verify

import (
	"context"
	"math"
	"time"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
	"smuverify/pkg/contextx"
	"smuverify/pkg/logx"
	"smuverify/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Идентификаторы тестов, попадающие в колонку test выгрузки.
const (
	TestMainframeOutV  = "MF_OUT_V"
	TestMainframeMeasV = "MF_MEAS_V"
	TestMainframeOutI  = "MF_OUT_I"
	TestMainframeMeasI = "MF_MEAS_I"
	TestPreampOutILow  = "PA_OUT_I_LOW"
	TestPreampMeasILow = "PA_MEAS_I_LOW"
)

// SourceMeter — поверяемый источник-измеритель (Keithley 6430).
type SourceMeter interface {
	Output(ctx context.Context, on bool) error
	SourceVoltage(ctx context.Context, volts, rng float64) error
	SourceCurrent(ctx context.Context, amps, rng float64) error
	SourceCurrentSetpoint(ctx context.Context) (float64, error)
	SenseFunction(ctx context.Context, fn value.Function) error
	Read(ctx context.Context) (float64, error)
}

// ReferenceMeter — эталонный вольтметр/амперметр (HP 3458A).
type ReferenceMeter interface {
	ConfigDCV(ctx context.Context, expected, nplc float64) error
	ConfigDCI(ctx context.Context, expected, nplc float64) error
	Read(ctx context.Context) (float64, error)
}

// Calibrator — вспомогательный источник напряжения (Fluke 5720A).
type Calibrator interface {
	Operate(ctx context.Context) error
	Standby(ctx context.Context) error
	OutputVoltage(ctx context.Context, volts float64) error
}

// Prompter показывает оператору шаг ручной коммутации и блокируется
// до подтверждения.
type Prompter interface {
	Prompt(ctx context.Context, message string) error
}

// Params — параметры измерений одной сессии поверки.
type Params struct {
	Settle          time.Duration
	NPLC            float64
	SamplesPerPoint int
	SampleDelay     time.Duration

	// Политика выбора диапазона источника: запас к уставке и потолок
	// по напряжению. Руководство фиксирует 1.2x и 200 V.
	RangeHeadroom float64
	RangeCeilingV float64

	UseCalibrator bool
	Standards     entity.StandardsMap
}

func DefaultParams() Params {
	return Params{
		Settle:          time.Second,
		NPLC:            10,
		SamplesPerPoint: 5,
		SampleDelay:     200 * time.Millisecond,
		RangeHeadroom:   1.2,
		RangeCeilingV:   200,
		UseCalibrator:   false,
		Standards:       entity.StandardsMap{},
	}
}

func (p Params) sourceVoltageRange(volts float64) float64 {
	if volts < p.RangeCeilingV {
		return volts * p.RangeHeadroom
	}

	return p.RangeCeilingV
}

func (p Params) sourceCurrentRange(amps float64) float64 {
	return math.Abs(amps) * p.RangeHeadroom
}

// Service выполняет процедуры поверки раздела 18. Все вызовы строго
// последовательные, приборы монопольно принадлежат сервису на время прогона.
type Service struct {
	smu      SourceMeter
	dmm      ReferenceMeter
	cal      Calibrator
	prompter Prompter
	params   Params
}

func NewService(
	smu SourceMeter,
	dmm ReferenceMeter,
	prompter Prompter,
) *Service {
	return &Service{
		smu:      smu,
		dmm:      dmm,
		cal:      nil,
		prompter: prompter,
		params:   DefaultParams(),
	}
}

func (s *Service) WithCalibrator(cal Calibrator) *Service {
	s.cal = cal
	return s
}

func (s *Service) WithParams(params Params) *Service {
	s.params = params
	return s
}

// keep записывает точку в аккумулятор процедуры.
func (s *Service) keep(ctx context.Context, results []entity.PointResult, point entity.PointResult) []entity.PointResult {
	metrics.PointsVerified.WithLabelValues(point.Test, point.Verdict.String()).Inc()

	logger(ctx).Info("point evaluated",
		logx.FieldTest, point.Test,
		logx.FieldRange, point.RangeName,
		logx.FieldVerdict, point.Verdict.String(),
	)

	return append(results, point)
}

// disableOutput гасит выход DUT в любом исходе процедуры, включая отмену.
func (s *Service) disableOutput(ctx context.Context) {
	if err := s.smu.Output(context.WithoutCancel(ctx), false); err != nil {
		logger(ctx).Error("smu output off", logx.Error(err))
	}
}

func (s *Service) standbyCalibrator(ctx context.Context) {
	if err := s.cal.Standby(context.WithoutCancel(ctx)); err != nil {
		logger(ctx).Error("calibrator standby", logx.Error(err))
	}
}
