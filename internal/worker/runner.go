package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/service/verify"
	"smuverify/pkg/contextx"
	"smuverify/pkg/logx"
	"smuverify/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Procedure — одна процедура раздела 18.
type Procedure struct {
	Test string
	Run  func(ctx context.Context) ([]entity.PointResult, error)
}

// Section18 — процедуры полного прогона в порядке руководства.
func Section18(service *verify.Service) []Procedure {
	return []Procedure{
		{Test: verify.TestMainframeOutV, Run: service.MainframeOutputVoltage},
		{Test: verify.TestMainframeMeasV, Run: service.MainframeMeasureVoltage},
		{Test: verify.TestMainframeOutI, Run: service.MainframeOutputCurrent},
		{Test: verify.TestMainframeMeasI, Run: service.MainframeMeasureCurrent},
		{Test: verify.TestPreampOutILow, Run: service.PreampLowCurrentOutput},
		{Test: verify.TestPreampMeasILow, Run: service.PreampLowCurrentMeasure},
	}
}

// Runner прогоняет процедуры строго последовательно и копит точки
// и применённые эталоны в одном Run.
type Runner struct {
	procedures []Procedure
}

func NewRunner(procedures []Procedure) *Runner {
	return &Runner{procedures: procedures}
}

// Run выполняет процедуры по порядку. Ошибка обрывает остаток
// последовательности; уже набранные точки остаются в run.
func (r *Runner) Run(ctx context.Context, run *entity.Run) error {
	for _, procedure := range r.procedures {
		log := logger(ctx).With(logx.FieldTest, procedure.Test)
		log.Info("procedure started")

		started := time.Now()
		points, err := procedure.Run(ctx)

		run.Points = append(run.Points, points...)
		run.Standards = mergeStandards(run.Standards, points)

		metrics.TestDuration.WithLabelValues(procedure.Test).Observe(time.Since(started).Seconds())

		if err != nil {
			return fmt.Errorf("%s: %w", procedure.Test, err)
		}

		failed := lo.CountBy(points, func(p entity.PointResult) bool {
			return !p.Passed()
		})

		log.Info("procedure completed", "points", len(points), "failed", failed)
	}

	return nil
}

// mergeStandards добавляет эталоны новых точек без дублей по ключу,
// сохраняя порядок первого применения.
func mergeStandards(standards []entity.Standard, points []entity.PointResult) []entity.Standard {
	for _, p := range points {
		if p.Std == nil {
			continue
		}

		known := lo.ContainsBy(standards, func(s entity.Standard) bool {
			return s.Key == p.Std.Key
		})
		if !known {
			standards = append(standards, *p.Std)
		}
	}

	return standards
}
