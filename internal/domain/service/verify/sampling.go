package verify

import (
	"context"
	"fmt"
	"math"
	"time"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
)

// Mean — среднее арифметическое серии. Для пустой серии NaN.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}

	sum := 0.0
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

// Stdev — выборочное стандартное отклонение (N-1). Это статистика разброса
// серии, не бюджет неопределённости. Меньше двух отсчётов — ровно 0.
func Stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0.0
	}

	m := Mean(xs)

	sum := 0.0
	for _, x := range xs {
		sum += (x - m) * (x - m)
	}

	return math.Sqrt(sum / float64(len(xs)-1))
}

// sample снимает серию из SamplesPerPoint отсчётов с паузой SampleDelay
// между отсчётами. Пауза и чтения прерываются отменой контекста.
func (s *Service) sample(ctx context.Context, read func(ctx context.Context) (float64, error)) ([]float64, error) {
	n := s.params.SamplesPerPoint
	xs := make([]float64, 0, n)

	for i := 0; i < n; i++ {
		x, err := read(ctx)
		if err != nil {
			return nil, fmt.Errorf("sample %d/%d: %w", i+1, n, err)
		}

		xs = append(xs, x)

		if i < n-1 {
			if err := sleep(ctx, s.params.SampleDelay); err != nil {
				return nil, err
			}
		}
	}

	return xs, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// evalOutputPoint оценивает точку воспроизведения: фактическим значением
// считается среднее эталона, допуск переносится к нему же, DUT не измеряет.
func evalOutputPoint(test string, row entity.LimitRow, ref []float64) entity.PointResult {
	actual := Mean(ref)
	band := row.ShiftTo(actual)

	return entity.PointResult{
		Test:      test,
		RangeName: row.RangeName,
		SetValue:  row.SetValue,
		ActualSet: actual,
		DMMMean:   actual,
		DMMStdev:  Stdev(ref),
		DUTMean:   math.NaN(),
		DUTStdev:  math.NaN(),
		Low:       band.Low,
		High:      band.High,
		Unit:      row.Unit,
		Verdict:   value.VerdictOf(band.Contains(actual)),
		Std:       nil,
	}
}

// evalMeasurePoint оценивает точку измерения: допуск переносится к среднему
// эталона, вердикт выносится по среднему DUT.
func evalMeasurePoint(test string, row entity.LimitRow, ref, dut []float64) entity.PointResult {
	actual := Mean(ref)
	dutMean := Mean(dut)
	band := row.ShiftTo(actual)

	return entity.PointResult{
		Test:      test,
		RangeName: row.RangeName,
		SetValue:  row.SetValue,
		ActualSet: actual,
		DMMMean:   actual,
		DMMStdev:  Stdev(ref),
		DUTMean:   dutMean,
		DUTStdev:  Stdev(dut),
		Low:       band.Low,
		High:      band.High,
		Unit:      row.Unit,
		Verdict:   value.VerdictOf(band.Contains(dutMean)),
		Std:       nil,
	}
}
