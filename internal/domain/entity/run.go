package entity

import (
	"time"

	"smuverify/internal/domain/value"
)

// Run — один прогон поверки: идентичность приборов, параметры измерений,
// все точки и применённые эталоны. Сохраняется в архив целиком по
// завершении.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Operator    string
	SMUIdentity string
	DMMIdentity string
	CalIdentity string

	// Слепок параметров измерений, по которому выгрузку можно привязать
	// к условиям съёма.
	SettleS      float64
	NPLC         float64
	Samples      int
	SampleDelayS float64

	Verdict   value.Verdict
	Points    []PointResult
	Standards []Standard
}

// Passed — прогон без единой непрошедшей точки.
func (r *Run) Passed() bool {
	for _, p := range r.Points {
		if !p.Passed() {
			return false
		}
	}

	return true
}
