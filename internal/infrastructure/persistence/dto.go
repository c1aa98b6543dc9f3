package persistence

import (
	"math"
	"time"

	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
)

// runSchema — строка таблицы runs.
type runSchema struct {
	ID           string    `db:"id"`
	StartedAt    time.Time `db:"started_at"`
	FinishedAt   time.Time `db:"finished_at"`
	Operator     string    `db:"operator"`
	SMUIdn       string    `db:"smu_idn"`
	DMMIdn       string    `db:"dmm_idn"`
	CalIdn       string    `db:"cal_idn"`
	SettleS      float64   `db:"settle_s"`
	NPLC         float64   `db:"nplc"`
	Samples      int       `db:"samples"`
	SampleDelayS float64   `db:"sample_delay_s"`
	Verdict      string    `db:"verdict"`
}

func fromRun(run *entity.Run) *runSchema {
	return &runSchema{
		ID:           run.ID,
		StartedAt:    run.StartedAt,
		FinishedAt:   run.FinishedAt,
		Operator:     run.Operator,
		SMUIdn:       run.SMUIdentity,
		DMMIdn:       run.DMMIdentity,
		CalIdn:       run.CalIdentity,
		SettleS:      run.SettleS,
		NPLC:         run.NPLC,
		Samples:      run.Samples,
		SampleDelayS: run.SampleDelayS,
		Verdict:      run.Verdict.String(),
	}
}

func (s *runSchema) toDomain() *entity.Run {
	return &entity.Run{
		ID:           s.ID,
		StartedAt:    s.StartedAt,
		FinishedAt:   s.FinishedAt,
		Operator:     s.Operator,
		SMUIdentity:  s.SMUIdn,
		DMMIdentity:  s.DMMIdn,
		CalIdentity:  s.CalIdn,
		SettleS:      s.SettleS,
		NPLC:         s.NPLC,
		Samples:      s.Samples,
		SampleDelayS: s.SampleDelayS,
		Verdict:      value.Verdict(s.Verdict),
	}
}

// pointSchema — строка таблицы points. NaN-статистики и отсутствующие
// поля эталона хранятся как NULL.
type pointSchema struct {
	RunID     string   `db:"run_id"`
	Seq       int      `db:"seq"`
	Test      string   `db:"test"`
	RangeName string   `db:"range_name"`
	SetValue  float64  `db:"set_value"`
	ActualSet float64  `db:"actual_set"`
	DMMMean   *float64 `db:"dmm_mean"`
	DMMStdev  *float64 `db:"dmm_stdev"`
	DUTMean   *float64 `db:"dut_mean"`
	DUTStdev  *float64 `db:"dut_stdev"`
	Low       float64  `db:"low"`
	High      float64  `db:"high"`
	Unit      string   `db:"unit"`
	PassFail  string   `db:"pass_fail"`
	RKey      *string  `db:"r_key"`
	RNomOhm   *float64 `db:"r_nom_ohm"`
	RActOhm   *float64 `db:"r_act_ohm"`
}

func fromPoint(runID string, seq int, p entity.PointResult) *pointSchema {
	s := &pointSchema{
		RunID:     runID,
		Seq:       seq,
		Test:      p.Test,
		RangeName: p.RangeName,
		SetValue:  p.SetValue,
		ActualSet: p.ActualSet,
		DMMMean:   optFloat(p.DMMMean),
		DMMStdev:  optFloat(p.DMMStdev),
		DUTMean:   optFloat(p.DUTMean),
		DUTStdev:  optFloat(p.DUTStdev),
		Low:       p.Low,
		High:      p.High,
		Unit:      p.Unit.String(),
		PassFail:  p.Verdict.String(),
	}

	if p.Std != nil {
		s.RKey = &p.Std.Key
		s.RNomOhm = &p.Std.NominalOhm
		s.RActOhm = &p.Std.ActualOhm
	}

	return s
}

func (s *pointSchema) toDomain() entity.PointResult {
	p := entity.PointResult{
		Test:      s.Test,
		RangeName: s.RangeName,
		SetValue:  s.SetValue,
		ActualSet: s.ActualSet,
		DMMMean:   floatOrNaN(s.DMMMean),
		DMMStdev:  floatOrNaN(s.DMMStdev),
		DUTMean:   floatOrNaN(s.DUTMean),
		DUTStdev:  floatOrNaN(s.DUTStdev),
		Low:       s.Low,
		High:      s.High,
		Unit:      value.Unit(s.Unit),
		Verdict:   value.Verdict(s.PassFail),
	}

	if s.RKey != nil && s.RNomOhm != nil && s.RActOhm != nil {
		p.Std = &entity.Standard{
			Key:        *s.RKey,
			NominalOhm: *s.RNomOhm,
			ActualOhm:  *s.RActOhm,
		}
	}

	return p
}

// standardSchema — строка таблицы standards.
type standardSchema struct {
	RunID   string  `db:"run_id"`
	RKey    string  `db:"r_key"`
	RNomOhm float64 `db:"r_nom_ohm"`
	RActOhm float64 `db:"r_act_ohm"`
}

func fromStandard(runID string, std entity.Standard) *standardSchema {
	return &standardSchema{
		RunID:   runID,
		RKey:    std.Key,
		RNomOhm: std.NominalOhm,
		RActOhm: std.ActualOhm,
	}
}

func (s *standardSchema) toDomain() entity.Standard {
	return entity.Standard{
		Key:        s.RKey,
		NominalOhm: s.RNomOhm,
		ActualOhm:  s.RActOhm,
	}
}

func optFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}

	return &v
}

func floatOrNaN(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}

	return *p
}
