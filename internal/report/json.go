package report

import (
	"io"
	"math"
	"time"

	jsoniter "github.com/json-iterator/go"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/pkg/errcodes"
	"smuverify/pkg/lox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// pointDTO повторяет контракт колонок CSV. NaN сериализуется как null.
type pointDTO struct {
	Test      string   `json:"test"`
	RangeName string   `json:"range_name"`
	SetValue  float64  `json:"set_value"`
	ActualSet float64  `json:"actual_set"`
	DMMMean   *float64 `json:"dmm_mean"`
	DMMStdev  *float64 `json:"dmm_stdev"`
	DUTMean   *float64 `json:"dut_mean"`
	DUTStdev  *float64 `json:"dut_stdev"`
	Low       float64  `json:"low"`
	High      float64  `json:"high"`
	Unit      string   `json:"unit"`
	PassFail  string   `json:"pass_fail"`

	RKey    *string  `json:"r_key,omitempty"`
	RNomOhm *float64 `json:"r_nom_ohm,omitempty"`
	RActOhm *float64 `json:"r_act_ohm,omitempty"`
}

type runDTO struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Operator    string    `json:"operator,omitempty"`
	SMUIdentity string    `json:"smu_idn"`
	DMMIdentity string    `json:"dmm_idn"`
	CalIdentity string    `json:"cal_idn,omitempty"`

	SettleS      float64 `json:"settle_s"`
	NPLC         float64 `json:"nplc"`
	Samples      int     `json:"samples"`
	SampleDelayS float64 `json:"sample_delay_s"`

	Verdict   string            `json:"verdict"`
	Points    []pointDTO        `json:"points"`
	Standards []entity.Standard `json:"standards,omitempty"`
}

// WriteJSON пишет прогон целиком: шапку с условиями съёма, точки и
// применённые эталоны.
func WriteJSON(w io.Writer, run *entity.Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(fromRun(run)); err != nil {
		return domain.WrapError(err, errcodes.ExportFault, "failed to write run json")
	}

	return nil
}

func fromRun(run *entity.Run) runDTO {
	return runDTO{
		RunID:       run.ID,
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
		Operator:    run.Operator,
		SMUIdentity: run.SMUIdentity,
		DMMIdentity: run.DMMIdentity,
		CalIdentity: run.CalIdentity,

		SettleS:      run.SettleS,
		NPLC:         run.NPLC,
		Samples:      run.Samples,
		SampleDelayS: run.SampleDelayS,

		Verdict:   run.Verdict.String(),
		Points:    lox.Map(run.Points, fromPoint),
		Standards: run.Standards,
	}
}

func fromPoint(p entity.PointResult) pointDTO {
	dto := pointDTO{
		Test:      p.Test,
		RangeName: p.RangeName,
		SetValue:  p.SetValue,
		ActualSet: p.ActualSet,
		DMMMean:   nanable(p.DMMMean),
		DMMStdev:  nanable(p.DMMStdev),
		DUTMean:   nanable(p.DUTMean),
		DUTStdev:  nanable(p.DUTStdev),
		Low:       p.Low,
		High:      p.High,
		Unit:      p.Unit.String(),
		PassFail:  p.Verdict.String(),
	}

	if p.Std != nil {
		dto.RKey = &p.Std.Key
		dto.RNomOhm = &p.Std.NominalOhm
		dto.RActOhm = &p.Std.ActualOhm
	}

	return dto
}

func nanable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}

	return &v
}
