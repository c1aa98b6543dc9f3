package persistence_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/value"
	"smuverify/internal/infrastructure/persistence"
	"smuverify/pkg/dbtest"
	"smuverify/pkg/errcodes"
)

func TestArchiveRoundTrip(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	archive := persistence.NewArchive(dbtest.Open(t))
	rq.NoError(archive.Init(ctx))
	rq.NoError(archive.Init(ctx), "schema init is idempotent")

	started := time.Date(2026, 2, 11, 9, 30, 0, 0, time.UTC)

	run := &entity.Run{
		ID:          "cu8q2h3jd0vg00a00000",
		StartedAt:   started,
		FinishedAt:  started.Add(25 * time.Minute),
		Operator:    "si",
		SMUIdentity: "KEITHLEY INSTRUMENTS INC.,MODEL 6430,1234567,C33",
		DMMIdentity: "HP3458A",
		CalIdentity: "",

		SettleS:      1.0,
		NPLC:         10,
		Samples:      5,
		SampleDelayS: 0.2,

		Verdict: value.VerdictFail,
		Points: []entity.PointResult{
			{
				Test:      "MF_OUT_V",
				RangeName: "200mV",
				SetValue:  0.2,
				ActualSet: 0.19963,
				DMMMean:   0.19963,
				DMMStdev:  1e-5,
				DUTMean:   math.NaN(),
				DUTStdev:  math.NaN(),
				Low:       0.19899,
				High:      0.20027,
				Unit:      value.UnitVolt,
				Verdict:   value.VerdictPass,
			},
			{
				Test:      "PA_OUT_I_LOW",
				RangeName: "1pA",
				SetValue:  1e-12,
				ActualSet: 1e-12,
				DMMMean:   1.2024e-11,
				DMMStdev:  0,
				DUTMean:   math.NaN(),
				DUTStdev:  math.NaN(),
				Low:       0.9795e-12,
				High:      1.0205e-12,
				Unit:      value.UnitAmpere,
				Verdict:   value.VerdictFail,
				Std:       &entity.Standard{Key: "100G", NominalOhm: 100e9, ActualOhm: 99.8e9},
			},
		},
		Standards: []entity.Standard{
			{Key: "100G", NominalOhm: 100e9, ActualOhm: 99.8e9},
		},
	}

	rq.NoError(archive.SaveRun(ctx, run))

	got, err := archive.GetRun(ctx, run.ID)
	rq.NoError(err)

	rq.Equal(run.ID, got.ID)
	rq.True(got.StartedAt.Equal(run.StartedAt))
	rq.True(got.FinishedAt.Equal(run.FinishedAt))
	rq.Equal(run.Operator, got.Operator)
	rq.Equal(run.SMUIdentity, got.SMUIdentity)
	rq.Equal(run.DMMIdentity, got.DMMIdentity)
	rq.Equal(value.VerdictFail, got.Verdict)
	rq.Equal(run.Samples, got.Samples)
	rq.InDelta(run.SettleS, got.SettleS, 1e-12)

	rq.Len(got.Points, 2)
	rq.Equal("MF_OUT_V", got.Points[0].Test)
	rq.Equal("200mV", got.Points[0].RangeName)
	rq.True(math.IsNaN(got.Points[0].DUTMean), "NaN statistics survive as NULL")
	rq.True(math.IsNaN(got.Points[0].DUTStdev))
	rq.Nil(got.Points[0].Std)

	rq.Equal("PA_OUT_I_LOW", got.Points[1].Test)
	rq.InDelta(1.2024e-11, got.Points[1].DMMMean, 1e-22)
	rq.Equal(run.Points[1].Std, got.Points[1].Std)
	rq.Equal(value.UnitAmpere, got.Points[1].Unit)

	rq.Equal(run.Standards, got.Standards)
}

func TestArchiveGetRunNotFound(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	archive := persistence.NewArchive(dbtest.Open(t))
	rq.NoError(archive.Init(ctx))

	_, err := archive.GetRun(ctx, "missing")
	rq.Error(err)
	rq.ErrorContains(err, "run missing not found")

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.NotFound, code)
}

func TestArchiveDuplicateRunFails(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	archive := persistence.NewArchive(dbtest.Open(t))
	rq.NoError(archive.Init(ctx))

	run := &entity.Run{ID: "dup", Verdict: value.VerdictPass}

	rq.NoError(archive.SaveRun(ctx, run))

	err := archive.SaveRun(ctx, run)
	rq.Error(err)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.StorageFault, code)
}
