package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"smuverify/internal/config"
	"smuverify/internal/domain/entity"
	"smuverify/internal/domain/service/verify"
	"smuverify/internal/domain/value"
	"smuverify/internal/infrastructure/instrument"
	"smuverify/internal/infrastructure/persistence"
	"smuverify/internal/infrastructure/scpi"
	"smuverify/internal/report"
	"smuverify/internal/worker"
	"smuverify/pkg/application/connectors"
	"smuverify/pkg/contextx"
	"smuverify/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const archiveBusyTimeout = 5 * time.Second

// Session — собранные входы одного прогона поверки.
type Session struct {
	Config      config.Config
	OutDir      string
	ArchivePath string
	Prompter    verify.Prompter
}

// Result — итог прогона: сам Run и пути артефактов выгрузки.
type Result struct {
	Run       *entity.Run
	Artifacts report.Artifacts
}

// Run выполняет полный прогон: подключение приборов, процедуры раздела
// 18, выгрузка и архив. Останов стенда выполняется в любом исходе,
// включая Ctrl+C, и не заслоняет исходную ошибку.
func Run(ctx context.Context, session Session) (*Result, error) {
	runID := contextx.RunID(xid.New().String())
	ctx = contextx.WithRunID(ctx, runID)

	log := logger(ctx).With(logx.FieldRunID, runID.String())
	ctx = contextx.WithLogger(ctx, log)

	shutdown := &worker.Shutdown{}
	defer shutdown.Run(ctx)

	bench, err := connect(ctx, session.Config, shutdown)
	if err != nil {
		return nil, err
	}

	meas := session.Config.Measurement

	log.Info("measurement parameters",
		slog.Float64("settle_s", meas.SettleS),
		slog.Float64("nplc", meas.NPLC),
		slog.Int("samples_per_point", meas.SamplesPerPoint),
		slog.Float64("sample_delay_s", meas.SampleDelayS),
		slog.Float64("range_headroom", meas.RangeHeadroom),
		slog.Float64("range_ceiling_v", meas.RangeCeilingV),
	)

	service := verify.NewService(bench.smu, bench.dmm, session.Prompter).
		WithParams(verify.Params{
			Settle:          meas.Settle(),
			NPLC:            meas.NPLC,
			SamplesPerPoint: meas.SamplesPerPoint,
			SampleDelay:     meas.SampleDelay(),
			RangeHeadroom:   meas.RangeHeadroom,
			RangeCeilingV:   meas.RangeCeilingV,
			UseCalibrator:   session.Config.UseCalibratorSource,
			Standards:       entity.StandardsMap(session.Config.StandardsActualOhm),
		})

	if bench.cal != nil {
		service = service.WithCalibrator(bench.cal)
	}

	operator, _ := contextx.OperatorFromContext(ctx)

	run := &entity.Run{
		ID:          runID.String(),
		StartedAt:   time.Now(),
		Operator:    operator.String(),
		SMUIdentity: bench.smuIdentity,
		DMMIdentity: bench.dmmIdentity,
		CalIdentity: bench.calIdentity,

		SettleS:      meas.SettleS,
		NPLC:         meas.NPLC,
		Samples:      meas.SamplesPerPoint,
		SampleDelayS: meas.SampleDelayS,
	}

	if err := worker.NewRunner(worker.Section18(service)).Run(ctx, run); err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now()
	run.Verdict = value.VerdictOf(run.Passed())

	artifacts, err := report.Export(run, session.OutDir)
	if err != nil {
		return nil, err
	}

	log.Info("results exported", logx.FieldFile, artifacts.CSV)

	if session.ArchivePath != "" {
		if err := archiveRun(ctx, session.ArchivePath, run); err != nil {
			return nil, err
		}
	}

	return &Result{Run: run, Artifacts: artifacts}, nil
}

// bench — подключённые приборы стенда.
type bench struct {
	smu *instrument.K6430
	dmm *instrument.HP3458A
	cal *instrument.Fluke5720A

	smuIdentity string
	dmmIdentity string
	calIdentity string
}

// connect открывает шины и регистрирует шаги останова. Порядок
// регистрации обратный порядку выполнения: выход DUT гаснет и калибратор
// уходит в standby раньше, чем закроются сессии шин.
func connect(ctx context.Context, cfg config.Config, shutdown *worker.Shutdown) (*bench, error) {
	busConfig := func(name, address string) scpi.Config {
		return scpi.Config{
			Name:        name,
			Address:     address,
			DialTimeout: cfg.Bus.DialTimeout(),
			IOTimeout:   cfg.Bus.IOTimeout(),
		}
	}

	smuBus, err := scpi.Dial(ctx, busConfig(instrument.NameK6430, cfg.Instruments.SMU))
	if err != nil {
		return nil, fmt.Errorf("smu bus: %w", err)
	}

	shutdown.Add("close smu bus", func(context.Context) error { return smuBus.Close() })

	dmmBus, err := scpi.Dial(ctx, busConfig(instrument.NameHP3458A, cfg.Instruments.DMM))
	if err != nil {
		return nil, fmt.Errorf("dmm bus: %w", err)
	}

	shutdown.Add("close dmm bus", func(context.Context) error { return dmmBus.Close() })

	b := &bench{
		smu: instrument.NewK6430(smuBus),
		dmm: instrument.NewHP3458A(dmmBus),
	}

	if cfg.Instruments.HasCalibrator() {
		calBus, err := scpi.Dial(ctx, busConfig(instrument.NameFluke5720A, cfg.Instruments.Calibrator))
		if err != nil {
			return nil, fmt.Errorf("calibrator bus: %w", err)
		}

		shutdown.Add("close calibrator bus", func(context.Context) error { return calBus.Close() })

		b.cal = instrument.NewFluke5720A(calBus)
		shutdown.Add("calibrator standby", b.cal.Standby)
	}

	shutdown.Add("smu output off", func(stepCtx context.Context) error {
		return b.smu.Output(stepCtx, false)
	})

	if err := b.prepare(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// prepare сбрасывает приборы и снимает их идентификацию для архива.
func (b *bench) prepare(ctx context.Context) error {
	if err := b.smu.Reset(ctx); err != nil {
		return fmt.Errorf("smu reset: %w", err)
	}

	if err := b.dmm.Reset(ctx); err != nil {
		return fmt.Errorf("dmm reset: %w", err)
	}

	if b.cal != nil {
		if err := b.cal.Reset(ctx); err != nil {
			return fmt.Errorf("calibrator reset: %w", err)
		}
	}

	var err error

	if b.smuIdentity, err = b.smu.Identify(ctx); err != nil {
		return fmt.Errorf("smu identify: %w", err)
	}

	if b.dmmIdentity, err = b.dmm.Identify(ctx); err != nil {
		return fmt.Errorf("dmm identify: %w", err)
	}

	if b.cal != nil {
		if b.calIdentity, err = b.cal.Identify(ctx); err != nil {
			return fmt.Errorf("calibrator identify: %w", err)
		}
	}

	logger(ctx).Info("bench ready",
		slog.String("smu", b.smuIdentity),
		slog.String("dmm", b.dmmIdentity),
		slog.String("calibrator", b.calIdentity),
	)

	return nil
}

// archiveRun дописывает прогон в sqlite архив стенда.
func archiveRun(ctx context.Context, path string, run *entity.Run) error {
	sqlite := &connectors.SQLite{
		Path:        path,
		BusyTimeout: archiveBusyTimeout,
	}

	archive := persistence.NewArchive(sqlite.Client(ctx))
	defer sqlite.Close(ctx)

	if err := archive.Init(ctx); err != nil {
		return err
	}

	if err := archive.SaveRun(ctx, run); err != nil {
		return err
	}

	logger(ctx).Info("run archived", logx.FieldFile, path)

	return nil
}
