package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"smuverify/internal/domain"
	"smuverify/internal/domain/entity"
	"smuverify/pkg/errcodes"
)

//go:embed schema.sql
var schemaSQL string

// Archive — журнал прогонов поверки в файле sqlite. Прогон пишется одной
// транзакцией по завершении, архив никогда не трогает приборы.
type Archive struct {
	db *sqlx.DB
}

func NewArchive(db *sqlx.DB) *Archive {
	return &Archive{db: db}
}

// Init приводит схему к актуальной. Повторные вызовы безопасны.
func (a *Archive) Init(ctx context.Context) error {
	if _, err := a.db.ExecContext(ctx, schemaSQL); err != nil {
		return domain.WrapError(err, errcodes.StorageFault, "failed to apply archive schema")
	}

	return nil
}

// withTx выполняет функцию в транзакции.
func (a *Archive) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.StorageFault, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.StorageFault,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.StorageFault, "failed to commit")
	}

	return nil
}

// SaveRun атомарно записывает прогон со всеми точками и эталонами.
func (a *Archive) SaveRun(ctx context.Context, run *entity.Run) error {
	return a.withTx(ctx, func(tx *sqlx.Tx) error {
		const runQuery = `
			INSERT INTO runs (id, started_at, finished_at, operator, smu_idn, dmm_idn, cal_idn,
			                  settle_s, nplc, samples, sample_delay_s, verdict)
			VALUES (:id, :started_at, :finished_at, :operator, :smu_idn, :dmm_idn, :cal_idn,
			        :settle_s, :nplc, :samples, :sample_delay_s, :verdict)`

		if _, err := tx.NamedExecContext(ctx, runQuery, fromRun(run)); err != nil {
			return domain.WrapError(err, errcodes.StorageFault, "failed to insert run")
		}

		const pointQuery = `
			INSERT INTO points (run_id, seq, test, range_name, set_value, actual_set,
			                    dmm_mean, dmm_stdev, dut_mean, dut_stdev, low, high,
			                    unit, pass_fail, r_key, r_nom_ohm, r_act_ohm)
			VALUES (:run_id, :seq, :test, :range_name, :set_value, :actual_set,
			        :dmm_mean, :dmm_stdev, :dut_mean, :dut_stdev, :low, :high,
			        :unit, :pass_fail, :r_key, :r_nom_ohm, :r_act_ohm)`

		for seq, point := range run.Points {
			if _, err := tx.NamedExecContext(ctx, pointQuery, fromPoint(run.ID, seq, point)); err != nil {
				return domain.WrapError(err, errcodes.StorageFault,
					fmt.Sprintf("failed to insert point %d", seq))
			}
		}

		const stdQuery = `
			INSERT INTO standards (run_id, r_key, r_nom_ohm, r_act_ohm)
			VALUES (:run_id, :r_key, :r_nom_ohm, :r_act_ohm)`

		for _, std := range run.Standards {
			if _, err := tx.NamedExecContext(ctx, stdQuery, fromStandard(run.ID, std)); err != nil {
				return domain.WrapError(err, errcodes.StorageFault,
					fmt.Sprintf("failed to insert standard %s", std.Key))
			}
		}

		return nil
	})
}

// GetRun читает прогон целиком: строку runs, точки по порядку, эталоны.
func (a *Archive) GetRun(ctx context.Context, id string) (*entity.Run, error) {
	const runQuery = `
		SELECT id, started_at, finished_at, operator, smu_idn, dmm_idn, cal_idn,
		       settle_s, nplc, samples, sample_delay_s, verdict
		FROM runs
		WHERE id = ?`

	var rs runSchema
	if err := a.db.GetContext(ctx, &rs, runQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, fmt.Sprintf("run %s not found", id))
		}

		return nil, domain.WrapError(err, errcodes.StorageFault, "failed to get run")
	}

	run := rs.toDomain()

	const pointsQuery = `
		SELECT run_id, seq, test, range_name, set_value, actual_set,
		       dmm_mean, dmm_stdev, dut_mean, dut_stdev, low, high,
		       unit, pass_fail, r_key, r_nom_ohm, r_act_ohm
		FROM points
		WHERE run_id = ?
		ORDER BY seq`

	var points []pointSchema
	if err := a.db.SelectContext(ctx, &points, pointsQuery, id); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageFault, "failed to get points")
	}

	run.Points = make([]entity.PointResult, 0, len(points))
	for _, ps := range points {
		run.Points = append(run.Points, ps.toDomain())
	}

	const stdsQuery = `
		SELECT run_id, r_key, r_nom_ohm, r_act_ohm
		FROM standards
		WHERE run_id = ?
		ORDER BY r_key`

	var stds []standardSchema
	if err := a.db.SelectContext(ctx, &stds, stdsQuery, id); err != nil {
		return nil, domain.WrapError(err, errcodes.StorageFault, "failed to get standards")
	}

	run.Standards = make([]entity.Standard, 0, len(stds))
	for _, ss := range stds {
		run.Standards = append(run.Standards, ss.toDomain())
	}

	return run, nil
}
