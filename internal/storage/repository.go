package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/guttosm/sharecgt/internal/domain/models"
	pq "github.com/lib/pq"
)

// RunsRepository defines contract for storing calculation runs.
type RunsRepository interface {
	SaveRun(ctx context.Context, run *models.CalculationRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*models.CalculationRun, error)
}

type runsRepository struct {
	db *sql.DB
}

func NewRunsRepository(db *sql.DB) RunsRepository {
	return &runsRepository{db: db}
}

// SaveRun stores the run header and its per-security results in a single transaction.
//
// Results are bulk loaded with COPY in their original order; disposals are not stored.
func (r *runsRepository) SaveRun(ctx context.Context, run *models.CalculationRun) error {
	if run == nil {
		return errors.New("storage: nil run")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO calculation_runs (id, created_at, source_files, trade_count)
		VALUES ($1, $2, $3, $4)
	`, run.ID.String(), run.CreatedAt, pq.Array(run.Sources), run.TradeCount); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	if len(run.Results) == 0 {
		return tx.Commit()
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"calculation_results",
		"run_id",
		"position",
		"security_code",
		"total_gains",
		"total_losses",
		"net_gain",
		"net_loss",
		"is_gain",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i, res := range run.Results {
		if _, err := stmt.ExecContext(ctx,
			run.ID.String(),
			i,
			res.SecurityCode,
			res.TotalGains.String(),
			res.TotalLosses.String(),
			res.NetGain().String(),
			res.NetLoss().String(),
			res.IsGain(),
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("copy result %s: %w", res.SecurityCode, err)
		}
	}

	// flush the COPY buffer
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetRun loads a stored run with its results in calculation order.
// It returns nil, nil when no run has the given id.
func (r *runsRepository) GetRun(ctx context.Context, id uuid.UUID) (*models.CalculationRun, error) {
	run := models.CalculationRun{ID: id}

	err := r.db.QueryRowContext(ctx, `
		SELECT created_at, source_files, trade_count
		FROM calculation_runs
		WHERE id = $1
	`, id.String()).Scan(&run.CreatedAt, pq.Array(&run.Sources), &run.TradeCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT security_code, total_gains, total_losses
		FROM calculation_results
		WHERE run_id = $1
		ORDER BY position
	`, id.String())
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	run.Results = []models.CalculationResult{}
	for rows.Next() {
		var res models.CalculationResult
		if err := rows.Scan(&res.SecurityCode, &res.TotalGains, &res.TotalLosses); err != nil {
			return nil, err
		}
		run.Results = append(run.Results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}
