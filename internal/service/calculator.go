package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/sharecgt/internal/domain/models"
	"github.com/guttosm/sharecgt/internal/gains"
	"github.com/guttosm/sharecgt/internal/ingestion"
	"github.com/guttosm/sharecgt/internal/logger"
	"github.com/guttosm/sharecgt/internal/storage"
)

var (
	// ErrRunNotFound is returned by GetRun for an unknown run id.
	ErrRunNotFound = errors.New("calculation run not found")

	// ErrPersistenceDisabled is returned by GetRun when no repository is configured.
	ErrPersistenceDisabled = errors.New("calculation runs are not persisted")
)

// CalculatorService turns trade files into capital gains results.
type CalculatorService interface {
	Calculate(ctx context.Context, sources []ingestion.Source) (*models.CalculationRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*models.CalculationRun, error)
}

type calculatorService struct {
	repo     storage.RunsRepository
	parallel int

	// indirections for tests
	now   func() time.Time
	newID func() uuid.UUID
}

// NewCalculatorService builds the service. repo may be nil, in which case runs
// are computed but never stored. parallel bounds concurrent file parsing
// (0 picks a default).
func NewCalculatorService(repo storage.RunsRepository, parallel int) CalculatorService {
	return &calculatorService{
		repo:     repo,
		parallel: parallel,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Calculate parses every source, matches all trades and returns the run.
//
// Behavior:
//   - Any parse failure or oversell aborts the run; nothing is stored.
//   - The oversell error is returned as is so callers can match it with errors.As.
//   - When a repository is configured the run is saved before it is returned.
func (s *calculatorService) Calculate(ctx context.Context, sources []ingestion.Source) (*models.CalculationRun, error) {
	start := time.Now()

	trades, err := ingestion.ParseSources(ctx, sources, s.parallel)
	if err != nil {
		return nil, err
	}

	results, err := gains.Calculate(trades)
	if err != nil {
		var oversell *gains.OversellError
		if errors.As(err, &oversell) {
			logger.L().Warn().
				Str("security", oversell.SecurityCode).
				Time("trade_date", oversell.TradeDate).
				Int64("unmatched", oversell.Unmatched).
				Msg("sell exceeds open holdings")
		}
		return nil, err
	}

	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name()
	}

	run := &models.CalculationRun{
		ID:         s.newID(),
		CreatedAt:  s.now().UTC(),
		Sources:    names,
		TradeCount: len(trades),
		Results:    results,
	}

	for _, r := range results {
		logger.L().Debug().
			Str("run_id", run.ID.String()).
			Str("security", r.SecurityCode).
			Str("gains", r.TotalGains.String()).
			Str("losses", r.TotalLosses.String()).
			Int("disposals", len(r.Disposals)).
			Msg("security matched")
	}

	if s.repo != nil {
		if err := s.repo.SaveRun(ctx, run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}

	logger.L().Info().
		Str("run_id", run.ID.String()).
		Int("files", len(sources)).
		Int("trades", len(trades)).
		Int("securities", len(results)).
		Bool("stored", s.repo != nil).
		Dur("elapsed", time.Since(start)).
		Msg("calculation finished")

	return run, nil
}

// GetRun returns a stored run without its disposals.
func (s *calculatorService) GetRun(ctx context.Context, id uuid.UUID) (*models.CalculationRun, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}
