//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/guttosm/sharecgt/internal/domain/models"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "sharecgt",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=sharecgt sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", "postgres", "postgres", host, port.Port(), "sharecgt")
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	// migrations path relative to this test file (internal/storage → ../../db/migrations)
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRepository_Integration_TableDriven(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewRunsRepository(db)
	ctx := context.Background()
	created := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		run  models.CalculationRun
	}{
		{
			name: "two securities",
			run: models.CalculationRun{
				ID:         uuid.New(),
				CreatedAt:  created,
				Sources:    []string{"2023.csv", "2024.csv"},
				TradeCount: 6,
				Results: []models.CalculationResult{
					{SecurityCode: "CBA", TotalGains: decimal.Zero, TotalLosses: decimal.RequireFromString("225")},
					{SecurityCode: "BHP", TotalGains: decimal.RequireFromString("188.335"), TotalLosses: decimal.Zero},
				},
			},
		},
		{
			name: "no results",
			run: models.CalculationRun{
				ID:         uuid.New(),
				CreatedAt:  created,
				Sources:    []string{"buys-only.csv"},
				TradeCount: 2,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := repo.SaveRun(ctx, &tc.run); err != nil {
				t.Fatalf("SaveRun: %v", err)
			}

			got, err := repo.GetRun(ctx, tc.run.ID)
			if err != nil || got == nil {
				t.Fatalf("GetRun: got=%+v err=%v", got, err)
			}
			if !got.CreatedAt.Equal(tc.run.CreatedAt) || got.TradeCount != tc.run.TradeCount || len(got.Sources) != len(tc.run.Sources) {
				t.Fatalf("header mismatch: got %+v want %+v", got, tc.run)
			}
			if len(got.Results) != len(tc.run.Results) {
				t.Fatalf("results: want %d got %d", len(tc.run.Results), len(got.Results))
			}
			for i, want := range tc.run.Results {
				r := got.Results[i]
				if r.SecurityCode != want.SecurityCode || !r.TotalGains.Equal(want.TotalGains) || !r.TotalLosses.Equal(want.TotalLosses) {
					t.Fatalf("result %d: got %+v want %+v", i, r, want)
				}
			}
		})
	}

	t.Run("duplicate id rolls back", func(t *testing.T) {
		run := cases[0].run
		if err := repo.SaveRun(ctx, &run); err == nil {
			t.Fatalf("expected primary key violation")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := repo.GetRun(ctx, uuid.New())
		if err != nil || got != nil {
			t.Fatalf("want nil,nil got %+v, %v", got, err)
		}
	})

	t.Run("stored net figures", func(t *testing.T) {
		var netLoss decimal.Decimal
		var isGain bool
		err := db.QueryRow(`SELECT net_loss, is_gain FROM calculation_results WHERE run_id = $1 AND security_code = 'CBA'`,
			cases[0].run.ID.String()).Scan(&netLoss, &isGain)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if !netLoss.Equal(decimal.NewFromInt(225)) || isGain {
			t.Fatalf("got net_loss=%s is_gain=%v", netLoss, isGain)
		}
	})
}
