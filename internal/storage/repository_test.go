package storage

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/guttosm/sharecgt/internal/domain/models"
	"github.com/shopspring/decimal"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

const insertRunSQL = "INSERT INTO calculation_runs (id, created_at, source_files, trade_count)"

func newMockRepo(t *testing.T) (*runsRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &runsRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func sampleRun() *models.CalculationRun {
	return &models.CalculationRun{
		ID:         uuid.MustParse("6f1c1a52-3d4e-4a8b-9d61-0c2f7a1b9e10"),
		CreatedAt:  time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC),
		Sources:    []string{"2024.csv", "2025.csv"},
		TradeCount: 4,
		Results: []models.CalculationResult{
			{SecurityCode: "BHP", TotalGains: decimal.RequireFromString("475"), TotalLosses: decimal.Zero},
			{SecurityCode: "CBA", TotalGains: decimal.Zero, TotalLosses: decimal.RequireFromString("225")},
		},
	}
}

func TestNewRunsRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewRunsRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}

func TestSaveRun_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	run := sampleRun()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).
		WithArgs(run.ID.String(), run.CreatedAt, sqlmock.AnyArg(), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// pq.CopyIn is driver specific; sqlmock only sees a prepared statement and its execs.
	prep := mock.ExpectPrepare(".*calculation_results.*")
	prep.ExpectExec().WithArgs(run.ID.String(), 0, "BHP", "475", "0", "475", "0", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs(run.ID.String(), 1, "CBA", "0", "225", "0", "225", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0)) // final flush
	mock.ExpectCommit()

	if err := repo.SaveRun(context.Background(), run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRun_NoResultsSkipsCopy(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	run := sampleRun()
	run.Results = nil

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.SaveRun(context.Background(), run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveRun_Errors(t *testing.T) {
	cases := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "insert run",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "prepare copy",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectPrepare(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "row exec",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final flush",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(insertRunSQL)).WillReturnResult(sqlmock.NewResult(0, 1))
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.expect(mock)

			if err := repo.SaveRun(context.Background(), sampleRun()); err == nil {
				t.Fatalf("expected error")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestSaveRun_NilRun(t *testing.T) {
	repo, _, done := newMockRepo(t)
	defer done()
	if err := repo.SaveRun(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil run")
	}
}

func TestGetRun_SQLMock(t *testing.T) {
	runQuery := regexp.QuoteMeta("SELECT created_at, source_files, trade_count")
	resultsQuery := regexp.QuoteMeta("SELECT security_code, total_gains, total_losses")
	id := uuid.MustParse("6f1c1a52-3d4e-4a8b-9d61-0c2f7a1b9e10")
	created := time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(runQuery).WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "source_files", "trade_count"}).
				AddRow(created, "{2024.csv,2025.csv}", 4))
		mock.ExpectQuery(resultsQuery).WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"security_code", "total_gains", "total_losses"}).
				AddRow("BHP", "475.000000", "0.000000").
				AddRow("CBA", "0.000000", "225.000000"))

		run, err := repo.GetRun(context.Background(), id)
		if err != nil || run == nil {
			t.Fatalf("unexpected run=%+v err=%v", run, err)
		}
		if run.ID != id || !run.CreatedAt.Equal(created) || run.TradeCount != 4 {
			t.Fatalf("unexpected header: %+v", run)
		}
		if len(run.Sources) != 2 || run.Sources[1] != "2025.csv" {
			t.Fatalf("unexpected sources: %v", run.Sources)
		}
		if len(run.Results) != 2 || run.Results[0].SecurityCode != "BHP" || run.Results[1].SecurityCode != "CBA" {
			t.Fatalf("unexpected results: %+v", run.Results)
		}
		if !run.Results[0].TotalGains.Equal(decimal.NewFromInt(475)) || !run.Results[1].NetLoss().Equal(decimal.NewFromInt(225)) {
			t.Fatalf("unexpected totals: %+v", run.Results)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(runQuery).WithArgs(id.String()).WillReturnError(sql.ErrNoRows)

		run, err := repo.GetRun(context.Background(), id)
		if err != nil || run != nil {
			t.Fatalf("want nil,nil got run=%+v err=%v", run, err)
		}
	})

	t.Run("results query error", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(runQuery).WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "source_files", "trade_count"}).
				AddRow(created, "{}", 0))
		mock.ExpectQuery(resultsQuery).WillReturnError(dummyErr{})

		if _, err := repo.GetRun(context.Background(), id); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad decimal", func(t *testing.T) {
		repo, mock, done := newMockRepo(t)
		defer done()

		mock.ExpectQuery(runQuery).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "source_files", "trade_count"}).
				AddRow(created, "{}", 0))
		mock.ExpectQuery(resultsQuery).
			WillReturnRows(sqlmock.NewRows([]string{"security_code", "total_gains", "total_losses"}).
				AddRow("BHP", "not-a-number", "0"))

		if _, err := repo.GetRun(context.Background(), id); err == nil {
			t.Fatalf("expected scan error")
		}
	})
}
