package period

import (
	"context"
	"errors"

	apperrors "github.com/metaview/metaview/internal/errors"
	"github.com/metaview/metaview/internal/model"
	"github.com/metaview/metaview/internal/repository/common"
	"github.com/jackc/pgx/v5"
)

// periodRepository implements Repository using PostgreSQL
type periodRepository struct {
	pool common.Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool common.Pool) Repository {
	return &periodRepository{
		pool: pool,
	}
}

// List retrieves all period timings ordered by period number
func (r *periodRepository) List(ctx context.Context) ([]model.PeriodWindow, error) {
	sql := "SELECT period, start_time, end_time, display_time FROM period_timings ORDER BY period"
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list period timings")
	}
	defer rows.Close()

	windows := []model.PeriodWindow{}
	for rows.Next() {
		var w model.PeriodWindow
		if err := rows.Scan(&w.Period, &w.StartTime, &w.EndTime, &w.DisplayTime); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan period timing row")
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate period timing rows")
	}

	return windows, nil
}

// GetByPeriod retrieves a single period timing
func (r *periodRepository) GetByPeriod(ctx context.Context, period int) (*model.PeriodWindow, error) {
	sql := "SELECT period, start_time, end_time, display_time FROM period_timings WHERE period = $1"
	row := r.pool.QueryRow(ctx, sql, period)

	var w model.PeriodWindow
	err := row.Scan(&w.Period, &w.StartTime, &w.EndTime, &w.DisplayTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "period timing not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get period timing")
	}

	return &w, nil
}

// Upsert inserts a period timing or replaces an existing one
func (r *periodRepository) Upsert(ctx context.Context, window *model.PeriodWindow) error {
	sql := `INSERT INTO period_timings (period, start_time, end_time, display_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (period) DO UPDATE SET start_time = $2, end_time = $3, display_time = $4`
	_, err := r.pool.Exec(ctx, sql, window.Period, window.StartTime, window.EndTime, window.DisplayTime)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to upsert period timing")
	}
	return nil
}

// Delete removes a period timing
func (r *periodRepository) Delete(ctx context.Context, period int) error {
	sql := "DELETE FROM period_timings WHERE period = $1"
	_, err := r.pool.Exec(ctx, sql, period)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete period timing")
	}
	return nil
}
