package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dailyMetricsTable = "daily_metrics dm"
	dailyMetricsCols  = "dm.id, dm.customer_id, dm.date, dm.metrics, dm.partial, dm.created_at, dm.updated_at"
)

//go:generate mockgen -source=daily_metrics.go -destination=mocks/mock_daily_metrics.go -package=mocks

type DailyMetricsRepository interface {
	SaveOrUpdate(ctx context.Context, entry *domain.DailyMetricsEntry) error
	GetByDateRange(ctx context.Context, customerID string, startDate, endDate time.Time) ([]*domain.DailyMetricsEntry, error)
}

type dailyMetricsRepository struct {
	conn postgres.Queryer
}

func NewDailyMetricsRepository(conn postgres.Queryer) DailyMetricsRepository {
	return &dailyMetricsRepository{
		conn: conn,
	}
}

func (r *dailyMetricsRepository) SaveOrUpdate(ctx context.Context, entry *domain.DailyMetricsEntry) error {
	sqlQuery, args, err := buildUpsertDailyMetrics(entry)
	if err != nil {
		return err
	}

	_, err = r.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *dailyMetricsRepository) GetByDateRange(ctx context.Context, customerID string, startDate, endDate time.Time) ([]*domain.DailyMetricsEntry, error) {
	query, args, err := buildSelectDailyMetricsByRange(customerID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.DailyMetricsEntry, 0)
	for rows.Next() {
		entry, err := scanDailyMetrics(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métricas diárias: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}

func buildUpsertDailyMetrics(entry *domain.DailyMetricsEntry) (string, []any, error) {
	metricsJSON, err := json.Marshal(entry.Metrics)
	if err != nil {
		return "", nil, fmt.Errorf("erro ao serializar métricas para JSON: %w", err)
	}

	sqlQuery, args, err := squirrel.StatementBuilder.
		Insert("daily_metrics").
		Columns("customer_id", "date", "metrics", "partial").
		Values(
			entry.CustomerID,
			entry.Date.Format(time.DateOnly),
			metricsJSON,
			entry.Partial,
		).
		Suffix(`
			ON CONFLICT (customer_id, date) DO UPDATE SET
				metrics = EXCLUDED.metrics,
				partial = EXCLUDED.partial,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return sqlQuery, args, nil
}

func buildSelectDailyMetricsByRange(customerID string, startDate, endDate time.Time) (string, []any, error) {
	query, args, err := squirrel.
		Select(dailyMetricsCols).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"dm.customer_id": customerID}).
		Where(squirrel.GtOrEq{"dm.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"dm.date": endDate.Format(time.DateOnly)}).
		OrderBy("dm.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return query, args, nil
}

func scanDailyMetrics(rows *sql.Rows) (*domain.DailyMetricsEntry, error) {
	entry := &domain.DailyMetricsEntry{}
	var metricsJSON []byte

	err := rows.Scan(
		&entry.ID,
		&entry.CustomerID,
		&entry.Date,
		&metricsJSON,
		&entry.Partial,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if metricsJSON != nil {
		if err := json.Unmarshal(metricsJSON, &entry.Metrics); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de metrics: %w", err)
		}
	}

	return entry, nil
}
