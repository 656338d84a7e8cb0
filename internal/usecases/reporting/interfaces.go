package reporting

import (
	"context"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// Reporter é o serviço consumido pelos handlers HTTP
type Reporter interface {
	// GetPeriodMetrics executa o pipeline para o cliente no período informado
	GetPeriodMetrics(ctx context.Context, customerID string, period domain.PeriodRequest) (*domain.PeriodResult, error)
	// GetComparison executa o período atual e os mesmos períodos de um e dois anos atrás
	GetComparison(ctx context.Context, customerID string, period domain.PeriodRequest) (*domain.ComparisonReport, error)
	// GetSnapshots lê os snapshots diários persistidos pelo job de sincronização
	GetSnapshots(ctx context.Context, customerID string, period domain.PeriodRequest) ([]domain.DerivedMetricRecord, error)
}
