package reconciling

import (
	"context"
	"sort"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// SourceAdapter é uma origem capaz de produzir registros diários para um período
type SourceAdapter interface {
	// Name identifica a origem nos registros e nos status
	Name() domain.SourceName
	// Fetch busca e agrega por dia os dados da origem, tratando paginação e fuso horário
	Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error)
}

// PeriodRunner é o contrato do orquestrador consumido pelas camadas externas
type PeriodRunner interface {
	RunForPeriod(ctx context.Context, cfg domain.PipelineConfig, period domain.PeriodRequest) (*domain.PeriodResult, error)
	RunWithComparisons(ctx context.Context, cfg domain.PipelineConfig, current domain.PeriodRequest) (*domain.ComparisonReport, error)
}

func sortedSources[V any](m map[domain.SourceName]V) []domain.SourceName {
	sources := make([]domain.SourceName, 0, len(m))
	for source := range m {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}
