package reporting

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reconciling"
)

type reportKind string

const (
	kindPeriod     reportKind = "period"
	kindComparison reportKind = "comparison"
)

type Service struct {
	defaults         config.Reporting
	runner           reconciling.PeriodRunner
	settingsRepo     repository.CustomerSettingsRepository
	dailyMetricsRepo repository.DailyMetricsRepository
	cache            *gocache.Cache
}

var _ Reporter = (*Service)(nil)

// NewService cria o serviço de relatórios. ttl <= 0 desliga o cache.
func NewService(
	defaults config.Reporting,
	ttl time.Duration,
	runner reconciling.PeriodRunner,
	settingsRepo repository.CustomerSettingsRepository,
	dailyMetricsRepo repository.DailyMetricsRepository,
) *Service {
	var cache *gocache.Cache
	if ttl > 0 {
		cache = gocache.New(ttl, 2*ttl)
	}

	return &Service{
		defaults:         defaults,
		runner:           runner,
		settingsRepo:     settingsRepo,
		dailyMetricsRepo: dailyMetricsRepo,
		cache:            cache,
	}
}

func (s *Service) GetPeriodMetrics(ctx context.Context, customerID string, period domain.PeriodRequest) (*domain.PeriodResult, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(customerID, period, kindPeriod)
	if cached, ok := s.fromCache(key); ok {
		return cached.(*domain.PeriodResult), nil
	}

	cfg, err := s.pipelineConfig(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result, err := s.runner.RunForPeriod(ctx, cfg, period)
	if err != nil {
		return nil, err
	}

	// Resultado parcial não entra no cache para que a próxima chamada tente de novo
	if !result.Partial() {
		s.toCache(key, result)
	}

	return result, nil
}

func (s *Service) GetComparison(ctx context.Context, customerID string, period domain.PeriodRequest) (*domain.ComparisonReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(customerID, period, kindComparison)
	if cached, ok := s.fromCache(key); ok {
		return cached.(*domain.ComparisonReport), nil
	}

	cfg, err := s.pipelineConfig(ctx, customerID)
	if err != nil {
		return nil, err
	}

	report, err := s.runner.RunWithComparisons(ctx, cfg, period)
	if err != nil {
		return nil, err
	}

	if !report.Current.Partial() && !report.LastYear.Partial() && !report.TwoYearsAgo.Partial() {
		s.toCache(key, report)
	}

	return report, nil
}

func (s *Service) GetSnapshots(ctx context.Context, customerID string, period domain.PeriodRequest) ([]domain.DerivedMetricRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.settingsRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}

	entries, err := s.dailyMetricsRepo.GetByDateRange(ctx, customerID, period.StartDate, period.EndDate)
	if err != nil {
		return nil, &domain.StorageError{Op: "buscar snapshots do cliente " + customerID, Err: err}
	}

	records := make([]domain.DerivedMetricRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entry.Metrics)
	}

	return records, nil
}

func (s *Service) pipelineConfig(ctx context.Context, customerID string) (domain.PipelineConfig, error) {
	settings, err := s.settingsRepo.GetByID(ctx, customerID)
	if err != nil {
		return domain.PipelineConfig{}, err
	}

	if settings.Status != domain.CustomerStatusActive {
		logrus.WithField("customer_id", customerID).Warn("reporting: running pipeline for inactive customer")
	}

	return BuildPipelineConfig(settings, s.defaults), nil
}

func (s *Service) fromCache(key string) (any, bool) {
	if s.cache == nil {
		return nil, false
	}

	value, ok := s.cache.Get(key)
	if ok {
		logrus.WithField("cache_key", key).Debug("reporting: cache hit")
	}
	return value, ok
}

func (s *Service) toCache(key string, value any) {
	if s.cache == nil {
		return
	}
	s.cache.SetDefault(key, value)
}

func cacheKey(customerID string, period domain.PeriodRequest, kind reportKind) string {
	return fmt.Sprintf("%s|%s|%s", customerID, period.String(), kind)
}
