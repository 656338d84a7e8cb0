package reconciling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/internal/currency"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/log"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

// Stage é a etapa corrente de uma execução do pipeline
type Stage string

const (
	StageIdle            Stage = "idle"
	StageFetchingSources Stage = "fetching_sources"
	StageMerging         Stage = "merging"
	StageDeriving        Stage = "deriving"
	StageDone            Stage = "done"
)

// sourceOutcome é o resultado já resolvido (sucesso ou falha) de uma origem
type sourceOutcome struct {
	status domain.SourceStatus
	batch  *domain.SourceBatch
}

// Service orquestra as origens, a conversão de moeda, o merge e o cálculo das métricas.
// Não guarda estado entre execuções.
type Service struct {
	sources    []SourceAdapter
	normalizer *currency.Normalizer
	derive     func([]domain.DailyMetricRecord, domain.MetricConstants) []domain.DerivedMetricRecord
}

var _ PeriodRunner = (*Service)(nil)

// NewService cria o orquestrador com as origens disponíveis
func NewService(normalizer *currency.Normalizer, sources ...SourceAdapter) *Service {
	return &Service{
		sources:    sources,
		normalizer: normalizer,
		derive:     DeriveMetrics,
	}
}

// RunForPeriod executa o pipeline completo para um período
func (s *Service) RunForPeriod(ctx context.Context, cfg domain.PipelineConfig, period domain.PeriodRequest) (*domain.PeriodResult, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	return s.run(ctx, cfg, period)
}

// RunWithComparisons executa o período atual e os mesmos períodos de um e dois anos atrás
func (s *Service) RunWithComparisons(ctx context.Context, cfg domain.PipelineConfig, current domain.PeriodRequest) (*domain.ComparisonReport, error) {
	if err := current.Validate(); err != nil {
		return nil, err
	}

	periods := []domain.PeriodRequest{
		current,
		current.ShiftYears(-1),
		current.ShiftYears(-2),
	}

	results := make([]*domain.PeriodResult, len(periods))
	errs := make([]error, len(periods))

	wg := sync.WaitGroup{}
	for i, period := range periods {
		wg.Add(1)
		go func(i int, period domain.PeriodRequest) {
			defer wg.Done()
			results[i], errs[i] = s.run(ctx, cfg, period)
		}(i, period)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("reconciling: period %s: %w", periods[i], err)
		}
	}

	return &domain.ComparisonReport{
		Current:          results[0],
		LastYear:         results[1],
		TwoYearsAgo:      results[2],
		DeltaLastYear:    CompareTotals(results[0].Totals, results[1].Totals),
		DeltaTwoYearsAgo: CompareTotals(results[0].Totals, results[2].Totals),
	}, nil
}

func (s *Service) run(ctx context.Context, cfg domain.PipelineConfig, period domain.PeriodRequest) (*domain.PeriodResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		runID = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	logger := log.Entry(ctx).WithFields(logrus.Fields{
		"run_id":      runID,
		"customer_id": cfg.CustomerID,
		"start_date":  period.StartDate.Format(time.DateOnly),
		"end_date":    period.EndDate.Format(time.DateOnly),
	})

	startTime := time.Now()
	logger.WithField("stage", StageFetchingSources).Debug("reconciling: fetching sources")

	outcomes := s.fetchAll(ctx, cfg, period, logger)

	result := &domain.PeriodResult{
		RunID:   runID,
		Period:  period,
		Sources: make([]domain.SourceStatus, 0, len(outcomes)),
	}

	batches := make([]domain.SourceBatch, 0, len(outcomes))
	for _, outcome := range outcomes {
		result.Sources = append(result.Sources, outcome.status)
		if outcome.batch != nil {
			batches = append(batches, *outcome.batch)
		}
	}

	records, totals, err := s.reconcile(batches, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("reconciling: pipeline failed")
		return nil, err
	}

	result.Records = records
	result.Totals = totals

	logger.WithFields(logrus.Fields{
		"stage":    StageDone,
		"records":  len(records),
		"partial":  result.Partial(),
		"duration": time.Since(startTime).String(),
	}).Info("reconciling: period processed")

	return result, nil
}

// fetchAll dispara todas as origens em paralelo e espera todas terminarem, com sucesso ou não
func (s *Service) fetchAll(ctx context.Context, cfg domain.PipelineConfig, period domain.PeriodRequest, logger *logrus.Entry) []sourceOutcome {
	outcomes := make([]sourceOutcome, len(s.sources))

	wg := sync.WaitGroup{}
	for i, source := range s.sources {
		account, ok := cfg.Accounts[source.Name()]
		if !ok || account.AccountID == "" {
			outcomes[i] = sourceOutcome{
				status: domain.SourceStatus{Source: source.Name(), Status: domain.SourceStatusSkipped},
			}
			continue
		}

		wg.Add(1)
		go func(i int, source SourceAdapter, account domain.SourceAccount) {
			defer wg.Done()
			outcomes[i] = s.fetchSource(ctx, source, account, period, logger)
		}(i, source, account)
	}
	wg.Wait()

	return outcomes
}

// fetchSource transforma qualquer falha da origem em um resultado vazio marcado como falho
func (s *Service) fetchSource(
	ctx context.Context,
	source SourceAdapter,
	account domain.SourceAccount,
	period domain.PeriodRequest,
	logger *logrus.Entry,
) (outcome sourceOutcome) {
	name := source.Name()

	defer func() {
		if r := recover(); r != nil {
			err := domain.NewSourceError(name, domain.SourceErrorUnavailable, fmt.Errorf("panic: %v", r))
			logger.WithField("source", name).WithError(err).Error("reconciling: source panicked, using empty data")
			outcome = failedOutcome(name, err)
		}
	}()

	batch, err := source.Fetch(ctx, domain.FetchRequest{
		AccountID:   account.AccountID,
		Credentials: account.Credentials,
		StartDate:   period.StartDate,
		EndDate:     period.EndDate,
		Filters:     account.Filters,
	})
	if err != nil {
		sourceErr := domain.AsSourceError(name, err)
		logger.WithFields(logrus.Fields{
			"source": name,
			"kind":   sourceErr.Kind,
		}).WithError(err).Warn("reconciling: source unavailable, using empty data")
		return failedOutcome(name, sourceErr)
	}

	if batch == nil {
		batch = &domain.SourceBatch{Source: name}
	}

	// registros sempre carregam a origem que os produziu
	for i := range batch.Records {
		batch.Records[i].Source = name
	}
	batch.Source = name

	return sourceOutcome{
		status: domain.SourceStatus{
			Source:   name,
			Status:   domain.SourceStatusOK,
			Currency: batch.Currency,
			Records:  len(batch.Records),
		},
		batch: batch,
	}
}

// reconcile executa normalização, merge e cálculo. Qualquer pânico vira PipelineInternalError.
func (s *Service) reconcile(
	batches []domain.SourceBatch,
	cfg domain.PipelineConfig,
	logger *logrus.Entry,
) (records []domain.DerivedMetricRecord, totals domain.DerivedMetricRecord, err error) {
	stage := StageMerging

	defer func() {
		if r := recover(); r != nil {
			err = &domain.PipelineInternalError{Stage: string(stage), Cause: r}
		}
	}()

	logger.WithField("stage", stage).Debug("reconciling: merging sources")

	normalized := make([][]domain.RawDailyRecord, 0, len(batches))
	uniqueCustomers := 0
	for _, batch := range batches {
		normalized = append(normalized, s.normalizer.NormalizeBatch(batch, cfg.ReportingCurrency).Records)
		uniqueCustomers += batch.UniqueCustomers
	}

	merged := Merge(normalized...)

	stage = StageDeriving
	logger.WithField("stage", stage).Debug("reconciling: deriving metrics")

	records = s.derive(merged, cfg.Constants)
	totals = CalculateTotals(records, cfg.Constants, uniqueCustomers)

	return records, totals, nil
}

func failedOutcome(name domain.SourceName, err *domain.SourceError) sourceOutcome {
	return sourceOutcome{
		status: domain.SourceStatus{
			Source: name,
			Status: domain.SourceStatusFailed,
			Error:  err.Error(),
		},
	}
}
