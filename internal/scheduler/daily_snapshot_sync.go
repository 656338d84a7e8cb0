package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reconciling"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

// DailySnapshotSyncConfig representa a configuração do agendador de snapshots diários
type DailySnapshotSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// SyncSummary resume uma execução da sincronização
type SyncSummary struct {
	Customers int `json:"customers"`
	Failed    int `json:"failed"`
	Partial   int `json:"partial"`
	Saved     int `json:"saved"`
}

// DailySnapshotSyncService executa o pipeline dos últimos dias para todos os clientes
// ativos e persiste o resultado de cada dia
type DailySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              DailySnapshotSyncConfig
	reporting           config.Reporting
	location            *time.Location
	settingsRepo        repository.CustomerSettingsRepository
	dailyMetricsRepo    repository.DailyMetricsRepository
	runner              reconciling.PeriodRunner
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         SyncSummary
}

func NewDailySnapshotSyncService(
	settingsRepo repository.CustomerSettingsRepository,
	dailyMetricsRepo repository.DailyMetricsRepository,
	runner reconciling.PeriodRunner,
	appConfig *config.Config,
) *DailySnapshotSyncService {
	syncConfig := DailySnapshotSyncConfig{
		CronSchedule:      appConfig.DailySnapshotSync.CronSchedule,
		LookbackDays:      appConfig.DailySnapshotSync.LookbackDays,
		MaxConcurrentJobs: appConfig.DailySnapshotSync.MaxConcurrentJobs,
		SyncEnabled:       appConfig.DailySnapshotSync.Enabled,
	}
	if syncConfig.MaxConcurrentJobs < 1 {
		syncConfig.MaxConcurrentJobs = 1
	}
	if syncConfig.LookbackDays < 1 {
		syncConfig.LookbackDays = 1
	}

	location := utils.LoadLocation(appConfig.Reporting.Timezone)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
		"timezone":            location.String(),
	}).Info("Configuração do agendador de snapshots diários carregada")

	return &DailySnapshotSyncService{
		scheduler:        gocron.NewScheduler(location),
		config:           syncConfig,
		reporting:        appConfig.Reporting,
		location:         location,
		settingsRepo:     settingsRepo,
		dailyMetricsRepo: dailyMetricsRepo,
		runner:           runner,
		now:              time.Now,
	}
}

// Start inicia o agendador
func (s *DailySnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de snapshots diários desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de snapshots diários")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots diários: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de snapshots diários")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAll garante uma única execução por vez
func (s *DailySnapshotSyncService) syncAll(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de snapshots já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	summary := s.RunOnce(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = s.now()
	s.lastSummary = summary
	s.syncMutex.Unlock()
}

// RunOnce executa a sincronização de forma síncrona para todos os clientes ativos
func (s *DailySnapshotSyncService) RunOnce(ctx context.Context) SyncSummary {
	startTime := s.now()
	period := s.lookbackPeriod()

	customers, err := s.settingsRepo.ListActive(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar clientes ativos para sincronização de snapshots")
		return SyncSummary{}
	}

	if len(customers) == 0 {
		logrus.Info("Nenhum cliente ativo encontrado para sincronização de snapshots")
		return SyncSummary{}
	}

	logrus.WithFields(logrus.Fields{
		"customers":  len(customers),
		"start_date": period.StartDate.Format(time.DateOnly),
		"end_date":   period.EndDate.Format(time.DateOnly),
	}).Info("Iniciando sincronização de snapshots diários")

	var (
		summary   = SyncSummary{Customers: len(customers)}
		summaryMu sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, s.config.MaxConcurrentJobs)
	)

	for _, customer := range customers {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(settings *domain.CustomerSettings) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			saved, partial, err := s.syncCustomer(ctx, settings, period)

			summaryMu.Lock()
			defer summaryMu.Unlock()
			summary.Saved += saved
			if err != nil {
				summary.Failed++
			}
			if partial {
				summary.Partial++
			}
		}(customer)
	}

	wg.Wait()

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"customers": summary.Customers,
		"failed":    summary.Failed,
		"partial":   summary.Partial,
		"saved":     summary.Saved,
	}).Info("Sincronização de snapshots diários concluída")

	return summary
}

func (s *DailySnapshotSyncService) syncCustomer(ctx context.Context, settings *domain.CustomerSettings, period domain.PeriodRequest) (int, bool, error) {
	logger := logrus.WithField("customer_id", settings.ID)

	result, err := s.runner.RunForPeriod(ctx, reporting.BuildPipelineConfig(settings, s.reporting), period)
	if err != nil {
		logger.WithError(err).Error("Erro ao executar pipeline para snapshot do cliente")
		return 0, false, err
	}

	partial := result.Partial()
	saved := 0

	byDate := make(map[string]domain.DerivedMetricRecord, len(result.Records))
	for _, record := range result.Records {
		byDate[record.Date] = record
	}

	// dias sem movimento também são gravados para sobrescrever snapshots antigos
	for _, day := range period.Days() {
		date, _ := time.Parse(time.DateOnly, day)

		record, ok := byDate[day]
		if !ok {
			record = emptyDay(day)
		}

		entry := &domain.DailyMetricsEntry{
			CustomerID: settings.ID,
			Date:       date,
			Metrics:    record,
			Partial:    partial,
		}

		if err := s.dailyMetricsRepo.SaveOrUpdate(ctx, entry); err != nil {
			logger.WithFields(logrus.Fields{
				"date":  day,
				"error": err.Error(),
			}).Error("Erro ao salvar snapshot diário no banco de dados")
			return saved, partial, err
		}
		saved++
	}

	logger.WithFields(logrus.Fields{
		"run_id":  result.RunID,
		"saved":   saved,
		"partial": partial,
	}).Info("Snapshots do cliente salvos com sucesso")

	return saved, partial, nil
}

func emptyDay(day string) domain.DerivedMetricRecord {
	var record domain.DerivedMetricRecord
	record.Date = day
	record.AdSpendBySource = make(map[domain.SourceName]float64)
	record.ImpressionsBySource = make(map[domain.SourceName]int64)
	record.ClicksBySource = make(map[domain.SourceName]int64)
	return record
}

// lookbackPeriod vai de hoje-N até ontem, no fuso dos relatórios
func (s *DailySnapshotSyncService) lookbackPeriod() domain.PeriodRequest {
	today := s.now().In(s.location)
	yesterday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	return domain.PeriodRequest{
		StartDate: yesterday.AddDate(0, 0, -(s.config.LookbackDays - 1)),
		EndDate:   yesterday,
	}
}

// TriggerManualSync inicia manualmente uma sincronização
func (s *DailySnapshotSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		logrus.Info("Sincronização de snapshots já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("Iniciando sincronização manual de snapshots diários")
	go s.syncAll(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DailySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_summary":      s.lastSummary,
	}
}
