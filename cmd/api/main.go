package main

import (
	"context"
	"net/http"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/database/mongo"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/migration"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/repository"
	"github.com/vfg2006/marketing-metrics-api/internal/api"
	"github.com/vfg2006/marketing-metrics-api/internal/api/handler"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/currency"
	"github.com/vfg2006/marketing-metrics-api/internal/scheduler"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reconciling"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reporting"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	if cfg.Database.AutoMigrate {
		if _, err := migration.Apply(ctx, pgConn, migration.Migrations); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações do PostgreSQL")
		}
	}

	mongoConn := mongoconn(ctx, cfg.Mongo)
	defer mongoConn.Close(context.Background())

	settingsRepo := repository.NewCustomerSettingsRepository(mongoConn.Database)
	dailyMetricsRepo := repository.NewDailyMetricsRepository(pgConn)

	normalizer, err := currency.LoadBundled()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar tabela de câmbio")
	}
	if !normalizer.Has(cfg.Reporting.Currency) {
		logrus.WithField("currency", cfg.Reporting.Currency).Fatal("Moeda de relatório sem taxa de câmbio na tabela")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	sourceMetrics := integrator.NewMetrics(registry)
	guardSettings := integrator.GuardSettingsFromConfig(cfg.Sources)

	// Cada origem tem seu próprio cliente HTTP, limite de taxa e circuit breaker
	sourceHTTPClient := func() *http.Client {
		return &http.Client{Timeout: cfg.Sources.HTTPTimeout}
	}

	shopifyIntegrator := shopify.New(shopifyclient.NewClient(cfg.Shopify.APIVersion, cfg.Shopify.PageSize, sourceHTTPClient()))
	googleAdsIntegrator := googleads.New(googleadsclient.NewClient(cfg.GoogleAds, sourceHTTPClient()))
	metaIntegrator := meta.New(metaclient.NewClient(cfg.Meta.URL, sourceHTTPClient()))

	pipeline := reconciling.NewService(
		normalizer,
		integrator.NewGuard(shopifyIntegrator, guardSettings, sourceMetrics),
		integrator.NewGuard(googleAdsIntegrator, guardSettings, sourceMetrics),
		integrator.NewGuard(metaIntegrator, guardSettings, sourceMetrics),
	)

	reportingService := reporting.NewService(cfg.Reporting, cfg.ReportCache.TTL, pipeline, settingsRepo, dailyMetricsRepo)

	dailySnapshotSyncService := scheduler.NewDailySnapshotSyncService(settingsRepo, dailyMetricsRepo, pipeline, cfg)
	if err := dailySnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshots diários")
	} else {
		logrus.Info("Agendador de snapshots diários iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		handler.CronJobServices{DailySnapshotSyncService: dailySnapshotSyncService},
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		handler.HealthCheck{Name: "postgres", Check: pgConn.Ping},
		handler.HealthCheck{Name: "mongo", Check: mongoConn.Ping},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// mongoconn conecta no armazenamento de configurações dos clientes
func mongoconn(ctx context.Context, mongoConfig config.Mongo) *mongo.Connection {
	conn, err := mongo.NewConnection(ctx, mongoConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao MongoDB")
	}

	logrus.Info("Conexão com MongoDB estabelecida com sucesso")
	return conn
}
