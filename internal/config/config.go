package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Mongo             Mongo             `mapstructure:",squash"`
	Shopify           Shopify           `mapstructure:",squash"`
	GoogleAds         GoogleAds         `mapstructure:",squash"`
	Meta              Meta              `mapstructure:",squash"`
	Reporting         Reporting         `mapstructure:",squash"`
	ReportCache       ReportCache       `mapstructure:",squash"`
	Sources           Sources           `mapstructure:",squash"`
	DailySnapshotSync DailySnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	// AutoMigrate aplica as migrações pendentes na subida da API
	AutoMigrate bool `mapstructure:"database_auto_migrate"`
}

// Mongo guarda as configurações de cada cliente (contas e credenciais das origens)
type Mongo struct {
	URI      string `mapstructure:"mongo_uri"`
	Database string `mapstructure:"mongo_database"`
}

type Shopify struct {
	APIVersion string `mapstructure:"shopify_api_version"`
	PageSize   int    `mapstructure:"shopify_page_size"`
}

type GoogleAds struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	URL             string `mapstructure:"-"`
	Version         string `mapstructure:"google_ads_api_version"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	ClientID        string `mapstructure:"google_ads_client_id"`
	ClientSecret    string `mapstructure:"google_ads_client_secret"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	TokenURL        string `mapstructure:"google_ads_token_url"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	URL     string `mapstructure:"-"`
	Version string `mapstructure:"meta_version"`
}

// Reporting define a moeda e as constantes padrão dos relatórios
type Reporting struct {
	Currency string  `mapstructure:"reporting_currency"`
	Timezone string  `mapstructure:"reporting_timezone"`
	TaxRate  float64 `mapstructure:"reporting_tax_rate"`
	CogsRate float64 `mapstructure:"reporting_cogs_rate"`
}

type ReportCache struct {
	TTL time.Duration `mapstructure:"report_cache_ttl"`
}

// Sources controla o acesso às APIs externas (limite de taxa, circuit breaker e timeout)
type Sources struct {
	RateLimitPerSecond float64       `mapstructure:"source_rate_limit_per_second"`
	RateLimitBurst     int           `mapstructure:"source_rate_limit_burst"`
	BreakerFailures    uint32        `mapstructure:"source_breaker_failures"`
	BreakerTimeout     time.Duration `mapstructure:"source_breaker_timeout"`
	HTTPTimeout        time.Duration `mapstructure:"source_http_timeout"`
}

type DailySnapshotSync struct {
	CronSchedule      string `mapstructure:"daily_snapshot_sync_cron"`
	LookbackDays      int    `mapstructure:"daily_snapshot_sync_lookback_days"`
	MaxConcurrentJobs int    `mapstructure:"daily_snapshot_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"daily_snapshot_sync_enabled"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/marketing_metrics?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "marketing_metrics")

	viper.SetDefault("SHOPIFY_API_VERSION", "2024-10")
	viper.SetDefault("SHOPIFY_PAGE_SIZE", 250)

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_API_VERSION", "v19")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_ADS_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_ADS_TOKEN_URL", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")

	viper.SetDefault("REPORTING_CURRENCY", "DKK")
	viper.SetDefault("REPORTING_TIMEZONE", "Europe/Copenhagen")
	viper.SetDefault("REPORTING_TAX_RATE", 0.25)
	viper.SetDefault("REPORTING_COGS_RATE", 0.7)

	viper.SetDefault("REPORT_CACHE_TTL", "15m")

	viper.SetDefault("SOURCE_RATE_LIMIT_PER_SECOND", 5)
	viper.SetDefault("SOURCE_RATE_LIMIT_BURST", 10)
	viper.SetDefault("SOURCE_BREAKER_FAILURES", 5)
	viper.SetDefault("SOURCE_BREAKER_TIMEOUT", "60s")
	viper.SetDefault("SOURCE_HTTP_TIMEOUT", "30s")

	// Defaults para o snapshot diário de métricas
	viper.SetDefault("DAILY_SNAPSHOT_SYNC_CRON", "0 4 * * *")      // Todos os dias às 4h da manhã
	viper.SetDefault("DAILY_SNAPSHOT_SYNC_LOOKBACK_DAYS", 7)       // 7 dias para buscar dados
	viper.SetDefault("DAILY_SNAPSHOT_SYNC_MAX_CONCURRENT_JOBS", 3) // 3 clientes em paralelo
	viper.SetDefault("DAILY_SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimSuffix(config.Meta.BaseURL, "/"), config.Meta.Version)
	config.GoogleAds.URL = fmt.Sprintf("%s/%s", strings.TrimSuffix(config.GoogleAds.BaseURL, "/"), config.GoogleAds.Version)
	config.Reporting.Currency = strings.ToUpper(config.Reporting.Currency)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita combinações que deixariam o pipeline sem sentido
func (c *Config) Validate() error {
	if c.Reporting.Currency == "" {
		return fmt.Errorf("config: REPORTING_CURRENCY é obrigatório")
	}

	if c.Reporting.TaxRate < 0 || c.Reporting.TaxRate >= 1 {
		return fmt.Errorf("config: REPORTING_TAX_RATE deve estar entre 0 e 1, recebido %v", c.Reporting.TaxRate)
	}

	if c.Reporting.CogsRate < 0 || c.Reporting.CogsRate >= 1 {
		return fmt.Errorf("config: REPORTING_COGS_RATE deve estar entre 0 e 1, recebido %v", c.Reporting.CogsRate)
	}

	if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
		return fmt.Errorf("config: REPORTING_TIMEZONE inválido: %w", err)
	}

	if c.DailySnapshotSync.LookbackDays < 1 {
		return fmt.Errorf("config: DAILY_SNAPSHOT_SYNC_LOOKBACK_DAYS deve ser maior que zero")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
