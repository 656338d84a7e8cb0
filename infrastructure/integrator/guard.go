package integrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"golang.org/x/time/rate"
)

const outcomeBreakerOpen = "breaker_open"

// Source é qualquer origem de dados do pipeline
type Source interface {
	Name() domain.SourceName
	Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error)
}

// Metrics agrupa as métricas de chamadas às plataformas externas
type Metrics struct {
	fetches      *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	openBreakers *prometheus.GaugeVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "source_fetch_total",
			Help: "Source fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Source fetch latency including pagination.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"source"}),
		openBreakers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "source_breakers_open",
			Help: "Accounts whose circuit breaker is currently open, per source.",
		}, []string{"source"}),
	}

	registerer.MustRegister(m.fetches, m.duration, m.openBreakers)

	return m
}

type GuardSettings struct {
	RatePerSecond   float64
	Burst           int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

func GuardSettingsFromConfig(cfg config.Sources) GuardSettings {
	return GuardSettings{
		RatePerSecond:   cfg.RateLimitPerSecond,
		Burst:           cfg.RateLimitBurst,
		BreakerFailures: cfg.BreakerFailures,
		BreakerTimeout:  cfg.BreakerTimeout,
	}
}

// Guard protege uma origem com limite de taxa e um circuit breaker por conta, e
// registra métricas. Falhas de credencial ou de payload não abrem o circuito.
// O limite de taxa é da origem; o circuito de uma conta não afeta as demais.
type Guard struct {
	next     Source
	limiter  *rate.Limiter
	settings GuardSettings
	metrics  *Metrics

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[*domain.SourceBatch]
}

func NewGuard(next Source, settings GuardSettings, metrics *Metrics) *Guard {
	limit := rate.Inf
	if settings.RatePerSecond > 0 {
		limit = rate.Limit(settings.RatePerSecond)
	}

	if settings.Burst < 1 {
		settings.Burst = 1
	}
	if settings.BreakerFailures == 0 {
		settings.BreakerFailures = 5
	}

	return &Guard{
		next:     next,
		limiter:  rate.NewLimiter(limit, settings.Burst),
		settings: settings,
		metrics:  metrics,
		breakers: make(map[string]*gobreaker.CircuitBreaker[*domain.SourceBatch]),
	}
}

// breakerFor devolve o circuit breaker da conta, criando-o na primeira chamada
func (g *Guard) breakerFor(accountID string) *gobreaker.CircuitBreaker[*domain.SourceBatch] {
	g.mu.Lock()
	defer g.mu.Unlock()

	if breaker, ok := g.breakers[accountID]; ok {
		return breaker
	}

	name := g.next.Name()
	failures := g.settings.BreakerFailures

	breaker := gobreaker.NewCircuitBreaker[*domain.SourceBatch](gobreaker.Settings{
		Name:        string(name) + "/" + accountID,
		MaxRequests: 1,
		Timeout:     g.settings.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var sourceErr *domain.SourceError
			if errors.As(err, &sourceErr) {
				return sourceErr.Kind == domain.SourceErrorAuth || sourceErr.Kind == domain.SourceErrorMalformed
			}
			return false
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"source":     name,
				"account_id": accountID,
				"from":       from.String(),
				"to":         to.String(),
			}).Warn("integrator: circuit breaker state changed")

			if g.metrics == nil {
				return
			}
			gauge := g.metrics.openBreakers.WithLabelValues(string(name))
			if to == gobreaker.StateOpen {
				gauge.Inc()
			}
			if from == gobreaker.StateOpen {
				gauge.Dec()
			}
		},
	})

	g.breakers[accountID] = breaker
	return breaker
}

func (g *Guard) Name() domain.SourceName {
	return g.next.Name()
}

func (g *Guard) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error) {
	name := g.next.Name()
	startTime := time.Now()

	if err := g.limiter.Wait(ctx); err != nil {
		g.observe(name, string(domain.SourceErrorNetwork), startTime)
		return nil, domain.NewSourceError(name, domain.SourceErrorNetwork, err)
	}

	batch, err := g.breakerFor(req.AccountID).Execute(func() (*domain.SourceBatch, error) {
		return g.next.Fetch(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			g.observe(name, outcomeBreakerOpen, startTime)
			return nil, domain.NewSourceError(name, domain.SourceErrorUnavailable, err)
		}

		sourceErr := domain.AsSourceError(name, err)
		g.observe(name, string(sourceErr.Kind), startTime)
		return nil, sourceErr
	}

	g.observe(name, "ok", startTime)
	return batch, nil
}

func (g *Guard) observe(name domain.SourceName, outcome string, startTime time.Time) {
	if g.metrics == nil {
		return
	}

	g.metrics.fetches.WithLabelValues(string(name), outcome).Inc()
	g.metrics.duration.WithLabelValues(string(name)).Observe(time.Since(startTime).Seconds())
}
