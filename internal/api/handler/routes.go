package handler

import (
	"net/http"

	"github.com/vfg2006/marketing-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reporting"
)

func Healthcheck(checks ...HealthCheck) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(checks...),
		},
	}
}

// Prometheus expõe o handler de métricas de observabilidade
func Prometheus(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Metrics(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/customers/:id/metrics",
			Method:  http.MethodGet,
			Handler: GetPeriodMetrics(service),
		},
		{
			Path:    "/v1/customers/:id/metrics/comparison",
			Method:  http.MethodGet,
			Handler: GetComparison(service),
		},
		{
			Path:    "/v1/customers/:id/metrics/snapshots",
			Method:  http.MethodGet,
			Handler: GetSnapshots(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
