package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/pkg/apiErrors"
)

// HealthCheck verifica uma dependência (banco, armazenamento de configurações)
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func HealthcheckHandler(checks ...HealthCheck) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		healthy := true
		results := make(map[string]string, len(checks))

		for _, check := range checks {
			if err := check.Check(ctx); err != nil {
				logrus.WithFields(logrus.Fields{
					"dependency": check.Name,
					"error":      err.Error(),
				}).Warn("healthcheck: dependency unavailable")

				results[check.Name] = err.Error()
				healthy = false
				continue
			}
			results[check.Name] = "ok"
		}

		body := map[string]any{
			"time":   time.Now().Format(time.RFC3339),
			"checks": results,
		}

		if !healthy {
			apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Dependência indisponível", body)
			return
		}

		writeJSON(w, http.StatusOK, body)
	})
}
