package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/marketing-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/marketing-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-metrics-api/pkg/log"
)

func GetPeriodMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		period, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"customer_id": customerID,
			"period":      period.String(),
		}).Info("metrics: running pipeline for period")

		result, err := service.GetPeriodMetrics(r.Context(), customerID, period)
		if err != nil {
			logger.WithFields(log.Fields{
				"customer_id": customerID,
				"error":       err.Error(),
			}).Error("metrics: failed to get period metrics")

			apiErrors.WriteFromError(w, err)
			return
		}

		if result.Partial() {
			logger.WithField("customer_id", customerID).Warn("metrics: partial result, at least one source failed")
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func GetComparison(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		period, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		report, err := service.GetComparison(r.Context(), customerID, period)
		if err != nil {
			logger.WithFields(log.Fields{
				"customer_id": customerID,
				"period":      period.String(),
				"error":       err.Error(),
			}).Error("metrics: failed to get comparison report")

			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}

func GetSnapshots(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		customerID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		period, ok := parsePeriod(w, r)
		if !ok {
			return
		}

		records, err := service.GetSnapshots(r.Context(), customerID, period)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"customer_id": customerID,
				"error":       err.Error(),
			}).Error("metrics: failed to read snapshots")

			apiErrors.WriteFromError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, records)
	})
}
