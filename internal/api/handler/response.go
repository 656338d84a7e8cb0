package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/marketing-metrics-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("handler: failed to encode response")
	}
}

// parsePeriod lê start_date e end_date da query string
func parsePeriod(w http.ResponseWriter, r *http.Request) (domain.PeriodRequest, bool) {
	query := r.URL.Query()

	period, err := domain.NewPeriodRequest(query.Get("start_date"), query.Get("end_date"))
	if err != nil {
		log.ForContext(r.Context()).WithFields(log.Fields{
			"start_date": query.Get("start_date"),
			"end_date":   query.Get("end_date"),
			"error":      err.Error(),
		}).Warn("metrics: invalid period parameters")

		apiErrors.WriteFromError(w, err)
		return domain.PeriodRequest{}, false
	}

	return period, true
}
