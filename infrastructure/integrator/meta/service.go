package meta

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator"
	metadomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

// MetaIntegrator é a origem de anúncios sociais (Meta Ads)
type MetaIntegrator struct {
	Client metaclient.Client
}

var _ integrator.Source = (*MetaIntegrator)(nil)

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) Name() domain.SourceName {
	return domain.SourceSocialAds
}

func (s *MetaIntegrator) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error) {
	accessToken := req.Credentials[domain.CredentialAccessToken]
	if accessToken == "" {
		return nil, integrator.MissingCredential(s.Name(), domain.CredentialAccessToken)
	}

	account, err := s.Client.GetAdAccount(ctx, req.AccountID, accessToken)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": req.AccountID,
			"error":      err.Error(),
		}).Error("insights: failed to get ad account from API")
		return nil, classify(err)
	}

	insights, err := s.Client.GetDailyInsights(ctx, req.AccountID, accessToken, req.StartDate, req.EndDate)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": req.AccountID,
			"error":      err.Error(),
		}).Error("insights: failed to get daily insights from API")
		return nil, classify(err)
	}

	records, err := FactoryDailyRecords(insights, req.StartDate, req.EndDate)
	if err != nil {
		return nil, integrator.Malformed(s.Name(), err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": req.AccountID,
		"currency":   account.Currency,
		"days":       len(records),
	}).Debug("insights: successfully retrieved social ads metrics")

	return &domain.SourceBatch{
		Source:   s.Name(),
		Currency: account.Currency,
		Timezone: account.TimezoneName,
		Records:  records,
	}, nil
}

// FactoryDailyRecords converte as linhas de insights em registros diários. As datas já
// vêm no fuso da conta.
func FactoryDailyRecords(insights []metadomain.DailyInsight, startDate, endDate time.Time) ([]domain.RawDailyRecord, error) {
	start := startDate.Format(time.DateOnly)
	end := endDate.Format(time.DateOnly)

	byDate := make(map[string]*domain.RawDailyRecord)
	dates := make([]string, 0)

	for i := range insights {
		insight := insights[i]

		if insight.DateStart < start || insight.DateStart > end {
			continue
		}

		spend, err := parseFloat(insight.Spend)
		if err != nil {
			return nil, errors.Wrapf(err, "spend inválido em %s", insight.DateStart)
		}

		impressions := parseInt(insight.Impressions, "impressions")
		clicks := parseInt(insight.Clicks, "clicks")
		conversions, conversionValue := insight.Purchases()

		record, exists := byDate[insight.DateStart]
		if !exists {
			record = &domain.RawDailyRecord{Date: insight.DateStart, Source: domain.SourceSocialAds}
			byDate[insight.DateStart] = record
			dates = append(dates, insight.DateStart)
		}

		record.Spend += spend
		record.Impressions += impressions
		record.Clicks += clicks
		record.Conversions += conversions
		record.ConversionValue += conversionValue
	}

	records := make([]domain.RawDailyRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, *byDate[date])
	}

	return records, nil
}

func classify(err error) *domain.SourceError {
	var apiErr *metadomain.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsTokenExpired():
			return domain.NewSourceError(domain.SourceSocialAds, domain.SourceErrorAuth, err)
		case apiErr.IsRateLimited():
			return domain.NewSourceError(domain.SourceSocialAds, domain.SourceErrorUnavailable, err)
		}
	}

	if errors.Is(err, metaclient.ErrMalformedResponse) {
		return integrator.Malformed(domain.SourceSocialAds, err)
	}

	return integrator.ClassifyError(domain.SourceSocialAds, err)
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(value, 64)
}

func parseInt(value, field string) int64 {
	if value == "" {
		return 0
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("insights: error converting value to integer")
		return 0
	}
	return parsed
}
