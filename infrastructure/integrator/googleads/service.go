package googleads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator"
	adsdomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"golang.org/x/oauth2"
)

// FilterCampaignNameContains restringe as campanhas consideradas pelo nome
const FilterCampaignNameContains = "campaign_name_contains"

const customerMetadataQuery = "SELECT customer.id, customer.currency_code, customer.time_zone FROM customer LIMIT 1"

// GoogleAdsIntegrator é a origem de anúncios de busca (Google Ads)
type GoogleAdsIntegrator struct {
	Client googleadsclient.Client
}

var _ integrator.Source = (*GoogleAdsIntegrator)(nil)

func New(client googleadsclient.Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{
		Client: client,
	}
}

func (s *GoogleAdsIntegrator) Name() domain.SourceName {
	return domain.SourceSearchAds
}

func (s *GoogleAdsIntegrator) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error) {
	refreshToken := req.Credentials[domain.CredentialRefreshToken]
	if refreshToken == "" {
		return nil, integrator.MissingCredential(s.Name(), domain.CredentialRefreshToken)
	}

	metadata, err := s.Client.Search(ctx, req.AccountID, refreshToken, customerMetadataQuery)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": req.AccountID,
			"error":       err.Error(),
		}).Error("googleads: failed to get customer metadata")
		return nil, classify(err)
	}

	if len(metadata) == 0 || metadata[0].Customer == nil {
		return nil, integrator.Malformed(s.Name(), errors.New("resposta sem dados do cliente"))
	}
	customer := metadata[0].Customer

	rows, err := s.Client.Search(ctx, req.AccountID, refreshToken, BuildCampaignQuery(req.StartDate, req.EndDate, req.Filters))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": req.AccountID,
			"error":       err.Error(),
		}).Error("googleads: failed to get campaign metrics")
		return nil, classify(err)
	}

	records := FactoryDailyRecords(rows)

	logrus.WithFields(logrus.Fields{
		"customer_id": req.AccountID,
		"currency":    customer.CurrencyCode,
		"rows":        len(rows),
		"days":        len(records),
	}).Debug("googleads: successfully retrieved search ads metrics")

	return &domain.SourceBatch{
		Source:   s.Name(),
		Currency: customer.CurrencyCode,
		Timezone: customer.TimeZone,
		Records:  records,
	}, nil
}

// BuildCampaignQuery monta a consulta GAQL diária por campanha. As datas de
// segments.date já estão no fuso da conta.
func BuildCampaignQuery(startDate, endDate time.Time, filters map[string]string) string {
	query := fmt.Sprintf(
		"SELECT segments.date, campaign.id, campaign.name, metrics.cost_micros, metrics.impressions, "+
			"metrics.clicks, metrics.conversions, metrics.conversions_value "+
			"FROM campaign WHERE segments.date BETWEEN '%s' AND '%s'",
		startDate.Format(time.DateOnly),
		endDate.Format(time.DateOnly),
	)

	if contains := strings.TrimSpace(filters[FilterCampaignNameContains]); contains != "" {
		escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(contains)
		query += fmt.Sprintf(" AND campaign.name LIKE '%%%s%%'", escaped)
	}

	return query
}

// FactoryDailyRecords agrega as linhas (data, campanha) em um registro por data
func FactoryDailyRecords(rows []adsdomain.SearchRow) []domain.RawDailyRecord {
	byDate := make(map[string]*domain.RawDailyRecord)
	dates := make([]string, 0)

	for i := range rows {
		row := rows[i]
		if row.Segments == nil || row.Metrics == nil || row.Segments.Date == "" {
			continue
		}

		date := row.Segments.Date
		record, exists := byDate[date]
		if !exists {
			record = &domain.RawDailyRecord{Date: date, Source: domain.SourceSearchAds}
			byDate[date] = record
			dates = append(dates, date)
		}

		record.Spend += row.Metrics.Cost()
		record.Impressions += int64(row.Metrics.Impressions)
		record.Clicks += int64(row.Metrics.Clicks)
		record.Conversions += row.Metrics.Conversions
		record.ConversionValue += row.Metrics.ConversionsValue
	}

	records := make([]domain.RawDailyRecord, 0, len(dates))
	for _, date := range dates {
		records = append(records, *byDate[date])
	}

	return records
}

func classify(err error) *domain.SourceError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return domain.NewSourceError(domain.SourceSearchAds, domain.SourceErrorAuth, err)
	}

	var apiErr *adsdomain.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuth():
			return domain.NewSourceError(domain.SourceSearchAds, domain.SourceErrorAuth, err)
		case apiErr.IsRetryable():
			return domain.NewSourceError(domain.SourceSearchAds, domain.SourceErrorUnavailable, err)
		case apiErr.IsRejected():
			return integrator.Malformed(domain.SourceSearchAds, err)
		}
	}

	if errors.Is(err, googleadsclient.ErrMalformedResponse) {
		return integrator.Malformed(domain.SourceSearchAds, err)
	}

	return integrator.ClassifyError(domain.SourceSearchAds, err)
}
