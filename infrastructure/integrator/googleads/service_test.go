package googleads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	adsdomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/googleadsclient"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

func decodeSearch(t *testing.T, r io.Reader) adsdomain.SearchRequest {
	t.Helper()

	var request adsdomain.SearchRequest
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, jsoniter.Unmarshal(data, &request))
	return request
}

func fetchRequest(filters map[string]string) domain.FetchRequest {
	return domain.FetchRequest{
		AccountID:   "123-456-7890",
		Credentials: map[string]string{domain.CredentialRefreshToken: "refresh"},
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		Filters:     filters,
	}
}

type fakeGoogleAds struct {
	server      *httptest.Server
	tokenCalls  atomic.Int32
	searchCalls atomic.Int32
	tokenStatus int
	adsStatus   int
	adsError    string
	queries     []string
}

func newFakeGoogleAds(t *testing.T) *fakeGoogleAds {
	t.Helper()

	fake := &fakeGoogleAds{
		tokenStatus: http.StatusOK,
		adsStatus:   http.StatusOK,
		adsError:    `{"error":{"code":401,"message":"unauthenticated","status":"UNAUTHENTICATED"}}`,
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		fake.tokenCalls.Add(1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		if fake.tokenStatus != http.StatusOK {
			w.WriteHeader(fake.tokenStatus)
			fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`)
			return
		}
		fmt.Fprint(w, `{"access_token":"access","token_type":"Bearer","expires_in":3600}`)
	})

	mux.HandleFunc("/v19/customers/1234567890/googleAds:search", func(w http.ResponseWriter, r *http.Request) {
		fake.searchCalls.Add(1)
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Equal(t, "dev-token", r.Header.Get("developer-token"))
		assert.Equal(t, "1112223333", r.Header.Get("login-customer-id"))

		if fake.adsStatus != http.StatusOK {
			w.WriteHeader(fake.adsStatus)
			fmt.Fprint(w, fake.adsError)
			return
		}

		request := decodeSearch(t, r.Body)
		fake.queries = append(fake.queries, request.Query)

		switch {
		case strings.Contains(request.Query, "FROM customer"):
			fmt.Fprint(w, `{"results":[{"customer":{"id":"1234567890","currencyCode":"SEK","timeZone":"Europe/Stockholm"}}]}`)
		case request.PageToken == "":
			fmt.Fprint(w, `{"results":[
				{"segments":{"date":"2025-01-01"},"campaign":{"id":"1","name":"Brand"},"metrics":{"costMicros":"12500000","impressions":"1000","clicks":"30","conversions":1.5,"conversionsValue":200}},
				{"segments":{"date":"2025-01-01"},"campaign":{"id":"2","name":"Generic"},"metrics":{"costMicros":"2500000","impressions":"500","clicks":"5"}}
			],"nextPageToken":"page2"}`)
		default:
			fmt.Fprint(w, `{"results":[
				{"segments":{"date":"2025-01-02"},"campaign":{"id":"1","name":"Brand"},"metrics":{"costMicros":"7250000","impressions":"400","clicks":"11"}}
			]}`)
		}
	})

	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	return fake
}

func (f *fakeGoogleAds) integrator() *GoogleAdsIntegrator {
	client := googleadsclient.NewClient(config.GoogleAds{
		URL:             f.server.URL + "/v19",
		DeveloperToken:  "dev-token",
		ClientID:        "client",
		ClientSecret:    "secret",
		LoginCustomerID: "111-222-3333",
		TokenURL:        f.server.URL + "/token",
	}, f.server.Client())

	return New(client)
}

func TestGoogleAdsIntegrator_Fetch(t *testing.T) {
	fake := newFakeGoogleAds(t)

	batch, err := fake.integrator().Fetch(context.Background(), fetchRequest(nil))

	require.NoError(t, err)
	assert.Equal(t, domain.SourceSearchAds, batch.Source)
	assert.Equal(t, "SEK", batch.Currency)
	assert.Equal(t, "Europe/Stockholm", batch.Timezone)

	require.Len(t, batch.Records, 2)
	assert.Equal(t, "2025-01-01", batch.Records[0].Date)
	assert.InDelta(t, 15.0, batch.Records[0].Spend, 1e-9)
	assert.Equal(t, int64(1500), batch.Records[0].Impressions)
	assert.Equal(t, int64(35), batch.Records[0].Clicks)
	assert.Equal(t, 1.5, batch.Records[0].Conversions)
	assert.Equal(t, 200.0, batch.Records[0].ConversionValue)
	assert.InDelta(t, 7.25, batch.Records[1].Spend, 1e-9)

	assert.Equal(t, int32(1), fake.tokenCalls.Load())
	assert.Equal(t, int32(3), fake.searchCalls.Load())
	require.Len(t, fake.queries, 3)
	assert.Contains(t, fake.queries[0], "FROM customer")
	assert.Contains(t, fake.queries[1], "FROM campaign")
}

func TestGoogleAdsIntegrator_Errors(t *testing.T) {
	t.Run("refresh token revogado", func(t *testing.T) {
		fake := newFakeGoogleAds(t)
		fake.tokenStatus = http.StatusBadRequest

		_, err := fake.integrator().Fetch(context.Background(), fetchRequest(nil))

		var sourceErr *domain.SourceError
		require.ErrorAs(t, err, &sourceErr)
		assert.Equal(t, domain.SourceErrorAuth, sourceErr.Kind)
		assert.Equal(t, int32(0), fake.searchCalls.Load())
	})

	t.Run("api recusa o token", func(t *testing.T) {
		fake := newFakeGoogleAds(t)
		fake.adsStatus = http.StatusUnauthorized

		_, err := fake.integrator().Fetch(context.Background(), fetchRequest(nil))

		var sourceErr *domain.SourceError
		require.ErrorAs(t, err, &sourceErr)
		assert.Equal(t, domain.SourceErrorAuth, sourceErr.Kind)
	})

	t.Run("status rpc decide a classificação", func(t *testing.T) {
		tests := []struct {
			name     string
			status   int
			body     string
			wantKind domain.SourceErrorKind
		}{
			{
				name:     "cota esgotada",
				status:   http.StatusTooManyRequests,
				body:     `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
				wantKind: domain.SourceErrorUnavailable,
			},
			{
				name:     "conta inexistente",
				status:   http.StatusNotFound,
				body:     `{"error":{"code":404,"message":"customer not found","status":"NOT_FOUND"}}`,
				wantKind: domain.SourceErrorMalformed,
			},
			{
				name:     "sem permissão na conta",
				status:   http.StatusForbidden,
				body:     `{"error":{"code":403,"message":"user doesn't have permission","status":"PERMISSION_DENIED"}}`,
				wantKind: domain.SourceErrorAuth,
			},
			{
				name:     "corpo sem status rpc",
				status:   http.StatusBadGateway,
				body:     `<html>bad gateway</html>`,
				wantKind: domain.SourceErrorUnavailable,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				fake := newFakeGoogleAds(t)
				fake.adsStatus = tt.status
				fake.adsError = tt.body

				_, err := fake.integrator().Fetch(context.Background(), fetchRequest(nil))

				var sourceErr *domain.SourceError
				require.ErrorAs(t, err, &sourceErr)
				assert.Equal(t, tt.wantKind, sourceErr.Kind)
			})
		}
	})

	t.Run("erro expõe o status rpc", func(t *testing.T) {
		fake := newFakeGoogleAds(t)
		fake.adsStatus = http.StatusTooManyRequests
		fake.adsError = `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`

		_, err := fake.integrator().Fetch(context.Background(), fetchRequest(nil))

		var apiErr *adsdomain.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "RESOURCE_EXHAUSTED", apiErr.RPC.Status)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	})

	t.Run("sem refresh token", func(t *testing.T) {
		fake := newFakeGoogleAds(t)

		request := fetchRequest(nil)
		request.Credentials = nil

		_, err := fake.integrator().Fetch(context.Background(), request)

		var sourceErr *domain.SourceError
		require.ErrorAs(t, err, &sourceErr)
		assert.Equal(t, domain.SourceErrorAuth, sourceErr.Kind)
		assert.Equal(t, int32(0), fake.tokenCalls.Load())
	})
}

func TestBuildCampaignQuery(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	query := BuildCampaignQuery(start, end, nil)
	assert.Contains(t, query, "FROM campaign WHERE segments.date BETWEEN '2025-01-01' AND '2025-01-31'")
	assert.NotContains(t, query, "LIKE")

	filtered := BuildCampaignQuery(start, end, map[string]string{FilterCampaignNameContains: "Shop's"})
	assert.True(t, strings.HasSuffix(filtered, ` AND campaign.name LIKE '%Shop\'s%'`))
}

func TestFactoryDailyRecords_SkipsRowsWithoutDate(t *testing.T) {
	records := FactoryDailyRecords([]adsdomain.SearchRow{
		{Metrics: &adsdomain.Metrics{CostMicros: 1000000}},
		{Segments: &adsdomain.Segments{Date: "2025-01-01"}, Metrics: &adsdomain.Metrics{CostMicros: 2000000}},
	})

	require.Len(t, records, 1)
	assert.Equal(t, 2.0, records[0].Spend)
}
