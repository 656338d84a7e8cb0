package meta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

func fetchRequest(token string) domain.FetchRequest {
	return domain.FetchRequest{
		AccountID:   "act_123",
		Credentials: map[string]string{domain.CredentialAccessToken: token},
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func newFakeGraphAPI(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/v22.0/act_123", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		fmt.Fprint(w, `{"id":"act_123","account_id":"123","name":"Shop","currency":"EUR","timezone_name":"Europe/Copenhagen"}`)
	})

	mux.HandleFunc("/v22.0/act_123/insights", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		query := r.URL.Query()

		if query.Get("after") == "page2" {
			fmt.Fprint(w, `{"data":[
				{"date_start":"2025-01-03","spend":"5.5","impressions":"100","clicks":"3"},
				{"date_start":"2025-01-04","spend":"99","impressions":"1","clicks":"1"}
			],"paging":{"cursors":{"before":"b","after":"c"}}}`)
			return
		}

		assert.Equal(t, "1", query.Get("time_increment"))
		assert.Equal(t, "account", query.Get("level"))
		assert.Equal(t, `{"since":"2025-01-01","until":"2025-01-03"}`, query.Get("time_range"))

		fmt.Fprintf(w, `{"data":[
			{"date_start":"2025-01-01","spend":"10.25","impressions":"1000","clicks":"20",
			 "actions":[{"action_type":"omni_purchase","value":"2"},{"action_type":"purchase","value":"2"}],
			 "action_values":[{"action_type":"omni_purchase","value":"150.5"},{"action_type":"purchase","value":"150.5"}]},
			{"date_start":"2025-01-02","spend":"0","impressions":"0","clicks":"0"}
		],"paging":{"cursors":{"before":"a","after":"page2"},"next":"%s/v22.0/act_123/insights?after=page2&access_token=token"}}`, server.URL)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestMetaIntegrator_Fetch(t *testing.T) {
	var calls atomic.Int32
	server := newFakeGraphAPI(t, &calls)

	integrator := New(metaclient.NewClient(server.URL+"/v22.0", server.Client()))

	batch, err := integrator.Fetch(context.Background(), fetchRequest("token"))

	require.NoError(t, err)
	assert.Equal(t, domain.SourceSocialAds, batch.Source)
	assert.Equal(t, "EUR", batch.Currency)
	assert.Equal(t, "Europe/Copenhagen", batch.Timezone)
	assert.Equal(t, int32(3), calls.Load())

	require.Len(t, batch.Records, 3)
	assert.Equal(t, domain.RawDailyRecord{
		Date:            "2025-01-01",
		Source:          domain.SourceSocialAds,
		Spend:           10.25,
		Impressions:     1000,
		Clicks:          20,
		Conversions:     2,
		ConversionValue: 150.5,
	}, batch.Records[0])
	assert.Equal(t, "2025-01-02", batch.Records[1].Date)
	assert.Equal(t, 5.5, batch.Records[2].Spend)
}

func TestMetaIntegrator_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.SourceErrorKind
	}{
		{
			name:     "token expirado",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"Error validating access token","type":"OAuthException","code":190,"fbtrace_id":"x"}}`,
			wantKind: domain.SourceErrorAuth,
		},
		{
			name:     "limite de chamadas",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"User request limit reached","type":"OAuthException","code":17}}`,
			wantKind: domain.SourceErrorUnavailable,
		},
		{
			name:     "indisponível",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: domain.SourceErrorUnavailable,
		},
		{
			name:     "payload inválido",
			status:   http.StatusOK,
			body:     `{"currency":`,
			wantKind: domain.SourceErrorMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			integrator := New(metaclient.NewClient(server.URL, server.Client()))

			batch, err := integrator.Fetch(context.Background(), fetchRequest("token"))

			assert.Nil(t, batch)
			var sourceErr *domain.SourceError
			require.ErrorAs(t, err, &sourceErr)
			assert.Equal(t, tt.wantKind, sourceErr.Kind)
			assert.Equal(t, domain.SourceSocialAds, sourceErr.Source)
		})
	}
}

func TestMetaIntegrator_MissingToken(t *testing.T) {
	var calls atomic.Int32
	server := newFakeGraphAPI(t, &calls)

	integrator := New(metaclient.NewClient(server.URL+"/v22.0", server.Client()))

	_, err := integrator.Fetch(context.Background(), fetchRequest(""))

	var sourceErr *domain.SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, domain.SourceErrorAuth, sourceErr.Kind)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFactoryDailyRecords_InvalidSpend(t *testing.T) {
	_, err := FactoryDailyRecords(nil, time.Now(), time.Now())
	require.NoError(t, err)

	_, err = FactoryDailyRecords(
		[]metadomain.DailyInsight{{DateStart: "2025-01-01", Spend: "abc"}},
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	assert.Error(t, err)
}
