package shopify

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
	shopifydomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

const graphQLPath = "/admin/api/2024-10/graphql.json"

const refundedOrder = `{"id":"gid://shopify/Order/1","createdAt":"2024-12-31T23:30:00Z","test":false,
	"customer":{"id":"gid://shopify/Customer/1"},
	"totalPriceSet":{"shopMoney":{"amount":"100.00","currencyCode":"DKK"}},
	"totalTaxSet":{"shopMoney":{"amount":"20.00","currencyCode":"DKK"}},
	"refunds":[{"id":"gid://shopify/Refund/1","createdAt":"2025-01-05T10:00:00Z",
		"totalRefundedSet":{"shopMoney":{"amount":"30.00","currencyCode":"DKK"}},
		"refundLineItems":{"nodes":[{"subtotalSet":{"shopMoney":{"amount":"24.00"}},"totalTaxSet":{"shopMoney":{"amount":"6.00"}}}]}}]}`

func order(id, createdAt, customer, price, tax string, test bool) string {
	return fmt.Sprintf(`{"id":"gid://shopify/Order/%s","createdAt":"%s","test":%t,
		"customer":{"id":"gid://shopify/Customer/%s"},
		"totalPriceSet":{"shopMoney":{"amount":"%s","currencyCode":"DKK"}},
		"totalTaxSet":{"shopMoney":{"amount":"%s","currencyCode":"DKK"}},
		"refunds":[]}`, id, createdAt, test, customer, price, tax)
}

func ordersPage(hasNext bool, cursor string, nodes ...string) string {
	return fmt.Sprintf(`{"data":{"orders":{"pageInfo":{"hasNextPage":%t,"endCursor":"%s"},"nodes":[%s]}}}`,
		hasNext, cursor, strings.Join(nodes, ","))
}

func fetchRequest(server *httptest.Server, token string) domain.FetchRequest {
	return domain.FetchRequest{
		AccountID:   server.URL,
		Credentials: map[string]string{domain.CredentialAccessToken: token},
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}
}

func decodeRequest(t *testing.T, r *http.Request) shopifydomain.GraphQLRequest {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)

	var request shopifydomain.GraphQLRequest
	require.NoError(t, jsoniter.Unmarshal(body, &request))
	return request
}

func newFakeAdminAPI(t *testing.T, calls *atomic.Int32, searches *[]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(graphQLPath, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "shpat_token", r.Header.Get("X-Shopify-Access-Token"))

		request := decodeRequest(t, r)
		if strings.HasPrefix(request.Query, "query Shop") {
			fmt.Fprint(w, `{"data":{"shop":{"name":"Hygge","currencyCode":"DKK","ianaTimezone":"Europe/Copenhagen"}}}`)
			return
		}

		search, _ := request.Variables["query"].(string)
		*searches = append(*searches, search)

		switch {
		case strings.HasPrefix(search, "created_at"):
			fmt.Fprint(w, ordersPage(false, "",
				refundedOrder,
				order("2", "2025-01-02T10:00:00Z", "1", "50.00", "10.00", false),
				order("3", "2025-01-02T11:00:00Z", "1", "25.00", "5.00", false),
				order("4", "2025-01-02T12:00:00Z", "9", "999.00", "0", true),
			))
		case request.Variables["after"] == "page2":
			fmt.Fprint(w, ordersPage(false, "", `{"id":"gid://shopify/Order/5","createdAt":"2024-11-10T09:00:00Z","test":false,
				"totalPriceSet":{"shopMoney":{"amount":"80.00"}},"totalTaxSet":{"shopMoney":{"amount":"16.00"}},
				"refunds":[
					{"id":"gid://shopify/Refund/2","createdAt":"2025-01-03T12:00:00Z","totalRefundedSet":{"shopMoney":{"amount":"20.00"}},
					 "refundLineItems":{"nodes":[{"totalTaxSet":{"shopMoney":{"amount":"4.00"}}}]}},
					{"id":"gid://shopify/Refund/3","createdAt":"2024-12-20T12:00:00Z","totalRefundedSet":{"shopMoney":{"amount":"60.00"}},
					 "refundLineItems":{"nodes":[]}}
				]}`))
		default:
			fmt.Fprint(w, ordersPage(true, "page2", refundedOrder))
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestShopifyIntegrator_Fetch(t *testing.T) {
	var calls atomic.Int32
	var searches []string
	server := newFakeAdminAPI(t, &calls, &searches)

	integrator := New(shopifyclient.NewClient("2024-10", 50, server.Client()))

	batch, err := integrator.Fetch(context.Background(), fetchRequest(server, "shpat_token"))

	require.NoError(t, err)
	assert.Equal(t, domain.SourceOrders, batch.Source)
	assert.Equal(t, "DKK", batch.Currency)
	assert.Equal(t, "Europe/Copenhagen", batch.Timezone)
	assert.Equal(t, int32(4), calls.Load())

	require.Len(t, searches, 3)
	assert.Equal(t, "created_at:>='2025-01-01T00:00:00+01:00' AND created_at:<'2025-01-06T00:00:00+01:00'", searches[0])
	assert.Equal(t, "updated_at:>='2025-01-01T00:00:00+01:00'", searches[1])

	require.Len(t, batch.Records, 4)
	// o cliente 1 compra em 01/01 e 02/01
	assert.Equal(t, 1, batch.UniqueCustomers)

	// 23:30 UTC de 31/12 já é 01/01 em Copenhague
	first := batch.Records[0]
	assert.Equal(t, "2025-01-01", first.Date)
	assert.Equal(t, 1, first.Orders)
	assert.Equal(t, 1, first.Customers)
	assert.Equal(t, 100.0, first.Revenue)
	assert.Equal(t, 80.0, first.RevenueExTax)
	assert.Equal(t, 20.0, first.TotalTax)

	second := batch.Records[1]
	assert.Equal(t, "2025-01-02", second.Date)
	assert.Equal(t, 2, second.Orders)
	assert.Equal(t, 1, second.Customers)
	assert.Equal(t, 75.0, second.Revenue)

	third := batch.Records[2]
	assert.Equal(t, "2025-01-03", third.Date)
	assert.Equal(t, 0, third.Orders)
	assert.Equal(t, -20.0, third.Revenue)
	assert.Equal(t, -16.0, third.RevenueExTax)
	assert.Equal(t, 20.0, third.TotalRefunds)

	// reembolso aparece nas duas buscas mas conta uma vez
	refund := batch.Records[3]
	assert.Equal(t, "2025-01-05", refund.Date)
	assert.Equal(t, -30.0, refund.Revenue)
	assert.Equal(t, -24.0, refund.RevenueExTax)
	assert.Equal(t, -6.0, refund.TotalTax)
	assert.Equal(t, 30.0, refund.TotalRefunds)
}

func TestShopifyIntegrator_FetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.SourceErrorKind
	}{
		{
			name:     "token inválido",
			status:   http.StatusUnauthorized,
			body:     `{"errors":"[API] Invalid API key or access token"}`,
			wantKind: domain.SourceErrorAuth,
		},
		{
			name:     "acesso negado no graphql",
			status:   http.StatusOK,
			body:     `{"errors":[{"message":"Access denied for shop field.","extensions":{"code":"ACCESS_DENIED"}}]}`,
			wantKind: domain.SourceErrorAuth,
		},
		{
			name:     "limite de custo",
			status:   http.StatusOK,
			body:     `{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`,
			wantKind: domain.SourceErrorUnavailable,
		},
		{
			name:     "erro de schema",
			status:   http.StatusOK,
			body:     `{"errors":[{"message":"Field 'foo' doesn't exist","extensions":{"code":"undefinedField"}}]}`,
			wantKind: domain.SourceErrorMalformed,
		},
		{
			name:     "json inválido",
			status:   http.StatusOK,
			body:     `{"data":`,
			wantKind: domain.SourceErrorMalformed,
		},
		{
			name:     "loja sem moeda",
			status:   http.StatusOK,
			body:     `{"data":{"shop":{"name":"x"}}}`,
			wantKind: domain.SourceErrorMalformed,
		},
		{
			name:     "indisponível",
			status:   http.StatusServiceUnavailable,
			body:     `oops`,
			wantKind: domain.SourceErrorUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			integrator := New(shopifyclient.NewClient("2024-10", 0, server.Client()))

			batch, err := integrator.Fetch(context.Background(), fetchRequest(server, "shpat_token"))

			assert.Nil(t, batch)
			var sourceErr *domain.SourceError
			require.ErrorAs(t, err, &sourceErr)
			assert.Equal(t, domain.SourceOrders, sourceErr.Source)
			assert.Equal(t, tt.wantKind, sourceErr.Kind)
		})
	}
}

func TestShopifyIntegrator_FetchMissingToken(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	integrator := New(shopifyclient.NewClient("2024-10", 0, server.Client()))

	_, err := integrator.Fetch(context.Background(), fetchRequest(server, ""))

	var sourceErr *domain.SourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.Equal(t, domain.SourceErrorAuth, sourceErr.Kind)
	assert.Equal(t, int32(0), calls.Load())
}

func TestFactoryDailyRecords_RefundOnlyDate(t *testing.T) {
	var orders []shopifydomain.Order
	require.NoError(t, jsoniter.Unmarshal([]byte("["+refundedOrder+"]"), &orders))

	records := FactoryDailyRecords(orders, nil,
		time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)

	require.Len(t, records, 1)
	assert.Equal(t, "2025-01-05", records[0].Date)
	assert.Equal(t, 0, records[0].Orders)
	assert.Equal(t, -30.0, records[0].Revenue)
	assert.Equal(t, 30.0, records[0].TotalRefunds)
}

func TestCountUniqueCustomers(t *testing.T) {
	var orders []shopifydomain.Order
	require.NoError(t, jsoniter.Unmarshal([]byte("["+strings.Join([]string{
		order("1", "2025-01-01T10:00:00Z", "7", "10.00", "0", false),
		order("2", "2025-01-02T10:00:00Z", "7", "10.00", "0", false),
		order("3", "2025-01-03T10:00:00Z", "8", "10.00", "0", false),
		order("4", "2025-01-03T11:00:00Z", "9", "10.00", "0", true),
		order("5", "2025-01-09T10:00:00Z", "10", "10.00", "0", false),
	}, ",")+"]"), &orders))

	count := CountUniqueCustomers(orders,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		time.UTC,
	)

	assert.Equal(t, 2, count)
}

func TestShopifyClient_GraphQLURL(t *testing.T) {
	client := shopifyclient.NewClient("2024-10", 0, nil).(*shopifyclient.ShopifyClient)

	assert.Equal(t, "https://hygge.myshopify.com/admin/api/2024-10/graphql.json", client.GraphQLURL("hygge.myshopify.com"))
	assert.Equal(t, "http://127.0.0.1:1234/admin/api/2024-10/graphql.json", client.GraphQLURL("http://127.0.0.1:1234/"))
}
