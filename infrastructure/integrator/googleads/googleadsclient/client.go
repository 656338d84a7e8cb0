package googleadsclient

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	adsdomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads/domain"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	adwordsScope   = "https://www.googleapis.com/auth/adwords"
	maxSearchPages = 200
)

// ErrMalformedResponse indica um corpo de resposta que não pôde ser decodificado
var ErrMalformedResponse = errors.New("googleadsclient: malformed response")

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	// Search executa a consulta GAQL e percorre todas as páginas via nextPageToken
	Search(ctx context.Context, customerID, refreshToken, query string) ([]adsdomain.SearchRow, error)
}

type GoogleAdsClient struct {
	cfg        config.GoogleAds
	oauth      *oauth2.Config
	httpClient *http.Client

	mu           sync.Mutex
	tokenSources map[string]oauth2.TokenSource
}

func NewClient(cfg config.GoogleAds, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &GoogleAdsClient{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{adwordsScope},
		},
		httpClient:   httpClient,
		tokenSources: make(map[string]oauth2.TokenSource),
	}
}

// NormalizeCustomerID remove os hífens do formato exibido na interface (123-456-7890)
func NormalizeCustomerID(customerID string) string {
	return strings.ReplaceAll(strings.TrimSpace(customerID), "-", "")
}

// tokenSource reaproveita o access token de cada refresh token até ele expirar
func (c *GoogleAdsClient) tokenSource(refreshToken string) oauth2.TokenSource {
	sum := sha256.Sum256([]byte(refreshToken))
	key := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()

	if ts, ok := c.tokenSources[key]; ok {
		return ts
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	ts := oauth2.ReuseTokenSource(nil, c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}))
	c.tokenSources[key] = ts

	return ts
}

func (c *GoogleAdsClient) Search(ctx context.Context, customerID, refreshToken, query string) ([]adsdomain.SearchRow, error) {
	customerID = NormalizeCustomerID(customerID)
	searchURL := fmt.Sprintf("%s/customers/%s/googleAds:search", strings.TrimSuffix(c.cfg.URL, "/"), customerID)

	ts := c.tokenSource(refreshToken)

	rows := make([]adsdomain.SearchRow, 0)
	pageToken := ""
	for page := 0; ; page++ {
		if page >= maxSearchPages {
			return nil, errors.Errorf("googleadsclient: mais de %d páginas para o cliente %s", maxSearchPages, customerID)
		}

		token, err := ts.Token()
		if err != nil {
			return nil, errors.Wrap(err, "googleadsclient: erro ao obter access token")
		}

		response, err := c.searchPage(ctx, searchURL, token, adsdomain.SearchRequest{Query: query, PageToken: pageToken})
		if err != nil {
			return nil, err
		}

		rows = append(rows, response.Results...)

		if response.NextPageToken == "" {
			return rows, nil
		}
		pageToken = response.NextPageToken
	}
}

func (c *GoogleAdsClient) searchPage(ctx context.Context, searchURL string, token *oauth2.Token, body adsdomain.SearchRequest) (*adsdomain.SearchResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "googleadsclient: erro ao serializar a consulta")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "googleadsclient: erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.cfg.DeveloperToken)
	if c.cfg.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", NormalizeCustomerID(c.cfg.LoginCustomerID))
	}
	token.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "googleadsclient: erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	data, err := utils.ReadResponse(resp)
	if err != nil {
		return nil, handleErrorResponse(err)
	}

	var response adsdomain.SearchResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.Wrap(ErrMalformedResponse, err.Error())
	}

	return &response, nil
}

// handleErrorResponse decodifica o google.rpc.Status do corpo de erro, quando presente
func handleErrorResponse(err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var errorResponse adsdomain.ErrorResponse
	if jsonErr := json.Unmarshal(httpErr.Body, &errorResponse); jsonErr != nil || errorResponse.Error.Status == "" {
		return err
	}

	return &adsdomain.APIError{
		StatusCode: httpErr.StatusCode,
		RPC:        errorResponse.Error,
		Err:        httpErr,
	}
}
