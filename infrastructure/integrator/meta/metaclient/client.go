package metaclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	GetAdAccount(ctx context.Context, accountID, accessToken string) (*metadomain.AdAccount, error)
	GetDailyInsights(ctx context.Context, accountID, accessToken string, since, until time.Time) ([]metadomain.DailyInsight, error)
}

type MetaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient recebe a URL já com a versão da Graph API (ex: https://graph.facebook.com/v22.0)
func NewClient(baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &MetaClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// NormalizeAccountID aceita o id com ou sem o prefixo act_
func NormalizeAccountID(accountID string) string {
	return strings.TrimPrefix(strings.TrimSpace(accountID), "act_")
}

func (c *MetaClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "metaclient: erro ao criar a requisição")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "metaclient: erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	body, err := utils.ReadResponse(resp)
	if err != nil {
		return nil, handleErrorResponse(err)
	}

	return body, nil
}

// handleErrorResponse extrai o erro da Graph API do corpo da resposta, quando presente
func handleErrorResponse(err error) error {
	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var errorResponse metadomain.ErrorResponse
	if jsonErr := json.Unmarshal(httpErr.Body, &errorResponse); jsonErr != nil || errorResponse.Error.Code == 0 {
		return err
	}

	return &metadomain.APIError{
		StatusCode: httpErr.StatusCode,
		Details:    errorResponse.Error,
		Err:        httpErr,
	}
}
