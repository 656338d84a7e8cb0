package shopifyclient

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	shopifydomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMalformedResponse marca respostas que não seguem o schema esperado
var ErrMalformedResponse = errors.New("shopifyclient: resposta malformada")

const defaultPageSize = 250

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

type Client interface {
	GetShop(ctx context.Context, shopDomain, accessToken string) (*shopifydomain.Shop, error)
	ListOrders(ctx context.Context, shopDomain, accessToken, search string) ([]shopifydomain.Order, error)
}

type ShopifyClient struct {
	apiVersion string
	pageSize   int
	httpClient *http.Client
}

func NewClient(apiVersion string, pageSize int, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	if pageSize <= 0 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}

	return &ShopifyClient{
		apiVersion: apiVersion,
		pageSize:   pageSize,
		httpClient: httpClient,
	}
}

// GraphQLURL monta o endpoint Admin da loja. Domínios com esquema (http://...) são usados como estão.
func (c *ShopifyClient) GraphQLURL(shopDomain string) string {
	base := strings.TrimSuffix(strings.TrimSpace(shopDomain), "/")
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.apiVersion)
}

// query executa uma operação GraphQL e decodifica o campo data em out
func (c *ShopifyClient) query(ctx context.Context, shopDomain, accessToken string, request shopifydomain.GraphQLRequest, out any) error {
	payload, err := json.Marshal(request)
	if err != nil {
		return errors.Wrap(err, "shopifyclient: erro ao serializar a consulta")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL(shopDomain), bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "shopifyclient: erro ao criar a requisição")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "shopifyclient: erro ao fazer a requisição")
	}
	defer resp.Body.Close()

	body, err := utils.ReadResponse(resp)
	if err != nil {
		return err
	}

	var response shopifydomain.GraphQLResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}

	if len(response.Errors) > 0 {
		return shopifydomain.GraphQLErrors(response.Errors)
	}

	if len(response.Data) == 0 {
		return errors.Wrap(ErrMalformedResponse, "campo data ausente")
	}

	if err := json.Unmarshal(response.Data, out); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}

	return nil
}
