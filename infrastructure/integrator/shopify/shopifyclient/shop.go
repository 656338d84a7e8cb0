package shopifyclient

import (
	"context"

	"github.com/pkg/errors"
	shopifydomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/domain"
)

const shopQuery = `query Shop {
  shop {
    name
    currencyCode
    ianaTimezone
  }
}`

func (c *ShopifyClient) GetShop(ctx context.Context, shopDomain, accessToken string) (*shopifydomain.Shop, error) {
	var data struct {
		Shop *shopifydomain.Shop `json:"shop"`
	}

	if err := c.query(ctx, shopDomain, accessToken, shopifydomain.GraphQLRequest{Query: shopQuery}, &data); err != nil {
		return nil, err
	}

	if data.Shop == nil || data.Shop.CurrencyCode == "" {
		return nil, errors.Wrap(ErrMalformedResponse, "loja sem moeda")
	}

	return data.Shop, nil
}
