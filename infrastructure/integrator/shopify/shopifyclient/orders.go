package shopifyclient

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	shopifydomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/domain"
)

// maxOrderPages limita a paginação por consulta
const maxOrderPages = 400

const ordersQuery = `query Orders($first: Int!, $after: String, $query: String!) {
  orders(first: $first, after: $after, query: $query, sortKey: CREATED_AT) {
    pageInfo {
      hasNextPage
      endCursor
    }
    nodes {
      id
      createdAt
      test
      customer { id }
      totalPriceSet { shopMoney { amount currencyCode } }
      totalTaxSet { shopMoney { amount currencyCode } }
      refunds {
        id
        createdAt
        totalRefundedSet { shopMoney { amount currencyCode } }
        refundLineItems(first: 250) {
          nodes {
            subtotalSet { shopMoney { amount } }
            totalTaxSet { shopMoney { amount } }
          }
        }
      }
    }
  }
}`

// ListOrders percorre todas as páginas da busca de pedidos
func (c *ShopifyClient) ListOrders(ctx context.Context, shopDomain, accessToken, search string) ([]shopifydomain.Order, error) {
	orders := make([]shopifydomain.Order, 0)
	variables := map[string]any{
		"first": c.pageSize,
		"query": search,
	}

	for page := 0; page < maxOrderPages; page++ {
		var data struct {
			Orders *shopifydomain.OrderConnection `json:"orders"`
		}

		request := shopifydomain.GraphQLRequest{Query: ordersQuery, Variables: variables}
		if err := c.query(ctx, shopDomain, accessToken, request, &data); err != nil {
			return nil, err
		}

		if data.Orders == nil {
			return nil, errors.Wrap(ErrMalformedResponse, "campo orders ausente")
		}

		orders = append(orders, data.Orders.Nodes...)

		if !data.Orders.PageInfo.HasNextPage || data.Orders.PageInfo.EndCursor == "" {
			return orders, nil
		}

		variables["after"] = data.Orders.PageInfo.EndCursor
	}

	return nil, errors.Errorf("shopifyclient: limite de %d páginas atingido para a busca %q", maxOrderPages, search)
}

// CreatedBetween monta a busca de pedidos criados em [from, to)
func CreatedBetween(from, to time.Time) string {
	return fmt.Sprintf("created_at:>='%s' AND created_at:<'%s'", from.Format(time.RFC3339), to.Format(time.RFC3339))
}

// UpdatedSince monta a busca de pedidos alterados a partir de from. Um reembolso
// altera o pedido, então pedidos antigos com reembolso no período aparecem aqui.
func UpdatedSince(from time.Time) string {
	return fmt.Sprintf("updated_at:>='%s'", from.Format(time.RFC3339))
}
