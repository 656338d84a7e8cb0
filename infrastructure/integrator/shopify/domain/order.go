package shopifydomain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type MoneyBag struct {
	ShopMoney Money `json:"shopMoney"`
}

type Customer struct {
	ID string `json:"id"`
}

type RefundLineItem struct {
	SubtotalSet MoneyBag `json:"subtotalSet"`
	TotalTaxSet MoneyBag `json:"totalTaxSet"`
}

type RefundLineItemConnection struct {
	Nodes []RefundLineItem `json:"nodes"`
}

type Refund struct {
	ID               string                   `json:"id"`
	CreatedAt        time.Time                `json:"createdAt"`
	TotalRefundedSet MoneyBag                 `json:"totalRefundedSet"`
	RefundLineItems  RefundLineItemConnection `json:"refundLineItems"`
}

// Tax soma o imposto devolvido nos itens do reembolso
func (r *Refund) Tax() decimal.Decimal {
	tax := decimal.Zero
	for _, item := range r.RefundLineItems.Nodes {
		tax = tax.Add(item.TotalTaxSet.ShopMoney.Amount)
	}
	return tax
}

type Order struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	Test          bool      `json:"test"`
	Customer      *Customer `json:"customer"`
	TotalPriceSet MoneyBag  `json:"totalPriceSet"`
	TotalTaxSet   MoneyBag  `json:"totalTaxSet"`
	Refunds       []Refund  `json:"refunds"`
}

type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type OrderConnection struct {
	PageInfo PageInfo `json:"pageInfo"`
	Nodes    []Order  `json:"nodes"`
}

type Shop struct {
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	IanaTimezone string `json:"ianaTimezone"`
}
