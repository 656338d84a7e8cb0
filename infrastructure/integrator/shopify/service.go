package shopify

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator"
	shopifydomain "github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/domain"
	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

// ShopifyIntegrator é a origem de pedidos (vendas e reembolsos)
type ShopifyIntegrator struct {
	Client shopifyclient.Client
}

var _ integrator.Source = (*ShopifyIntegrator)(nil)

func New(client shopifyclient.Client) *ShopifyIntegrator {
	return &ShopifyIntegrator{
		Client: client,
	}
}

func (s *ShopifyIntegrator) Name() domain.SourceName {
	return domain.SourceOrders
}

func (s *ShopifyIntegrator) Fetch(ctx context.Context, req domain.FetchRequest) (*domain.SourceBatch, error) {
	accessToken := req.Credentials[domain.CredentialAccessToken]
	if accessToken == "" {
		return nil, integrator.MissingCredential(s.Name(), domain.CredentialAccessToken)
	}

	shopDomain := req.AccountID
	if shopDomain == "" {
		shopDomain = req.Credentials[domain.CredentialShopDomain]
	}
	if shopDomain == "" {
		return nil, integrator.MissingCredential(s.Name(), domain.CredentialShopDomain)
	}

	logger := logrus.WithField("shop_domain", shopDomain)

	shop, err := s.Client.GetShop(ctx, shopDomain, accessToken)
	if err != nil {
		logger.WithError(err).Error("orders: failed to get shop from API")
		return nil, classify(err)
	}

	location := utils.LoadLocation(shop.IanaTimezone)
	from := startOfDay(req.StartDate, location)
	to := startOfDay(req.EndDate, location).AddDate(0, 0, 1)

	created, err := s.Client.ListOrders(ctx, shopDomain, accessToken, shopifyclient.CreatedBetween(from, to))
	if err != nil {
		logger.WithError(err).Error("orders: failed to list orders created in period")
		return nil, classify(err)
	}

	updated, err := s.Client.ListOrders(ctx, shopDomain, accessToken, shopifyclient.UpdatedSince(from))
	if err != nil {
		logger.WithError(err).Error("orders: failed to list orders updated in period")
		return nil, classify(err)
	}

	records := FactoryDailyRecords(created, updated, req.StartDate, req.EndDate, location)

	logger.WithFields(logrus.Fields{
		"currency": shop.CurrencyCode,
		"orders":   len(created),
		"days":     len(records),
	}).Debug("orders: successfully retrieved orders metrics")

	return &domain.SourceBatch{
		Source:          s.Name(),
		Currency:        shop.CurrencyCode,
		Timezone:        location.String(),
		Records:         records,
		UniqueCustomers: CountUniqueCustomers(created, req.StartDate, req.EndDate, location),
	}, nil
}

// CountUniqueCustomers conta clientes distintos com pedido criado no período. Quem compra
// em vários dias conta uma vez.
func CountUniqueCustomers(created []shopifydomain.Order, startDate, endDate time.Time, location *time.Location) int {
	start := startDate.Format(time.DateOnly)
	end := endDate.Format(time.DateOnly)

	customers := make(map[string]struct{})
	for _, order := range created {
		if order.Test || order.Customer == nil || order.Customer.ID == "" {
			continue
		}
		date := utils.DateIn(order.CreatedAt, location)
		if date < start || date > end {
			continue
		}
		customers[order.Customer.ID] = struct{}{}
	}

	return len(customers)
}

type dailyAccumulator struct {
	orders    int
	customers map[string]struct{}
	revenue   decimal.Decimal
	tax       decimal.Decimal
	refunds   decimal.Decimal
}

// FactoryDailyRecords agrega vendas pela data de criação do pedido e reembolsos pela
// data do próprio reembolso, ambos no fuso da loja. Reembolsos são contados uma vez só
// mesmo quando o pedido aparece nas duas buscas. Pedidos de teste são ignorados.
func FactoryDailyRecords(created, updated []shopifydomain.Order, startDate, endDate time.Time, location *time.Location) []domain.RawDailyRecord {
	start := startDate.Format(time.DateOnly)
	end := endDate.Format(time.DateOnly)
	inPeriod := func(date string) bool { return date >= start && date <= end }

	byDate := make(map[string]*dailyAccumulator)
	day := func(date string) *dailyAccumulator {
		acc, exists := byDate[date]
		if !exists {
			acc = &dailyAccumulator{customers: make(map[string]struct{})}
			byDate[date] = acc
		}
		return acc
	}

	seenOrders := make(map[string]struct{})
	for _, order := range created {
		if order.Test {
			continue
		}
		if _, seen := seenOrders[order.ID]; seen {
			continue
		}
		seenOrders[order.ID] = struct{}{}

		date := utils.DateIn(order.CreatedAt, location)
		if !inPeriod(date) {
			continue
		}

		acc := day(date)
		acc.orders++
		acc.revenue = acc.revenue.Add(order.TotalPriceSet.ShopMoney.Amount)
		acc.tax = acc.tax.Add(order.TotalTaxSet.ShopMoney.Amount)
		if order.Customer != nil && order.Customer.ID != "" {
			acc.customers[order.Customer.ID] = struct{}{}
		}
	}

	seenRefunds := make(map[string]struct{})
	for _, batch := range [][]shopifydomain.Order{created, updated} {
		for _, order := range batch {
			if order.Test {
				continue
			}

			for i := range order.Refunds {
				refund := &order.Refunds[i]
				if _, seen := seenRefunds[refund.ID]; seen {
					continue
				}
				seenRefunds[refund.ID] = struct{}{}

				date := utils.DateIn(refund.CreatedAt, location)
				if !inPeriod(date) {
					continue
				}

				amount := refund.TotalRefundedSet.ShopMoney.Amount
				acc := day(date)
				acc.revenue = acc.revenue.Sub(amount)
				acc.tax = acc.tax.Sub(refund.Tax())
				acc.refunds = acc.refunds.Add(amount)
			}
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	records := make([]domain.RawDailyRecord, 0, len(dates))
	for _, date := range dates {
		acc := byDate[date]
		records = append(records, domain.RawDailyRecord{
			Date:         date,
			Source:       domain.SourceOrders,
			Orders:       acc.orders,
			Customers:    len(acc.customers),
			Revenue:      acc.revenue.InexactFloat64(),
			RevenueExTax: acc.revenue.Sub(acc.tax).InexactFloat64(),
			TotalTax:     acc.tax.InexactFloat64(),
			TotalRefunds: acc.refunds.InexactFloat64(),
		})
	}

	return records
}

func startOfDay(date time.Time, location *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, location)
}

func classify(err error) *domain.SourceError {
	var gqlErrs shopifydomain.GraphQLErrors
	if errors.As(err, &gqlErrs) {
		switch {
		case gqlErrs.HasCode("ACCESS_DENIED"), gqlErrs.HasCode("UNAUTHORIZED"):
			return domain.NewSourceError(domain.SourceOrders, domain.SourceErrorAuth, err)
		case gqlErrs.HasCode("THROTTLED"), gqlErrs.HasCode("INTERNAL_SERVER_ERROR"):
			return domain.NewSourceError(domain.SourceOrders, domain.SourceErrorUnavailable, err)
		default:
			return integrator.Malformed(domain.SourceOrders, err)
		}
	}

	if errors.Is(err, shopifyclient.ErrMalformedResponse) {
		return integrator.Malformed(domain.SourceOrders, err)
	}

	return integrator.ClassifyError(domain.SourceOrders, err)
}
