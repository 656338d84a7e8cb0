package reconciling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

var testConstants = domain.MetricConstants{TaxRate: 0.25, CogsRate: 0.5}

func dailyRecord(date string, revenue float64, orders int, spend float64) domain.DailyMetricRecord {
	return domain.DailyMetricRecord{
		Date:            date,
		Orders:          orders,
		Revenue:         revenue,
		RevenueExTax:    revenue * 0.8,
		AdSpendBySource: map[domain.SourceName]float64{domain.SourceSearchAds: spend},
	}
}

func TestDeriveMetrics(t *testing.T) {
	records := []domain.DailyMetricRecord{{
		Date:         "2025-01-01",
		Orders:       4,
		Customers:    2,
		Revenue:      400,
		RevenueExTax: 320,
		AdSpendBySource: map[domain.SourceName]float64{
			domain.SourceSearchAds: 60,
			domain.SourceSocialAds: 40,
		},
	}}

	derived := DeriveMetrics(records, testConstants)

	require.Len(t, derived, 1)
	d := derived[0]
	assert.Equal(t, 100.0, d.Cost)
	assert.Equal(t, 100.0, d.GrossProfit) // 400*0.75 - 400*0.5
	assert.Equal(t, 4.0, d.ROAS)
	assert.Equal(t, 1.0, d.POAS)
	assert.Equal(t, 100.0, d.AOV)
	assert.Equal(t, 0.3125, d.SpendShare)
	assert.Equal(t, 50.0, d.CAC) // clientes únicos
	assert.Equal(t, "2025-01-01", d.Date)
}

func TestDeriveMetrics_CACFallsBackToOrders(t *testing.T) {
	derived := DeriveMetrics([]domain.DailyMetricRecord{dailyRecord("2025-01-01", 100, 4, 20)}, testConstants)

	require.Len(t, derived, 1)
	assert.Equal(t, 5.0, derived[0].CAC)
}

func TestDeriveMetrics_ZeroDenominators(t *testing.T) {
	tests := []struct {
		name   string
		record domain.DailyMetricRecord
		field  func(domain.DerivedMetricRecord) float64
	}{
		{
			name:   "roas sem custo",
			record: dailyRecord("2025-01-01", 100, 1, 0),
			field:  func(d domain.DerivedMetricRecord) float64 { return d.ROAS },
		},
		{
			name:   "poas sem custo",
			record: dailyRecord("2025-01-01", 100, 1, 0),
			field:  func(d domain.DerivedMetricRecord) float64 { return d.POAS },
		},
		{
			name:   "aov sem pedidos",
			record: dailyRecord("2025-01-01", 100, 0, 10),
			field:  func(d domain.DerivedMetricRecord) float64 { return d.AOV },
		},
		{
			name:   "spend share sem receita líquida",
			record: dailyRecord("2025-01-01", 0, 0, 10),
			field:  func(d domain.DerivedMetricRecord) float64 { return d.SpendShare },
		},
		{
			name:   "cac sem pedidos nem clientes",
			record: dailyRecord("2025-01-01", 0, 0, 10),
			field:  func(d domain.DerivedMetricRecord) float64 { return d.CAC },
		},
		{
			name:   "registro sem mapa de gastos",
			record: domain.DailyMetricRecord{Date: "2025-01-01", Revenue: 100},
			field:  func(d domain.DerivedMetricRecord) float64 { return d.ROAS },
		},
		{
			name:   "tudo zerado",
			record: domain.DailyMetricRecord{Date: "2025-01-01"},
			field:  func(d domain.DerivedMetricRecord) float64 { return d.POAS },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			derived := DeriveMetrics([]domain.DailyMetricRecord{tt.record}, testConstants)
			require.Len(t, derived, 1)

			value := tt.field(derived[0])
			assert.Equal(t, 0.0, value)
			assert.False(t, math.IsNaN(value))
			assert.False(t, math.IsInf(value, 0))
		})
	}
}

func TestCalculateTotals_FromSumsNotAverages(t *testing.T) {
	records := DeriveMetrics([]domain.DailyMetricRecord{
		dailyRecord("2025-01-01", 100, 1, 50),
		dailyRecord("2025-01-02", 200, 2, 0),
		dailyRecord("2025-01-03", 0, 0, 10),
	}, testConstants)

	totals := CalculateTotals(records, testConstants, 0)

	assert.Equal(t, 300.0, totals.Revenue)
	assert.Equal(t, 60.0, totals.Cost)
	assert.Equal(t, 5.0, totals.ROAS)
	assert.Equal(t, 3, totals.Orders)
	assert.Equal(t, 100.0, totals.AOV)
	assert.Equal(t, 60.0, totals.AdSpendBySource[domain.SourceSearchAds])
	assert.Equal(t, GrossProfit(300, testConstants), totals.GrossProfit)
	assert.Equal(t, totals.GrossProfit/totals.Cost, totals.POAS)
	assert.Empty(t, totals.Date)

	meanDailyROAS := (records[0].ROAS + records[1].ROAS + records[2].ROAS) / 3
	assert.NotEqual(t, meanDailyROAS, totals.ROAS)
}

func TestCalculateTotals_RepeatCustomerCountsOnce(t *testing.T) {
	days := []domain.DailyMetricRecord{
		dailyRecord("2025-01-01", 100, 1, 30),
		dailyRecord("2025-01-02", 100, 1, 30),
		dailyRecord("2025-01-03", 100, 1, 30),
	}
	for i := range days {
		days[i].Customers = 1
	}
	records := DeriveMetrics(days, testConstants)

	totals := CalculateTotals(records, testConstants, 1)

	assert.Equal(t, 1, totals.Customers)
	assert.Equal(t, 90.0, totals.CAC)
	assert.Equal(t, 30.0, records[0].CAC)
}

func TestCalculateTotals_CACFallsBackToOrdersWithoutCustomerCount(t *testing.T) {
	days := []domain.DailyMetricRecord{
		dailyRecord("2025-01-01", 100, 2, 30),
		dailyRecord("2025-01-02", 100, 1, 30),
	}
	days[0].Customers = 2

	totals := CalculateTotals(DeriveMetrics(days, testConstants), testConstants, 0)

	assert.Equal(t, 0, totals.Customers)
	assert.Equal(t, 20.0, totals.CAC)
}

func TestCalculateTotals_Empty(t *testing.T) {
	totals := CalculateTotals(nil, testConstants, 0)

	assert.Equal(t, 0.0, totals.Revenue)
	assert.Equal(t, 0.0, totals.ROAS)
	assert.Equal(t, 0.0, totals.CAC)
}

func TestGrossProfit(t *testing.T) {
	constants := domain.MetricConstants{TaxRate: 0.25, CogsRate: 0.7}

	assert.InDelta(t, 5.0, GrossProfit(100, constants), 1e-9)
	assert.Equal(t, 0.0, GrossProfit(0, constants))
}

func TestCompareTotals(t *testing.T) {
	current := domain.DerivedMetricRecord{Cost: 150, ROAS: 3}
	current.Revenue = 450
	current.Orders = 9
	previous := domain.DerivedMetricRecord{Cost: 100, ROAS: 0}
	previous.Revenue = 300
	previous.Orders = 0

	delta := CompareTotals(current, previous)

	assert.InDelta(t, 0.5, delta.Revenue, 1e-9)
	assert.InDelta(t, 0.5, delta.Cost, 1e-9)
	assert.Equal(t, 0.0, delta.Orders)
	assert.Equal(t, 0.0, delta.ROAS)
}
