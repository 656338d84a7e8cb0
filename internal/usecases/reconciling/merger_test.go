package reconciling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

func ordersBatch() []domain.RawDailyRecord {
	return []domain.RawDailyRecord{
		{Date: "2025-01-01", Source: domain.SourceOrders, Orders: 2, Customers: 2, Revenue: 100, RevenueExTax: 80, TotalTax: 20},
		{Date: "2025-01-02", Source: domain.SourceOrders, Orders: 1, Customers: 1, Revenue: 50, RevenueExTax: 40, TotalTax: 10},
	}
}

func searchBatch() []domain.RawDailyRecord {
	return []domain.RawDailyRecord{
		{Date: "2025-01-02", Source: domain.SourceSearchAds, Spend: 12.5, Impressions: 1000, Clicks: 30},
		{Date: "2025-01-03", Source: domain.SourceSearchAds, Spend: 7.25, Impressions: 400, Clicks: 11},
	}
}

func socialBatch() []domain.RawDailyRecord {
	return []domain.RawDailyRecord{
		{Date: "2025-01-03", Source: domain.SourceSocialAds, Spend: 20.1, Impressions: 5000, Clicks: 60, Conversions: 2, ConversionValue: 90},
		{Date: "2025-01-04", Source: domain.SourceSocialAds, Spend: 0.3, Impressions: 10, Clicks: 1},
	}
}

func TestMerge_Completeness(t *testing.T) {
	merged := Merge(ordersBatch(), searchBatch())

	require.Len(t, merged, 3)
	assert.Equal(t, "2025-01-01", merged[0].Date)
	assert.Equal(t, "2025-01-02", merged[1].Date)
	assert.Equal(t, "2025-01-03", merged[2].Date)

	// 2025-01-01 só existe nos pedidos: campos de search-ads zerados
	assert.Equal(t, 100.0, merged[0].Revenue)
	assert.Equal(t, 2, merged[0].Orders)
	assert.Equal(t, map[domain.SourceName]float64{domain.SourceSearchAds: 0}, merged[0].AdSpendBySource)
	assert.Equal(t, map[domain.SourceName]int64{domain.SourceSearchAds: 0}, merged[0].ImpressionsBySource)
	assert.Equal(t, int64(0), merged[0].Clicks)

	// 2025-01-02 tem as duas origens
	assert.Equal(t, 50.0, merged[1].Revenue)
	assert.Equal(t, 12.5, merged[1].AdSpendBySource[domain.SourceSearchAds])
	assert.Equal(t, int64(1000), merged[1].Impressions)

	// 2025-01-03 só existe no search-ads: campos de pedidos zerados
	assert.Equal(t, 0.0, merged[2].Revenue)
	assert.Equal(t, 0, merged[2].Orders)
	assert.Equal(t, 0.0, merged[2].TotalRefunds)
	assert.Equal(t, 7.25, merged[2].AdSpendBySource[domain.SourceSearchAds])
}

func TestMerge_EveryAdSourceOnEveryDate(t *testing.T) {
	merged := Merge(ordersBatch(), searchBatch(), socialBatch())

	require.Len(t, merged, 4)
	for _, record := range merged {
		assert.Len(t, record.AdSpendBySource, 2, record.Date)
		assert.Contains(t, record.AdSpendBySource, domain.SourceSearchAds)
		assert.Contains(t, record.AdSpendBySource, domain.SourceSocialAds)
		assert.NotContains(t, record.AdSpendBySource, domain.SourceOrders)
	}
}

func TestMerge_OrderIndependence(t *testing.T) {
	a, b, c := ordersBatch(), searchBatch(), socialBatch()

	expected := Merge(a, b, c)

	permutations := [][][]domain.RawDailyRecord{
		{c, a, b},
		{b, c, a},
		{a, c, b},
		{c, b, a},
		{b, a, c},
	}

	for _, permutation := range permutations {
		assert.Equal(t, expected, Merge(permutation...))
	}
}

func TestMerge_AccumulatesSameSourceOnSameDate(t *testing.T) {
	merged := Merge(
		[]domain.RawDailyRecord{
			{Date: "2025-01-01", Source: domain.SourceSearchAds, Spend: 10, Clicks: 1},
			{Date: "2025-01-01", Source: domain.SourceSearchAds, Spend: 5, Clicks: 2},
		},
	)

	require.Len(t, merged, 1)
	assert.Equal(t, 15.0, merged[0].AdSpendBySource[domain.SourceSearchAds])
	assert.Equal(t, int64(3), merged[0].ClicksBySource[domain.SourceSearchAds])
	assert.Equal(t, int64(3), merged[0].Clicks)
}

func TestMerge_RefundOnlyDate(t *testing.T) {
	merged := Merge([]domain.RawDailyRecord{
		{Date: "2025-01-01", Source: domain.SourceOrders, Orders: 1, Revenue: 100, RevenueExTax: 80, TotalTax: 20},
		{Date: "2025-01-05", Source: domain.SourceOrders, Revenue: -30, RevenueExTax: -24, TotalTax: -6, TotalRefunds: 30},
	})

	require.Len(t, merged, 2)
	assert.Equal(t, 100.0, merged[0].Revenue)
	assert.Equal(t, -30.0, merged[1].Revenue)
	assert.Equal(t, 30.0, merged[1].TotalRefunds)
}

func TestMerge_Empty(t *testing.T) {
	assert.Empty(t, Merge())
	assert.Empty(t, Merge(nil, []domain.RawDailyRecord{}))
}
