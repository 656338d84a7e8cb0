package reconciling

import (
	"sort"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

// dayAccumulator guarda as contribuições de cada origem para uma data
type dayAccumulator struct {
	bySource map[domain.SourceName]*domain.RawDailyRecord
}

// Merge junta os lotes de todas as origens em um registro por data. Datas ausentes em
// uma origem recebem zero para os campos dessa origem. O resultado não depende da ordem
// dos lotes e sai ordenado por data.
func Merge(batches ...[]domain.RawDailyRecord) []domain.DailyMetricRecord {
	days := make(map[string]*dayAccumulator)
	adSources := make(map[domain.SourceName]bool)

	for _, batch := range batches {
		for i := range batch {
			record := batch[i]

			if record.Source != domain.SourceOrders {
				adSources[record.Source] = true
			}

			day, exists := days[record.Date]
			if !exists {
				day = &dayAccumulator{bySource: make(map[domain.SourceName]*domain.RawDailyRecord)}
				days[record.Date] = day
			}

			existing, exists := day.bySource[record.Source]
			if !exists {
				copied := record
				day.bySource[record.Source] = &copied
				continue
			}

			accumulate(existing, &record)
		}
	}

	merged := make([]domain.DailyMetricRecord, 0, len(days))
	for date, day := range days {
		merged = append(merged, day.toDailyRecord(date, adSources))
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date < merged[j].Date
	})

	return merged
}

// accumulate soma os campos aditivos de dois registros da mesma origem
func accumulate(existing, adding *domain.RawDailyRecord) {
	existing.Orders += adding.Orders
	existing.Customers += adding.Customers
	existing.Revenue += adding.Revenue
	existing.RevenueExTax += adding.RevenueExTax
	existing.TotalTax += adding.TotalTax
	existing.TotalRefunds += adding.TotalRefunds
	existing.Spend += adding.Spend
	existing.Impressions += adding.Impressions
	existing.Clicks += adding.Clicks
	existing.Conversions += adding.Conversions
	existing.ConversionValue += adding.ConversionValue
}

func (d *dayAccumulator) toDailyRecord(date string, adSources map[domain.SourceName]bool) domain.DailyMetricRecord {
	record := domain.DailyMetricRecord{
		Date:                date,
		AdSpendBySource:     make(map[domain.SourceName]float64, len(adSources)),
		ImpressionsBySource: make(map[domain.SourceName]int64, len(adSources)),
		ClicksBySource:      make(map[domain.SourceName]int64, len(adSources)),
	}

	for source := range adSources {
		record.AdSpendBySource[source] = 0
		record.ImpressionsBySource[source] = 0
		record.ClicksBySource[source] = 0
	}

	// soma entre origens em ordem fixa para o resultado não variar com a ordem de entrada
	for _, source := range sortedSources(d.bySource) {
		contribution := d.bySource[source]

		record.Orders += contribution.Orders
		record.Customers += contribution.Customers
		record.Revenue += contribution.Revenue
		record.RevenueExTax += contribution.RevenueExTax
		record.TotalTax += contribution.TotalTax
		record.TotalRefunds += contribution.TotalRefunds
		record.Impressions += contribution.Impressions
		record.Clicks += contribution.Clicks
		record.Conversions += contribution.Conversions
		record.ConversionValue += contribution.ConversionValue

		if adSources[source] {
			record.AdSpendBySource[source] += contribution.Spend
			record.ImpressionsBySource[source] += contribution.Impressions
			record.ClicksBySource[source] += contribution.Clicks
		}
	}

	return record
}
