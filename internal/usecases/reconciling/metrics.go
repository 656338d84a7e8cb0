package reconciling

import (
	"math"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

// DeriveMetrics calcula as métricas derivadas de cada dia. Toda divisão por zero resulta em 0.
func DeriveMetrics(records []domain.DailyMetricRecord, constants domain.MetricConstants) []domain.DerivedMetricRecord {
	derived := make([]domain.DerivedMetricRecord, 0, len(records))
	for _, record := range records {
		derived = append(derived, derive(record, constants))
	}
	return derived
}

// CalculateTotals soma os campos aditivos do período e recalcula as razões a partir das
// somas (nunca pela média das razões diárias). Clientes não são somados dia a dia:
// uniqueCustomers é a contagem distinta do período, e com zero o CAC usa pedidos.
func CalculateTotals(records []domain.DerivedMetricRecord, constants domain.MetricConstants, uniqueCustomers int) domain.DerivedMetricRecord {
	totals := domain.DailyMetricRecord{
		Customers:           uniqueCustomers,
		AdSpendBySource:     make(map[domain.SourceName]float64),
		ImpressionsBySource: make(map[domain.SourceName]int64),
		ClicksBySource:      make(map[domain.SourceName]int64),
	}

	for _, record := range records {
		totals.Orders += record.Orders
		totals.Revenue += record.Revenue
		totals.RevenueExTax += record.RevenueExTax
		totals.TotalTax += record.TotalTax
		totals.TotalRefunds += record.TotalRefunds
		totals.Impressions += record.Impressions
		totals.Clicks += record.Clicks
		totals.Conversions += record.Conversions
		totals.ConversionValue += record.ConversionValue

		for source, spend := range record.AdSpendBySource {
			totals.AdSpendBySource[source] += spend
		}
		for source, impressions := range record.ImpressionsBySource {
			totals.ImpressionsBySource[source] += impressions
		}
		for source, clicks := range record.ClicksBySource {
			totals.ClicksBySource[source] += clicks
		}
	}

	return derive(totals, constants)
}

// CompareTotals calcula a variação relativa de cada métrica principal entre dois períodos
func CompareTotals(current, previous domain.DerivedMetricRecord) domain.PeriodDelta {
	return domain.PeriodDelta{
		Revenue:     relativeChange(current.Revenue, previous.Revenue),
		Orders:      relativeChange(float64(current.Orders), float64(previous.Orders)),
		Cost:        relativeChange(current.Cost, previous.Cost),
		GrossProfit: relativeChange(current.GrossProfit, previous.GrossProfit),
		ROAS:        relativeChange(current.ROAS, previous.ROAS),
		POAS:        relativeChange(current.POAS, previous.POAS),
		AOV:         relativeChange(current.AOV, previous.AOV),
		CAC:         relativeChange(current.CAC, previous.CAC),
	}
}

// GrossProfit aplica a fórmula fixa revenue*(1-taxRate) - revenue*cogsRate
func GrossProfit(revenue float64, constants domain.MetricConstants) float64 {
	return revenue*(1-constants.TaxRate) - revenue*constants.CogsRate
}

func derive(record domain.DailyMetricRecord, constants domain.MetricConstants) domain.DerivedMetricRecord {
	cost := totalCost(record.AdSpendBySource)
	grossProfit := GrossProfit(record.Revenue, constants)

	// CAC usa clientes únicos quando a origem de pedidos informa, senão pedidos
	acquisitions := float64(record.Customers)
	if record.Customers == 0 {
		acquisitions = float64(record.Orders)
	}

	return domain.DerivedMetricRecord{
		DailyMetricRecord: record,
		Cost:              cost,
		GrossProfit:       grossProfit,
		ROAS:              safeDivide(record.Revenue, cost),
		POAS:              safeDivide(grossProfit, cost),
		AOV:               safeDivide(record.Revenue, float64(record.Orders)),
		SpendShare:        safeDivide(cost, record.RevenueExTax),
		CAC:               safeDivide(cost, acquisitions),
	}
}

func totalCost(spendBySource map[domain.SourceName]float64) float64 {
	sources := sortedSources(spendBySource)

	var cost float64
	for _, source := range sources {
		cost += spendBySource[source]
	}
	return cost
}

// safeDivide retorna 0 quando o denominador é zero ou o resultado não é finito
func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}

	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}

func relativeChange(current, previous float64) float64 {
	return safeDivide(current-previous, math.Abs(previous))
}
