package domain

// SourceName identifica a origem de um conjunto de registros diários
type SourceName string

const (
	SourceOrders    SourceName = "orders"
	SourceSearchAds SourceName = "search-ads"
	SourceSocialAds SourceName = "social-ads"
)

// RawDailyRecord é o registro normalizado que cada adapter entrega, já agregado por dia
// no fuso horário da própria origem. Valores monetários estão na moeda nativa da conta
// até passarem pelo normalizador de moeda.
type RawDailyRecord struct {
	Date            string     `json:"date"`
	Source          SourceName `json:"source"`
	Orders          int        `json:"orders"`
	Customers       int        `json:"customers"`
	Revenue         float64    `json:"revenue"`
	RevenueExTax    float64    `json:"revenue_ex_tax"`
	TotalTax        float64    `json:"total_tax"`
	TotalRefunds    float64    `json:"total_refunds"`
	Spend           float64    `json:"spend"`
	Impressions     int64      `json:"impressions"`
	Clicks          int64      `json:"clicks"`
	Conversions     float64    `json:"conversions"`
	ConversionValue float64    `json:"conversion_value"`
}

// SourceBatch é o resultado de um adapter para um período
type SourceBatch struct {
	Source   SourceName       `json:"source"`
	Currency string           `json:"currency"`
	Timezone string           `json:"timezone"`
	Records  []RawDailyRecord `json:"records"`
	// UniqueCustomers conta clientes distintos no período inteiro; só a origem de pedidos preenche
	UniqueCustomers int `json:"unique_customers,omitempty"`
}

type DailyMetricRecord struct {
	Date                string                 `json:"date"`
	Orders              int                    `json:"orders"`
	Customers           int                    `json:"customers"`
	Revenue             float64                `json:"revenue"`
	RevenueExTax        float64                `json:"revenue_ex_tax"`
	TotalTax            float64                `json:"total_tax"`
	TotalRefunds        float64                `json:"total_refunds"`
	AdSpendBySource     map[SourceName]float64 `json:"ad_spend_by_source"`
	Impressions         int64                  `json:"impressions"`
	Clicks              int64                  `json:"clicks"`
	ImpressionsBySource map[SourceName]int64   `json:"impressions_by_source"`
	ClicksBySource      map[SourceName]int64   `json:"clicks_by_source"`
	Conversions         float64                `json:"conversions"`
	ConversionValue     float64                `json:"conversion_value"`
}

// DerivedMetricRecord é o registro diário acrescido das métricas calculadas
type DerivedMetricRecord struct {
	DailyMetricRecord
	Cost        float64 `json:"cost"`
	GrossProfit float64 `json:"gross_profit"`
	ROAS        float64 `json:"roas"`
	POAS        float64 `json:"poas"`
	AOV         float64 `json:"aov"`
	SpendShare  float64 `json:"spend_share"`
	CAC         float64 `json:"cac"`
}

// MetricConstants são as taxas injetadas no cálculo de lucro bruto
type MetricConstants struct {
	TaxRate  float64 `json:"tax_rate"`
	CogsRate float64 `json:"cogs_rate"`
}

// PeriodDelta guarda a variação relativa (0.25 = +25%) de cada métrica principal
type PeriodDelta struct {
	Revenue     float64 `json:"revenue"`
	Orders      float64 `json:"orders"`
	Cost        float64 `json:"cost"`
	GrossProfit float64 `json:"gross_profit"`
	ROAS        float64 `json:"roas"`
	POAS        float64 `json:"poas"`
	AOV         float64 `json:"aov"`
	CAC         float64 `json:"cac"`
}
