package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

// CustomerSettings é o documento de configuração de um cliente no armazenamento de
// configurações. Taxas ausentes (nil) caem nos valores padrão da aplicação.
type CustomerSettings struct {
	ID             string             `json:"id" bson:"_id"`
	Name           string             `json:"name" bson:"name"`
	Status         CustomerStatus     `json:"status" bson:"status"`
	CogsPercentage *float64           `json:"cogs_percentage,omitempty" bson:"cogs_percentage,omitempty"`
	TaxRate        *float64           `json:"tax_rate,omitempty" bson:"tax_rate,omitempty"`
	Shopify        *ShopifySettings   `json:"shopify,omitempty" bson:"shopify,omitempty"`
	GoogleAds      *GoogleAdsSettings `json:"google_ads,omitempty" bson:"google_ads,omitempty"`
	Meta           *MetaSettings      `json:"meta,omitempty" bson:"meta,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

type ShopifySettings struct {
	ShopDomain  string `json:"shop_domain" bson:"shop_domain"`
	AccessToken string `json:"-" bson:"access_token"`
}

type GoogleAdsSettings struct {
	CustomerID   string `json:"customer_id" bson:"customer_id"`
	RefreshToken string `json:"-" bson:"refresh_token"`
	CampaignName string `json:"campaign_name,omitempty" bson:"campaign_name,omitempty"`
}

type MetaSettings struct {
	AdAccountID string `json:"ad_account_id" bson:"ad_account_id"`
	AccessToken string `json:"-" bson:"access_token"`
}

// DailyMetricsEntry é um snapshot persistido das métricas de um dia
type DailyMetricsEntry struct {
	ID         int64               `json:"id"`
	CustomerID string              `json:"customer_id"`
	Date       time.Time           `json:"date"`
	Metrics    DerivedMetricRecord `json:"metrics"`
	Partial    bool                `json:"partial"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
