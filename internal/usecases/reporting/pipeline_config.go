package reporting

import (
	"strings"

	"github.com/vfg2006/marketing-metrics-api/infrastructure/integrator/googleads"
	"github.com/vfg2006/marketing-metrics-api/internal/config"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

// BuildPipelineConfig converte o documento de configurações do cliente no PipelineConfig.
// Origens sem conta configurada ficam de fora e aparecem como skipped no resultado.
func BuildPipelineConfig(settings *domain.CustomerSettings, defaults config.Reporting) domain.PipelineConfig {
	constants := domain.MetricConstants{
		TaxRate:  defaults.TaxRate,
		CogsRate: defaults.CogsRate,
	}
	if settings.TaxRate != nil {
		constants.TaxRate = *settings.TaxRate
	}
	if settings.CogsPercentage != nil {
		constants.CogsRate = *settings.CogsPercentage
	}

	accounts := make(map[domain.SourceName]domain.SourceAccount)

	if shop := settings.Shopify; shop != nil && strings.TrimSpace(shop.ShopDomain) != "" {
		accounts[domain.SourceOrders] = domain.SourceAccount{
			AccountID: shop.ShopDomain,
			Credentials: map[string]string{
				domain.CredentialAccessToken: shop.AccessToken,
				domain.CredentialShopDomain:  shop.ShopDomain,
			},
		}
	}

	if ads := settings.GoogleAds; ads != nil && strings.TrimSpace(ads.CustomerID) != "" {
		account := domain.SourceAccount{
			AccountID:   ads.CustomerID,
			Credentials: map[string]string{domain.CredentialRefreshToken: ads.RefreshToken},
		}
		if ads.CampaignName != "" {
			account.Filters = map[string]string{googleads.FilterCampaignNameContains: ads.CampaignName}
		}
		accounts[domain.SourceSearchAds] = account
	}

	if meta := settings.Meta; meta != nil && strings.TrimSpace(meta.AdAccountID) != "" {
		accounts[domain.SourceSocialAds] = domain.SourceAccount{
			AccountID:   meta.AdAccountID,
			Credentials: map[string]string{domain.CredentialAccessToken: meta.AccessToken},
		}
	}

	return domain.PipelineConfig{
		CustomerID:        settings.ID,
		ReportingCurrency: defaults.Currency,
		Constants:         constants,
		Accounts:          accounts,
	}
}
