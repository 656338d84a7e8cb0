package domain

import "time"

// Chaves do mapa de credenciais de uma origem
const (
	CredentialAccessToken  = "access_token"
	CredentialRefreshToken = "refresh_token"
	CredentialShopDomain   = "shop_domain"
)

// SourceAccount guarda o identificador de conta e as credenciais de uma origem
type SourceAccount struct {
	AccountID   string            `json:"account_id"`
	Credentials map[string]string `json:"-"`
	Filters     map[string]string `json:"filters,omitempty"`
}

// PipelineConfig é tudo que o pipeline precisa para uma execução. É montado por quem
// chama (a partir das configurações do cliente) e passado explicitamente.
type PipelineConfig struct {
	CustomerID        string                       `json:"customer_id"`
	ReportingCurrency string                       `json:"reporting_currency"`
	Constants         MetricConstants              `json:"constants"`
	Accounts          map[SourceName]SourceAccount `json:"accounts"`
}

// FetchRequest é o contrato de entrada de um adapter
type FetchRequest struct {
	AccountID   string
	Credentials map[string]string
	StartDate   time.Time
	EndDate     time.Time
	Filters     map[string]string
}

type SourceStatusCode string

const (
	SourceStatusOK      SourceStatusCode = "ok"
	SourceStatusFailed  SourceStatusCode = "failed"
	SourceStatusSkipped SourceStatusCode = "skipped"
)

// SourceStatus informa ao consumidor se a origem contribuiu para o resultado
type SourceStatus struct {
	Source   SourceName       `json:"source"`
	Status   SourceStatusCode `json:"status"`
	Error    string           `json:"error,omitempty"`
	Currency string           `json:"currency,omitempty"`
	Records  int              `json:"records"`
}

type PeriodResult struct {
	RunID   string                `json:"run_id"`
	Period  PeriodRequest         `json:"period"`
	Records []DerivedMetricRecord `json:"records"`
	Totals  DerivedMetricRecord   `json:"totals"`
	Sources []SourceStatus        `json:"sources"`
}

// Partial indica que ao menos uma origem configurada falhou
func (r *PeriodResult) Partial() bool {
	for _, s := range r.Sources {
		if s.Status == SourceStatusFailed {
			return true
		}
	}
	return false
}

type ComparisonReport struct {
	Current          *PeriodResult `json:"current"`
	LastYear         *PeriodResult `json:"last_year"`
	TwoYearsAgo      *PeriodResult `json:"two_years_ago"`
	DeltaLastYear    PeriodDelta   `json:"delta_last_year"`
	DeltaTwoYearsAgo PeriodDelta   `json:"delta_two_years_ago"`
}
