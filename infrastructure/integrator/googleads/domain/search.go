package adsdomain

import (
	"bytes"
	"fmt"
	"strconv"
)

// Int64Value aceita inteiros enviados como string (padrão da API REST) ou como número
type Int64Value int64

func (v *Int64Value) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*v = 0
		return nil
	}

	parsed, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*v = Int64Value(parsed)
	return nil
}

type SearchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type SearchResponse struct {
	Results       []SearchRow `json:"results"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

type SearchRow struct {
	Customer *Customer `json:"customer,omitempty"`
	Campaign *Campaign `json:"campaign,omitempty"`
	Segments *Segments `json:"segments,omitempty"`
	Metrics  *Metrics  `json:"metrics,omitempty"`
}

type Customer struct {
	ID           Int64Value `json:"id"`
	CurrencyCode string     `json:"currencyCode"`
	TimeZone     string     `json:"timeZone"`
}

type Campaign struct {
	ID   Int64Value `json:"id"`
	Name string     `json:"name"`
}

type Segments struct {
	Date string `json:"date"`
}

type Metrics struct {
	CostMicros       Int64Value `json:"costMicros"`
	Impressions      Int64Value `json:"impressions"`
	Clicks           Int64Value `json:"clicks"`
	Conversions      float64    `json:"conversions"`
	ConversionsValue float64    `json:"conversionsValue"`
}

// Cost converte micros para a unidade da moeda da conta
func (m *Metrics) Cost() float64 {
	return float64(m.CostMicros) / 1e6
}

// ErrorResponse é o envelope de erro da API (google.rpc.Status)
type ErrorResponse struct {
	Error RPCStatus `json:"error"`
}

type RPCStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// APIError é a falha da API com o google.rpc.Status já decodificado
type APIError struct {
	StatusCode int
	RPC        RPCStatus
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("google ads api error (status %d, %s): %s", e.StatusCode, e.RPC.Status, e.RPC.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsAuth indica credencial inválida ou sem acesso à conta
func (e *APIError) IsAuth() bool {
	return e.RPC.Status == "UNAUTHENTICATED" || e.RPC.Status == "PERMISSION_DENIED"
}

// IsRetryable indica cota esgotada ou indisponibilidade do lado do Google
func (e *APIError) IsRetryable() bool {
	switch e.RPC.Status {
	case "RESOURCE_EXHAUSTED", "UNAVAILABLE", "DEADLINE_EXCEEDED", "INTERNAL", "ABORTED":
		return true
	}
	return false
}

// IsRejected indica uma consulta recusada para esta conta (conta inexistente, GAQL inválida)
func (e *APIError) IsRejected() bool {
	switch e.RPC.Status {
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION", "NOT_FOUND":
		return true
	}
	return false
}
