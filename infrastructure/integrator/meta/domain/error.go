package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// APIError é o erro retornado pelo cliente quando a Graph API responde com falha
type APIError struct {
	StatusCode int
	Details    ErrorDetails
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("meta api error (status %d, code %d): %s", e.StatusCode, e.Details.Code, e.Details.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTokenExpired verifica se o erro é de token expirado ou inválido
func (e *APIError) IsTokenExpired() bool {
	// 190 é token inválido/expirado; 460, 463 e 467 são subcódigos de sessão
	return e.Details.Code == 190 ||
		(e.Details.Type == "OAuthException" && (e.Details.ErrorSubcode == 460 || e.Details.ErrorSubcode == 463 || e.Details.ErrorSubcode == 467))
}

// IsRateLimited indica throttling de aplicação, usuário ou conta de anúncios
func (e *APIError) IsRateLimited() bool {
	switch e.Details.Code {
	case 4, 17, 32, 613, 80004:
		return true
	}
	return false
}
