package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro devolvidos ao cliente
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidPeriod       = "VAL_004" // Período inválido
	ErrMethodNotAllowed    = "VAL_005" // Método HTTP não suportado pela rota

	// Erros de recurso (4000-4999)
	ErrCustomerNotFound = "RES_001" // Cliente não encontrado
	ErrRouteNotFound    = "RES_002" // Rota inexistente

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrPipelineInternal  = "SRV_004" // Falha interna no pipeline de métricas
	ErrUnavailable       = "SRV_005" // Dependência indisponível
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidPeriod:       http.StatusBadRequest,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrCustomerNotFound:    http.StatusNotFound,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrPipelineInternal:    http.StatusInternalServerError,
	ErrUnavailable:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Error   string `json:"error"`             // Mensagem descritiva
	Code    string `json:"code"`              // Código de erro para o cliente
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP do código, ou 500 para códigos desconhecidos
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Error:   message,
		Code:    code,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// CodeFor classifica os erros de domínio em códigos de API
func CodeFor(err error) string {
	var invalidPeriod *domain.InvalidPeriodError
	var internal *domain.PipelineInternalError
	var storage *domain.StorageError

	switch {
	case err == nil:
		return ErrInternalServer
	case errors.As(err, &invalidPeriod):
		return ErrInvalidPeriod
	case errors.Is(err, domain.ErrCustomerNotFound):
		return ErrCustomerNotFound
	case errors.As(err, &internal):
		return ErrPipelineInternal
	case errors.As(err, &storage):
		return ErrDatabaseOperation
	default:
		return ErrInternalServer
	}
}

// WriteFromError escreve a resposta de erro a partir de um erro de domínio
func WriteFromError(w http.ResponseWriter, err error) {
	message := "Erro desconhecido"
	if err != nil {
		message = err.Error()
	}

	WriteError(w, CodeFor(err), message, nil)
}
