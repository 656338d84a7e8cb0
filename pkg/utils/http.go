package utils

import (
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody limita o corpo guardado em HTTPError
const maxErrorBody = 2048

// HTTPError é uma resposta com status fora da faixa 2xx
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Error on Request: status: %s body: %s", e.Status, string(e.Body))
}

// ReadResponse lê o corpo da resposta e retorna HTTPError para status diferente de 2xx
func ReadResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: data}
	}

	return data, nil
}
