package shopifydomain

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type GraphQLResponse struct {
	Data   jsoniter.RawMessage `json:"data"`
	Errors []GraphQLError      `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

// GraphQLErrors é o erro retornado quando a resposta traz a lista errors
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s (%s)", err.Message, err.Extensions.Code))
	}
	return "shopify graphql: " + strings.Join(messages, "; ")
}

func (e GraphQLErrors) HasCode(code string) bool {
	for _, err := range e {
		if err.Extensions.Code == code {
			return true
		}
	}
	return false
}
