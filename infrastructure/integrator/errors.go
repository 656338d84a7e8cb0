package integrator

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/vfg2006/marketing-metrics-api/internal/domain"
	"github.com/vfg2006/marketing-metrics-api/pkg/utils"
)

// ClassifyError converte falhas de transporte e respostas HTTP em SourceError
func ClassifyError(source domain.SourceName, err error) *domain.SourceError {
	if err == nil {
		return nil
	}

	var sourceErr *domain.SourceError
	if errors.As(err, &sourceErr) {
		return sourceErr
	}

	var httpErr *utils.HTTPError
	if errors.As(err, &httpErr) {
		return domain.NewSourceError(source, kindForStatus(httpErr.StatusCode), err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewSourceError(source, domain.SourceErrorNetwork, err)
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return domain.NewSourceError(source, domain.SourceErrorNetwork, err)
	}

	return domain.NewSourceError(source, domain.SourceErrorUnavailable, err)
}

func kindForStatus(status int) domain.SourceErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.SourceErrorAuth
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return domain.SourceErrorMalformed
	default:
		return domain.SourceErrorUnavailable
	}
}

// Malformed marca um payload que não pôde ser interpretado
func Malformed(source domain.SourceName, err error) *domain.SourceError {
	return domain.NewSourceError(source, domain.SourceErrorMalformed, err)
}

// MissingCredential é retornado antes de qualquer chamada quando falta uma credencial
func MissingCredential(source domain.SourceName, key string) *domain.SourceError {
	return domain.NewSourceError(source, domain.SourceErrorAuth, errors.New("missing credential "+key))
}
