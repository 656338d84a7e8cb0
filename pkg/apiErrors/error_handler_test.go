package apiErrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/marketing-metrics-api/internal/domain"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "período inválido", err: &domain.InvalidPeriodError{Reason: "x"}, want: ErrInvalidPeriod},
		{name: "cliente inexistente", err: domain.ErrCustomerNotFound, want: ErrCustomerNotFound},
		{name: "erro interno embrulhado", err: fmt.Errorf("period: %w", &domain.PipelineInternalError{Stage: "merging"}), want: ErrPipelineInternal},
		{name: "falha de banco", err: fmt.Errorf("snapshots: %w", &domain.StorageError{Op: "buscar snapshots", Err: errors.New("pq: connection refused")}), want: ErrDatabaseOperation},
		{name: "erro qualquer", err: errors.New("boom"), want: ErrInternalServer},
		{name: "nil", err: nil, want: ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeFor(tt.err))
		})
	}
}

func TestWriteFromError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteFromError(rec, &domain.InvalidPeriodError{Reason: "a data de início é posterior à data de fim"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrInvalidPeriod, body.Code)
	assert.Contains(t, body.Error, "invalid period")
}

func TestStatusFor_UnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("NOPE"))
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrCustomerNotFound))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(ErrUnavailable))
}
