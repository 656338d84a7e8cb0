package domain

import (
	"errors"
	"fmt"
)

// SourceErrorKind classifica a falha de um adapter
type SourceErrorKind string

const (
	SourceErrorNetwork     SourceErrorKind = "network"
	SourceErrorAuth        SourceErrorKind = "auth"
	SourceErrorMalformed   SourceErrorKind = "malformed"
	SourceErrorUnavailable SourceErrorKind = "unavailable"
)

// SourceError é a falha tipada de uma origem. Não é fatal para o pipeline.
type SourceError struct {
	Source SourceName
	Kind   SourceErrorKind
	Err    error
}

func NewSourceError(source SourceName, kind SourceErrorKind, err error) *SourceError {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: source unavailable (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// AsSourceError garante que o erro carregue o nome da origem
func AsSourceError(source SourceName, err error) *SourceError {
	var sourceErr *SourceError
	if errors.As(err, &sourceErr) {
		return sourceErr
	}

	return NewSourceError(source, SourceErrorUnavailable, err)
}

// InvalidPeriodError é retornado antes de qualquer chamada às origens
type InvalidPeriodError struct {
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	return "invalid period: " + e.Reason
}

// PipelineInternalError agrega falhas inesperadas nas etapas de merge e cálculo
type PipelineInternalError struct {
	Stage string
	Cause any
}

func (e *PipelineInternalError) Error() string {
	return fmt.Sprintf("pipeline internal error at stage %s: %v", e.Stage, e.Cause)
}

// ErrCustomerNotFound indica que não há configuração para o cliente informado
var ErrCustomerNotFound = errors.New("customer not found")

// StorageError indica falha de leitura ou escrita no banco de métricas
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("erro ao %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
