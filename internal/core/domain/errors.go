package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPage       = errors.New("page must be greater than or equal to 1")
	ErrInvalidPageSize   = errors.New("page size must be greater than 0")
	ErrViewNotFound      = errors.New("list view not found")
	ErrUnknownResource   = errors.New("unknown resource")
	ErrPayloadInvalid    = errors.New("payload does not match resource schema")
	ErrMalformedResponse = errors.New("response body does not match any known envelope")
	ErrAuditDisabled     = errors.New("audit journal is disabled")
	ErrInvalidFilter     = errors.New("filter value must be a string, number or boolean")
)

// RequestError - ответ бэкенда с не-2xx статусом.
// Message заполняется из поля "message" тела ответа, если его удалось разобрать.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("marketplace api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("marketplace api returned status %d: %s", e.StatusCode, e.Message)
}

// MutationError - ошибка create/update/patch/delete.
// Message - сообщение сервера или "<op> failed", если сервер ничего не прислал.
type MutationError struct {
	Op       string
	Resource string
	Message  string
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Resource, e.Op, e.Message)
}

func (e *MutationError) Unwrap() error { return e.Err }

// NewMutationError собирает MutationError, вытаскивая серверное сообщение из RequestError.
func NewMutationError(op, resource string, err error) *MutationError {
	msg := op + " failed"
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		msg = reqErr.Message
	}
	return &MutationError{Op: op, Resource: resource, Message: msg, Err: err}
}
