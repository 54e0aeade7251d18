package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"joytop-admin-service/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// WriteDomainError переводит ошибку ядра в HTTP-статус и пишет ответ
func WriteDomainError(w http.ResponseWriter, err error) {
	WriteJSONError(w, statusForError(err), messageForError(err))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrViewNotFound), errors.Is(err, domain.ErrUnknownResource):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPage), errors.Is(err, domain.ErrInvalidPageSize),
		errors.Is(err, domain.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPayloadInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAuditDisabled):
		return http.StatusServiceUnavailable
	}

	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode >= 400 && reqErr.StatusCode < 600 {
		return reqErr.StatusCode
	}
	return http.StatusBadGateway
}

func messageForError(err error) string {
	var mutErr *domain.MutationError
	if errors.As(err, &mutErr) {
		return mutErr.Message
	}
	return err.Error()
}

func GetLimitOrDefault(r *http.Request, def int) (int, error) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return def, nil
	}
	return strconv.Atoi(limitStr)
}

func GetOffsetOrDefault(r *http.Request) (int, error) {
	offsetStr := r.URL.Query().Get("offset")
	if offsetStr == "" {
		return 0, nil
	}
	return strconv.Atoi(offsetStr)
}
