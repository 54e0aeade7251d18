package marketplace_api_client

import (
	"encoding/json"
	"io"
	"net/http"

	"joytop-admin-service/internal/core/domain"
)

// maxErrorBody ограничивает чтение тела ошибки
const maxErrorBody = 64 << 10

type errorBody struct {
	Message any `json:"message"`
}

// readRequestError превращает не-2xx ответ в RequestError.
// Неразбираемое тело не является ошибкой: сообщение просто остается пустым.
func readRequestError(resp *http.Response) *domain.RequestError {
	reqErr := &domain.RequestError{StatusCode: resp.StatusCode}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bodyBytes) == 0 {
		return reqErr
	}

	var parsed errorBody
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil {
		return reqErr
	}
	if msg, ok := parsed.Message.(string); ok {
		reqErr.Message = msg
	}
	return reqErr
}
