package port

import "joytop-admin-service/internal/core/domain"

// PayloadValidatorPort проверяет тело мутации до отправки в API.
// Для ресурсов без схемы возвращает nil.
type PayloadValidatorPort interface {
	Validate(resource, operation string, payload domain.Payload) error
}
