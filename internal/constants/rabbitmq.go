package constants

// Обменник событий административной панели
const (
	AdminExchangeName = "admin_exchange"
	AdminExchangeType = "topic"
)

// Ключи маршрутизации: admin.resource.<операция>
const (
	RoutingKeyResourceCreated = "admin.resource.create"
	RoutingKeyResourceUpdated = "admin.resource.update"
	RoutingKeyResourcePatched = "admin.resource.patch"
	RoutingKeyResourceDeleted = "admin.resource.delete"
)

// RoutingKeyForOperation возвращает ключ маршрутизации операции или "" для неизвестной
func RoutingKeyForOperation(op string) string {
	switch op {
	case "create":
		return RoutingKeyResourceCreated
	case "update":
		return RoutingKeyResourceUpdated
	case "patch":
		return RoutingKeyResourcePatched
	case "delete":
		return RoutingKeyResourceDeleted
	}
	return ""
}
