package domain

import "time"

// Операции над ресурсами
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpPatch  = "patch"
	OpDelete = "delete"
)

// MutationRecord - факт успешной мутации, уходит в очередь событий и журнал аудита.
type MutationRecord struct {
	Resource   string
	Operation  string
	EntityID   int64
	Payload    map[string]any
	TraceID    string
	OccurredAt time.Time
}

// AuditPage - страница журнала аудита.
type AuditPage struct {
	Records    []MutationRecord
	TotalCount int64
	Limit      int
	Offset     int
}
