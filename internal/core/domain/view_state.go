package domain

// ViewStatus - состояние списка: Idle -> Loading -> {Success, Error}.
type ViewStatus string

const (
	ViewStatusIdle    ViewStatus = "idle"
	ViewStatusLoading ViewStatus = "loading"
	ViewStatusSuccess ViewStatus = "success"
	ViewStatusError   ViewStatus = "error"
)

// ViewState - снимок смонтированного списка, готовый к отдаче наружу.
type ViewState struct {
	Resource   string
	Status     ViewStatus
	Items      []any
	Pagination Pagination
	Filters    Filters
	Error      string
	Generation uint64
}
