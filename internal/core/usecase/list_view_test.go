package usecase

import (
	"context"
	"errors"
	"testing"

	"joytop-admin-service/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func newDistrictView(t *testing.T, api *fakeDistrictAPI, opts ListViewOptions) *ListView[domain.District] {
	t.Helper()
	if opts.PageSize == 0 {
		opts.PageSize = 20
	}
	view, err := NewListView[domain.District](api, opts)
	require.NoError(t, err)
	return view
}

func ids(items []domain.District) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestNewListView_InvalidPageSize(t *testing.T) {
	_, err := NewListView[domain.District](newFakeDistrictAPI(0), ListViewOptions{PageSize: 0})
	require.ErrorIs(t, err, domain.ErrInvalidPageSize)
}

func TestNewListView_NestedFilterRejected(t *testing.T) {
	_, err := NewListView[domain.District](newFakeDistrictAPI(0), ListViewOptions{
		PageSize: 20,
		Filters:  domain.Filters{"search": []any{"a"}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestListView_StartsIdle(t *testing.T) {
	view := newDistrictView(t, newFakeDistrictAPI(3), ListViewOptions{})

	state := view.Snapshot()
	require.Equal(t, domain.ViewStatusIdle, state.Status)
	require.Empty(t, state.Items)
	require.Equal(t, 1, state.Pagination.CurrentPage)
}

func TestListView_PagingThroughResults(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(45)
	view := newDistrictView(t, api, ListViewOptions{PageSize: 20})

	state := view.Refresh(ctx)
	require.Equal(t, domain.ViewStatusSuccess, state.Status)
	require.Len(t, state.Items, 20)
	require.Equal(t, 45, state.Pagination.Count)
	require.Equal(t, 3, state.Pagination.TotalPages)

	state, err := view.ChangePage(ctx, 3)
	require.NoError(t, err)
	require.Len(t, state.Items, 5)
	require.Equal(t, 3, api.lastCall().page)

	// за пределами TotalPages страница не обрезается
	state, err = view.ChangePage(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, domain.ViewStatusSuccess, state.Status)
	require.Equal(t, 4, state.Pagination.CurrentPage)
	require.Empty(t, state.Items)
	require.Equal(t, 4, api.lastCall().page)
}

func TestListView_ChangePageRejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(5)
	view := newDistrictView(t, api, ListViewOptions{})
	view.Refresh(ctx)

	_, err := view.ChangePage(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidPage)
	require.Len(t, api.calls, 1)
}

func TestListView_ChangePageSizeResetsPage(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(97)
	view := newDistrictView(t, api, ListViewOptions{PageSize: 10})

	view.Refresh(ctx)
	_, err := view.ChangePage(ctx, 3)
	require.NoError(t, err)

	state, err := view.ChangePageSize(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, 1, state.Pagination.CurrentPage)
	require.Equal(t, 20, state.Pagination.PageSize)
	require.Equal(t, 5, state.Pagination.TotalPages)

	last := api.lastCall()
	require.Equal(t, 1, last.page)
	require.Equal(t, 20, last.pageSize)

	_, err = view.ChangePageSize(ctx, 0)
	require.ErrorIs(t, err, domain.ErrInvalidPageSize)
}

func TestListView_FiltersResetPage(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(30)
	view := newDistrictView(t, api, ListViewOptions{PageSize: 10, Filters: domain.Filters{"city": int64(1), "search": ""}})

	view.Refresh(ctx)
	require.Equal(t, domain.Filters{"city": int64(1)}, api.lastCall().filters)

	_, err := view.ChangePage(ctx, 2)
	require.NoError(t, err)

	state, err := view.UpdateFilters(ctx, domain.Filters{"is_active": false})
	require.NoError(t, err)
	require.Equal(t, 1, state.Pagination.CurrentPage)
	require.Equal(t, domain.Filters{"city": int64(1), "is_active": false}, state.Filters)
	require.Equal(t, 1, api.lastCall().page)

	state, err = view.UpdateFilters(ctx, domain.Filters{"city": ""})
	require.NoError(t, err)
	require.Equal(t, domain.Filters{"is_active": false}, state.Filters)

	// вложенное значение отклоняется, фильтры и запросы не меняются
	calls := len(api.calls)
	state, err = view.UpdateFilters(ctx, domain.Filters{"search": map[string]any{"a": 1}, "city": int64(2)})
	require.ErrorIs(t, err, domain.ErrInvalidFilter)
	require.Equal(t, domain.Filters{"is_active": false}, state.Filters)
	require.Len(t, api.calls, calls)

	_, err = view.ChangePage(ctx, 3)
	require.NoError(t, err)

	state = view.ClearFilters(ctx)
	require.Equal(t, 1, state.Pagination.CurrentPage)
	require.Empty(t, state.Filters)
	require.Empty(t, api.lastCall().filters)
}

func TestListView_FetchErrorBecomesState(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(3)
	view := newDistrictView(t, api, ListViewOptions{})

	view.Refresh(ctx)

	api.mu.Lock()
	api.listErr = &domain.RequestError{StatusCode: 500}
	api.mu.Unlock()

	state := view.Refresh(ctx)
	require.Equal(t, domain.ViewStatusError, state.Status)
	require.NotEmpty(t, state.Error)
	require.Len(t, state.Items, 3)

	api.mu.Lock()
	api.listErr = nil
	api.mu.Unlock()

	state = view.Refresh(ctx)
	require.Equal(t, domain.ViewStatusSuccess, state.Status)
	require.Empty(t, state.Error)
}

func TestListView_StaleResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(40)

	entered := make(chan struct{})
	release := make(chan struct{})
	api.onList = func(call listCall) {
		if call.page == 1 {
			close(entered)
			<-release
		}
	}
	view := newDistrictView(t, api, ListViewOptions{PageSize: 20})

	done := make(chan struct{})
	go func() {
		defer close(done)
		view.Refresh(ctx)
	}()

	<-entered
	state, err := view.ChangePage(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(21), state.Items[0].(domain.District).ID)

	close(release)
	<-done

	final := view.Snapshot()
	require.Equal(t, domain.ViewStatusSuccess, final.Status)
	require.Equal(t, 2, final.Pagination.CurrentPage)
	require.Equal(t, int64(21), final.Items[0].(domain.District).ID)
	require.Equal(t, uint64(2), final.Generation)
}

func TestListView_CreatePrepends(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(25)
	sink := &recordingSink{}
	view := newDistrictView(t, api, ListViewOptions{PageSize: 20, Sink: sink})
	view.Refresh(ctx)

	created, err := view.Create(ctx, domain.Payload{Fields: map[string]any{"name": "Olmazor"}})
	require.NoError(t, err)
	require.Equal(t, int64(26), created.ID)

	state := view.Snapshot()
	require.Len(t, state.Items, 21)
	require.Equal(t, created, state.Items[0])
	require.Equal(t, 26, state.Pagination.Count)
	require.Equal(t, 2, state.Pagination.TotalPages)

	records := sink.all()
	require.Len(t, records, 1)
	require.Equal(t, domain.OpCreate, records[0].Operation)
	require.Equal(t, int64(26), records[0].EntityID)
	require.Equal(t, "districts", records[0].Resource)
}

func TestListView_UpdateAndPatchReplaceInPlace(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(3)
	view := newDistrictView(t, api, ListViewOptions{})
	view.Refresh(ctx)

	updated, err := view.Update(ctx, 2, domain.Payload{Fields: map[string]any{"name": "Shayxontohur"}})
	require.NoError(t, err)
	require.Equal(t, "Shayxontohur", updated.Name)

	_, err = view.Patch(ctx, 3, domain.Payload{Fields: map[string]any{"is_active": true}})
	require.NoError(t, err)

	items := view.Items()
	require.Equal(t, []int64{1, 2, 3}, ids(items))
	require.Equal(t, "Shayxontohur", items[1].Name)
	require.True(t, items[2].IsActive)
}

func TestListView_UpdateResponseWithoutIDReplacesRequestedEntry(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(3)
	api.omitIDOnUpdate = true
	view := newDistrictView(t, api, ListViewOptions{})
	view.Refresh(ctx)

	_, err := view.Update(ctx, 2, domain.Payload{Fields: map[string]any{"name": "renamed"}})
	require.NoError(t, err)

	items := view.Items()
	require.Len(t, items, 3)
	require.Equal(t, "district", items[0].Name)
	require.Equal(t, "renamed", items[1].Name)
	require.Equal(t, "district", items[2].Name)

	_, err = view.Patch(ctx, 3, domain.Payload{Fields: map[string]any{"is_active": true}})
	require.NoError(t, err)
	require.True(t, view.Items()[2].IsActive)
}

func TestListView_MutationFailureLeavesListUntouched(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(3)
	view := newDistrictView(t, api, ListViewOptions{})
	before := view.Refresh(ctx)

	api.mu.Lock()
	api.updateErr = &domain.RequestError{StatusCode: 400, Message: "Название уже занято"}
	api.createErr = errors.New("connection reset")
	api.mu.Unlock()

	_, err := view.Update(ctx, 1, domain.Payload{Fields: map[string]any{"name": "x"}})
	var mutErr *domain.MutationError
	require.ErrorAs(t, err, &mutErr)
	require.Equal(t, "Название уже занято", mutErr.Message)
	require.Equal(t, domain.OpUpdate, mutErr.Op)

	_, err = view.Create(ctx, domain.Payload{Fields: map[string]any{"name": "x"}})
	require.ErrorAs(t, err, &mutErr)
	require.Equal(t, "create failed", mutErr.Message)

	after := view.Snapshot()
	require.Equal(t, before.Items, after.Items)
	require.Equal(t, before.Pagination, after.Pagination)
}

func TestListView_Delete(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(21)
	sink := &recordingSink{}
	view := newDistrictView(t, api, ListViewOptions{PageSize: 20, Sink: sink})
	view.Refresh(ctx)

	require.NoError(t, view.Delete(ctx, 5))
	state := view.Snapshot()
	require.Len(t, state.Items, 19)
	require.Equal(t, 20, state.Pagination.Count)
	require.Equal(t, 1, state.Pagination.TotalPages)
	require.NotContains(t, ids(view.Items()), int64(5))

	// повторное удаление: список не меняется, ошибка только от сервера
	err := view.Delete(ctx, 5)
	var mutErr *domain.MutationError
	require.ErrorAs(t, err, &mutErr)
	require.Equal(t, "Not found.", mutErr.Message)
	require.Equal(t, 19, len(view.Items()))
	require.Equal(t, 20, view.Snapshot().Pagination.Count)

	// запись не на текущей странице: сервер удаляет, список не трогаем
	require.NoError(t, view.Delete(ctx, 21))
	require.Equal(t, 19, len(view.Items()))
	require.Equal(t, 20, view.Snapshot().Pagination.Count)

	require.Len(t, sink.all(), 2)
}

func TestListView_ValidatorBlocksRequest(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(1)
	view := newDistrictView(t, api, ListViewOptions{Validator: rejectingValidator{}})
	view.Refresh(ctx)

	_, err := view.Create(ctx, domain.Payload{Fields: map[string]any{"title": "no name"}})
	require.ErrorIs(t, err, domain.ErrPayloadInvalid)

	var mutErr *domain.MutationError
	require.ErrorAs(t, err, &mutErr)
	require.Contains(t, mutErr.Message, "name is required")
	require.Zero(t, api.mutationCount())
	require.Len(t, view.Items(), 1)
}

func TestListView_SinkErrorDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	api := newFakeDistrictAPI(1)
	sink := &recordingSink{err: errors.New("broker down")}
	view := newDistrictView(t, api, ListViewOptions{Sink: NewMutationNotifier(sink)})
	view.Refresh(ctx)

	_, err := view.Create(ctx, domain.Payload{Fields: map[string]any{"name": "Bektemir"}})
	require.NoError(t, err)
	require.Len(t, sink.all(), 1)
}

func TestReconcileHelpersDoNotAlias(t *testing.T) {
	items := []domain.District{{ID: 1}, {ID: 2}}

	replaced, found := replaceByID(items, 2, domain.District{ID: 2, Name: "new"})
	require.True(t, found)
	require.Empty(t, items[1].Name)
	require.Equal(t, "new", replaced[1].Name)

	_, found = replaceByID(items, 3, domain.District{ID: 3})
	require.False(t, found)

	// ключ - запрошенный id, а не id из ответа
	replaced, found = replaceByID(items, 1, domain.District{ID: 2, Name: "first"})
	require.True(t, found)
	require.Equal(t, "first", replaced[0].Name)
	require.Empty(t, replaced[1].Name)

	removed, ok := removeByID(items, 1)
	require.True(t, ok)
	require.Equal(t, []int64{2}, ids(removed))
	require.Len(t, items, 2)

	same, ok := removeByID(items, 9)
	require.False(t, ok)
	require.Equal(t, items, same)

	require.Equal(t, []int64{3, 1, 2}, ids(prependItem(items, domain.District{ID: 3})))
}
