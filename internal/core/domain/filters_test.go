package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilters_MergeDropsEmptyValues(t *testing.T) {
	base := Filters{"search": "flat", "is_paid": true}

	merged := base.Merge(Filters{"search": "", "min_price": 1000, "is_paid": nil})

	require.Equal(t, Filters{"min_price": 1000}, merged)
	// исходный набор не меняется
	require.Equal(t, Filters{"search": "flat", "is_paid": true}, base)
}

func TestFilters_MergeKeepsFalseAndZero(t *testing.T) {
	merged := Filters{}.Merge(Filters{"is_paid": false, "min_price": 0})
	require.Equal(t, Filters{"is_paid": false, "min_price": 0}, merged)
}

func TestFilters_KeysSkipsAbsent(t *testing.T) {
	f := Filters{"b": 1, "a": "x", "c": ""}
	require.Equal(t, []string{"a", "b"}, f.Keys())
}

func TestFilters_ValidateRejectsNested(t *testing.T) {
	require.NoError(t, Filters{"search": "flat", "is_paid": false, "min_price": 1000, "city": nil}.Validate())

	err := Filters{"search": map[string]any{"a": 1}}.Validate()
	require.ErrorIs(t, err, ErrInvalidFilter)
	require.Contains(t, err.Error(), `"search"`)

	require.ErrorIs(t, Filters{"ids": []any{1, 2}}.Validate(), ErrInvalidFilter)
}

func TestNewMutationError_UsesServerMessage(t *testing.T) {
	err := NewMutationError(OpDelete, "districts", &RequestError{StatusCode: 404, Message: "Not found."})
	require.Equal(t, "Not found.", err.Message)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	require.Equal(t, 404, reqErr.StatusCode)
}

func TestNewMutationError_GenericMessage(t *testing.T) {
	err := NewMutationError(OpCreate, "banners", &RequestError{StatusCode: 500})
	require.Equal(t, "create failed", err.Message)
}
