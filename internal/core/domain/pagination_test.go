package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalPagesFor(t *testing.T) {
	tcs := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{"empty", 0, 20, 0},
		{"exact", 40, 20, 2},
		{"remainder", 45, 20, 3},
		{"single", 1, 20, 1},
		{"bad_size", 10, 0, 0},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, TotalPagesFor(tc.count, tc.pageSize))
		})
	}
}

func TestPagination_ChangePageSizeResetsPage(t *testing.T) {
	p, err := NewPagination(10)
	require.NoError(t, err)
	p.SetCount(97)
	require.NoError(t, p.ChangePage(7))

	require.NoError(t, p.ChangePageSize(20))
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, 5, p.TotalPages)
	require.Equal(t, 20, p.PageSize)
}

func TestPagination_ChangePageHasNoUpperClamp(t *testing.T) {
	p, err := NewPagination(20)
	require.NoError(t, err)
	p.SetCount(45)

	require.NoError(t, p.ChangePage(4))
	require.Equal(t, 4, p.CurrentPage)
	require.Equal(t, 3, p.TotalPages)
}

func TestPagination_RejectsInvalidInput(t *testing.T) {
	_, err := NewPagination(0)
	require.ErrorIs(t, err, ErrInvalidPageSize)

	p, _ := NewPagination(20)
	require.ErrorIs(t, p.ChangePage(0), ErrInvalidPage)
	require.ErrorIs(t, p.ChangePageSize(-1), ErrInvalidPageSize)
	require.Equal(t, 1, p.CurrentPage)
	require.Equal(t, 20, p.PageSize)
}
