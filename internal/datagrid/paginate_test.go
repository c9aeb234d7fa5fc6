package datagrid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	data := []int{1, 2, 3}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{name: "third row", page: 2, pageSize: 1, want: []int{3}},
		{name: "past the end", page: 3, pageSize: 1, want: []int{}},
		{name: "partial last page", page: 1, pageSize: 2, want: []int{3}},
		{name: "whole set", page: 0, pageSize: 10, want: []int{1, 2, 3}},
		{name: "negative page", page: -1, pageSize: 2, want: []int{}},
		{name: "zero page size", page: 0, pageSize: 0, want: []int{}},
		{name: "page offset wraps around", page: 1 << 62, pageSize: 4, want: []int{}},
		{name: "huge page and size", page: math.MaxInt, pageSize: math.MaxInt, want: []int{}},
		{name: "max page size", page: 0, pageSize: math.MaxInt, want: []int{1, 2, 3}},
		{name: "past the end with max size", page: 1, pageSize: math.MaxInt, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Paginate(data, tt.page, tt.pageSize))
		})
	}

	t.Run("result does not alias input", func(t *testing.T) {
		got := Paginate(data, 0, 2)
		got[0] = 99
		require.Equal(t, []int{1, 2, 3}, data)
	})
}

func TestPaginate_Reconstructs(t *testing.T) {
	data := make([]int, 23)
	for i := range data {
		data[i] = i
	}

	for _, size := range []int{1, 4, 7, 23, 50, math.MaxInt} {
		var joined []int
		pages := TotalPages(len(data), size)
		for p := 0; p < pages; p++ {
			joined = append(joined, Paginate(data, p, size)...)
		}
		require.Equal(t, data, joined, "page size %d", size)
		require.Empty(t, Paginate(data, pages, size))
	}
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 10))
	require.Equal(t, 3, TotalPages(3, 1))
	require.Equal(t, 1, TotalPages(10, 10))
	require.Equal(t, 2, TotalPages(11, 10))
	require.Equal(t, 0, TotalPages(5, 0))
	require.Equal(t, 1, TotalPages(5, math.MaxInt))
	require.Equal(t, math.MaxInt, TotalPages(math.MaxInt, 1))
}
