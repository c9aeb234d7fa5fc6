package datagrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToggleSort(t *testing.T) {
	req := require.New(t)

	first := ToggleSort(SortState{}, "name")
	req.Equal(SortState{Key: "name", Order: Ascending}, first)

	second := ToggleSort(first, "name")
	req.Equal(SortState{Key: "name", Order: Descending}, second)

	third := ToggleSort(second, "name")
	req.Equal(SortState{Key: "name", Order: Ascending}, third)

	other := ToggleSort(second, "score")
	req.Equal(SortState{Key: "score", Order: Ascending}, other)
}

func TestView(t *testing.T) {
	t.Run("default page size", func(t *testing.T) {
		require.Equal(t, View{PageSize: 10}, NewView(0))
	})

	t.Run("toggle resets page", func(t *testing.T) {
		v := NewView(5)
		v.SetPage(4)
		v.ToggleSort("name")
		require.Equal(t, 0, v.CurrentPage)
		require.Equal(t, "name", v.Sort.Key)
	})

	t.Run("page size change keeps page", func(t *testing.T) {
		v := NewView(5)
		v.SetPage(4)
		v.SetPageSize(50)
		require.Equal(t, 4, v.CurrentPage)
		require.Equal(t, 50, v.PageSize)

		v.SetPageSize(-1)
		require.Equal(t, 50, v.PageSize)
	})
}

func TestOrder_String(t *testing.T) {
	require.Equal(t, "asc", Ascending.String())
	require.Equal(t, "desc", Descending.String())
	require.Equal(t, "unknown(7)", Order(7).String())
}
