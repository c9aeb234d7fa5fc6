package datagrid

import "fmt"

// Order is the direction a sorted column is ordered in.
type Order int

const (
	// Ascending orders values by the natural comparator.
	Ascending Order = iota
	// Descending inverts the natural comparator.
	Descending
)

// String returns the short form used by hosts ("asc" / "desc").
func (o Order) String() string {
	switch o {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("unknown(%d)", int(o))
	}
}

// SortState is the current sort column and direction. An empty Key means the data is
// shown in its original order.
type SortState struct {
	Key   string
	Order Order
}

// IsSorted returns true if a sort column is set.
func (s SortState) IsSorted() bool {
	return s.Key != ""
}

// Column describes one column of a grid over rows of type R.
type Column[R any] struct {
	// Key identifies the column and is the sort key.
	Key string
	// Label is the display name. It plays no part in sorting.
	Label string
	// Sortable columns participate in ToggleSort on a View.
	Sortable bool
	// Value reads the cell value from a row.
	Value func(R) any
	// Render maps a cell value to its display text. Nil renders the raw value.
	Render func(value any, row R) string
	// Width is a layout hint for hosts, passed through unchanged.
	Width int
}

// Page is one visible slice of a sorted collection plus its pagination metadata.
type Page[R any] struct {
	Rows       []R
	Page       int
	PageSize   int
	TotalRows  int
	TotalPages int
	Sort       SortState
}

// Empty reports whether the page has no rows to show.
func (p Page[R]) Empty() bool {
	return len(p.Rows) == 0
}
