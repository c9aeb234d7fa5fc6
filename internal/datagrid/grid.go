// Package datagrid sorts and paginates row collections for display. It never mutates the
// caller's data and degrades to an unspecified order instead of failing on malformed rows.
package datagrid

import (
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Grid is a set of column descriptors over rows of type R.
type Grid[R any] struct {
	columns   []Column[R]
	index     map[string]int
	rowKey    func(R) string
	collation language.Tag
}

type Config[R any] struct {
	Columns []Column[R]
	// RowKey returns the identity of a row, used by hosts to key rendered rows.
	RowKey func(R) string
	// Collation is the language used to compare string cells. Defaults to the root collation.
	Collation language.Tag
}

func (c *Config[R]) validate() error {
	var errGrp []error
	if len(c.Columns) == 0 {
		errGrp = append(errGrp, errors.New("at least one column is required"))
	}
	seen := make(map[string]struct{}, len(c.Columns))
	for i, col := range c.Columns {
		if col.Key == "" {
			errGrp = append(errGrp, fmt.Errorf("column %d: key is required", i))
			continue
		}
		if _, ok := seen[col.Key]; ok {
			errGrp = append(errGrp, fmt.Errorf("column %q: duplicate key", col.Key))
		}
		seen[col.Key] = struct{}{}
		if col.Value == nil {
			errGrp = append(errGrp, fmt.Errorf("column %q: value accessor is required", col.Key))
		}
	}
	return errors.Join(errGrp...)
}

// New returns a grid over the configured columns.
func New[R any](cfg *Config[R]) (*Grid[R], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(cfg.Columns))
	for i, col := range cfg.Columns {
		index[col.Key] = i
	}

	return &Grid[R]{
		columns:   slices.Clone(cfg.Columns),
		index:     index,
		rowKey:    cfg.RowKey,
		collation: cfg.Collation,
	}, nil
}

// Columns returns a copy of the column descriptors in display order.
func (g *Grid[R]) Columns() []Column[R] {
	return slices.Clone(g.columns)
}

// Column returns the descriptor for key.
func (g *Grid[R]) Column(key string) (Column[R], bool) {
	i, ok := g.index[key]
	if !ok {
		return Column[R]{}, false
	}
	return g.columns[i], true
}

// Labels returns the column labels in display order.
func (g *Grid[R]) Labels() []string {
	labels := make([]string, len(g.columns))
	for i, col := range g.columns {
		labels[i] = col.Label
	}
	return labels
}

// Key returns the identity of row, or an empty string when no RowKey was configured.
func (g *Grid[R]) Key(row R) string {
	if g.rowKey == nil {
		return ""
	}
	return g.rowKey(row)
}

// Sort returns a new slice ordered by state. With no sort key, or a key no column
// declares, the copy keeps the input order. Rows with equal keys keep their relative order.
func (g *Grid[R]) Sort(data []R, state SortState) []R {
	out := slices.Clone(data)
	if !state.IsSorted() {
		return out
	}
	col, ok := g.Column(state.Key)
	if !ok || col.Value == nil {
		return out
	}

	// collators are not safe for concurrent use, so each sort gets its own
	coll := collate.New(g.collation)
	slices.SortStableFunc(out, func(a, b R) int {
		c := compareValues(col.Value(a), col.Value(b), coll)
		if state.Order == Descending {
			return -c
		}
		return c
	})
	return out
}

// Cell returns the display text of one cell.
func (g *Grid[R]) Cell(row R, col Column[R]) string {
	var value any
	if col.Value != nil {
		value = col.Value(row)
	}
	if col.Render != nil {
		return col.Render(value, row)
	}
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// Cells returns the display text of every cell in row, in column order.
func (g *Grid[R]) Cells(row R) []string {
	cells := make([]string, len(g.columns))
	for i, col := range g.columns {
		cells[i] = g.Cell(row, col)
	}
	return cells
}

// Apply sorts data by the view's sort state and returns the view's current page. A page
// index beyond the last page yields an empty page; it is not clamped.
func (g *Grid[R]) Apply(v View, data []R) Page[R] {
	sorted := g.Sort(data, v.Sort)
	return Page[R]{
		Rows:       Paginate(sorted, v.CurrentPage, v.PageSize),
		Page:       v.CurrentPage,
		PageSize:   v.PageSize,
		TotalRows:  len(sorted),
		TotalPages: TotalPages(len(sorted), v.PageSize),
		Sort:       v.Sort,
	}
}

// ToggleSort toggles the view's sort on key if the column is sortable. It reports
// whether the view changed.
func (g *Grid[R]) ToggleSort(v *View, key string) bool {
	col, ok := g.Column(key)
	if !ok || !col.Sortable {
		return false
	}
	v.ToggleSort(key)
	return true
}
