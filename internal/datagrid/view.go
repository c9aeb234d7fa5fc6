package datagrid

const defaultPageSize = 10

// View is the sort and pagination state a host holds between renders.
type View struct {
	Sort        SortState
	CurrentPage int
	PageSize    int
}

// NewView returns an unsorted view on the first page. A non-positive page size falls back
// to the default of 10 rows.
func NewView(pageSize int) View {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return View{PageSize: pageSize}
}

// ToggleSort moves the view to the next sort state for key and back to the first page,
// since page N of the old order means nothing under the new one.
func (v *View) ToggleSort(key string) {
	v.Sort = ToggleSort(v.Sort, key)
	v.CurrentPage = 0
}

// SetPage moves to page. The index is not checked against the data.
func (v *View) SetPage(page int) {
	v.CurrentPage = page
}

// SetPageSize changes the page size. The current page is left as is, so a page beyond the
// new last page renders empty.
func (v *View) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	v.PageSize = size
}

// ToggleSort returns the sort state after a header click on key: a new column starts
// ascending and the same column flips direction. It never returns to unsorted.
func ToggleSort(current SortState, key string) SortState {
	if current.Key != key {
		return SortState{Key: key, Order: Ascending}
	}
	if current.Order == Ascending {
		return SortState{Key: key, Order: Descending}
	}
	return SortState{Key: key, Order: Ascending}
}
