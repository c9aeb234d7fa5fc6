package datagrid

// Paginate returns the contiguous slice [page*pageSize, page*pageSize+pageSize) of data.
// Requests past the end, negative pages and non-positive page sizes yield an empty slice.
func Paginate[R any](data []R, page, pageSize int) []R {
	if page < 0 || pageSize <= 0 || page >= TotalPages(len(data), pageSize) {
		return []R{}
	}
	// page < TotalPages keeps start inside data, so neither bound can overflow.
	start := page * pageSize
	end := start + min(pageSize, len(data)-start)

	out := make([]R, end-start)
	copy(out, data[start:end])
	return out
}

// TotalPages returns ceil(length/pageSize), which is 0 for an empty collection.
func TotalPages(length, pageSize int) int {
	if length <= 0 || pageSize <= 0 {
		return 0
	}
	return (length-1)/pageSize + 1
}
