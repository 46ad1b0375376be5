package dashboard

import "newsdash/config"

// TotalPages returns ceil(count / pageSize), or 0 when either is not positive
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// PageWindow returns up to config.MaxVisiblePages consecutive page numbers
// centred on current and clamped to [1, total]. Near either end the window
// shifts so that min(MaxVisiblePages, total) pages are always shown.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}

	size := config.MaxVisiblePages
	if total < size {
		size = total
	}

	start := current - size/2
	if start+size-1 > total {
		start = total - size + 1
	}
	if start < 1 {
		start = 1
	}

	pages := make([]int, size)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
