package pagination

// PageCount returns the number of pages needed to show total items, pageSize at a time.
// An empty list still has one (empty) page. A non-positive pageSize means a single page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return MinPage
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// Clamp bounds page into [1, pageCount].
func Clamp(page, pageCount int) int {
	if pageCount < MinPage {
		pageCount = MinPage
	}
	switch {
	case page < MinPage:
		return MinPage
	case page > pageCount:
		return pageCount
	default:
		return page
	}
}

// HasPrevious reports whether the "previous" control is enabled on page.
func HasPrevious(page int) bool {
	return page > MinPage
}

// HasNext reports whether the "next" control is enabled on page.
func HasNext(page, pageCount int) bool {
	return page < pageCount
}

// Prev moves one page back. moved is false when page is already the first page.
//
//nolint:nonamedreturns // Named returns document the guard result.
func Prev(page int) (newPage int, moved bool) {
	if !HasPrevious(page) {
		return page, false
	}
	return page - 1, true
}

// Next moves one page forward. moved is false when page is already the last page.
//
//nolint:nonamedreturns // Named returns document the guard result.
func Next(page, pageCount int) (newPage int, moved bool) {
	if !HasNext(page, pageCount) {
		return page, false
	}
	return page + 1, true
}

// Buttons returns the page numbers that get a selector button, 1 through pageCount.
func Buttons(pageCount int) []int {
	if pageCount < MinPage {
		pageCount = MinPage
	}
	buttons := make([]int, pageCount)
	for i := range buttons {
		buttons[i] = i + 1
	}
	return buttons
}

// Bounds returns the [start, end) indices of page within a list of total items.
// Out-of-range pages yield an empty range at the end of the list.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func Bounds(total, page, pageSize int) (start, end int) {
	if total <= 0 || page < MinPage || pageSize <= 0 {
		return 0, 0
	}
	start = (page - 1) * pageSize
	if start >= total {
		return total, total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// WindowSlice returns the visible page of items: items[(page-1)*pageSize : page*pageSize],
// truncated to the list length. It never panics; an out-of-range page returns an empty slice.
func WindowSlice[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(len(items), page, pageSize)
	return items[start:end:end]
}
