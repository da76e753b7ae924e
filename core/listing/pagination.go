package listing

// Ellipsis marks elided pages in the output of Pages.
const Ellipsis = 0

// PageCount is the number of pages needed to show total items, size per page.
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Pages lists the page links of a pager: every page up to five pages,
// otherwise the three first and two last pages around an Ellipsis.
func Pages(pageCount int) []int {
	if pageCount <= 5 {
		pages := make([]int, 0, pageCount)
		for i := 1; i <= pageCount; i++ {
			pages = append(pages, i)
		}
		return pages
	}
	return []int{1, 2, 3, Ellipsis, pageCount - 1, pageCount}
}

// Move returns a copy of items with the element at from moved to index to.
// Out of range indexes leave the order unchanged.
func Move[T any](items []T, from, to int) []T {
	moved := make([]T, len(items))
	copy(moved, items)
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return moved
	}
	item := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append([]T{item}, moved[to:]...)...)
	return moved
}
