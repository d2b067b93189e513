package pagination

// Meta describes one page of a result for machine-readable output.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	FirstItem   int  `json:"first_item"   yaml:"first_item"`
	LastItem    int  `json:"last_item"    yaml:"last_item"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta describes page of total items shown pageSize at a time. page is
// clamped into range first. FirstItem and LastItem are 1-based and both zero
// when the page is empty.
func NewMeta(page, pageSize, total int) Meta {
	pages := PageCount(total, pageSize)
	page = Clamp(page, pages)
	start, end := Bounds(total, page, pageSize)

	m := Meta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  pages,
		TotalItems:  max(total, 0),
		HasPrevious: HasPrevious(page),
		HasNext:     HasNext(page, pages),
	}
	if end > start {
		m.FirstItem, m.LastItem = start+1, end
	}
	return m
}
