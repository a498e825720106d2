package filter

// DefaultPageSize is the number of parcels shown per solares page.
const DefaultPageSize = 10

// Page describes one window over a filtered result set.
type Page struct {
	Number      int  `json:"number"`
	Size        int  `json:"size"`
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

// NewPage computes the window for the requested page number, clamping it to
// the available pages. An empty result set still has page 1.
func NewPage(totalCount, size, number int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalCount < 0 {
		totalCount = 0
	}

	totalPages := (totalCount + size - 1) / size
	lastPage := totalPages
	if lastPage < 1 {
		lastPage = 1
	}

	switch {
	case number < 1:
		number = 1
	case number > lastPage:
		number = lastPage
	}

	return Page{
		Number:      number,
		Size:        size,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrevious: number > 1,
		HasNext:     number < totalPages,
	}
}

// Bounds returns the half-open slice range covered by the page.
func (p Page) Bounds() (int, int) {
	start := (p.Number - 1) * p.Size
	if start > p.TotalCount {
		start = p.TotalCount
	}
	end := start + p.Size
	if end > p.TotalCount {
		end = p.TotalCount
	}
	return start, end
}

// Paginate cuts the page-th window out of entries.
func Paginate(entries []Entry, size, number int) ([]Entry, Page) {
	page := NewPage(len(entries), size, number)
	start, end := page.Bounds()
	return entries[start:end], page
}
