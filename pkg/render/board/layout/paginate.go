package layout

import (
	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/errors"
)

// DefaultCapacity is the number of records per page.
const DefaultCapacity = 7

// Page is one contiguous slice of a request's records plus its titles.
type Page struct {
	Index     int            `json:"index"` // 1-based
	Total     int            `json:"total"`
	TitleMain string         `json:"title_main"`
	TitleSub  string         `json:"title_sub"`
	Records   []chart.Record `json:"records"`
}

// PageCount returns ceil(n/capacity), or 0 for an invalid capacity.
func PageCount(n, capacity int) int {
	if capacity < 1 || n <= 0 {
		return 0
	}
	return (n + capacity - 1) / capacity
}

// Paginate splits req into pages of at most capacity records,
// preserving record order. The last page may be shorter.
func Paginate(req *chart.Request, capacity int) ([]Page, error) {
	if capacity < 1 {
		return nil, errors.New(errors.ErrCodeInvalidCapacity, "page capacity must be at least 1, got %d", capacity)
	}
	if req == nil || len(req.Records) == 0 {
		return nil, errors.NewInputError([]string{"data array must not be empty"})
	}

	total := PageCount(len(req.Records), capacity)
	pages := make([]Page, 0, total)
	for lo := 0; lo < len(req.Records); lo += capacity {
		hi := min(lo+capacity, len(req.Records))
		pages = append(pages, Page{
			Index:     len(pages) + 1,
			Total:     total,
			TitleMain: req.TitleMain,
			TitleSub:  req.TitleSub,
			Records:   req.Records[lo:hi:hi],
		})
	}
	return pages, nil
}
