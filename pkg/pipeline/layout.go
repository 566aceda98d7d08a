package pipeline

import (
	"fmt"

	"github.com/matzehuels/moverboard/pkg/chart"
	"github.com/matzehuels/moverboard/pkg/render/board/layout"
)

// Plan paginates req and lays out the rows of every page. It is the
// whole pipeline short of assets and drawing, which is all the preview
// needs.
func Plan(req *chart.Request, opts Options) ([]layout.Page, []layout.Rows, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	pages, err := layout.Paginate(req, opts.Capacity)
	if err != nil {
		return nil, nil, err
	}

	lo := opts.LayoutOptions()
	rows := make([]layout.Rows, len(pages))
	for i, p := range pages {
		r, err := layout.LayoutRows(p.Records, lo)
		if err != nil {
			return nil, nil, fmt.Errorf("page %d: %w", p.Index, err)
		}
		rows[i] = r
	}
	return pages, rows, nil
}
