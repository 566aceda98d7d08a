// Package layout computes row geometry and splits a chart into pages.
//
// # Rows
//
// [LayoutRows] wraps each record's driver text and stacks the rows with no
// gap between them. A row with one or two driver lines is BaseRowHeight
// tall; every further line adds ExtraLinePitch:
//
//	rows, err := layout.LayoutRows(page.Records, layout.DefaultOptions())
//	for _, r := range rows.Rows {
//	    fmt.Println(r.OriginY, r.Height, r.LineCount)
//	}
//
// Row i+1 always starts at rows[i].OriginY + rows[i].Height, and Total is
// the sum of all heights. The page composer sizes the table frame from it.
//
// # Pagination
//
// [Paginate] splits a validated request into contiguous chunks of at most
// capacity records. Pages share the request's record storage; only the
// titles are copied.
//
//	pages, err := layout.Paginate(req, layout.DefaultCapacity)
//
// A page always carries at least one record. Passing zero records to
// [LayoutRows] is a programming error and yields an ErrCodeLayout error.
package layout
