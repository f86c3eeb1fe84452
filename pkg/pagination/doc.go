// Package pagination slices an in-memory dataset into fixed-size pages and
// gates navigation at the first and last page.
//
// The whole dataset is loaded once; pagination happens entirely on the
// client side. A Paginator is a value over a read-only slice, so every
// operation is a pure function of the page number passed in:
//
//	p := pagination.New(records, pagination.DefaultPageSize)
//	page := 1
//	rows := p.Slice(page)        // records[0:10]
//	page = p.Next(page)          // 2, or 1 if there is only one page
//	ctl := p.Controls(page)      // which buttons to show and enable
//
// Page numbers are 1-based. Out-of-range pages never produce an error:
// Slice returns an empty page and Clamp pulls the number back into range.
//
// Controls are hidden entirely when there is at most one page. Otherwise
// Previous is disabled on the first page and Next on the last.
package pagination
