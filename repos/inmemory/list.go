package inmemory

import (
	"github.com/mobile-directing-system/mds-store/repos"
)

// pageBounds clamps a page to the collection size, falling back to the
// default amount when none is requested.
func pageBounds(page repos.Page, total int) (int, int) {
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	amount := page.Amount
	if amount <= 0 {
		amount = repos.DefaultPageAmount
	}

	end := offset + amount
	if end > total {
		end = total
	}

	return offset, end
}

// searchBounds differs from list paging: a non-positive limit means
// unlimited.
func searchBounds(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = -1
	}
	return offset, limit
}
