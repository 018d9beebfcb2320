package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Clamp returns params with absent or non-positive values replaced by
// page 1 and the given default page size.
func (p PaginationParams) Clamp(defaultPageSize int) PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	return p
}

// Slice returns the [lo, hi) bounds of the current page within a list of
// the given length. An out-of-range page yields an empty slice, not an
// error.
func (p PaginationParams) Slice(total int) (lo, hi int) {
	lo = (p.Page - 1) * p.PageSize
	if lo > total {
		lo = total
	}
	hi = lo + p.PageSize
	if hi > total {
		hi = total
	}
	return lo, hi
}
