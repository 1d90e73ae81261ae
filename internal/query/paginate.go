package query

// PageRequest is a clamped pagination request. Construct it with NewPageRequest.
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest defaults and clamps raw pagination input: page is 1-based
// and defaults to 1, limit defaults per endpoint and is capped at maxLimit
// to bound reads.
func NewPageRequest(page, limit, defaultLimit, maxLimit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Skip returns the offset of the requested page.
func (p PageRequest) Skip() int {
	return (p.Page - 1) * p.Limit
}

// Pages returns ceil(records/limit). Zero records yield zero pages.
func (p PageRequest) Pages(records int64) int {
	if records == 0 {
		return 0
	}
	return int((records + int64(p.Limit) - 1) / int64(p.Limit))
}
