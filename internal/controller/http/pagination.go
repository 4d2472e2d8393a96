package http

import "strconv"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination reads page/limit query values, falling back to sane
// defaults and clamping the limit.
func parsePagination(rawPage, rawLimit string) (int, int) {
	page := 1
	if parsed, err := strconv.Atoi(rawPage); err == nil && parsed > 0 {
		page = parsed
	}

	limit := defaultPageLimit
	if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
		limit = parsed
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}
