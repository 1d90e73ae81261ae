package query

import "strings"

// postSortFields is the allow-list of sortable post columns. Anything else
// silently falls back to the default sort, so clients cannot inject
// arbitrary ORDER BY expressions.
var postSortFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"title":      {},
}

const defaultPostOrder = "created_at DESC"

// PostOrderBy returns the ORDER BY expression for a post listing.
func PostOrderBy(field, direction string) string {
	if _, ok := postSortFields[field]; !ok {
		return defaultPostOrder
	}

	dir := "ASC"
	if strings.EqualFold(direction, "desc") {
		dir = "DESC"
	}
	return field + " " + dir
}
