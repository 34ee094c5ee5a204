package helpers

import (
	"net/http"
	"strconv"
)

// MaxListLimit caps the limit query parameter on public listings.
const MaxListLimit = 100

// ParseLimitOffset reads optional limit and offset from the request query
// string. Missing or invalid values come back as 0, meaning "no limit" and
// "no offset". Limit is clamped to MaxListLimit.
func ParseLimitOffset(r *http.Request) (limit, offset int) {
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > MaxListLimit {
				limit = MaxListLimit
			}
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			offset = v
		}
	}
	return limit, offset
}
