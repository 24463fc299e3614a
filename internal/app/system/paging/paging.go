// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPageSize is the number of media posts returned per feed page.
const DefaultPageSize = 50

// MaxPageSize caps client-supplied limits.
const MaxPageSize = 200

// ParseLimit reads the "limit" query parameter, clamped to [1, MaxPageSize].
func ParseLimit(r *http.Request) int {
	s := query.Get(r, "limit")
	if s == "" {
		return DefaultPageSize
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// ParseBefore reads the "cursor" query parameter as an RFC3339Nano
// creation-time bound for keyset paging of the newest-first feed.
// A missing or unparsable cursor means "start from the newest post".
func ParseBefore(r *http.Request) (time.Time, bool) {
	s := query.Get(r, "cursor")
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TrimPage trims a slice fetched with limit+1 look-ahead and reports whether
// another page exists. It modifies rows in place.
func TrimPage[T any](rows *[]T, limit int) (hasNext bool) {
	if len(*rows) > limit {
		*rows = (*rows)[:limit]
		return true
	}
	return false
}
