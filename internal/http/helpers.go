package http

import (
	"net/http"
	"strconv"
	"strings"

	"fatture/internal/core"
)

// parseSearchParams extracts the invoice-table search query and page number,
// defaulting to an unfiltered first page. Bad page values fall back to 1.
func parseSearchParams(r *http.Request) (query string, page int) {
	query = strings.TrimSpace(r.URL.Query().Get("query"))
	page = 1
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p >= 1 {
			page = p
		}
	}
	return query, page
}

// formFields flattens the submitted form into the plain string map the
// mutation layer validates.
func formFields(r *http.Request) map[string]string {
	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = strings.TrimSpace(r.PostForm.Get(key))
	}
	return fields
}

// dollarsString renders cents as a bare decimal (no currency symbol) for
// pre-filling the amount input on the edit form.
func dollarsString(cents int64) string {
	return strconv.FormatFloat(core.Money{Cents: cents}.Dollars(), 'f', 2, 64)
}
