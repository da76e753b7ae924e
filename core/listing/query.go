package listing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	// FilterAll is the filter value meaning "no filter".
	FilterAll = "all"
)

// DefaultPageSizes are the page sizes a user may pick from.
var DefaultPageSizes = []int{10, 20, 50, 100}

// Query is the parameter set of a list fetch.
// Search holds the debounced search text, not the live input.
type Query struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

func (q Query) clone() Query {
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

// Result is one page of a list.
type Result[T any] struct {
	Items      []T
	TotalCount int
	// Meta carries endpoint specific data of the response envelope.
	Meta interface{}
}

// Fetcher loads one page of a list.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q Query) (Result[T], error)
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc[T any] func(ctx context.Context, q Query) (Result[T], error)

func (f FetchFunc[T]) Fetch(ctx context.Context, q Query) (Result[T], error) {
	return f(ctx, q)
}

// Param is a single query string parameter.
type Param struct {
	Name  string
	Value string
}

// FilterParam maps a filter key to the query parameters it stands for.
type FilterParam struct {
	Key    string
	Params func(value string) []Param
}

// FilterTable is the ordered mapping of filter keys to query parameters.
// Filters absent from the table are never sent.
type FilterTable []FilterParam

// EncodeQuery renders q as a query string:
// page=<n>&page_size=<n>[&search=<text>][&<filter params>...].
// The search text is trimmed and URL encoded with spaces as '+'.
func EncodeQuery(q Query, table FilterTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "page=%d&page_size=%d", q.Page, q.PageSize)
	if search := strings.TrimSpace(q.Search); search != "" {
		b.WriteString("&search=")
		b.WriteString(url.QueryEscape(search))
	}
	for _, fp := range table {
		value, ok := q.Filters[fp.Key]
		if !ok || isUnset(value) {
			continue
		}
		for _, p := range fp.Params(value) {
			b.WriteString("&")
			b.WriteString(url.QueryEscape(p.Name))
			b.WriteString("=")
			b.WriteString(url.QueryEscape(p.Value))
		}
	}
	return b.String()
}

func isUnset(value string) bool {
	return value == "" || value == FilterAll
}
