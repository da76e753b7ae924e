package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Paging binds the page=&page_size=&search= query parameters.
type Paging struct {
	Page   inmemdb.Page
	Search string
}

func (p *Paging) Bind(ctx echo.Context) {
	p.Page = inmemdb.Page{Number: 1, Size: defaultPageSize}
	if n, err := strconv.Atoi(ctx.QueryParam("page")); err == nil && n > 0 {
		p.Page.Number = n
	}
	if n, err := strconv.Atoi(ctx.QueryParam("page_size")); err == nil && n > 0 {
		if n > maxPageSize {
			n = maxPageSize
		}
		p.Page.Size = n
	}
	p.Search = strings.TrimSpace(ctx.QueryParam("search"))
}

// bindStudentFilter reads the filters of the students of a process:
// sort_by=<completed|pending>&sort_type=<no_dues_clearance|library_noc_clearance>,
// admit_card_status=<issued|not-issued> and admit_card_available=<true|false>.
func bindStudentFilter(ctx echo.Context, search string) inmemdb.StudentFilter {
	f := inmemdb.StudentFilter{Search: search}
	params := ctx.QueryParams()
	sortBy, sortTypes := params.Get("sort_by"), params["sort_type"]
	for i, typ := range sortTypes {
		value := sortBy
		if values := params["sort_by"]; i < len(values) {
			value = values[i]
		}
		switch typ {
		case "no_dues_clearance":
			f.NoDues = value
		case "library_noc_clearance":
			f.LibraryNOC = value
		}
	}
	f.IssueStatus = params.Get("admit_card_status")
	if v, err := strconv.ParseBool(params.Get("admit_card_available")); err == nil {
		f.Available = &v
	}
	return f
}

// page is the envelope of a paginated response.
type page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

func newPage(ctx echo.Context, paging Paging, total int, results interface{}) page {
	p := page{Count: total, Results: results}
	link := func(n int) *string {
		q := ctx.Request().URL.Query()
		q.Set("page", strconv.Itoa(n))
		u := *ctx.Request().URL
		u.RawQuery = q.Encode()
		s := u.String()
		return &s
	}
	if paging.Page.Number*paging.Page.Size < total {
		p.Next = link(paging.Page.Number + 1)
	}
	if paging.Page.Number > 1 {
		p.Previous = link(paging.Page.Number - 1)
	}
	return p
}
