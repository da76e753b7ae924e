package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTable = FilterTable{
	{Key: "noDues", Params: func(v string) []Param {
		return []Param{{"sort_by", v}, {"sort_type", "no_dues_clearance"}}
	}},
	{Key: "cardAvailability", Params: func(v string) []Param {
		return []Param{{"admit_card_available", map[bool]string{true: "true", false: "false"}[v == "yes"]}}
	}},
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{
			name: "page only",
			q:    Query{Page: 1, PageSize: 10},
			want: "page=1&page_size=10",
		},
		{
			name: "search is trimmed and spaces become plus",
			q:    Query{Page: 2, PageSize: 20, Search: "  ravi kumar "},
			want: "page=2&page_size=20&search=ravi+kumar",
		},
		{
			name: "search is escaped",
			q:    Query{Page: 1, PageSize: 10, Search: "a&b=c/d"},
			want: "page=1&page_size=10&search=a%26b%3Dc%2Fd",
		},
		{
			name: "filters follow table order",
			q:    Query{Page: 1, PageSize: 10, Filters: map[string]string{"cardAvailability": "no", "noDues": "pending"}},
			want: "page=1&page_size=10&sort_by=pending&sort_type=no_dues_clearance&admit_card_available=false",
		},
		{
			name: "unset and unknown filters are skipped",
			q:    Query{Page: 1, PageSize: 10, Filters: map[string]string{"noDues": FilterAll, "cardAvailability": "", "color": "red"}},
			want: "page=1&page_size=10",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeQuery(tt.q, testTable))
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 10))
	assert.Equal(t, 1, PageCount(10, 10))
	assert.Equal(t, 3, PageCount(25, 10))
	assert.Equal(t, 0, PageCount(25, 0))
}

func TestPages(t *testing.T) {
	assert.Empty(t, Pages(0))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Pages(5))
	assert.Equal(t, []int{1, 2, 3, Ellipsis, 7, 8}, Pages(8))
}

func TestMove(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"c", "a", "b", "d"}, Move(items, 2, 0))
	assert.Equal(t, []string{"b", "c", "d", "a"}, Move(items, 0, 3))
	assert.Equal(t, []string{"a", "b", "c", "d"}, Move(items, 1, 9))
	assert.Equal(t, []string{"a", "b", "c", "d"}, items, "input is left untouched")
}
