// Package student exposes the student roster of the campus.
package student

import (
	"context"
	"strings"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

// Repository is the remote source of students.
type Repository interface {
	QueryStudents(ctx context.Context, q listing.Query) (listing.Result[Student], error)
	GetStudent(ctx context.Context, id int) (Student, error)
}

// filters applied to a loaded page; the server does not filter the roster
const (
	FilterStatus    = "status"    // active | inactive
	FilterCourse    = "course"    // course alias
	FilterDocuments = "documents" // complete | incomplete
)

// NewList returns the paginated roster.
func NewList(repo Repository, opts listing.Options) *listing.Controller[Student] {
	return listing.New[Student](listing.FetchFunc[Student](repo.QueryStudents), opts)
}

// Visible keeps the students of a page matching filters.
// Empty and "all" values match everything.
func Visible(students []Student, filters map[string]string) []Student {
	out := make([]Student, 0, len(students))
	for _, s := range students {
		if matches(s.Status, filters[FilterStatus]) &&
			matches(s.Course, filters[FilterCourse]) &&
			matches(s.DocumentStatus, filters[FilterDocuments]) {
			out = append(out, s)
		}
	}
	return out
}

func matches(value, filter string) bool {
	return filter == "" || filter == listing.FilterAll || strings.EqualFold(value, filter)
}
