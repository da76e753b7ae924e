package admitcard

import (
	"context"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

// Repository is the remote source of admit card processes and their reference data.
type Repository interface {
	ListCourses(ctx context.Context) ([]Course, error)
	ListAcademicGroups(ctx context.Context, courseID int) ([]AcademicGroup, error)
	ListEmployees(ctx context.Context) ([]Employee, error)

	GetActivityForEdit(ctx context.Context, activityID int) (EditActivity, error)
	CreateActivity(ctx context.Context, p Payload) (SaveResult, error)
	UpdateActivity(ctx context.Context, p Payload) (SaveResult, error)

	QueryActivities(ctx context.Context, q listing.Query) (listing.Result[Activity], error)
	// QueryActivityStudents returns the students of a process; Result.Meta holds its ActivityDetail.
	QueryActivityStudents(ctx context.Context, activityID int, q listing.Query) (listing.Result[StudentAdmitCard], error)
	GetActivityStats(ctx context.Context, activityID int) (ActivityStats, error)
}

// SaveResult is the answer of the server to a create or update.
type SaveResult struct {
	ID      int
	Message string
	// Body is the raw response, used to explain a refused save.
	Body []byte
}
