package campusapi

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

func (api *API) QueryStudents(ctx context.Context, q listing.Query) (listing.Result[student.Student], error) {
	var page Page[student.APIStudent]
	if err := api.t.Get(ctx, withQuery(pathStudents, q, nil), &page); err != nil {
		return listing.Result[student.Student]{}, errors.Wrap(err, "querying students")
	}
	return listing.Result[student.Student]{Items: student.TransformAll(page.Results), TotalCount: page.Count}, nil
}

func (api *API) GetStudent(ctx context.Context, id int) (student.Student, error) {
	var s student.APIStudent
	if err := api.t.Get(ctx, fmt.Sprintf(pathStudent, id), &s); err != nil {
		return student.Student{}, errors.Wrapf(err, "loading student %d", id)
	}
	return student.Transform(s), nil
}
