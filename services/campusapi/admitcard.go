package campusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

type activityDetailReply struct {
	admitcard.ActivityDetail
	Students struct {
		Page[admitcard.StudentAdmitCard]
		TotalAdmitCards int `json:"total_admit_cards"`
	} `json:"students"`
}

func (api *API) ListCourses(ctx context.Context) ([]admitcard.Course, error) {
	var reply struct {
		Data []admitcard.Course `json:"data"`
	}
	if err := api.t.Get(ctx, pathCourses, &reply); err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	return reply.Data, nil
}

func (api *API) ListAcademicGroups(ctx context.Context, courseID int) ([]admitcard.AcademicGroup, error) {
	var groups []admitcard.AcademicGroup
	if err := api.t.Get(ctx, fmt.Sprintf(pathAcademicGroups, courseID), &groups); err != nil {
		return nil, errors.Wrapf(err, "listing academic groups of course %d", courseID)
	}
	return groups, nil
}

func (api *API) ListEmployees(ctx context.Context) ([]admitcard.Employee, error) {
	var reply struct {
		Employees []admitcard.Employee `json:"employees"`
	}
	if err := api.t.Get(ctx, pathEmployees, &reply); err != nil {
		return nil, errors.Wrap(err, "listing employees")
	}
	return reply.Employees, nil
}

func (api *API) GetActivityForEdit(ctx context.Context, activityID int) (admitcard.EditActivity, error) {
	var act admitcard.EditActivity
	path := pathActivityUpdate + "?activity_id=" + strconv.Itoa(activityID)
	if err := api.t.Get(ctx, path, &act); err != nil {
		return admitcard.EditActivity{}, errors.Wrapf(err, "loading activity %d", activityID)
	}
	return act, nil
}

func (api *API) CreateActivity(ctx context.Context, p admitcard.Payload) (admitcard.SaveResult, error) {
	var raw json.RawMessage
	if err := api.t.Post(ctx, pathActivities, p, &raw); err != nil {
		return admitcard.SaveResult{}, errors.Wrap(err, "creating activity")
	}
	return decodeSave(raw), nil
}

func (api *API) UpdateActivity(ctx context.Context, p admitcard.Payload) (admitcard.SaveResult, error) {
	var raw json.RawMessage
	if err := api.t.Post(ctx, pathActivityUpdate, p, &raw); err != nil {
		return admitcard.SaveResult{}, errors.Wrapf(err, "updating activity %d", p.ActivityID)
	}
	return decodeSave(raw), nil
}

func (api *API) QueryActivities(ctx context.Context, q listing.Query) (listing.Result[admitcard.Activity], error) {
	var page Page[admitcard.Activity]
	if err := api.t.Get(ctx, withQuery(pathActivities, q, nil), &page); err != nil {
		return listing.Result[admitcard.Activity]{}, errors.Wrap(err, "querying activities")
	}
	return page.result(), nil
}

func (api *API) QueryActivityStudents(ctx context.Context, activityID int, q listing.Query) (listing.Result[admitcard.StudentAdmitCard], error) {
	var reply activityDetailReply
	path := withQuery(fmt.Sprintf(pathActivity, activityID), q, admitcard.StudentFilters)
	if err := api.t.Get(ctx, path, &reply); err != nil {
		return listing.Result[admitcard.StudentAdmitCard]{}, errors.Wrapf(err, "querying students of activity %d", activityID)
	}
	res := reply.Students.result()
	detail := reply.ActivityDetail
	detail.TotalAdmitCards = reply.Students.TotalAdmitCards
	res.Meta = detail
	return res, nil
}

func (api *API) GetActivityStats(ctx context.Context, activityID int) (admitcard.ActivityStats, error) {
	var stats admitcard.ActivityStats
	path := pathActivityStats + "?activity_id=" + strconv.Itoa(activityID)
	if err := api.t.Get(ctx, path, &stats); err != nil {
		return admitcard.ActivityStats{}, errors.Wrapf(err, "loading stats of activity %d", activityID)
	}
	return stats, nil
}
