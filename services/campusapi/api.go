// Package campusapi binds the repositories of the core packages to the endpoints
// of the campus REST API.
package campusapi

import (
	"context"
	"encoding/json"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/auth"
	"github.com/siddharth-debugs/college-erp-bite/core/listing"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

// endpoints
const (
	pathSendOTP        = "core/send-login-otp/"
	pathLogin          = "core/login/"
	pathCourses        = "academics/get-all-courses-unpaginated/"
	pathAcademicGroups = "finance/specializations/%d/academic-groups/"
	pathEmployees      = "staff/unpaginated-employee-list/"
	pathActivities     = "academics/activities/"
	pathActivityUpdate = "academics/activities/update/"
	pathActivity       = "academics/activities/%d/"
	pathActivityStats  = "academics/activities/stats/"
	pathStudents       = "students/get-students/"
	pathStudent        = "students/get-students/%d/"
)

// Transport is the subset of *httpclient.Client used by the bindings.
type Transport interface {
	Get(ctx context.Context, path string, out interface{}) error
	Post(ctx context.Context, path string, in, out interface{}) error
}

// API implements the core repositories over a Transport.
type API struct {
	t Transport
}

var (
	_ admitcard.Repository = (*API)(nil)
	_ student.Repository   = (*API)(nil)
	_ auth.Gateway         = (*API)(nil)
)

func New(t Transport) *API {
	return &API{t: t}
}

// Page is the envelope of a paginated response.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p Page[T]) result() listing.Result[T] {
	items := p.Results
	if items == nil {
		items = []T{}
	}
	return listing.Result[T]{Items: items, TotalCount: p.Count}
}

// withQuery appends the query string of q to path.
func withQuery(path string, q listing.Query, table listing.FilterTable) string {
	return path + "?" + listing.EncodeQuery(q, table)
}

type saveReply struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func decodeSave(raw json.RawMessage) admitcard.SaveResult {
	var reply saveReply
	// a body that is not a save reply is kept for the caller to explain
	_ = json.Unmarshal(raw, &reply)
	return admitcard.SaveResult{ID: reply.ID, Message: reply.Message, Body: raw}
}
