package admitcard

import (
	"strconv"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

// authentication methods
const (
	AuthOTP       = 1
	AuthBiometric = 2
)

// pre-check methods
const (
	PreCheckNoDues     = 1
	PreCheckNOC        = 2
	PreCheckLibraryNOC = 3
)

// Security is the verification posture of a process.
type Security struct {
	AuthenticationMethods []int
	PreCheckMethods       []int
}

// DefaultSecurity is applied to every process: OTP authentication after the
// No Dues and Library NOC clearances.
var DefaultSecurity = Security{
	AuthenticationMethods: []int{AuthOTP},
	PreCheckMethods:       []int{PreCheckNoDues, PreCheckLibraryNOC},
}

// Payload is the body of a create or update request.
type Payload struct {
	ActivityID              int     `json:"activity_id,omitempty"`
	ActivityName            string  `json:"activity_name" validate:"notblank"`
	SelectionName           string  `json:"selection_name"`
	StartDate               string  `json:"start_date" validate:"isodate"`
	EndDate                 string  `json:"end_date" validate:"isodate"`
	ExamStartDate           *string `json:"exam_start_date" validate:"omitempty,isodate"`
	EmployeeIDs             string  `json:"employee_ids" validate:"required"`
	StudentIDs              string  `json:"student_ids"`
	LagIDs                  *string `json:"lag_ids"`
	AuthenticationMethodIDs string  `json:"authentication_method_ids" validate:"required"`
	PreCheckMethodIDs       string  `json:"pre_check_method_ids" validate:"required"`
}

// BuildPayload assembles the request body of a form.
// activityID is zero when creating.
func BuildPayload(data FormData, selected []int, security Security, activityID int) Payload {
	p := Payload{
		ActivityID:              activityID,
		ActivityName:            data.ActivityName,
		SelectionName:           data.SelectionName,
		StartDate:               data.StartDate,
		EndDate:                 data.EndDate,
		EmployeeIDs:             core.JoinIDs(data.AssignedTo),
		StudentIDs:              core.JoinIDs(selected),
		AuthenticationMethodIDs: core.JoinIDs(security.AuthenticationMethods),
		PreCheckMethodIDs:       core.JoinIDs(security.PreCheckMethods),
	}
	if data.ExamDate != "" {
		exam := data.ExamDate
		p.ExamStartDate = &exam
	}
	if data.Semester != 0 {
		lag := strconv.Itoa(data.Semester)
		p.LagIDs = &lag
	}
	return p
}
