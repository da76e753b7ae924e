package admitcard

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

// FormData is the draft of a process.
type FormData struct {
	CourseID      int
	CourseName    string
	Semester      int // academic group id; 0 when none is chosen
	ActivityName  string
	StartDate     string // YYYY-MM-DD
	EndDate       string
	ExamDate      string
	AssignedTo    []int // employee ids
	SelectionName string
}

// validation messages
const (
	MsgSelectCourse        = "Please select a course"
	MsgSelectSemester      = "Please select a semester"
	MsgEnterActivityName   = "Please enter activity name"
	MsgSelectStartDate     = "Please select start date"
	MsgStartDateInPast     = "Start date cannot be in the past. Please select current date onwards."
	MsgSelectEndDate       = "Please select end date"
	MsgEndBeforeStart      = "End date must be after start date"
	MsgSelectExamDate      = "Please select exam date"
	MsgExamBeforeStart     = "Exam start date cannot be before start date"
	MsgAssignEmployee      = "Please assign at least one employee"
	MsgEnterSelectionName  = "Please enter selection name"
	msgInvalidDateTemplate = "Please select a valid %s"
)

// Validate checks a draft before it is saved. The first failing rule is
// returned as a *core.ValidationError; dates are compared by calendar day.
func Validate(data FormData, selected, roster int, today time.Time) error {
	if data.CourseID == 0 {
		return invalid("course_id", MsgSelectCourse)
	}
	if data.Semester == 0 {
		return invalid("semester", MsgSelectSemester)
	}
	if strings.TrimSpace(data.ActivityName) == "" {
		return invalid("activity_name", MsgEnterActivityName)
	}

	if data.StartDate == "" {
		return invalid("start_date", MsgSelectStartDate)
	}
	start, err := parseDate(data.StartDate)
	if err != nil {
		return invalid("start_date", fmt.Sprintf(msgInvalidDateTemplate, "start date"))
	}
	if start.Before(day(today)) {
		return invalid("start_date", MsgStartDateInPast)
	}

	if data.EndDate == "" {
		return invalid("end_date", MsgSelectEndDate)
	}
	end, err := parseDate(data.EndDate)
	if err != nil {
		return invalid("end_date", fmt.Sprintf(msgInvalidDateTemplate, "end date"))
	}
	if !end.After(start) {
		return invalid("end_date", MsgEndBeforeStart)
	}

	if data.ExamDate == "" {
		return invalid("exam_start_date", MsgSelectExamDate)
	}
	exam, err := parseDate(data.ExamDate)
	if err != nil {
		return invalid("exam_start_date", fmt.Sprintf(msgInvalidDateTemplate, "exam date"))
	}
	if exam.Before(start) {
		return invalid("exam_start_date", MsgExamBeforeStart)
	}

	if len(data.AssignedTo) == 0 {
		return invalid("employee_ids", MsgAssignEmployee)
	}

	if SelectionNameRequired(selected, roster) && strings.TrimSpace(data.SelectionName) == "" {
		return invalid("selection_name", MsgEnterSelectionName)
	}
	return nil
}

func invalid(field, msg string) error {
	return core.NewValidationError(errors.New(msg), core.FieldError{Field: field, Error: msg})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(core.DateLayout, s)
}

// day truncates t to its calendar day, expressed in UTC like parsed dates.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
