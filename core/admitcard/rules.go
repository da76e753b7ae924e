package admitcard

import (
	"strings"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

const allStudentsSuffix = " - All"

// ActivityName derives the name of a process from its cohort.
// It is empty until both a course and a semester are chosen.
func ActivityName(courseName, semesterLabel string, selected, roster int) string {
	if courseName == "" || semesterLabel == "" {
		return ""
	}
	name := courseName + " - " + semesterLabel
	if roster > 0 && selected == roster {
		name += allStudentsSuffix
	}
	return name
}

// SelectionNameRequired reports whether a partial, non-empty selection of the roster was made.
func SelectionNameRequired(selected, roster int) bool {
	return selected > 0 && selected < roster
}

// FlattenRoster lists the students of every section of group, in order.
func FlattenRoster(group AcademicGroup) []Candidate {
	var roster []Candidate
	for _, lag := range group.Lags {
		roster = append(roster, lag.Students...)
	}
	return roster
}

// FilterRoster keeps the students whose name or registration number contains search.
func FilterRoster(roster []Candidate, search string) []Candidate {
	search = core.CleanString(search, true)
	if search == "" {
		return roster
	}
	filtered := make([]Candidate, 0, len(roster))
	for _, c := range roster {
		if strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.RegistrationNo), search) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
