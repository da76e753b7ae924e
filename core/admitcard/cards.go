package admitcard

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrExamPassed is returned when changing a process whose exam already started.
var ErrExamPassed = errors.New("exam date has passed")

// pre-check names reported by the statistics
const (
	PreCheckNameNoDues     = "No Dues Clearance"
	PreCheckNameLibraryNOC = "Library NOC Clearance"
)

// Band is the color class of a progress bar.
type Band string

const (
	BandGreen  Band = "green"
	BandBlue   Band = "blue"
	BandYellow Band = "yellow"
	BandOrange Band = "orange"
	BandRed    Band = "red"
	BandGray   Band = "gray"
)

// ProgressPercentage is completed/total as a rounded percentage; 0 without a total.
func ProgressPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ProgressBand colors a progress: green from 90%, blue from 70%, yellow from 50%.
func ProgressBand(completed, total int) Band {
	pct := ProgressPercentage(completed, total)
	switch {
	case pct >= 90:
		return BandGreen
	case pct >= 70:
		return BandBlue
	case pct >= 50:
		return BandYellow
	default:
		return BandOrange
	}
}

// DaysUntil counts the calendar days from today to date.
// ok is false when date is empty or invalid.
func DaysUntil(date string, today time.Time) (days int, ok bool) {
	if date == "" {
		return 0, false
	}
	d, err := parseDate(date)
	if err != nil {
		return 0, false
	}
	return int(d.Sub(day(today)).Hours() / 24), true
}

// IsExamPassed reports whether the exam date is before today.
func IsExamPassed(examDate string, today time.Time) bool {
	days, ok := DaysUntil(examDate, today)
	return ok && days < 0
}

// RelativeDay describes date relatively to today: "3 days ago", "Today" or "in 2 days".
func RelativeDay(date string, today time.Time) string {
	days, ok := DaysUntil(date, today)
	switch {
	case !ok:
		return "—"
	case days < 0:
		return fmt.Sprintf("%d days ago", -days)
	case days == 0:
		return "Today"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// ExamBadge colors the countdown to an exam.
func ExamBadge(examDate string, today time.Time) Band {
	days, ok := DaysUntil(examDate, today)
	switch {
	case !ok:
		return BandGray
	case days > 0:
		return BandGreen
	case days == 0:
		return BandBlue
	default:
		return BandRed
	}
}

// CheckEditable refuses changes to a process whose exam has passed.
func CheckEditable(a Activity, today time.Time) error {
	if a.ExamStartDate != nil && IsExamPassed(*a.ExamStartDate, today) {
		return errors.Wrapf(ErrExamPassed, "activity %d", a.ID)
	}
	return nil
}

// CheckProgress summarizes one pre-check of a process.
type CheckProgress struct {
	Completed int
	Total     int
	Pending   int
	Percent   int
}

// PreCheckProgress returns the progress of the named pre-check.
// A missing or empty total counts as one, so a pre-check with no data reads 0%.
func PreCheckProgress(stats ActivityStats, name string) CheckProgress {
	var completed, total int
	for _, p := range stats.PreCheckMethods {
		if p.Type == name {
			completed, total = p.Completed, p.Total
			break
		}
	}
	if total == 0 {
		total = 1
	}
	return CheckProgress{
		Completed: completed,
		Total:     total,
		Pending:   total - completed,
		Percent:   ProgressPercentage(completed, total),
	}
}

// StudentProgress returns the overall completion of a process.
func StudentProgress(stats ActivityStats) CheckProgress {
	total := stats.TotalStudents
	if total == 0 {
		total = 1
	}
	return CheckProgress{
		Completed: stats.CompletedStudents,
		Total:     total,
		Pending:   total - stats.CompletedStudents,
		Percent:   ProgressPercentage(stats.CompletedStudents, total),
	}
}
