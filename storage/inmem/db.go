// Package inmemdb is an in-memory campus: courses, semesters, sections, students,
// employees, admins and admit card processes.
package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrNameTaken      = errors.New("an activity with this name already exists")
	ErrUnknownAdmin   = errors.New("mobile number not registered")
	ErrInvalidOTP     = errors.New("invalid otp")
	ErrUnknownStudent = errors.New("student not in the academic group")
	ErrUnknownStaff   = errors.New("unknown employee")
)

type (
	DB struct {
		mutex sync.RWMutex

		admins     map[string]*Admin // by mobile
		otps       map[string][]byte // mobile -> bcrypt hash
		courses    []admitcard.Course
		groups     map[int][]group // by course id
		employees  []admitcard.Employee
		students   map[int]*student.APIStudent
		activities map[int]*Activity
		activityPK int
		bcryptCost int
	}

	// Admin is a staff member allowed to log in.
	Admin struct {
		ID       int
		Mobile   string
		FullName string
		Email    string
	}

	group struct {
		ID   int
		Name string
		Lags []lag
	}

	lag struct {
		ID   int
		Name string
	}

	// Activity is a stored admit card process.
	Activity struct {
		ID            int
		Name          string
		SelectionName string
		Description   *string
		CourseID      int
		GroupID       int
		StartDate     string
		EndDate       string
		ExamStartDate *string
		EmployeeIDs   []int
		StudentIDs    []int
		AuthMethodIDs []int
		PreCheckIDs   []int
		CreatedBy     string
		Progress      map[int]*Progress // by student id
	}

	// Progress of one student through a process.
	Progress struct {
		NoDues        bool
		LibraryNOC    bool
		NOC           bool
		Authenticated bool
		Issued        bool
		IssuedBy      string
		IssuedAt      string
		Available     bool
		Downloads     int
	}

	// Page selects a slice of a result set. Page starts at 1.
	Page struct {
		Number int
		Size   int
	}
)

// Open returns an empty DB. bcryptCost applies to stored OTPs.
func Open(bcryptCost int) *DB {
	return &DB{
		admins:     make(map[string]*Admin),
		otps:       make(map[string][]byte),
		groups:     make(map[int][]group),
		students:   make(map[int]*student.APIStudent),
		activities: make(map[int]*Activity),
		bcryptCost: bcryptCost,
	}
}

// paginate returns the items of page p.
func paginate[T any](items []T, p Page) []T {
	if p.Size <= 0 {
		return items
	}
	if p.Number < 1 {
		p.Number = 1
	}
	start := (p.Number - 1) * p.Size
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
