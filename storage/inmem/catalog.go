package inmemdb

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

func (db *DB) CreateCourse(c admitcard.Course) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.courses = append(db.courses, c)
}

// CreateGroup adds a semester and its sections to a course.
func (db *DB) CreateGroup(courseID, id int, name string, lags map[int]string) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	g := group{ID: id, Name: name}
	for lagID, lagName := range lags {
		g.Lags = append(g.Lags, lag{ID: lagID, Name: lagName})
	}
	sort.Slice(g.Lags, func(i, j int) bool { return g.Lags[i].ID < g.Lags[j].ID })
	db.groups[courseID] = append(db.groups[courseID], g)
}

func (db *DB) CreateEmployee(emp admitcard.Employee) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.employees = append(db.employees, emp)
}

// CreateStudent enrolls s in the section lagID.
func (db *DB) CreateStudent(s student.APIStudent, lagID int) (student.APIStudent, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	course, grp, lg, ok := db.findLag(lagID)
	if !ok {
		return student.APIStudent{}, errors.Wrapf(ErrNotFound, "section %d", lagID)
	}
	lagName, grpName, alias := lg.Name, grp.Name, course.Alias
	s.Lag = &student.Lag{
		ID:   lg.ID,
		Name: &lagName,
		AcademicGroup: &student.AcademicGroup{
			ID:   grp.ID,
			Name: &grpName,
			Specialization: &student.Specialization{
				ID:     course.ID,
				Name:   course.Name,
				Course: &student.Course{ID: course.ID, Name: course.Name, Alias: &alias},
			},
		},
	}
	db.students[s.ID] = &s
	return s, nil
}

func (db *DB) Courses() []admitcard.Course {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return append([]admitcard.Course{}, db.courses...)
}

func (db *DB) Employees() []admitcard.Employee {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return append([]admitcard.Employee{}, db.employees...)
}

// AcademicGroups returns the semesters of a course with their enrolled students.
func (db *DB) AcademicGroups(courseID int) ([]admitcard.AcademicGroup, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	if _, ok := db.course(courseID); !ok {
		return nil, errors.Wrapf(ErrNotFound, "course %d", courseID)
	}
	groups := make([]admitcard.AcademicGroup, 0, len(db.groups[courseID]))
	for _, g := range db.groups[courseID] {
		ag := admitcard.AcademicGroup{ID: g.ID, Name: g.Name, Lags: make([]admitcard.Lag, 0, len(g.Lags))}
		for _, l := range g.Lags {
			ag.Lags = append(ag.Lags, admitcard.Lag{ID: l.ID, Name: l.Name, Students: db.candidates(l.ID)})
		}
		groups = append(groups, ag)
	}
	return groups, nil
}

// QueryStudents returns a page of the students matching search, by id.
func (db *DB) QueryStudents(search string, p Page) ([]student.APIStudent, int) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	matched := make([]student.APIStudent, 0, len(db.students))
	for _, s := range db.sortedStudents() {
		if search == "" || studentMatches(s, search) {
			matched = append(matched, *s)
		}
	}
	return paginate(matched, p), len(matched)
}

func (db *DB) GetStudent(id int) (student.APIStudent, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if s, ok := db.students[id]; ok {
		return *s, nil
	}
	return student.APIStudent{}, errors.Wrapf(ErrNotFound, "student %d", id)
}

func studentMatches(s *student.APIStudent, search string) bool {
	for _, fld := range []string{s.FirstName, s.LastName, s.Email, s.RegistrationNo} {
		if strings.Contains(strings.ToLower(fld), search) {
			return true
		}
	}
	return false
}

func (db *DB) sortedStudents() []*student.APIStudent {
	students := make([]*student.APIStudent, 0, len(db.students))
	for _, s := range db.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

// candidates lists the students of a section. db.mutex must be held.
func (db *DB) candidates(lagID int) []admitcard.Candidate {
	candidates := []admitcard.Candidate{}
	for _, s := range db.sortedStudents() {
		if s.Lag == nil || s.Lag.ID != lagID {
			continue
		}
		candidates = append(candidates, toCandidate(s))
	}
	return candidates
}

func toCandidate(s *student.APIStudent) admitcard.Candidate {
	c := admitcard.Candidate{
		ID:             s.ID,
		Name:           strings.TrimSpace(s.FirstName + " " + s.LastName),
		RegistrationNo: s.RegistrationNo,
		Email:          s.Email,
	}
	for _, n := range s.ContactNumbers {
		if n.IsPrimary {
			c.Mobile = n.Number
			break
		}
	}
	return c
}

func (db *DB) course(id int) (admitcard.Course, bool) {
	for _, c := range db.courses {
		if c.ID == id {
			return c, true
		}
	}
	return admitcard.Course{}, false
}

func (db *DB) findGroup(groupID int) (admitcard.Course, group, bool) {
	for courseID, groups := range db.groups {
		for _, g := range groups {
			if g.ID == groupID {
				c, _ := db.course(courseID)
				return c, g, true
			}
		}
	}
	return admitcard.Course{}, group{}, false
}

func (db *DB) findLag(lagID int) (admitcard.Course, group, lag, bool) {
	for courseID, groups := range db.groups {
		for _, g := range groups {
			for _, l := range g.Lags {
				if l.ID == lagID {
					c, _ := db.course(courseID)
					return c, g, l, true
				}
			}
		}
	}
	return admitcard.Course{}, group{}, lag{}, false
}

func (db *DB) employee(id int) (admitcard.Employee, bool) {
	for _, e := range db.employees {
		if e.ID == id {
			return e, true
		}
	}
	return admitcard.Employee{}, false
}
