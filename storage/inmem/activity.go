package inmemdb

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
)

// pre-check and authentication method names
var (
	preCheckNames = map[int]string{
		admitcard.PreCheckNoDues:     "No Dues Clearance",
		admitcard.PreCheckNOC:        "NOC Clearance",
		admitcard.PreCheckLibraryNOC: "Library NOC Clearance",
	}
	authNames = map[int]string{
		admitcard.AuthOTP:       "OTP",
		admitcard.AuthBiometric: "Biometric",
	}
)

// progress values of StudentFilter
const (
	ProgressCompleted = "completed"
	ProgressPending   = "pending"
	CardIssued        = "issued"
	CardNotIssued     = "not-issued"
)

// StudentFilter narrows the students of a process. Empty fields match everything.
type StudentFilter struct {
	Search      string
	NoDues      string // completed | pending
	LibraryNOC  string // completed | pending
	IssueStatus string // issued | not-issued
	Available   *bool
}

// CreateActivity stores a new process; its students start with no progress.
func (db *DB) CreateActivity(act Activity) (Activity, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if err := db.checkActivity(act); err != nil {
		return Activity{}, err
	}
	course, _, _ := db.findGroup(act.GroupID)
	act.CourseID = course.ID
	db.activityPK++
	act.ID = db.activityPK
	act.Progress = make(map[int]*Progress, len(act.StudentIDs))
	for _, id := range act.StudentIDs {
		act.Progress[id] = &Progress{}
	}
	db.activities[act.ID] = &act
	return act.clone(), nil
}

// UpdateActivity replaces a process, keeping the progress of its remaining students.
func (db *DB) UpdateActivity(act Activity) (Activity, error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	orig, ok := db.activities[act.ID]
	if !ok {
		return Activity{}, errors.Wrapf(ErrNotFound, "activity %d", act.ID)
	}
	if err := db.checkActivity(act); err != nil {
		return Activity{}, err
	}
	course, _, _ := db.findGroup(act.GroupID)
	act.CourseID = course.ID
	progress := make(map[int]*Progress, len(act.StudentIDs))
	for _, id := range act.StudentIDs {
		if p, ok := orig.Progress[id]; ok {
			progress[id] = p
		} else {
			progress[id] = &Progress{}
		}
	}
	act.Progress = progress
	act.CreatedBy = orig.CreatedBy
	if act.Description == nil {
		act.Description = orig.Description
	}
	db.activities[act.ID] = &act
	return act.clone(), nil
}

func (db *DB) GetActivity(id int) (Activity, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	act, ok := db.activities[id]
	if !ok {
		return Activity{}, errors.Wrapf(ErrNotFound, "activity %d", id)
	}
	return act.clone(), nil
}

// SetProgress records the progress of a student through a process.
func (db *DB) SetProgress(activityID, studentID int, p Progress) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	act, ok := db.activities[activityID]
	if !ok {
		return errors.Wrapf(ErrNotFound, "activity %d", activityID)
	}
	if _, ok = act.Progress[studentID]; !ok {
		return errors.Wrapf(ErrUnknownStudent, "student %d", studentID)
	}
	act.Progress[studentID] = &p
	return nil
}

// QueryActivities returns a page of the processes whose name matches search, newest first.
func (db *DB) QueryActivities(search string, p Page) ([]admitcard.Activity, int) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	ids := make([]int, 0, len(db.activities))
	for id, act := range db.activities {
		if search == "" ||
			strings.Contains(strings.ToLower(act.Name), search) ||
			strings.Contains(strings.ToLower(act.SelectionName), search) {
			ids = append(ids, id)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	page := paginate(ids, p)
	out := make([]admitcard.Activity, 0, len(page))
	for _, id := range page {
		out = append(out, db.activityView(db.activities[id]))
	}
	return out, len(ids)
}

// EditView returns the persisted state of a process as the edit form loads it.
func (db *DB) EditView(id int) (admitcard.EditActivity, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	act, ok := db.activities[id]
	if !ok {
		return admitcard.EditActivity{}, errors.Wrapf(ErrNotFound, "activity %d", id)
	}
	course, _ := db.course(act.CourseID)
	view := admitcard.EditActivity{
		AcademicGroup: act.GroupID,
		Name:          act.Name,
		StartDate:     act.StartDate,
		EndDate:       act.EndDate,
		ExamStartDate: act.ExamStartDate,
		Employees:     db.employeesOf(act),
		SelectionName: optional(act.SelectionName),
		Students:      db.studentRefs(act),
	}
	view.Specialization.ID = course.ID
	view.Specialization.Course = course.Name
	return view, nil
}

// ActivityStudents returns the header of a process and a page of its students matching f.
func (db *DB) ActivityStudents(id int, f StudentFilter, p Page) (admitcard.ActivityDetail, []admitcard.StudentAdmitCard, int, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	act, ok := db.activities[id]
	if !ok {
		return admitcard.ActivityDetail{}, nil, 0, errors.Wrapf(ErrNotFound, "activity %d", id)
	}

	detail := admitcard.ActivityDetail{
		ID:            act.ID,
		Name:          act.Name,
		SelectionName: optional(act.SelectionName),
		Description:   act.Description,
		StartDate:     act.StartDate,
		EndDate:       act.EndDate,
		ExamStartDate: act.ExamStartDate,
		TotalStudents: len(act.StudentIDs),
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	cards := make([]admitcard.StudentAdmitCard, 0, len(act.StudentIDs))
	for _, sid := range act.StudentIDs {
		prog := act.Progress[sid]
		if prog.Authenticated {
			detail.VerifiedStudents++
		}
		if prog.Available {
			detail.TotalAdmitCards++
		}
		s, ok := db.students[sid]
		if !ok || !f.matches(*prog) {
			continue
		}
		if search != "" && !studentMatches(s, search) {
			continue
		}
		cards = append(cards, db.admitCard(act, sid, prog))
	}
	return detail, paginate(cards, p), len(cards), nil
}

// Stats summarizes the progress of a process.
func (db *DB) Stats(id int) (admitcard.ActivityStats, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	act, ok := db.activities[id]
	if !ok {
		return admitcard.ActivityStats{}, errors.Wrapf(ErrNotFound, "activity %d", id)
	}
	stats := admitcard.ActivityStats{
		ActivityID:            act.ID,
		ActivityName:          act.Name,
		EmployeeIDs:           append([]int{}, act.EmployeeIDs...),
		TotalStudents:         len(act.StudentIDs),
		AuthenticationMethods: []admitcard.AuthProgress{},
		PreCheckMethods:       []admitcard.PreCheckStatus{},
	}
	for _, p := range act.Progress {
		if p.Issued {
			stats.CompletedStudents++
		}
		if p.Available {
			stats.StudentsWithAdmitCardCount++
		}
	}
	for _, mid := range act.AuthMethodIDs {
		ap := admitcard.AuthProgress{Type: authNames[mid], Total: len(act.StudentIDs)}
		for _, p := range act.Progress {
			if p.Authenticated {
				ap.Completed++
			}
		}
		stats.AuthenticationMethods = append(stats.AuthenticationMethods, ap)
	}
	for _, mid := range act.PreCheckIDs {
		ps := admitcard.PreCheckStatus{Type: preCheckNames[mid], Total: len(act.StudentIDs)}
		for _, p := range act.Progress {
			if p.cleared(mid) {
				ps.Completed++
			}
		}
		stats.PreCheckMethods = append(stats.PreCheckMethods, ps)
	}
	return stats, nil
}

// checkActivity checks the references of act. db.mutex must be held.
func (db *DB) checkActivity(act Activity) error {
	name := strings.ToLower(strings.TrimSpace(act.Name))
	for _, other := range db.activities {
		if other.ID != act.ID && strings.ToLower(other.Name) == name &&
			strings.EqualFold(other.SelectionName, act.SelectionName) {
			return ErrNameTaken
		}
	}
	for _, id := range act.EmployeeIDs {
		if _, ok := db.employee(id); !ok {
			return errors.Wrapf(ErrUnknownStaff, "employee %d", id)
		}
	}
	_, grp, ok := db.findGroup(act.GroupID)
	if !ok {
		return errors.Wrapf(ErrNotFound, "academic group %d", act.GroupID)
	}
	for _, id := range act.StudentIDs {
		s, ok := db.students[id]
		if !ok || s.Lag == nil || !grp.hasLag(s.Lag.ID) {
			return errors.Wrapf(ErrUnknownStudent, "student %d", id)
		}
	}
	return nil
}

func (db *DB) activityView(act *Activity) admitcard.Activity {
	course, grp, _ := db.findGroup(act.GroupID)
	lags := make([]string, 0, len(grp.Lags))
	for _, l := range grp.Lags {
		lags = append(lags, l.Name)
	}
	view := admitcard.Activity{
		ID:                    act.ID,
		Name:                  act.Name,
		Specialization:        course.Name,
		AcademicGroup:         grp.Name,
		Lag:                   strings.Join(lags, ", "),
		Description:           act.Description,
		StartDate:             act.StartDate,
		EndDate:               act.EndDate,
		ExamStartDate:         act.ExamStartDate,
		TotalStudents:         len(act.StudentIDs),
		Employees:             db.employeesOf(act),
		PreCheckMethods:       methods(act.PreCheckIDs, preCheckNames),
		AuthenticationMethods: methods(act.AuthMethodIDs, authNames),
		SelectionName:         optional(act.SelectionName),
		CreatedBy:             act.CreatedBy,
		Students:              db.studentRefs(act),
	}
	for _, p := range act.Progress {
		if p.Issued {
			view.CompletedStudents++
		}
	}
	return view
}

func (db *DB) admitCard(act *Activity, studentID int, p *Progress) admitcard.StudentAdmitCard {
	s := db.students[studentID]
	c := toCandidate(s)
	card := admitcard.StudentAdmitCard{
		StudentID:                    s.ID,
		FullName:                     c.Name,
		RegistrationNo:               s.RegistrationNo,
		Mobile:                       c.Mobile,
		Email:                        s.Email,
		TotalPrechecks:               len(act.PreCheckIDs),
		TotalAuthentications:         len(act.AuthMethodIDs),
		AllPrecheckNames:             []string{},
		CompletedPrecheckNames:       []string{},
		AllAuthenticationNames:       []string{},
		CompletedAuthenticationNames: []string{},
		LibraryNOCStatus:             ProgressPending,
		ActivityCompleted:            p.Issued,
		AdmitCardDownloadCount:       p.Downloads,
		IsAdmitCardAvailable:         p.Available,
	}
	if s.Lag != nil && s.Lag.AcademicGroup != nil && s.Lag.AcademicGroup.Specialization != nil {
		card.CourseName = s.Lag.AcademicGroup.Specialization.Name
	}
	for _, v := range []struct {
		dst *string
		src *string
	}{
		{&card.Gender, s.Gender}, {&card.DateOfBirth, s.DateOfBirth}, {&card.FatherName, s.FatherName},
		{&card.MotherName, s.MotherName}, {&card.AadharNumber, s.AadharNumber},
	} {
		if v.src != nil {
			*v.dst = *v.src
		}
	}
	card.BloodGroup = s.BloodGroup
	if p.Issued {
		card.ActivityCompletedIssuedBy = optional(p.IssuedBy)
		card.ActivityCompletedIssuedAt = optional(p.IssuedAt)
	}
	if p.LibraryNOC {
		card.LibraryNOCStatus = ProgressCompleted
		card.LibraryNOCClearanceCount = 1
	}
	if p.NoDues {
		card.NoDuesClearanceCount = 1
	}
	for _, mid := range act.PreCheckIDs {
		card.AllPrecheckNames = append(card.AllPrecheckNames, preCheckNames[mid])
		if p.cleared(mid) {
			card.CompletedPrechecks++
			card.CompletedPrecheckNames = append(card.CompletedPrecheckNames, preCheckNames[mid])
		}
	}
	for _, mid := range act.AuthMethodIDs {
		card.AllAuthenticationNames = append(card.AllAuthenticationNames, authNames[mid])
		if p.Authenticated {
			card.CompletedAuthentications++
			card.CompletedAuthenticationNames = append(card.CompletedAuthenticationNames, authNames[mid])
		}
	}
	for _, a := range s.Addresses {
		if a.Type != "Current" {
			continue
		}
		card.Address = admitcard.Address{Address: a.Address, AddressLine2: a.Line2, Pincode: a.Pincode}
		if a.City != nil {
			card.Address.City = a.City.Name
		}
		if a.State != nil {
			card.Address.State = a.State.Name
		}
		if a.Country != nil {
			card.Address.Country = a.Country.Name
		}
	}
	return card
}

func (db *DB) employeesOf(act *Activity) []admitcard.Employee {
	emps := make([]admitcard.Employee, 0, len(act.EmployeeIDs))
	for _, id := range act.EmployeeIDs {
		if e, ok := db.employee(id); ok {
			emps = append(emps, e)
		}
	}
	return emps
}

func (db *DB) studentRefs(act *Activity) []admitcard.StudentRef {
	refs := make([]admitcard.StudentRef, 0, len(act.StudentIDs))
	for _, id := range act.StudentIDs {
		ref := admitcard.StudentRef{ID: id}
		if s, ok := db.students[id]; ok {
			ref.Name = toCandidate(s).Name
			ref.RegistrationNo = s.RegistrationNo
		}
		refs = append(refs, ref)
	}
	return refs
}

func (f StudentFilter) matches(p Progress) bool {
	return matchProgress(f.NoDues, p.NoDues) &&
		matchProgress(f.LibraryNOC, p.LibraryNOC) &&
		(f.IssueStatus == "" || (f.IssueStatus == CardIssued) == p.Issued) &&
		(f.Available == nil || *f.Available == p.Available)
}

func matchProgress(filter string, done bool) bool {
	switch filter {
	case ProgressCompleted:
		return done
	case ProgressPending:
		return !done
	default:
		return true
	}
}

func (p Progress) cleared(preCheckID int) bool {
	switch preCheckID {
	case admitcard.PreCheckNoDues:
		return p.NoDues
	case admitcard.PreCheckNOC:
		return p.NOC
	case admitcard.PreCheckLibraryNOC:
		return p.LibraryNOC
	default:
		return false
	}
}

func (g group) hasLag(lagID int) bool {
	for _, l := range g.Lags {
		if l.ID == lagID {
			return true
		}
	}
	return false
}

func (act *Activity) clone() Activity {
	c := *act
	c.EmployeeIDs = append([]int{}, act.EmployeeIDs...)
	c.StudentIDs = append([]int{}, act.StudentIDs...)
	c.AuthMethodIDs = append([]int{}, act.AuthMethodIDs...)
	c.PreCheckIDs = append([]int{}, act.PreCheckIDs...)
	c.Progress = make(map[int]*Progress, len(act.Progress))
	for id, p := range act.Progress {
		cp := *p
		c.Progress[id] = &cp
	}
	return c
}

func methods(ids []int, names map[int]string) []admitcard.Method {
	out := make([]admitcard.Method, 0, len(ids))
	for _, id := range ids {
		out = append(out, admitcard.Method{ID: id, Name: names[id]})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
