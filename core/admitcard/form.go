package admitcard

import (
	"context"
	"sync"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

// MsgCreated is notified when a new process was saved.
const MsgCreated = "Activity Created Successfully!"

var (
	ErrClosed         = errors.New("form is closed")
	ErrSaveInProgress = errors.New("save already in progress")
	ErrNotSaved       = errors.New("activity not saved")
	ErrUnknownCourse  = errors.New("unknown course")
	ErrUnknownStudent = errors.New("student not in roster")
)

// Mode of a Form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

type (
	FormOptions struct {
		Notifier core.Notifier
		Logger   core.Logger
		// OnSaved is called once a save succeeded, typically to refresh the process list.
		OnSaved  func()
		Now      func() time.Time
		Security *Security // defaults to DefaultSecurity
		// Validate checks the payload tags before it is sent. Optional.
		Validate   *validator.Validate
		Translator ut.Translator
	}

	// Option is an entry of a selection list.
	Option struct {
		Value int
		Label string
	}

	// FormState is a snapshot of a Form.
	FormState struct {
		Mode                  Mode
		ActivityID            int
		Data                  FormData
		Courses               []Course
		Employees             []Employee
		Semesters             []Option
		Roster                []Candidate
		FilteredRoster        []Candidate
		StudentSearch         string
		Selected              []int
		AllSelected           bool // every student of the filtered roster is selected
		SelectionNameRequired bool
		LoadingGroups         bool
		Saving                bool
		Closed                bool
	}

	// Form drives the creation or edition of an admit card process:
	// course, then semester, then the students of the semester.
	Form struct {
		repo     Repository
		opts     FormOptions
		security Security

		mu            sync.Mutex
		mode          Mode
		activityID    int
		data          FormData
		courses       []Course
		employees     []Employee
		groups        []AcademicGroup
		roster        []Candidate
		selected      []int
		studentSearch string
		courseSeq     uint64
		loadingGroups bool
		saving        bool
		closed        bool
	}
)

func NewForm(repo Repository, opts FormOptions) *Form {
	if opts.Notifier == nil {
		opts.Notifier = core.NopNotifier{}
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	security := DefaultSecurity
	if opts.Security != nil {
		security = *opts.Security
	}
	return &Form{repo: repo, opts: opts, security: security, closed: true}
}

// Open starts a new draft and loads the courses and employees to pick from.
func (f *Form) Open(ctx context.Context) error {
	f.mu.Lock()
	f.reset(ModeCreate, 0)
	f.mu.Unlock()

	var g errgroup.Group
	f.loadReferences(ctx, &g)
	return g.Wait()
}

// OpenForEdit loads the process activityID into the form.
// Its course's semesters are loaded next and the persisted students selected.
func (f *Form) OpenForEdit(ctx context.Context, activityID int) error {
	f.mu.Lock()
	f.reset(ModeEdit, activityID)
	f.mu.Unlock()

	var g errgroup.Group
	f.loadReferences(ctx, &g)
	g.Go(func() error { return f.hydrate(ctx, activityID) })
	return g.Wait()
}

// Close discards the draft and every cached reference.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset(f.mode, f.activityID)
	f.closed = true
}

// SelectCourse picks a course: the semester, the semesters and the roster
// are cleared at once, then the semesters of the course are loaded.
// A load superseded by a later selection is dropped. courseID 0 clears the course.
func (f *Form) SelectCourse(ctx context.Context, courseID int) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	var courseName string
	if courseID != 0 {
		course, ok := f.course(courseID)
		if !ok {
			f.mu.Unlock()
			return errors.Wrapf(ErrUnknownCourse, "course %d", courseID)
		}
		courseName = course.Name
	}

	f.data.CourseID = courseID
	f.data.CourseName = courseName
	f.data.Semester = 0
	f.groups = nil
	f.roster = nil
	f.selected = nil
	f.studentSearch = ""
	f.courseSeq++
	seq := f.courseSeq
	f.loadingGroups = courseID != 0
	f.deriveName()
	f.mu.Unlock()

	if courseID == 0 {
		return nil
	}

	groups, err := f.repo.ListAcademicGroups(ctx, courseID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.courseSeq || f.closed {
		return nil
	}
	f.loadingGroups = false
	if err != nil {
		return errors.Wrapf(err, "loading semesters of course %d", courseID)
	}
	f.groups = groups
	return nil
}

// SelectSemester picks the semester (academic group) id; 0 clears it.
func (f *Form) SelectSemester(groupID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.data.Semester = groupID
	f.studentSearch = ""
	f.deriveRoster()
	f.deriveName()
}

// ToggleStudent adds or removes a student of the roster from the selection.
func (f *Form) ToggleStudent(studentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if !f.inRoster(studentID) {
		return errors.Wrapf(ErrUnknownStudent, "student %d", studentID)
	}
	if i := indexOf(f.selected, studentID); i >= 0 {
		f.selected = append(f.selected[:i:i], f.selected[i+1:]...)
	} else {
		f.selected = append(f.selected, studentID)
	}
	f.deriveName()
	return nil
}

// SetAllSelected selects exactly the students matching the student search,
// or clears the selection.
func (f *Form) SetAllSelected(all bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	kept := make([]int, 0, len(f.selected))
	for _, id := range f.selected {
		if !f.inRoster(id) {
			kept = append(kept, id)
		}
	}
	if all {
		kept = append(kept, candidateIDs(FilterRoster(f.roster, f.studentSearch))...)
	}
	f.selected = kept
	f.deriveName()
}

// SetStudentSearch filters the roster shown for selection.
func (f *Form) SetStudentSearch(search string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.studentSearch = search
}

func (f *Form) SetStartDate(date string) { f.setField(func(d *FormData) { d.StartDate = date }) }
func (f *Form) SetEndDate(date string)   { f.setField(func(d *FormData) { d.EndDate = date }) }
func (f *Form) SetExamDate(date string)  { f.setField(func(d *FormData) { d.ExamDate = date }) }

func (f *Form) SetSelectionName(name string) {
	f.setField(func(d *FormData) { d.SelectionName = name })
}

// SetAssignees sets the employees handling the process.
func (f *Form) SetAssignees(employeeIDs []int) {
	ids := make([]int, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		if indexOf(ids, id) < 0 {
			ids = append(ids, id)
		}
	}
	f.setField(func(d *FormData) { d.AssignedTo = ids })
}

// Snapshot returns the current state of the form.
func (f *Form) Snapshot() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	selected := f.rosterSelection()
	filtered := FilterRoster(f.roster, f.studentSearch)
	allSelected := len(filtered) > 0
	for _, c := range filtered {
		if indexOf(selected, c.ID) < 0 {
			allSelected = false
			break
		}
	}
	semesters := make([]Option, 0, len(f.groups))
	for _, g := range f.groups {
		semesters = append(semesters, Option{Value: g.ID, Label: g.Name})
	}

	data := f.data
	data.AssignedTo = append([]int(nil), f.data.AssignedTo...)
	return FormState{
		Mode:                  f.mode,
		ActivityID:            f.activityID,
		Data:                  data,
		Courses:               append([]Course(nil), f.courses...),
		Employees:             append([]Employee(nil), f.employees...),
		Semesters:             semesters,
		Roster:                append([]Candidate(nil), f.roster...),
		FilteredRoster:        filtered,
		StudentSearch:         f.studentSearch,
		Selected:              selected,
		AllSelected:           allSelected,
		SelectionNameRequired: SelectionNameRequired(len(selected), len(f.roster)),
		LoadingGroups:         f.loadingGroups,
		Saving:                f.saving,
		Closed:                f.closed,
	}
}

// Validate checks the draft as Save would.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Validate(f.data, len(f.rosterSelection()), len(f.roster), f.opts.Now())
}

// Save validates the draft then creates or updates the process.
// On success the user is notified, OnSaved is called and the form closes.
func (f *Form) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if f.saving {
		f.mu.Unlock()
		return ErrSaveInProgress
	}
	selected := f.rosterSelection()
	if err := Validate(f.data, len(selected), len(f.roster), f.opts.Now()); err != nil {
		f.mu.Unlock()
		f.opts.Notifier.Error(core.ErrorMessage(err))
		return err
	}
	mode := f.mode
	var activityID int
	if mode == ModeEdit {
		activityID = f.activityID
	}
	payload := BuildPayload(f.data, selected, f.security, activityID)
	if f.opts.Validate != nil {
		if err := f.opts.Validate.Struct(payload); err != nil {
			f.mu.Unlock()
			err = core.TranslateValidation(err, f.opts.Translator, nil)
			f.opts.Notifier.Error(core.ErrorMessage(err))
			f.opts.Logger.Warn("invalid payload", map[string]interface{}{"mode": mode.String(), "error": err.Error()})
			return err
		}
	}
	f.saving = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.saving = false
		f.mu.Unlock()
	}()

	var res SaveResult
	var err error
	var saved bool
	if mode == ModeEdit {
		res, err = f.repo.UpdateActivity(ctx, payload)
		saved = err == nil && core.ContainsFold(res.Message, "success")
	} else {
		res, err = f.repo.CreateActivity(ctx, payload)
		saved = err == nil && res.ID > 0
	}
	if err != nil {
		// the transport already told the user
		return errors.Wrapf(err, "saving activity (%s)", mode)
	}
	if !saved {
		msg := core.ErrorMessage(core.DecodePayload(res.Body))
		f.opts.Notifier.Error(msg)
		f.opts.Logger.Warn("activity not saved", map[string]interface{}{"mode": mode.String(), "response": string(res.Body)})
		return errors.Wrap(ErrNotSaved, msg)
	}

	if mode == ModeEdit {
		f.opts.Notifier.Success(res.Message)
	} else {
		f.opts.Notifier.Success(MsgCreated)
	}
	f.Close()
	if f.opts.OnSaved != nil {
		f.opts.OnSaved()
	}
	return nil
}

func (f *Form) loadReferences(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		courses, err := f.repo.ListCourses(ctx)
		if err != nil {
			return errors.Wrap(err, "loading courses")
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.courses = courses
		return nil
	})
	g.Go(func() error {
		employees, err := f.repo.ListEmployees(ctx)
		if err != nil {
			return errors.Wrap(err, "loading employees")
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.employees = employees
		return nil
	})
}

// hydrate fills the form with a persisted process. The semesters are loaded
// for the process' course and the selection is seeded after the roster.
func (f *Form) hydrate(ctx context.Context, activityID int) error {
	act, err := f.repo.GetActivityForEdit(ctx, activityID)
	if err != nil {
		return errors.Wrapf(err, "loading activity %d", activityID)
	}

	f.mu.Lock()
	if f.closed || f.activityID != activityID {
		f.mu.Unlock()
		return nil
	}
	f.data = FormData{
		CourseID:   act.Specialization.ID,
		CourseName: act.Specialization.Course,
		Semester:   act.AcademicGroup,
		StartDate:  act.StartDate,
		EndDate:    act.EndDate,
		AssignedTo: make([]int, 0, len(act.Employees)),
	}
	if act.ExamStartDate != nil {
		f.data.ExamDate = *act.ExamStartDate
	}
	if act.SelectionName != nil {
		f.data.SelectionName = *act.SelectionName
	}
	for _, emp := range act.Employees {
		f.data.AssignedTo = append(f.data.AssignedTo, emp.ID)
	}
	f.courseSeq++
	seq := f.courseSeq
	f.loadingGroups = true
	f.deriveName()
	f.mu.Unlock()

	groups, err := f.repo.ListAcademicGroups(ctx, act.Specialization.ID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if seq != f.courseSeq || f.closed {
		return nil
	}
	f.loadingGroups = false
	if err != nil {
		return errors.Wrapf(err, "loading semesters of course %d", act.Specialization.ID)
	}
	f.groups = groups
	f.deriveRoster()
	f.selected = make([]int, 0, len(act.Students))
	for _, s := range act.Students {
		if indexOf(f.selected, s.ID) < 0 {
			f.selected = append(f.selected, s.ID)
		}
	}
	f.deriveName()
	return nil
}

// reset starts an empty draft. f.mu must be held.
func (f *Form) reset(mode Mode, activityID int) {
	f.mode = mode
	f.activityID = activityID
	f.data = FormData{}
	f.courses = nil
	f.employees = nil
	f.groups = nil
	f.roster = nil
	f.selected = nil
	f.studentSearch = ""
	f.courseSeq++
	f.loadingGroups = false
	f.closed = false
}

func (f *Form) setField(set func(*FormData)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	set(&f.data)
}

// deriveRoster rebuilds the roster of the chosen semester. A new draft
// selects the whole roster; an edited process keeps its persisted selection. f.mu must be held.
func (f *Form) deriveRoster() {
	group, ok := f.group(f.data.Semester)
	if f.data.Semester == 0 || !ok {
		f.roster = nil
		if f.mode == ModeCreate {
			f.selected = nil
		}
		return
	}
	f.roster = FlattenRoster(group)
	if f.mode == ModeCreate {
		f.selected = candidateIDs(f.roster)
	}
}

// deriveName recomputes the activity name. f.mu must be held.
func (f *Form) deriveName() {
	var semesterLabel string
	if group, ok := f.group(f.data.Semester); ok && f.data.Semester != 0 {
		semesterLabel = group.Name
	}
	f.data.ActivityName = ActivityName(f.data.CourseName, semesterLabel, len(f.rosterSelection()), len(f.roster))
}

// rosterSelection returns the selected students of the current roster.
// An edited process keeps the students of its other semesters in f.selected
// so that going back to their semester selects them again. f.mu must be held.
func (f *Form) rosterSelection() []int {
	ids := make([]int, 0, len(f.selected))
	for _, id := range f.selected {
		if f.inRoster(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (f *Form) course(id int) (Course, bool) {
	for _, c := range f.courses {
		if c.ID == id {
			return c, true
		}
	}
	return Course{}, false
}

func (f *Form) group(id int) (AcademicGroup, bool) {
	for _, g := range f.groups {
		if g.ID == id {
			return g, true
		}
	}
	return AcademicGroup{}, false
}

func (f *Form) inRoster(studentID int) bool {
	for _, c := range f.roster {
		if c.ID == studentID {
			return true
		}
	}
	return false
}

func candidateIDs(candidates []Candidate) []int {
	ids := make([]int, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}

func indexOf(ids []int, id int) int {
	for i, x := range ids {
		if x == id {
			return i
		}
	}
	return -1
}
