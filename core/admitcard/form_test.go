package admitcard

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharth-debugs/college-erp-bite/core"
	notifysvc "github.com/siddharth-debugs/college-erp-bite/services/notify"
)

var (
	errNoStats = errors.New("no stats")
	today      = time.Date(2026, time.January, 10, 15, 30, 0, 0, time.UTC)
)

func newTestForm(repo *fakeRepo) (*Form, *notifysvc.Recorder, *int) {
	rec := notifysvc.NewRecorder()
	saved := new(int)
	f := NewForm(repo, FormOptions{
		Notifier: rec,
		Now:      func() time.Time { return today },
		OnSaved:  func() { *saved++ },
	})
	return f, rec, saved
}

// fillDates sets valid dates and an assignee.
func fillDates(f *Form) {
	f.SetStartDate("2026-01-10")
	f.SetEndDate("2026-01-20")
	f.SetExamDate("2026-01-25")
	f.SetAssignees([]int{7, 7})
}

func TestForm_Create(t *testing.T) {
	repo := newFakeRepo()
	repo.createRes = SaveResult{ID: 9}
	f, rec, saved := newTestForm(repo)
	ctx := context.Background()

	require.NoError(t, f.Open(ctx))
	st := f.Snapshot()
	assert.False(t, st.Closed)
	assert.Len(t, st.Courses, 2)
	assert.Len(t, st.Employees, 2)

	require.NoError(t, f.SelectCourse(ctx, 1))
	st = f.Snapshot()
	assert.Equal(t, []Option{{11, "Semester 1"}, {12, "Semester 2"}}, st.Semesters)
	assert.Empty(t, st.Data.ActivityName)

	f.SelectSemester(11)
	st = f.Snapshot()
	assert.Equal(t, []int{101, 102, 103}, st.Selected)
	assert.True(t, st.AllSelected)
	assert.Equal(t, "B.Ed - Semester 1 - All", st.Data.ActivityName)
	assert.False(t, st.SelectionNameRequired)

	require.NoError(t, f.ToggleStudent(103))
	st = f.Snapshot()
	assert.Equal(t, []int{101, 102}, st.Selected)
	assert.Equal(t, "B.Ed - Semester 1", st.Data.ActivityName)
	assert.True(t, st.SelectionNameRequired)

	fillDates(f)
	err := f.Save(ctx)
	require.Error(t, err)
	assert.Equal(t, MsgEnterSelectionName, core.ErrorMessage(err))
	assert.Equal(t, []string{MsgEnterSelectionName}, rec.Messages(notifysvc.LevelError))
	assert.Empty(t, repo.payloads)

	f.SetSelectionName("Re-appear batch")
	require.NoError(t, f.Save(ctx))

	p := repo.lastPayload()
	assert.Equal(t, 0, p.ActivityID)
	assert.Equal(t, "B.Ed - Semester 1", p.ActivityName)
	assert.Equal(t, "Re-appear batch", p.SelectionName)
	assert.Equal(t, "101,102", p.StudentIDs)
	assert.Equal(t, "7", p.EmployeeIDs)
	assert.Equal(t, "1", p.AuthenticationMethodIDs)
	assert.Equal(t, "1,3", p.PreCheckMethodIDs)
	require.NotNil(t, p.LagIDs)
	assert.Equal(t, "11", *p.LagIDs)
	require.NotNil(t, p.ExamStartDate)
	assert.Equal(t, "2026-01-25", *p.ExamStartDate)

	assert.Equal(t, []string{MsgCreated}, rec.Messages(notifysvc.LevelSuccess))
	assert.Equal(t, 1, *saved)
	st = f.Snapshot()
	assert.True(t, st.Closed)
	assert.Empty(t, st.Courses)
	assert.Empty(t, st.Selected)
}

func TestForm_OpenForEdit(t *testing.T) {
	repo := newFakeRepo()
	exam := "2026-02-01"
	edit := EditActivity{
		AcademicGroup: 11,
		Name:          "B.Ed - Semester 1",
		StartDate:     "2026-01-12",
		EndDate:       "2026-01-30",
		ExamStartDate: &exam,
		Employees:     []Employee{{ID: 8}},
		Students:      []StudentRef{{ID: 102}},
	}
	edit.Specialization.ID = 1
	edit.Specialization.Course = "B.Ed"
	repo.edits[42] = edit
	repo.updateRes = SaveResult{Message: "Activity updated successfully"}
	f, rec, saved := newTestForm(repo)
	ctx := context.Background()

	require.NoError(t, f.OpenForEdit(ctx, 42))
	st := f.Snapshot()
	assert.Equal(t, ModeEdit, st.Mode)
	assert.Equal(t, 42, st.ActivityID)
	assert.Equal(t, 1, st.Data.CourseID)
	assert.Equal(t, 11, st.Data.Semester)
	assert.Equal(t, []int{8}, st.Data.AssignedTo)
	assert.Equal(t, exam, st.Data.ExamDate)
	assert.Len(t, st.Roster, 3)
	assert.Equal(t, []int{102}, st.Selected)
	assert.Equal(t, "B.Ed - Semester 1", st.Data.ActivityName)
	assert.True(t, st.SelectionNameRequired)

	// switching semester keeps the persisted selection
	f.SelectSemester(12)
	assert.Empty(t, f.Snapshot().Roster)
	f.SelectSemester(11)
	f.SetSelectionName("Back papers")

	require.NoError(t, f.Save(ctx))
	p := repo.lastPayload()
	assert.Equal(t, 42, p.ActivityID)
	assert.Equal(t, "8", p.EmployeeIDs)
	assert.Equal(t, []string{"Activity updated successfully"}, rec.Messages(notifysvc.LevelSuccess))
	assert.Equal(t, 1, *saved)
	assert.True(t, f.Snapshot().Closed)
}

func TestForm_EditMovesToAnotherSemester(t *testing.T) {
	repo := newFakeRepo()
	repo.groups[1] = append(repo.groups[1], AcademicGroup{ID: 13, Name: "Semester 3", Lags: []Lag{
		{ID: 131, Name: "Section A", Students: []Candidate{{ID: 104, Name: "Kabir Singh", RegistrationNo: "BED-004"}}},
	}})
	edit := EditActivity{
		AcademicGroup: 11,
		Name:          "B.Ed - Semester 1",
		StartDate:     "2026-01-12",
		EndDate:       "2026-01-30",
		Employees:     []Employee{{ID: 8}},
		Students:      []StudentRef{{ID: 102}},
	}
	edit.Specialization.ID = 1
	edit.Specialization.Course = "B.Ed"
	repo.edits[42] = edit
	repo.updateRes = SaveResult{Message: "Activity updated successfully"}
	f, _, _ := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.OpenForEdit(ctx, 42))

	tests := []struct {
		name         string
		semester     int
		wantSelected []int
		wantName     string
		wantRequired bool
		wantAll      bool
	}{
		{name: "other roster", semester: 13, wantSelected: []int{}, wantName: "B.Ed - Semester 3"},
		{name: "empty roster", semester: 12, wantSelected: []int{}, wantName: "B.Ed - Semester 2"},
		{name: "no semester", semester: 0, wantSelected: []int{}},
		{name: "back to the persisted semester", semester: 11, wantSelected: []int{102}, wantName: "B.Ed - Semester 1", wantRequired: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.SelectSemester(tt.semester)
			st := f.Snapshot()
			assert.Equal(t, tt.wantSelected, st.Selected)
			assert.Equal(t, tt.wantName, st.Data.ActivityName)
			assert.Equal(t, tt.wantRequired, st.SelectionNameRequired)
			assert.Equal(t, tt.wantAll, st.AllSelected)
		})
	}

	// students of another semester are never sent
	f.SelectSemester(13)
	f.SetExamDate("2026-02-01")
	require.NoError(t, f.ToggleStudent(104))
	st := f.Snapshot()
	assert.Equal(t, []int{104}, st.Selected)
	assert.Equal(t, "B.Ed - Semester 3 - All", st.Data.ActivityName)
	assert.True(t, st.AllSelected)
	assert.False(t, st.SelectionNameRequired)

	require.NoError(t, f.Save(ctx))
	assert.Equal(t, "104", repo.lastPayload().StudentIDs)
}

func TestForm_ClosedIgnoresChanges(t *testing.T) {
	repo := newFakeRepo()
	f, _, _ := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)
	f.Close()

	f.SetStudentSearch("ravi")
	f.SetSelectionName("Back papers")
	f.SelectSemester(11)
	st := f.Snapshot()
	assert.Empty(t, st.StudentSearch)
	assert.Empty(t, st.Data.SelectionName)
	assert.Empty(t, st.Roster)
	assert.True(t, errors.Is(f.ToggleStudent(101), ErrClosed))
}

func TestForm_SelectCourseClearsDependents(t *testing.T) {
	repo := newFakeRepo()
	f, _, _ := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)
	require.NotEmpty(t, f.Snapshot().Selected)

	gate := repo.gate(2)
	done := make(chan error, 1)
	go func() { done <- f.SelectCourse(ctx, 2) }()
	<-repo.groupLoads // the first load
	<-repo.groupLoads

	st := f.Snapshot()
	assert.Equal(t, 2, st.Data.CourseID)
	assert.Equal(t, "M.Ed", st.Data.CourseName)
	assert.Zero(t, st.Data.Semester)
	assert.Empty(t, st.Semesters)
	assert.Empty(t, st.Roster)
	assert.Empty(t, st.Selected)
	assert.Empty(t, st.Data.ActivityName)
	assert.True(t, st.LoadingGroups)

	close(gate)
	require.NoError(t, <-done)
	st = f.Snapshot()
	assert.False(t, st.LoadingGroups)
	assert.Equal(t, []Option{{21, "Semester 1"}}, st.Semesters)
}

func TestForm_SupersededCourseLoad(t *testing.T) {
	repo := newFakeRepo()
	f, _, _ := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))

	gate := repo.gate(1)
	done := make(chan error, 1)
	go func() { done <- f.SelectCourse(ctx, 1) }()
	assert.Equal(t, 1, <-repo.groupLoads)

	require.NoError(t, f.SelectCourse(ctx, 2))
	<-repo.groupLoads
	close(gate)
	require.NoError(t, <-done)

	st := f.Snapshot()
	assert.Equal(t, 2, st.Data.CourseID)
	assert.Equal(t, []Option{{21, "Semester 1"}}, st.Semesters)
}

func TestForm_SelectCourseErrors(t *testing.T) {
	repo := newFakeRepo()
	f, _, _ := newTestForm(repo)
	ctx := context.Background()

	assert.True(t, errors.Is(f.SelectCourse(ctx, 1), ErrClosed))
	assert.True(t, errors.Is(f.ToggleStudent(101), ErrClosed))

	require.NoError(t, f.Open(ctx))
	assert.True(t, errors.Is(f.SelectCourse(ctx, 99), ErrUnknownCourse))
	assert.True(t, errors.Is(f.ToggleStudent(101), ErrUnknownStudent))

	require.NoError(t, f.SelectCourse(ctx, 1))
	require.NoError(t, f.SelectCourse(ctx, 0))
	assert.Zero(t, f.Snapshot().Data.CourseID)
	assert.Empty(t, f.Snapshot().Semesters)
}

func TestForm_SetAllSelected(t *testing.T) {
	repo := newFakeRepo()
	f, _, _ := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)

	f.SetAllSelected(false)
	st := f.Snapshot()
	assert.Empty(t, st.Selected)
	assert.Equal(t, "B.Ed - Semester 1", st.Data.ActivityName)
	assert.False(t, st.SelectionNameRequired)

	f.SetStudentSearch("bed-00")
	f.SetAllSelected(true)
	assert.Equal(t, []int{101, 102, 103}, f.Snapshot().Selected)

	f.SetAllSelected(false)
	f.SetStudentSearch("  RAVI ")
	f.SetAllSelected(true)
	st = f.Snapshot()
	assert.Equal(t, []int{102}, st.Selected)
	assert.True(t, st.AllSelected)
	assert.Len(t, st.FilteredRoster, 1)
	assert.Len(t, st.Roster, 3)
}

func TestForm_SaveChecksPayload(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	tests := []struct {
		name     string
		security *Security
		wantErr  string
	}{
		{name: "default security"},
		{name: "no authentication method", security: &Security{PreCheckMethods: []int{PreCheckNoDues}},
			wantErr: "authentication_method_ids: this field is required"},
		{name: "no pre-check method", security: &Security{AuthenticationMethods: []int{AuthOTP}},
			wantErr: "pre_check_method_ids: this field is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.createRes = SaveResult{ID: 9}
			rec := notifysvc.NewRecorder()
			f := NewForm(repo, FormOptions{
				Notifier:   rec,
				Now:        func() time.Time { return today },
				Security:   tc.security,
				Validate:   validate,
				Translator: translator,
			})
			ctx := context.Background()
			require.NoError(t, f.Open(ctx))
			require.NoError(t, f.SelectCourse(ctx, 1))
			f.SelectSemester(11)
			fillDates(f)

			err := f.Save(ctx)
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, repo.payloads, 1)
				return
			}
			var vErr *core.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.wantErr, err.Error())
			assert.Equal(t, []string{tc.wantErr}, rec.Messages(notifysvc.LevelError))
			assert.Empty(t, repo.payloads)
			assert.False(t, f.Snapshot().Closed)
			assert.False(t, f.Snapshot().Saving)
		})
	}
}

func TestForm_SaveNotSaved(t *testing.T) {
	repo := newFakeRepo()
	repo.createRes = SaveResult{Body: []byte(`{"activity_name": ["activity already exists"]}`)}
	f, rec, saved := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)
	fillDates(f)

	err := f.Save(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotSaved))
	assert.Equal(t, []string{"activity already exists"}, rec.Messages(notifysvc.LevelError))
	assert.Zero(t, *saved)
	assert.False(t, f.Snapshot().Closed)
	assert.False(t, f.Snapshot().Saving)
}

func TestForm_SaveTransportError(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = &core.APIError{Kind: core.KindServerFault, Status: 500, Message: core.MsgServerFault}
	f, rec, saved := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)
	fillDates(f)

	err := f.Save(ctx)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.KindServerFault))
	assert.Empty(t, rec.Sent())
	assert.Zero(t, *saved)
	assert.False(t, f.Snapshot().Closed)
}

func TestForm_SaveInProgress(t *testing.T) {
	repo := newFakeRepo()
	repo.createRes = SaveResult{ID: 3}
	repo.saveGate = make(chan struct{})
	f, _, saved := newTestForm(repo)
	ctx := context.Background()
	require.NoError(t, f.Open(ctx))
	require.NoError(t, f.SelectCourse(ctx, 1))
	f.SelectSemester(11)
	fillDates(f)

	done := make(chan error, 1)
	go func() { done <- f.Save(ctx) }()
	<-repo.saveCalled

	assert.True(t, f.Snapshot().Saving)
	assert.True(t, errors.Is(f.Save(ctx), ErrSaveInProgress))

	close(repo.saveGate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, *saved)
	assert.Len(t, repo.payloads, 1)
}
