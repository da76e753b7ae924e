package campusapi

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/auth"
	"github.com/siddharth-debugs/college-erp-bite/core/listing"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
	"github.com/siddharth-debugs/college-erp-bite/services/httpclient"
	notifysvc "github.com/siddharth-debugs/college-erp-bite/services/notify"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
	sessionstore "github.com/siddharth-debugs/college-erp-bite/storage/session"
	"github.com/siddharth-debugs/college-erp-bite/tests"
)

type fixture struct {
	db       *inmemdb.DB
	session  core.SessionStore
	notifier *notifysvc.Recorder
	api      *API
	auth     *auth.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ts, db := testutil.StartSandbox(t)
	f := &fixture{
		db:       db,
		session:  sessionstore.NewMemoryStore(),
		notifier: notifysvc.NewRecorder(),
	}
	client, err := httpclient.New(httpclient.Options{
		BaseURL:  ts.URL,
		Prefix:   testutil.Prefix,
		Session:  f.session,
		Notifier: f.notifier,
	})
	require.NoError(t, err)
	f.api = New(client)

	validate, translator := testutil.NewValidator()
	f.auth = auth.NewService(f.api, f.session, f.notifier, validate, translator)
	return f
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.auth.SendOTP(ctx, inmemdb.DemoAdminMobile))
	_, err := f.auth.VerifyOTP(ctx, inmemdb.DemoAdminMobile, testutil.OTP)
	require.NoError(t, err)
	f.notifier.Reset()
}

func TestAuth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.api.ListCourses(ctx)
	assert.True(t, core.IsKind(err, core.KindUnauthorized), "got %v", err)

	f.notifier.Reset()
	err = f.auth.SendOTP(ctx, "9000000000")
	assert.True(t, errors.Is(err, auth.ErrOTPNotSent))
	assert.Equal(t, []string{"Mobile number is not registered"}, f.notifier.Messages(notifysvc.LevelError))

	require.NoError(t, f.auth.SendOTP(ctx, inmemdb.DemoAdminMobile))
	assert.Equal(t, []string{auth.MsgOTPSent}, f.notifier.Messages(notifysvc.LevelSuccess))

	_, err = f.auth.VerifyOTP(ctx, inmemdb.DemoAdminMobile, "000000")
	assert.True(t, errors.Is(err, auth.ErrLoginRefused))
	assert.False(t, f.auth.IsAuthenticated())

	require.NoError(t, f.auth.SendOTP(ctx, inmemdb.DemoAdminMobile))
	profile, err := f.auth.VerifyOTP(ctx, " "+inmemdb.DemoAdminMobile+" ", testutil.OTP)
	require.NoError(t, err)
	assert.Equal(t, auth.Profile{Name: "Campus Admin", Email: "admin@campus.example"}, profile)
	assert.True(t, f.auth.IsAuthenticated())

	courses, err := f.api.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	require.NoError(t, f.auth.Logout())
	_, err = f.auth.Current()
	assert.True(t, errors.Is(err, auth.ErrNotLoggedIn))
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	courses, err := f.api.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, admitcard.Course{ID: 1, Name: "B.Ed", Alias: "BED"}, courses[0])

	groups, err := f.api.ListAcademicGroups(ctx, 3)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Semester 2", groups[0].Name)
	assert.Len(t, admitcard.FlattenRoster(groups[0]), 3)

	_, err = f.api.ListAcademicGroups(ctx, 99)
	var apiErr *core.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, []string{"Not found."}, f.notifier.Messages(notifysvc.LevelError))

	employees, err := f.api.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, employees, 3)
}

func TestActivityList(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	list := admitcard.NewActivityList(f.api, listing.Options{})
	defer list.Close()
	list.Start()
	list.Wait()

	st := list.State()
	assert.Equal(t, listing.StatusSuccess, st.Status)
	assert.Equal(t, 2, st.Result.TotalCount)
	assert.Equal(t, 2, st.Result.Items[0].ID)

	list.SetSearch("  semester 3 ")
	list.Flush()
	list.Wait()
	st = list.State()
	assert.Equal(t, "semester 3", st.Query.Search)
	require.Len(t, st.Result.Items, 1)
	assert.Equal(t, 1, st.Result.Items[0].ID)
	assert.Equal(t, 2, st.Result.Items[0].CompletedStudents)

	list.SetSearch("nothing like it")
	list.Flush()
	list.Wait()
	assert.Equal(t, listing.StatusEmpty, list.State().Status)
}

func TestDetailView(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	view := admitcard.NewDetailView(f.api, 2, listing.Options{})
	defer view.Close()
	view.List.Start()
	view.List.Wait()

	detail, ok := view.Activity()
	require.True(t, ok)
	assert.Equal(t, "B.Ed - Semester 1 - All", detail.Name)
	assert.Equal(t, 1, detail.TotalAdmitCards)
	assert.Equal(t, 4, view.List.State().Result.TotalCount)

	ids := func() []int {
		view.List.Wait()
		out := []int{}
		for _, c := range view.List.State().Result.Items {
			out = append(out, c.StudentID)
		}
		return out
	}

	view.List.SetFilters(map[string]string{admitcard.FilterNoDues: "completed"})
	assert.Equal(t, []int{1001, 1002}, ids())

	view.List.SetFilters(map[string]string{admitcard.FilterLibraryNOC: "completed"})
	assert.Equal(t, []int{1001}, ids())

	view.List.SetFilters(map[string]string{
		admitcard.FilterNoDues:           listing.FilterAll,
		admitcard.FilterLibraryNOC:       listing.FilterAll,
		admitcard.FilterCardAvailability: "no",
	})
	assert.Equal(t, []int{1002, 1003, 1004}, ids())

	stats, err := view.LoadStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalStudents)
	progress := admitcard.PreCheckProgress(stats, admitcard.PreCheckNameNoDues)
	assert.Equal(t, admitcard.CheckProgress{Completed: 2, Total: 4, Pending: 2, Percent: 50}, progress)

	unknown := admitcard.NewDetailView(f.api, 99, listing.Options{})
	defer unknown.Close()
	unknown.List.Start()
	unknown.List.Wait()
	assert.Equal(t, listing.StatusFailed, unknown.List.State().Status)
	_, ok = unknown.Activity()
	assert.False(t, ok)
}

func TestForm_create(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	var saved int
	form := admitcard.NewForm(f.api, admitcard.FormOptions{
		Notifier: f.notifier,
		Now:      func() time.Time { return testutil.Today },
		OnSaved:  func() { saved++ },
	})
	fill := func() {
		require.NoError(t, form.Open(ctx))
		require.NoError(t, form.SelectCourse(ctx, 3))
		form.SelectSemester(31)
		form.SetStartDate("2026-03-02")
		form.SetEndDate("2026-03-12")
		form.SetExamDate("2026-03-20")
		form.SetAssignees([]int{9})
	}

	fill()
	st := form.Snapshot()
	assert.Equal(t, "BCA - Semester 2 - All", st.Data.ActivityName)
	assert.Equal(t, []int{3001, 3002, 3003}, st.Selected)

	require.NoError(t, form.Save(ctx))
	assert.Equal(t, 1, saved)
	assert.True(t, form.Snapshot().Closed)
	assert.Equal(t, []string{admitcard.MsgCreated}, f.notifier.Messages(notifysvc.LevelSuccess))

	act, err := f.db.GetActivity(3)
	require.NoError(t, err)
	assert.Equal(t, "BCA - Semester 2 - All", act.Name)
	assert.Equal(t, "Campus Admin", act.CreatedBy)
	assert.Equal(t, admitcard.DefaultSecurity.PreCheckMethods, act.PreCheckIDs)

	// the same process again is refused with a 200
	f.notifier.Reset()
	fill()
	err = form.Save(ctx)
	assert.True(t, errors.Is(err, admitcard.ErrNotSaved), "got %v", err)
	assert.Equal(t, 1, saved)
	assert.False(t, form.Snapshot().Closed)
	assert.Equal(t, []string{"An activity with this name already exists for the selection."}, f.notifier.Messages(notifysvc.LevelError))
}

func TestForm_edit(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	form := admitcard.NewForm(f.api, admitcard.FormOptions{
		Notifier: f.notifier,
		Now:      func() time.Time { return testutil.Today },
	})
	require.NoError(t, form.OpenForEdit(ctx, 2))

	st := form.Snapshot()
	assert.Equal(t, admitcard.ModeEdit, st.Mode)
	assert.Equal(t, 1, st.Data.CourseID)
	assert.Equal(t, 11, st.Data.Semester)
	assert.Equal(t, []int{7, 8}, st.Data.AssignedTo)
	assert.Equal(t, []int{1001, 1002, 1003, 1004}, st.Selected)

	require.NoError(t, form.ToggleStudent(1004))
	err := form.Save(ctx)
	assert.Equal(t, admitcard.MsgEnterSelectionName, core.ErrorMessage(err))

	form.SetSelectionName("Regular")
	require.NoError(t, form.Save(ctx))
	assert.Equal(t, []string{"Activity updated successfully"}, f.notifier.Messages(notifysvc.LevelSuccess))

	act, err := f.db.GetActivity(2)
	require.NoError(t, err)
	assert.Equal(t, "B.Ed - Semester 1", act.Name)
	assert.Equal(t, "Regular", act.SelectionName)
	assert.Equal(t, []int{1001, 1002, 1003}, act.StudentIDs)
}

func TestStudents(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	list := student.NewList(f.api, listing.Options{PageSize: 20})
	defer list.Close()
	list.Start()
	list.Wait()

	st := list.State()
	require.Equal(t, 11, st.Result.TotalCount)
	visible := student.Visible(st.Result.Items, map[string]string{
		student.FilterCourse:    "bed",
		student.FilterDocuments: student.DocumentsIncomplete,
	})
	ids := []int{}
	for _, s := range visible {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{1003, 1005}, ids)

	s, err := f.api.GetStudent(ctx, 1005)
	require.NoError(t, err)
	assert.Equal(t, "TEMP-1005", s.EnrollmentNo)
	assert.Equal(t, "Farah Khan", s.FullName())
	assert.Equal(t, "BED", s.Course)
	assert.Equal(t, "3", s.Semester)
	assert.Equal(t, "A", s.Section)
	assert.Equal(t, "Pune", s.Correspondence.City)
}
