package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
)

// minSuggestionRatio is the similarity above which an unknown course name gets a suggestion.
const minSuggestionRatio = 0.6

// formFlags are the fields of an admit card process, all optional when editing.
type formFlags struct {
	course        string
	semester      int
	start         string
	end           string
	exam          string
	assign        string
	include       string
	exclude       string
	selectionName string
}

func (ff *formFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&ff.course, "course", "", "The course id, name or alias.")
	fs.IntVar(&ff.semester, "semester", 0, "The semester (academic group) id; the semesters of the course are listed when missing.")
	fs.StringVar(&ff.start, "start", "", "Start date, YYYY-MM-DD.")
	fs.StringVar(&ff.end, "end", "", "End date, YYYY-MM-DD.")
	fs.StringVar(&ff.exam, "exam", "", "Exam start date, YYYY-MM-DD.")
	fs.StringVar(&ff.assign, "assign", "", "Comma separated ids of the assigned employees.")
	fs.StringVar(&ff.include, "include", "", "Comma separated ids of students of the semester to select.")
	fs.StringVar(&ff.exclude, "exclude", "", "Comma separated ids of students of the semester to leave out.")
	fs.StringVar(&ff.selectionName, "selection-name", "", "Name of a partial selection of the semester.")
}

func (cli *commandLine) newForm() *admitcard.Form {
	return admitcard.NewForm(cli.activities, admitcard.FormOptions{
		Notifier:   cli.notifier,
		Logger:     cli.logger,
		Now:        cli.now,
		Validate:   cli.validate,
		Translator: cli.translator,
	})
}

func (cli *commandLine) createActivity(args []string) error {
	fs := cli.newFlagSet("admitcard-create", "-course C -semester ID -start D -end D -exam D -assign IDS [-exclude IDS] [-selection-name NAME]")
	var ff formFlags
	ff.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if ff.course == "" {
		fs.Usage()
		return errHelp
	}

	ctx := context.Background()
	form := cli.newForm()
	defer form.Close()
	if err := form.Open(ctx); err != nil {
		return err
	}
	if err := cli.fillForm(ctx, form, ff); err != nil {
		return err
	}
	name := form.Snapshot().Data.ActivityName
	if err := form.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Created %q\n", name)
	return nil
}

func (cli *commandLine) editActivity(args []string) error {
	fs := cli.newFlagSet("admitcard-edit", "-id ID [-course C] [-semester ID] [-start D] [-end D] [-exam D] [-assign IDS] [-include IDS] [-exclude IDS] [-selection-name NAME]")
	id := fs.Int("id", 0, "The process id.")
	var ff formFlags
	ff.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	ctx := context.Background()
	form := cli.newForm()
	defer form.Close()
	if err := form.OpenForEdit(ctx, *id); err != nil {
		return err
	}
	if exam := form.Snapshot().Data.ExamDate; exam != "" {
		if err := admitcard.CheckEditable(admitcard.Activity{ID: *id, ExamStartDate: &exam}, cli.now()); err != nil {
			return err
		}
	}
	if err := cli.fillForm(ctx, form, ff); err != nil {
		return err
	}
	name := form.Snapshot().Data.ActivityName
	if err := form.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Updated %q\n", name)
	return nil
}

// fillForm applies the given flags to form, in the order the form expects them.
func (cli *commandLine) fillForm(ctx context.Context, form *admitcard.Form, ff formFlags) error {
	if ff.course != "" {
		course, err := resolveCourse(form.Snapshot().Courses, ff.course)
		if err != nil {
			return err
		}
		if course.ID != form.Snapshot().Data.CourseID {
			if err = form.SelectCourse(ctx, course.ID); err != nil {
				return err
			}
		}
	}

	st := form.Snapshot()
	if ff.semester != 0 {
		if !hasOption(st.Semesters, ff.semester) {
			cli.printSemesters(st.Data.CourseName, st.Semesters)
			return errors.Errorf("unknown semester %d of course %q", ff.semester, st.Data.CourseName)
		}
		form.SelectSemester(ff.semester)
		if len(form.Snapshot().Selected) == 0 {
			// a process moved to another semester starts with all of its students
			form.SetAllSelected(true)
		}
	} else if st.Data.Semester == 0 {
		cli.printSemesters(st.Data.CourseName, st.Semesters)
		return errHelp
	}

	include, err := parseIDsFlag("include", ff.include)
	if err != nil {
		return err
	}
	exclude, err := parseIDsFlag("exclude", ff.exclude)
	if err != nil {
		return err
	}
	st = form.Snapshot()
	for _, sid := range append(include, exclude...) {
		if !inRoster(st.Roster, sid) {
			return errors.Wrapf(admitcard.ErrUnknownStudent, "student %d", sid)
		}
	}
	for _, sid := range include {
		if !containsID(st.Selected, sid) {
			if err = form.ToggleStudent(sid); err != nil {
				return err
			}
		}
	}
	for _, sid := range exclude {
		if containsID(st.Selected, sid) || containsID(include, sid) {
			if err = form.ToggleStudent(sid); err != nil {
				return err
			}
		}
	}

	if ff.start != "" {
		form.SetStartDate(ff.start)
	}
	if ff.end != "" {
		form.SetEndDate(ff.end)
	}
	if ff.exam != "" {
		form.SetExamDate(ff.exam)
	}
	if ff.assign != "" {
		ids, err := parseIDsFlag("assign", ff.assign)
		if err != nil {
			return err
		}
		form.SetAssignees(ids)
	}
	if ff.selectionName != "" {
		form.SetSelectionName(ff.selectionName)
	}
	return nil
}

func (cli *commandLine) printSemesters(course string, semesters []admitcard.Option) {
	if len(semesters) == 0 {
		fmt.Fprintf(cli.out, "No semesters for course %q.\n", course)
		return
	}
	fmt.Fprintf(cli.out, "Semesters of %s:\n", course)
	for _, opt := range semesters {
		fmt.Fprintf(cli.out, "  %d\t%s\n", opt.Value, opt.Label)
	}
}

// resolveCourse finds a course by id, name or alias, ignoring case.
// An unknown name is answered with the closest course name, if any is close enough.
func resolveCourse(courses []admitcard.Course, value string) (admitcard.Course, error) {
	value = core.CleanString(value)
	if id, err := strconv.Atoi(value); err == nil {
		for _, c := range courses {
			if c.ID == id {
				return c, nil
			}
		}
		return admitcard.Course{}, errors.Wrapf(admitcard.ErrUnknownCourse, "course %d", id)
	}

	var best admitcard.Course
	var bestRatio float64
	for _, c := range courses {
		if strings.EqualFold(c.Name, value) || (c.Alias != "" && strings.EqualFold(c.Alias, value)) {
			return c, nil
		}
		m := difflib.NewMatcher(strings.Split(strings.ToLower(value), ""), strings.Split(strings.ToLower(c.Name), ""))
		if ratio := m.Ratio(); ratio > bestRatio {
			best, bestRatio = c, ratio
		}
	}
	if bestRatio >= minSuggestionRatio {
		return admitcard.Course{}, errors.Wrapf(admitcard.ErrUnknownCourse, "%q, did you mean %q?", value, best.Name)
	}
	return admitcard.Course{}, errors.Wrapf(admitcard.ErrUnknownCourse, "%q", value)
}

func parseIDsFlag(name, value string) ([]int, error) {
	ids, err := core.ParseIDs(value)
	if err != nil {
		return nil, errors.Wrapf(err, "-%s", name)
	}
	return ids, nil
}

func hasOption(opts []admitcard.Option, value int) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

func inRoster(roster []admitcard.Candidate, id int) bool {
	for _, c := range roster {
		if c.ID == id {
			return true
		}
	}
	return false
}

func containsID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
