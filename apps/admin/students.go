package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

func (cli *commandLine) listStudents(args []string) error {
	fs := cli.newFlagSet("students", "[-search TEXT] [-page N] [-page-size N] [-status S] [-course ALIAS] [-documents D]")
	var pf pageFlags
	pf.register(fs)
	status := fs.String("status", "", "Show the students of the page with this status: active | inactive.")
	course := fs.String("course", "", "Show the students of the page following this course alias, eg: BED.")
	documents := fs.String("documents", "", "Show the students of the page whose documents are: complete | incomplete.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := checkChoice(fs, "status", *status, []string{student.StatusActive, student.StatusInactive}); err != nil {
		return err
	}
	if err := checkChoice(fs, "documents", *documents, []string{student.DocumentsComplete, student.DocumentsIncomplete}); err != nil {
		return err
	}

	list := student.NewList(cli.students, cli.listOpts)
	defer list.Close()
	st, err := loadPage(list, pf, nil)
	if err != nil {
		return err
	}
	visible := student.Visible(st.Result.Items, map[string]string{
		student.FilterStatus:    *status,
		student.FilterCourse:    *course,
		student.FilterDocuments: *documents,
	})

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENROLLMENT\tNAME\tCOURSE\tSEM\tSEC\tPHONE\tSTATUS\tDOCUMENTS")
	for _, s := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.EnrollmentNo, s.FullName(), s.Course, s.Semester, s.Section, s.PrimaryPhone, s.Status, s.DocumentStatus)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	printFooter(cli.out, st)
	return nil
}

func (cli *commandLine) showStudent(args []string) error {
	fs := cli.newFlagSet("student", "-id ID")
	id := fs.Int("id", 0, "The student's id.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	s, err := cli.students.GetStudent(context.Background(), *id)
	if err != nil {
		return err
	}
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	postal := func(p student.Postal) string {
		return fmt.Sprintf("%s, %s, %s, %s %s", p.Address, p.City, p.State, p.Country, p.Pincode)
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	for _, row := range [][2]string{
		{"Name", s.FullName()},
		{"Enrollment", s.EnrollmentNo},
		{"Email", s.Email},
		{"Phone", s.PrimaryPhone},
		{"Course", fmt.Sprintf("%s, semester %s, section %s", s.Course, s.Semester, s.Section)},
		{"Status", s.Status},
		{"Date of birth", s.DateOfBirth},
		{"Gender", s.Gender},
		{"Blood group", s.BloodGroup},
		{"Father", s.FatherName},
		{"Mother", s.MotherName},
		{"Aadhaar", s.AadharNumber},
		{"Correspondence", postal(s.Correspondence)},
		{"Permanent", postal(s.Permanent)},
		{"Documents", s.DocumentStatus},
		{"Photo", yesNo(s.HasPhoto)},
	} {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	return w.Flush()
}
