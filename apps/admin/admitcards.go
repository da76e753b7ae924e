package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
)

func (cli *commandLine) listActivities(args []string) error {
	fs := cli.newFlagSet("admitcards", "[-search TEXT] [-page N] [-page-size N]")
	var pf pageFlags
	pf.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	list := admitcard.NewActivityList(cli.activities, cli.listOpts)
	defer list.Close()
	st, err := loadPage(list, pf, nil)
	if err != nil {
		return err
	}

	today := cli.now()
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOURSE\tSEMESTER\tSTART\tEND\tEXAM\tPROGRESS\tSTAFF")
	for _, a := range st.Result.Items {
		exam := ""
		if a.ExamStartDate != nil {
			exam = *a.ExamStartDate
		}
		name := a.Name
		if a.SelectionName != nil && *a.SelectionName != "" {
			name += " (" + *a.SelectionName + ")"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s [%s]\t%d/%d %d%% [%s]\t%d\n",
			a.ID, name, a.Specialization, a.AcademicGroup, a.StartDate, a.EndDate,
			admitcard.RelativeDay(exam, today), admitcard.ExamBadge(exam, today),
			a.CompletedStudents, a.TotalStudents,
			admitcard.ProgressPercentage(a.CompletedStudents, a.TotalStudents),
			admitcard.ProgressBand(a.CompletedStudents, a.TotalStudents),
			len(a.Employees))
	}
	if err = w.Flush(); err != nil {
		return err
	}
	printFooter(cli.out, st)
	return nil
}

func (cli *commandLine) showActivity(args []string) error {
	fs := cli.newFlagSet("admitcard", "-id ID [-search TEXT] [-page N] [-page-size N] [filters]")
	id := fs.Int("id", 0, "The process id.")
	var pf pageFlags
	pf.register(fs)
	noDues := fs.String("no-dues", "", "No Dues clearance: completed | pending.")
	libraryNOC := fs.String("library-noc", "", "Library NOC clearance: completed | pending.")
	issueStatus := fs.String("issue-status", "", "Admit card: issued | not-issued.")
	available := fs.String("available", "", "Admit card available: yes | no.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}
	filters := map[string]string{
		admitcard.FilterNoDues:           *noDues,
		admitcard.FilterLibraryNOC:       *libraryNOC,
		admitcard.FilterIssueStatus:      *issueStatus,
		admitcard.FilterCardAvailability: *available,
	}
	for _, f := range []struct{ flag, key string }{
		{"no-dues", admitcard.FilterNoDues},
		{"library-noc", admitcard.FilterLibraryNOC},
		{"issue-status", admitcard.FilterIssueStatus},
		{"available", admitcard.FilterCardAvailability},
	} {
		if err := checkChoice(fs, f.flag, filters[f.key], admitcard.FilterValues[f.key]); err != nil {
			return err
		}
	}

	view := admitcard.NewDetailView(cli.activities, *id, cli.listOpts)
	defer view.Close()
	st, err := loadPage(view.List, pf, filters)
	if err != nil {
		return err
	}
	stats, err := view.LoadStats(context.Background())
	if err != nil {
		return err
	}

	today := cli.now()
	if detail, ok := view.Activity(); ok {
		exam := ""
		if detail.ExamStartDate != nil {
			exam = *detail.ExamStartDate
		}
		fmt.Fprintf(cli.out, "%s\n", detail.Name)
		if detail.SelectionName != nil && *detail.SelectionName != "" {
			fmt.Fprintf(cli.out, "Selection: %s\n", *detail.SelectionName)
		}
		fmt.Fprintf(cli.out, "From %s to %s, exam %s [%s]\n", detail.StartDate, detail.EndDate,
			admitcard.RelativeDay(exam, today), admitcard.ExamBadge(exam, today))
		fmt.Fprintf(cli.out, "Students: %d, verified: %d, admit cards: %d\n",
			detail.TotalStudents, detail.VerifiedStudents, detail.TotalAdmitCards)
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	for _, row := range []struct {
		label string
		p     admitcard.CheckProgress
	}{
		{"Students", admitcard.StudentProgress(stats)},
		{admitcard.PreCheckNameNoDues, admitcard.PreCheckProgress(stats, admitcard.PreCheckNameNoDues)},
		{admitcard.PreCheckNameLibraryNOC, admitcard.PreCheckProgress(stats, admitcard.PreCheckNameLibraryNOC)},
	} {
		fmt.Fprintf(w, "%s:\t%d/%d\t%d%% [%s]\t%d pending\n", row.label, row.p.Completed, row.p.Total,
			row.p.Percent, admitcard.ProgressBand(row.p.Completed, row.p.Total), row.p.Pending)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "ID\tNAME\tREGISTRATION\tPRE-CHECKS\tAUTH\tISSUED\tCARD\tDOWNLOADS")
	for _, c := range st.Result.Items {
		issued := "no"
		if c.ActivityCompleted {
			issued = "yes"
			if c.ActivityCompletedIssuedBy != nil {
				issued += " by " + *c.ActivityCompletedIssuedBy
			}
		}
		card := "no"
		if c.IsAdmitCardAvailable {
			card = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d/%d %s\t%d/%d\t%s\t%s\t%d\n",
			c.StudentID, c.FullName, c.RegistrationNo,
			c.CompletedPrechecks, c.TotalPrechecks, strings.Join(c.CompletedPrecheckNames, ", "),
			c.CompletedAuthentications, c.TotalAuthentications,
			issued, card, c.AdmitCardDownloadCount)
	}
	if err = w.Flush(); err != nil {
		return err
	}
	printFooter(cli.out, st)
	return nil
}
