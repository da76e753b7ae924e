package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/admitcard"
	"github.com/siddharth-debugs/college-erp-bite/core/auth"
	"github.com/siddharth-debugs/college-erp-bite/core/listing"
	"github.com/siddharth-debugs/college-erp-bite/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp          = errors.New("help provided")
	errLoginRequired = errors.New("not logged in, run: admin login -mobile NUMBER")
)

type commandLine struct {
	out        io.Writer
	auth       *auth.Service
	activities admitcard.Repository
	students   student.Repository
	notifier   core.Notifier
	logger     core.Logger
	listOpts   listing.Options
	validate   *validator.Validate
	translator ut.Translator
	now        func() time.Time
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -mobile NUMBER                  - log in, the OTP is prompted next")
	fmt.Fprintln(cli.out, "  logout                                - forget the session")
	fmt.Fprintln(cli.out, "  whoami                                - show the logged in admin")
	fmt.Fprintln(cli.out, "  students [flags]                      - list students")
	fmt.Fprintln(cli.out, "  student -id ID                        - show a student")
	fmt.Fprintln(cli.out, "  admitcards [flags]                    - list admit card processes")
	fmt.Fprintln(cli.out, "  admitcard -id ID [flags]              - show the students of a process")
	fmt.Fprintln(cli.out, "  admitcard-create -course C -semester S [flags] - create a process")
	fmt.Fprintln(cli.out, "  admitcard-edit -id ID [flags]         - edit a process")
	fmt.Fprintln(cli.out, "Run 'admin COMMAND -h' for the flags of a command.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd, args := args[1], args[2:]
	switch cmd {
	case "login":
		return cli.login(args)
	case "logout":
		return cli.logout()
	case "whoami":
		return cli.whoami()
	case "students", "student", "admitcards", "admitcard", "admitcard-create", "admitcard-edit":
	default:
		cli.printUsage()
		return errHelp
	}

	if !cli.auth.IsAuthenticated() {
		return errLoginRequired
	}
	switch cmd {
	case "students":
		return cli.listStudents(args)
	case "student":
		return cli.showStudent(args)
	case "admitcards":
		return cli.listActivities(args)
	case "admitcard":
		return cli.showActivity(args)
	case "admitcard-create":
		return cli.createActivity(args)
	default:
		return cli.editActivity(args)
	}
}

// newFlagSet returns a flag set printing its usage on cli.out.
func (cli *commandLine) newFlagSet(name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	fs.Usage = func() {
		fmt.Fprintf(cli.out, "Usage: admin %s %s\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return errHelp
	}
	return nil
}
