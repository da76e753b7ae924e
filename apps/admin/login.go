package main

import (
	"context"
	"fmt"
	"syscall"

	"github.com/pkg/errors"
)

func (cli *commandLine) login(args []string) error {
	fs := cli.newFlagSet("login", "-mobile NUMBER")
	mobile := fs.String("mobile", "", "The registered 10-digit mobile number. The OTP will be prompted next.")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *mobile == "" {
		fs.Usage()
		return errHelp
	}

	ctx := context.Background()
	if err := cli.auth.SendOTP(ctx, *mobile); err != nil {
		return err
	}
	fmt.Fprint(cli.out, "Enter OTP:")
	otp, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return errors.Wrap(err, "reading otp")
	}

	profile, err := cli.auth.VerifyOTP(ctx, *mobile, string(otp))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s <%s>\n", profile.Name, profile.Email)
	return nil
}

func (cli *commandLine) logout() error {
	if err := cli.auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Logged out")
	return nil
}

func (cli *commandLine) whoami() error {
	profile, err := cli.auth.Current()
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s <%s>\n", profile.Name, profile.Email)
	return nil
}
