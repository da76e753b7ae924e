// Command admin is the campus administration console: OTP login, the student
// roster and the admit card processes.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/auth"
	"github.com/siddharth-debugs/college-erp-bite/core/listing"
	"github.com/siddharth-debugs/college-erp-bite/services/campusapi"
	"github.com/siddharth-debugs/college-erp-bite/services/httpclient"
	logsvc "github.com/siddharth-debugs/college-erp-bite/services/logger"
	notifysvc "github.com/siddharth-debugs/college-erp-bite/services/notify"
	sessionstore "github.com/siddharth-debugs/college-erp-bite/storage/session"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	if err := conf.Validate(validate); err != nil {
		logger.Fatal(fmt.Sprintf("invalid config: %v", err), err)
	}

	session, err := sessionstore.NewFileStore(conf.Session.File)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening session: %v", err), err)
	}
	notifier := notifysvc.NewConsoleNotifier(os.Stderr)

	client, err := httpclient.New(httpclient.Options{
		BaseURL:    conf.API.BaseURL,
		Prefix:     conf.API.Prefix,
		AuthScheme: conf.API.AuthScheme,
		Timeout:    conf.API.Timeout,
		Session:    session,
		Notifier:   notifier,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up API client: %v", err), err)
	}
	api := campusapi.New(client)

	// start CLI
	cli := commandLine{
		out:        os.Stdout,
		auth:       auth.NewService(api, session, notifier, validate, translator),
		activities: api,
		students:   api,
		notifier:   notifier,
		logger:     logger,
		listOpts: listing.Options{
			Debounce: conf.List.Debounce,
			PageSize: conf.List.PageSize,
			Logger:   logger,
		},
		validate:   validate,
		translator: translator,
		now:        time.Now,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
