// Command sandbox serves a seeded in-memory campus behind the campus REST API,
// for local runs of the admin CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/siddharth-debugs/college-erp-bite/apps/sandbox/echo"
	"github.com/siddharth-debugs/college-erp-bite/core"
	logsvc "github.com/siddharth-debugs/college-erp-bite/services/logger"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

const shutdownTimeout = 5 * time.Second

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "SANDBOX : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	if err := conf.Validate(validate); err != nil {
		logger.Fatal(fmt.Sprintf("invalid config: %v", err), err)
	}

	db := inmemdb.Open(bcrypt.DefaultCost)
	if err := inmemdb.Seed(db, time.Now()); err != nil {
		logger.Fatal(fmt.Sprintf("seeding campus: %v", err), err)
	}

	logger.Info(fmt.Sprintf("Sandbox initializing : version %q", conf.Build))
	defer logger.Info("Sandbox stopped")

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:    conf.Sandbox.Address,
		Prefix:     "/" + strings.Trim(conf.API.Prefix, "/"),
		Debug:      conf.Debug,
		AppName:    conf.AppName,
		SecretKey:  conf.Sandbox.SecretKey,
		TokenTTL:   conf.Sandbox.TokenTTL,
		OTP:        conf.Sandbox.OTP,
		DB:         db,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		SignalShutdown: func() {
			shutdown <- syscall.SIGTERM
		},
	})
	go server.Start()

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}
