// Package testutil sets up a seeded sandbox of the campus API for tests.
package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	echoapi "github.com/siddharth-debugs/college-erp-bite/apps/sandbox/echo"
	"github.com/siddharth-debugs/college-erp-bite/core"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

const (
	Prefix    = "/api"
	OTP       = "123456"
	SecretKey = "sandbox-secret"
)

// Today is the date the campus is seeded relative to.
var Today = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

// NewValidator returns a validator set up like the apps set it up.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	return validate, translator
}

// NewDB returns a seeded in-memory campus.
func NewDB(t *testing.T) *inmemdb.DB {
	db := inmemdb.Open(bcrypt.MinCost)
	if err := inmemdb.Seed(db, Today); err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	return db
}

// NewSandbox returns a sandbox server over a freshly seeded campus.
// Every login is granted the OTP constant.
func NewSandbox(t *testing.T) (echoapi.Server, *inmemdb.DB) {
	db := NewDB(t)
	validate, translator := NewValidator()
	srv := echoapi.NewServer(&echoapi.Options{
		Prefix:         Prefix,
		DisableReqLogs: true,
		AppName:        "campus",
		SecretKey:      SecretKey,
		OTP:            OTP,
		DB:             db,
		Validate:       validate,
		Translator:     translator,
	})
	return srv, db
}

// StartSandbox serves NewSandbox over HTTP until the test ends.
func StartSandbox(t *testing.T) (*httptest.Server, *inmemdb.DB) {
	srv, db := NewSandbox(t)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, db
}
