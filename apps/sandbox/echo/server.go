// Package echoapi serves a sandbox of the campus REST API backed by an in-memory campus.
package echoapi

import (
	"context"
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/siddharth-debugs/college-erp-bite/core"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

type (
	Options struct {
		Address        string
		Prefix         string // eg: "/api/v1"
		Debug          bool
		DisableReqLogs bool
		AppName        string
		SecretKey      string
		TokenTTL       time.Duration
		// OTP is handed out to every login when set; random codes are used otherwise.
		OTP            string
		DB             *inmemdb.DB
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		SignalShutdown func()
		Now            func() time.Time
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		auth *authenticator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
		auth: newAuthenticator(opts),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.RequestID())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", s.home)

	root := s.app.Group(s.opts.Prefix)
	jwt := middleware.JWTWithConfig(s.auth.config)

	registerAuthAPI(root, s.auth, s.opts)
	registerCatalogAPI(root, jwt, s.opts)
	registerActivityAPI(root, jwt, s.opts)
	registerStudentAPI(root, jwt, s.opts)
}

func (s *server) Start() {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		s.app.Logger.Fatal(err)
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+s.opts.AppName+" sandbox!")
}
