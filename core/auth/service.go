// Package auth logs the admin in with a one-time password sent to their mobile.
package auth

import (
	"context"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

// messages
const (
	MsgInvalidMobile = "Please enter a valid 10-digit phone number"
	MsgInvalidOTP    = "Please enter a valid 6-digit OTP"
	MsgOTPSent       = "OTP sent successfully"
	MsgOTPNotSent    = "Failed to send OTP"
	MsgLoggedIn      = "Login successful"
	MsgLoginFailed   = "Invalid OTP. Please try again."
)

var (
	ErrOTPNotSent   = errors.New("otp not sent")
	ErrLoginRefused = errors.New("login refused")
	ErrNotLoggedIn  = errors.New("not logged in")
)

type (
	// Gateway is the remote login endpoint pair.
	Gateway interface {
		SendLoginOTP(ctx context.Context, req OTPRequest) (Reply, error)
		Login(ctx context.Context, req LoginRequest) (LoginReply, error)
	}

	OTPRequest struct {
		Mobile string `json:"mobile" validate:"len=10,digits"`
	}

	LoginRequest struct {
		Mobile string `json:"mobile" validate:"len=10,digits"`
		OTP    string `json:"otp" validate:"len=6,digits"`
	}

	Reply struct {
		Message string `json:"message"`
	}

	LoginReply struct {
		Message  string `json:"message"`
		Token    string `json:"token"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}

	// Profile is the logged in admin.
	Profile struct {
		Name  string
		Email string
	}

	Service struct {
		gw         Gateway
		store      core.SessionStore
		notifier   core.Notifier
		validate   *validator.Validate
		translator ut.Translator
	}
)

var fieldMessages = map[string]string{
	"mobile": MsgInvalidMobile,
	"otp":    MsgInvalidOTP,
}

func NewService(gw Gateway, store core.SessionStore, notifier core.Notifier, validate *validator.Validate, translator ut.Translator) *Service {
	if notifier == nil {
		notifier = core.NopNotifier{}
	}
	return &Service{gw: gw, store: store, notifier: notifier, validate: validate, translator: translator}
}

// SendOTP asks for a login code to be sent to mobile.
func (svc *Service) SendOTP(ctx context.Context, mobile string) error {
	req := OTPRequest{Mobile: core.CleanString(mobile)}
	if err := svc.check(req); err != nil {
		return err
	}

	res, err := svc.gw.SendLoginOTP(ctx, req)
	if err != nil {
		return errors.Wrap(err, "sending login otp")
	}
	if !succeeded(res.Message) {
		svc.notifier.Error(orDefault(res.Message, MsgOTPNotSent))
		return errors.Wrap(ErrOTPNotSent, res.Message)
	}
	svc.notifier.Success(orDefault(res.Message, MsgOTPSent))
	return nil
}

// VerifyOTP exchanges the code for a session, stored with the admin's name and email.
func (svc *Service) VerifyOTP(ctx context.Context, mobile, otp string) (Profile, error) {
	req := LoginRequest{Mobile: core.CleanString(mobile), OTP: core.CleanString(otp)}
	if err := svc.check(req); err != nil {
		return Profile{}, err
	}

	res, err := svc.gw.Login(ctx, req)
	if err != nil {
		return Profile{}, errors.Wrap(err, "logging in")
	}
	if !succeeded(res.Message) || res.Token == "" {
		svc.notifier.Error(orDefault(res.Message, MsgLoginFailed))
		return Profile{}, errors.Wrap(ErrLoginRefused, res.Message)
	}

	if err = svc.store.Set(core.SessionToken, res.Token); err != nil {
		return Profile{}, errors.Wrap(err, "storing session")
	}
	if err = svc.store.Set(core.SessionUserName, res.FullName); err != nil {
		return Profile{}, errors.Wrap(err, "storing session")
	}
	if err = svc.store.Set(core.SessionEmail, res.Email); err != nil {
		return Profile{}, errors.Wrap(err, "storing session")
	}
	svc.notifier.Success(orDefault(res.Message, MsgLoggedIn))
	return Profile{Name: res.FullName, Email: res.Email}, nil
}

// Logout forgets the session.
func (svc *Service) Logout() error {
	return errors.Wrap(svc.store.Remove(core.SessionToken, core.SessionUserName, core.SessionEmail), "clearing session")
}

func (svc *Service) IsAuthenticated() bool {
	return svc.store.Get(core.SessionToken) != ""
}

// Current returns the logged in admin, or ErrNotLoggedIn.
func (svc *Service) Current() (Profile, error) {
	if !svc.IsAuthenticated() {
		return Profile{}, ErrNotLoggedIn
	}
	return Profile{Name: svc.store.Get(core.SessionUserName), Email: svc.store.Get(core.SessionEmail)}, nil
}

// check validates req, notifying the first problem.
func (svc *Service) check(req interface{}) error {
	if err := svc.validate.Struct(req); err != nil {
		err = core.TranslateValidation(err, svc.translator, fieldMessages)
		svc.notifier.Error(core.ErrorMessage(err))
		return err
	}
	return nil
}

func succeeded(msg string) bool {
	return core.ContainsFold(msg, "success")
}

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}
