package auth

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddharth-debugs/college-erp-bite/core"
	notifysvc "github.com/siddharth-debugs/college-erp-bite/services/notify"
	sessionstore "github.com/siddharth-debugs/college-erp-bite/storage/session"
)

type fakeGateway struct {
	otpReply   Reply
	loginReply LoginReply
	err        error
	otpReqs    []OTPRequest
	loginReqs  []LoginRequest
}

func (gw *fakeGateway) SendLoginOTP(ctx context.Context, req OTPRequest) (Reply, error) {
	gw.otpReqs = append(gw.otpReqs, req)
	return gw.otpReply, gw.err
}

func (gw *fakeGateway) Login(ctx context.Context, req LoginRequest) (LoginReply, error) {
	gw.loginReqs = append(gw.loginReqs, req)
	return gw.loginReply, gw.err
}

func newTestService(gw Gateway) (*Service, core.SessionStore, *notifysvc.Recorder) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	store := sessionstore.NewMemoryStore()
	rec := notifysvc.NewRecorder()
	return NewService(gw, store, rec, validate, translator), store, rec
}

func TestService_SendOTP(t *testing.T) {
	tests := []struct {
		name      string
		mobile    string
		reply     Reply
		gwErr     error
		wantErr   error
		wantLevel notifysvc.Level
		wantMsg   string
		wantCalls int
	}{
		{"short mobile", "98765", Reply{}, nil, nil, notifysvc.LevelError, MsgInvalidMobile, 0},
		{"letters", "98765abcde", Reply{}, nil, nil, notifysvc.LevelError, MsgInvalidMobile, 0},
		{"sent", " 9876543210 ", Reply{Message: "OTP sent Successfully"}, nil, nil, notifysvc.LevelSuccess, "OTP sent Successfully", 1},
		{"refused", "9876543210", Reply{Message: "Mobile not registered"}, nil, ErrOTPNotSent, notifysvc.LevelError, "Mobile not registered", 1},
		{"refused silently", "9876543210", Reply{}, nil, ErrOTPNotSent, notifysvc.LevelError, MsgOTPNotSent, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{otpReply: tc.reply, err: tc.gwErr}
			svc, _, rec := newTestService(gw)

			err := svc.SendOTP(context.Background(), tc.mobile)
			switch {
			case tc.wantErr != nil:
				assert.True(t, errors.Is(err, tc.wantErr))
			case tc.wantLevel == notifysvc.LevelError:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, []string{tc.wantMsg}, rec.Messages(tc.wantLevel))
			assert.Len(t, gw.otpReqs, tc.wantCalls)
		})
	}
}

func TestService_SendOTPTransportError(t *testing.T) {
	gw := &fakeGateway{err: core.NewNetworkError(errors.New("dial tcp: refused"))}
	svc, _, rec := newTestService(gw)

	err := svc.SendOTP(context.Background(), "9876543210")
	assert.True(t, core.IsKind(err, core.KindNetwork))
	assert.Empty(t, rec.Sent())
}

func TestService_VerifyOTP(t *testing.T) {
	gw := &fakeGateway{loginReply: LoginReply{Message: "Login successful", Token: "abc", FullName: "Admin One", Email: "admin@example.com"}}
	svc, store, rec := newTestService(gw)
	assert.False(t, svc.IsAuthenticated())

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "12345")
	require.Error(t, err)
	assert.Equal(t, []string{MsgInvalidOTP}, rec.Messages(notifysvc.LevelError))
	assert.Empty(t, gw.loginReqs)

	profile, err := svc.VerifyOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	assert.Equal(t, Profile{Name: "Admin One", Email: "admin@example.com"}, profile)
	assert.Equal(t, []LoginRequest{{Mobile: "9876543210", OTP: "123456"}}, gw.loginReqs)
	assert.Equal(t, "abc", store.Get(core.SessionToken))
	assert.Equal(t, "Admin One", store.Get(core.SessionUserName))
	assert.Equal(t, "admin@example.com", store.Get(core.SessionEmail))
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, []string{"Login successful"}, rec.Messages(notifysvc.LevelSuccess))

	current, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, profile, current)

	require.NoError(t, svc.Logout())
	assert.False(t, svc.IsAuthenticated())
	assert.Empty(t, store.Get(core.SessionUserName))
	_, err = svc.Current()
	assert.True(t, errors.Is(err, ErrNotLoggedIn))
}

func TestService_VerifyOTPRefused(t *testing.T) {
	gw := &fakeGateway{loginReply: LoginReply{Message: "Invalid OTP"}}
	svc, store, rec := newTestService(gw)

	_, err := svc.VerifyOTP(context.Background(), "9876543210", "000000")
	assert.True(t, errors.Is(err, ErrLoginRefused))
	assert.Equal(t, []string{"Invalid OTP"}, rec.Messages(notifysvc.LevelError))
	assert.Empty(t, store.Get(core.SessionToken))
}
