package echoapi

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
	"github.com/siddharth-debugs/college-erp-bite/core/auth"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

const (
	authScheme      = "Token"
	contextTokenKey = "userToken"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Mobile   string `json:"mobile,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type authenticator struct {
	opts   *Options
	config middleware.JWTConfig
}

func newAuthenticator(opts *Options) *authenticator {
	return &authenticator{
		opts: opts,
		config: middleware.JWTConfig{
			SigningKey:    []byte(opts.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
			AuthScheme:    authScheme,
		},
	}
}

// GetAdminClaims returns the claims of a freshly logged in admin.
func (a *authenticator) GetAdminClaims(adm inmemdb.Admin) *Claims {
	now := a.opts.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.opts.AppName,
			Subject:   strconv.Itoa(adm.ID),
			Audience:  "Campus Admin",
			ExpiresAt: now.Add(a.opts.TokenTTL).Unix(),
			IssuedAt:  now.Unix(),
		},
		Mobile:   adm.Mobile,
		FullName: adm.FullName,
		Email:    adm.Email,
	}
}

// GenerateToken generates a signed JWT token string representing the admin Claims.
func (a *authenticator) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.config.SigningKey)
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

// newOTP returns the configured OTP or a random 6-digit code.
func (a *authenticator) newOTP() (string, error) {
	if a.opts.OTP != "" {
		return a.opts.OTP, nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", errors.Wrap(err, "generating otp")
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

type authApi struct {
	auth *authenticator
	opts *Options
}

func registerAuthAPI(g *echo.Group, a *authenticator, opts *Options) {
	api := authApi{auth: a, opts: opts}

	cg := g.Group("/core")
	cg.POST("/send-login-otp/", api.sendOTP)
	cg.POST("/login/", api.login)
}

// Handlers

func (api *authApi) sendOTP(ctx echo.Context) error {
	var data auth.OTPRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to OTPRequest")
	}
	if err := validateStruct(api.opts, data); err != nil {
		return err
	}

	code, err := api.auth.newOTP()
	if err != nil {
		return err
	}
	if err = api.opts.DB.IssueOTP(data.Mobile, code); err != nil {
		if errors.Is(err, inmemdb.ErrUnknownAdmin) {
			return ctx.JSON(http.StatusOK, auth.Reply{Message: "Mobile number is not registered"})
		}
		return errors.Wrap(err, "issuing otp")
	}
	// the sandbox has no SMS gateway
	api.opts.Logger.Info("login otp issued", map[string]interface{}{"mobile": data.Mobile, "otp": code})
	return ctx.JSON(http.StatusOK, auth.Reply{Message: "OTP sent successfully"})
}

func (api *authApi) login(ctx echo.Context) error {
	var data auth.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := validateStruct(api.opts, data); err != nil {
		return err
	}

	adm, err := api.opts.DB.CheckOTP(data.Mobile, data.OTP)
	if err != nil {
		if errors.Is(err, inmemdb.ErrInvalidOTP) || errors.Is(err, inmemdb.ErrUnknownAdmin) {
			return ctx.JSON(http.StatusOK, auth.Reply{Message: "Invalid OTP"})
		}
		return errors.Wrap(err, "checking otp")
	}
	token, err := api.auth.GenerateToken(api.auth.GetAdminClaims(adm))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, auth.LoginReply{
		Message:  "Login successful",
		Token:    token,
		FullName: adm.FullName,
		Email:    adm.Email,
	})
}

// validateStruct validates data, translating failures to field messages.
func validateStruct(opts *Options, data interface{}) error {
	err := opts.Validate.Struct(data)
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}
	flds := make([]core.FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(opts.Translator)})
	}
	return core.NewValidationError(errors.New(flds[0].Error), flds...)
}
