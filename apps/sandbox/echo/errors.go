package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
	inmemdb "github.com/siddharth-debugs/college-erp-bite/storage/inmem"
)

var (
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "Authentication credentials were not provided.")
	errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "Not found.")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler answering with the
// error payloads of the campus API: {"detail": ...} or field keyed message lists.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing || origErr.Code == http.StatusUnauthorized {
				code = http.StatusUnauthorized
				message = errUnauthorized.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string][]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = append(fldErrs[vErr.Field()], vErr.Error())
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if len(origErr.Fields) > 0 {
				fldErrs := make(map[string][]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = append(fldErrs[fErr.Field], fErr.Error)
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch {
			case errors.Is(err, inmemdb.ErrNotFound):
				code = http.StatusNotFound
				message = errHttpNotFound.Message
			case errors.Is(err, inmemdb.ErrUnknownStudent), errors.Is(err, inmemdb.ErrUnknownStaff):
				code = http.StatusBadRequest
				message = err.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				extras := map[string]interface{}{"path": ctx.Path()}
				if claims, cErr := getContextClaims(ctx); cErr == nil {
					extras["mobile"] = claims.Mobile
				}
				logger.Error(msg, errors.Wrap(err, msg), extras)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"detail": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
