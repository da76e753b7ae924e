package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// user-facing messages of the error policy
const (
	MsgNetwork      = "Couldn't connect to server. Please try again later."
	MsgUnauthorized = "Unauthorized access. Please login again."
	MsgServerFault  = "Server error occurred. Please try again later."
	MsgUnexpected   = "Unexpected error occurred. Please try again."
	MsgGeneric      = "Something went wrong"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ErrorKind classifies an APIError.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindUnauthorized
	KindServerFault
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindServerFault:
		return "server fault"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// APIError is a failed exchange with the campus API, decoded once at the transport boundary.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	// Details holds the entries of an `errors` array payload.
	Details []string
	// Fields holds field keyed messages; FieldOrder keeps the order in which the server sent them.
	Fields     map[string][]string
	FieldOrder []string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		if msgs := e.Messages(); len(msgs) > 0 {
			msg = strings.Join(msgs, "; ")
		}
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Kind, msg)
	}
	return fmt.Sprintf("api error (%s): %s", e.Kind, msg)
}

func (e *APIError) Cause() error  { return e.Err }
func (e *APIError) Unwrap() error { return e.Err }

// Messages returns the notifications an error payload maps to:
// every `errors` entry, else the detail message, else one "field: message" line per field.
func (e *APIError) Messages() []string {
	if len(e.Details) > 0 {
		return e.Details
	}
	if e.Message != "" {
		return []string{e.Message}
	}
	msgs := make([]string, 0, len(e.FieldOrder))
	for _, fld := range e.FieldOrder {
		msgs = append(msgs, fld+": "+strings.Join(e.Fields[fld], ", "))
	}
	if len(msgs) == 0 {
		msgs = append(msgs, MsgUnexpected)
	}
	return msgs
}

// IsKind reports whether err is (or wraps) an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// NewNetworkError wraps a transport failure (no response received).
func NewNetworkError(err error) *APIError {
	return &APIError{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

// DecodeErrorBody classifies a non-2xx response.
func DecodeErrorBody(status int, body []byte) *APIError {
	switch {
	case status == http.StatusUnauthorized:
		return &APIError{Kind: KindUnauthorized, Status: status, Message: MsgUnauthorized}
	case status >= http.StatusInternalServerError:
		return &APIError{Kind: KindServerFault, Status: status, Message: MsgServerFault}
	}
	apiErr := DecodePayload(body)
	apiErr.Status = status
	return apiErr
}

// DecodePayload interprets an error payload: a bare string, an object carrying
// `errors`, `detail` or `message`, or an object keyed by field.
func DecodePayload(body []byte) *APIError {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return &APIError{Kind: KindUnknown}
	}

	var str string
	if err := json.Unmarshal(body, &str); err == nil {
		return &APIError{Kind: KindUnknown, Message: str}
	}

	keys, values, err := decodeOrderedObject(body)
	if err != nil {
		return &APIError{Kind: KindUnknown, Err: errors.Wrap(err, "decoding error payload")}
	}

	apiErr := &APIError{Kind: KindUnknown}
	for i, key := range keys {
		switch key {
		case "errors":
			apiErr.Details = append(apiErr.Details, fieldMessages(values[i])...)
		case "detail", "message", "error":
			if msgs := fieldMessages(values[i]); len(msgs) > 0 && apiErr.Message == "" {
				apiErr.Message = msgs[0]
			}
		default:
			msgs := fieldMessages(values[i])
			if len(msgs) == 0 {
				continue
			}
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = msgs
			apiErr.FieldOrder = append(apiErr.FieldOrder, key)
		}
	}
	if len(apiErr.FieldOrder) > 0 {
		apiErr.Kind = KindValidation
	}
	return apiErr
}

// ErrorMessage extracts the single human-readable message of err:
// the first message of the first field, else the detail, else a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case len(apiErr.FieldOrder) > 0:
			return apiErr.Fields[apiErr.FieldOrder[0]][0]
		case len(apiErr.Details) > 0:
			return apiErr.Details[0]
		case apiErr.Message != "":
			return apiErr.Message
		}
		return MsgGeneric
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) && vErr.Error() != "" {
		return vErr.Error()
	}
	return MsgGeneric
}

// decodeOrderedObject decodes a JSON object keeping its keys in order.
func decodeOrderedObject(body []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("payload is not an object")
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, raw)
	}
	return keys, values, nil
}

// fieldMessages reads the messages of an entry: a string or a list of strings.
// Any other shape yields nil.
func fieldMessages(raw json.RawMessage) []string {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if str == "" {
			return nil
		}
		return []string{str}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	msgs := make([]string, 0, len(list))
	for _, msg := range list {
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

type shutdown struct {
	message string
}

// NewShutdownError returns an error that asks a server to shut down gracefully.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
