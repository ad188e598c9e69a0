package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	// Fields names the request fields responsible for a validation error.
	Fields []string
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Fields = err.Fields
	return true
}

// Is matches on status, message, and code. Fields are deliberately ignored so
// errors.Is(err, errcodes.NotFound("Book")) style checks keep working.
func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
		Fields:   []string{param},
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

// ValidationError returns a 422 error. fields lists every offending field, in
// the order they were checked.
func ValidationError(msg string, fields ...string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
		Fields:   fields,
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Request body can't be empty.",
		Code:     "empty_request_body",
	}
}
