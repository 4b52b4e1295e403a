package aci

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Login errors. Every token error wraps ErrLoginFailed.
var (
	ErrLoginFailed    = errors.New("login failed")
	ErrTokenMissing   = fmt.Errorf("%w: token attribute missing", ErrLoginFailed)
	ErrTokenNull      = fmt.Errorf("%w: token attribute is null", ErrLoginFailed)
	ErrTokenNotString = fmt.Errorf("%w: token attribute is not a string", ErrLoginFailed)
	ErrTokenEmpty     = fmt.Errorf("%w: token attribute is empty", ErrLoginFailed)
)

// Request/response errors.
// Static errors for err113 compliance.
var (
	ErrReadFailed       = errors.New("read failed")
	ErrWriteFailed      = errors.New("write failed")
	ErrMissingImdata    = errors.New("response has no imdata key")
	ErrInvalidBody      = errors.New("request body is not valid JSON")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMapping          = errors.New("mapping failed")
	ErrNotClassWrapper  = errors.New("value is not a single-class wrapper")
)

// Field extraction errors, carried inside a MappingError.
var (
	ErrFieldAbsent = errors.New("field absent")
	ErrFieldType   = errors.New("field has the wrong JSON type")
	ErrFieldRange  = errors.New("field value out of range")
)

// Configuration errors.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrServerRequired   = errors.New("controller server is required")
	ErrUsernameRequired = errors.New("username is required")
)

// MappingError reports the first field a Mapper could not extract.
type MappingError struct {
	Class string
	Field string
	Err   error
}

// Error implements the error interface.
func (e *MappingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapping %s: field %q: %v", e.Class, e.Field, e.Err)
	}

	return fmt.Sprintf("mapping %s: field %q", e.Class, e.Field)
}

// Unwrap lets errors.Is match ErrMapping and the extractor cause.
func (e *MappingError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMapping, e.Err}
	}

	return []error{ErrMapping}
}

// APIError is the controller's own error report, delivered as an "error"
// class wrapper inside imdata.
type APIError struct {
	Code string `json:"code" yaml:"code"`
	Text string `json:"text" yaml:"text"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("controller error %s: %s", e.Code, e.Text)
}

// ErrorFromImdata returns the controller error carried by imdata, or nil when
// the first element is not an "error" wrapper. The read and write paths never
// call it themselves.
func ErrorFromImdata(imdata json.RawMessage) *APIError {
	var items []map[string]struct {
		Attributes APIError `json:"attributes"`
	}

	err := json.Unmarshal(imdata, &items)
	if err != nil || len(items) == 0 {
		return nil
	}

	wrapper, ok := items[0][ClassError]
	if !ok {
		return nil
	}

	return &APIError{Code: wrapper.Attributes.Code, Text: wrapper.Attributes.Text}
}

// IsLoginFailure reports whether err came from authentication.
func IsLoginFailure(err error) bool {
	return errors.Is(err, ErrLoginFailed)
}

// MappingField returns the field name carried by a MappingError in err's chain.
func MappingField(err error) (string, bool) {
	var mapErr *MappingError
	if errors.As(err, &mapErr) {
		return mapErr.Field, true
	}

	return "", false
}
