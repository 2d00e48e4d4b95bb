package mgr

import "fmt"

// IOError wraps a transport-level read or write failure: anything
// that isn't a protocol-level parse or taxonomy error.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("mgr: io error: %v", e.Err) }

func (e *IOError) Unwrap() error { return e.Err }

// wrapIO classifies err: protocol errors already typed by this package
// pass through unchanged; anything else (EOF, a reset connection, a
// write failure) is wrapped as IOError.
func wrapIO(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *ParseError, *UnknownMessage, *HeaderMissing:
		return err
	}
	if err == ErrEmptyHeader {
		return err
	}
	return &IOError{Err: err}
}

// ParseError is raised when a header line cannot be split into a
// name and a value.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mgr: parse error: missing ':' in header %q", e.Line)
}

// ErrEmptyHeader is raised when an empty line is parsed as a header
// outside of its role as a message terminator.
var ErrEmptyHeader = fmt.Errorf("mgr: empty header received")

// UnknownMessage is raised when the first header of a message names
// anything other than Action, Response, or Event.
type UnknownMessage struct {
	Kind string
}

func (e *UnknownMessage) Error() string {
	return fmt.Sprintf("mgr: unknown message type: %s", e.Kind)
}

// HeaderMissing is raised when a message is serialized or its primary
// value is read without the primary header having been set.
type HeaderMissing struct {
	Name string
}

func (e *HeaderMissing) Error() string {
	return fmt.Sprintf("mgr: missing %s header", e.Name)
}

// PermissionDenied maps the manager's permission-denied error message.
type PermissionDenied struct{}

func (e *PermissionDenied) Error() string { return permissionErrorString }

// AuthenticationRequired maps the manager's authentication-required
// error message.
type AuthenticationRequired struct{}

func (e *AuthenticationRequired) Error() string { return authenticationErrorString }

const (
	permissionErrorString     = "Permission denied"
	authenticationErrorString = "Authentication required"
)

// ActionError is the base of the action-response error taxonomy,
// embedded by MissingData, BadData, and ChannelNotFound. It is never
// raised directly: an Error-kind response whose Message header
// matches none of the exact-match cases below is returned unchanged,
// with a nil error.
type ActionError struct {
	Message string
	Action  Action
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("mgr: action error: %s", e.Message)
}

// MissingData refines ActionError for responses indicating a required
// field was not supplied ("No channel specified", etc.).
type MissingData struct{ ActionError }

// BadData refines ActionError for responses indicating a supplied
// field was invalid ("Invalid priority", etc.).
type BadData struct{ ActionError }

// ChannelNotFound refines ActionError for "No such channel" responses.
type ChannelNotFound struct{ ActionError }

// LoginError is raised by the Login action when the manager's response
// is not "Success".
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return fmt.Sprintf("mgr: login failed: %s", e.Message)
}

// errorMessageTable maps the exact text of an Error response's Message
// header to the failure it should be translated to, per the default
// handle_response() error taxonomy.
var errorMessageTable = map[string]func(msg string, a Action) error{
	"No timeout specified":    missingData,
	"No channel specified":    missingData,
	"Channel not specified":   missingData,
	"Extension not specified": missingData,
	"No variable specified":   missingData,
	"No value specified":      missingData,
	"Mailbox not specified":   missingData,
	"Invalid priority":        badData,
	"Invalid channel":         badData,
	"Invalid timeout":         badData,
	"No such channel":         channelNotFound,
}

func missingData(msg string, a Action) error {
	return &MissingData{ActionError{Message: msg, Action: a}}
}

func badData(msg string, a Action) error {
	return &BadData{ActionError{Message: msg, Action: a}}
}

func channelNotFound(msg string, a Action) error {
	return &ChannelNotFound{ActionError{Message: msg, Action: a}}
}
