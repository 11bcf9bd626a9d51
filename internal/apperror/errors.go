// Package apperror is the error taxonomy shared by the session and resource
// layers. Remote failures are classified once, at the transport boundary, and
// travel to the caller as *Error values.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindNetwork          Kind = "NetworkError"
	KindAuth             Kind = "AuthError"
	KindCapacityExceeded Kind = "CapacityExceeded"
	KindFetch            Kind = "FetchError"
	KindCreate           Kind = "CreateError"
	KindUpdate           Kind = "UpdateError"
	KindDelete           Kind = "DeleteError"
	KindValidation       Kind = "ValidationError"
	KindBusy             Kind = "Busy"
)

// Reason refines KindAuth.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonInvalidCredentials Reason = "InvalidCredentials"
	ReasonUnauthorized       Reason = "Unauthorized"
	ReasonServerError        Reason = "ServerError"
)

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrAuth             = &Error{Kind: KindAuth}
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
	ErrFetch            = &Error{Kind: KindFetch}
	ErrCreate           = &Error{Kind: KindCreate}
	ErrUpdate           = &Error{Kind: KindUpdate}
	ErrDelete           = &Error{Kind: KindDelete}
	ErrValidation       = &Error{Kind: KindValidation}
	ErrBusy             = &Error{Kind: KindBusy}
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Reason  Reason
	Message string
	Status  int
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Reason != ReasonNone {
		b.WriteString("{" + string(e.Reason) + "}")
	}
	if e.Status != 0 {
		fmt.Fprintf(&b, " [%d]", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind, and on Reason when the target carries one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Reason == ReasonNone || t.Reason == e.Reason
}

// UserMessage is the text meant for display.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Kind {
	case KindNetwork:
		return "Unable to connect to server. Please check your connection."
	case KindCapacityExceeded:
		return "Project limit reached."
	case KindBusy:
		return "Another request for this item is still in progress."
	case KindValidation:
		return "All fields are required."
	}
	return "Something went wrong. Try again."
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func Auth(reason Reason, status int, message string) *Error {
	return &Error{Kind: KindAuth, Reason: reason, Status: status, Message: message}
}

func Remote(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func CapacityExceeded(limit int) *Error {
	return &Error{
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf("Limit reached (%d/%d)", limit, limit),
	}
}

func Busy(slot string) *Error {
	return &Error{Kind: KindBusy, Message: fmt.Sprintf("%s already in progress", slot)}
}

func Validation(fields ...FieldError) *Error {
	msg := "One or more fields failed validation"
	if len(fields) > 0 {
		msg = fmt.Sprintf("%s: %s", fields[0].Field, fields[0].Message)
		if len(fields) > 1 {
			msg = fmt.Sprintf("%s (and %d more errors)", msg, len(fields)-1)
		}
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// KindOf reports the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Reclassify keeps network and local failures as they are and turns any
// other remote failure into kind. Store adapters use it to give one transport
// error the meaning of the operation that produced it.
func Reclassify(err error, kind Kind) error {
	var e *Error
	if !errors.As(err, &e) {
		return Wrap(kind, err)
	}
	switch e.Kind {
	case KindNetwork, KindValidation, KindCapacityExceeded, KindBusy, kind:
		return e
	}
	out := *e
	out.Kind = kind
	out.Reason = ReasonNone
	return &out
}
