package domain

import (
	"errors"
	"fmt"
)

// ErrSelectionNotFound is returned when a user has no live selection in the store.
var ErrSelectionNotFound = errors.New("selection not found")

// ErrProductNotFound is returned when a menu value does not resolve to a catalog product.
var ErrProductNotFound = errors.New("product not found")

// ErrBusy is returned when another purchase for the same user is still in flight.
var ErrBusy = errors.New("already processing")

// Precondition failures of the purchase protocol, in the order they are checked.
var (
	ErrNoSelection      = errors.New("no product selected")
	ErrNotInGuild       = errors.New("interaction outside a guild")
	ErrNoTicketCategory = errors.New("no tickets category configured")
)

// ErrUnknownInteraction is returned by the dispatcher when no handler matches.
var ErrUnknownInteraction = errors.New("unknown interaction")

// Kind classifies an Error for the response layer.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindIndex         Kind = "index"
	KindPrecondition  Kind = "precondition"
	KindProvisioning  Kind = "provisioning"
	KindConfiguration Kind = "configuration"
	KindInternal      Kind = "internal"
)

// Error is a classified failure. Handlers return it so the dispatcher can pick
// a user-facing message without inspecting strings.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports malformed or missing admin input.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Index reports a menu value that no longer resolves to a product.
func Index(value string) *Error {
	return &Error{Kind: KindIndex, Msg: fmt.Sprintf("value %q", value), Err: ErrProductNotFound}
}

// Precondition wraps one of the purchase precondition sentinels.
func Precondition(err error) *Error {
	return &Error{Kind: KindPrecondition, Err: err}
}

// Provisioning wraps a failure of the platform while building a ticket.
func Provisioning(msg string, err error) *Error {
	return &Error{Kind: KindProvisioning, Msg: msg, Err: err}
}

// Configuration reports missing or invalid process settings. It is fatal at startup.
func Configuration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
