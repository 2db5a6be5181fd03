package checkout

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError is bad user input. It never changes controller state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

var (
	ErrNoMethodSelected   = &ValidationError{Field: "method", Message: "no method selected"}
	ErrAmountBelowMinimum = &ValidationError{Field: "amount", Message: "amount below minimum"}
	ErrInvalidAmount      = &ValidationError{Field: "amount", Message: "amount must be a whole number"}
)

func unknownMethodError(id string) *ValidationError {
	return &ValidationError{Field: "method", Message: fmt.Sprintf("unknown payment method %q", id)}
}

// GatewayError is a failed create call: the upstream rejected it, could not be reached,
// or answered with something unusable. Message is safe to show to the user.
type GatewayError struct {
	Status  int
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("gateway error (http %d): %s", e.Status, e.Message)
	}
	return "gateway error: " + e.Message
}

func (e *GatewayError) Unwrap() error { return e.Err }

// TimeoutError is a create call that exceeded the controller's create timeout.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("create transaction timed out after %s", e.After)
}

func (e *TimeoutError) Timeout() bool { return true }

var (
	ErrBusy            = errors.New("a transaction is already being created")
	ErrLiveTransaction = errors.New("a transaction is already live; cancel it or select a method first")
	ErrDiscarded       = errors.New("transaction discarded: cancelled while it was being created")
	ErrClosed          = errors.New("checkout controller is closed")
)

const (
	msgGatewayUnreachable = "payment gateway unreachable, please try again"
	msgGatewayRejected    = "failed to create transaction"
	msgMalformedResponse  = "unexpected response from payment gateway"
	msgUnexpected         = "something went wrong, please try again"
)
