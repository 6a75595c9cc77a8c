package contract

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies contract failures for callers.
type ErrorKind uint8

const (
	KindUnauthorized ErrorKind = iota + 1
	KindInvalidAsset
	KindInsufficientFunds
	KindInvalidTokenURI
	KindBusinessRule
	KindOverflow
	KindNotFound
	KindInvalidPayload
	KindNotInitialized
)

// String prints the kind as a short snake_case symbol.
func (k ErrorKind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindInvalidAsset:
		return "invalid_asset"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInvalidTokenURI:
		return "invalid_token_uri"
	case KindBusinessRule:
		return "business_rule"
	case KindOverflow:
		return "overflow"
	case KindNotFound:
		return "not_found"
	case KindInvalidPayload:
		return "invalid_payload"
	case KindNotInitialized:
		return "not_initialized"
	default:
		return "unknown"
	}
}

// Error is the only error type operations return on rule violations. Every error aborts the
// whole call; nothing it wrote or queued survives.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches on kind so errors.Is(err, ErrBusinessRule) works for any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

var (
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrInvalidAsset      = &Error{Kind: KindInvalidAsset}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrInvalidTokenURI   = &Error{Kind: KindInvalidTokenURI}
	ErrBusinessRule      = &Error{Kind: KindBusinessRule}
	ErrOverflow          = &Error{Kind: KindOverflow}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidPayload    = &Error{Kind: KindInvalidPayload}
	ErrNotInitialized    = &Error{Kind: KindNotInitialized}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func ruleError(format string, args ...interface{}) *Error {
	return newError(KindBusinessRule, format, args...)
}

// KindOf extracts the kind of a contract error, zero for foreign errors.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
