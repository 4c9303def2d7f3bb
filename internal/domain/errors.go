package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can tell retryable conflicts
// apart from permanent validation errors.
type ErrorKind string

const (
	KindFormat       ErrorKind = "FORMAT"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindBusinessRule ErrorKind = "BUSINESS_RULE"
	KindConflict     ErrorKind = "CONFLICT"
)

type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func Formatf(field, format string, args ...any) *Error {
	return &Error{Kind: KindFormat, Field: field, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(field, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Field: field, Message: fmt.Sprintf(format, args...)}
}

func BusinessRulef(field, format string, args ...any) *Error {
	return &Error{Kind: KindBusinessRule, Field: field, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(field, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Field: field, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the taxonomy kind, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
