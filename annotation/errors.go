package annotation

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

const (
	EmptyInput Kind = iota + 1
	UnclosedSpan
	MalformedSense
)

func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "empty input"
	case UnclosedSpan:
		return "unclosed span"
	case MalformedSense:
		return "malformed sense"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel errors, one per Kind. Use errors.Is against a *ParseError.
var (
	ErrEmptyInput     = errors.New("empty input")
	ErrUnclosedSpan   = errors.New("unclosed span")
	ErrMalformedSense = errors.New("malformed sense")
)

func (k Kind) sentinel() error {
	switch k {
	case EmptyInput:
		return ErrEmptyInput
	case UnclosedSpan:
		return ErrUnclosedSpan
	case MalformedSense:
		return ErrMalformedSense
	}
	return nil
}

// ParseError is returned by Parse. Token holds the offending input token,
// if any, and Err the underlying cause (f.ex. a *strconv.NumError).
type ParseError struct {
	Kind    Kind
	Token   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Token != "" {
		msg += " in token " + e.Token
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func newError(kind Kind, token, message string, err error) *ParseError {
	return &ParseError{Kind: kind, Token: token, Message: message, Err: err}
}
