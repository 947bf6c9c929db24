package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrUnusableResponse matches every ParseError and ValidationError.
	ErrUnusableResponse = errors.New("ai response is not a usable plan")
	ErrUnknownProvider  = errors.New("unknown ai provider")
	ErrUnsupportedKind  = errors.New("unsupported plan kind")
	ErrMissingAPIKey    = errors.New("api key is not configured")
)

type ParseFailure string

const (
	FailureInvalidJSON   ParseFailure = "invalid-json"
	FailureInvalidSchema ParseFailure = "invalid-schema"
)

// ProviderError is a transport failure, a non-2xx reply or an empty reply
// from a generative backend.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (err *ProviderError) Error() string {
	if err.StatusCode > 0 {
		return fmt.Sprintf("%s provider error (status %d): %s", err.Provider, err.StatusCode, err.Message)
	}
	return fmt.Sprintf("%s provider error: %s", err.Provider, err.Message)
}

func (err *ProviderError) Unwrap() error {
	return err.Err
}

type ParseError struct {
	Kind    ParseFailure
	Plan    PlanKind
	Reason  string
	RawText string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %s: %s", err.Plan, err.Kind, err.Reason)
}

func (err *ParseError) Is(target error) bool {
	return target == ErrUnusableResponse
}

// ValidationError reports a decoded reply whose shape does not fit the plan.
type ValidationError struct {
	Plan    PlanKind
	Field   string
	Reason  string
	RawText string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("validate %s response: %s: %s", err.Plan, err.Field, err.Reason)
}

func (err *ValidationError) Is(target error) bool {
	return target == ErrUnusableResponse
}

// RawTextOf returns the reply text carried by a parse or validation failure.
func RawTextOf(err error) (string, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.RawText, true
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.RawText, true
	}
	return "", false
}
