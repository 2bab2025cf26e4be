package fraud

import (
	"errors"
	"fmt"

	"fraudcheck/ml"
)

var (
	ErrRequired     = errors.New("value is required")
	ErrNotNumeric   = errors.New("value is not numeric")
	ErrOutOfRange   = errors.New("value out of range")
	ErrUnknownLabel = errors.New("unknown option")
)

// ErrorKind names the three ways an analysis can fail.
type ErrorKind string

const (
	KindNone         ErrorKind = ""
	KindArtifactLoad ErrorKind = "artifact_load"
	KindInputParse   ErrorKind = "input_parse"
	KindInference    ErrorKind = "inference"
)

// InputError is a rejected form field.
type InputError struct {
	Field string
	Value string
	Err   error
}

func (e *InputError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// InferenceError wraps a scaler or classifier failure. Stage is "setup",
// "transform" or "predict".
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// Kind classifies err. Errors that are none of the three kinds report KindNone.
func Kind(err error) ErrorKind {
	var (
		loadErr      *ml.ArtifactLoadError
		inputErr     *InputError
		inferenceErr *InferenceError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &loadErr):
		return KindArtifactLoad
	case errors.As(err, &inputErr):
		return KindInputParse
	case errors.As(err, &inferenceErr):
		return KindInference
	default:
		return KindNone
	}
}

func inputError(field, value string, err error) *InputError {
	return &InputError{Field: field, Value: value, Err: err}
}
