package ml

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when a row does not have the width an
	// artifact was fitted on.
	ErrShapeMismatch = errors.New("feature shape mismatch")

	// ErrUnsupportedType is returned for an artifact "type" this package
	// cannot decode.
	ErrUnsupportedType = errors.New("unsupported artifact type")

	ErrModelNotTrained = errors.New("model not trained")
)

// ArtifactLoadError reports a scaler or classifier file that is missing,
// unreadable or corrupt.
type ArtifactLoadError struct {
	Path string
	Err  error
}

func (e *ArtifactLoadError) Error() string {
	return fmt.Sprintf("load artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error {
	return e.Err
}

func shapeError(want, got int) error {
	return fmt.Errorf("%w: expected %d features, got %d", ErrShapeMismatch, want, got)
}
