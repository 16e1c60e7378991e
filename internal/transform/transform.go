package transform

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

// ProjectionTransform defines the interface for all projection what-if transforms.
// Transforms are composable operations that modify a projection input in predictable ways,
// enabling scenario comparison and interactive exploration.
type ProjectionTransform interface {
	// Apply returns a modified copy of base. The base input is never changed.
	Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error)

	// Name returns a short identifier for this transform (e.g., "delay_retirement").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base domain.EPFProjectionInput) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base domain.EPFProjectionInput, transforms []ProjectionTransform) (domain.EPFProjectionInput, error) {
	current := copyInput(base)

	for i, transform := range transforms {
		if transform == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// Describe returns the descriptions of transforms in order
func Describe(transforms []ProjectionTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		if t != nil {
			out = append(out, t.Description())
		}
	}
	return out
}

// copyInput detaches the optional employer rate pointer so edits never reach the caller
func copyInput(in domain.EPFProjectionInput) domain.EPFProjectionInput {
	out := in
	if in.EmployerContributionRate != nil {
		rate := *in.EmployerContributionRate
		out.EmployerContributionRate = &rate
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
