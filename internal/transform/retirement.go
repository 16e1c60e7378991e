package transform

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/domain"
)

// DelayRetirement pushes the retirement age back by a number of years.
// This is useful for exploring "work one more year" scenarios.
type DelayRetirement struct {
	Years int
}

func (dr *DelayRetirement) Name() string {
	return "delay_retirement"
}

func (dr *DelayRetirement) Description() string {
	return fmt.Sprintf("Delay retirement by %d years", dr.Years)
}

func (dr *DelayRetirement) Validate(base domain.EPFProjectionInput) error {
	if dr.Years < 0 {
		return NewTransformError(dr.Name(), "validate", fmt.Sprintf("years must be non-negative, got %d", dr.Years), nil)
	}
	if base.RetirementAge+dr.Years > base.TargetAge {
		return NewTransformError(dr.Name(), "validate",
			fmt.Sprintf("retirement age %d would pass target age %d", base.RetirementAge+dr.Years, base.TargetAge), nil)
	}
	return nil
}

func (dr *DelayRetirement) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	modified := copyInput(base)
	modified.RetirementAge += dr.Years
	return modified, nil
}

// SetRetirementAge sets the retirement age to an absolute value.
// Unlike DelayRetirement which is relative, this sets an exact age.
type SetRetirementAge struct {
	Age int
}

func (sra *SetRetirementAge) Name() string {
	return "set_retirement_age"
}

func (sra *SetRetirementAge) Description() string {
	return fmt.Sprintf("Retire at age %d", sra.Age)
}

func (sra *SetRetirementAge) Validate(base domain.EPFProjectionInput) error {
	if sra.Age < base.CurrentAge || sra.Age > base.TargetAge {
		return NewTransformError(sra.Name(), "validate",
			fmt.Sprintf("age %d must be between %d and %d", sra.Age, base.CurrentAge, base.TargetAge), nil)
	}
	return nil
}

func (sra *SetRetirementAge) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	modified := copyInput(base)
	modified.RetirementAge = sra.Age
	return modified, nil
}

// SetTargetAge changes the age the projection runs to
type SetTargetAge struct {
	Age int
}

func (sta *SetTargetAge) Name() string {
	return "set_target_age"
}

func (sta *SetTargetAge) Description() string {
	return fmt.Sprintf("Plan to age %d", sta.Age)
}

func (sta *SetTargetAge) Validate(base domain.EPFProjectionInput) error {
	if sta.Age < base.RetirementAge {
		return NewTransformError(sta.Name(), "validate",
			fmt.Sprintf("target age %d is before retirement age %d", sta.Age, base.RetirementAge), nil)
	}
	if sta.Age > 120 {
		return NewTransformError(sta.Name(), "validate", fmt.Sprintf("target age %d exceeds 120", sta.Age), nil)
	}
	return nil
}

func (sta *SetTargetAge) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	modified := copyInput(base)
	modified.TargetAge = sta.Age
	return modified, nil
}
