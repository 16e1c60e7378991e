package domain

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError names an input field and why it was rejected.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// ValidationErrors is every issue found in one input.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

// Fields returns the names of the offending fields.
func (e ValidationErrors) Fields() []string {
	out := make([]string, 0, len(e))
	for _, v := range e {
		out = append(out, v.Field)
	}
	return out
}

// AsValidationErrors extracts validation issues from err, if any.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var many ValidationErrors
	if errors.As(err, &many) {
		return many, true
	}
	var one ValidationError
	if errors.As(err, &one) {
		return ValidationErrors{one}, true
	}
	return nil, false
}

// Validator collects issues for one input before failing.
type Validator struct {
	issues ValidationErrors
}

// NewValidator returns an empty collector.
func NewValidator() *Validator {
	return &Validator{issues: make(ValidationErrors, 0, 4)}
}

// Add records an issue. Empty reasons are ignored.
func (v *Validator) Add(field, reason string) {
	if v == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return
	}
	v.issues = append(v.issues, ValidationError{Field: strings.TrimSpace(field), Reason: reason})
}

// NonNegative rejects values below zero.
func (v *Validator) NonNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.Add(field, "must not be negative")
	}
}

// Percent rejects rates outside [0, 100].
func (v *Validator) Percent(field string, d decimal.Decimal) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		v.Add(field, "must be between 0 and 100")
	}
}

// AtMost rejects values above max.
func (v *Validator) AtMost(field string, d, max decimal.Decimal) {
	if d.GreaterThan(max) {
		v.Add(field, "must not exceed "+max.String())
	}
}

// IntRange rejects integers outside [min, max].
func (v *Validator) IntRange(field string, n, min, max int) {
	if n < min || n > max {
		v.Add(field, "must be between "+itoa(min)+" and "+itoa(max))
	}
}

// HasIssues reports whether anything was recorded.
func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

// Err returns the sorted issues as an error, or nil.
func (v *Validator) Err() error {
	if !v.HasIssues() {
		return nil
	}
	out := make(ValidationErrors, len(v.issues))
	copy(out, v.issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field == out[j].Field {
			return out[i].Reason < out[j].Reason
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func itoa(n int) string {
	return decimal.NewFromInt(int64(n)).String()
}
