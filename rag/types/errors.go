package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// FieldError a failure attached to the path of the offending field
type FieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

func (e FieldError) String() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return strings.Join(e.Path, ".") + ": " + e.Message
}

// ValidationError schema validation failed. Always recoverable: re-prompt and re-submit.
type ValidationError struct {
	Model  string       `json:"model"`
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.String()
	}
	return fmt.Sprintf("invalid %s: %s", e.Model, strings.Join(msgs, "; "))
}

// Field returns the first error whose path equals path
func (e *ValidationError) Field(path ...string) (FieldError, bool) {
	for _, fe := range e.Errors {
		if strings.Join(fe.Path, ".") == strings.Join(path, ".") {
			return fe, true
		}
	}
	return FieldError{}, false
}

// PolicyError a cross-entity rule was violated (subset, immutability, uniqueness)
type PolicyError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

func (e *PolicyError) Error() string {
	return FieldError{Path: e.Path, Message: e.Message}.String()
}

// NewPolicyError creates a policy error on field
func NewPolicyError(field string, format string, args ...interface{}) *PolicyError {
	return &PolicyError{Path: []string{field}, Message: fmt.Sprintf(format, args...)}
}

// FieldErrorsOf flattens validation and policy errors (including multierror
// aggregates) into field errors, so callers render both the same way.
func FieldErrorsOf(err error) []FieldError {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		res := []FieldError{}
		for _, e := range merr.Errors {
			res = append(res, FieldErrorsOf(e)...)
		}
		return res
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Errors
	}

	var perr *PolicyError
	if errors.As(err, &perr) {
		return []FieldError{{Path: perr.Path, Message: perr.Message}}
	}

	return []FieldError{{Path: []string{}, Message: err.Error()}}
}
