package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidInput           = errors.New("invalid input")
	ErrTransactionWriteFailed = errors.New("transaction write failed")
	ErrPartialEnrollment      = errors.New("partial enrollment failure")
	ErrProgressConflict       = errors.New("progress update conflict")
)

var (
	ErrCourseNotFound      = fmt.Errorf("course %w", ErrNotFound)
	ErrProgressNotFound    = fmt.Errorf("course progress %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)
	ErrSectionNotFound     = fmt.Errorf("section %w", ErrNotFound)
	ErrChapterNotFound     = fmt.Errorf("chapter %w", ErrNotFound)

	ErrTransactionExists = errors.New("transaction already exists")
	ErrVersionConflict   = errors.New("stale document version")
)

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type EnrollmentStep string

const (
	StepProgressSeed     EnrollmentStep = "progress_seed"
	StepEnrollmentAppend EnrollmentStep = "enrollment_append"
)

type StepFailure struct {
	Step EnrollmentStep
	Err  error
}

// PartialEnrollmentError: транзакция записана, но часть последующих шагов не выполнилась.
type PartialEnrollmentError struct {
	UserID        string
	CourseID      string
	TransactionID string
	Failures      []StepFailure
}

func (e *PartialEnrollmentError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Step, f.Err))
	}
	return fmt.Sprintf("partial enrollment failure for transaction %s: %s", e.TransactionID, strings.Join(parts, "; "))
}

func (e *PartialEnrollmentError) Is(target error) bool {
	return target == ErrPartialEnrollment
}

func (e *PartialEnrollmentError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

func (e *PartialEnrollmentError) Steps() []EnrollmentStep {
	steps := make([]EnrollmentStep, 0, len(e.Failures))
	for _, f := range e.Failures {
		steps = append(steps, f.Step)
	}
	return steps
}
