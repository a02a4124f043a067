package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var lockErr *schedule.LockedDayError
	if errors.As(err, &lockErr) {
		return NewCLIError(
			lockErr.Error(),
			fmt.Sprintf("Unlock the day first with 'studyflow lock %s'", lockErr.Date),
			err,
		)
	}

	var capErr *schedule.NoCapacityError
	if errors.As(err, &capErr) {
		return NewCLIError(
			capErr.Error(),
			"Raise daily_study_hours or horizon_days in settings.yaml, or free up locked days",
			err,
		)
	}

	switch {
	case errors.Is(err, schedule.ErrNotFound):
		return NewCLIError("not found", "Run 'studyflow status <date>' to list the sessions on a day", err)
	case errors.Is(err, schedule.ErrInvalidTime):
		return NewCLIError("invalid date or time", "Dates are YYYY-MM-DD and times are HH:MM, and both must be in the future", err)
	case errors.Is(err, schedule.ErrLockedDay):
		return NewCLIError("day is locked", "Unlock it first with 'studyflow lock <date>'", err)
	}

	return err
}
