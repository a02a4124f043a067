package schedule

import (
	"errors"
	"fmt"
)

// Domain errors for schedule mutations.
var (
	// ErrNotFound indicates no plan or session matches the given key.
	ErrNotFound = errors.New("session not found")

	// ErrLockedDay indicates a mutation was attempted on a locked day.
	ErrLockedDay = errors.New("day is locked")

	// ErrInvalidTime indicates a reschedule target is malformed or in the past.
	ErrInvalidTime = errors.New("invalid time")

	// ErrNoCapacity indicates redistribution could not fully place an item.
	ErrNoCapacity = errors.New("no capacity available")
)

// NotFoundError carries the composite key that failed to resolve.
type NotFoundError struct {
	Date          string
	SessionNumber int
	TaskID        string
}

func (e *NotFoundError) Error() string {
	if e.TaskID == "" {
		return fmt.Sprintf("no session %d on %s", e.SessionNumber, e.Date)
	}
	return fmt.Sprintf("no session %d for task %s on %s", e.SessionNumber, e.TaskID, e.Date)
}

// Is allows errors.Is to work with NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LockedDayError reports which day blocked the mutation.
type LockedDayError struct {
	Date string
}

func (e *LockedDayError) Error() string {
	return "day " + e.Date + " is locked"
}

// Is allows errors.Is to work with LockedDayError.
func (e *LockedDayError) Is(target error) bool {
	return target == ErrLockedDay
}

// InvalidTimeError reports a malformed or past-dated reschedule target.
type InvalidTimeError struct {
	Value  string
	Reason string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Value, e.Reason)
}

// Is allows errors.Is to work with InvalidTimeError.
func (e *InvalidTimeError) Is(target error) bool {
	return target == ErrInvalidTime
}

// NoCapacityError reports an item redistribution could not place. It is
// surfaced per item in the placement report, never as a fatal error.
type NoCapacityError struct {
	TaskID         string
	SourceDate     string
	RemainingHours float64
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("no future capacity for task %s missed on %s (%.2gh remaining)", e.TaskID, e.SourceDate, e.RemainingHours)
}

// Is allows errors.Is to work with NoCapacityError.
func (e *NoCapacityError) Is(target error) bool {
	return target == ErrNoCapacity
}
