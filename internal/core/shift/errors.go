package shift

import "errors"

var (
	ErrInvalidID        = errors.New("shift: invalid id")
	ErrInvalidStatus    = errors.New("shift: invalid status")
	ErrInvalidDate      = errors.New("shift: invalid date, use YYYY-MM-DD")
	ErrInvalidClock     = errors.New("shift: invalid time, use HH:MM")
	ErrInvalidDateRange = errors.New("shift: end date before start date")
	ErrInvalidTimeRange = errors.New("shift: end time before start time without crosses_midnight")
	ErrShiftNotFound    = errors.New("shift: not found")
)
