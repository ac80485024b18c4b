package employee

import "errors"

var (
	ErrInvalidID             = errors.New("employee: invalid id")
	ErrInvalidStatus         = errors.New("employee: invalid status")
	ErrInvalidEmploymentType = errors.New("employee: invalid employment type")
	ErrInvalidCertification  = errors.New("employee: invalid certification status")
	ErrInvalidWeekday        = errors.New("employee: invalid weekday in work schedule")
	ErrEmployeeNotFound      = errors.New("employee: not found")
)
