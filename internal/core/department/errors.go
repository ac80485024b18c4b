package department

import "errors"

var (
	// ErrDepartmentNotFound は部署が存在しない場合に返却されます。
	ErrDepartmentNotFound = errors.New("department: not found")
	// ErrIDAlreadyExists は部署 ID 重複時に返却されます。
	ErrIDAlreadyExists = errors.New("department: id already exists")
	// ErrInvalidID は ID が不正な場合に返却されます。
	ErrInvalidID = errors.New("department: invalid id")
	// ErrInvalidName は部署名が不正な場合に返却されます。
	ErrInvalidName = errors.New("department: invalid name")
	// ErrInvalidBudget は予算が負の場合に返却されます。
	ErrInvalidBudget = errors.New("department: invalid budget")
)
