package shift

import "context"

// Repository はシフト永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, shift *Shift) (*Shift, error)
	Update(ctx context.Context, shift *Shift) (*Shift, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Shift, error)
	// List は登録順で条件に一致するシフトを返します。
	List(ctx context.Context, filter ListShiftsFilter) ([]*Shift, error)
	DeleteByEmployee(ctx context.Context, employeeID string) (int, error)
}

// ListShiftsFilter は一覧取得用フィルタです。日付は YYYY-MM-DD の文字列比較で両端を含みます。
type ListShiftsFilter struct {
	EmployeeID   string
	DepartmentID string
	From         string
	To           string
	Status       *Status
}

// Match はシフトがフィルタ条件に一致するかを判定します。
func (f ListShiftsFilter) Match(s *Shift) bool {
	if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
		return false
	}
	if f.DepartmentID != "" && s.DepartmentID != f.DepartmentID {
		return false
	}
	if f.From != "" && s.Date < f.From {
		return false
	}
	if f.To != "" && s.Date > f.To {
		return false
	}
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	return true
}
