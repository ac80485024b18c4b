// Package memory はセッション単位のインメモリ実装を提供します。
// 社員・シフト・部署は 1 つのロックを共有し、社員削除とシフトの連鎖削除を同一トランザクションで行えます。
package memory

import (
	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

// Store は社員・シフト・部署のコレクションを保持します。
type Store struct {
	locker

	employees     map[string]*employee.Employee
	employeeOrder []string
	employeeSeq   int

	shifts     map[string]*shift.Shift
	shiftOrder []string

	departments     map[string]*department.Department
	departmentOrder []string
}

// Counts はコレクションごとの件数です。
type Counts struct {
	Employees   int
	Shifts      int
	Departments int
}

// NewStore は空の Store を生成します。
func NewStore() *Store {
	return &Store{
		employees:   make(map[string]*employee.Employee),
		shifts:      make(map[string]*shift.Shift),
		departments: make(map[string]*department.Department),
	}
}

// Counts は現在の件数を返します。
func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Employees:   len(s.employees),
		Shifts:      len(s.shifts),
		Departments: len(s.departments),
	}
}

// Employees は社員リポジトリを返します。
func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{store: s}
}

// Shifts はシフトリポジトリを返します。
func (s *Store) Shifts() *ShiftRepository {
	return &ShiftRepository{store: s}
}

// Departments は部署リポジトリを返します。
func (s *Store) Departments() *DepartmentRepository {
	return &DepartmentRepository{store: s}
}

func removeID(order []string, id string) []string {
	for i, existing := range order {
		if existing == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
