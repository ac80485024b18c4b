package memory

import (
	"context"

	"github.com/ogurasousui/hotel-pms/internal/core/employee"
)

// EmployeeRepository は Store 上の社員コレクションです。
type EmployeeRepository struct {
	store *Store
}

// Create は社員を追加します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var created *employee.Employee
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.employees[e.ID]; ok {
			return employee.ErrInvalidID
		}
		r.store.employees[e.ID] = e.Clone()
		r.store.employeeOrder = append(r.store.employeeOrder, e.ID)
		created = e.Clone()
		return nil
	})
	return created, err
}

// Update は社員を置き換えます。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	var updated *employee.Employee
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.employees[e.ID]; !ok {
			return employee.ErrEmployeeNotFound
		}
		r.store.employees[e.ID] = e.Clone()
		updated = e.Clone()
		return nil
	})
	return updated, err
}

// Delete は社員を削除します。シフトは ShiftRepository.DeleteByEmployee で削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.employees[id]; !ok {
			return employee.ErrEmployeeNotFound
		}
		delete(r.store.employees, id)
		r.store.employeeOrder = removeID(r.store.employeeOrder, id)
		return nil
	})
}

// FindByID は社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	var found *employee.Employee
	err := r.store.read(ctx, func() error {
		e, ok := r.store.employees[id]
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		found = e.Clone()
		return nil
	})
	return found, err
}

// List は登録順で社員を返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	var out []*employee.Employee
	err := r.store.read(ctx, func() error {
		out = make([]*employee.Employee, 0, len(r.store.employeeOrder))
		for _, id := range r.store.employeeOrder {
			out = append(out, r.store.employees[id].Clone())
		}
		return nil
	})
	return out, err
}

// NextSequence は社員コード用の番号を払い出します。削除後も番号は再利用しません。
func (r *EmployeeRepository) NextSequence(ctx context.Context) (int, error) {
	var next int
	err := r.store.write(ctx, func() error {
		r.store.employeeSeq++
		next = r.store.employeeSeq
		return nil
	})
	return next, err
}
