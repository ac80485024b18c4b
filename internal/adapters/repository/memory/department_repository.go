package memory

import (
	"context"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
)

// DepartmentRepository は Store 上の部署コレクションです。
type DepartmentRepository struct {
	store *Store
}

// Create は部署を追加します。
func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) (*department.Department, error) {
	var created *department.Department
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.departments[d.ID]; ok {
			return department.ErrIDAlreadyExists
		}
		r.store.departments[d.ID] = d.Clone()
		r.store.departmentOrder = append(r.store.departmentOrder, d.ID)
		created = d.Clone()
		return nil
	})
	return created, err
}

// Update は部署を置き換えます。
func (r *DepartmentRepository) Update(ctx context.Context, d *department.Department) (*department.Department, error) {
	var updated *department.Department
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.departments[d.ID]; !ok {
			return department.ErrDepartmentNotFound
		}
		r.store.departments[d.ID] = d.Clone()
		updated = d.Clone()
		return nil
	})
	return updated, err
}

// Delete は部署を削除します。参照している社員とシフトはそのまま残ります。
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.departments[id]; !ok {
			return department.ErrDepartmentNotFound
		}
		delete(r.store.departments, id)
		r.store.departmentOrder = removeID(r.store.departmentOrder, id)
		return nil
	})
}

// FindByID は部署を取得します。
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	var found *department.Department
	err := r.store.read(ctx, func() error {
		d, ok := r.store.departments[id]
		if !ok {
			return department.ErrDepartmentNotFound
		}
		found = d.Clone()
		return nil
	})
	return found, err
}

// List は登録順で部署を返します。
func (r *DepartmentRepository) List(ctx context.Context) ([]*department.Department, error) {
	var out []*department.Department
	err := r.store.read(ctx, func() error {
		out = make([]*department.Department, 0, len(r.store.departmentOrder))
		for _, id := range r.store.departmentOrder {
			out = append(out, r.store.departments[id].Clone())
		}
		return nil
	})
	return out, err
}
