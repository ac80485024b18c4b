package memory

import (
	"context"

	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

// ShiftRepository は Store 上のシフトコレクションです。
type ShiftRepository struct {
	store *Store
}

// Create はシフトを追加します。
func (r *ShiftRepository) Create(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	var created *shift.Shift
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.shifts[s.ID]; ok {
			return shift.ErrInvalidID
		}
		r.store.shifts[s.ID] = s.Clone()
		r.store.shiftOrder = append(r.store.shiftOrder, s.ID)
		created = s.Clone()
		return nil
	})
	return created, err
}

// Update はシフトを置き換えます。
func (r *ShiftRepository) Update(ctx context.Context, s *shift.Shift) (*shift.Shift, error) {
	var updated *shift.Shift
	err := r.store.write(ctx, func() error {
		if _, ok := r.store.shifts[s.ID]; !ok {
			return shift.ErrShiftNotFound
		}
		r.store.shifts[s.ID] = s.Clone()
		updated = s.Clone()
		return nil
	})
	return updated, err
}

// Delete はシフトを削除します。
func (r *ShiftRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.shifts[id]; !ok {
			return shift.ErrShiftNotFound
		}
		delete(r.store.shifts, id)
		r.store.shiftOrder = removeID(r.store.shiftOrder, id)
		return nil
	})
}

// FindByID はシフトを取得します。
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*shift.Shift, error) {
	var found *shift.Shift
	err := r.store.read(ctx, func() error {
		s, ok := r.store.shifts[id]
		if !ok {
			return shift.ErrShiftNotFound
		}
		found = s.Clone()
		return nil
	})
	return found, err
}

// List は登録順でフィルタに一致するシフトを返します。
func (r *ShiftRepository) List(ctx context.Context, filter shift.ListShiftsFilter) ([]*shift.Shift, error) {
	var out []*shift.Shift
	err := r.store.read(ctx, func() error {
		out = []*shift.Shift{}
		for _, id := range r.store.shiftOrder {
			if s := r.store.shifts[id]; filter.Match(s) {
				out = append(out, s.Clone())
			}
		}
		return nil
	})
	return out, err
}

// DeleteByEmployee は社員のシフトをすべて削除し、削除件数を返します。
func (r *ShiftRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int, error) {
	removed := 0
	err := r.store.write(ctx, func() error {
		kept := r.store.shiftOrder[:0]
		for _, id := range r.store.shiftOrder {
			if r.store.shifts[id].EmployeeID == employeeID {
				delete(r.store.shifts, id)
				removed++
				continue
			}
			kept = append(kept, id)
		}
		r.store.shiftOrder = kept
		return nil
	})
	return removed, err
}
