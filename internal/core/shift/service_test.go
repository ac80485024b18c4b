package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeShiftRepo struct {
	shifts map[string]*Shift
	order  []string
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*Shift)}
}

func (r *fakeShiftRepo) Create(_ context.Context, s *Shift) (*Shift, error) {
	r.shifts[s.ID] = s.Clone()
	r.order = append(r.order, s.ID)
	return s.Clone(), nil
}

func (r *fakeShiftRepo) Update(_ context.Context, s *Shift) (*Shift, error) {
	if _, ok := r.shifts[s.ID]; !ok {
		return nil, ErrShiftNotFound
	}
	r.shifts[s.ID] = s.Clone()
	return s.Clone(), nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shifts[id]; !ok {
		return ErrShiftNotFound
	}
	delete(r.shifts, id)
	r.removeFromOrder(id)
	return nil
}

func (r *fakeShiftRepo) FindByID(_ context.Context, id string) (*Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, ErrShiftNotFound
	}
	return s.Clone(), nil
}

func (r *fakeShiftRepo) List(_ context.Context, filter ListShiftsFilter) ([]*Shift, error) {
	out := []*Shift{}
	for _, id := range r.order {
		if s := r.shifts[id]; filter.Match(s) {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

func (r *fakeShiftRepo) DeleteByEmployee(_ context.Context, employeeID string) (int, error) {
	removed := 0
	for _, id := range append([]string(nil), r.order...) {
		if r.shifts[id].EmployeeID == employeeID {
			delete(r.shifts, id)
			r.removeFromOrder(id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeShiftRepo) removeFromOrder(id string) {
	for idx, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			return
		}
	}
}

func newTestService(t *testing.T) (*Service, *stubClock) {
	t.Helper()
	clk := &stubClock{now: time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)}
	return NewService(newFakeShiftRepo(), clk, nil, prague), clk
}

func mustCreate(t *testing.T, svc *Service, in CreateShiftInput) *Shift {
	t.Helper()
	created, err := svc.CreateShift(context.Background(), in)
	require.NoError(t, err)
	return created
}

func TestService_CreateShift_Defaults(t *testing.T) {
	t.Parallel()

	svc, clk := newTestService(t)
	created := mustCreate(t, svc, CreateShiftInput{
		EmployeeID:   " emp-1 ",
		DepartmentID: "front-desk",
		Date:         "2025-03-05",
		StartTime:    "08:00",
		EndTime:      "16:00",
		BreakMinutes: 60,
	})

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Equal(t, StatusScheduled, created.Status)
	assert.True(t, created.CreatedAt.Equal(clk.now))
	assert.True(t, created.UpdatedAt.Equal(clk.now))
}

func TestService_CreateShift_IDsAreDistinctAndOrdered(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	first := mustCreate(t, svc, CreateShiftInput{Date: "2025-03-05", StartTime: "08:00", EndTime: "09:00"})
	second := mustCreate(t, svc, CreateShiftInput{Date: "2025-03-05", StartTime: "08:00", EndTime: "09:00"})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Less(t, first.ID, second.ID)
}

func TestService_CreateShift_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateShift(ctx, CreateShiftInput{Date: "05.03.2025", StartTime: "08:00", EndTime: "16:00"})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.CreateShift(ctx, CreateShiftInput{Date: "2025-03-05", StartTime: "8h", EndTime: "16:00"})
	require.ErrorIs(t, err, ErrInvalidClock)

	bogus := Status("paused")
	_, err = svc.CreateShift(ctx, CreateShiftInput{Date: "2025-03-05", StartTime: "08:00", EndTime: "16:00", Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_UpdateShift_PatchAndUnknown(t *testing.T) {
	t.Parallel()

	svc, clk := newTestService(t)
	created := mustCreate(t, svc, CreateShiftInput{EmployeeID: "emp-1", Date: "2025-03-05", StartTime: "08:00", EndTime: "16:00"})

	clk.now = clk.now.Add(time.Minute)
	inProgress := StatusInProgress
	end := "17:00"
	updated, err := svc.UpdateShift(context.Background(), UpdateShiftInput{ID: created.ID, Status: &inProgress, EndTime: &end})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, StatusInProgress, updated.Status)
	assert.Equal(t, "17:00", updated.EndTime)
	assert.Equal(t, "08:00", updated.StartTime)
	assert.True(t, updated.UpdatedAt.Equal(clk.now))

	missing, err := svc.UpdateShift(context.Background(), UpdateShiftInput{ID: "nope", EndTime: &end})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestService_DeleteShift(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	created := mustCreate(t, svc, CreateShiftInput{Date: "2025-03-05", StartTime: "08:00", EndTime: "16:00"})

	require.NoError(t, svc.DeleteShift(context.Background(), DeleteShiftInput{ID: created.ID}))
	require.NoError(t, svc.DeleteShift(context.Background(), DeleteShiftInput{ID: created.ID}))

	_, err := svc.GetShift(context.Background(), GetShiftInput{ID: created.ID})
	require.ErrorIs(t, err, ErrShiftNotFound)

	require.ErrorIs(t, svc.DeleteShift(context.Background(), DeleteShiftInput{}), ErrInvalidID)
}

func TestService_ShiftsForDate_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e1", Date: "2025-03-05", StartTime: "08:00", EndTime: "16:00"})
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e2", Date: "2025-03-05", StartTime: "14:00", EndTime: "22:00"})
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e1", Date: "2025-03-06", StartTime: "08:00", EndTime: "16:00"})

	for _, at := range []time.Time{
		time.Date(2025, 3, 5, 0, 0, 0, 0, prague),
		time.Date(2025, 3, 5, 23, 59, 59, 0, prague),
		time.Date(2025, 3, 4, 23, 30, 0, 0, time.UTC),
	} {
		found, err := svc.ShiftsForDate(context.Background(), at)
		require.NoError(t, err)
		require.Len(t, found, 2, "at %v", at)
		for _, s := range found {
			assert.Equal(t, "2025-03-05", s.Date)
		}
	}
}

func TestService_ShiftsForEmployeeInRange_Inclusive(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	for _, date := range []string{"2025-03-02", "2025-03-03", "2025-03-06", "2025-03-09", "2025-03-10"} {
		mustCreate(t, svc, CreateShiftInput{EmployeeID: "e1", Date: date, StartTime: "08:00", EndTime: "16:00"})
	}
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e2", Date: "2025-03-04", StartTime: "08:00", EndTime: "16:00"})

	start := time.Date(2025, 3, 3, 0, 0, 0, 0, prague)
	end := time.Date(2025, 3, 9, 0, 0, 0, 0, prague)

	found, err := svc.ShiftsForEmployeeInRange(context.Background(), "e1", start, end)
	require.NoError(t, err)

	dates := make([]string, 0, len(found))
	for _, s := range found {
		dates = append(dates, s.Date)
	}
	assert.Equal(t, []string{"2025-03-03", "2025-03-06", "2025-03-09"}, dates)

	unknown, err := svc.ShiftsForEmployeeInRange(context.Background(), "nobody", start, end)
	require.NoError(t, err)
	assert.Empty(t, unknown)
}

func TestService_ListShifts_RejectsInvertedRange(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.ListShifts(context.Background(), ListShiftsFilter{From: "2025-03-09", To: "2025-03-03"})
	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestService_WeekSchedule(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e1", Date: "2025-03-03", StartTime: "08:00", EndTime: "16:00", BreakMinutes: 60})
	mustCreate(t, svc, CreateShiftInput{EmployeeID: "e1", Date: "2025-03-12", StartTime: "08:00", EndTime: "16:00"})

	ref := time.Date(2025, 3, 5, 12, 0, 0, 0, prague)
	ws, err := svc.WeekSchedule(context.Background(), ref, []string{"e1", "e2"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", ws.Start)
	require.Len(t, ws.Employees, 2)
	assert.Equal(t, 1, ws.Employees[0].ShiftsCount)
	assert.InDelta(t, 7.0, ws.Employees[0].TotalHours, 1e-9)

	next, err := svc.WeekSchedule(context.Background(), ShiftWeek(ref, 1), []string{"e1"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", next.Start)
	assert.Equal(t, 1, next.Employees[0].ShiftsCount)
}
