package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/property"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

type stubEmployeeUseCase struct {
	employee.UseCase

	createCalled bool
	createInput  employee.CreateEmployeeInput
	createOut    *employee.Employee

	updateInput employee.UpdateEmployeeInput
	updateOut   *employee.Employee

	getOut *employee.Employee
	getErr error

	listInput employee.ListEmployeesInput
	listOut   []*employee.Employee
}

func (s *stubEmployeeUseCase) CreateEmployee(_ context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
	s.createCalled = true
	s.createInput = in
	return s.createOut, nil
}

func (s *stubEmployeeUseCase) GetEmployee(_ context.Context, _ employee.GetEmployeeInput) (*employee.Employee, error) {
	return s.getOut, s.getErr
}

func (s *stubEmployeeUseCase) ListEmployees(_ context.Context, in employee.ListEmployeesInput) ([]*employee.Employee, error) {
	s.listInput = in
	return s.listOut, nil
}

func (s *stubEmployeeUseCase) UpdateEmployee(_ context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
	s.updateInput = in
	return s.updateOut, nil
}

type stubDepartmentUseCase struct {
	department.UseCase

	known map[string]bool
}

func (s *stubDepartmentUseCase) ListDepartments(_ context.Context) ([]*department.Department, error) {
	out := make([]*department.Department, 0, len(s.known))
	for id := range s.known {
		out = append(out, &department.Department{ID: id, Name: department.DisplayName(id)})
	}
	return out, nil
}

func (s *stubDepartmentUseCase) GetDepartment(_ context.Context, in department.GetDepartmentInput) (*department.Department, error) {
	if !s.known[in.ID] {
		return nil, department.ErrDepartmentNotFound
	}
	return &department.Department{ID: in.ID, Name: department.DisplayName(in.ID)}, nil
}

type stubShiftUseCase struct {
	shift.UseCase

	createCalled bool
	createInput  shift.CreateShiftInput

	getOut *shift.Shift
	getErr error

	updateCalled bool

	weekRef time.Time
	weekIDs []string
}

func (s *stubShiftUseCase) Location() *time.Location {
	return prague
}

func (s *stubShiftUseCase) CreateShift(_ context.Context, in shift.CreateShiftInput) (*shift.Shift, error) {
	s.createCalled = true
	s.createInput = in
	return &shift.Shift{ID: "shift-1", EmployeeID: in.EmployeeID, DepartmentID: in.DepartmentID, Date: in.Date, StartTime: in.StartTime, EndTime: in.EndTime, Status: shift.StatusScheduled}, nil
}

func (s *stubShiftUseCase) GetShift(_ context.Context, _ shift.GetShiftInput) (*shift.Shift, error) {
	return s.getOut, s.getErr
}

func (s *stubShiftUseCase) UpdateShift(_ context.Context, in shift.UpdateShiftInput) (*shift.Shift, error) {
	s.updateCalled = true
	return &shift.Shift{ID: in.ID}, nil
}

func (s *stubShiftUseCase) WeekSchedule(_ context.Context, ref time.Time, ids []string) (*shift.WeekSchedule, error) {
	s.weekRef = ref
	s.weekIDs = ids
	dates := shift.WeekDates(ref, prague)
	return shift.BuildWeekSchedule(dates, ids, nil), nil
}

var prague = time.FixedZone("CET", 60*60)

func newStaffHandler(emps *stubEmployeeUseCase, shifts *stubShiftUseCase) *StaffGrpcHandler {
	depts := &stubDepartmentUseCase{known: map[string]bool{department.FrontDesk: true, department.Housekeeping: true}}
	h := NewStaffGrpcHandler(emps, shifts, depts, nil)
	h.now = func() time.Time { return time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC) }
	return h
}

func mustStruct(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("structpb.NewStruct: %v", err)
	}
	return s
}

func assertCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	st, ok := status.FromError(err)
	if !ok || st.Code() != want {
		t.Fatalf("expected %v, got %v (%v)", want, st.Code(), err)
	}
}

func validEmployeeRequest() map[string]any {
	return map[string]any{
		"first_name":    "Pavel",
		"last_name":     "Novák",
		"email":         "pavel.novak@hotel.cz",
		"position":      "Recepční",
		"department_id": department.FrontDesk,
		"status":        "active",
		"skills":        []any{"Opera PMS"},
	}
}

func TestStaffGrpcHandler_CreateEmployee_Success(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)
	emps := &stubEmployeeUseCase{createOut: &employee.Employee{
		ID:           "emp-1",
		EmployeeCode: "EMP001",
		FirstName:    "Pavel",
		LastName:     "Novák",
		DepartmentID: department.FrontDesk,
		Status:       employee.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}}
	h := newStaffHandler(emps, &stubShiftUseCase{})

	resp, err := h.CreateEmployee(context.Background(), mustStruct(t, validEmployeeRequest()))
	if err != nil {
		t.Fatalf("CreateEmployee returned error: %v", err)
	}

	if emps.createInput.Status == nil || *emps.createInput.Status != employee.StatusActive {
		t.Errorf("expected status to be parsed, got %+v", emps.createInput.Status)
	}
	if len(emps.createInput.Skills) != 1 || emps.createInput.Skills[0] != "Opera PMS" {
		t.Errorf("expected skills to pass through, got %v", emps.createInput.Skills)
	}

	var out employeeResponse
	if err := decode(resp, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Employee == nil || out.Employee.EmployeeCode != "EMP001" {
		t.Fatalf("expected employee code EMP001, got %+v", out.Employee)
	}
	if out.Employee.DepartmentName != "Recepce" {
		t.Errorf("expected display name Recepce, got %s", out.Employee.DepartmentName)
	}
	if out.Employee.FullName != "Pavel Novák" {
		t.Errorf("expected full name, got %s", out.Employee.FullName)
	}
}

func TestStaffGrpcHandler_CreateEmployee_RequiredFields(t *testing.T) {
	t.Parallel()

	for _, missing := range []string{"first_name", "last_name", "email", "position", "department_id"} {
		missing := missing
		t.Run(missing, func(t *testing.T) {
			t.Parallel()

			emps := &stubEmployeeUseCase{}
			h := newStaffHandler(emps, &stubShiftUseCase{})
			req := validEmployeeRequest()
			req[missing] = "  "

			_, err := h.CreateEmployee(context.Background(), mustStruct(t, req))
			assertCode(t, err, codes.InvalidArgument)
			if emps.createCalled {
				t.Fatalf("use case must not be called when %s is blank", missing)
			}
		})
	}
}

func TestStaffGrpcHandler_CreateEmployee_RejectsUnknownDepartmentAndBadEmail(t *testing.T) {
	t.Parallel()

	h := newStaffHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{})

	req := validEmployeeRequest()
	req["department_id"] = "casino"
	_, err := h.CreateEmployee(context.Background(), mustStruct(t, req))
	assertCode(t, err, codes.InvalidArgument)

	req = validEmployeeRequest()
	req["email"] = "not-an-email"
	_, err = h.CreateEmployee(context.Background(), mustStruct(t, req))
	assertCode(t, err, codes.InvalidArgument)

	req = validEmployeeRequest()
	req["status"] = "sleeping"
	_, err = h.CreateEmployee(context.Background(), mustStruct(t, req))
	assertCode(t, err, codes.InvalidArgument)
}

func TestStaffGrpcHandler_UpdateEmployee_UnknownReturnsNull(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{}
	h := newStaffHandler(emps, &stubShiftUseCase{})

	resp, err := h.UpdateEmployee(context.Background(), mustStruct(t, map[string]any{
		"id":     "missing",
		"phone":  "+420 777 000 111",
		"skills": []any{},
	}))
	if err != nil {
		t.Fatalf("UpdateEmployee returned error: %v", err)
	}
	if emps.updateInput.Phone == nil || *emps.updateInput.Phone != "+420 777 000 111" {
		t.Errorf("expected phone pointer, got %+v", emps.updateInput.Phone)
	}
	if !emps.updateInput.SkillsSet {
		t.Errorf("expected explicit empty skills to be marked as set")
	}
	if emps.updateInput.FirstName != nil {
		t.Errorf("expected absent first_name to stay nil")
	}

	value, ok := resp.GetFields()["employee"]
	if !ok {
		t.Fatalf("expected employee key in response")
	}
	if _, isNull := value.GetKind().(*structpb.Value_NullValue); !isNull {
		t.Fatalf("expected null employee, got %v", value)
	}
}

func TestStaffGrpcHandler_UpdateEmployee_RejectsBlankRequiredField(t *testing.T) {
	t.Parallel()

	h := newStaffHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{})
	_, err := h.UpdateEmployee(context.Background(), mustStruct(t, map[string]any{"id": "emp-1", "last_name": ""}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestStaffGrpcHandler_CreateShift_DefaultsDepartmentFromEmployee(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{getOut: &employee.Employee{ID: "emp-1", DepartmentID: department.Housekeeping}}
	shifts := &stubShiftUseCase{}
	h := newStaffHandler(emps, shifts)

	_, err := h.CreateShift(context.Background(), mustStruct(t, map[string]any{
		"employee_id":    "emp-1",
		"date":           "2025-03-05",
		"start_time":     "07:00",
		"end_time":       "15:00",
		"break_duration": 30,
	}))
	if err != nil {
		t.Fatalf("CreateShift returned error: %v", err)
	}
	if shifts.createInput.DepartmentID != department.Housekeeping {
		t.Errorf("expected department from employee, got %s", shifts.createInput.DepartmentID)
	}
	if shifts.createInput.BreakMinutes != 30 {
		t.Errorf("expected break 30, got %d", shifts.createInput.BreakMinutes)
	}
}

func TestStaffGrpcHandler_CreateShift_Validation(t *testing.T) {
	t.Parallel()

	base := func() map[string]any {
		return map[string]any{
			"employee_id": "emp-1",
			"date":        "2025-03-05",
			"start_time":  "22:00",
			"end_time":    "06:00",
		}
	}

	cases := []struct {
		name   string
		mutate func(map[string]any)
		emps   *stubEmployeeUseCase
	}{
		{"overnight without flag", func(map[string]any) {}, &stubEmployeeUseCase{getOut: &employee.Employee{ID: "emp-1"}}},
		{"negative break", func(m map[string]any) { m["crosses_midnight"] = true; m["break_duration"] = -5 }, &stubEmployeeUseCase{getOut: &employee.Employee{ID: "emp-1"}}},
		{"missing date", func(m map[string]any) { m["crosses_midnight"] = true; delete(m, "date") }, &stubEmployeeUseCase{getOut: &employee.Employee{ID: "emp-1"}}},
		{"unknown employee", func(m map[string]any) { m["crosses_midnight"] = true }, &stubEmployeeUseCase{getErr: employee.ErrEmployeeNotFound}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			shifts := &stubShiftUseCase{}
			h := newStaffHandler(tc.emps, shifts)
			req := base()
			tc.mutate(req)

			_, err := h.CreateShift(context.Background(), mustStruct(t, req))
			assertCode(t, err, codes.InvalidArgument)
			if shifts.createCalled {
				t.Fatalf("use case must not be called")
			}
		})
	}
}

func TestStaffGrpcHandler_UpdateShift_ChecksMergedTimes(t *testing.T) {
	t.Parallel()

	shifts := &stubShiftUseCase{getOut: &shift.Shift{ID: "shift-1", StartTime: "22:00", EndTime: "06:00", CrossesMidnight: true}}
	h := newStaffHandler(&stubEmployeeUseCase{}, shifts)

	_, err := h.UpdateShift(context.Background(), mustStruct(t, map[string]any{"id": "shift-1", "crosses_midnight": false}))
	assertCode(t, err, codes.InvalidArgument)
	if shifts.updateCalled {
		t.Fatalf("update must not be applied")
	}

	_, err = h.UpdateShift(context.Background(), mustStruct(t, map[string]any{"id": "shift-1", "end_time": "07:00"}))
	if err != nil {
		t.Fatalf("UpdateShift returned error: %v", err)
	}
	if !shifts.updateCalled {
		t.Fatalf("expected update to be applied")
	}
}

func TestStaffGrpcHandler_UpdateShift_DepartmentMustBeKnown(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		department string
	}{
		{"blank", ""},
		{"whitespace", "  "},
		{"unknown", "parking"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			shifts := &stubShiftUseCase{}
			h := newStaffHandler(&stubEmployeeUseCase{}, shifts)

			_, err := h.UpdateShift(context.Background(), mustStruct(t, map[string]any{"id": "shift-1", "department_id": tc.department}))
			assertCode(t, err, codes.InvalidArgument)
			if shifts.updateCalled {
				t.Fatalf("update must not be applied")
			}
		})
	}

	shifts := &stubShiftUseCase{}
	h := newStaffHandler(&stubEmployeeUseCase{}, shifts)
	if _, err := h.UpdateShift(context.Background(), mustStruct(t, map[string]any{"id": "shift-1", "department_id": department.Housekeeping})); err != nil {
		t.Fatalf("UpdateShift returned error: %v", err)
	}
	if !shifts.updateCalled {
		t.Fatalf("expected update to be applied")
	}
}

func TestStaffGrpcHandler_UpdateShift_UnknownReturnsNull(t *testing.T) {
	t.Parallel()

	shifts := &stubShiftUseCase{getErr: shift.ErrShiftNotFound}
	h := newStaffHandler(&stubEmployeeUseCase{}, shifts)

	resp, err := h.UpdateShift(context.Background(), mustStruct(t, map[string]any{"id": "gone", "start_time": "09:00"}))
	if err != nil {
		t.Fatalf("UpdateShift returned error: %v", err)
	}
	var out shiftResponse
	if err := decode(resp, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Shift != nil {
		t.Fatalf("expected null shift, got %+v", out.Shift)
	}
}

func TestStaffGrpcHandler_WeekSchedule_OffsetAndDepartment(t *testing.T) {
	t.Parallel()

	emps := &stubEmployeeUseCase{listOut: []*employee.Employee{
		{ID: "emp-1", EmployeeCode: "EMP001", FirstName: "Pavel", LastName: "Novák"},
	}}
	shifts := &stubShiftUseCase{}
	h := newStaffHandler(emps, shifts)

	resp, err := h.WeekSchedule(context.Background(), mustStruct(t, map[string]any{
		"date":          "2025-03-05",
		"week_offset":   -1,
		"department_id": department.FrontDesk,
	}))
	if err != nil {
		t.Fatalf("WeekSchedule returned error: %v", err)
	}
	if emps.listInput.DepartmentID != department.FrontDesk {
		t.Errorf("expected department filter, got %q", emps.listInput.DepartmentID)
	}
	if got := shifts.weekRef.Format(shift.DateLayout); got != "2025-02-26" {
		t.Errorf("expected previous week reference, got %s", got)
	}

	var out weekScheduleResponse
	if err := decode(resp, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Week.Start != "2025-02-24" {
		t.Errorf("expected week start 2025-02-24, got %s", out.Week.Start)
	}
	if len(out.Week.Employees) != 1 || out.Week.Employees[0].EmployeeCode != "EMP001" {
		t.Fatalf("expected one row for EMP001, got %+v", out.Week.Employees)
	}
	if len(out.Week.Employees[0].Days) != 7 {
		t.Errorf("expected 7 day buckets, got %d", len(out.Week.Employees[0].Days))
	}
}

func TestStaffGrpcHandler_ShiftsForDate_RejectsBadDate(t *testing.T) {
	t.Parallel()

	h := newStaffHandler(&stubEmployeeUseCase{}, &stubShiftUseCase{})
	_, err := h.ShiftsForDate(context.Background(), mustStruct(t, map[string]any{"date": "05.03.2025"}))
	assertCode(t, err, codes.InvalidArgument)
}

func TestToStatusError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		want codes.Code
	}{
		{fmt.Errorf("email: %w", employee.ErrInvalidStatus), codes.InvalidArgument},
		{shift.ErrInvalidTimeRange, codes.InvalidArgument},
		{department.ErrInvalidBudget, codes.InvalidArgument},
		{property.ErrInvalidSettings, codes.InvalidArgument},
		{department.ErrIDAlreadyExists, codes.AlreadyExists},
		{employee.ErrEmployeeNotFound, codes.NotFound},
		{fmt.Errorf("id: %w", property.ErrPropertyNotFound), codes.NotFound},
		{property.ErrLastProperty, codes.FailedPrecondition},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{errors.New("boom"), codes.Internal},
	}

	for _, tc := range cases {
		st, _ := status.FromError(toStatusError(tc.err))
		if st.Code() != tc.want {
			t.Errorf("toStatusError(%v) = %v, want %v", tc.err, st.Code(), tc.want)
		}
	}

	if toStatusError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}
