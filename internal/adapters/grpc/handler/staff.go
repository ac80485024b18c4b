package handler

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
	"github.com/ogurasousui/hotel-pms/internal/core/stats"
)

// StaffGrpcHandler は StaffService の gRPC 実装です。
// 必須項目や参照先の存在確認はここで行い、コアのサービスは呼び出し側を信頼します。
type StaffGrpcHandler struct {
	employees   employee.UseCase
	shifts      shift.UseCase
	departments department.UseCase
	stats       stats.UseCase
	now         func() time.Time
}

// NewStaffGrpcHandler は StaffGrpcHandler を生成します。
func NewStaffGrpcHandler(employees employee.UseCase, shifts shift.UseCase, departments department.UseCase, statsSvc stats.UseCase) *StaffGrpcHandler {
	return &StaffGrpcHandler{
		employees:   employees,
		shifts:      shifts,
		departments: departments,
		stats:       statsSvc,
		now:         time.Now,
	}
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return status.Errorf(codes.InvalidArgument, "%s is required", f.name)
		}
	}
	return nil
}

func rejectBlank(name string, value *string) error {
	if value != nil && strings.TrimSpace(*value) == "" {
		return status.Errorf(codes.InvalidArgument, "%s must not be empty", name)
	}
	return nil
}

func validateEmail(raw string) error {
	if _, err := mail.ParseAddress(raw); err != nil {
		return status.Errorf(codes.InvalidArgument, "email %q is invalid", raw)
	}
	return nil
}

func validateDate(name, raw string) error {
	if raw == "" {
		return nil
	}
	if _, err := time.Parse(shift.DateLayout, raw); err != nil {
		return status.Errorf(codes.InvalidArgument, "%s must be YYYY-MM-DD", name)
	}
	return nil
}

// parseDay は YYYY-MM-DD を loc の暦日として解釈します。空の場合は現在時刻です。
func (h *StaffGrpcHandler) parseDay(name, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return h.now(), nil
	}
	day, err := time.ParseInLocation(shift.DateLayout, strings.TrimSpace(raw), h.shifts.Location())
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s must be YYYY-MM-DD", name)
	}
	return day, nil
}

func (h *StaffGrpcHandler) departmentNames(ctx context.Context) (departmentNames, error) {
	list, err := h.departments.ListDepartments(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return newDepartmentNames(list), nil
}

func (h *StaffGrpcHandler) ensureDepartment(ctx context.Context, id string) error {
	_, err := h.departments.GetDepartment(ctx, department.GetDepartmentInput{ID: id})
	if errors.Is(err, department.ErrDepartmentNotFound) {
		return status.Errorf(codes.InvalidArgument, "department_id: unknown department %q", id)
	}
	if err != nil {
		return toStatusError(err)
	}
	return nil
}

type createEmployeeRequest struct {
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	Email            string                    `json:"email"`
	Phone            string                    `json:"phone"`
	Position         string                    `json:"position"`
	DepartmentID     string                    `json:"department_id"`
	EmploymentType   string                    `json:"employment_type"`
	Status           string                    `json:"status"`
	HireDate         string                    `json:"hire_date"`
	Salary           float64                   `json:"salary"`
	HourlyRate       float64                   `json:"hourly_rate"`
	WorkSchedule     employee.WorkSchedule     `json:"work_schedule"`
	EmergencyContact employee.EmergencyContact `json:"emergency_contact"`
	Skills           []string                  `json:"skills"`
	Certifications   []employee.Certification  `json:"certifications"`
}

type updateEmployeeRequest struct {
	ID               string                     `json:"id"`
	FirstName        *string                    `json:"first_name"`
	LastName         *string                    `json:"last_name"`
	Email            *string                    `json:"email"`
	Phone            *string                    `json:"phone"`
	Position         *string                    `json:"position"`
	DepartmentID     *string                    `json:"department_id"`
	EmploymentType   *string                    `json:"employment_type"`
	Status           *string                    `json:"status"`
	HireDate         *string                    `json:"hire_date"`
	Salary           *float64                   `json:"salary"`
	HourlyRate       *float64                   `json:"hourly_rate"`
	WorkSchedule     employee.WorkSchedule      `json:"work_schedule"`
	EmergencyContact *employee.EmergencyContact `json:"emergency_contact"`
	Skills           *[]string                  `json:"skills"`
	Certifications   *[]employee.Certification  `json:"certifications"`
}

type listEmployeesRequest struct {
	Query        string `json:"query"`
	DepartmentID string `json:"department_id"`
	Status       string `json:"status"`
}

type employeeResponse struct {
	Employee *employeeMessage `json:"employee"`
}

type employeesResponse struct {
	Employees []*employeeMessage `json:"employees"`
}

// CreateEmployee は社員を登録します。
func (h *StaffGrpcHandler) CreateEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createEmployeeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"first_name", req.FirstName},
		field{"last_name", req.LastName},
		field{"email", req.Email},
		field{"position", req.Position},
		field{"department_id", req.DepartmentID},
	); err != nil {
		return nil, err
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validateDate("hire_date", req.HireDate); err != nil {
		return nil, err
	}
	if err := h.ensureDepartment(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	input := employee.CreateEmployeeInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Position:         req.Position,
		DepartmentID:     req.DepartmentID,
		HireDate:         req.HireDate,
		Salary:           req.Salary,
		HourlyRate:       req.HourlyRate,
		WorkSchedule:     req.WorkSchedule,
		EmergencyContact: req.EmergencyContact,
		Skills:           req.Skills,
		Certifications:   req.Certifications,
	}
	if req.EmploymentType != "" {
		kind, err := employee.ParseEmploymentType(req.EmploymentType)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.EmploymentType = kind
	}
	if req.Status != "" {
		st, err := employee.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Status = &st
	}

	created, err := h.employees.CreateEmployee(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}
	names, err := h.departmentNames(ctx)
	if err != nil {
		return nil, err
	}
	return encode(employeeResponse{Employee: toEmployeeMessage(created, names)})
}

// GetEmployee は社員を取得します。
func (h *StaffGrpcHandler) GetEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	found, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}
	names, err := h.departmentNames(ctx)
	if err != nil {
		return nil, err
	}
	return encode(employeeResponse{Employee: toEmployeeMessage(found, names)})
}

// ListEmployees は検索条件に一致する社員を返します。
func (h *StaffGrpcHandler) ListEmployees(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listEmployeesRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	input := employee.ListEmployeesInput{Query: req.Query, DepartmentID: req.DepartmentID}
	if req.Status != "" {
		st, err := employee.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Status = &st
	}
	found, err := h.employees.ListEmployees(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}
	names, err := h.departmentNames(ctx)
	if err != nil {
		return nil, err
	}
	return encode(employeesResponse{Employees: toEmployeeMessages(found, names)})
}

// UpdateEmployee は社員を部分更新します。該当社員がいない場合は employee が null です。
func (h *StaffGrpcHandler) UpdateEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateEmployeeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"id", req.ID}); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"first_name", req.FirstName},
		{"last_name", req.LastName},
		{"email", req.Email},
		{"position", req.Position},
		{"department_id", req.DepartmentID},
	} {
		if err := rejectBlank(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if req.Email != nil {
		if err := validateEmail(*req.Email); err != nil {
			return nil, err
		}
	}
	if req.HireDate != nil {
		if err := validateDate("hire_date", *req.HireDate); err != nil {
			return nil, err
		}
	}
	if req.DepartmentID != nil {
		if err := h.ensureDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	input := employee.UpdateEmployeeInput{
		ID:               req.ID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		Position:         req.Position,
		DepartmentID:     req.DepartmentID,
		HireDate:         req.HireDate,
		Salary:           req.Salary,
		HourlyRate:       req.HourlyRate,
		WorkSchedule:     req.WorkSchedule,
		EmergencyContact: req.EmergencyContact,
	}
	if req.EmploymentType != nil {
		kind, err := employee.ParseEmploymentType(*req.EmploymentType)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.EmploymentType = &kind
	}
	if req.Status != nil {
		st, err := employee.ParseStatus(*req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Status = &st
	}
	if req.Skills != nil {
		input.Skills = *req.Skills
		input.SkillsSet = true
	}
	if req.Certifications != nil {
		input.Certifications = *req.Certifications
		input.CertificationsSet = true
	}

	updated, err := h.employees.UpdateEmployee(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}
	names, err := h.departmentNames(ctx)
	if err != nil {
		return nil, err
	}
	return encode(employeeResponse{Employee: toEmployeeMessage(updated, names)})
}

// DeleteEmployee は社員とそのシフトを削除します。
func (h *StaffGrpcHandler) DeleteEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := h.employees.DeleteEmployee(ctx, employee.DeleteEmployeeInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}
	return encode(struct{}{})
}

type createShiftRequest struct {
	EmployeeID      string `json:"employee_id"`
	DepartmentID    string `json:"department_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	BreakMinutes    int    `json:"break_duration"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type updateShiftRequest struct {
	ID              string  `json:"id"`
	EmployeeID      *string `json:"employee_id"`
	DepartmentID    *string `json:"department_id"`
	Date            *string `json:"date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	BreakMinutes    *int    `json:"break_duration"`
	CrossesMidnight *bool   `json:"crosses_midnight"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

type listShiftsRequest struct {
	EmployeeID   string `json:"employee_id"`
	DepartmentID string `json:"department_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	Status       string `json:"status"`
}

type shiftsForDateRequest struct {
	Date string `json:"date"`
}

type shiftsForEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	Start      string `json:"start"`
	End        string `json:"end"`
}

type weekScheduleRequest struct {
	Date         string `json:"date"`
	WeekOffset   int    `json:"week_offset"`
	DepartmentID string `json:"department_id"`
}

type shiftResponse struct {
	Shift *shiftMessage `json:"shift"`
}

type shiftsResponse struct {
	Shifts []*shiftMessage `json:"shifts"`
}

type weekScheduleResponse struct {
	Week *weekScheduleMessage `json:"week"`
}

// CreateShift はシフトを登録します。部署を省略した場合は社員の所属部署を使います。
func (h *StaffGrpcHandler) CreateShift(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createShiftRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(
		field{"employee_id", req.EmployeeID},
		field{"date", req.Date},
		field{"start_time", req.StartTime},
		field{"end_time", req.EndTime},
	); err != nil {
		return nil, err
	}
	if req.BreakMinutes < 0 {
		return nil, status.Error(codes.InvalidArgument, "break_duration must not be negative")
	}
	if err := shift.CheckTimeRange(req.StartTime, req.EndTime, req.CrossesMidnight); err != nil {
		return nil, toStatusError(err)
	}

	owner, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: req.EmployeeID})
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, status.Errorf(codes.InvalidArgument, "employee_id: unknown employee %q", req.EmployeeID)
	}
	if err != nil {
		return nil, toStatusError(err)
	}

	departmentID := req.DepartmentID
	if departmentID == "" {
		departmentID = owner.DepartmentID
	} else if err := h.ensureDepartment(ctx, departmentID); err != nil {
		return nil, err
	}

	input := shift.CreateShiftInput{
		EmployeeID:      req.EmployeeID,
		DepartmentID:    departmentID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		BreakMinutes:    req.BreakMinutes,
		CrossesMidnight: req.CrossesMidnight,
		Notes:           req.Notes,
	}
	if req.Status != "" {
		st, err := shift.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Status = &st
	}

	created, err := h.shifts.CreateShift(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftResponse{Shift: toShiftMessage(created)})
}

// GetShift はシフトを取得します。
func (h *StaffGrpcHandler) GetShift(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	found, err := h.shifts.GetShift(ctx, shift.GetShiftInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftResponse{Shift: toShiftMessage(found)})
}

// ListShifts は条件に一致するシフトを返します。
func (h *StaffGrpcHandler) ListShifts(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listShiftsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	filter := shift.ListShiftsFilter{
		EmployeeID:   req.EmployeeID,
		DepartmentID: req.DepartmentID,
		From:         req.From,
		To:           req.To,
	}
	if req.Status != "" {
		st, err := shift.ParseStatus(req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		filter.Status = &st
	}
	found, err := h.shifts.ListShifts(ctx, filter)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftsResponse{Shifts: toShiftMessages(found)})
}

// UpdateShift はシフトを部分更新します。該当シフトがない場合は shift が null です。
func (h *StaffGrpcHandler) UpdateShift(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateShiftRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"id", req.ID}); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"employee_id", req.EmployeeID},
		{"department_id", req.DepartmentID},
		{"date", req.Date},
		{"start_time", req.StartTime},
		{"end_time", req.EndTime},
	} {
		if err := rejectBlank(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if req.BreakMinutes != nil && *req.BreakMinutes < 0 {
		return nil, status.Error(codes.InvalidArgument, "break_duration must not be negative")
	}

	if req.StartTime != nil || req.EndTime != nil || req.CrossesMidnight != nil {
		existing, err := h.shifts.GetShift(ctx, shift.GetShiftInput{ID: req.ID})
		if errors.Is(err, shift.ErrShiftNotFound) {
			return encode(shiftResponse{})
		}
		if err != nil {
			return nil, toStatusError(err)
		}
		start, end, overnight := existing.StartTime, existing.EndTime, existing.CrossesMidnight
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.EndTime != nil {
			end = *req.EndTime
		}
		if req.CrossesMidnight != nil {
			overnight = *req.CrossesMidnight
		}
		if err := shift.CheckTimeRange(start, end, overnight); err != nil {
			return nil, toStatusError(err)
		}
	}
	if req.EmployeeID != nil {
		_, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: *req.EmployeeID})
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, status.Errorf(codes.InvalidArgument, "employee_id: unknown employee %q", *req.EmployeeID)
		}
		if err != nil {
			return nil, toStatusError(err)
		}
	}
	if req.DepartmentID != nil {
		if err := h.ensureDepartment(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
	}

	input := shift.UpdateShiftInput{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		DepartmentID:    req.DepartmentID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		BreakMinutes:    req.BreakMinutes,
		CrossesMidnight: req.CrossesMidnight,
		Notes:           req.Notes,
	}
	if req.Status != nil {
		st, err := shift.ParseStatus(*req.Status)
		if err != nil {
			return nil, toStatusError(err)
		}
		input.Status = &st
	}

	updated, err := h.shifts.UpdateShift(ctx, input)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftResponse{Shift: toShiftMessage(updated)})
}

// DeleteShift はシフトを削除します。
func (h *StaffGrpcHandler) DeleteShift(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := h.shifts.DeleteShift(ctx, shift.DeleteShiftInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}
	return encode(struct{}{})
}

// ShiftsForDate は指定日 (省略時は当日) のシフトを返します。
func (h *StaffGrpcHandler) ShiftsForDate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shiftsForDateRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	day, err := h.parseDay("date", req.Date)
	if err != nil {
		return nil, err
	}
	found, err := h.shifts.ShiftsForDate(ctx, day)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftsResponse{Shifts: toShiftMessages(found)})
}

// ShiftsForEmployee は社員の期間内 (両端を含む) のシフトを返します。期間の省略時は当週です。
func (h *StaffGrpcHandler) ShiftsForEmployee(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req shiftsForEmployeeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"employee_id", req.EmployeeID}); err != nil {
		return nil, err
	}

	loc := h.shifts.Location()
	week := shift.WeekStart(h.now(), loc)
	start, end := week, week.AddDate(0, 0, 6)
	if req.Start != "" {
		day, err := h.parseDay("start", req.Start)
		if err != nil {
			return nil, err
		}
		start = day
	}
	if req.End != "" {
		day, err := h.parseDay("end", req.End)
		if err != nil {
			return nil, err
		}
		end = day
	}

	found, err := h.shifts.ShiftsForEmployeeInRange(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(shiftsResponse{Shifts: toShiftMessages(found)})
}

// WeekSchedule は週カレンダーを返します。week_offset で前後の週へ移動します。
func (h *StaffGrpcHandler) WeekSchedule(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req weekScheduleRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	ref, err := h.parseDay("date", req.Date)
	if err != nil {
		return nil, err
	}
	ref = shift.ShiftWeek(ref, req.WeekOffset)

	emps, err := h.employees.ListEmployees(ctx, employee.ListEmployeesInput{DepartmentID: req.DepartmentID})
	if err != nil {
		return nil, toStatusError(err)
	}
	ids := make([]string, 0, len(emps))
	byID := make(map[string]*employee.Employee, len(emps))
	for _, e := range emps {
		ids = append(ids, e.ID)
		byID[e.ID] = e
	}

	ws, err := h.shifts.WeekSchedule(ctx, ref, ids)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(weekScheduleResponse{Week: toWeekScheduleMessage(ws, byID)})
}

type createDepartmentRequest struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	HeadEmployeeID *string  `json:"head_employee_id"`
	Budget         *float64 `json:"budget"`
}

type updateDepartmentRequest struct {
	ID             string   `json:"id"`
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	HeadEmployeeID *string  `json:"head_employee_id"`
	ClearHead      bool     `json:"clear_head"`
	Budget         *float64 `json:"budget"`
	ClearBudget    bool     `json:"clear_budget"`
}

type departmentResponse struct {
	Department *departmentMessage `json:"department"`
}

type departmentsResponse struct {
	Departments []*departmentMessage `json:"departments"`
}

type statsResponse struct {
	Date        string                   `json:"date"`
	Departments []departmentStatsMessage `json:"departments"`
	Summary     statsSummaryMessage      `json:"summary"`
}

// CreateDepartment は部署を作成します。
func (h *StaffGrpcHandler) CreateDepartment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req createDepartmentRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"name", req.Name}); err != nil {
		return nil, err
	}
	created, err := h.departments.CreateDepartment(ctx, department.CreateDepartmentInput{
		ID:             req.ID,
		Name:           req.Name,
		Description:    req.Description,
		HeadEmployeeID: req.HeadEmployeeID,
		Budget:         req.Budget,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(departmentResponse{Department: toDepartmentMessage(created)})
}

// GetDepartment は部署を取得します。
func (h *StaffGrpcHandler) GetDepartment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	found, err := h.departments.GetDepartment(ctx, department.GetDepartmentInput{ID: req.ID})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(departmentResponse{Department: toDepartmentMessage(found)})
}

// ListDepartments は部署を登録順で返します。
func (h *StaffGrpcHandler) ListDepartments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	found, err := h.departments.ListDepartments(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	out := make([]*departmentMessage, 0, len(found))
	for _, d := range found {
		out = append(out, toDepartmentMessage(d))
	}
	return encode(departmentsResponse{Departments: out})
}

// UpdateDepartment は部署を部分更新します。該当部署がない場合は department が null です。
func (h *StaffGrpcHandler) UpdateDepartment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateDepartmentRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := requireFields(field{"id", req.ID}); err != nil {
		return nil, err
	}
	if err := rejectBlank("name", req.Name); err != nil {
		return nil, err
	}
	updated, err := h.departments.UpdateDepartment(ctx, department.UpdateDepartmentInput{
		ID:             req.ID,
		Name:           req.Name,
		Description:    req.Description,
		HeadEmployeeID: req.HeadEmployeeID,
		ClearHead:      req.ClearHead,
		Budget:         req.Budget,
		ClearBudget:    req.ClearBudget,
	})
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(departmentResponse{Department: toDepartmentMessage(updated)})
}

// DeleteDepartment は部署を削除します。
func (h *StaffGrpcHandler) DeleteDepartment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req idRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if err := h.departments.DeleteDepartment(ctx, department.DeleteDepartmentInput{ID: req.ID}); err != nil {
		return nil, toStatusError(err)
	}
	return encode(struct{}{})
}

// DepartmentStats は部署別の集計を返します。
func (h *StaffGrpcHandler) DepartmentStats(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	report, err := h.stats.DepartmentStats(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return encode(statsResponse{
		Date:        report.Date,
		Departments: toStatsMessages(report.Departments),
		Summary: statsSummaryMessage{
			Departments:      report.Summary.Departments,
			TotalEmployees:   report.Summary.TotalEmployees,
			ActiveEmployees:  report.Summary.ActiveEmployees,
			OnLeaveEmployees: report.Summary.OnLeaveEmployees,
			ScheduledHours:   report.Summary.ScheduledHours,
			UpcomingShifts:   report.Summary.UpcomingShifts,
		},
	})
}
