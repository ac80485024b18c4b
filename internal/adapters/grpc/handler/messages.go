package handler

import (
	"time"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/property"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
	"github.com/ogurasousui/hotel-pms/internal/core/stats"
)

type employeeMessage struct {
	ID               string                    `json:"id"`
	EmployeeCode     string                    `json:"employee_id"`
	FirstName        string                    `json:"first_name"`
	LastName         string                    `json:"last_name"`
	FullName         string                    `json:"full_name"`
	Email            string                    `json:"email"`
	Phone            string                    `json:"phone,omitempty"`
	Position         string                    `json:"position"`
	DepartmentID     string                    `json:"department_id"`
	DepartmentName   string                    `json:"department_name"`
	EmploymentType   string                    `json:"employment_type"`
	Status           string                    `json:"status"`
	HireDate         string                    `json:"hire_date,omitempty"`
	Salary           float64                   `json:"salary"`
	HourlyRate       float64                   `json:"hourly_rate"`
	WorkSchedule     employee.WorkSchedule     `json:"work_schedule,omitempty"`
	EmergencyContact employee.EmergencyContact `json:"emergency_contact"`
	Skills           []string                  `json:"skills"`
	Certifications   []employee.Certification  `json:"certifications"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

type shiftMessage struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	DepartmentID    string    `json:"department_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	BreakMinutes    int       `json:"break_duration"`
	CrossesMidnight bool      `json:"crosses_midnight"`
	Hours           float64   `json:"hours"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type departmentMessage struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	HeadEmployeeID *string   `json:"head_employee_id"`
	Budget         *float64  `json:"budget"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type departmentStatsMessage struct {
	DepartmentID           string  `json:"department_id"`
	Name                   string  `json:"name"`
	TotalEmployees         int     `json:"total_employees"`
	ActiveEmployees        int     `json:"active_employees"`
	OnLeaveEmployees       int     `json:"on_leave_employees"`
	ScheduledHoursThisWeek float64 `json:"scheduled_hours_this_week"`
	OvertimeHoursThisWeek  float64 `json:"overtime_hours_this_week"`
	UpcomingShifts         int     `json:"upcoming_shifts"`
}

type statsSummaryMessage struct {
	Departments      int     `json:"departments"`
	TotalEmployees   int     `json:"total_employees"`
	ActiveEmployees  int     `json:"active_employees"`
	OnLeaveEmployees int     `json:"on_leave_employees"`
	ScheduledHours   float64 `json:"scheduled_hours"`
	UpcomingShifts   int     `json:"upcoming_shifts"`
}

type weekRowMessage struct {
	EmployeeID   string                     `json:"employee_id"`
	EmployeeCode string                     `json:"employee_code"`
	Name         string                     `json:"name"`
	TotalHours   float64                    `json:"total_hours"`
	ShiftsCount  int                        `json:"shifts_count"`
	Days         map[string][]*shiftMessage `json:"days"`
}

type weekScheduleMessage struct {
	Start     string           `json:"start"`
	End       string           `json:"end"`
	Dates     []string         `json:"dates"`
	Employees []weekRowMessage `json:"employees"`
}

type propertyMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Rooms     int       `json:"rooms"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type settingsMessage struct {
	PropertyID   string `json:"property_id"`
	CheckInTime  string `json:"check_in_time"`
	CheckOutTime string `json:"check_out_time"`
	Currency     string `json:"currency"`
	Timezone     string `json:"timezone"`
	Language     string `json:"language"`
}

type idRequest struct {
	ID string `json:"id"`
}

// departmentNames は部署 ID から部署名への対応表です。
type departmentNames map[string]string

func newDepartmentNames(list []*department.Department) departmentNames {
	names := make(departmentNames, len(list))
	for _, d := range list {
		names[d.ID] = d.Name
	}
	return names
}

// name は部署名を返します。削除済みの部署は ID をそのまま返します。
func (n departmentNames) name(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

func toEmployeeMessage(e *employee.Employee, names departmentNames) *employeeMessage {
	if e == nil {
		return nil
	}
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	certs := e.Certifications
	if certs == nil {
		certs = []employee.Certification{}
	}
	return &employeeMessage{
		ID:               e.ID,
		EmployeeCode:     e.EmployeeCode,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		FullName:         e.FullName(),
		Email:            e.Email,
		Phone:            e.Phone,
		Position:         e.Position,
		DepartmentID:     e.DepartmentID,
		DepartmentName:   names.name(e.DepartmentID),
		EmploymentType:   string(e.EmploymentType),
		Status:           string(e.Status),
		HireDate:         e.HireDate,
		Salary:           e.Salary,
		HourlyRate:       e.HourlyRate,
		WorkSchedule:     e.WorkSchedule,
		EmergencyContact: e.EmergencyContact,
		Skills:           skills,
		Certifications:   certs,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toEmployeeMessages(list []*employee.Employee, names departmentNames) []*employeeMessage {
	out := make([]*employeeMessage, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeMessage(e, names))
	}
	return out
}

func toShiftMessage(s *shift.Shift) *shiftMessage {
	if s == nil {
		return nil
	}
	return &shiftMessage{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		DepartmentID:    s.DepartmentID,
		Date:            s.Date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		BreakMinutes:    s.BreakMinutes,
		CrossesMidnight: s.CrossesMidnight,
		Hours:           s.Hours(),
		Status:          string(s.Status),
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toShiftMessages(list []*shift.Shift) []*shiftMessage {
	out := make([]*shiftMessage, 0, len(list))
	for _, s := range list {
		out = append(out, toShiftMessage(s))
	}
	return out
}

func toDepartmentMessage(d *department.Department) *departmentMessage {
	if d == nil {
		return nil
	}
	return &departmentMessage{
		ID:             d.ID,
		Name:           d.Name,
		Description:    d.Description,
		HeadEmployeeID: d.HeadEmployeeID,
		Budget:         d.Budget,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toStatsMessages(rows []stats.DepartmentStats) []departmentStatsMessage {
	out := make([]departmentStatsMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, departmentStatsMessage{
			DepartmentID:           row.DepartmentID,
			Name:                   row.Name,
			TotalEmployees:         row.TotalEmployees,
			ActiveEmployees:        row.ActiveEmployees,
			OnLeaveEmployees:       row.OnLeaveEmployees,
			ScheduledHoursThisWeek: row.ScheduledHoursThisWeek,
			OvertimeHoursThisWeek:  row.OvertimeHoursThisWeek,
			UpcomingShifts:         row.UpcomingShifts,
		})
	}
	return out
}

func toWeekScheduleMessage(ws *shift.WeekSchedule, employees map[string]*employee.Employee) *weekScheduleMessage {
	out := &weekScheduleMessage{
		Start:     ws.Start,
		End:       ws.End,
		Dates:     ws.Dates,
		Employees: make([]weekRowMessage, 0, len(ws.Employees)),
	}
	for _, row := range ws.Employees {
		msg := weekRowMessage{
			EmployeeID:  row.EmployeeID,
			TotalHours:  row.TotalHours,
			ShiftsCount: row.ShiftsCount,
			Days:        make(map[string][]*shiftMessage, len(row.Days)),
		}
		if e, ok := employees[row.EmployeeID]; ok {
			msg.EmployeeCode = e.EmployeeCode
			msg.Name = e.FullName()
		}
		for date, shifts := range row.Days {
			msg.Days[date] = toShiftMessages(shifts)
		}
		out.Employees = append(out.Employees, msg)
	}
	return out
}

func toPropertyMessage(p *property.Property) *propertyMessage {
	if p == nil {
		return nil
	}
	return &propertyMessage{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		Rooms:     p.Rooms,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toSettingsMessage(s *property.Settings) *settingsMessage {
	if s == nil {
		return nil
	}
	return &settingsMessage{
		PropertyID:   s.PropertyID,
		CheckInTime:  s.CheckInTime,
		CheckOutTime: s.CheckOutTime,
		Currency:     s.Currency,
		Timezone:     s.Timezone,
		Language:     s.Language,
	}
}
