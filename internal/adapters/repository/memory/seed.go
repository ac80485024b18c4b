package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

type seedEmployee struct {
	first, last  string
	email, phone string
	position     string
	department   string
	kind         employee.EmploymentType
	status       employee.Status
	hireDate     string
	salary, rate float64
	skills       []string
	shiftStart   string
	shiftEnd     string
	overnight    bool
}

var seedEmployees = []seedEmployee{
	{"Pavel", "Novák", "pavel.novak@hotel.cz", "+420 601 111 222", "Recepční", department.FrontDesk, employee.EmploymentFullTime, employee.StatusActive, "2021-04-01", 38000, 0, []string{"Opera PMS", "angličtina", "němčina"}, "08:00", "16:00", false},
	{"Jana", "Svobodová", "jana.svobodova@hotel.cz", "+420 602 222 333", "Vedoucí recepce", department.FrontDesk, employee.EmploymentFullTime, employee.StatusActive, "2018-09-15", 46000, 0, []string{"vedení týmu", "angličtina"}, "14:00", "22:00", false},
	{"Tomáš", "Dvořák", "tomas.dvorak@hotel.cz", "+420 603 333 444", "Noční recepční", department.FrontDesk, employee.EmploymentFullTime, employee.StatusOnLeave, "2022-01-10", 36000, 0, []string{"noční audit"}, "22:00", "06:00", true},
	{"Marie", "Černá", "marie.cerna@hotel.cz", "+420 604 444 555", "Pokojská", department.Housekeeping, employee.EmploymentFullTime, employee.StatusActive, "2020-06-01", 29000, 0, []string{"úklid pokojů"}, "07:00", "15:00", false},
	{"Petr", "Procházka", "petr.prochazka@hotel.cz", "+420 605 555 666", "Technik údržby", department.Maintenance, employee.EmploymentFullTime, employee.StatusActive, "2019-03-01", 35000, 0, []string{"elektro", "vzduchotechnika"}, "07:00", "15:30", false},
	{"Lucie", "Kučerová", "lucie.kucerova@hotel.cz", "+420 606 666 777", "Číšnice", department.FoodBeverage, employee.EmploymentPartTime, employee.StatusActive, "2023-05-20", 0, 190, []string{"barista", "sommelier"}, "11:00", "19:00", false},
	{"Martin", "Veselý", "martin.vesely@hotel.cz", "+420 607 777 888", "Bezpečnostní pracovník", department.Security, employee.EmploymentContract, employee.StatusActive, "2022-11-01", 0, 210, []string{"první pomoc"}, "18:00", "06:00", true},
	{"Eva", "Horáková", "eva.horakova@hotel.cz", "+420 608 888 999", "Provozní ředitelka", department.Management, employee.EmploymentFullTime, employee.StatusActive, "2015-02-01", 72000, 0, []string{"revenue management", "angličtina"}, "09:00", "17:00", false},
	{"Karel", "Němec", "karel.nemec@hotel.cz", "+420 609 999 000", "Masér", department.SpaWellness, employee.EmploymentContract, employee.StatusInactive, "2021-08-01", 0, 260, []string{"sportovní masáž"}, "10:00", "18:00", false},
	{"Tereza", "Marková", "tereza.markova@hotel.cz", "+420 610 000 111", "Concierge", department.Concierge, employee.EmploymentFullTime, employee.StatusActive, "2020-10-01", 41000, 0, []string{"francouzština", "angličtina"}, "10:00", "18:00", false},
}

// Seed は固定の初期データ (8 部署・社員・今週のシフト) を投入します。
// シフトは now を含む週の平日に作成し、now より前の日は completed とします。
func Seed(ctx context.Context, s *Store, now time.Time, loc *time.Location) error {
	return s.WithinReadWrite(ctx, func(txCtx context.Context) error {
		depts := s.Departments()
		for _, id := range department.BuiltinIDs {
			if _, err := depts.Create(txCtx, &department.Department{
				ID:        id,
				Name:      department.DisplayName(id),
				CreatedAt: now,
				UpdatedAt: now,
			}); err != nil {
				return fmt.Errorf("memory: seed department %s: %w", id, err)
			}
		}

		today := shift.DateOf(now, loc)
		weekdays := shift.WeekDates(now, loc)[:5]
		emps := s.Employees()
		shifts := s.Shifts()

		for _, seed := range seedEmployees {
			seq, err := emps.NextSequence(txCtx)
			if err != nil {
				return err
			}
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("memory: seed employee id: %w", err)
			}

			emp := &employee.Employee{
				ID:             id.String(),
				EmployeeCode:   fmt.Sprintf("EMP%03d", seq),
				FirstName:      seed.first,
				LastName:       seed.last,
				Email:          seed.email,
				Phone:          seed.phone,
				Position:       seed.position,
				DepartmentID:   seed.department,
				EmploymentType: seed.kind,
				Status:         seed.status,
				HireDate:       seed.hireDate,
				Salary:         seed.salary,
				HourlyRate:     seed.rate,
				WorkSchedule:   standardWeek(seed.shiftStart, seed.shiftEnd),
				Skills:         seed.skills,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if _, err := emps.Create(txCtx, emp); err != nil {
				return fmt.Errorf("memory: seed employee %s: %w", emp.EmployeeCode, err)
			}

			if seed.status != employee.StatusActive {
				continue
			}
			for _, date := range weekdays {
				shiftID, err := uuid.NewV7()
				if err != nil {
					return fmt.Errorf("memory: seed shift id: %w", err)
				}
				status := shift.StatusScheduled
				if date < today {
					status = shift.StatusCompleted
				}
				if _, err := shifts.Create(txCtx, &shift.Shift{
					ID:              shiftID.String(),
					EmployeeID:      emp.ID,
					DepartmentID:    emp.DepartmentID,
					Date:            date,
					StartTime:       seed.shiftStart,
					EndTime:         seed.shiftEnd,
					BreakMinutes:    60,
					CrossesMidnight: seed.overnight,
					Status:          status,
					CreatedAt:       now,
					UpdatedAt:       now,
				}); err != nil {
					return fmt.Errorf("memory: seed shift: %w", err)
				}
			}
		}
		return nil
	})
}

func standardWeek(start, end string) employee.WorkSchedule {
	schedule := make(employee.WorkSchedule, len(employee.Weekdays))
	for i, day := range employee.Weekdays {
		if i < 5 {
			schedule[day] = employee.DaySchedule{IsWorking: true, StartTime: start, EndTime: end, BreakDuration: 60}
			continue
		}
		schedule[day] = employee.DaySchedule{}
	}
	return schedule
}
