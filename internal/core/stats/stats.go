// Package stats は部署ごとの人数・勤務時間の集計を提供します。
// 集計結果は保存せず、呼び出しのたびに社員とシフトから再計算します。
package stats

import (
	"context"
	"time"

	"github.com/ogurasousui/hotel-pms/internal/core/department"
	"github.com/ogurasousui/hotel-pms/internal/core/employee"
	"github.com/ogurasousui/hotel-pms/internal/core/shift"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager は読み取りの一貫性を確保します。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// EmployeeReader は全社員を登録順で返します。
type EmployeeReader interface {
	List(ctx context.Context) ([]*employee.Employee, error)
}

// ShiftReader はフィルタに一致するシフトを返します。
type ShiftReader interface {
	List(ctx context.Context, filter shift.ListShiftsFilter) ([]*shift.Shift, error)
}

// DepartmentReader は全部署を登録順で返します。
type DepartmentReader interface {
	List(ctx context.Context) ([]*department.Department, error)
}

// DepartmentStats は 1 部署分の集計結果です。
//
// ScheduledHoursThisWeek は名前に反して当日のシフトのみを合計します。
type DepartmentStats struct {
	DepartmentID           string
	Name                   string
	TotalEmployees         int
	ActiveEmployees        int
	OnLeaveEmployees       int
	ScheduledHoursThisWeek float64
	OvertimeHoursThisWeek  float64
	UpcomingShifts         int
}

// Summary は全部署の合計です。
type Summary struct {
	Departments      int
	TotalEmployees   int
	ActiveEmployees  int
	OnLeaveEmployees int
	ScheduledHours   float64
	UpcomingShifts   int
}

// Report は部署別集計と合計をまとめたものです。
type Report struct {
	Date        string
	Departments []DepartmentStats
	Summary     Summary
}

// UseCase は集計ユースケースの公開インターフェースです。
type UseCase interface {
	DepartmentStats(ctx context.Context) (*Report, error)
}

// Service は部署統計を計算します。
type Service struct {
	employees   EmployeeReader
	shifts      ShiftReader
	departments DepartmentReader
	clock       Clock
	tx          TransactionManager
	loc         *time.Location
}

// NewService は Service を生成します。
func NewService(employees EmployeeReader, shifts ShiftReader, departments DepartmentReader, clock Clock, tx TransactionManager, loc *time.Location) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		employees:   employees,
		shifts:      shifts,
		departments: departments,
		clock:       clock,
		tx:          tx,
		loc:         loc,
	}
}

// DepartmentStats は部署ごとの集計を部署の登録順で返します。
// 部署に紐づかない社員やシフトはどの行にも数えません。
func (s *Service) DepartmentStats(ctx context.Context) (*Report, error) {
	today := shift.DateOf(s.clock.Now(), s.loc)

	var (
		depts  []*department.Department
		emps   []*employee.Employee
		shifts []*shift.Shift
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if depts, err = s.departments.List(txCtx); err != nil {
			return err
		}
		if emps, err = s.employees.List(txCtx); err != nil {
			return err
		}
		shifts, err = s.shifts.List(txCtx, shift.ListShiftsFilter{From: today})
		return err
	}); err != nil {
		return nil, err
	}

	return Compute(today, depts, emps, shifts), nil
}

// Compute は取得済みのデータから集計します。shifts は today 以降のものを含んでいれば十分です。
func Compute(today string, depts []*department.Department, emps []*employee.Employee, shifts []*shift.Shift) *Report {
	rows := make([]DepartmentStats, len(depts))
	index := make(map[string]int, len(depts))
	for i, d := range depts {
		rows[i] = DepartmentStats{DepartmentID: d.ID, Name: d.Name}
		index[d.ID] = i
	}

	for _, e := range emps {
		i, ok := index[e.DepartmentID]
		if !ok {
			continue
		}
		rows[i].TotalEmployees++
		switch e.Status {
		case employee.StatusActive:
			rows[i].ActiveEmployees++
		case employee.StatusOnLeave:
			rows[i].OnLeaveEmployees++
		}
	}

	for _, sh := range shifts {
		i, ok := index[sh.DepartmentID]
		if !ok {
			continue
		}
		if sh.Date == today {
			rows[i].ScheduledHoursThisWeek += sh.Hours()
		}
		if sh.Status == shift.StatusScheduled && sh.Date >= today {
			rows[i].UpcomingShifts++
		}
	}

	report := &Report{Date: today, Departments: rows}
	report.Summary.Departments = len(rows)
	for _, row := range rows {
		report.Summary.TotalEmployees += row.TotalEmployees
		report.Summary.ActiveEmployees += row.ActiveEmployees
		report.Summary.OnLeaveEmployees += row.OnLeaveEmployees
		report.Summary.ScheduledHours += row.ScheduledHoursThisWeek
		report.Summary.UpcomingShifts += row.UpcomingShifts
	}
	return report
}
