package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service はシフトの登録・更新とスケジュール照会をまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
	loc   *time.Location
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error)
	GetShift(ctx context.Context, in GetShiftInput) (*Shift, error)
	UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error)
	DeleteShift(ctx context.Context, in DeleteShiftInput) error
	ListShifts(ctx context.Context, filter ListShiftsFilter) ([]*Shift, error)
	ShiftsForDate(ctx context.Context, day time.Time) ([]*Shift, error)
	ShiftsForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]*Shift, error)
	WeekSchedule(ctx context.Context, ref time.Time, employeeIDs []string) (*WeekSchedule, error)
	Location() *time.Location
}

// NewService は Service を生成します。loc は日付算出に使うタイムゾーンで、nil の場合は UTC です。
func NewService(repo Repository, clock Clock, tx TransactionManager, loc *time.Location) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, clock: clock, tx: tx, loc: loc}
}

// CreateShiftInput はシフト作成時の入力です。
type CreateShiftInput struct {
	EmployeeID      string
	DepartmentID    string
	Date            string
	StartTime       string
	EndTime         string
	BreakMinutes    int
	CrossesMidnight bool
	Status          *Status
	Notes           string
}

// UpdateShiftInput はシフト更新時の入力です。nil のフィールドは変更しません。
type UpdateShiftInput struct {
	ID              string
	EmployeeID      *string
	DepartmentID    *string
	Date            *string
	StartTime       *string
	EndTime         *string
	BreakMinutes    *int
	CrossesMidnight *bool
	Status          *Status
	Notes           *string
}

// GetShiftInput はシフト取得時の入力です。
type GetShiftInput struct {
	ID string
}

// DeleteShiftInput はシフト削除時の入力です。
type DeleteShiftInput struct {
	ID string
}

// Location は日付算出に使うタイムゾーンを返します。
func (s *Service) Location() *time.Location {
	return s.loc
}

// CreateShift は新しいシフトを登録します。
func (s *Service) CreateShift(ctx context.Context, in CreateShiftInput) (*Shift, error) {
	date, err := normalizeDate(in.Date)
	if err != nil {
		return nil, err
	}
	if err := validateClock(in.StartTime); err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	if err := validateClock(in.EndTime); err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}

	status := StatusScheduled
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	var created *Shift
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("shift: generate id: %w", err)
		}

		now := s.clock.Now()
		sh := &Shift{
			ID:              id.String(),
			EmployeeID:      strings.TrimSpace(in.EmployeeID),
			DepartmentID:    strings.TrimSpace(in.DepartmentID),
			Date:            date,
			StartTime:       in.StartTime,
			EndTime:         in.EndTime,
			BreakMinutes:    in.BreakMinutes,
			CrossesMidnight: in.CrossesMidnight,
			Status:          status,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		result, err := s.repo.Create(txCtx, sh)
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateShift は部分更新を適用します。該当シフトがない場合は (nil, nil) を返します。
func (s *Service) UpdateShift(ctx context.Context, in UpdateShiftInput) (*Shift, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Shift
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if errors.Is(err, ErrShiftNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if in.EmployeeID != nil {
			existing.EmployeeID = strings.TrimSpace(*in.EmployeeID)
		}
		if in.DepartmentID != nil {
			existing.DepartmentID = strings.TrimSpace(*in.DepartmentID)
		}
		if in.Date != nil {
			date, err := normalizeDate(*in.Date)
			if err != nil {
				return err
			}
			existing.Date = date
		}
		if in.StartTime != nil {
			if err := validateClock(*in.StartTime); err != nil {
				return fmt.Errorf("start_time: %w", err)
			}
			existing.StartTime = *in.StartTime
		}
		if in.EndTime != nil {
			if err := validateClock(*in.EndTime); err != nil {
				return fmt.Errorf("end_time: %w", err)
			}
			existing.EndTime = *in.EndTime
		}
		if in.BreakMinutes != nil {
			existing.BreakMinutes = *in.BreakMinutes
		}
		if in.CrossesMidnight != nil {
			existing.CrossesMidnight = *in.CrossesMidnight
		}
		if in.Status != nil {
			if !isValidStatus(*in.Status) {
				return ErrInvalidStatus
			}
			existing.Status = *in.Status
		}
		if in.Notes != nil {
			existing.Notes = *in.Notes
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}
		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteShift はシフトを削除します。存在しない ID は無視します。
func (s *Service) DeleteShift(ctx context.Context, in DeleteShiftInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		err := s.repo.Delete(txCtx, in.ID)
		if errors.Is(err, ErrShiftNotFound) {
			return nil
		}
		return err
	})
}

// GetShift はシフトを取得します。
func (s *Service) GetShift(ctx context.Context, in GetShiftInput) (*Shift, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// ListShifts はフィルタに一致するシフトを返します。
func (s *Service) ListShifts(ctx context.Context, filter ListShiftsFilter) ([]*Shift, error) {
	if filter.Status != nil && !isValidStatus(*filter.Status) {
		return nil, ErrInvalidStatus
	}
	for _, raw := range []string{filter.From, filter.To} {
		if raw == "" {
			continue
		}
		if _, err := normalizeDate(raw); err != nil {
			return nil, err
		}
	}
	if filter.From != "" && filter.To != "" && filter.To < filter.From {
		return nil, ErrInvalidDateRange
	}

	var shifts []*Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		shifts = found
		return nil
	}); err != nil {
		return nil, err
	}
	return shifts, nil
}

// ShiftsForDate は day の暦日 (時刻部分は無視) に一致するシフトを返します。
func (s *Service) ShiftsForDate(ctx context.Context, day time.Time) ([]*Shift, error) {
	date := DateOf(day, s.loc)
	return s.ListShifts(ctx, ListShiftsFilter{From: date, To: date})
}

// ShiftsForEmployeeInRange は start から end まで (両端を含む) の社員のシフトを返します。
// 存在しない社員 ID の場合は空の結果です。
func (s *Service) ShiftsForEmployeeInRange(ctx context.Context, employeeID string, start, end time.Time) ([]*Shift, error) {
	if strings.TrimSpace(employeeID) == "" {
		return []*Shift{}, nil
	}
	return s.ListShifts(ctx, ListShiftsFilter{
		EmployeeID: employeeID,
		From:       DateOf(start, s.loc),
		To:         DateOf(end, s.loc),
	})
}

// WeekSchedule は ref を含む週のシフトを社員・日付ごとに振り分けます。
func (s *Service) WeekSchedule(ctx context.Context, ref time.Time, employeeIDs []string) (*WeekSchedule, error) {
	dates := WeekDates(ref, s.loc)
	shifts, err := s.ListShifts(ctx, ListShiftsFilter{From: dates[0], To: dates[len(dates)-1]})
	if err != nil {
		return nil, err
	}
	return BuildWeekSchedule(dates, employeeIDs, shifts), nil
}

// CheckTimeRange は日跨ぎ指定なしで終了が開始より前のシフトを拒否します。
func CheckTimeRange(start, end string, crossesMidnight bool) error {
	startAt, err := ParseClock(start)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	endAt, err := ParseClock(end)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if !crossesMidnight && endAt < startAt {
		return ErrInvalidTimeRange
	}
	return nil
}

// ParseStatus は文字列を Status に変換します。
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func normalizeDate(raw string) (string, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(DateLayout), nil
}

func validateClock(raw string) error {
	_, err := ParseClock(raw)
	return err
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusMissed, StatusCancelled:
		return true
	default:
		return false
	}
}
