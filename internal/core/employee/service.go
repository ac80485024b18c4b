package employee

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

const employeeCodeFormat = "EMP%03d"

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo   Repository
	shifts ShiftCleaner
	clock  Clock
	tx     TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
}

// NewService は Service を生成します。shifts が nil の場合は連鎖削除を行いません。
func NewService(repo Repository, shifts ShiftCleaner, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, shifts: shifts, clock: clock, tx: tx}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Position         string
	DepartmentID     string
	EmploymentType   EmploymentType
	Status           *Status
	HireDate         string
	Salary           float64
	HourlyRate       float64
	WorkSchedule     WorkSchedule
	EmergencyContact EmergencyContact
	Skills           []string
	Certifications   []Certification
}

// UpdateEmployeeInput は社員更新時の入力です。nil のフィールドは変更しません。
type UpdateEmployeeInput struct {
	ID                string
	FirstName         *string
	LastName          *string
	Email             *string
	Phone             *string
	Position          *string
	DepartmentID      *string
	EmploymentType    *EmploymentType
	Status            *Status
	HireDate          *string
	Salary            *float64
	HourlyRate        *float64
	WorkSchedule      WorkSchedule
	EmergencyContact  *EmergencyContact
	Skills            []string
	SkillsSet         bool
	Certifications    []Certification
	CertificationsSet bool
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	ID string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID string
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Query        string
	DepartmentID string
	Status       *Status
}

// CreateEmployee は新しい社員を登録します。必須項目は呼び出し側で検証済みである前提です。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	status := StatusActive
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	employmentType := in.EmploymentType
	if employmentType == "" {
		employmentType = EmploymentFullTime
	}
	if !isValidEmploymentType(employmentType) {
		return nil, ErrInvalidEmploymentType
	}

	if err := validateWorkSchedule(in.WorkSchedule); err != nil {
		return nil, err
	}
	if err := validateCertifications(in.Certifications); err != nil {
		return nil, err
	}

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		seq, err := s.repo.NextSequence(txCtx)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("employee: generate id: %w", err)
		}

		now := s.clock.Now()
		emp := &Employee{
			ID:               id.String(),
			EmployeeCode:     fmt.Sprintf(employeeCodeFormat, seq),
			FirstName:        strings.TrimSpace(in.FirstName),
			LastName:         strings.TrimSpace(in.LastName),
			Email:            strings.TrimSpace(in.Email),
			Phone:            strings.TrimSpace(in.Phone),
			Position:         strings.TrimSpace(in.Position),
			DepartmentID:     strings.TrimSpace(in.DepartmentID),
			EmploymentType:   employmentType,
			Status:           status,
			HireDate:         in.HireDate,
			Salary:           in.Salary,
			HourlyRate:       in.HourlyRate,
			WorkSchedule:     in.WorkSchedule,
			EmergencyContact: in.EmergencyContact,
			Skills:           normalizeSkills(in.Skills),
			Certifications:   in.Certifications,
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		result, err := s.repo.Create(txCtx, emp)
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

// UpdateEmployee は部分更新を適用します。該当社員がいない場合は (nil, nil) を返します。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if errors.Is(err, ErrEmployeeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := applyPatch(existing, in); err != nil {
			return err
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

// DeleteEmployee は社員と、その社員に紐づくシフトを削除します。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, in.ID); err != nil {
			if errors.Is(err, ErrEmployeeNotFound) {
				return nil
			}
			return err
		}
		if s.shifts == nil {
			return nil
		}
		if _, err := s.shifts.DeleteByEmployee(txCtx, in.ID); err != nil {
			return fmt.Errorf("employee: delete shifts: %w", err)
		}
		return nil
	})
}

// GetEmployee は社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
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

// ListEmployees は検索条件に一致する社員を登録順で返します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) ([]*Employee, error) {
	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidStatus
	}

	filter := Filter{
		Query:        in.Query,
		DepartmentID: strings.TrimSpace(in.DepartmentID),
		Status:       in.Status,
	}

	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		all, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = filter.Apply(all)
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

func applyPatch(existing *Employee, in UpdateEmployeeInput) error {
	if in.FirstName != nil {
		existing.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		existing.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		existing.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		existing.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Position != nil {
		existing.Position = strings.TrimSpace(*in.Position)
	}
	if in.DepartmentID != nil {
		existing.DepartmentID = strings.TrimSpace(*in.DepartmentID)
	}
	if in.EmploymentType != nil {
		if !isValidEmploymentType(*in.EmploymentType) {
			return ErrInvalidEmploymentType
		}
		existing.EmploymentType = *in.EmploymentType
	}
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return ErrInvalidStatus
		}
		existing.Status = *in.Status
	}
	if in.HireDate != nil {
		existing.HireDate = *in.HireDate
	}
	if in.Salary != nil {
		existing.Salary = *in.Salary
	}
	if in.HourlyRate != nil {
		existing.HourlyRate = *in.HourlyRate
	}
	if in.WorkSchedule != nil {
		if err := validateWorkSchedule(in.WorkSchedule); err != nil {
			return err
		}
		existing.WorkSchedule = in.WorkSchedule
	}
	if in.EmergencyContact != nil {
		existing.EmergencyContact = *in.EmergencyContact
	}
	if in.SkillsSet {
		existing.Skills = normalizeSkills(in.Skills)
	}
	if in.CertificationsSet {
		if err := validateCertifications(in.Certifications); err != nil {
			return err
		}
		existing.Certifications = in.Certifications
	}
	return nil
}

// normalizeSkills は空要素と重複を取り除き、集合として扱います。
func normalizeSkills(skills []string) []string {
	if skills == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func validateWorkSchedule(schedule WorkSchedule) error {
	for day := range schedule {
		if !isValidWeekday(day) {
			return fmt.Errorf("%s: %w", day, ErrInvalidWeekday)
		}
	}
	return nil
}

func validateCertifications(certs []Certification) error {
	for _, cert := range certs {
		switch cert.Status {
		case CertificationValid, CertificationExpired, CertificationPending:
		default:
			return ErrInvalidCertification
		}
	}
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return true
	default:
		return false
	}
}

func isValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentTemporary, EmploymentIntern:
		return true
	default:
		return false
	}
}

func isValidWeekday(day Weekday) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// ParseStatus は文字列を Status に変換します。
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ParseEmploymentType は文字列を EmploymentType に変換します。
func ParseEmploymentType(raw string) (EmploymentType, error) {
	t := EmploymentType(strings.ToLower(strings.TrimSpace(raw)))
	if !isValidEmploymentType(t) {
		return "", ErrInvalidEmploymentType
	}
	return t, nil
}
