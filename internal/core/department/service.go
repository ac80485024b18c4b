package department

import (
	"context"
	"errors"
	"fmt"
	"regexp"
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

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Service は部署に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は部署ユースケースの公開インターフェースです。
type UseCase interface {
	CreateDepartment(ctx context.Context, in CreateDepartmentInput) (*Department, error)
	GetDepartment(ctx context.Context, in GetDepartmentInput) (*Department, error)
	ListDepartments(ctx context.Context) ([]*Department, error)
	UpdateDepartment(ctx context.Context, in UpdateDepartmentInput) (*Department, error)
	DeleteDepartment(ctx context.Context, in DeleteDepartmentInput) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateDepartmentInput は部署作成時の入力です。ID が空の場合は UUID を採番します。
type CreateDepartmentInput struct {
	ID             string
	Name           string
	Description    string
	HeadEmployeeID *string
	Budget         *float64
}

// UpdateDepartmentInput は部署更新時の入力です。
// ClearHead / ClearBudget は任意項目を未設定に戻します。
type UpdateDepartmentInput struct {
	ID             string
	Name           *string
	Description    *string
	HeadEmployeeID *string
	ClearHead      bool
	Budget         *float64
	ClearBudget    bool
}

// GetDepartmentInput は部署取得時の入力です。
type GetDepartmentInput struct {
	ID string
}

// DeleteDepartmentInput は部署削除時の入力です。
type DeleteDepartmentInput struct {
	ID string
}

// CreateDepartment は新しい部署を作成します。
func (s *Service) CreateDepartment(ctx context.Context, in CreateDepartmentInput) (*Department, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := validateBudget(in.Budget); err != nil {
		return nil, err
	}

	id := strings.ToLower(strings.TrimSpace(in.ID))
	if id != "" && !idPattern.MatchString(id) {
		return nil, ErrInvalidID
	}

	var created *Department
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if id == "" {
			generated, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("department: generate id: %w", err)
			}
			id = generated.String()
		} else if err := s.ensureIDNotExists(txCtx, id); err != nil {
			return err
		}

		now := s.clock.Now()
		dept := &Department{
			ID:             id,
			Name:           name,
			Description:    strings.TrimSpace(in.Description),
			HeadEmployeeID: normalizeOptional(in.HeadEmployeeID),
			Budget:         in.Budget,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		result, err := s.repo.Create(txCtx, dept)
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

// UpdateDepartment は部署情報を更新します。該当部署がない場合は (nil, nil) を返します。
func (s *Service) UpdateDepartment(ctx context.Context, in UpdateDepartmentInput) (*Department, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Department
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if errors.Is(err, ErrDepartmentNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			existing.Name = name
		}
		if in.Description != nil {
			existing.Description = strings.TrimSpace(*in.Description)
		}
		switch {
		case in.ClearHead:
			existing.HeadEmployeeID = nil
		case in.HeadEmployeeID != nil:
			existing.HeadEmployeeID = normalizeOptional(in.HeadEmployeeID)
		}
		switch {
		case in.ClearBudget:
			existing.Budget = nil
		case in.Budget != nil:
			if err := validateBudget(in.Budget); err != nil {
				return err
			}
			budget := *in.Budget
			existing.Budget = &budget
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

// DeleteDepartment は部署を削除します。所属社員やシフトは変更しません。
func (s *Service) DeleteDepartment(ctx context.Context, in DeleteDepartmentInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		err := s.repo.Delete(txCtx, in.ID)
		if errors.Is(err, ErrDepartmentNotFound) {
			return nil
		}
		return err
	})
}

// GetDepartment は ID で部署を取得します。
func (s *Service) GetDepartment(ctx context.Context, in GetDepartmentInput) (*Department, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var dept *Department
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		dept = result
		return nil
	}); err != nil {
		return nil, err
	}

	return dept, nil
}

// ListDepartments は登録順に部署を返します。
func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	var depts []*Department
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		depts = result
		return nil
	}); err != nil {
		return nil, err
	}
	return depts, nil
}

func (s *Service) ensureIDNotExists(ctx context.Context, id string) error {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, ErrDepartmentNotFound) {
		return err
	}
	if dept != nil {
		return ErrIDAlreadyExists
	}
	return nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeOptional(raw *string) *string {
	if raw == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateBudget(budget *float64) error {
	if budget != nil && *budget < 0 {
		return ErrInvalidBudget
	}
	return nil
}
