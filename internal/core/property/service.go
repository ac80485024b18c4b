package property

import (
	"context"
	"encoding/json"
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

var (
	clockPattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Service は施設の一覧・選択・設定を扱います。
type Service struct {
	store           Store
	clock           Clock
	tx              TransactionManager
	defaultTimezone string
}

// UseCase は施設ユースケースの公開インターフェースです。
type UseCase interface {
	ListProperties(ctx context.Context) ([]*Property, error)
	CreateProperty(ctx context.Context, in CreatePropertyInput) (*Property, error)
	UpdateProperty(ctx context.Context, in UpdatePropertyInput) (*Property, error)
	DeleteProperty(ctx context.Context, in DeletePropertyInput) error
	CurrentProperty(ctx context.Context) (*Property, error)
	SelectProperty(ctx context.Context, id string) (*Property, error)
	GetSettings(ctx context.Context, propertyID string) (*Settings, error)
	UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*Settings, error)
}

// NewService は Service を生成します。defaultTimezone は設定未保存時の既定タイムゾーンです。
func NewService(store Store, clock Clock, tx TransactionManager, defaultTimezone string) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	return &Service{store: store, clock: clock, tx: tx, defaultTimezone: defaultTimezone}
}

// CreatePropertyInput は施設作成時の入力です。
type CreatePropertyInput struct {
	Name    string
	Address string
	City    string
	Country string
	Rooms   int
}

// UpdatePropertyInput は施設更新時の入力です。
type UpdatePropertyInput struct {
	ID      string
	Name    *string
	Address *string
	City    *string
	Country *string
	Rooms   *int
}

// DeletePropertyInput は施設削除時の入力です。
type DeletePropertyInput struct {
	ID string
}

// UpdateSettingsInput は設定更新時の入力です。
type UpdateSettingsInput struct {
	PropertyID   string
	CheckInTime  *string
	CheckOutTime *string
	Currency     *string
	Timezone     *string
	Language     *string
}

// ListProperties は保存順に施設を返します。
func (s *Service) ListProperties(ctx context.Context) ([]*Property, error) {
	var props []*Property
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		props, err = s.loadProperties(txCtx)
		return err
	}); err != nil {
		return nil, err
	}
	return props, nil
}

// CreateProperty は施設を追加します。最初の施設は現在の施設として選択されます。
func (s *Service) CreateProperty(ctx context.Context, in CreatePropertyInput) (*Property, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Rooms < 0 {
		return nil, ErrInvalidRooms
	}

	var created *Property
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		props, err := s.loadProperties(txCtx)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("property: generate id: %w", err)
		}

		now := s.clock.Now()
		prop := &Property{
			ID:        id.String(),
			Name:      name,
			Address:   strings.TrimSpace(in.Address),
			City:      strings.TrimSpace(in.City),
			Country:   strings.TrimSpace(in.Country),
			Rooms:     in.Rooms,
			CreatedAt: now,
			UpdatedAt: now,
		}
		props = append(props, prop)
		if err := s.saveJSON(txCtx, KeyProperties, props); err != nil {
			return err
		}

		current, err := s.loadCurrentID(txCtx)
		if err != nil {
			return err
		}
		if current == "" || indexOf(props, current) < 0 {
			if err := s.saveJSON(txCtx, KeyCurrentProperty, prop.ID); err != nil {
				return err
			}
		}

		created = prop
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProperty は施設情報を更新します。
func (s *Service) UpdateProperty(ctx context.Context, in UpdatePropertyInput) (*Property, error) {
	if strings.TrimSpace(in.ID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Property
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		props, err := s.loadProperties(txCtx)
		if err != nil {
			return err
		}
		idx := indexOf(props, in.ID)
		if idx < 0 {
			return ErrPropertyNotFound
		}

		prop := props[idx]
		if in.Name != nil {
			name, err := normalizeName(*in.Name)
			if err != nil {
				return err
			}
			prop.Name = name
		}
		if in.Address != nil {
			prop.Address = strings.TrimSpace(*in.Address)
		}
		if in.City != nil {
			prop.City = strings.TrimSpace(*in.City)
		}
		if in.Country != nil {
			prop.Country = strings.TrimSpace(*in.Country)
		}
		if in.Rooms != nil {
			if *in.Rooms < 0 {
				return ErrInvalidRooms
			}
			prop.Rooms = *in.Rooms
		}
		prop.UpdatedAt = s.clock.Now()

		if err := s.saveJSON(txCtx, KeyProperties, props); err != nil {
			return err
		}
		updated = prop
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProperty は施設とその設定を削除します。
// 最後の 1 件は削除できません。現在の施設を削除した場合は残りの先頭を選択します。
func (s *Service) DeleteProperty(ctx context.Context, in DeletePropertyInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		props, err := s.loadProperties(txCtx)
		if err != nil {
			return err
		}
		idx := indexOf(props, in.ID)
		if idx < 0 {
			return ErrPropertyNotFound
		}
		if len(props) <= 1 {
			return ErrLastProperty
		}

		props = append(props[:idx], props[idx+1:]...)
		if err := s.saveJSON(txCtx, KeyProperties, props); err != nil {
			return err
		}
		if err := s.store.Delete(txCtx, SettingsKey(in.ID)); err != nil {
			return err
		}

		current, err := s.loadCurrentID(txCtx)
		if err != nil {
			return err
		}
		if current == in.ID || indexOf(props, current) < 0 {
			return s.saveJSON(txCtx, KeyCurrentProperty, props[0].ID)
		}
		return nil
	})
}

// CurrentProperty は選択中の施設を返します。
// 選択が未保存または無効な場合は先頭の施設を返し、施設がなければ ErrPropertyNotFound です。
func (s *Service) CurrentProperty(ctx context.Context) (*Property, error) {
	var current *Property
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		props, err := s.loadProperties(txCtx)
		if err != nil {
			return err
		}
		if len(props) == 0 {
			return ErrPropertyNotFound
		}
		id, err := s.loadCurrentID(txCtx)
		if err != nil {
			return err
		}
		if idx := indexOf(props, id); idx >= 0 {
			current = props[idx]
			return nil
		}
		current = props[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return current, nil
}

// SelectProperty は現在の施設を切り替えます。
func (s *Service) SelectProperty(ctx context.Context, id string) (*Property, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var selected *Property
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		props, err := s.loadProperties(txCtx)
		if err != nil {
			return err
		}
		idx := indexOf(props, id)
		if idx < 0 {
			return ErrPropertyNotFound
		}
		if err := s.saveJSON(txCtx, KeyCurrentProperty, id); err != nil {
			return err
		}
		selected = props[idx]
		return nil
	}); err != nil {
		return nil, err
	}
	return selected, nil
}

// GetSettings は施設設定を返します。未保存の場合は既定値です。
// 施設が存在しない場合は ErrPropertyNotFound を返却します。
func (s *Service) GetSettings(ctx context.Context, propertyID string) (*Settings, error) {
	if strings.TrimSpace(propertyID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var settings *Settings
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if err := s.requireProperty(txCtx, propertyID); err != nil {
			return err
		}
		var err error
		settings, err = s.loadSettings(txCtx, propertyID)
		return err
	}); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateSettings は施設設定を部分更新して保存します。
func (s *Service) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*Settings, error) {
	if strings.TrimSpace(in.PropertyID) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Settings
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.requireProperty(txCtx, in.PropertyID); err != nil {
			return err
		}
		settings, err := s.loadSettings(txCtx, in.PropertyID)
		if err != nil {
			return err
		}

		if in.CheckInTime != nil {
			if !clockPattern.MatchString(*in.CheckInTime) {
				return fmt.Errorf("check_in_time: %w", ErrInvalidSettings)
			}
			settings.CheckInTime = *in.CheckInTime
		}
		if in.CheckOutTime != nil {
			if !clockPattern.MatchString(*in.CheckOutTime) {
				return fmt.Errorf("check_out_time: %w", ErrInvalidSettings)
			}
			settings.CheckOutTime = *in.CheckOutTime
		}
		if in.Currency != nil {
			currency := strings.ToUpper(strings.TrimSpace(*in.Currency))
			if !currencyPattern.MatchString(currency) {
				return fmt.Errorf("currency: %w", ErrInvalidSettings)
			}
			settings.Currency = currency
		}
		if in.Timezone != nil {
			if _, err := time.LoadLocation(*in.Timezone); err != nil {
				return fmt.Errorf("timezone: %w", ErrInvalidSettings)
			}
			settings.Timezone = *in.Timezone
		}
		if in.Language != nil {
			lang := strings.ToLower(strings.TrimSpace(*in.Language))
			if lang == "" {
				return fmt.Errorf("language: %w", ErrInvalidSettings)
			}
			settings.Language = lang
		}
		settings.UpdatedAt = s.clock.Now()

		if err := s.saveJSON(txCtx, SettingsKey(in.PropertyID), settings); err != nil {
			return err
		}
		updated = settings
		return nil
	}); err != nil {
		return nil, err
	}
	return updated, nil
}

// EnsureDefault は施設が 1 件もない場合に既定の施設を作成します。
func (s *Service) EnsureDefault(ctx context.Context, name string) (*Property, error) {
	props, err := s.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	if len(props) > 0 {
		return s.CurrentProperty(ctx)
	}
	if strings.TrimSpace(name) == "" {
		name = defaultPropertyName
	}
	return s.CreateProperty(ctx, CreatePropertyInput{Name: name, Rooms: defaultPropertyRooms})
}

func (s *Service) loadProperties(ctx context.Context) ([]*Property, error) {
	props := []*Property{}
	found, err := s.loadJSON(ctx, KeyProperties, &props)
	if err != nil {
		return nil, err
	}
	if !found {
		return []*Property{}, nil
	}
	return props, nil
}

func (s *Service) loadCurrentID(ctx context.Context) (string, error) {
	var id string
	if _, err := s.loadJSON(ctx, KeyCurrentProperty, &id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) requireProperty(ctx context.Context, propertyID string) error {
	props, err := s.loadProperties(ctx)
	if err != nil {
		return err
	}
	if indexOf(props, propertyID) < 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *Service) loadSettings(ctx context.Context, propertyID string) (*Settings, error) {
	settings := DefaultSettings(propertyID, s.defaultTimezone)
	if _, err := s.loadJSON(ctx, SettingsKey(propertyID), settings); err != nil {
		return nil, err
	}
	settings.PropertyID = propertyID
	return settings, nil
}

func (s *Service) loadJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("property: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Service) saveJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("property: encode %s: %w", key, err)
	}
	return s.store.Set(ctx, key, raw)
}

func indexOf(props []*Property, id string) int {
	if id == "" {
		return -1
	}
	for i, p := range props {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}
