package property

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type mapStore struct {
	values map[string][]byte
	setErr error
}

func newMapStore() *mapStore {
	return &mapStore{values: make(map[string][]byte)}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *mapStore) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func newTestService() (*Service, *mapStore, *stubClock) {
	store := newMapStore()
	clk := &stubClock{now: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)}
	return NewService(store, clk, nil, "Europe/Prague"), store, clk
}

func TestCreateProperty_FirstBecomesCurrent(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService()
	ctx := context.Background()

	first, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: " Hotel Praha ", City: "Praha", Rooms: 42})
	require.NoError(t, err)
	assert.Equal(t, "Hotel Praha", first.Name)

	second, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "Hotel Brno"})
	require.NoError(t, err)

	current, err := svc.CurrentProperty(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, current.ID)

	var currentID string
	require.NoError(t, json.Unmarshal(store.values[KeyCurrentProperty], &currentID))
	assert.Equal(t, first.ID, currentID)

	var stored []Property
	require.NoError(t, json.Unmarshal(store.values[KeyProperties], &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, second.ID, stored[1].ID)
}

func TestCreateProperty_Validation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	_, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: " "})
	require.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "Hotel", Rooms: -1})
	require.ErrorIs(t, err, ErrInvalidRooms)
}

func TestDeleteProperty_LastPropertyGuard(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	only, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "Hotel Praha"})
	require.NoError(t, err)

	err = svc.DeleteProperty(ctx, DeletePropertyInput{ID: only.ID})
	require.ErrorIs(t, err, ErrLastProperty)

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, props, 1)
}

func TestDeleteProperty_CurrentReselectsFirstRemaining(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService()
	ctx := context.Background()

	a, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "A"})
	require.NoError(t, err)
	b, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "B"})
	require.NoError(t, err)
	c, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "C"})
	require.NoError(t, err)

	_, err = svc.SelectProperty(ctx, c.ID)
	require.NoError(t, err)
	currency := "eur"
	_, err = svc.UpdateSettings(ctx, UpdateSettingsInput{PropertyID: c.ID, Currency: &currency})
	require.NoError(t, err)
	require.Contains(t, store.values, SettingsKey(c.ID))

	require.NoError(t, svc.DeleteProperty(ctx, DeletePropertyInput{ID: c.ID}))
	assert.NotContains(t, store.values, SettingsKey(c.ID))

	current, err := svc.CurrentProperty(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID)

	require.NoError(t, svc.DeleteProperty(ctx, DeletePropertyInput{ID: b.ID}))
	current, err = svc.CurrentProperty(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, current.ID, "deleting a non-current property keeps the selection")
}

func TestDeleteProperty_Unknown(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	_, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "A"})
	require.NoError(t, err)

	err = svc.DeleteProperty(context.Background(), DeletePropertyInput{ID: "missing"})
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestUpdateProperty(t *testing.T) {
	t.Parallel()

	svc, _, clk := newTestService()
	ctx := context.Background()
	created, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "A", Rooms: 10})
	require.NoError(t, err)

	clk.now = clk.now.Add(time.Hour)
	rooms := 12
	name := "Hotel A"
	updated, err := svc.UpdateProperty(ctx, UpdatePropertyInput{ID: created.ID, Name: &name, Rooms: &rooms})
	require.NoError(t, err)
	assert.Equal(t, "Hotel A", updated.Name)
	assert.Equal(t, 12, updated.Rooms)
	assert.True(t, updated.UpdatedAt.Equal(clk.now))

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hotel A", props[0].Name)

	_, err = svc.UpdateProperty(ctx, UpdatePropertyInput{ID: "missing", Name: &name})
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestCurrentProperty_Empty(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	_, err := svc.CurrentProperty(context.Background())
	require.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = svc.SelectProperty(context.Background(), "missing")
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	t.Parallel()

	svc, _, clk := newTestService()
	ctx := context.Background()

	p1, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "Hotel Praha"})
	require.NoError(t, err)

	defaults, err := svc.GetSettings(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "14:00", defaults.CheckInTime)
	assert.Equal(t, "11:00", defaults.CheckOutTime)
	assert.Equal(t, "CZK", defaults.Currency)
	assert.Equal(t, "Europe/Prague", defaults.Timezone)

	checkIn := "15:00"
	tz := "Europe/Vienna"
	updated, err := svc.UpdateSettings(ctx, UpdateSettingsInput{PropertyID: p1.ID, CheckInTime: &checkIn, Timezone: &tz})
	require.NoError(t, err)
	assert.Equal(t, "15:00", updated.CheckInTime)
	assert.Equal(t, "11:00", updated.CheckOutTime)
	assert.True(t, updated.UpdatedAt.Equal(clk.now))

	reloaded, err := svc.GetSettings(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Vienna", reloaded.Timezone)
	assert.Equal(t, "15:00", reloaded.CheckInTime)
}

func TestUpdateSettings_Validation(t *testing.T) {
	t.Parallel()

	bad := []UpdateSettingsInput{
		{CheckInTime: ptr("25:00")},
		{CheckOutTime: ptr("11")},
		{Currency: ptr("koruna")},
		{Timezone: ptr("Mars/Olympus")},
		{Language: ptr(" ")},
	}
	for _, in := range bad {
		svc, _, _ := newTestService()
		p, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "Hotel Praha"})
		require.NoError(t, err)
		in.PropertyID = p.ID
		_, err = svc.UpdateSettings(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidSettings)
	}
}

func TestSettings_UnknownProperty(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateProperty(ctx, CreatePropertyInput{Name: "Hotel Praha"})
	require.NoError(t, err)

	_, err = svc.UpdateSettings(ctx, UpdateSettingsInput{PropertyID: "ghost", Currency: ptr("eur")})
	require.ErrorIs(t, err, ErrPropertyNotFound)
	_, stored := store.values[SettingsKey("ghost")]
	assert.False(t, stored)

	_, err = svc.GetSettings(ctx, "ghost")
	require.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestEnsureDefault(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.EnsureDefault(ctx, "Hotel Praha")
	require.NoError(t, err)
	assert.Equal(t, "Hotel Praha", created.Name)

	again, err := svc.EnsureDefault(ctx, "Other")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, props, 1)
}

func TestStoreErrorsPropagate(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService()
	boom := errors.New("boom")
	store.setErr = boom

	_, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "A"})
	require.ErrorIs(t, err, boom)
}

func TestCorruptValue(t *testing.T) {
	t.Parallel()

	svc, store, _ := newTestService()
	store.values[KeyProperties] = []byte("{not json")

	_, err := svc.ListProperties(context.Background())
	require.Error(t, err)
}

func ptr[T any](v T) *T {
	return &v
}
