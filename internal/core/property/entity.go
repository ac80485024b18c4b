package property

import "time"

// 永続化キーです。値はすべて JSON で保存します。
const (
	KeyProperties        = "properties"
	KeyCurrentProperty   = "currentPropertyId"
	settingsKeyPrefix    = "property-settings-"
	defaultCheckInTime   = "14:00"
	defaultCheckOutTime  = "11:00"
	defaultCurrency      = "CZK"
	defaultLanguage      = "cs"
	defaultPropertyName  = "Hotel"
	defaultPropertyRooms = 0
)

// SettingsKey は施設設定の保存キーを返します。
func SettingsKey(propertyID string) string {
	return settingsKeyPrefix + propertyID
}

// Property は施設 (ホテル) エンティティです。
type Property struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Rooms     int       `json:"rooms"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Settings は施設ごとの運用設定です。
type Settings struct {
	PropertyID   string    `json:"propertyId"`
	CheckInTime  string    `json:"checkInTime"`
	CheckOutTime string    `json:"checkOutTime"`
	Currency     string    `json:"currency"`
	Timezone     string    `json:"timezone"`
	Language     string    `json:"language"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// DefaultSettings は未保存の施設に返す既定値です。
func DefaultSettings(propertyID, timezone string) *Settings {
	return &Settings{
		PropertyID:   propertyID,
		CheckInTime:  defaultCheckInTime,
		CheckOutTime: defaultCheckOutTime,
		Currency:     defaultCurrency,
		Timezone:     timezone,
		Language:     defaultLanguage,
	}
}
