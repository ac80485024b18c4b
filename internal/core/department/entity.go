package department

import "time"

// 組み込みの部署 ID です。
const (
	FrontDesk    = "front-desk"
	Housekeeping = "housekeeping"
	Maintenance  = "maintenance"
	FoodBeverage = "food-beverage"
	Security     = "security"
	Management   = "management"
	SpaWellness  = "spa-wellness"
	Concierge    = "concierge"
)

// BuiltinIDs は組み込み部署 ID を表示順に並べたものです。
var BuiltinIDs = []string{
	FrontDesk,
	Housekeeping,
	Maintenance,
	FoodBeverage,
	Security,
	Management,
	SpaWellness,
	Concierge,
}

var displayNames = map[string]string{
	FrontDesk:    "Recepce",
	Housekeeping: "Úklid",
	Maintenance:  "Údržba",
	FoodBeverage: "Restaurace & Bar",
	Security:     "Ostraha",
	Management:   "Management",
	SpaWellness:  "Wellness & Spa",
	Concierge:    "Concierge",
}

// DisplayName は部署 ID の表示名を返します。未知の ID はそのまま返します。
func DisplayName(id string) string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return id
}

// IsBuiltin は組み込み部署 ID かどうかを判定します。
func IsBuiltin(id string) bool {
	_, ok := displayNames[id]
	return ok
}

// Department は部署エンティティです。社員とシフトは ID で参照します。
type Department struct {
	ID             string
	Name           string
	Description    string
	HeadEmployeeID *string
	Budget         *float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone は Department の複製を返します。
func (d *Department) Clone() *Department {
	if d == nil {
		return nil
	}
	out := *d
	if d.HeadEmployeeID != nil {
		head := *d.HeadEmployeeID
		out.HeadEmployeeID = &head
	}
	if d.Budget != nil {
		budget := *d.Budget
		out.Budget = &budget
	}
	return &out
}
