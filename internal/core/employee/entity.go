package employee

import "time"

// Status は社員の在籍状態を表します。状態遷移の制約はありません。
type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOnLeave    Status = "on-leave"
	StatusTerminated Status = "terminated"
)

// EmploymentType は雇用形態を表します。
type EmploymentType string

const (
	EmploymentFullTime  EmploymentType = "full-time"
	EmploymentPartTime  EmploymentType = "part-time"
	EmploymentContract  EmploymentType = "contract"
	EmploymentTemporary EmploymentType = "temporary"
	EmploymentIntern    EmploymentType = "intern"
)

// CertificationStatus は資格の有効状態を表します。
type CertificationStatus string

const (
	CertificationValid   CertificationStatus = "valid"
	CertificationExpired CertificationStatus = "expired"
	CertificationPending CertificationStatus = "pending"
)

// Weekday は勤務パターンの曜日キーです。
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays は月曜始まりの曜日順です。
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DaySchedule は 1 日分の標準勤務パターンです。
type DaySchedule struct {
	IsWorking     bool   `json:"is_working"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	BreakDuration int    `json:"break_duration"`
}

// WorkSchedule は 7 日分の勤務パターンです。
type WorkSchedule map[Weekday]DaySchedule

// EmergencyContact は緊急連絡先です。
type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

// Certification は社員が保有する資格です。
type Certification struct {
	Name       string              `json:"name"`
	IssuedBy   string              `json:"issued_by"`
	IssueDate  string              `json:"issue_date"`
	ExpiryDate string              `json:"expiry_date,omitempty"`
	Status     CertificationStatus `json:"status"`
}

// Employee は社員エンティティです。
type Employee struct {
	ID               string
	EmployeeCode     string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Position         string
	DepartmentID     string
	EmploymentType   EmploymentType
	Status           Status
	HireDate         string
	Salary           float64
	HourlyRate       float64
	WorkSchedule     WorkSchedule
	EmergencyContact EmergencyContact
	Skills           []string
	Certifications   []Certification
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FullName は表示用の氏名を返します。
func (e *Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Clone は可変フィールドを含めて複製します。
func (e *Employee) Clone() *Employee {
	if e == nil {
		return nil
	}
	copy := *e
	if e.WorkSchedule != nil {
		copy.WorkSchedule = make(WorkSchedule, len(e.WorkSchedule))
		for day, schedule := range e.WorkSchedule {
			copy.WorkSchedule[day] = schedule
		}
	}
	if e.Skills != nil {
		copy.Skills = append([]string(nil), e.Skills...)
	}
	if e.Certifications != nil {
		copy.Certifications = append([]Certification(nil), e.Certifications...)
	}
	return &copy
}
