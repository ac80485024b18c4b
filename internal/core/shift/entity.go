package shift

import (
	"fmt"
	"time"
)

// Status はシフトの進行状態を表します。遷移は画面操作に任されており検証しません。
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusMissed     Status = "missed"
	StatusCancelled  Status = "cancelled"
)

const (
	// DateLayout はシフト日付の書式です。
	DateLayout = "2006-01-02"
	// ClockLayout は開始・終了時刻の書式です。
	ClockLayout = "15:04"
)

// Shift は 1 名の社員の 1 日分の勤務枠です。
type Shift struct {
	ID           string
	EmployeeID   string
	DepartmentID string
	Date         string
	StartTime    string
	EndTime      string
	BreakMinutes int
	// CrossesMidnight が true の場合、EndTime は翌日の時刻として扱います。
	CrossesMidnight bool
	Status          Status
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone はシフトを複製します。
func (s *Shift) Clone() *Shift {
	if s == nil {
		return nil
	}
	copy := *s
	return &copy
}

// Duration は休憩を差し引いた勤務時間を返します。負にはなりません。
func (s *Shift) Duration() (time.Duration, error) {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return 0, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return 0, fmt.Errorf("end_time: %w", err)
	}

	if s.CrossesMidnight {
		end += 24 * time.Hour
	}

	worked := end - start - time.Duration(s.BreakMinutes)*time.Minute
	if worked < 0 {
		return 0, nil
	}
	return worked, nil
}

// Hours は Duration を時間単位で返します。時刻が不正な場合は 0 です。
func (s *Shift) Hours() float64 {
	d, err := s.Duration()
	if err != nil {
		return 0
	}
	return d.Hours()
}

// ParseClock は "HH:MM" を 0 時からの経過時間に変換します。
func ParseClock(raw string) (time.Duration, error) {
	t, err := time.Parse(ClockLayout, raw)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
