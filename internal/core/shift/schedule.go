package shift

import "time"

const daysPerWeek = 7

// DateOf は t を loc のタイムゾーンで暦日にした YYYY-MM-DD を返します。
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// WeekStart は t を含む週の月曜日 0 時 (loc) を返します。日曜日は前週の月曜日に属します。
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	weekday := int(local.Weekday())
	back := weekday - 1
	if weekday == 0 {
		back = 6
	}
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -back)
}

// WeekDates は t を含む月曜始まりの 7 日分の日付を返します。
func WeekDates(t time.Time, loc *time.Location) []string {
	start := WeekStart(t, loc)
	dates := make([]string, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// ShiftWeek はカレンダーの週送りです。weeks が負なら過去へ戻ります。
func ShiftWeek(t time.Time, weeks int) time.Time {
	return t.AddDate(0, 0, daysPerWeek*weeks)
}

// WeekSchedule は週カレンダー表示用に社員・日付ごとへ振り分けたシフトです。
type WeekSchedule struct {
	Start     string
	End       string
	Dates     []string
	Employees []EmployeeWeek
}

// EmployeeWeek は 1 名分の週間シフトです。Days のキーは Dates の要素です。
type EmployeeWeek struct {
	EmployeeID  string
	Days        map[string][]*Shift
	TotalHours  float64
	ShiftsCount int
}

// BuildWeekSchedule は shifts を dates の範囲で社員ごとに振り分けます。
// employeeIDs を指定した場合はその順で行を作り、シフトのない社員も空行として含めます。
func BuildWeekSchedule(dates []string, employeeIDs []string, shifts []*Shift) *WeekSchedule {
	ws := &WeekSchedule{Dates: dates}
	if len(dates) > 0 {
		ws.Start = dates[0]
		ws.End = dates[len(dates)-1]
	}

	inWeek := make(map[string]bool, len(dates))
	for _, d := range dates {
		inWeek[d] = true
	}

	rows := make(map[string]*EmployeeWeek)
	order := make([]string, 0)
	addRow := func(id string) *EmployeeWeek {
		if row, ok := rows[id]; ok {
			return row
		}
		row := &EmployeeWeek{EmployeeID: id, Days: make(map[string][]*Shift, len(dates))}
		for _, d := range dates {
			row.Days[d] = []*Shift{}
		}
		rows[id] = row
		order = append(order, id)
		return row
	}

	restricted := employeeIDs != nil
	for _, id := range employeeIDs {
		addRow(id)
	}

	for _, s := range shifts {
		if !inWeek[s.Date] {
			continue
		}
		row, ok := rows[s.EmployeeID]
		if !ok {
			if restricted {
				continue
			}
			row = addRow(s.EmployeeID)
		}
		row.Days[s.Date] = append(row.Days[s.Date], s)
		row.TotalHours += s.Hours()
		row.ShiftsCount++
	}

	ws.Employees = make([]EmployeeWeek, 0, len(order))
	for _, id := range order {
		ws.Employees = append(ws.Employees, *rows[id])
	}
	return ws
}
