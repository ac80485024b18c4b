package employee

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter は社員一覧の検索条件です。各条件は AND で結合されます。
type Filter struct {
	// Query は氏名・メール・社員コード・役職に対する部分一致検索語です。
	Query        string
	DepartmentID string
	Status       *Status
}

// Apply は条件に一致する社員を元の順序を保ったまま返します。
func (f Filter) Apply(employees []*Employee) []*Employee {
	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(f.Query))

	out := make([]*Employee, 0, len(employees))
	for _, emp := range employees {
		if f.DepartmentID != "" && emp.DepartmentID != f.DepartmentID {
			continue
		}
		if f.Status != nil && emp.Status != *f.Status {
			continue
		}
		if query != "" && !matchesQuery(folder, emp, query) {
			continue
		}
		out = append(out, emp)
	}
	return out
}

func matchesQuery(folder cases.Caser, emp *Employee, query string) bool {
	fields := [...]string{emp.FirstName, emp.LastName, emp.Email, emp.EmployeeCode, emp.Position}
	for _, field := range fields {
		if strings.Contains(folder.String(field), query) {
			return true
		}
	}
	return false
}
