package store

import "strings"

// ExportSubmissionsCSV 导出全部表单提交为 CSV 文本，新的在前。
// 字段按原样拼接，不做分隔符转义：自由文本含逗号时该行会错列，
// 行为与历史导出保持一致，修正前先确认下游报表是否依赖现状。
func (s *Store) ExportSubmissionsCSV() string {
	var b strings.Builder
	b.WriteString("Date,Type,Name,Email,Phone,Status\n")
	for _, sub := range s.Submissions() {
		b.WriteString(strings.Join([]string{
			sub.CreatedAt,
			string(sub.Type),
			sub.Name,
			sub.Email,
			sub.Phone,
			string(sub.Status),
		}, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
