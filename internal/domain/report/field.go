package report

import "strings"

// FieldName converts a label such as "Sick Leave" into a row key ("sick_leave").
func FieldName(label string) string {
	s := strings.ReplaceAll(label, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}
