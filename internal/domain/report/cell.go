package report

import (
	"fmt"
	"html"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
)

// DefaultHalfDayDuration is shown for a Half Day whose worked time is unknown.
const DefaultHalfDayDuration = "04:00"

// Cell is the computed content of one employee/shift/day position.
// Status is empty for an unmarked day.
type Cell struct {
	Status    attendance.Status `json:"status,omitempty"`
	Duration  string            `json:"duration,omitempty"`
	LeaveType string            `json:"leave_type,omitempty"`
}

// Text renders the cell without markup: the leave type name for leave,
// "<abbr> - <HH:MM> hrs" when a duration is known, the abbreviation otherwise.
func (c Cell) Text() string {
	if c.LeaveType != "" {
		return c.LeaveType
	}
	abbr := c.Status.Abbr()
	if c.Duration != "" && abbr != "" {
		return fmt.Sprintf("%s - %s hrs", abbr, c.Duration)
	}
	return abbr
}

// Color is the text color of the status, "" for unstyled statuses.
func (c Cell) Color() string {
	return statusColor(c.Status)
}

// HTML wraps Text in a colored span for styled statuses.
func (c Cell) HTML() string {
	text := html.EscapeString(c.Text())
	color := c.Color()
	if color == "" {
		return text
	}
	return fmt.Sprintf(`<span style="color: %s;">%s</span>`, color, text)
}

func statusColor(s attendance.Status) string {
	switch s {
	case attendance.StatusPresent:
		return "green"
	case attendance.StatusAbsent:
		return "red"
	case attendance.StatusOnLeave:
		return "#4682b4"
	case attendance.StatusHalfDay:
		return "orange"
	}
	return ""
}

var legendColors = map[attendance.Status]string{
	attendance.StatusPresent:      "green",
	attendance.StatusAbsent:       "red",
	attendance.StatusHalfDay:      "orange",
	attendance.StatusWorkFromHome: "green",
	attendance.StatusOnLeave:      "#318AD8",
}

// Legend returns the status/abbreviation key shown above the detailed sheet.
func Legend() string {
	var b strings.Builder
	for _, s := range attendance.Statuses {
		fmt.Fprintf(&b,
			"<span style='border-left: 2px solid %s; padding-right: 12px; padding-left: 5px; margin-right: 3px;'>%s - %s</span>",
			legendColors[s], s, s.Abbr())
	}
	return b.String()
}
