package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Abbr(t *testing.T) {
	cases := map[Status]string{
		StatusPresent:      "P",
		StatusAbsent:       "A",
		StatusHalfDay:      "HD",
		StatusWorkFromHome: "WFH",
		StatusOnLeave:      "L",
		StatusHoliday:      "H",
		StatusWeeklyOff:    "WO",
		Status(""):         "",
		Status("Unknown"):  "",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.Abbr(), "status %q", status)
	}
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.IsValid(), "status %q", s)
	}
	assert.False(t, Status("present").IsValid())
	assert.Len(t, Statuses, 7)
}

func TestSummary_HasActivity(t *testing.T) {
	assert.False(t, Summary{Days: []int{3}, RecordedHolidays: 1}.HasActivity())
	assert.True(t, Summary{TotalHalfDays: 0.5}.HasActivity())
	assert.True(t, Summary{TotalAbsent: 1}.HasActivity())
}
