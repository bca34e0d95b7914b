package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

type sample struct {
	Company string `json:"company" validate:"required,uuid"`
	Month   int    `json:"month" validate:"min=1,max=12"`
	GroupBy string `json:"group_by" validate:"omitempty,oneof=Branch Grade"`
	Secret  string `json:"-" validate:"omitempty,max=3"`
}

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Company: "0190a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b", Month: 4, GroupBy: "Grade"})
	assert.NoError(t, err)
}

func TestStruct_CollectsFieldErrorsByJSONName(t *testing.T) {
	err := Struct(sample{Company: "not-a-uuid", Month: 13, GroupBy: "Team"})
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	m := errs.ToMap()
	assert.Equal(t, "company must be a valid UUID", m["company"])
	assert.Equal(t, "month must be at most 12", m["month"])
	assert.Equal(t, "group_by must be one of: Branch, Grade", m["group_by"])
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{Month: 1})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, map[string]string{"company": "company is required"}, errs.ToMap())
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "month", Message: "bad"},
		{Field: "year", Message: "worse"},
	}
	assert.Equal(t, "month: bad; year: worse", errs.Error())
}
