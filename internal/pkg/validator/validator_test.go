package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("a"))
	assert.False(t, IsEmpty("  a  "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"jane@example.com",
		"jane.doe+tag@sub.example.co.id",
		"j_d%x@example.io",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"jane",
		"jane@",
		"@example.com",
		"jane@example",
		"jane doe@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("0"))
	assert.True(t, IsNumeric("123456"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a"))
	assert.False(t, IsNumeric("-1"))
	assert.False(t, IsNumeric("1.5"))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2025-06-09")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), date)

	_, ok = IsValidDate("09-06-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)

	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth(1))
	assert.True(t, IsValidMonth(12))
	assert.False(t, IsValidMonth(0))
	assert.False(t, IsValidMonth(13))
	assert.False(t, IsValidMonth(-3))
}

func TestIsValidWorkingDaysPerWeek(t *testing.T) {
	for days := 0; days <= 7; days++ {
		assert.True(t, IsValidWorkingDaysPerWeek(days), days)
	}
	assert.False(t, IsValidWorkingDaysPerWeek(-1))
	assert.False(t, IsValidWorkingDaysPerWeek(8))
}

func TestIsInSlice(t *testing.T) {
	types := []string{"paid", "sick", "unpaid"}
	assert.True(t, IsInSlice("sick", types))
	assert.False(t, IsInSlice("maternity", types))
	assert.False(t, IsInSlice("sick", nil))
}

func TestIsValidEmployeeCode(t *testing.T) {
	assert.True(t, IsValidEmployeeCode("OIJADO20250001"))
	assert.True(t, IsValidEmployeeCode("OIXXXX19990042"))

	assert.False(t, IsValidEmployeeCode(""))
	assert.False(t, IsValidEmployeeCode("oijado20250001"))
	assert.False(t, IsValidEmployeeCode("XXJADO20250001"))
	assert.False(t, IsValidEmployeeCode("OIJAD020250001"))
	assert.False(t, IsValidEmployeeCode("OIJADO2025001"))
	assert.False(t, IsValidEmployeeCode("OIJADO202500012"))
}
