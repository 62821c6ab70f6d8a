package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-06-07", "2024-02-29", "0001-01-01", "9999-12-31"}
	for _, d := range valid {
		assert.True(t, IsValidDate(d), "expected %q to be valid", d)
	}

	invalid := []string{
		"",
		"2023-02-30", // not a real calendar day
		"2023-02-29", // 2023 is not a leap year
		"06-07-2023", // wrong field order
		"2023/06/07",
		"2023-6-7",
		"2023-13-01",
		"2023-00-10",
		"20230607",
		"2023-06-07T00:00:00",
		"yesterday",
	}
	for _, d := range invalid {
		assert.False(t, IsValidDate(d), "expected %q to be invalid", d)
	}
}

func TestParseDateOrZero(t *testing.T) {
	assert.Equal(t, time.Date(2023, 6, 7, 0, 0, 0, 0, time.UTC), ParseDateOrZero("2023-06-07"))
	assert.True(t, ParseDateOrZero("").IsZero())
	assert.True(t, ParseDateOrZero("not-a-date").IsZero())
}
