// FILE: hydrolog/src/internal/header/clean_test.go
package header

import (
	"testing"

	"hydrolog/src/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestCleanDate(t *testing.T) {
	testCases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024-01-15 10:11:12", "2024-01-15", true},
		{"01/15/2024", "2024-01-15", true},
		{"15/01/2024", "2024-01-15", true},
		{"2024/01/15", "2024-01-15", true},
		{"January 15, 2024", "2024-01-15", true},
		{"15 January 2024", "2024-01-15", true},
		{"20240115", "2024-01-15", true},
		{"recorded 2024-01-15 UTC", "2024-01-15", true},
		{"", "", false},
		{"soon", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := CleanDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDateFromFilename(t *testing.T) {
	testCases := []struct {
		name string
		want string
		ok   bool
	}{
		{"/data/icListen_20240115_021234.txt", "2024-01-15", true},
		{"survey-2024-03-02.dat", "2024-03-02", true},
		{"survey_2024_03_02.txt", "2024-03-02", true},
		{"log-03-02-2024.txt", "2024-03-02", true},
		{"log-25-12-2024.txt", "2024-12-25", true},
		{"spectrum.txt", "", false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DateFromFilename(tc.name)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got.Format(DateLayout))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	ok := Parse([]string{"Client\tA", "Job\tB", "Start Date\t2024-01-15"})
	assert.Empty(t, Validate(ok))

	missing := Parse([]string{"Client\tA"})
	errs := Validate(missing)
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), "job")
	}

	badDate := Parse([]string{"Client\tA", "Job\tB", "Start Date\t15/01/2024"})
	errs = Validate(badDate)
	if assert.Len(t, errs, 1) {
		assert.Contains(t, errs[0].Error(), "start_date")
	}

	assert.Len(t, Validate(core.ParsedHeader{}), 2)
}
