package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseStatementDate(t *testing.T) {
	t.Parallel()
	expected := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{"iso", "2024-03-05"},
		{"day month year", "5 Mar 2024"},
		{"month day year", "Mar 5, 2024"},
		{"long month", "March 5, 2024"},
		{"slash european", "05/03/2024"},
		{"dotted", "5.3.2024"},
		{"surrounding whitespace", " 2024-03-05 "},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			parsed, err := ParseStatementDate(tc.input)
			require.NoError(t, err)
			require.Equal(t, expected, parsed)
		})
	}
}

func TestParseStatementDateRFC3339KeepsTime(t *testing.T) {
	t.Parallel()
	parsed, err := ParseStatementDate("2024-03-05T10:30:00Z")
	require.NoError(t, err)
	require.Equal(t, 2024, parsed.Year())
	require.Equal(t, 10, parsed.Hour())
}

func TestParseStatementDateRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "not a date", "2024-13-01", "31/31/2024"} {
		_, err := ParseStatementDate(input)
		require.Error(t, err, "input %q", input)
	}
}
