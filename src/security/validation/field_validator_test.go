package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTaxNumber(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		taxNumber string
		valid     bool
	}{
		{"valid", "12345678", true},
		{"leading zero", "01234567", true},
		{"too short", "1234567", false},
		{"too long", "123456789", false},
		{"empty", "", false},
		{"letters", "1234567a", false},
		{"embedded space", "1234 678", false},
		{"surrounding whitespace", " 12345678", false},
		{"unicode digits", "１２３４５６７８", false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTaxNumber(tc.taxNumber)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrValidationFailed)
			}
		})
	}
}

func TestValidateTaxYear(t *testing.T) {
	t.Parallel()
	year, err := ValidateTaxYear("2024")
	require.NoError(t, err)
	require.Equal(t, 2024, year)

	year, err = ValidateTaxYear(" 2025 ")
	require.NoError(t, err)
	require.Equal(t, 2025, year)

	for _, invalid := range []string{"", "abcd", "2023", "2101", "20.24"} {
		_, err := ValidateTaxYear(invalid)
		require.ErrorIs(t, err, ErrValidationFailed, "input %q", invalid)
	}
}

func TestValidateCurrencyCode(t *testing.T) {
	t.Parallel()
	require.NoError(t, ValidateCurrencyCode("EUR"))
	require.NoError(t, ValidateCurrencyCode("USD"))
	for _, invalid := range []string{"", "eur", "EURO", "E1R", "EU"} {
		require.ErrorIs(t, ValidateCurrencyCode(invalid), ErrValidationFailed, "input %q", invalid)
	}
}
