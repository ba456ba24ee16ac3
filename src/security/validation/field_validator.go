// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrValidationFailed is the sentinel wrapped by every field validation error.
var ErrValidationFailed = fmt.Errorf("validation failed")

var (
	taxNumberPattern    = regexp.MustCompile(`^[0-9]{8}$`)
	currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// Tax years accepted for filing. The product launched for the 2024 tax year.
const (
	MinTaxYear = 2024
	MaxTaxYear = 2100
)

// ValidateTaxNumber checks a Slovenian personal tax number: exactly 8 ASCII digits.
func ValidateTaxNumber(taxNumber string) error {
	if !taxNumberPattern.MatchString(taxNumber) {
		return fmt.Errorf("%w: tax number must be exactly 8 digits", ErrValidationFailed)
	}
	return nil
}

// ValidateTaxYear parses and bounds-checks a tax year form value.
func ValidateTaxYear(yearStr string) (int, error) {
	trimmed := strings.TrimSpace(yearStr)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: tax year is required", ErrValidationFailed)
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: tax year '%s' is not a number", ErrValidationFailed, yearStr)
	}
	if year < MinTaxYear || year > MaxTaxYear {
		return 0, fmt.Errorf("%w: tax year %d is out of the supported range", ErrValidationFailed, year)
	}
	return year, nil
}

// ValidateCurrencyCode checks a 3-letter uppercase ISO 4217 code.
func ValidateCurrencyCode(code string) error {
	if !currencyCodePattern.MatchString(code) {
		return fmt.Errorf("%w: currency code '%s' is not a 3-letter ISO code", ErrValidationFailed, code)
	}
	return nil
}
