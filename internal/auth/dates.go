package auth

import (
	"strings"
	"time"

	"github.com/irwhub/employee-contract-app/internal/apperr"
)

// NormalizeDateOfBirth canonicalizes a date-of-birth value to
// YYYY-MM-DD. Accepted inputs are YYYY-MM-DD, YYYYMMDD and the 2-digit
// year form YYMMDD, where years >= 30 belong to the 1900s and years
// < 30 to the 2000s. Impossible calendar dates are rejected.
func NormalizeDateOfBirth(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	var layout, value string
	switch len(s) {
	case 10:
		layout, value = "2006-01-02", s
	case 8:
		layout, value = "20060102", s
	case 6:
		century := "20"
		if s[0] >= '3' {
			century = "19"
		}
		layout, value = "20060102", century+s
	default:
		return "", apperr.Validationf("invalid date of birth: %q", raw)
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return "", apperr.Validationf("invalid date of birth: %q", raw)
	}
	return t.Format("2006-01-02"), nil
}
