package models

import (
	"sync"
	"time"
)

const (
	// UnknownExpirationMonth marks an expiration month that is not known
	UnknownExpirationMonth = -1
	// UnknownExpirationYear marks an expiration year that is not known
	UnknownExpirationYear = -1

	// MinExpirationYear is the earliest expiration year accepted
	MinExpirationYear = 1977
	// ExpirationYearsFuture is how far past the current year an expiration may be
	ExpirationYearsFuture = 20
)

// ValidateLuhn validates a card number using the Luhn algorithm.
// Non-digit characters are ignored.
func ValidateLuhn(cardNumber string) error {
	var digits []int
	for _, r := range cardNumber {
		if r >= '0' && r <= '9' {
			digits = append(digits, int(r-'0'))
		}
	}

	if len(digits) < 13 || len(digits) > 19 {
		return newValidationError("card number", "length must be 13-19 digits")
	}

	sum := 0
	isSecond := false

	for i := len(digits) - 1; i >= 0; i-- {
		digit := digits[i]

		if isSecond {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isSecond = !isSecond
	}

	if sum%10 != 0 {
		return newValidationError("card number", "failed Luhn check")
	}

	return nil
}

// ValidateCardCode checks the security code is 3 or 4 digits.
func ValidateCardCode(code string) error {
	if len(code) < 3 || len(code) > 4 {
		return newValidationError("card code", "must be 3 or 4 digits")
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return newValidationError("card code", "must contain only digits")
		}
	}

	return nil
}

// ValidateExpirationMonth checks month is 1-12. UnknownExpirationMonth is
// accepted only when allowUnknown is set.
func ValidateExpirationMonth(month int, allowUnknown bool) error {
	if allowUnknown && month == UnknownExpirationMonth {
		return nil
	}
	if month < 1 || month > 12 {
		return newValidationError("expiration month", "%d is not between 1 and 12", month)
	}
	return nil
}

// ValidateExpirationYear checks year lies in [MinExpirationYear, current year + ExpirationYearsFuture].
// UnknownExpirationYear is accepted only when allowUnknown is set.
func ValidateExpirationYear(year int, allowUnknown bool) error {
	if allowUnknown && year == UnknownExpirationYear {
		return nil
	}
	maxYear := currentYear() + ExpirationYearsFuture
	if year < MinExpirationYear || year > maxYear {
		return newValidationError("expiration year", "%d is not between %d and %d", year, MinExpirationYear, maxYear)
	}
	return nil
}

// now is replaced in tests.
var now = time.Now

var yearCache struct {
	mu       sync.Mutex
	year     int
	cachedAt time.Time
}

// currentYear returns the wall-clock year, recomputed at most about once a second.
func currentYear() int {
	t := now()

	yearCache.mu.Lock()
	defer yearCache.mu.Unlock()

	if yearCache.year != 0 {
		age := t.Sub(yearCache.cachedAt)
		if age > -time.Second && age < time.Second {
			return yearCache.year
		}
	}
	yearCache.year = t.Year()
	yearCache.cachedAt = t
	return yearCache.year
}
