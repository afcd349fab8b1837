package models

import (
	"fmt"
	"strings"
)

const (
	// MaskStartDigits is how many leading digits MaskCardNumber keeps
	MaskStartDigits = 6
	// MaskEndDigits is how many trailing digits MaskCardNumber keeps
	MaskEndDigits = 4
	// MaskCharacter replaces hidden digits
	MaskCharacter = 'X'
	// UnknownDigit stands in for a digit that is not known
	UnknownDigit = '?'

	CardNumberDisplayPrefix    = "•••• "
	ExpirationDisplaySeparator = " / "
)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// MaskCardNumber hides every digit strictly between the sixth digit from the
// start and the fourth digit from the end. Non-digit characters are kept in
// place. Input with too few digits to mask is returned trimmed but otherwise
// unchanged.
func MaskCardNumber(cardNumber string) string {
	cardNumber = strings.TrimSpace(cardNumber)
	if cardNumber == "" {
		return ""
	}

	chars := []rune(cardNumber)
	length := len(chars)

	startPos := length
	digits := 0
	for pos := 0; pos < length; pos++ {
		if isDigit(chars[pos]) {
			digits++
			if digits >= MaskStartDigits {
				startPos = pos
				break
			}
		}
	}

	endPos := startPos
	digits = 0
	for pos := length - 1; pos > startPos; pos-- {
		if isDigit(chars[pos]) {
			digits++
			if digits >= MaskEndDigits {
				endPos = pos
				break
			}
		}
	}

	replaced := false
	for pos := startPos + 1; pos < endPos; pos++ {
		if isDigit(chars[pos]) {
			chars[pos] = MaskCharacter
			replaced = true
		}
	}
	if !replaced {
		return cardNumber
	}
	return string(chars)
}

// NumbersOnly keeps only the digits of value, in order. UnknownDigit is kept
// as well when allowUnknownDigit is set.
func NumbersOnly(value string, allowUnknownDigit bool) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if isDigit(r) || (allowUnknownDigit && r == UnknownDigit) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CardNumberDisplay renders a card number as "•••• 1234", left-padding with
// UnknownDigit when fewer than four digits are present.
func CardNumberDisplay(cardNumber string) string {
	cardNumber = strings.TrimSpace(cardNumber)
	if cardNumber == "" {
		return ""
	}

	digits := []rune(NumbersOnly(cardNumber, true))
	var b strings.Builder
	b.WriteString(CardNumberDisplayPrefix)
	for i := len(digits); i < MaskEndDigits; i++ {
		b.WriteRune(UnknownDigit)
	}
	if len(digits) > MaskEndDigits {
		digits = digits[len(digits)-MaskEndDigits:]
	}
	b.WriteString(string(digits))
	return b.String()
}

// ExpirationMMYY renders an expiration as "MMYY" with "??" for unknown parts.
func ExpirationMMYY(month, year int) string {
	var b strings.Builder
	if month == UnknownExpirationMonth {
		b.WriteString("??")
	} else {
		fmt.Fprintf(&b, "%02d", month)
	}
	if year == UnknownExpirationYear {
		b.WriteString("??")
	} else {
		fmt.Fprintf(&b, "%02d", year%100)
	}
	return b.String()
}

// ExpirationDisplay renders an expiration as "MM / YYYY". It returns an empty
// string when both month and year are unknown.
func ExpirationDisplay(month, year int) string {
	if month == UnknownExpirationMonth && year == UnknownExpirationYear {
		return ""
	}

	var b strings.Builder
	if month == UnknownExpirationMonth {
		b.WriteString("??")
	} else {
		fmt.Fprintf(&b, "%02d", month)
	}
	b.WriteString(ExpirationDisplaySeparator)
	if year == UnknownExpirationYear {
		b.WriteString("????")
	} else {
		fmt.Fprintf(&b, "%04d", year)
	}
	return b.String()
}

// FullName joins first and last name, skipping empty parts.
func FullName(firstName, lastName string) string {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	switch {
	case firstName == "":
		return lastName
	case lastName == "":
		return firstName
	default:
		return firstName + " " + lastName
	}
}
