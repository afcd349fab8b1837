package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Card holds card and cardholder data. It has no reference fields, so a
// plain assignment is a full independent copy.
//
// The full card number and card code are transient: stores never persist
// them, and the masked number is always recomputed when the number is set.
// Use NewCard for a card with unknown expiration; the zero value behaves
// the same way.
type Card struct {
	// ID is assigned by the store
	ID string
	// PrincipalName and GroupName record who stored the card
	PrincipalName string
	GroupName     string
	// ProviderID and ProviderUniqueID are set once the gateway stores the card
	ProviderID       string
	ProviderUniqueID string

	FirstName      string
	LastName       string
	CompanyName    string
	Phone          string
	Fax            string
	CustomerID     string
	StreetAddress1 string
	StreetAddress2 string
	City           string
	State          string
	PostalCode     string
	Comments       string

	number        string
	maskedNumber  string
	cardCode      string
	email         string
	customerTaxID string
	countryCode   string
	// zero means unknown; neither 0 nor any year below MinExpirationYear can
	// be stored
	expMonth int
	expYear  int
}

// NewCard returns an empty card with unknown expiration.
func NewCard() Card {
	return Card{}
}

// Number returns the full card number, or "" once the card has been stored.
func (c Card) Number() string { return c.number }

// MaskedNumber returns the masked card number.
func (c Card) MaskedNumber() string { return c.maskedNumber }

// CardCode returns the transient security code.
func (c Card) CardCode() string { return c.cardCode }

func (c Card) Email() string         { return c.email }
func (c Card) CustomerTaxID() string { return c.customerTaxID }
func (c Card) CountryCode() string   { return c.countryCode }

// ExpirationMonth returns the month or UnknownExpirationMonth.
func (c Card) ExpirationMonth() int {
	if c.expMonth == 0 {
		return UnknownExpirationMonth
	}
	return c.expMonth
}

// ExpirationYear returns the four-digit year or UnknownExpirationYear.
func (c Card) ExpirationYear() int {
	if c.expYear == 0 {
		return UnknownExpirationYear
	}
	return c.expYear
}

// FullName returns the cardholder's first and last name.
func (c Card) FullName() string {
	return FullName(c.FirstName, c.LastName)
}

// NumberDisplay returns the "•••• 1234" form of the best number available.
func (c Card) NumberDisplay() string {
	if c.number != "" {
		return CardNumberDisplay(c.number)
	}
	return CardNumberDisplay(c.maskedNumber)
}

func (c Card) ExpirationDisplay() string {
	return ExpirationDisplay(c.ExpirationMonth(), c.ExpirationYear())
}

func (c Card) ExpirationMMYY() string {
	return ExpirationMMYY(c.ExpirationMonth(), c.ExpirationYear())
}

// SetNumber normalizes, validates and stores the full number together with
// its masked form. An empty value clears the full number and keeps the
// masked number, as on a card reconstructed from storage.
func (c *Card) SetNumber(cardNumber string) error {
	cardNumber = NumbersOnly(strings.TrimSpace(cardNumber), false)
	if cardNumber == "" {
		c.number = ""
		return nil
	}
	if err := ValidateLuhn(cardNumber); err != nil {
		return err
	}
	c.number = cardNumber
	c.maskedNumber = MaskCardNumber(cardNumber)
	return nil
}

// SetMaskedNumber sets the masked number without touching the full number.
// Stores use it when reconstructing a card and the processor uses it for
// gateway replacements.
func (c *Card) SetMaskedNumber(masked string) {
	c.maskedNumber = strings.TrimSpace(masked)
}

// SetExpirationMonth accepts 1-12 or UnknownExpirationMonth.
func (c *Card) SetExpirationMonth(month int) error {
	if err := ValidateExpirationMonth(month, true); err != nil {
		return err
	}
	if month == UnknownExpirationMonth {
		c.expMonth = 0
		return nil
	}
	c.expMonth = month
	return nil
}

// SetExpirationYear accepts a four-digit year, a two-digit year (taken to be
// in the current century) or UnknownExpirationYear.
func (c *Card) SetExpirationYear(year int) error {
	if year >= 0 && year <= 99 {
		year += currentYear() / 100 * 100
	}
	if err := ValidateExpirationYear(year, true); err != nil {
		return err
	}
	if year == UnknownExpirationYear {
		c.expYear = 0
		return nil
	}
	c.expYear = year
	return nil
}

// SetExpiration sets month and year together; neither is changed on error.
func (c *Card) SetExpiration(month, year int) error {
	updated := *c
	if err := updated.SetExpirationMonth(month); err != nil {
		return err
	}
	if err := updated.SetExpirationYear(year); err != nil {
		return err
	}
	c.expMonth, c.expYear = updated.expMonth, updated.expYear
	return nil
}

// CopyExpiration sets c's expiration to other's, including unknown parts.
func (c *Card) CopyExpiration(other Card) {
	c.expMonth, c.expYear = other.expMonth, other.expYear
}

// SetCardCode stores the 3-4 digit security code. Empty clears it.
func (c *Card) SetCardCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		c.cardCode = ""
		return nil
	}
	if err := ValidateCardCode(code); err != nil {
		return err
	}
	c.cardCode = code
	return nil
}

// SetEmail stores a syntactically valid email address. Empty clears it.
func (c *Card) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		c.email = ""
		return nil
	}
	if err := validate.Var(email, "email"); err != nil {
		return newValidationError("email", "%q is not a valid address", email)
	}
	c.email = email
	return nil
}

// SetCustomerTaxID keeps the digits of taxID, which must number exactly nine.
func (c *Card) SetCustomerTaxID(taxID string) error {
	taxID = NumbersOnly(taxID, false)
	if taxID == "" {
		c.customerTaxID = ""
		return nil
	}
	if len(taxID) != 9 {
		return newValidationError("customer tax id", "must be 9 digits")
	}
	c.customerTaxID = taxID
	return nil
}

// SetCountryCode stores a two-letter country code in upper case.
func (c *Card) SetCountryCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		c.countryCode = ""
		return nil
	}
	if err := validate.Var(code, "len=2,alpha"); err != nil {
		return newValidationError("country code", "%q is not a two-letter code", code)
	}
	c.countryCode = code
	return nil
}

// Scrub clears the transient number and card code, keeping the masked number.
func (c *Card) Scrub() {
	c.number = ""
	c.cardCode = ""
}

// WithoutSecrets returns a copy of c with the transient fields cleared.
func (c Card) WithoutSecrets() Card {
	c.Scrub()
	return c
}
