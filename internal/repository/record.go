package repository

import (
	"fmt"
	"time"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// cardRecord is the persisted form of a card. It has no field for the full
// number or card code.
type cardRecord struct {
	ID               string `json:"id,omitempty"`
	PrincipalName    string `json:"principalName,omitempty"`
	GroupName        string `json:"groupName,omitempty"`
	ProviderID       string `json:"providerId,omitempty"`
	ProviderUniqueID string `json:"providerUniqueId,omitempty"`
	MaskedNumber     string `json:"maskedCardNumber,omitempty"`
	ExpirationMonth  int    `json:"expirationMonth"`
	ExpirationYear   int    `json:"expirationYear"`
	FirstName        string `json:"firstName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Fax              string `json:"fax,omitempty"`
	CustomerID       string `json:"customerId,omitempty"`
	CustomerTaxID    string `json:"customerTaxId,omitempty"`
	StreetAddress1   string `json:"streetAddress1,omitempty"`
	StreetAddress2   string `json:"streetAddress2,omitempty"`
	City             string `json:"city,omitempty"`
	State            string `json:"state,omitempty"`
	PostalCode       string `json:"postalCode,omitempty"`
	CountryCode      string `json:"countryCode,omitempty"`
	Comments         string `json:"comments,omitempty"`
}

func newCardRecord(c models.Card) cardRecord {
	return cardRecord{
		ID:               c.ID,
		PrincipalName:    c.PrincipalName,
		GroupName:        c.GroupName,
		ProviderID:       c.ProviderID,
		ProviderUniqueID: c.ProviderUniqueID,
		MaskedNumber:     c.MaskedNumber(),
		ExpirationMonth:  c.ExpirationMonth(),
		ExpirationYear:   c.ExpirationYear(),
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		CompanyName:      c.CompanyName,
		Email:            c.Email(),
		Phone:            c.Phone,
		Fax:              c.Fax,
		CustomerID:       c.CustomerID,
		CustomerTaxID:    c.CustomerTaxID(),
		StreetAddress1:   c.StreetAddress1,
		StreetAddress2:   c.StreetAddress2,
		City:             c.City,
		State:            c.State,
		PostalCode:       c.PostalCode,
		CountryCode:      c.CountryCode(),
		Comments:         c.Comments,
	}
}

func (r cardRecord) card() (models.Card, error) {
	c := models.NewCard()
	c.ID = r.ID
	c.PrincipalName = r.PrincipalName
	c.GroupName = r.GroupName
	c.ProviderID = r.ProviderID
	c.ProviderUniqueID = r.ProviderUniqueID
	c.SetMaskedNumber(r.MaskedNumber)
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.CompanyName = r.CompanyName
	c.Phone = r.Phone
	c.Fax = r.Fax
	c.CustomerID = r.CustomerID
	c.StreetAddress1 = r.StreetAddress1
	c.StreetAddress2 = r.StreetAddress2
	c.City = r.City
	c.State = r.State
	c.PostalCode = r.PostalCode
	c.Comments = r.Comments

	if err := c.SetExpiration(r.ExpirationMonth, r.ExpirationYear); err != nil {
		return c, fmt.Errorf("card %s: %w", r.ID, err)
	}
	if err := c.SetEmail(r.Email); err != nil {
		return c, fmt.Errorf("card %s: %w", r.ID, err)
	}
	if err := c.SetCustomerTaxID(r.CustomerTaxID); err != nil {
		return c, fmt.Errorf("card %s: %w", r.ID, err)
	}
	if err := c.SetCountryCode(r.CountryCode); err != nil {
		return c, fmt.Errorf("card %s: %w", r.ID, err)
	}
	return c, nil
}

// transactionRecord is the persisted form of a transaction.
type transactionRecord struct {
	ID                     string                      `json:"id,omitempty"`
	ProviderID             string                      `json:"providerId"`
	GroupName              string                      `json:"groupName,omitempty"`
	Request                models.TransactionRequest   `json:"transactionRequest"`
	Card                   cardRecord                  `json:"creditCard"`
	AuthorizationTime      time.Time                   `json:"authorizationTime"`
	AuthorizationPrincipal string                      `json:"authorizationPrincipalName,omitempty"`
	AuthorizationResult    *models.AuthorizationResult `json:"authorizationResult,omitempty"`
	CaptureTime            time.Time                   `json:"captureTime"`
	CapturePrincipal       string                      `json:"capturePrincipalName,omitempty"`
	CaptureResult          *models.CaptureResult       `json:"captureResult,omitempty"`
	VoidTime               time.Time                   `json:"voidTime"`
	VoidPrincipal          string                      `json:"voidPrincipalName,omitempty"`
	VoidResult             *models.VoidResult          `json:"voidResult,omitempty"`
	Status                 models.TransactionStatus    `json:"status"`
}

// newTransactionRecord copies txn; the record shares no pointers with it.
func newTransactionRecord(txn *models.Transaction) transactionRecord {
	c := txn.Clone()
	return transactionRecord{
		ID:                     c.ID,
		ProviderID:             c.ProviderID,
		GroupName:              c.GroupName,
		Request:                c.Request,
		Card:                   newCardRecord(c.Card),
		AuthorizationTime:      c.AuthorizationTime,
		AuthorizationPrincipal: string(c.AuthorizationPrincipal),
		AuthorizationResult:    c.AuthorizationResult,
		CaptureTime:            c.CaptureTime,
		CapturePrincipal:       string(c.CapturePrincipal),
		CaptureResult:          c.CaptureResult,
		VoidTime:               c.VoidTime,
		VoidPrincipal:          string(c.VoidPrincipal),
		VoidResult:             c.VoidResult,
		Status:                 c.Status,
	}
}

func (r transactionRecord) transaction() (*models.Transaction, error) {
	card, err := r.Card.card()
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	txn := &models.Transaction{
		ID:                     r.ID,
		ProviderID:             r.ProviderID,
		GroupName:              r.GroupName,
		Request:                r.Request,
		Card:                   card,
		AuthorizationTime:      r.AuthorizationTime,
		AuthorizationPrincipal: models.Principal(r.AuthorizationPrincipal),
		AuthorizationResult:    r.AuthorizationResult,
		CaptureTime:            r.CaptureTime,
		CapturePrincipal:       models.Principal(r.CapturePrincipal),
		CaptureResult:          r.CaptureResult,
		VoidTime:               r.VoidTime,
		VoidPrincipal:          models.Principal(r.VoidPrincipal),
		VoidResult:             r.VoidResult,
		Status:                 r.Status,
	}
	return txn.Clone(), nil
}
