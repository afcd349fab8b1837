package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// ErrorCode is the machine readable code of an Error response.
type ErrorCode string

const (
	ErrorCodeInvalidRequest           ErrorCode = "invalid_request"
	ErrorCodeValidation               ErrorCode = "validation_error"
	ErrorCodeNotFound                 ErrorCode = "not_found"
	ErrorCodeInvalidState             ErrorCode = "invalid_state"
	ErrorCodeProviderUniqueIDRequired ErrorCode = "provider_unique_id_required"
	ErrorCodeUnexpectedResult         ErrorCode = "unexpected_result"
	ErrorCodePersistence              ErrorCode = "persistence_error"
	ErrorCodeUnsupported              ErrorCode = "unsupported"
	ErrorCodeGateway                  ErrorCode = "gateway_error"
	ErrorCodeInternalError            ErrorCode = "internal_error"
	ErrorCodeNoPendingCompletion      ErrorCode = "no_pending_completion"
)

// Error is the body of every non-2xx response. Transaction is set when the
// gateway outcome of a transaction could not be saved.
type Error struct {
	Error       ErrorCode    `json:"error"`
	Message     string       `json:"message"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

// HealthStatus values
const (
	Healthy   = "healthy"
	Unhealthy = "unhealthy"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// CardholderDetails are the non-sensitive card fields a client may change.
type CardholderDetails struct {
	FirstName      string `json:"firstName,omitempty" validate:"max=100"`
	LastName       string `json:"lastName,omitempty" validate:"max=100"`
	CompanyName    string `json:"companyName,omitempty" validate:"max=100"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string `json:"phone,omitempty" validate:"max=40"`
	Fax            string `json:"fax,omitempty" validate:"max=40"`
	CustomerID     string `json:"customerId,omitempty" validate:"max=100"`
	CustomerTaxID  string `json:"customerTaxId,omitempty"`
	StreetAddress1 string `json:"streetAddress1,omitempty" validate:"max=200"`
	StreetAddress2 string `json:"streetAddress2,omitempty" validate:"max=200"`
	City           string `json:"city,omitempty" validate:"max=100"`
	State          string `json:"state,omitempty" validate:"max=100"`
	PostalCode     string `json:"postalCode,omitempty" validate:"max=20"`
	CountryCode    string `json:"countryCode,omitempty" validate:"omitempty,len=2,alpha"`
	Comments       string `json:"comments,omitempty" validate:"max=1000"`
}

// CardInput is a card as submitted by a client, full number included.
type CardInput struct {
	CardholderDetails

	Number          string `json:"number" validate:"required,min=12"`
	CardCode        string `json:"cardCode,omitempty" validate:"omitempty,numeric,min=3,max=4"`
	ExpirationMonth *int   `json:"expirationMonth,omitempty" validate:"omitempty,min=1,max=12"`
	ExpirationYear  *int   `json:"expirationYear,omitempty"`
}

type StoreCardRequest struct {
	GroupName string     `json:"groupName,omitempty" validate:"max=100"`
	Card      *CardInput `json:"card" validate:"required"`
}

type UpdateCardNumberRequest struct {
	Number          string `json:"number" validate:"required,min=12"`
	CardCode        string `json:"cardCode,omitempty" validate:"omitempty,numeric,min=3,max=4"`
	ExpirationMonth int    `json:"expirationMonth" validate:"required,min=1,max=12"`
	ExpirationYear  int    `json:"expirationYear" validate:"required"`
}

type Expiration struct {
	ExpirationMonth int `json:"expirationMonth" validate:"required,min=1,max=12"`
	ExpirationYear  int `json:"expirationYear" validate:"required"`
}

// TransactionRequest is the body of sale, authorization and credit requests.
// It names either a new card or a stored one.
type TransactionRequest struct {
	GroupName string     `json:"groupName,omitempty" validate:"max=100"`
	CardID    string     `json:"cardId,omitempty" validate:"required_without=Card,excluded_with=Card"`
	Card      *CardInput `json:"card,omitempty" validate:"required_without=CardID"`

	Amount         decimal.Decimal     `json:"amount"`
	CurrencyCode   string              `json:"currencyCode" validate:"required,len=3,uppercase"`
	TaxAmount      decimal.NullDecimal `json:"taxAmount"`
	TaxExempt      bool                `json:"taxExempt"`
	ShippingAmount decimal.NullDecimal `json:"shippingAmount"`
	DutyAmount     decimal.NullDecimal `json:"dutyAmount"`

	TestMode            bool   `json:"testMode"`
	CustomerIP          string `json:"customerIp,omitempty" validate:"omitempty,ip"`
	DuplicateWindow     int    `json:"duplicateWindow,omitempty" validate:"min=0"`
	OrderNumber         string `json:"orderNumber,omitempty" validate:"max=100"`
	InvoiceNumber       string `json:"invoiceNumber,omitempty" validate:"max=100"`
	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty" validate:"max=100"`
	Description         string `json:"description,omitempty" validate:"max=1000"`
	EmailCustomer       bool   `json:"emailCustomer"`
	MerchantEmail       string `json:"merchantEmail,omitempty" validate:"omitempty,email"`

	ShippingFirstName      string `json:"shippingFirstName,omitempty"`
	ShippingLastName       string `json:"shippingLastName,omitempty"`
	ShippingCompanyName    string `json:"shippingCompanyName,omitempty"`
	ShippingStreetAddress1 string `json:"shippingStreetAddress1,omitempty"`
	ShippingStreetAddress2 string `json:"shippingStreetAddress2,omitempty"`
	ShippingCity           string `json:"shippingCity,omitempty"`
	ShippingState          string `json:"shippingState,omitempty"`
	ShippingPostalCode     string `json:"shippingPostalCode,omitempty"`
	ShippingCountryCode    string `json:"shippingCountryCode,omitempty"`
}

// Model converts the wire request to the value passed to the processor.
func (r TransactionRequest) Model() models.TransactionRequest {
	return models.TransactionRequest{
		TestMode:               r.TestMode,
		CustomerIP:             r.CustomerIP,
		DuplicateWindow:        r.DuplicateWindow,
		OrderNumber:            r.OrderNumber,
		CurrencyCode:           r.CurrencyCode,
		Amount:                 r.Amount,
		TaxAmount:              r.TaxAmount,
		TaxExempt:              r.TaxExempt,
		ShippingAmount:         r.ShippingAmount,
		DutyAmount:             r.DutyAmount,
		ShippingFirstName:      r.ShippingFirstName,
		ShippingLastName:       r.ShippingLastName,
		ShippingCompanyName:    r.ShippingCompanyName,
		ShippingStreetAddress1: r.ShippingStreetAddress1,
		ShippingStreetAddress2: r.ShippingStreetAddress2,
		ShippingCity:           r.ShippingCity,
		ShippingState:          r.ShippingState,
		ShippingPostalCode:     r.ShippingPostalCode,
		ShippingCountryCode:    r.ShippingCountryCode,
		EmailCustomer:          r.EmailCustomer,
		MerchantEmail:          r.MerchantEmail,
		InvoiceNumber:          r.InvoiceNumber,
		PurchaseOrderNumber:    r.PurchaseOrderNumber,
		Description:            r.Description,
	}
}

// Card is a card as returned to clients. It never carries the full number
// or the card code.
type Card struct {
	ID               string            `json:"id"`
	ProviderID       string            `json:"providerId,omitempty"`
	ProviderUniqueID string            `json:"providerUniqueId,omitempty"`
	GroupName        string            `json:"groupName,omitempty"`
	MaskedNumber     string            `json:"maskedNumber"`
	Display          string            `json:"display,omitempty"`
	ExpirationMonth  int               `json:"expirationMonth"`
	ExpirationYear   int               `json:"expirationYear"`
	Details          CardholderDetails `json:"details"`
}

// NewCard builds the response form of c.
func NewCard(c models.Card) Card {
	return Card{
		ID:               c.ID,
		ProviderID:       c.ProviderID,
		ProviderUniqueID: c.ProviderUniqueID,
		GroupName:        c.GroupName,
		MaskedNumber:     c.MaskedNumber(),
		Display:          c.NumberDisplay(),
		ExpirationMonth:  c.ExpirationMonth(),
		ExpirationYear:   c.ExpirationYear(),
		Details: CardholderDetails{
			FirstName:      c.FirstName,
			LastName:       c.LastName,
			CompanyName:    c.CompanyName,
			Email:          c.Email(),
			Phone:          c.Phone,
			Fax:            c.Fax,
			CustomerID:     c.CustomerID,
			CustomerTaxID:  c.CustomerTaxID(),
			StreetAddress1: c.StreetAddress1,
			StreetAddress2: c.StreetAddress2,
			City:           c.City,
			State:          c.State,
			PostalCode:     c.PostalCode,
			CountryCode:    c.CountryCode(),
			Comments:       c.Comments,
		},
	}
}

type Transaction struct {
	ID           string                   `json:"id"`
	ProviderID   string                   `json:"providerId"`
	GroupName    string                   `json:"groupName,omitempty"`
	Status       models.TransactionStatus `json:"status"`
	Amount       decimal.Decimal          `json:"amount"`
	CurrencyCode string                   `json:"currencyCode"`
	OrderNumber  string                   `json:"orderNumber,omitempty"`
	Card         Card                     `json:"card"`

	AuthorizationTime      *time.Time                  `json:"authorizationTime,omitempty"`
	AuthorizationPrincipal models.Principal            `json:"authorizationPrincipal,omitempty"`
	AuthorizationResult    *models.AuthorizationResult `json:"authorizationResult,omitempty"`

	CaptureTime      *time.Time            `json:"captureTime,omitempty"`
	CapturePrincipal models.Principal      `json:"capturePrincipal,omitempty"`
	CaptureResult    *models.CaptureResult `json:"captureResult,omitempty"`

	VoidTime      *time.Time         `json:"voidTime,omitempty"`
	VoidPrincipal models.Principal   `json:"voidPrincipal,omitempty"`
	VoidResult    *models.VoidResult `json:"voidResult,omitempty"`
}

// NewTransaction builds the response form of txn.
func NewTransaction(txn *models.Transaction) Transaction {
	return Transaction{
		ID:                     txn.ID,
		ProviderID:             txn.ProviderID,
		GroupName:              txn.GroupName,
		Status:                 txn.Status,
		Amount:                 txn.Request.Amount,
		CurrencyCode:           txn.Request.CurrencyCode,
		OrderNumber:            txn.Request.OrderNumber,
		Card:                   NewCard(txn.Card),
		AuthorizationTime:      optionalTime(txn.AuthorizationTime),
		AuthorizationPrincipal: txn.AuthorizationPrincipal,
		AuthorizationResult:    txn.AuthorizationResult,
		CaptureTime:            optionalTime(txn.CaptureTime),
		CapturePrincipal:       txn.CapturePrincipal,
		CaptureResult:          txn.CaptureResult,
		VoidTime:               optionalTime(txn.VoidTime),
		VoidPrincipal:          txn.VoidPrincipal,
		VoidResult:             txn.VoidResult,
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

type CardReplacement struct {
	CardID           string `json:"cardId"`
	ProviderUniqueID string `json:"providerUniqueId"`
	Kind             string `json:"kind"`
	From             string `json:"from"`
	To               string `json:"to"`
}

type SyncReport struct {
	ProviderID     string                 `json:"providerId"`
	Supported      bool                   `json:"supported"`
	DryRun         bool                   `json:"dryRun"`
	PersistedCount int                    `json:"persistedCount"`
	TokenizedCount int                    `json:"tokenizedCount"`
	Replacements   []CardReplacement      `json:"replacements"`
	NotTokenized   []Card                 `json:"notTokenized"`
	NotPersisted   []models.TokenizedCard `json:"notPersisted"`
}
