package models

import (
	"github.com/shopspring/decimal"
)

// TransactionRequest describes one sale, authorization or credit attempt.
// It is passed and embedded by value and never modified after submission.
type TransactionRequest struct {
	TestMode bool `json:"testMode"`
	// CustomerIP is the address the order was placed from
	CustomerIP string `json:"customerIp,omitempty"`
	// DuplicateWindow is the gateway duplicate-detection window in seconds
	DuplicateWindow int    `json:"duplicateWindow,omitempty"`
	OrderNumber     string `json:"orderNumber,omitempty"`
	// CurrencyCode is the ISO 4217 code, e.g. "USD"
	CurrencyCode   string              `json:"currencyCode"`
	Amount         decimal.Decimal     `json:"amount"`
	TaxAmount      decimal.NullDecimal `json:"taxAmount"`
	TaxExempt      bool                `json:"taxExempt"`
	ShippingAmount decimal.NullDecimal `json:"shippingAmount"`
	DutyAmount     decimal.NullDecimal `json:"dutyAmount"`

	ShippingFirstName      string `json:"shippingFirstName,omitempty"`
	ShippingLastName       string `json:"shippingLastName,omitempty"`
	ShippingCompanyName    string `json:"shippingCompanyName,omitempty"`
	ShippingStreetAddress1 string `json:"shippingStreetAddress1,omitempty"`
	ShippingStreetAddress2 string `json:"shippingStreetAddress2,omitempty"`
	ShippingCity           string `json:"shippingCity,omitempty"`
	ShippingState          string `json:"shippingState,omitempty"`
	ShippingPostalCode     string `json:"shippingPostalCode,omitempty"`
	ShippingCountryCode    string `json:"shippingCountryCode,omitempty"`

	EmailCustomer       bool   `json:"emailCustomer"`
	MerchantEmail       string `json:"merchantEmail,omitempty"`
	InvoiceNumber       string `json:"invoiceNumber,omitempty"`
	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty"`
	Description         string `json:"description,omitempty"`
}

// Validate checks the request carries a positive amount and a currency code.
func (r TransactionRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return newValidationError("amount", "must be greater than 0")
	}
	if len(r.CurrencyCode) != 3 {
		return newValidationError("currency code", "%q is not a three-letter code", r.CurrencyCode)
	}
	for _, ch := range r.CurrencyCode {
		if ch < 'A' || ch > 'Z' {
			return newValidationError("currency code", "%q is not a three-letter code", r.CurrencyCode)
		}
	}

	optional := []struct {
		field  string
		amount decimal.NullDecimal
	}{
		{"tax amount", r.TaxAmount},
		{"shipping amount", r.ShippingAmount},
		{"duty amount", r.DutyAmount},
	}
	for _, o := range optional {
		if o.amount.Valid && o.amount.Decimal.IsNegative() {
			return newValidationError(o.field, "cannot be negative")
		}
	}
	return nil
}
