package models

// TokenizedCard is the gateway's view of a card held in its secure storage.
// The replacement fields are set when the gateway changed the card on its
// own, for example after the issuer re-issued it. It never carries a full
// card number.
type TokenizedCard struct {
	ProviderUniqueID string `json:"providerUniqueId"`

	ProviderReplacementMaskedNumber string `json:"providerReplacementMaskedNumber,omitempty"`
	ReplacementMaskedNumber         string `json:"replacementMaskedNumber,omitempty"`

	ProviderReplacementExpiration string `json:"providerReplacementExpiration,omitempty"`
	// zero when there is no replacement expiration
	ReplacementExpirationMonth int `json:"replacementExpirationMonth,omitempty"`
	ReplacementExpirationYear  int `json:"replacementExpirationYear,omitempty"`
}

// HasReplacementMaskedNumber reports whether the gateway supplied a new masked number.
func (t TokenizedCard) HasReplacementMaskedNumber() bool {
	return t.ReplacementMaskedNumber != ""
}

// HasReplacementExpiration reports whether both replacement month and year are set.
func (t TokenizedCard) HasReplacementExpiration() bool {
	return t.ReplacementExpirationMonth != 0 && t.ReplacementExpirationYear != 0
}
