// Package simulator provides an in-process gateway for local runs and tests.
//
// Outcomes are deterministic for the test card numbers below; any other card
// that passes the Luhn check is approved. Network failures and latency can be
// injected through Chaos.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/benx421/payment-gateway/processor/internal/gateway"
	"github.com/benx421/payment-gateway/processor/internal/models"
)

// Type is the registry type name of the simulator.
const Type = "simulator"

// Test card numbers with fixed outcomes
const (
	CardDeclined          = "4000000000000002"
	CardInsufficientFunds = "4000000000009995"
	CardHold              = "4000000000000101"
)

// CardCodeMismatch is a security code the simulator always rejects.
const CardCodeMismatch = "000"

// DefaultAuthExpiry is how long an uncaptured authorization stays capturable.
const DefaultAuthExpiry = 7 * 24 * time.Hour

var (
	maxAmount           = decimal.NewFromInt(10000)
	supportedCurrencies = map[string]bool{"USD": true, "EUR": true, "GBP": true, "CAD": true}
)

type authorization struct {
	amount   decimal.Decimal
	currency string
	captured bool
	voided   bool
}

type vaultCard struct {
	number string
	masked string
	month  int
	year   int

	replacement *models.TokenizedCard
}

// Provider is the simulated gateway. It implements gateway.Provider,
// gateway.CardStorer and gateway.TokenizedCardLister.
type Provider struct {
	id     string
	chaos  Chaos
	logger *slog.Logger

	// ledger holds *authorization values keyed by provider unique id
	ledger *cache.Cache

	mu    sync.Mutex
	vault map[string]*vaultCard
}

var (
	_ gateway.Provider            = (*Provider)(nil)
	_ gateway.CardStorer          = (*Provider)(nil)
	_ gateway.TokenizedCardLister = (*Provider)(nil)
)

// New creates a simulator reporting id as its provider id.
func New(id string, chaos Chaos, authExpiry time.Duration, logger *slog.Logger) *Provider {
	if authExpiry <= 0 {
		authExpiry = DefaultAuthExpiry
	}
	return &Provider{
		id:     id,
		chaos:  chaos,
		logger: logger,
		ledger: cache.New(authExpiry, authExpiry/2),
		vault:  make(map[string]*vaultCard),
	}
}

// Factory returns a registry factory. Params are, in order and all optional:
// failure rate, minimum latency ms, maximum latency ms, authorization expiry
// as a Go duration.
func Factory(logger *slog.Logger) gateway.Factory {
	return func(cfg gateway.Config) (gateway.Provider, error) {
		var chaos Chaos
		var err error

		if p := cfg.Param(0); p != "" {
			if chaos.FailureRate, err = strconv.ParseFloat(p, 64); err != nil {
				return nil, fmt.Errorf("invalid failure rate %q: %w", p, err)
			}
		}
		if p := cfg.Param(1); p != "" {
			if chaos.MinLatencyMS, err = strconv.Atoi(p); err != nil {
				return nil, fmt.Errorf("invalid min latency %q: %w", p, err)
			}
		}
		if p := cfg.Param(2); p != "" {
			if chaos.MaxLatencyMS, err = strconv.Atoi(p); err != nil {
				return nil, fmt.Errorf("invalid max latency %q: %w", p, err)
			}
		}
		authExpiry := DefaultAuthExpiry
		if p := cfg.Param(3); p != "" {
			if authExpiry, err = time.ParseDuration(p); err != nil {
				return nil, fmt.Errorf("invalid authorization expiry %q: %w", p, err)
			}
		}

		if chaos.FailureRate < 0 || chaos.FailureRate > 1 {
			return nil, fmt.Errorf("failure rate must be between 0 and 1, got %f", chaos.FailureRate)
		}
		if chaos.MaxLatencyMS < chaos.MinLatencyMS {
			return nil, fmt.Errorf("max latency (%d) must be >= min latency (%d)", chaos.MaxLatencyMS, chaos.MinLatencyMS)
		}

		return New(cfg.ProviderID, chaos, authExpiry, logger.With("provider_id", cfg.ProviderID)), nil
	}
}

func (p *Provider) ID() string {
	return p.id
}

func (p *Provider) result(cr models.CommunicationResult) models.TransactionResult {
	return models.TransactionResult{ProviderID: p.id, CommunicationResult: cr}
}

// network simulates the round trip and reports a failed result when the
// call does not get through.
func (p *Provider) network(ctx context.Context, op string) (models.TransactionResult, bool) {
	if err := p.chaos.delay(ctx); err != nil {
		r := p.result(models.CommunicationIOError)
		r.ErrorCode = models.ErrorCodeUnknown
		r.ProviderErrorMessage = err.Error()
		return r, false
	}
	if p.chaos.fail() {
		p.logger.Debug("injecting network failure", "operation", op)
		r := p.result(models.CommunicationIOError)
		r.ErrorCode = models.ErrorCodeUnknown
		r.ProviderErrorMessage = "simulated network failure"
		return r, false
	}
	return models.TransactionResult{}, true
}

func (p *Provider) gatewayError(code models.ErrorCode, providerCode, message string) models.TransactionResult {
	r := p.result(models.CommunicationGatewayError)
	r.ErrorCode = code
	r.ProviderErrorCode = providerCode
	r.ProviderErrorMessage = message
	return r
}

func (p *Provider) Authorize(ctx context.Context, req models.TransactionRequest, card models.Card) models.AuthorizationResult {
	return p.authorize(ctx, "authorize", req, card, false)
}

func (p *Provider) Sale(ctx context.Context, req models.TransactionRequest, card models.Card) models.SaleResult {
	auth := p.authorize(ctx, "sale", req, card, true)

	capture := auth.TransactionResult
	if auth.ApprovalResult != models.ApprovalApproved {
		capture.ProviderUniqueID = ""
	}
	return models.SaleResult{
		Authorization: auth,
		Capture:       models.CaptureResult{TransactionResult: capture},
	}
}

func (p *Provider) authorize(ctx context.Context, op string, req models.TransactionRequest, card models.Card, capture bool) models.AuthorizationResult {
	var res models.AuthorizationResult

	if err := req.Validate(); err != nil {
		res.TransactionResult = p.result(models.CommunicationLocalError)
		res.ErrorCode = models.ErrorCodeUnknown
		res.ProviderErrorMessage = err.Error()
		return res
	}

	if r, ok := p.network(ctx, op); !ok {
		res.TransactionResult = r
		return res
	}

	if !supportedCurrencies[req.CurrencyCode] {
		res.TransactionResult = p.gatewayError(models.ErrorCodeCurrencyNotSupported, "91", "currency not supported: "+req.CurrencyCode)
		return res
	}

	number, month, year, tokenized, ok := p.resolveCard(card)
	if !ok {
		res.TransactionResult = p.gatewayError(models.ErrorCodeInvalidCardNumber, "14", "invalid card number")
		return res
	}
	if models.ValidateLuhn(number) != nil {
		res.TransactionResult = p.gatewayError(models.ErrorCodeInvalidCardNumber, "14", "invalid card number")
		return res
	}

	res.TransactionResult = p.result(models.CommunicationSuccess)
	res.TokenizedCard = tokenized
	res.ProviderCvvResult, res.CvvResult = cvvCheck(card.CardCode())
	res.ProviderAvsResult, res.AvsResult = avsCheck(card)

	switch {
	case number == CardDeclined:
		decline(&res, models.DeclineNoSpecific, "05")
	case number == CardInsufficientFunds:
		decline(&res, models.DeclineInsufficientFunds, "51")
	case expired(month, year):
		decline(&res, models.DeclineExpiredCard, "54")
	case res.CvvResult == models.CvvNoMatch:
		decline(&res, models.DeclineCVV2Mismatch, "N7")
	case req.Amount.GreaterThan(maxAmount):
		decline(&res, models.DeclineMaxSaleExceeded, "61")
	case number == CardHold:
		res.ProviderApprovalResult = "10"
		res.ApprovalResult = models.ApprovalHold
		res.ProviderReviewReason = "risk"
		res.ReviewReason = models.ReviewRiskManagement
		res.ProviderUniqueID = uuid.NewString()
	default:
		res.ProviderApprovalResult = "00"
		res.ApprovalResult = models.ApprovalApproved
		res.ApprovalCode = approvalCode()
		res.ProviderUniqueID = uuid.NewString()
	}

	if res.ProviderUniqueID != "" {
		p.ledger.SetDefault(res.ProviderUniqueID, &authorization{
			amount:   req.Amount,
			currency: req.CurrencyCode,
			captured: capture && res.ApprovalResult == models.ApprovalApproved,
		})
	}

	p.logger.Debug("authorization processed",
		"operation", op,
		"approval_result", res.ApprovalResult,
		"decline_reason", res.DeclineReason,
	)
	return res
}

func decline(res *models.AuthorizationResult, reason models.DeclineReason, providerCode string) {
	res.ProviderApprovalResult = providerCode
	res.ApprovalResult = models.ApprovalDeclined
	res.ProviderDeclineReason = providerCode
	res.DeclineReason = reason
}

func cvvCheck(code string) (string, models.CvvResult) {
	switch code {
	case "":
		return "S", models.CvvNotProvidedByMerchant
	case CardCodeMismatch:
		return "N", models.CvvNoMatch
	default:
		return "M", models.CvvMatch
	}
}

func avsCheck(card models.Card) (string, models.AvsResult) {
	switch {
	case card.StreetAddress1 == "" && card.PostalCode == "":
		return "", models.AvsAddressNotProvided
	case card.CountryCode() != "" && card.CountryCode() != "US":
		return "G", models.AvsNonUSCard
	case card.StreetAddress1 != "" && len(models.NumbersOnly(card.PostalCode, false)) == 9:
		return "X", models.AvsAddressYZip9
	case card.StreetAddress1 != "":
		return "Y", models.AvsAddressYZip5
	default:
		return "Z", models.AvsAddressNZip5
	}
}

func expired(month, year int) bool {
	if month == models.UnknownExpirationMonth || year == models.UnknownExpirationYear {
		return false
	}
	now := time.Now()
	return year < now.Year() || (year == now.Year() && month < int(now.Month()))
}

// resolveCard returns the number and expiration to charge, looking stored
// cards up in the vault. tokenized is set when the vault holds a
// replacement the caller has not applied yet.
func (p *Provider) resolveCard(card models.Card) (number string, month, year int, tokenized *models.TokenizedCard, ok bool) {
	if card.Number() != "" {
		return card.Number(), card.ExpirationMonth(), card.ExpirationYear(), nil, true
	}
	if card.ProviderUniqueID == "" {
		return "", 0, 0, nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vc, found := p.vault[card.ProviderUniqueID]
	if !found {
		return "", 0, 0, nil, false
	}
	if vc.replacement != nil {
		tc := *vc.replacement
		tokenized = &tc
	}
	return vc.number, vc.month, vc.year, tokenized, true
}

func (p *Provider) Capture(ctx context.Context, auth models.AuthorizationResult) models.CaptureResult {
	var res models.CaptureResult

	if r, ok := p.network(ctx, "capture"); !ok {
		res.TransactionResult = r
		return res
	}

	entry, found := p.ledger.Get(auth.ProviderUniqueID)
	if !found {
		res.TransactionResult = p.gatewayError(models.ErrorCodeTransactionNotFound, "25", "authorization not found or expired")
		return res
	}
	a := entry.(*authorization)

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case a.voided:
		res.TransactionResult = p.gatewayError(models.ErrorCodeInvalidTransactionType, "12", "authorization was voided")
	case a.captured:
		res.TransactionResult = p.gatewayError(models.ErrorCodeDuplicate, "94", "authorization already captured")
	default:
		a.captured = true
		res.TransactionResult = p.result(models.CommunicationSuccess)
		res.ProviderUniqueID = auth.ProviderUniqueID
	}
	return res
}

func (p *Provider) Void(ctx context.Context, txn *models.Transaction) models.VoidResult {
	var res models.VoidResult

	if r, ok := p.network(ctx, "void"); !ok {
		res.TransactionResult = r
		return res
	}

	var id string
	if txn.AuthorizationResult != nil {
		id = txn.AuthorizationResult.ProviderUniqueID
	}
	entry, found := p.ledger.Get(id)
	if !found {
		res.TransactionResult = p.gatewayError(models.ErrorCodeTransactionNotFound, "25", "transaction not found")
		return res
	}
	a := entry.(*authorization)

	p.mu.Lock()
	defer p.mu.Unlock()

	if a.voided {
		res.TransactionResult = p.gatewayError(models.ErrorCodeDuplicate, "94", "transaction already voided")
		return res
	}
	a.voided = true
	res.TransactionResult = p.result(models.CommunicationSuccess)
	res.ProviderUniqueID = id
	return res
}

func (p *Provider) Credit(ctx context.Context, req models.TransactionRequest, card models.Card) models.CreditResult {
	var res models.CreditResult

	if err := req.Validate(); err != nil {
		res.TransactionResult = p.result(models.CommunicationLocalError)
		res.ErrorCode = models.ErrorCodeUnknown
		res.ProviderErrorMessage = err.Error()
		return res
	}
	if r, ok := p.network(ctx, "credit"); !ok {
		res.TransactionResult = r
		return res
	}
	if !supportedCurrencies[req.CurrencyCode] {
		res.TransactionResult = p.gatewayError(models.ErrorCodeCurrencyNotSupported, "91", "currency not supported: "+req.CurrencyCode)
		return res
	}
	if _, _, _, _, ok := p.resolveCard(card); !ok {
		res.TransactionResult = p.gatewayError(models.ErrorCodeInvalidCardNumber, "14", "invalid card number")
		return res
	}

	res.TransactionResult = p.result(models.CommunicationSuccess)
	res.ProviderUniqueID = uuid.NewString()
	return res
}
