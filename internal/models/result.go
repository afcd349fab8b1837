package models

// CommunicationResult tells whether the gateway was reached and answered.
// It is always set and is the first thing to inspect on any result.
type CommunicationResult string

const (
	// CommunicationLocalError means the problem was found before the network was used
	CommunicationLocalError CommunicationResult = "LOCAL_ERROR"
	// CommunicationIOError means the network call itself failed
	CommunicationIOError CommunicationResult = "IO_ERROR"
	// CommunicationGatewayError means the gateway answered with a rejection
	CommunicationGatewayError CommunicationResult = "GATEWAY_ERROR"
	// CommunicationSuccess means the gateway answered and its approval result is authoritative
	CommunicationSuccess CommunicationResult = "SUCCESS"
)

func (c CommunicationResult) Valid() bool {
	switch c {
	case CommunicationLocalError, CommunicationIOError, CommunicationGatewayError, CommunicationSuccess:
		return true
	}
	return false
}

// ErrorCode is the provider-neutral error taxonomy.
type ErrorCode string

const (
	ErrorCodeUnknown                               ErrorCode = "UNKNOWN"
	ErrorCodeHashCheckFailed                       ErrorCode = "HASH_CHECK_FAILED"
	ErrorCodeRateLimit                             ErrorCode = "RATE_LIMIT"
	ErrorCodeInvalidTransactionType                ErrorCode = "INVALID_TRANSACTION_TYPE"
	ErrorCodeVoiceAuthorizationRequired            ErrorCode = "VOICE_AUTHORIZATION_REQUIRED"
	ErrorCodeInsufficientPermissions               ErrorCode = "INSUFFICIENT_PERMISSIONS"
	ErrorCodeInvalidAmount                         ErrorCode = "INVALID_AMOUNT"
	ErrorCodeInvalidCardNumber                     ErrorCode = "INVALID_CARD_NUMBER"
	ErrorCodeInvalidExpirationDate                 ErrorCode = "INVALID_EXPIRATION_DATE"
	ErrorCodeCardExpired                           ErrorCode = "CARD_EXPIRED"
	ErrorCodeDuplicate                             ErrorCode = "DUPLICATE"
	ErrorCodeApprovalCodeRequired                  ErrorCode = "APPROVAL_CODE_REQUIRED"
	ErrorCodeInvalidMerchantID                     ErrorCode = "INVALID_MERCHANT_ID"
	ErrorCodeInvalidPartner                        ErrorCode = "INVALID_PARTNER"
	ErrorCodeInvalidProviderUniqueID               ErrorCode = "INVALID_PROVIDER_UNIQUE_ID"
	ErrorCodeTransactionNotFound                   ErrorCode = "TRANSACTION_NOT_FOUND"
	ErrorCodeCardTypeNotSupported                  ErrorCode = "CARD_TYPE_NOT_SUPPORTED"
	ErrorCodeErrorTryAgain                         ErrorCode = "ERROR_TRY_AGAIN"
	ErrorCodeErrorTryAgain5Minutes                 ErrorCode = "ERROR_TRY_AGAIN_5_MINUTES"
	ErrorCodeProviderConfigurationError            ErrorCode = "PROVIDER_CONFIGURATION_ERROR"
	ErrorCodeApprovedButSettlementFailed           ErrorCode = "APPROVED_BUT_SETTLEMENT_FAILED"
	ErrorCodeInvalidCurrencyCode                   ErrorCode = "INVALID_CURRENCY_CODE"
	ErrorCodeMustBeEncrypted                       ErrorCode = "MUST_BE_ENCRYPTED"
	ErrorCodeNoSession                             ErrorCode = "NO_SESSION"
	ErrorCodeCaptureAmountLessThanAuthorization    ErrorCode = "CAPTURE_AMOUNT_LESS_THAN_AUTHORIZATION"
	ErrorCodeCaptureAmountGreaterThanAuthorization ErrorCode = "CAPTURE_AMOUNT_GREATER_THAN_AUTHORIZATION"
	ErrorCodeAmountTooHigh                         ErrorCode = "AMOUNT_TOO_HIGH"
	ErrorCodeTransactionNotSettled                 ErrorCode = "TRANSACTION_NOT_SETTLED"
	ErrorCodeSumOfCreditsTooHigh                   ErrorCode = "SUM_OF_CREDITS_TOO_HIGH"
	ErrorCodeAuthorizedNotificationFailed          ErrorCode = "AUTHORIZED_NOTIFICATION_FAILED"
	ErrorCodeCreditCriteriaNotMet                  ErrorCode = "CREDIT_CRITERIA_NOT_MET"
	ErrorCodeACHOnly                               ErrorCode = "ACH_ONLY"
	ErrorCodeGatewaySecurityGuidelinesNotMet       ErrorCode = "GATEWAY_SECURITY_GUIDELINES_NOT_MET"
	ErrorCodeInvalidApprovalCode                   ErrorCode = "INVALID_APPROVAL_CODE"
	ErrorCodeInvalidDutyAmount                     ErrorCode = "INVALID_DUTY_AMOUNT"
	ErrorCodeInvalidShippingAmount                 ErrorCode = "INVALID_SHIPPING_AMOUNT"
	ErrorCodeInvalidTaxAmount                      ErrorCode = "INVALID_TAX_AMOUNT"
	ErrorCodeInvalidCustomerTaxID                  ErrorCode = "INVALID_CUSTOMER_TAX_ID"
	ErrorCodeInvalidCardCode                       ErrorCode = "INVALID_CARD_CODE"
	ErrorCodeCustomerAccountDisabled               ErrorCode = "CUSTOMER_ACCOUNT_DISABLED"
	ErrorCodeInvalidInvoiceNumber                  ErrorCode = "INVALID_INVOICE_NUMBER"
	ErrorCodeInvalidOrderNumber                    ErrorCode = "INVALID_ORDER_NUMBER"
	ErrorCodeInvalidCardName                       ErrorCode = "INVALID_CARD_NAME"
	ErrorCodeInvalidCardAddress                    ErrorCode = "INVALID_CARD_ADDRESS"
	ErrorCodeInvalidCardCity                       ErrorCode = "INVALID_CARD_CITY"
	ErrorCodeInvalidCardState                      ErrorCode = "INVALID_CARD_STATE"
	ErrorCodeInvalidCardPostalCode                 ErrorCode = "INVALID_CARD_POSTAL_CODE"
	ErrorCodeInvalidCardCountryCode                ErrorCode = "INVALID_CARD_COUNTRY_CODE"
	ErrorCodeInvalidCardPhone                      ErrorCode = "INVALID_CARD_PHONE"
	ErrorCodeInvalidCardFax                        ErrorCode = "INVALID_CARD_FAX"
	ErrorCodeInvalidCardEmail                      ErrorCode = "INVALID_CARD_EMAIL"
	ErrorCodeInvalidShippingName                   ErrorCode = "INVALID_SHIPPING_NAME"
	ErrorCodeInvalidShippingAddress                ErrorCode = "INVALID_SHIPPING_ADDRESS"
	ErrorCodeInvalidShippingCity                   ErrorCode = "INVALID_SHIPPING_CITY"
	ErrorCodeInvalidShippingState                  ErrorCode = "INVALID_SHIPPING_STATE"
	ErrorCodeInvalidShippingPostalCode             ErrorCode = "INVALID_SHIPPING_POSTAL_CODE"
	ErrorCodeInvalidShippingCountryCode            ErrorCode = "INVALID_SHIPPING_COUNTRY_CODE"
	ErrorCodeCurrencyNotSupported                  ErrorCode = "CURRENCY_NOT_SUPPORTED"
)

var errorCodes = map[ErrorCode]struct{}{
	ErrorCodeUnknown: {}, ErrorCodeHashCheckFailed: {}, ErrorCodeRateLimit: {},
	ErrorCodeInvalidTransactionType: {}, ErrorCodeVoiceAuthorizationRequired: {},
	ErrorCodeInsufficientPermissions: {}, ErrorCodeInvalidAmount: {}, ErrorCodeInvalidCardNumber: {},
	ErrorCodeInvalidExpirationDate: {}, ErrorCodeCardExpired: {}, ErrorCodeDuplicate: {},
	ErrorCodeApprovalCodeRequired: {}, ErrorCodeInvalidMerchantID: {}, ErrorCodeInvalidPartner: {},
	ErrorCodeInvalidProviderUniqueID: {}, ErrorCodeTransactionNotFound: {}, ErrorCodeCardTypeNotSupported: {},
	ErrorCodeErrorTryAgain: {}, ErrorCodeErrorTryAgain5Minutes: {}, ErrorCodeProviderConfigurationError: {},
	ErrorCodeApprovedButSettlementFailed: {}, ErrorCodeInvalidCurrencyCode: {}, ErrorCodeMustBeEncrypted: {},
	ErrorCodeNoSession: {}, ErrorCodeCaptureAmountLessThanAuthorization: {},
	ErrorCodeCaptureAmountGreaterThanAuthorization: {}, ErrorCodeAmountTooHigh: {},
	ErrorCodeTransactionNotSettled: {}, ErrorCodeSumOfCreditsTooHigh: {}, ErrorCodeAuthorizedNotificationFailed: {},
	ErrorCodeCreditCriteriaNotMet: {}, ErrorCodeACHOnly: {}, ErrorCodeGatewaySecurityGuidelinesNotMet: {},
	ErrorCodeInvalidApprovalCode: {}, ErrorCodeInvalidDutyAmount: {}, ErrorCodeInvalidShippingAmount: {},
	ErrorCodeInvalidTaxAmount: {}, ErrorCodeInvalidCustomerTaxID: {}, ErrorCodeInvalidCardCode: {},
	ErrorCodeCustomerAccountDisabled: {}, ErrorCodeInvalidInvoiceNumber: {}, ErrorCodeInvalidOrderNumber: {},
	ErrorCodeInvalidCardName: {}, ErrorCodeInvalidCardAddress: {}, ErrorCodeInvalidCardCity: {},
	ErrorCodeInvalidCardState: {}, ErrorCodeInvalidCardPostalCode: {}, ErrorCodeInvalidCardCountryCode: {},
	ErrorCodeInvalidCardPhone: {}, ErrorCodeInvalidCardFax: {}, ErrorCodeInvalidCardEmail: {},
	ErrorCodeInvalidShippingName: {}, ErrorCodeInvalidShippingAddress: {}, ErrorCodeInvalidShippingCity: {},
	ErrorCodeInvalidShippingState: {}, ErrorCodeInvalidShippingPostalCode: {},
	ErrorCodeInvalidShippingCountryCode: {}, ErrorCodeCurrencyNotSupported: {},
}

func (e ErrorCode) Valid() bool {
	_, ok := errorCodes[e]
	return ok
}

// AllowedFor reports whether the code may accompany the communication result.
// UNKNOWN goes with anything; HASH_CHECK_FAILED is the only local error;
// every other code is a gateway rejection.
func (e ErrorCode) AllowedFor(c CommunicationResult) bool {
	if e == ErrorCodeUnknown {
		return c.Valid()
	}
	switch c {
	case CommunicationLocalError:
		return e == ErrorCodeHashCheckFailed
	case CommunicationGatewayError:
		return e.Valid() && e != ErrorCodeHashCheckFailed
	default:
		return false
	}
}

// ApprovalResult is only meaningful when the communication result is SUCCESS.
type ApprovalResult string

const (
	ApprovalApproved ApprovalResult = "APPROVED"
	ApprovalDeclined ApprovalResult = "DECLINED"
	ApprovalHold     ApprovalResult = "HOLD"
)

func (a ApprovalResult) Valid() bool {
	return a == ApprovalApproved || a == ApprovalDeclined || a == ApprovalHold
}

type DeclineReason string

const (
	DeclineNoSpecific           DeclineReason = "NO_SPECIFIC"
	DeclineExpiredCard          DeclineReason = "EXPIRED_CARD"
	DeclinePickUpCard           DeclineReason = "PICK_UP_CARD"
	DeclineAVSMismatch          DeclineReason = "AVS_MISMATCH"
	DeclineCVV2Mismatch         DeclineReason = "CVV2_MISMATCH"
	DeclineFraudDetected        DeclineReason = "FRAUD_DETECTED"
	DeclineBlockedIP            DeclineReason = "BLOCKED_IP"
	DeclineManualReview         DeclineReason = "MANUAL_REVIEW"
	DeclineInsufficientFunds    DeclineReason = "INSUFFICIENT_FUNDS"
	DeclineMaxSaleExceeded      DeclineReason = "MAX_SALE_EXCEEDED"
	DeclineMinSaleNotMet        DeclineReason = "MIN_SALE_NOT_MET"
	DeclineVolumeExceeded1Day   DeclineReason = "VOLUME_EXCEEDED_1_DAY"
	DeclineUsageExceeded1Day    DeclineReason = "USAGE_EXCEEDED_1_DAY"
	DeclineVolumeExceeded3Days  DeclineReason = "VOLUME_EXCEEDED_3_DAYS"
	DeclineUsageExceeded3Days   DeclineReason = "USAGE_EXCEEDED_3_DAYS"
	DeclineVolumeExceeded15Days DeclineReason = "VOLUME_EXCEEDED_15_DAYS"
	DeclineUsageExceeded15Days  DeclineReason = "USAGE_EXCEEDED_15_DAYS"
	DeclineVolumeExceeded30Days DeclineReason = "VOLUME_EXCEEDED_30_DAYS"
	DeclineUsageExceeded30Days  DeclineReason = "USAGE_EXCEEDED_30_DAYS"
	DeclineStolenOrLostCard     DeclineReason = "STOLEN_OR_LOST_CARD"
	DeclineAVSFailure           DeclineReason = "AVS_FAILURE"
	DeclineNotProvided          DeclineReason = "NOT_PROVIDED"
	DeclineUnknown              DeclineReason = "UNKNOWN"
)

func (d DeclineReason) Valid() bool {
	switch d {
	case DeclineNoSpecific, DeclineExpiredCard, DeclinePickUpCard, DeclineAVSMismatch,
		DeclineCVV2Mismatch, DeclineFraudDetected, DeclineBlockedIP, DeclineManualReview,
		DeclineInsufficientFunds, DeclineMaxSaleExceeded, DeclineMinSaleNotMet,
		DeclineVolumeExceeded1Day, DeclineUsageExceeded1Day, DeclineVolumeExceeded3Days,
		DeclineUsageExceeded3Days, DeclineVolumeExceeded15Days, DeclineUsageExceeded15Days,
		DeclineVolumeExceeded30Days, DeclineUsageExceeded30Days, DeclineStolenOrLostCard,
		DeclineAVSFailure, DeclineNotProvided, DeclineUnknown:
		return true
	}
	return false
}

type ReviewReason string

const (
	ReviewRiskManagement                   ReviewReason = "RISK_MANAGEMENT"
	ReviewAcceptedMerchantReview           ReviewReason = "ACCEPTED_MERCHANT_REVIEW"
	ReviewAcceptedAuthorizedMerchantReview ReviewReason = "ACCEPTED_AUTHORIZED_MERCHANT_REVIEW"
)

func (r ReviewReason) Valid() bool {
	return r == ReviewRiskManagement || r == ReviewAcceptedMerchantReview || r == ReviewAcceptedAuthorizedMerchantReview
}

type CvvResult string

const (
	CvvMatch                 CvvResult = "MATCH"
	CvvNoMatch               CvvResult = "NO_MATCH"
	CvvNotProcessed          CvvResult = "NOT_PROCESSED"
	CvvNotProvidedByMerchant CvvResult = "CVV2_NOT_PROVIDED_BY_MERCHANT"
	CvvNotSupportedByIssuer  CvvResult = "NOT_SUPPORTED_BY_ISSUER"
	CvvUnknown               CvvResult = "UNKNOWN"
)

func (c CvvResult) Valid() bool {
	switch c {
	case CvvMatch, CvvNoMatch, CvvNotProcessed, CvvNotProvidedByMerchant, CvvNotSupportedByIssuer, CvvUnknown:
		return true
	}
	return false
}

type AvsResult string

const (
	AvsAddressNotProvided  AvsResult = "ADDRESS_NOT_PROVIDED"
	AvsAddressYZip9        AvsResult = "ADDRESS_Y_ZIP_9"
	AvsAddressYZip5        AvsResult = "ADDRESS_Y_ZIP_5"
	AvsAddressYZipN        AvsResult = "ADDRESS_Y_ZIP_N"
	AvsAddressNZip9        AvsResult = "ADDRESS_N_ZIP_9"
	AvsAddressNZip5        AvsResult = "ADDRESS_N_ZIP_5"
	AvsAddressNZipN        AvsResult = "ADDRESS_N_ZIP_N"
	AvsUnavailable         AvsResult = "UNAVAILABLE"
	AvsRetry               AvsResult = "RETRY"
	AvsError               AvsResult = "ERROR"
	AvsServiceNotSupported AvsResult = "SERVICE_NOT_SUPPORTED"
	AvsNonUSCard           AvsResult = "NON_US_CARD"
	AvsNotApplicable       AvsResult = "NOT_APPLICABLE"
	AvsUnknown             AvsResult = "UNKNOWN"
)

func (a AvsResult) Valid() bool {
	switch a {
	case AvsAddressNotProvided, AvsAddressYZip9, AvsAddressYZip5, AvsAddressYZipN,
		AvsAddressNZip9, AvsAddressNZip5, AvsAddressNZipN, AvsUnavailable, AvsRetry,
		AvsError, AvsServiceNotSupported, AvsNonUSCard, AvsNotApplicable, AvsUnknown:
		return true
	}
	return false
}

// TransactionResult is the part common to every gateway result. Optional
// enum fields are empty when the gateway did not report them.
type TransactionResult struct {
	ProviderID           string              `json:"providerId"`
	CommunicationResult  CommunicationResult `json:"communicationResult"`
	ProviderErrorCode    string              `json:"providerErrorCode,omitempty"`
	ErrorCode            ErrorCode           `json:"errorCode,omitempty"`
	ProviderErrorMessage string              `json:"providerErrorMessage,omitempty"`
	ProviderUniqueID     string              `json:"providerUniqueId,omitempty"`
}

// AuthorizationResult carries the approval outcome. Each neutral code sits
// next to the raw provider string it was mapped from.
type AuthorizationResult struct {
	TransactionResult

	TokenizedCard *TokenizedCard `json:"tokenizedCard,omitempty"`

	ProviderApprovalResult string         `json:"providerApprovalResult,omitempty"`
	ApprovalResult         ApprovalResult `json:"approvalResult,omitempty"`
	ProviderDeclineReason  string         `json:"providerDeclineReason,omitempty"`
	DeclineReason          DeclineReason  `json:"declineReason,omitempty"`
	ProviderReviewReason   string         `json:"providerReviewReason,omitempty"`
	ReviewReason           ReviewReason   `json:"reviewReason,omitempty"`
	ProviderCvvResult      string         `json:"providerCvvResult,omitempty"`
	CvvResult              CvvResult      `json:"cvvResult,omitempty"`
	ProviderAvsResult      string         `json:"providerAvsResult,omitempty"`
	AvsResult              AvsResult      `json:"avsResult,omitempty"`
	ApprovalCode           string         `json:"approvalCode,omitempty"`
}

// Validate checks the communication result is defined and that any error
// code is one allowed with it.
func (r TransactionResult) Validate() error {
	if !r.CommunicationResult.Valid() {
		return newValidationError("communication result", "%q is not defined", r.CommunicationResult)
	}
	if r.ErrorCode != "" && !r.ErrorCode.AllowedFor(r.CommunicationResult) {
		return newValidationError("error code", "%s is not allowed with %s", r.ErrorCode, r.CommunicationResult)
	}
	return nil
}

// Validate also checks decline and review reasons only accompany the
// matching approval result.
func (r AuthorizationResult) Validate() error {
	if err := r.TransactionResult.Validate(); err != nil {
		return err
	}
	if r.DeclineReason != "" && r.ApprovalResult != ApprovalDeclined {
		return newValidationError("decline reason", "set without a DECLINED approval result")
	}
	if r.ReviewReason != "" && r.ApprovalResult != ApprovalHold {
		return newValidationError("review reason", "set without a HOLD approval result")
	}
	return nil
}

// Clone returns a copy that shares no pointers with r.
func (r AuthorizationResult) Clone() AuthorizationResult {
	if r.TokenizedCard != nil {
		tc := *r.TokenizedCard
		r.TokenizedCard = &tc
	}
	return r
}

type CaptureResult struct {
	TransactionResult
}

type VoidResult struct {
	TransactionResult
}

type CreditResult struct {
	TransactionResult
}

// SaleResult is an authorization and capture performed in one gateway call.
type SaleResult struct {
	Authorization AuthorizationResult
	Capture       CaptureResult
}
