package models

import (
	"fmt"
	"time"
)

// Principal identifies who performs an operation. Stores use it for audit
// and access decisions.
type Principal string

// TransactionStatus represents where a transaction is in its lifecycle
type TransactionStatus string

const (
	// TransactionStatusProcessing is recorded before the gateway is contacted
	TransactionStatusProcessing   TransactionStatus = "PROCESSING"
	TransactionStatusLocalError   TransactionStatus = "LOCAL_ERROR"
	TransactionStatusIOError      TransactionStatus = "IO_ERROR"
	TransactionStatusGatewayError TransactionStatus = "GATEWAY_ERROR"
	TransactionStatusAuthorized   TransactionStatus = "AUTHORIZED"
	TransactionStatusCaptured     TransactionStatus = "CAPTURED"
	TransactionStatusDeclined     TransactionStatus = "DECLINED"
	TransactionStatusHold         TransactionStatus = "HOLD"
	TransactionStatusVoid         TransactionStatus = "VOID"
	TransactionStatusChargeback   TransactionStatus = "CHARGEBACK"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionStatusProcessing, TransactionStatusLocalError, TransactionStatusIOError,
		TransactionStatusGatewayError, TransactionStatusAuthorized, TransactionStatusCaptured,
		TransactionStatusDeclined, TransactionStatusHold, TransactionStatusVoid,
		TransactionStatusChargeback:
		return true
	}
	return false
}

// Voidable reports whether a void may be attempted from this status.
func (s TransactionStatus) Voidable() bool {
	return s == TransactionStatusAuthorized || s == TransactionStatusCaptured || s == TransactionStatusHold
}

// Transaction is one payment attempt and everything the gateway said about it.
// Only the processor mutates it; stores hand out copies.
type Transaction struct {
	// ID is assigned by the store on insert
	ID         string
	ProviderID string
	GroupName  string
	Request    TransactionRequest
	// Card is the card as submitted, without its transient fields
	Card Card

	AuthorizationTime      time.Time
	AuthorizationPrincipal Principal
	AuthorizationResult    *AuthorizationResult

	CaptureTime      time.Time
	CapturePrincipal Principal
	CaptureResult    *CaptureResult

	VoidTime      time.Time
	VoidPrincipal Principal
	VoidResult    *VoidResult

	Status TransactionStatus
}

// Clone returns a deep copy of t.
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	c := *t
	if t.AuthorizationResult != nil {
		ar := t.AuthorizationResult.Clone()
		c.AuthorizationResult = &ar
	}
	if t.CaptureResult != nil {
		cr := *t.CaptureResult
		c.CaptureResult = &cr
	}
	if t.VoidResult != nil {
		vr := *t.VoidResult
		c.VoidResult = &vr
	}
	return &c
}

// SaleStatus maps a sale's authorization outcome to the next status.
func SaleStatus(cr CommunicationResult, ar ApprovalResult) (TransactionStatus, error) {
	return approvalStatus(cr, ar, TransactionStatusCaptured)
}

// AuthorizeStatus maps an authorization outcome to the next status.
func AuthorizeStatus(cr CommunicationResult, ar ApprovalResult) (TransactionStatus, error) {
	return approvalStatus(cr, ar, TransactionStatusAuthorized)
}

func approvalStatus(cr CommunicationResult, ar ApprovalResult, approved TransactionStatus) (TransactionStatus, error) {
	switch cr {
	case CommunicationLocalError:
		return TransactionStatusLocalError, nil
	case CommunicationIOError:
		return TransactionStatusIOError, nil
	case CommunicationGatewayError:
		return TransactionStatusGatewayError, nil
	case CommunicationSuccess:
		switch ar {
		case ApprovalApproved:
			return approved, nil
		case ApprovalDeclined:
			return TransactionStatusDeclined, nil
		case ApprovalHold:
			return TransactionStatusHold, nil
		}
	}
	return "", fmt.Errorf("%w: communication result %q with approval result %q", ErrUnexpectedResult, cr, ar)
}

// CaptureStatus maps a capture outcome to the next status.
func CaptureStatus(cr CommunicationResult) (TransactionStatus, error) {
	switch cr {
	case CommunicationLocalError:
		return TransactionStatusLocalError, nil
	case CommunicationIOError:
		return TransactionStatusIOError, nil
	case CommunicationGatewayError:
		return TransactionStatusGatewayError, nil
	case CommunicationSuccess:
		return TransactionStatusCaptured, nil
	}
	return "", fmt.Errorf("%w: capture communication result %q", ErrUnexpectedResult, cr)
}

// IdempotencyKey is a cached response for a replayed mutating request
type IdempotencyKey struct {
	CreatedAt   time.Time
	Key         string
	RequestPath string
	// RequestHash is the hex SHA-256 of the request body that produced the
	// response; empty disables the body check
	RequestHash    string
	ResponseBody   string
	ResponseStatus int
}
