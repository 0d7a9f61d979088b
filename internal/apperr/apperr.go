// Package apperr defines the settlement engine's error taxonomy.
// Every error carries a stable code that is safe to return to API clients.
package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Code is a stable, client-facing error identifier.
type Code string

const (
	CodeInternal               Code = "INTERNAL_ERROR"
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeNotFound               Code = "NOT_FOUND"
	CodeUnauthorized           Code = "UNAUTHORIZED"
	CodeInvalidAmount          Code = "INVALID_AMOUNT"
	CodeInsufficientFunds      Code = "INSUFFICIENT_FUNDS"
	CodeLimitExceeded          Code = "LIMIT_EXCEEDED"
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodeTerminalState          Code = "TERMINAL_STATE_VIOLATION"
	CodeUnknownCorrelation     Code = "UNKNOWN_CORRELATION"
	CodeStaleRate              Code = "STALE_RATE"
	CodeDuplicateCorrelation   Code = "DUPLICATE_CORRELATION"
	CodeInvalidPreimage        Code = "INVALID_PREIMAGE"
	CodeSettlementMismatch     Code = "SETTLEMENT_MISMATCH"
	CodeUserAlreadyExists      Code = "USER_ALREADY_EXISTS"
	CodeInvalidCredentials     Code = "INVALID_CREDENTIALS"
	CodeProviderUnavailable    Code = "PROVIDER_UNAVAILABLE"
	CodeTooManyRequests        Code = "TOO_MANY_REQUESTS"
	CodeInvalidWebhookSecret   Code = "INVALID_WEBHOOK_SECRET"
	CodeInvalidInvoice         Code = "INVALID_INVOICE"
	CodeInvalidPhoneNumber     Code = "INVALID_PHONE_NUMBER"
	CodeTransactionPersistence Code = "TRANSACTION_PENDING"
)

// Error is a typed application error.
type Error struct {
	Code    Code
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an application error.
func New(code Code, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

var (
	ErrInvalidAmount          = New(CodeInvalidAmount, http.StatusBadRequest, "invalid amount")
	ErrInsufficientFunds      = New(CodeInsufficientFunds, http.StatusUnprocessableEntity, "insufficient funds")
	ErrLimitExceeded          = New(CodeLimitExceeded, http.StatusUnprocessableEntity, "transaction limit exceeded")
	ErrInvalidTransition      = New(CodeInvalidTransition, http.StatusConflict, "invalid state transition")
	ErrTerminalStateViolation = New(CodeTerminalState, http.StatusConflict, "transaction is in a terminal state")
	ErrUnknownCorrelation     = New(CodeUnknownCorrelation, http.StatusNotFound, "no transaction matches correlation key")
	ErrStaleRate              = New(CodeStaleRate, http.StatusServiceUnavailable, "no fresh exchange rate available")
	ErrDuplicateCorrelation   = New(CodeDuplicateCorrelation, http.StatusConflict, "correlation key already in use")
	ErrInvalidPreimage        = New(CodeInvalidPreimage, http.StatusUnprocessableEntity, "preimage does not match payment hash")
	ErrSettlementMismatch     = New(CodeSettlementMismatch, http.StatusUnprocessableEntity, "settlement does not match transaction")
	ErrNotFound               = New(CodeNotFound, http.StatusNotFound, "not found")
	ErrValidation             = New(CodeValidation, http.StatusBadRequest, "validation failed")
	ErrUserAlreadyExists      = New(CodeUserAlreadyExists, http.StatusConflict, "phone number or lightning username already registered")
	ErrInvalidCredentials     = New(CodeInvalidCredentials, http.StatusUnauthorized, "invalid phone number or PIN")
	ErrUnauthorized           = New(CodeUnauthorized, http.StatusUnauthorized, "unauthorized")
	ErrProviderUnavailable    = New(CodeProviderUnavailable, http.StatusBadGateway, "payment provider unavailable")
	ErrTooManyRequests        = New(CodeTooManyRequests, http.StatusTooManyRequests, "too many requests")
	ErrInvalidWebhookSecret   = New(CodeInvalidWebhookSecret, http.StatusUnauthorized, "invalid webhook secret")
	ErrInvalidInvoice         = New(CodeInvalidInvoice, http.StatusBadRequest, "invalid lightning invoice")
	ErrInvalidPhoneNumber     = New(CodeInvalidPhoneNumber, http.StatusBadRequest, "invalid phone number")
	// ErrPersistence is surfaced when storage retries are exhausted; the
	// transaction stays pending and is picked up by the expiry sweeper.
	ErrPersistence = New(CodeTransactionPersistence, http.StatusAccepted, "transaction accepted and pending")
)

// CodeOf returns the stable code of err, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// HTTPStatus returns the HTTP status associated with err.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message of err. Internal errors are masked.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// Response is the JSON body of an error reply.
// swagger:model
type Response struct {
	Code    Code   `json:"code" example:"INSUFFICIENT_FUNDS"`
	Message string `json:"error" example:"insufficient funds"`
}

// Write replies with err's status and a JSON Response.
func Write(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(Response{Code: CodeOf(err), Message: Message(err)})
}
