package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes carried in ErrorResponse.Code
const (
	CodeValidation          = "VALIDATION"
	CodeWalletNotFound      = "WALLET_NOT_FOUND"
	CodeWalletExists        = "WALLET_EXISTS"
	CodeWalletLocked        = "WALLET_LOCKED"
	CodeIncorrectPassword   = "INCORRECT_PASSWORD"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeCooldown            = "COOLDOWN"
	CodeRPC                 = "RPC_ERROR"
	CodeTransactionFailed   = "TRANSACTION_FAILED"
	CodeInternal            = "INTERNAL"
)
