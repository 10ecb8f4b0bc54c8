package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrWalletNotFound      = errors.New("no wallet found")
	ErrWalletExists        = errors.New("wallet already exists")
	ErrLocked              = errors.New("wallet is locked")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidMnemonic     = errors.New("invalid mnemonic phrase")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrAddressNotFound     = errors.New("address not derived")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrChainNotFound       = errors.New("chain not found")
	ErrChainExists         = errors.New("chain already exists")
	ErrTokenNotFound       = errors.New("token not found")
	ErrTokenExists         = errors.New("token already exists")
	ErrCooldown            = errors.New("cooldown active")
	ErrTransactionFailed   = errors.New("transaction reverted")
)

// ValidationError is a form-level input error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError checks if err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// RPCError wraps a failed call to a chain's JSON-RPC endpoint
type RPCError struct {
	Op  string
	Err error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

func rpcErr(op string, err error) error {
	return &RPCError{Op: op, Err: err}
}

var validate = validator.New()

// ValidateRequest runs struct tag validation and reports missing fields
// the way the forms did: "All fields are required".
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return invalid("All fields are required (missing or invalid: %s)", strings.Join(fields, ", "))
}
