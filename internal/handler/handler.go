package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/model"

	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

// WalletHandler exposes an evm.Wallet over HTTP
type WalletHandler struct {
	wallet *evm.Wallet
	log    *logrus.Entry
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallet *evm.Wallet, log *logrus.Entry) (*WalletHandler, error) {
	if wallet == nil {
		return nil, errors.New("wallet is required")
	}
	if log == nil {
		log = logrus.WithField("component", "handler")
	}
	return &WalletHandler{wallet: wallet, log: log}, nil
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		http.Error(w, fmt.Sprintf("Method not allowed. Should be %s", method), http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &evm.ValidationError{Message: fmt.Sprintf("invalid request body: %v", err)}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *WalletHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	entry := h.log.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("request failed")
	} else {
		entry.WithError(err).Debug("request rejected")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// classify maps wallet errors to an HTTP status and error code
func classify(err error) (int, string) {
	var rpc *evm.RPCError
	switch {
	case evm.IsValidationError(err),
		errors.Is(err, evm.ErrPasswordMismatch),
		errors.Is(err, evm.ErrInvalidMnemonic),
		errors.Is(err, evm.ErrInvalidAddress):
		return http.StatusBadRequest, model.CodeValidation
	case errors.Is(err, evm.ErrInsufficientBalance):
		return http.StatusBadRequest, model.CodeInsufficientBalance
	case errors.Is(err, evm.ErrIncorrectPassword):
		return http.StatusUnauthorized, model.CodeIncorrectPassword
	case errors.Is(err, evm.ErrWalletNotFound):
		return http.StatusNotFound, model.CodeWalletNotFound
	case errors.Is(err, evm.ErrChainNotFound),
		errors.Is(err, evm.ErrTokenNotFound),
		errors.Is(err, evm.ErrAddressNotFound):
		return http.StatusNotFound, model.CodeNotFound
	case errors.Is(err, evm.ErrWalletExists):
		return http.StatusConflict, model.CodeWalletExists
	case errors.Is(err, evm.ErrChainExists),
		errors.Is(err, evm.ErrTokenExists):
		return http.StatusConflict, model.CodeConflict
	case errors.Is(err, evm.ErrLocked):
		return http.StatusLocked, model.CodeWalletLocked
	case errors.Is(err, evm.ErrCooldown):
		return http.StatusTooManyRequests, model.CodeCooldown
	case errors.Is(err, evm.ErrTransactionFailed):
		return http.StatusBadGateway, model.CodeTransactionFailed
	case errors.As(err, &rpc):
		return http.StatusBadGateway, model.CodeRPC
	}
	return http.StatusInternalServerError, model.CodeInternal
}
