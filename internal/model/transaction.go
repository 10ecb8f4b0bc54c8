package model

import (
	"fmt"
	"time"
)

// TransactionStatus is the lifecycle state of a sent transaction
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction is a locally recorded outgoing transfer
type Transaction struct {
	Hash        string            `json:"hash"`
	ChainID     int64             `json:"chainId"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Amount      string            `json:"amount"`
	Symbol      string            `json:"symbol"`
	Status      TransactionStatus `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	ExplorerURL string            `json:"explorerUrl,omitempty"`
}

// HistoryResponse represents response for GET /transactions
type HistoryResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// HistoryRequest represents filter parameters for GET /transactions
type HistoryRequest struct {
	ChainID *int64             `form:"chainId"`
	Symbol  *string            `form:"symbol"`
	To      *string            `form:"to"`
	Hash    *string            `form:"hash"`
	Status  *TransactionStatus `form:"status"`
	Since   *time.Time         `form:"since"`
	Until   *time.Time         `form:"until"`
}

// Validate validates HistoryRequest filter parameters.
func (r *HistoryRequest) Validate() error {
	if r.Status != nil {
		switch *r.Status {
		case TransactionStatusPending, TransactionStatusSuccess, TransactionStatusFailed:
		default:
			return fmt.Errorf("status must be pending, success or failed")
		}
	}
	if r.ChainID != nil && *r.ChainID <= 0 {
		return fmt.Errorf("chainId must be positive")
	}
	if r.Since != nil && r.Until != nil && r.Until.Before(*r.Since) {
		return fmt.Errorf("until date must be after or equal to since date")
	}
	return nil
}
