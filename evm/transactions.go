package evm

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"
)

// History returns recorded transactions with filtering, newest first
func (w *Wallet) History(req *model.HistoryRequest) (*model.HistoryResponse, error) {
	if _, _, err := w.currentAccount(); err != nil {
		return nil, err
	}
	if req == nil {
		req = &model.HistoryRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, invalid("%v", err)
	}

	all, err := w.readHistory()
	if err != nil {
		return nil, err
	}

	result := make([]model.Transaction, 0, len(all))
	for _, tx := range all {
		if req.ChainID != nil && *req.ChainID != tx.ChainID {
			continue
		}
		if req.Symbol != nil && !strings.EqualFold(*req.Symbol, tx.Symbol) {
			continue
		}
		if req.To != nil && !strings.EqualFold(*req.To, tx.To) {
			continue
		}
		if req.Hash != nil && !strings.EqualFold(*req.Hash, tx.Hash) {
			continue
		}
		if req.Status != nil && *req.Status != tx.Status {
			continue
		}

		// Filter by dates
		if req.Since != nil && tx.Timestamp.Before(*req.Since) {
			continue
		}
		if req.Until != nil && tx.Timestamp.After(*req.Until) {
			continue
		}

		result = append(result, tx)
	}

	// Sort by time DESC (newest first)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	return &model.HistoryResponse{Transactions: result}, nil
}

func (w *Wallet) readHistory() ([]model.Transaction, error) {
	var txs []model.Transaction
	err := w.store.GetJSON(storage.KeyHistory, &txs)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return txs, err
}

func (w *Wallet) appendHistory(tx model.Transaction) error {
	w.historyMu.Lock()
	defer w.historyMu.Unlock()

	txs, err := w.readHistory()
	if err != nil {
		return err
	}
	return w.store.PutJSON(storage.KeyHistory, append(txs, tx))
}

func (w *Wallet) updateHistoryStatus(hash string, status model.TransactionStatus) error {
	w.historyMu.Lock()
	defer w.historyMu.Unlock()

	txs, err := w.readHistory()
	if err != nil {
		return err
	}
	for i := range txs {
		if strings.EqualFold(txs[i].Hash, hash) {
			txs[i].Status = status
			return w.store.PutJSON(storage.KeyHistory, txs)
		}
	}
	return fmt.Errorf("transaction %s: %w", hash, storage.ErrNotFound)
}
