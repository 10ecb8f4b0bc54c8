package evm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/evm-wallet/internal/common"
	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
)

// nativeToken is the chain's base currency entry
func nativeToken(chain model.Chain) model.Token {
	decimals := uint8(common.NativeDecimals)
	return model.Token{Name: chain.Name, Symbol: chain.Ticker, Decimals: &decimals}
}

// loadTokens reads a chain's token list, keeping the native token first
func (w *Wallet) loadTokens(chain model.Chain) ([]model.Token, error) {
	var stored []model.Token
	err := w.store.GetJSON(storage.TokensKey(chain.ChainID), &stored)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	tokens := []model.Token{nativeToken(chain)}
	for _, t := range stored {
		if t.IsNative() {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Tokens lists the current chain's tokens, native first
func (w *Wallet) Tokens() *model.TokensResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return &model.TokensResponse{
		ChainID: w.chain.ChainID,
		Tokens:  append([]model.Token{}, w.tokens...),
	}
}

// AddToken adds an ERC20 token to the current chain
func (w *Wallet) AddToken(req model.AddTokenRequest) (*model.Token, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Symbol = strings.TrimSpace(req.Symbol)
	req.Address = strings.TrimSpace(req.Address)
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if !gethcommon.IsHexAddress(req.Address) {
		return nil, fmt.Errorf("token contract %q: %w", req.Address, ErrInvalidAddress)
	}
	if strings.EqualFold(req.Symbol, model.NativeSymbol) {
		return nil, invalid("symbol %q is reserved", req.Symbol)
	}

	token := model.Token{
		Name:     req.Name,
		Symbol:   req.Symbol,
		Address:  gethcommon.HexToAddress(req.Address).Hex(),
		Decimals: req.Decimals,
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, t := range w.tokens {
		if strings.EqualFold(t.Symbol, token.Symbol) || (!t.IsNative() && strings.EqualFold(t.Address, token.Address)) {
			return nil, fmt.Errorf("%s: %w", token.Symbol, ErrTokenExists)
		}
	}

	tokens := append(append([]model.Token{}, w.tokens...), token)
	if err := w.store.PutJSON(storage.TokensKey(w.chain.ChainID), tokens); err != nil {
		return nil, err
	}
	w.tokens = tokens

	w.log.WithFields(logrus.Fields{"chainId": w.chain.ChainID, "symbol": token.Symbol, "address": token.Address}).Info("token added")
	return &token, nil
}

// RemoveToken removes a token from the current chain. The native token stays.
func (w *Wallet) RemoveToken(symbol string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := -1
	for i, t := range w.tokens {
		if strings.EqualFold(t.Symbol, strings.TrimSpace(symbol)) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%s: %w", symbol, ErrTokenNotFound)
	}
	if w.tokens[idx].IsNative() {
		return invalid("the native token cannot be removed")
	}

	tokens := append(append([]model.Token{}, w.tokens[:idx]...), w.tokens[idx+1:]...)
	if err := w.store.PutJSON(storage.TokensKey(w.chain.ChainID), tokens); err != nil {
		return err
	}
	w.tokens = tokens
	return nil
}

// findToken resolves a send/estimate token selector against the current list.
// Empty or "native" selects the base currency.
func findToken(tokens []model.Token, selector string) (model.Token, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || strings.EqualFold(selector, model.NativeSymbol) {
		return tokens[0], nil
	}
	for _, t := range tokens {
		if strings.EqualFold(t.Symbol, selector) {
			return t, nil
		}
	}
	return model.Token{}, fmt.Errorf("%s: %w", selector, ErrTokenNotFound)
}
