package evm

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	"github.com/sirupsen/logrus"
)

// DefaultChains is the built-in chain registry
func DefaultChains() []model.Chain {
	return []model.Chain{
		{
			Name:        "Daily Mainnet",
			ChainID:     824,
			RPCURL:      "https://rpc.mainnet.dailycrypto.net/",
			Ticker:      "DLY",
			LogoURL:     "/assets/logos/dly.png",
			ExplorerURL: "https://explorer.mainnet.dailycrypto.net",
		},
		{
			Name:        "Daily Testnet",
			ChainID:     825,
			RPCURL:      "https://rpc.testnet.dailycrypto.net/",
			Ticker:      "tDLY",
			LogoURL:     "/assets/logos/dly.png",
			ExplorerURL: "https://explorer.testnet.dailycrypto.net",
		},
		{
			Name:        "Ethereum Mainnet",
			ChainID:     1,
			RPCURL:      "https://eth.llamarpc.com/",
			Ticker:      "ETH",
			LogoURL:     "/assets/logos/eth.png",
			ExplorerURL: "https://etherscan.io",
			PriceID:     "ethereum",
		},
		{
			Name:        "Binance Smart Chain",
			ChainID:     56,
			RPCURL:      "https://bsc-dataseed.binance.org/",
			Ticker:      "BNB",
			LogoURL:     "/assets/logos/bnb.png",
			ExplorerURL: "https://bscscan.com",
			PriceID:     "binancecoin",
		},
	}
}

// Chains lists built-in chains followed by custom ones
func (w *Wallet) Chains() *model.ChainsResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return &model.ChainsResponse{
		Current: w.chain.ChainID,
		Chains:  append(DefaultChains(), w.custom...),
	}
}

// CurrentChain returns the selected chain
func (w *Wallet) CurrentChain() model.Chain {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.chain
}

// SelectChain switches the global chain and loads its token list
func (w *Wallet) SelectChain(chainID int64) (*model.Chain, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	chain, ok := w.findChain(chainID)
	if !ok {
		return nil, fmt.Errorf("chain %d: %w", chainID, ErrChainNotFound)
	}
	if err := w.selectChainLocked(chain); err != nil {
		return nil, err
	}
	w.log.WithField("chainId", chainID).Info("chain selected")
	return &chain, nil
}

// AddChain registers a custom chain and selects it
func (w *Wallet) AddChain(c model.Chain) (*model.Chain, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.RPCURL = strings.TrimSpace(c.RPCURL)
	c.Ticker = strings.TrimSpace(c.Ticker)
	c.ExplorerURL = strings.TrimRight(strings.TrimSpace(c.ExplorerURL), "/")
	c.PriceID = strings.TrimSpace(c.PriceID)
	c.Custom = true

	if err := ValidateRequest(c); err != nil {
		return nil, err
	}
	if err := checkURL(c.RPCURL, "http", "https", "ws", "wss"); err != nil {
		return nil, invalid("invalid RPC URL: %v", err)
	}
	if err := checkURL(c.ExplorerURL, "http", "https"); err != nil {
		return nil, invalid("invalid explorer URL: %v", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.findChain(c.ChainID); ok {
		return nil, fmt.Errorf("chain id %d is used by %q: %w", c.ChainID, existing.Name, ErrChainExists)
	}

	custom := append(append([]model.Chain{}, w.custom...), c)
	if err := w.store.PutJSON(storage.KeyCustomChains, custom); err != nil {
		return nil, err
	}
	w.custom = custom

	// a new network starts with only its native token
	if err := w.store.PutJSON(storage.TokensKey(c.ChainID), []model.Token{nativeToken(c)}); err != nil {
		return nil, err
	}
	if err := w.selectChainLocked(c); err != nil {
		return nil, err
	}

	w.log.WithFields(logrus.Fields{"chainId": c.ChainID, "name": c.Name}).Info("custom chain added")
	return &c, nil
}

// RemoveChain deletes a custom chain. If it was selected the default chain is selected.
func (w *Wallet) RemoveChain(chainID int64) error {
	for _, d := range DefaultChains() {
		if d.ChainID == chainID {
			return invalid("built-in chain %q cannot be removed", d.Name)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	idx := -1
	for i, c := range w.custom {
		if c.ChainID == chainID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("chain %d: %w", chainID, ErrChainNotFound)
	}

	removed := w.custom[idx]
	custom := append(append([]model.Chain{}, w.custom[:idx]...), w.custom[idx+1:]...)
	if err := w.store.PutJSON(storage.KeyCustomChains, custom); err != nil {
		return err
	}
	if err := w.store.Delete(storage.TokensKey(chainID)); err != nil {
		return err
	}
	w.custom = custom
	w.dropBackend(removed.RPCURL)

	if w.chain.ChainID == chainID {
		def, ok := w.findChain(w.opts.DefaultChainID)
		if !ok {
			def = DefaultChains()[0]
		}
		if err := w.selectChainLocked(def); err != nil {
			return err
		}
	}

	w.log.WithField("chainId", chainID).Info("custom chain removed")
	return nil
}

// selectChainLocked persists the selection; w.mu must be held
func (w *Wallet) selectChainLocked(chain model.Chain) error {
	tokens, err := w.loadTokens(chain)
	if err != nil {
		return err
	}
	if err := w.store.PutJSON(storage.KeyChain, chain); err != nil {
		return err
	}
	w.chain = chain
	w.tokens = tokens
	return nil
}

// findChain looks a chain up among defaults and custom chains; w.mu must be held
func (w *Wallet) findChain(chainID int64) (model.Chain, bool) {
	for _, c := range DefaultChains() {
		if c.ChainID == chainID {
			return c, true
		}
	}
	for _, c := range w.custom {
		if c.ChainID == chainID {
			return c, true
		}
	}
	return model.Chain{}, false
}

func checkURL(raw string, schemes ...string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			return nil
		}
	}
	return fmt.Errorf("unsupported scheme %q", u.Scheme)
}

// explorerTxURL links a transaction hash on the chain's explorer
func explorerTxURL(chain model.Chain, hash string) string {
	if chain.ExplorerURL == "" {
		return ""
	}
	return strings.TrimRight(chain.ExplorerURL, "/") + "/tx/" + hash
}

func marshal(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return raw, nil
}
