package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/AlexZinkM/evm-wallet/internal/client"
	"github.com/AlexZinkM/evm-wallet/internal/common"
	"github.com/AlexZinkM/evm-wallet/internal/model"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const balanceWorkers = 4

// Balances returns native and token balances of the current address on the current chain.
// A failed asset shows "0.0000" with its error, it never fails the whole call.
func (w *Wallet) Balances(ctx context.Context) (*model.BalanceResponse, error) {
	address, _, err := w.currentAccount()
	if err != nil {
		return nil, err
	}

	w.mu.RLock()
	chain := w.chain
	tokens := append([]model.Token{}, w.tokens...)
	w.mu.RUnlock()

	resp := &model.BalanceResponse{
		Address: address,
		ChainID: chain.ChainID,
		Tokens:  make([]model.AssetBalance, len(tokens)-1),
	}
	owner := gethcommon.HexToAddress(address)

	b, err := w.backend(ctx, chain)
	if err != nil {
		resp.Native = failedBalance(tokens[0], err)
		for i, t := range tokens[1:] {
			resp.Tokens[i] = failedBalance(t, err)
		}
		return resp, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.RPCTimeout)
	defer cancel()

	// each goroutine writes only its own slot, the group never returns an error
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(balanceWorkers)

	g.Go(func() error {
		bal, err := b.BalanceAt(gctx, owner, nil)
		if err != nil {
			resp.Native = failedBalance(tokens[0], rpcErr("eth_getBalance", err))
			return nil
		}
		resp.Native = assetBalance(tokens[0], common.NativeDecimals, bal)
		return nil
	})
	for i, t := range tokens[1:] {
		i, t := i, t // per-iteration copies (go.mod targets go 1.21 loop semantics)
		g.Go(func() error {
			resp.Tokens[i] = w.tokenBalance(gctx, b, t, owner)
			return nil
		})
	}
	_ = g.Wait()

	if w.opts.Prices != nil && chain.PriceID != "" && resp.Native.Error == "" {
		w.fillFiat(ctx, chain, resp)
	}
	return resp, nil
}

func (w *Wallet) tokenBalance(ctx context.Context, b client.Backend, t model.Token, owner gethcommon.Address) model.AssetBalance {
	contract := gethcommon.HexToAddress(t.Address)

	decimals, err := tokenDecimals(ctx, b, t)
	if err != nil {
		return failedBalance(t, err)
	}
	bal, err := client.TokenBalance(ctx, b, contract, owner)
	if err != nil {
		w.log.WithFields(logrus.Fields{"symbol": t.Symbol, "token": t.Address}).WithError(err).Warn("token balance failed")
		return failedBalance(t, rpcErr("balanceOf", err))
	}
	return assetBalance(t, decimals, bal)
}

// tokenDecimals prefers the stored value and falls back to decimals() on chain
func tokenDecimals(ctx context.Context, b client.Backend, t model.Token) (uint8, error) {
	if t.Decimals != nil {
		return *t.Decimals, nil
	}
	if t.IsNative() {
		return common.NativeDecimals, nil
	}
	dec, err := client.TokenDecimals(ctx, b, gethcommon.HexToAddress(t.Address))
	if err != nil {
		return 0, rpcErr("decimals", err)
	}
	return dec, nil
}

// fillFiat values the native balance; failures leave the fields empty
func (w *Wallet) fillFiat(ctx context.Context, chain model.Chain, resp *model.BalanceResponse) {
	rate, err := w.opts.Prices.Price(ctx, chain.PriceID, w.opts.PriceCurrency)
	if err != nil {
		w.log.WithField("priceId", chain.PriceID).WithError(err).Warn("price lookup failed")
		return
	}

	// float only for display, never for amounts that get signed
	amount, ok := new(big.Float).SetString(resp.Native.Amount)
	if !ok {
		return
	}
	price, ok := new(big.Float).SetString(rate)
	if !ok {
		return
	}
	resp.FiatRate = rate
	resp.FiatValue = new(big.Float).Mul(amount, price).Text('f', 2)
	resp.FiatSymbol = w.opts.PriceCurrency
}

func assetBalance(t model.Token, decimals uint8, raw *big.Int) model.AssetBalance {
	return model.AssetBalance{
		Symbol:   t.Symbol,
		Address:  t.Address,
		Decimals: decimals,
		Raw:      raw.String(),
		Amount:   common.FormatUnits(raw, decimals),
		Display:  common.FormatDisplay(raw, decimals),
	}
}

func failedBalance(t model.Token, err error) model.AssetBalance {
	ab := model.AssetBalance{
		Symbol:  t.Symbol,
		Address: t.Address,
		Raw:     "0",
		Amount:  "0.0",
		Display: "0.0000",
		Error:   err.Error(),
	}
	if t.Decimals != nil {
		ab.Decimals = *t.Decimals
	}
	return ab
}

// backend returns the cached RPC client for the chain, dialing on first use.
// Dials run outside backendsMu so a dead endpoint only stalls callers of that URL.
func (w *Wallet) backend(ctx context.Context, chain model.Chain) (client.Backend, error) {
	w.backendsMu.Lock()
	b, ok := w.backends[chain.RPCURL]
	w.backendsMu.Unlock()
	if ok {
		return b, nil
	}

	v, err, _ := w.dials.Do(chain.RPCURL, func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, w.opts.RPCTimeout)
		defer cancel()
		b, err := w.opts.Dial(ctx, chain.RPCURL)
		if err != nil {
			return nil, rpcErr(fmt.Sprintf("dial %s", chain.Name), err)
		}

		w.backendsMu.Lock()
		defer w.backendsMu.Unlock()
		if existing, ok := w.backends[chain.RPCURL]; ok {
			closeBackend(b)
			return existing, nil
		}
		w.backends[chain.RPCURL] = b
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(client.Backend), nil
}

// dropBackend closes the client for rpcURL unless a remaining chain still uses it; w.mu must be held
func (w *Wallet) dropBackend(rpcURL string) {
	for _, c := range append(DefaultChains(), w.custom...) {
		if c.RPCURL == rpcURL {
			return
		}
	}

	w.backendsMu.Lock()
	defer w.backendsMu.Unlock()
	if b, ok := w.backends[rpcURL]; ok {
		closeBackend(b)
		delete(w.backends, rpcURL)
	}
}

func closeBackend(b client.Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}
