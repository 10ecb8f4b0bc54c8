package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/AlexZinkM/evm-wallet/internal/client"
	"github.com/AlexZinkM/evm-wallet/internal/common"
	"github.com/AlexZinkM/evm-wallet/internal/model"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/sirupsen/logrus"
)

const (
	DefaultGasLimit     = 21000
	DefaultGasPriceGwei = "1"
)

// transfer is a validated send or estimate request
type transfer struct {
	chain  model.Chain
	token  model.Token
	from   gethcommon.Address
	to     gethcommon.Address
	amount *big.Int
	dec    uint8
}

// callMsg is what the transfer executes on chain
func (t *transfer) callMsg() (ethereum.CallMsg, error) {
	if t.token.IsNative() {
		return ethereum.CallMsg{From: t.from, To: &t.to, Value: t.amount}, nil
	}
	data, err := client.TransferData(t.to, t.amount)
	if err != nil {
		return ethereum.CallMsg{}, err
	}
	contract := gethcommon.HexToAddress(t.token.Address)
	return ethereum.CallMsg{From: t.from, To: &contract, Data: data}, nil
}

// prepare validates the recipient, resolves the token and parses the amount
func (w *Wallet) prepare(ctx context.Context, b client.Backend, toAddress, amount, token string) (*transfer, error) {
	from, _, err := w.currentAccount()
	if err != nil {
		return nil, err
	}
	toAddress = strings.TrimSpace(toAddress)
	if !gethcommon.IsHexAddress(toAddress) {
		return nil, fmt.Errorf("recipient %q: %w", toAddress, ErrInvalidAddress)
	}

	w.mu.RLock()
	chain := w.chain
	tok, err := findToken(w.tokens, token)
	w.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	dec, err := tokenDecimals(ctx, b, tok)
	if err != nil {
		return nil, err
	}
	value, err := common.ParseUnits(amount, dec)
	if err != nil {
		return nil, invalid("invalid amount: %v", err)
	}
	if value.Sign() <= 0 {
		return nil, invalid("amount must be greater than zero")
	}

	return &transfer{
		chain:  chain,
		token:  tok,
		from:   gethcommon.HexToAddress(from),
		to:     gethcommon.HexToAddress(toAddress),
		amount: value,
		dec:    dec,
	}, nil
}

// EstimateGas estimates the gas limit of a transfer. RPC failures fall back to
// 21000 and are reported in the response rather than returned.
func (w *Wallet) EstimateGas(ctx context.Context, req model.EstimateRequest) (*model.EstimateResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	chain := w.CurrentChain()
	b, err := w.backend(ctx, chain)
	if err != nil {
		return &model.EstimateResponse{GasLimit: DefaultGasLimit, GasPriceGwei: DefaultGasPriceGwei, Error: err.Error()}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, w.opts.RPCTimeout)
	defer cancel()

	t, err := w.prepare(ctx, b, req.ToAddress, req.Amount, req.Token)
	if err != nil {
		var rpc *RPCError
		if !errors.As(err, &rpc) {
			return nil, err
		}
		return &model.EstimateResponse{GasLimit: DefaultGasLimit, GasPriceGwei: DefaultGasPriceGwei, Error: err.Error()}, nil
	}

	resp := &model.EstimateResponse{GasLimit: DefaultGasLimit, GasPriceGwei: DefaultGasPriceGwei}
	if price, err := b.SuggestGasPrice(ctx); err == nil {
		resp.GasPriceGwei = common.WeiToGwei(price)
	}

	gas, err := w.estimate(ctx, b, t)
	if err != nil {
		resp.Error = err.Error()
		return resp, nil
	}
	resp.GasLimit = gas
	resp.Estimated = true
	return resp, nil
}

func (w *Wallet) estimate(ctx context.Context, b client.Backend, t *transfer) (uint64, error) {
	msg, err := t.callMsg()
	if err != nil {
		return 0, err
	}
	gas, err := b.EstimateGas(ctx, msg)
	if err != nil {
		w.log.WithFields(logrus.Fields{"symbol": t.token.Symbol, "to": t.to.Hex()}).WithError(err).Warn("gas estimation failed, using default")
		return 0, rpcErr("eth_estimateGas", err)
	}
	return gas, nil
}

// MaxSendable returns the native balance minus the fee for gasLimit at gasPriceGwei
func (w *Wallet) MaxSendable(ctx context.Context, req model.MaxRequest) (*model.MaxResponse, error) {
	address, _, err := w.currentAccount()
	if err != nil {
		return nil, err
	}
	fee, err := gasFee(req.GasLimit, req.GasPriceGwei)
	if err != nil {
		return nil, err
	}

	chain := w.CurrentChain()
	b, err := w.backend(ctx, chain)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, w.opts.RPCTimeout)
	defer cancel()

	bal, err := b.BalanceAt(ctx, gethcommon.HexToAddress(address), nil)
	if err != nil {
		return nil, rpcErr("eth_getBalance", err)
	}

	sendable := new(big.Int).Sub(bal, fee)
	if sendable.Sign() < 0 {
		return nil, fmt.Errorf("balance too low to cover gas: %w", ErrInsufficientBalance)
	}
	return &model.MaxResponse{
		Amount: common.FormatUnits(sendable, common.NativeDecimals),
		Fee:    common.FormatUnits(fee, common.NativeDecimals),
	}, nil
}

// Send signs and broadcasts a transfer from the current address, records it
// and waits for the receipt. A receipt timeout leaves the record pending.
func (w *Wallet) Send(ctx context.Context, req model.SendRequest) (*model.SendResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	if _, _, err := w.currentAccount(); err != nil {
		return nil, err
	}
	gasPrice, err := gasPriceWei(req.GasPriceGwei)
	if err != nil {
		return nil, err
	}

	w.sendMu.Lock()
	signed, t, b, err := w.broadcast(ctx, req, gasPrice)
	w.sendMu.Unlock()
	if err != nil {
		return nil, err
	}

	hash := signed.Hash().Hex()
	resp := &model.SendResponse{
		TxHash:      hash,
		Status:      string(model.TransactionStatusPending),
		ExplorerURL: explorerTxURL(t.chain, hash),
	}

	record := model.Transaction{
		Hash:        hash,
		ChainID:     t.chain.ChainID,
		From:        t.from.Hex(),
		To:          t.to.Hex(),
		Amount:      common.FormatUnits(t.amount, t.dec),
		Symbol:      t.token.Symbol,
		Status:      model.TransactionStatusPending,
		Timestamp:   w.opts.Now().UTC(),
		ExplorerURL: resp.ExplorerURL,
	}
	if err := w.appendHistory(record); err != nil {
		w.log.WithField("hash", hash).WithError(err).Error("failed to record transaction")
	}

	log := w.log.WithFields(logrus.Fields{"hash": hash, "chainId": t.chain.ChainID, "symbol": t.token.Symbol})
	log.Info("transaction broadcast")

	waitCtx, cancel := context.WithTimeout(ctx, w.opts.ReceiptTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, b, signed)
	if err != nil {
		log.WithError(err).Warn("receipt not available, transaction stays pending")
		return resp, nil
	}

	status := model.TransactionStatusSuccess
	if receipt.Status != types.ReceiptStatusSuccessful {
		status = model.TransactionStatusFailed
	}
	if err := w.updateHistoryStatus(hash, status); err != nil {
		log.WithError(err).Error("failed to update transaction status")
	}
	resp.Status = string(status)

	if status == model.TransactionStatusFailed {
		log.Warn("transaction failed")
		return resp, fmt.Errorf("%s: %w", hash, ErrTransactionFailed)
	}
	log.Info("transaction confirmed")
	return resp, nil
}

// broadcast checks cooldown and balances, then signs and sends; w.sendMu must be held
func (w *Wallet) broadcast(ctx context.Context, req model.SendRequest, gasPrice *big.Int) (*types.Transaction, *transfer, client.Backend, error) {
	if wait := w.cooldownRemaining(); wait > 0 {
		return nil, nil, nil, fmt.Errorf("%w, please wait %v", ErrCooldown, wait.Round(time.Second))
	}

	chain := w.CurrentChain()
	b, err := w.backend(ctx, chain)
	if err != nil {
		return nil, nil, nil, err
	}

	rpcCtx, cancel := context.WithTimeout(ctx, w.opts.RPCTimeout)
	defer cancel()

	t, err := w.prepare(rpcCtx, b, req.ToAddress, req.Amount, req.Token)
	if err != nil {
		return nil, nil, nil, err
	}

	gasLimit := req.GasLimit
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
		if !t.token.IsNative() {
			if gas, err := w.estimate(rpcCtx, b, t); err == nil {
				gasLimit = gas
			}
		}
	}
	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(gasLimit))

	if err := w.checkFunds(rpcCtx, b, t, fee); err != nil {
		return nil, nil, nil, err
	}

	key, err := w.signingKey(t.from)
	if err != nil {
		return nil, nil, nil, err
	}
	defer zeroKey(key)

	nonce, err := b.PendingNonceAt(rpcCtx, t.from)
	if err != nil {
		return nil, nil, nil, rpcErr("eth_getTransactionCount", err)
	}

	msg, err := t.callMsg()
	if err != nil {
		return nil, nil, nil, err
	}
	value := msg.Value
	if value == nil {
		value = new(big.Int)
	}
	tx := types.NewTransaction(nonce, *msg.To, value, gasLimit, gasPrice, msg.Data)

	signed, err := types.SignTx(tx, types.NewEIP155Signer(big.NewInt(t.chain.ChainID)), key)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := b.SendTransaction(rpcCtx, signed); err != nil {
		return nil, nil, nil, rpcErr("eth_sendRawTransaction", err)
	}

	w.lastSend = w.opts.Now()
	return signed, t, b, nil
}

// checkFunds compares in base units: the asset must cover the amount and
// native must cover the fee (plus the amount for native sends)
func (w *Wallet) checkFunds(ctx context.Context, b client.Backend, t *transfer, fee *big.Int) error {
	native, err := b.BalanceAt(ctx, t.from, nil)
	if err != nil {
		return rpcErr("eth_getBalance", err)
	}

	if t.token.IsNative() {
		if t.amount.Cmp(native) > 0 {
			return fmt.Errorf("amount exceeds balance: %w", ErrInsufficientBalance)
		}
		if new(big.Int).Add(t.amount, fee).Cmp(native) > 0 {
			return fmt.Errorf("balance too low to cover gas: %w", ErrInsufficientBalance)
		}
		return nil
	}

	bal, err := client.TokenBalance(ctx, b, gethcommon.HexToAddress(t.token.Address), t.from)
	if err != nil {
		return rpcErr("balanceOf", err)
	}
	if t.amount.Cmp(bal) > 0 {
		return fmt.Errorf("amount exceeds balance: %w", ErrInsufficientBalance)
	}
	if fee.Cmp(native) > 0 {
		return fmt.Errorf("balance too low to cover gas: %w", ErrInsufficientBalance)
	}
	return nil
}

// signingKey derives the key of the current address and checks it matches from
func (w *Wallet) signingKey(from gethcommon.Address) (*ecdsa.PrivateKey, error) {
	w.mu.RLock()
	mnemonic := w.mnemonic
	i, ok := indexOf(w.addresses, from.Hex())
	var index uint32
	if ok {
		index = w.addresses[i].Index
	}
	w.mu.RUnlock()

	if mnemonic == "" {
		return nil, ErrLocked
	}
	if !ok {
		return nil, ErrAddressNotFound
	}

	key, address, err := DeriveKey(mnemonic, index)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(address, from.Hex()) {
		zeroKey(key)
		return nil, errors.New("derived key does not match the current address")
	}
	return key, nil
}

func (w *Wallet) cooldownRemaining() time.Duration {
	if w.opts.SendCooldown <= 0 || w.lastSend.IsZero() {
		return 0
	}
	return w.opts.SendCooldown - w.opts.Now().Sub(w.lastSend)
}

func gasPriceWei(gwei string) (*big.Int, error) {
	if strings.TrimSpace(gwei) == "" {
		gwei = DefaultGasPriceGwei
	}
	wei, err := common.GweiToWei(gwei)
	if err != nil {
		return nil, invalid("invalid gas price: %v", err)
	}
	if wei.Sign() <= 0 {
		return nil, invalid("gas price must be greater than zero")
	}
	return wei, nil
}

func gasFee(gasLimit uint64, gasPriceGwei string) (*big.Int, error) {
	if gasLimit == 0 {
		gasLimit = DefaultGasLimit
	}
	price, err := gasPriceWei(gasPriceGwei)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Mul(price, new(big.Int).SetUint64(gasLimit)), nil
}

func zeroKey(key *ecdsa.PrivateKey) {
	if key != nil && key.D != nil {
		key.D.SetInt64(0)
	}
}
