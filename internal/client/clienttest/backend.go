// Package clienttest provides an in-memory client.Backend for tests.
package clienttest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/AlexZinkM/evm-wallet/internal/client"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend answers RPC calls from fixed state. The zero value is not usable, use New.
type Backend struct {
	mu sync.Mutex

	Balances      map[common.Address]*big.Int
	TokenBalances map[common.Address]map[common.Address]*big.Int // token -> owner -> balance
	TokenDecimals map[common.Address]uint8
	GasEstimate   uint64
	GasPrice      *big.Int
	Nonce         uint64
	ReceiptStatus uint64

	// Injected failures
	BalanceErr  error
	EstimateErr error
	SendErr     error
	NoReceipt   bool // receipts never become available

	Sent      []*types.Transaction
	Estimates []ethereum.CallMsg
	closed    int
}

// New returns a Backend with successful receipts and a 21000 gas estimate
func New() *Backend {
	return &Backend{
		Balances:      map[common.Address]*big.Int{},
		TokenBalances: map[common.Address]map[common.Address]*big.Int{},
		TokenDecimals: map[common.Address]uint8{},
		GasEstimate:   21000,
		GasPrice:      big.NewInt(1_000_000_000),
		ReceiptStatus: types.ReceiptStatusSuccessful,
	}
}

// SetTokenBalance sets the balance of owner on token
func (b *Backend) SetTokenBalance(token, owner common.Address, bal *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.TokenBalances[token] == nil {
		b.TokenBalances[token] = map[common.Address]*big.Int{}
	}
	b.TokenBalances[token][owner] = bal
}

// SentTransactions returns a copy of broadcast transactions
func (b *Backend) SentTransactions() []*types.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*types.Transaction(nil), b.Sent...)
}

// Close counts closes; the backend keeps answering afterwards
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
}

// Closed reports how many times Close was called
func (b *Backend) Closed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Dialer returns a client.Dialer that always yields b
func (b *Backend) Dialer() client.Dialer {
	return func(ctx context.Context, rpcURL string) (client.Backend, error) {
		return b, nil
	}
}

func (b *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.BalanceErr != nil {
		return nil, b.BalanceErr
	}
	if v, ok := b.Balances[account]; ok {
		return new(big.Int).Set(v), nil
	}
	return new(big.Int), nil
}

func (b *Backend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if msg.To == nil {
		return nil, errors.New("missing contract address")
	}
	parsed := client.ERC20ABI()
	if len(msg.Data) < 4 {
		return nil, errors.New("short call data")
	}
	method, err := parsed.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case "balanceOf":
		holders, ok := b.TokenBalances[*msg.To]
		if !ok {
			return nil, fmt.Errorf("execution reverted: no contract at %s", msg.To.Hex())
		}
		args, err := method.Inputs.Unpack(msg.Data[4:])
		if err != nil {
			return nil, err
		}
		owner := args[0].(common.Address)
		bal := holders[owner]
		if bal == nil {
			bal = new(big.Int)
		}
		return method.Outputs.Pack(bal)
	case "decimals":
		dec, ok := b.TokenDecimals[*msg.To]
		if !ok {
			return nil, fmt.Errorf("execution reverted: no decimals at %s", msg.To.Hex())
		}
		return method.Outputs.Pack(dec)
	}
	return nil, fmt.Errorf("unsupported method %s", method.Name)
}

func (b *Backend) EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Estimates = append(b.Estimates, msg)
	if b.EstimateErr != nil {
		return 0, b.EstimateErr
	}
	return b.GasEstimate, nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return new(big.Int).Set(b.GasPrice), nil
}

func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Nonce, nil
}

func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SendErr != nil {
		return b.SendErr
	}
	b.Sent = append(b.Sent, tx)
	b.Nonce++
	return nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.NoReceipt {
		return nil, ethereum.NotFound
	}
	for _, tx := range b.Sent {
		if bytes.Equal(tx.Hash().Bytes(), txHash.Bytes()) {
			return &types.Receipt{Status: b.ReceiptStatus, TxHash: txHash, BlockNumber: big.NewInt(1)}, nil
		}
	}
	return nil, ethereum.NotFound
}

func (b *Backend) CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error) {
	return nil, nil
}
