package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AlexZinkM/evm-wallet/evm"
	"github.com/AlexZinkM/evm-wallet/internal/client/clienttest"
	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic  = "test test test test test test test test test test test junk"
	testAddress   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testRecipient = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	testPassword  = "secret"
)

func newTestHandler(t *testing.T) (*WalletHandler, *clienttest.Backend) {
	t.Helper()

	store, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	backend := clienttest.New()
	logger, _ := test.NewNullLogger()
	wallet, err := evm.New(evm.Options{
		Store:          store,
		Dial:           backend.Dialer(),
		ScryptN:        1 << 10,
		ReceiptTimeout: time.Second,
		Logger:         logrus.NewEntry(logger),
	})
	require.NoError(t, err)
	t.Cleanup(wallet.Close)

	h, err := NewWalletHandler(wallet, logrus.NewEntry(logger))
	require.NoError(t, err)
	return h, backend
}

func do(t *testing.T, fn http.HandlerFunc, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func importWallet(t *testing.T, h *WalletHandler) {
	t.Helper()
	rec := do(t, h.Import, http.MethodPost, "/wallet/import", model.ImportRequest{
		Mnemonic: testMnemonic, Password: testPassword, ConfirmPassword: testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name   string
		fn     http.HandlerFunc
		method string
	}{
		{"create", h.Create, http.MethodGet},
		{"status", h.Status, http.MethodPost},
		{"chains", h.Chains, http.MethodDelete},
		{"tokens", h.Tokens, http.MethodPut},
		{"send", h.Send, http.MethodGet},
		{"transactions", h.TransactionHistory, http.MethodPost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, tt.fn, tt.method, "/", nil)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("Allow"))
		})
	}
}

func TestCreateAndStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Status, http.MethodGet, "/wallet/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[model.StatusResponse](t, rec)
	assert.False(t, status.Exists)

	rec = do(t, h.Create, http.MethodPost, "/wallet/create", model.CreateRequest{Password: "pw", ConfirmPassword: "other"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.CodeValidation, decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Create, http.MethodPost, "/wallet/create", model.CreateRequest{Password: "pw", ConfirmPassword: "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[model.CreateResponse](t, rec)
	assert.NotEmpty(t, created.Mnemonic)

	rec = do(t, h.Create, http.MethodPost, "/wallet/create", model.CreateRequest{Password: "pw", ConfirmPassword: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, model.CodeWalletExists, decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Status, http.MethodGet, "/wallet/status", nil)
	status = decode[model.StatusResponse](t, rec)
	assert.True(t, status.Exists)
	assert.True(t, status.Unlocked)
	assert.Equal(t, created.Address, status.CurrentAddress)
}

func TestUnlockFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Unlock, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: testPassword})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, model.CodeWalletNotFound, decode[model.ErrorResponse](t, rec).Code)

	importWallet(t, h)
	rec = do(t, h.Lock, http.MethodPost, "/wallet/lock", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Receive, http.MethodGet, "/wallet/receive", nil)
	assert.Equal(t, http.StatusLocked, rec.Code)
	assert.Equal(t, model.CodeWalletLocked, decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Unlock, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h.Unlock, http.MethodPost, "/wallet/unlock", model.PasswordRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testAddress, decode[model.AddressResponse](t, rec).Address)

	rec = do(t, h.Receive, http.MethodGet, "/wallet/receive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[model.ReceiveResponse](t, rec).QR)
}

func TestAddresses(t *testing.T) {
	h, _ := newTestHandler(t)
	importWallet(t, h)

	rec := do(t, h.DeriveAddress, http.MethodPost, "/wallet/addresses", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	index := uint32(1)
	rec = do(t, h.DeriveAddress, http.MethodPost, "/wallet/addresses", model.DeriveRequest{Index: &index})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.AddressResponse](t, rec).Addresses, 2)

	rec = do(t, h.SelectAddress, http.MethodPost, "/wallet/addresses/select", model.SelectAddressRequest{Address: testAddress})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testAddress, decode[model.AddressResponse](t, rec).Address)

	rec = do(t, h.SelectAddress, http.MethodPost, "/wallet/addresses/select", model.SelectAddressRequest{Address: testRecipient})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportChangePasswordRemove(t *testing.T) {
	h, _ := newTestHandler(t)
	importWallet(t, h)

	rec := do(t, h.Export, http.MethodPost, "/wallet/export", model.PasswordRequest{Password: testPassword})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, testMnemonic, decode[model.MnemonicResponse](t, rec).Mnemonic)

	rec = do(t, h.ChangePassword, http.MethodPost, "/wallet/password", model.ChangePasswordRequest{
		OldPassword: testPassword, NewPassword: "next", ConfirmPassword: "next",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h.Remove, http.MethodPost, "/wallet/remove", model.PasswordRequest{Password: testPassword})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h.Remove, http.MethodPost, "/wallet/remove", model.PasswordRequest{Password: "next"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.MessageResponse](t, rec).Success)
}

func TestMnemonicPreview(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h.Mnemonic, http.MethodGet, "/wallet/mnemonic", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, evm.ValidateMnemonic(decode[model.MnemonicResponse](t, rec).Mnemonic))

	// preview never creates a wallet
	status := decode[model.StatusResponse](t, do(t, h.Status, http.MethodGet, "/wallet/status", nil))
	assert.False(t, status.Exists)
}

func TestChainsEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Chains, http.MethodGet, "/chains", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.ChainsResponse](t, rec).Chains, 4)

	rec = do(t, h.Chains, http.MethodPost, "/chains", model.Chain{Name: "Devnet"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[model.ErrorResponse](t, rec).Error, "All fields are required")

	devnet := model.Chain{Name: "Devnet", ChainID: 31337, RPCURL: "http://127.0.0.1:8545", Ticker: "DEV", ExplorerURL: "http://127.0.0.1:4000"}
	rec = do(t, h.Chains, http.MethodPost, "/chains", devnet)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h.Chains, http.MethodPost, "/chains", devnet)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h.SelectChain, http.MethodPost, "/chains/select", model.SelectChainRequest{ChainID: 56})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BNB", decode[model.Chain](t, rec).Ticker)

	rec = do(t, h.SelectChain, http.MethodPost, "/chains/select", model.SelectChainRequest{ChainID: 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h.RemoveChain, http.MethodPost, "/chains/remove", model.SelectChainRequest{ChainID: 56})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.RemoveChain, http.MethodPost, "/chains/remove", model.SelectChainRequest{ChainID: 31337})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTokensEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	token := model.AddTokenRequest{Name: "Tether", Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"}
	rec := do(t, h.Tokens, http.MethodPost, "/tokens", token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h.Tokens, http.MethodPost, "/tokens", token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h.Tokens, http.MethodGet, "/tokens", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[model.TokensResponse](t, rec).Tokens, 2)

	rec = do(t, h.RemoveToken, http.MethodPost, "/tokens/remove", model.RemoveTokenRequest{Symbol: "DLY"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h.RemoveToken, http.MethodPost, "/tokens/remove", model.RemoveTokenRequest{Symbol: "USDT"})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestBalanceAndSend(t *testing.T) {
	h, backend := newTestHandler(t)
	importWallet(t, h)
	backend.Balances[common.HexToAddress(testAddress)] = new(big.Int).Mul(big.NewInt(3), big.NewInt(1e18))

	rec := do(t, h.Balance, http.MethodGet, "/balance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3.0000", decode[model.BalanceResponse](t, rec).Native.Display)

	rec = do(t, h.Max, http.MethodPost, "/send/max", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.999979", decode[model.MaxResponse](t, rec).Amount)

	rec = do(t, h.Estimate, http.MethodPost, "/send/estimate", model.EstimateRequest{ToAddress: testRecipient, Amount: "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.EstimateResponse](t, rec).Estimated)

	rec = do(t, h.Send, http.MethodPost, "/send", model.SendRequest{ToAddress: testRecipient, Amount: "5"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.CodeInsufficientBalance, decode[model.ErrorResponse](t, rec).Code)

	rec = do(t, h.Send, http.MethodPost, "/send", model.SendRequest{ToAddress: testRecipient, Amount: "1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sent := decode[model.SendResponse](t, rec)
	assert.Equal(t, "success", sent.Status)

	rec = do(t, h.TransactionHistory, http.MethodGet, "/transactions?chainId=824&status=success", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[model.HistoryResponse](t, rec)
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, sent.TxHash, history.Transactions[0].Hash)

	rec = do(t, h.TransactionHistory, http.MethodGet, "/transactions?chainId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[model.HistoryResponse](t, rec).Transactions)
}

func TestSendRPCError(t *testing.T) {
	h, backend := newTestHandler(t)
	importWallet(t, h)
	backend.Balances[common.HexToAddress(testAddress)] = big.NewInt(1e18)
	backend.SendErr = errors.New("txpool is full")

	rec := do(t, h.Send, http.MethodPost, "/send", model.SendRequest{ToAddress: testRecipient, Amount: "0.1"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, model.CodeRPC, decode[model.ErrorResponse](t, rec).Code)
}

func TestTransactionHistoryQuery(t *testing.T) {
	h, _ := newTestHandler(t)
	importWallet(t, h)

	tests := []struct {
		query string
		code  int
	}{
		{"", http.StatusOK},
		{"?since=2026-01-01&until=2026-01-31", http.StatusOK},
		{"?since=2026-01-01T10:00:00Z", http.StatusOK},
		{"?since=yesterday", http.StatusBadRequest},
		{"?chainId=abc", http.StatusBadRequest},
		{"?status=lost", http.StatusBadRequest},
		{"?since=2026-02-01&until=2026-01-01", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h.TransactionHistory, http.MethodGet, "/transactions"+tt.query, nil)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestInvalidBody(t *testing.T) {
	h, _ := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/wallet/unlock", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.Unlock(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequiredFields(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		fn   http.HandlerFunc
		path string
	}{
		{"select chain", h.SelectChain, "/chains/select"},
		{"remove chain", h.RemoveChain, "/chains/remove"},
		{"remove token", h.RemoveToken, "/tokens/remove"},
		{"derive address", h.DeriveAddress, "/wallet/addresses"},
		{"select address", h.SelectAddress, "/wallet/addresses/select"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, tt.fn, http.MethodPost, tt.path, map[string]any{})
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			resp := decode[model.ErrorResponse](t, rec)
			assert.Equal(t, model.CodeValidation, resp.Code)
			assert.Contains(t, resp.Error, "All fields are required")
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&evm.ValidationError{Message: "x"}, http.StatusBadRequest, model.CodeValidation},
		{fmt.Errorf("wrap: %w", evm.ErrInvalidAddress), http.StatusBadRequest, model.CodeValidation},
		{evm.ErrInsufficientBalance, http.StatusBadRequest, model.CodeInsufficientBalance},
		{evm.ErrIncorrectPassword, http.StatusUnauthorized, model.CodeIncorrectPassword},
		{evm.ErrWalletNotFound, http.StatusNotFound, model.CodeWalletNotFound},
		{evm.ErrTokenNotFound, http.StatusNotFound, model.CodeNotFound},
		{evm.ErrWalletExists, http.StatusConflict, model.CodeWalletExists},
		{evm.ErrChainExists, http.StatusConflict, model.CodeConflict},
		{evm.ErrLocked, http.StatusLocked, model.CodeWalletLocked},
		{evm.ErrCooldown, http.StatusTooManyRequests, model.CodeCooldown},
		{evm.ErrTransactionFailed, http.StatusBadGateway, model.CodeTransactionFailed},
		{&evm.RPCError{Op: "eth_call", Err: errors.New("timeout")}, http.StatusBadGateway, model.CodeRPC},
		{errors.New("disk full"), http.StatusInternalServerError, model.CodeInternal},
	}
	for _, tt := range tests {
		status, code := classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
