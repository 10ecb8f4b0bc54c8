package evm

import (
	"strings"
	"testing"

	"github.com/AlexZinkM/evm-wallet/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenAddress = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

func TestAddToken(t *testing.T) {
	f := newFixture(t)

	token, err := f.wallet.AddToken(model.AddTokenRequest{
		Name:    "Tether",
		Symbol:  "USDT",
		Address: strings.ToLower(testTokenAddress),
	})
	require.NoError(t, err)
	assert.Equal(t, testTokenAddress, token.Address)
	assert.Nil(t, token.Decimals)

	tokens := f.wallet.Tokens().Tokens
	require.Len(t, tokens, 2)
	assert.True(t, tokens[0].IsNative())
	assert.Equal(t, "USDT", tokens[1].Symbol)

	w := f.reopen(t)
	assert.Len(t, w.Tokens().Tokens, 2)
}

func TestAddTokenErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.AddToken(model.AddTokenRequest{Name: "Tether", Symbol: "USDT", Address: testTokenAddress})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     model.AddTokenRequest
		wantErr error
	}{
		{name: "missing fields", req: model.AddTokenRequest{Symbol: "X"}},
		{name: "bad address", req: model.AddTokenRequest{Name: "X", Symbol: "X", Address: "0x123"}, wantErr: ErrInvalidAddress},
		{name: "reserved symbol", req: model.AddTokenRequest{Name: "X", Symbol: "Native", Address: "0x0000000000000000000000000000000000000001"}},
		{name: "duplicate symbol", req: model.AddTokenRequest{Name: "X", Symbol: "usdt", Address: "0x0000000000000000000000000000000000000001"}, wantErr: ErrTokenExists},
		{name: "duplicate address", req: model.AddTokenRequest{Name: "X", Symbol: "X", Address: strings.ToLower(testTokenAddress)}, wantErr: ErrTokenExists},
		{name: "native symbol", req: model.AddTokenRequest{Name: "X", Symbol: "DLY", Address: "0x0000000000000000000000000000000000000001"}, wantErr: ErrTokenExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.wallet.AddToken(tt.req)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.True(t, IsValidationError(err), err)
			}
		})
	}
	assert.Len(t, f.wallet.Tokens().Tokens, 2)
}

func TestRemoveToken(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.AddToken(model.AddTokenRequest{Name: "Tether", Symbol: "USDT", Address: testTokenAddress})
	require.NoError(t, err)

	assert.True(t, IsValidationError(f.wallet.RemoveToken("DLY")))
	assert.ErrorIs(t, f.wallet.RemoveToken("NOPE"), ErrTokenNotFound)

	require.NoError(t, f.wallet.RemoveToken("usdt"))
	assert.Len(t, f.wallet.Tokens().Tokens, 1)
}

func TestTokensArePerChain(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.AddToken(model.AddTokenRequest{Name: "Tether", Symbol: "USDT", Address: testTokenAddress})
	require.NoError(t, err)

	_, err = f.wallet.SelectChain(56)
	require.NoError(t, err)
	tokens := f.wallet.Tokens()
	assert.Equal(t, int64(56), tokens.ChainID)
	require.Len(t, tokens.Tokens, 1)
	assert.Equal(t, "BNB", tokens.Tokens[0].Symbol)

	_, err = f.wallet.SelectChain(824)
	require.NoError(t, err)
	assert.Len(t, f.wallet.Tokens().Tokens, 2)
}

func TestFindToken(t *testing.T) {
	dec := uint8(6)
	tokens := []model.Token{
		{Symbol: "ETH"},
		{Symbol: "USDC", Address: "0x0000000000000000000000000000000000000002", Decimals: &dec},
	}

	for _, sel := range []string{"", "native", "NATIVE", " "} {
		got, err := findToken(tokens, sel)
		require.NoError(t, err)
		assert.Equal(t, "ETH", got.Symbol)
	}

	got, err := findToken(tokens, "usdc")
	require.NoError(t, err)
	assert.Equal(t, "USDC", got.Symbol)

	_, err = findToken(tokens, "DAI")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
