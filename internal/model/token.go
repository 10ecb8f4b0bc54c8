package model

// Token is an asset tracked on a chain.
// Address is empty for the native asset.
type Token struct {
	Name     string `json:"name,omitempty"`
	Symbol   string `json:"symbol"`
	Address  string `json:"address,omitempty"`
	Decimals *uint8 `json:"decimals,omitempty"`
}

// IsNative reports whether the token is the chain's base currency
func (t Token) IsNative() bool {
	return t.Address == ""
}

// AddTokenRequest represents request for POST /tokens
type AddTokenRequest struct {
	Name     string `json:"name" validate:"required"`
	Symbol   string `json:"symbol" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Decimals *uint8 `json:"decimals"`
}

// RemoveTokenRequest represents request for POST /tokens/remove
type RemoveTokenRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

// TokensResponse represents response for GET /tokens
type TokensResponse struct {
	ChainID int64   `json:"chainId"`
	Tokens  []Token `json:"tokens"`
}
