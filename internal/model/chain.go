package model

// Chain is an EVM network the wallet can talk to
type Chain struct {
	Name        string `json:"name" validate:"required"`
	ChainID     int64  `json:"chainId" validate:"required,gt=0"`
	RPCURL      string `json:"rpcUrl" validate:"required"`
	Ticker      string `json:"ticker" validate:"required"`
	ExplorerURL string `json:"explorerUrl" validate:"required"`
	LogoURL     string `json:"logoUrl,omitempty"`
	PriceID     string `json:"priceId,omitempty"` // CoinGecko coin id of the native asset
	Custom      bool   `json:"custom"`
}

// SelectChainRequest represents request for POST /chains/select and /chains/remove
type SelectChainRequest struct {
	ChainID int64 `json:"chainId" validate:"required,gt=0"`
}

// ChainsResponse represents response for GET /chains
type ChainsResponse struct {
	Current int64   `json:"current"`
	Chains  []Chain `json:"chains"`
}
