package model

// NativeSymbol selects the chain's native asset in send requests
const NativeSymbol = "native"

// SendRequest represents request for POST /send
type SendRequest struct {
	ToAddress    string `json:"toAddress" validate:"required"`
	Amount       string `json:"amount" validate:"required"`
	Token        string `json:"token"`        // token symbol, empty or "native" for the base asset
	GasLimit     uint64 `json:"gasLimit"`     // 0 means 21000
	GasPriceGwei string `json:"gasPriceGwei"` // empty means 1 gwei
}

// SendResponse represents response for POST /send
type SendResponse struct {
	TxHash      string `json:"txHash"`
	Status      string `json:"status"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// EstimateRequest represents request for POST /send/estimate
type EstimateRequest struct {
	ToAddress string `json:"toAddress" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Token     string `json:"token"`
}

// EstimateResponse represents response for POST /send/estimate
type EstimateResponse struct {
	GasLimit     uint64 `json:"gasLimit"`
	GasPriceGwei string `json:"gasPriceGwei"`
	Estimated    bool   `json:"estimated"` // false when the default was used
	Error        string `json:"error,omitempty"`
}

// MaxRequest represents request for POST /send/max
type MaxRequest struct {
	GasLimit     uint64 `json:"gasLimit"`
	GasPriceGwei string `json:"gasPriceGwei"`
}

// MaxResponse represents response for POST /send/max
type MaxResponse struct {
	Amount string `json:"amount"`
	Fee    string `json:"fee"`
}
