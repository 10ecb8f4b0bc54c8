package model

// AssetBalance is one line of the balance overview
type AssetBalance struct {
	Symbol   string `json:"symbol"`
	Address  string `json:"address,omitempty"`
	Decimals uint8  `json:"decimals"`
	Raw      string `json:"raw"`     // base units
	Amount   string `json:"amount"`  // full precision decimal
	Display  string `json:"display"` // rounded to 4 decimals, "0.0000" on failure
	Error    string `json:"error,omitempty"`
}

// BalanceResponse represents response for GET /balance
type BalanceResponse struct {
	Address    string         `json:"address"`
	ChainID    int64          `json:"chainId"`
	Native     AssetBalance   `json:"native"`
	Tokens     []AssetBalance `json:"tokens"`
	FiatValue  string         `json:"fiatValue,omitempty"` // native balance * price
	FiatRate   string         `json:"fiatRate,omitempty"`
	FiatSymbol string         `json:"fiatCurrency,omitempty"`
}
