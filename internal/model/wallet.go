package model

// VaultFile is the encrypted envelope persisted under the wallet_vault key
type VaultFile struct {
	Version    int    `json:"version"`
	ScryptN    int    `json:"scryptN"`
	ScryptR    int    `json:"scryptR"`
	ScryptP    int    `json:"scryptP"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// VaultData represents decrypted wallet data
type VaultData struct {
	Mnemonic  string `json:"mnemonic"`
	CreatedAt string `json:"createdAt"`
}

// DerivedAddress is an address together with its derivation index
type DerivedAddress struct {
	Index   uint32 `json:"index"`
	Address string `json:"address"`
}

// CreateRequest represents request for POST /wallet/create
type CreateRequest struct {
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// CreateResponse represents response for POST /wallet/create.
// Mnemonic is returned exactly once, the user must back it up.
type CreateResponse struct {
	Mnemonic string `json:"mnemonic"`
	Address  string `json:"address"`
}

// ImportRequest represents request for POST /wallet/import
type ImportRequest struct {
	Mnemonic        string `json:"mnemonic" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// PasswordRequest is used by unlock, export and remove
type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents request for POST /wallet/password
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// DeriveRequest represents request for POST /wallet/addresses
type DeriveRequest struct {
	Index *uint32 `json:"index" validate:"required"`
}

// SelectAddressRequest represents request for POST /wallet/addresses/select
type SelectAddressRequest struct {
	Address string `json:"address" validate:"required"`
}

// AddressResponse is returned after address derivation or selection
type AddressResponse struct {
	Address   string           `json:"address"`
	Addresses []DerivedAddress `json:"addresses"`
}

// MnemonicResponse carries a mnemonic phrase (export or fresh preview)
type MnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
}

// StatusResponse represents response for GET /wallet/status
type StatusResponse struct {
	Exists         bool             `json:"exists"`
	Unlocked       bool             `json:"unlocked"`
	CurrentAddress string           `json:"currentAddress,omitempty"`
	Addresses      []DerivedAddress `json:"addresses"`
	Chain          Chain            `json:"chain"`
}

// ReceiveResponse represents response for GET /wallet/receive
type ReceiveResponse struct {
	Address string `json:"address"`
	QR      string `json:"QR"` // base64 PNG
}

// MessageResponse is a generic success body
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
