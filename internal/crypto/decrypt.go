package crypto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexZinkM/evm-wallet/internal/model"
)

// ErrInvalidPassword is returned when the envelope cannot be opened.
// Kept generic: a wrong password and a tampered ciphertext look the same.
var ErrInvalidPassword = errors.New("invalid password")

// DecryptVault opens an envelope produced by EncryptVault.
// password must be []byte for security (caller should zero it after use)
func DecryptVault(envelope, password []byte) (*model.VaultData, error) {
	if len(envelope) == 0 {
		return nil, errors.New("vault is empty")
	}

	var vault model.VaultFile
	if err := json.Unmarshal(envelope, &vault); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	if vault.Version != vaultVersion {
		return nil, fmt.Errorf("unsupported vault version: %d", vault.Version)
	}

	salt, err := base64.StdEncoding.DecodeString(vault.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(vault.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(vault.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	aesGCM, err := newGCM(password, salt, vault.ScryptN, vault.ScryptR, vault.ScryptP)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesGCM.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var data model.VaultData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault data: %w", err)
	}
	return &data, nil
}

// ReEncryptVault opens envelope with oldPassword and seals it again under newPassword.
func ReEncryptVault(envelope, oldPassword, newPassword []byte, scryptN int) ([]byte, error) {
	data, err := DecryptVault(envelope, oldPassword)
	if err != nil {
		return nil, err
	}
	return EncryptVault(data, newPassword, scryptN)
}
