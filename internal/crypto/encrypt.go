package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/AlexZinkM/evm-wallet/internal/model"

	"golang.org/x/crypto/scrypt"
)

const (
	// scrypt parameters for the local vault
	// N=2^18 (~256MB RAM, 0.5-2s) keeps brute force expensive while still
	// running on small machines. N is configurable (SCRYPT_N) and recorded
	// in the envelope, so vaults written with any N stay readable.
	DefaultScryptN = 1 << 18
	scryptR        = 8
	scryptP        = 1
	scryptKeyLen   = 32
	saltLen        = 32
	nonceLen       = 12

	vaultVersion = 1
)

// EncryptVault encrypts wallet data into a JSON envelope.
// password must be []byte for security (caller should zero it after use)
func EncryptVault(data *model.VaultData, password []byte, scryptN int) ([]byte, error) {
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	if scryptN == 0 {
		scryptN = DefaultScryptN
	}

	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aesGCM, err := newGCM(password, salt, scryptN, scryptR, scryptP)
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vault data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	vault := model.VaultFile{
		Version:    vaultVersion,
		ScryptN:    scryptN,
		ScryptR:    scryptR,
		ScryptP:    scryptP,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	out, err := json.Marshal(vault)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vault: %w", err)
	}
	return out, nil
}

// newGCM derives the vault key from password and builds the AEAD
func newGCM(password, salt []byte, n, r, p int) (cipher.AEAD, error) {
	key, err := scrypt.Key(password, salt, n, r, p, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aesGCM, nil
}
