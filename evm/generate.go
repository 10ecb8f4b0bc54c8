package evm

import (
	"crypto/ecdsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/skip2/go-qrcode"
	"github.com/tyler-smith/go-bip39"
)

// DerivationPathPrefix is the BIP-44 Ethereum path; the address index is appended.
const DerivationPathPrefix = "m/44'/60'/0'/0/"

const mnemonicEntropyBits = 128 // 12 words

// NewMnemonic generates a fresh 12-word BIP-39 phrase
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic lower-cases the phrase and collapses whitespace
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
}

// ValidateMnemonic checks word list membership and checksum
func ValidateMnemonic(mnemonic string) error {
	if !bip39.IsMnemonicValid(NormalizeMnemonic(mnemonic)) {
		return ErrInvalidMnemonic
	}
	return nil
}

// DeriveKey returns the private key and address at m/44'/60'/0'/0/index
func DeriveKey(mnemonic string, index uint32) (*ecdsa.PrivateKey, string, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return nil, "", invalid("address index must be below %d", hdkeychain.HardenedKeyStart)
	}

	seed, err := bip39.NewSeedWithErrorChecking(NormalizeMnemonic(mnemonic), "")
	if err != nil {
		return nil, "", ErrInvalidMnemonic
	}
	defer clear(seed)

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create master key: %w", err)
	}

	path := []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + 60,
		hdkeychain.HardenedKeyStart + 0,
		0,
		index,
	}
	for _, i := range path {
		key, err = key.Derive(i)
		if err != nil {
			return nil, "", fmt.Errorf("failed to derive %s%d: %w", DerivationPathPrefix, index, err)
		}
	}

	btcKey, err := key.ECPrivKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get private key: %w", err)
	}
	raw := btcKey.Serialize()
	defer clear(raw)

	// rebuild on go-ethereum's curve so crypto.Sign accepts the key
	priv, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed to convert private key: %w", err)
	}
	return priv, crypto.PubkeyToAddress(priv.PublicKey).Hex(), nil
}

// DeriveAddress returns only the checksummed address at index
func DeriveAddress(mnemonic string, index uint32) (string, error) {
	_, address, err := DeriveKey(mnemonic, index)
	return address, err
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
