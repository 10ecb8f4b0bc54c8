// Package evm holds the wallet: key material, chain and token settings,
// balances, transfers and the local transaction history.
package evm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AlexZinkM/evm-wallet/internal/client"
	"github.com/AlexZinkM/evm-wallet/internal/crypto"
	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// PriceSource quotes the fiat price of a coin
type PriceSource interface {
	Price(ctx context.Context, id, currency string) (string, error)
}

// Options configures a Wallet. Store is required; zero values elsewhere get defaults.
type Options struct {
	Store          *storage.Store
	Dial           client.Dialer
	Prices         PriceSource // nil disables fiat values
	PriceCurrency  string
	DefaultChainID int64
	ScryptN        int
	RPCTimeout     time.Duration
	ReceiptTimeout time.Duration
	SendCooldown   time.Duration
	Logger         *logrus.Entry
	Now            func() time.Time
}

// Wallet is the single-user wallet state. All methods are safe for concurrent use.
type Wallet struct {
	opts  Options
	store *storage.Store
	log   *logrus.Entry

	mu        sync.RWMutex
	mnemonic  string // empty while locked
	addresses []model.DerivedAddress
	current   string
	chain     model.Chain
	custom    []model.Chain
	tokens    []model.Token

	backendsMu sync.Mutex
	backends   map[string]client.Backend // by RPC URL
	dials      singleflight.Group

	sendMu   sync.Mutex
	lastSend time.Time

	historyMu sync.Mutex
}

// New loads persisted settings from opts.Store
func New(opts Options) (*Wallet, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Dial == nil {
		opts.Dial = client.Dial
	}
	if opts.DefaultChainID == 0 {
		opts.DefaultChainID = DefaultChains()[0].ChainID
	}
	if opts.ScryptN == 0 {
		opts.ScryptN = crypto.DefaultScryptN
	}
	if opts.RPCTimeout == 0 {
		opts.RPCTimeout = 15 * time.Second
	}
	if opts.ReceiptTimeout == 0 {
		opts.ReceiptTimeout = 2 * time.Minute
	}
	if opts.PriceCurrency == "" {
		opts.PriceCurrency = "usd"
	}
	if opts.Logger == nil {
		opts.Logger = logrus.WithField("component", "wallet")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	w := &Wallet{
		opts:     opts,
		store:    opts.Store,
		log:      opts.Logger,
		backends: map[string]client.Backend{},
	}

	if err := w.load(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Wallet) load() error {
	if err := w.store.GetJSON(storage.KeyCustomChains, &w.custom); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	var chain model.Chain
	err := w.store.GetJSON(storage.KeyChain, &chain)
	switch {
	case err == nil:
		// a stored selection may point at a chain removed since; fall back to default
		if found, ok := w.findChain(chain.ChainID); ok {
			w.chain = found
		} else {
			w.log.WithField("chainId", chain.ChainID).Warn("stored chain is unknown, using default")
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		return err
	}
	if w.chain.ChainID == 0 {
		def, ok := w.findChain(w.opts.DefaultChainID)
		if !ok {
			return fmt.Errorf("default chain %d: %w", w.opts.DefaultChainID, ErrChainNotFound)
		}
		w.chain = def
	}

	tokens, err := w.loadTokens(w.chain)
	if err != nil {
		return err
	}
	w.tokens = tokens

	if err := w.store.GetJSON(storage.KeyAddresses, &w.addresses); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if err := w.store.GetJSON(storage.KeyCurrentAddress, &w.current); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// Close releases RPC connections
func (w *Wallet) Close() {
	w.backendsMu.Lock()
	defer w.backendsMu.Unlock()
	for url, b := range w.backends {
		closeBackend(b)
		delete(w.backends, url)
	}
}

// Create generates a mnemonic, stores it under password and unlocks the wallet.
// The phrase is returned once so the user can back it up.
func (w *Wallet) Create(password, confirm string) (*model.CreateResponse, error) {
	if err := checkNewPassword(password, confirm); err != nil {
		return nil, err
	}
	mnemonic, err := NewMnemonic()
	if err != nil {
		return nil, err
	}
	address, err := w.initialize(mnemonic, password)
	if err != nil {
		return nil, err
	}
	w.log.WithField("address", address).Info("wallet created")
	return &model.CreateResponse{Mnemonic: mnemonic, Address: address}, nil
}

// Import stores an existing mnemonic under password and unlocks the wallet
func (w *Wallet) Import(mnemonic, password, confirm string) (*model.AddressResponse, error) {
	mnemonic = NormalizeMnemonic(mnemonic)
	if mnemonic == "" {
		return nil, invalid("Enter your mnemonic")
	}
	if err := checkNewPassword(password, confirm); err != nil {
		return nil, err
	}
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}
	address, err := w.initialize(mnemonic, password)
	if err != nil {
		return nil, err
	}
	w.log.WithField("address", address).Info("wallet imported")
	return w.addressResponse(), nil
}

// initialize persists a new vault and derives the first address
func (w *Wallet) initialize(mnemonic, password string) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	exists, err := w.store.Has(storage.KeyVault)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrWalletExists
	}

	address, err := DeriveAddress(mnemonic, 0)
	if err != nil {
		return "", err
	}

	pw := []byte(password)
	defer clear(pw)
	envelope, err := crypto.EncryptVault(&model.VaultData{
		Mnemonic:  mnemonic,
		CreatedAt: w.opts.Now().UTC().Format(time.RFC3339),
	}, pw, w.opts.ScryptN)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	addresses := []model.DerivedAddress{{Index: 0, Address: address}}
	if err := w.putWalletKeys(envelope, addresses, address); err != nil {
		return "", err
	}

	w.mnemonic = mnemonic
	w.addresses = addresses
	w.current = address
	return address, nil
}

func (w *Wallet) putWalletKeys(envelope []byte, addresses []model.DerivedAddress, current string) error {
	values := map[string][]byte{}
	if envelope != nil {
		values[storage.KeyVault] = envelope
	}
	for key, v := range map[string]any{storage.KeyAddresses: addresses, storage.KeyCurrentAddress: current} {
		raw, err := marshal(v)
		if err != nil {
			return err
		}
		values[key] = raw
	}
	return w.store.Batch(values)
}

// Unlock decrypts the stored mnemonic (login)
func (w *Wallet) Unlock(password string) (*model.AddressResponse, error) {
	data, err := w.openVault(password)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.mnemonic = data.Mnemonic
	if len(w.addresses) == 0 {
		address, err := DeriveAddress(data.Mnemonic, 0)
		if err != nil {
			w.mnemonic = ""
			w.mu.Unlock()
			return nil, err
		}
		w.addresses = []model.DerivedAddress{{Index: 0, Address: address}}
		w.current = address
		if err := w.putWalletKeys(nil, w.addresses, w.current); err != nil {
			w.mu.Unlock()
			return nil, err
		}
	}
	if w.current == "" {
		w.current = w.addresses[0].Address
	}
	w.mu.Unlock()

	w.log.Info("wallet unlocked")
	return w.addressResponse(), nil
}

// openVault reads and decrypts the vault, mapping failures to wallet errors
func (w *Wallet) openVault(password string) (*model.VaultData, error) {
	if password == "" {
		return nil, invalid("Enter your password")
	}
	envelope, err := w.store.Get(storage.KeyVault)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrWalletNotFound
	}
	if err != nil {
		return nil, err
	}

	pw := []byte(password)
	defer clear(pw)
	data, err := crypto.DecryptVault(envelope, pw)
	if errors.Is(err, crypto.ErrInvalidPassword) {
		return nil, ErrIncorrectPassword
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt wallet: %w", err)
	}
	return data, nil
}

// Lock forgets the mnemonic (logout). Persisted settings are kept.
func (w *Wallet) Lock() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mnemonic = ""
	w.log.Info("wallet locked")
}

// Status reports whether a wallet exists and is unlocked
func (w *Wallet) Status() (*model.StatusResponse, error) {
	exists, err := w.store.Has(storage.KeyVault)
	if err != nil {
		return nil, err
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	resp := &model.StatusResponse{
		Exists:    exists,
		Unlocked:  w.mnemonic != "",
		Addresses: append([]model.DerivedAddress{}, w.addresses...),
		Chain:     w.chain,
	}
	if exists {
		resp.CurrentAddress = w.current
	}
	return resp, nil
}

// DeriveAddress derives the address at index, adds it if new and selects it
func (w *Wallet) DeriveAddress(index uint32) (*model.AddressResponse, error) {
	w.mu.Lock()
	if w.mnemonic == "" {
		w.mu.Unlock()
		return nil, ErrLocked
	}
	address, err := DeriveAddress(w.mnemonic, index)
	if err != nil {
		w.mu.Unlock()
		return nil, err
	}

	addresses := w.addresses
	if _, ok := indexOf(addresses, address); !ok {
		addresses = append(append([]model.DerivedAddress{}, addresses...), model.DerivedAddress{Index: index, Address: address})
	}
	if err := w.putWalletKeys(nil, addresses, address); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.addresses = addresses
	w.current = address
	w.mu.Unlock()

	w.log.WithFields(logrus.Fields{"index": index, "address": address}).Info("address derived")
	return w.addressResponse(), nil
}

// SelectAddress makes a previously derived address current
func (w *Wallet) SelectAddress(address string) (*model.AddressResponse, error) {
	w.mu.Lock()
	if w.mnemonic == "" {
		w.mu.Unlock()
		return nil, ErrLocked
	}
	i, ok := indexOf(w.addresses, address)
	if !ok {
		w.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", address, ErrAddressNotFound)
	}
	selected := w.addresses[i].Address
	if err := w.putWalletKeys(nil, w.addresses, selected); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	w.current = selected
	w.mu.Unlock()

	return w.addressResponse(), nil
}

// ExportMnemonic re-checks the password and returns the phrase
func (w *Wallet) ExportMnemonic(password string) (*model.MnemonicResponse, error) {
	data, err := w.openVault(password)
	if err != nil {
		return nil, err
	}
	if data.Mnemonic == "" {
		return nil, fmt.Errorf("no mnemonic found: %w", ErrWalletNotFound)
	}
	w.log.Warn("mnemonic exported")
	return &model.MnemonicResponse{Mnemonic: data.Mnemonic}, nil
}

// ChangePassword re-encrypts the vault under a new password
func (w *Wallet) ChangePassword(oldPassword, newPassword, confirm string) error {
	if err := checkNewPassword(newPassword, confirm); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	envelope, err := w.store.Get(storage.KeyVault)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrWalletNotFound
	}
	if err != nil {
		return err
	}

	oldPw, newPw := []byte(oldPassword), []byte(newPassword)
	defer clear(oldPw)
	defer clear(newPw)

	rotated, err := crypto.ReEncryptVault(envelope, oldPw, newPw, w.opts.ScryptN)
	if errors.Is(err, crypto.ErrInvalidPassword) {
		return ErrIncorrectPassword
	}
	if err != nil {
		return fmt.Errorf("failed to re-encrypt wallet: %w", err)
	}
	if err := w.store.Put(storage.KeyVault, rotated); err != nil {
		return err
	}
	w.log.Info("wallet password changed")
	return nil
}

// Remove deletes the wallet and its settings after a password check.
// Custom chains are kept; they are not wallet data.
func (w *Wallet) Remove(password string) error {
	if _, err := w.openVault(password); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	tokenKeys, err := w.store.TokenKeys()
	if err != nil {
		return err
	}
	keys := append([]string{
		storage.KeyVault,
		storage.KeyAddresses,
		storage.KeyCurrentAddress,
		storage.KeyChain,
		storage.KeyHistory,
	}, tokenKeys...)
	if err := w.store.Delete(keys...); err != nil {
		return err
	}

	w.mnemonic = ""
	w.addresses = nil
	w.current = ""
	if def, ok := w.findChain(w.opts.DefaultChainID); ok {
		w.chain = def
	}
	w.tokens = []model.Token{nativeToken(w.chain)}

	w.log.Warn("wallet removed")
	return nil
}

// Receive returns the current address with a QR code
func (w *Wallet) Receive() (*model.ReceiveResponse, error) {
	address, _, err := w.currentAccount()
	if err != nil {
		return nil, err
	}
	qr, err := generateQRCode(address)
	if err != nil {
		return nil, err
	}
	return &model.ReceiveResponse{Address: address, QR: qr}, nil
}

// currentAccount returns the selected address and its derivation index
func (w *Wallet) currentAccount() (string, uint32, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.mnemonic == "" {
		return "", 0, ErrLocked
	}
	i, ok := indexOf(w.addresses, w.current)
	if !ok {
		return "", 0, ErrAddressNotFound
	}
	return w.addresses[i].Address, w.addresses[i].Index, nil
}

func (w *Wallet) addressResponse() *model.AddressResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return &model.AddressResponse{
		Address:   w.current,
		Addresses: append([]model.DerivedAddress{}, w.addresses...),
	}
}

func checkNewPassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return invalid("Enter and confirm your password")
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func indexOf(addresses []model.DerivedAddress, address string) (int, bool) {
	for i, a := range addresses {
		if strings.EqualFold(a.Address, address) {
			return i, true
		}
	}
	return 0, false
}
