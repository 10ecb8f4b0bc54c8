package evm

import (
	"sync"
	"testing"
	"time"

	"github.com/AlexZinkM/evm-wallet/internal/client/clienttest"
	"github.com/AlexZinkM/evm-wallet/internal/model"
	"github.com/AlexZinkM/evm-wallet/internal/storage"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic = "test test test test test test test test test test test junk"
	testAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testAddress1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testPassword = "correct horse"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	wallet  *Wallet
	store   *storage.Store
	backend *clienttest.Backend
	clock   *clock
	opts    Options
}

func newFixture(t *testing.T, modify ...func(*Options)) *fixture {
	t.Helper()

	store, err := storage.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger, _ := test.NewNullLogger()
	f := &fixture{
		store:   store,
		backend: clienttest.New(),
		clock:   &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	f.opts = Options{
		Store:          store,
		Dial:           f.backend.Dialer(),
		ScryptN:        1 << 10,
		ReceiptTimeout: 200 * time.Millisecond,
		Logger:         logrus.NewEntry(logger),
		Now:            f.clock.Now,
	}
	for _, m := range modify {
		m(&f.opts)
	}

	f.wallet, err = New(f.opts)
	require.NoError(t, err)
	t.Cleanup(f.wallet.Close)
	return f
}

// reopen builds a second Wallet over the same store, like a process restart
func (f *fixture) reopen(t *testing.T) *Wallet {
	t.Helper()
	w, err := New(f.opts)
	require.NoError(t, err)
	return w
}

func importTestWallet(t *testing.T, w *Wallet) {
	t.Helper()
	_, err := w.Import(testMnemonic, testPassword, testPassword)
	require.NoError(t, err)
}

func TestCreate(t *testing.T) {
	f := newFixture(t)

	resp, err := f.wallet.Create(testPassword, testPassword)
	require.NoError(t, err)
	require.NoError(t, ValidateMnemonic(resp.Mnemonic))

	want, err := DeriveAddress(resp.Mnemonic, 0)
	require.NoError(t, err)
	assert.Equal(t, want, resp.Address)

	status, err := f.wallet.Status()
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.True(t, status.Unlocked)
	assert.Equal(t, resp.Address, status.CurrentAddress)

	// the phrase is never stored in clear
	raw, err := f.store.Get(storage.KeyVault)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), resp.Mnemonic)

	_, err = f.wallet.Create(testPassword, testPassword)
	assert.ErrorIs(t, err, ErrWalletExists)
}

func TestCreatePasswordChecks(t *testing.T) {
	f := newFixture(t)

	_, err := f.wallet.Create("", "")
	assert.True(t, IsValidationError(err))

	_, err = f.wallet.Create("one", "two")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestImport(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		wantErr  error
		want     string
	}{
		{name: "known vector", mnemonic: testMnemonic, want: testAddress0},
		{name: "extra whitespace and case", mnemonic: "  TEST test test test test test test test test test test   junk ", want: testAddress0},
		{name: "bad checksum", mnemonic: "test test test test test test test test test test test test", wantErr: ErrInvalidMnemonic},
		{name: "unknown word", mnemonic: "test test test test test test test test test test test qwerty", wantErr: ErrInvalidMnemonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			resp, err := f.wallet.Import(tt.mnemonic, testPassword, testPassword)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Address)
			assert.Equal(t, []model.DerivedAddress{{Index: 0, Address: tt.want}}, resp.Addresses)
		})
	}
}

func TestImportEmptyMnemonic(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.Import("   ", testPassword, testPassword)
	assert.True(t, IsValidationError(err))
}

func TestLockUnlock(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	f.wallet.Lock()
	status, err := f.wallet.Status()
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.False(t, status.Unlocked)

	_, err = f.wallet.Receive()
	assert.ErrorIs(t, err, ErrLocked)

	_, err = f.wallet.Unlock("wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	_, err = f.wallet.Unlock("")
	assert.True(t, IsValidationError(err))

	resp, err := f.wallet.Unlock(testPassword)
	require.NoError(t, err)
	assert.Equal(t, testAddress0, resp.Address)
}

func TestUnlockWithoutWallet(t *testing.T) {
	f := newFixture(t)
	_, err := f.wallet.Unlock(testPassword)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestDeriveAndSelectAddress(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	resp, err := f.wallet.DeriveAddress(1)
	require.NoError(t, err)
	assert.Equal(t, testAddress1, resp.Address)
	assert.Len(t, resp.Addresses, 2)

	// deriving again does not duplicate
	resp, err = f.wallet.DeriveAddress(1)
	require.NoError(t, err)
	assert.Len(t, resp.Addresses, 2)

	resp, err = f.wallet.SelectAddress(testAddress0)
	require.NoError(t, err)
	assert.Equal(t, testAddress0, resp.Address)

	_, err = f.wallet.SelectAddress("0x0000000000000000000000000000000000000001")
	assert.ErrorIs(t, err, ErrAddressNotFound)

	// selection survives a restart, the wallet comes back locked
	w := f.reopen(t)
	status, err := w.Status()
	require.NoError(t, err)
	assert.False(t, status.Unlocked)
	assert.Equal(t, testAddress0, status.CurrentAddress)
	assert.Len(t, status.Addresses, 2)
}

func TestDeriveAddressLocked(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)
	f.wallet.Lock()

	_, err := f.wallet.DeriveAddress(1)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = f.wallet.SelectAddress(testAddress0)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestExportMnemonic(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	_, err := f.wallet.ExportMnemonic("wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	resp, err := f.wallet.ExportMnemonic(testPassword)
	require.NoError(t, err)
	assert.Equal(t, testMnemonic, resp.Mnemonic)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	err := f.wallet.ChangePassword("wrong", "new password", "new password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	err = f.wallet.ChangePassword(testPassword, "new password", "other")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	require.NoError(t, f.wallet.ChangePassword(testPassword, "new password", "new password"))

	f.wallet.Lock()
	_, err = f.wallet.Unlock(testPassword)
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	_, err = f.wallet.Unlock("new password")
	require.NoError(t, err)
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	_, err := f.wallet.AddChain(testChain())
	require.NoError(t, err)
	_, err = f.wallet.AddToken(model.AddTokenRequest{Name: "Tether", Symbol: "USDT", Address: testTokenAddress})
	require.NoError(t, err)

	assert.ErrorIs(t, f.wallet.Remove("wrong"), ErrIncorrectPassword)
	require.NoError(t, f.wallet.Remove(testPassword))

	status, err := f.wallet.Status()
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.False(t, status.Unlocked)
	assert.Empty(t, status.Addresses)
	assert.Equal(t, int64(824), status.Chain.ChainID)

	tokens := f.wallet.Tokens()
	require.Len(t, tokens.Tokens, 1)
	assert.True(t, tokens.Tokens[0].IsNative())

	keys, err := f.store.TokenKeys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	// custom networks are settings, not wallet data
	_, ok := f.wallet.findChain(testChain().ChainID)
	assert.True(t, ok)

	// a new wallet can be created afterwards
	_, err = f.wallet.Create(testPassword, testPassword)
	require.NoError(t, err)
}

func TestReceive(t *testing.T) {
	f := newFixture(t)
	importTestWallet(t, f.wallet)

	resp, err := f.wallet.Receive()
	require.NoError(t, err)
	assert.Equal(t, testAddress0, resp.Address)
	assert.NotEmpty(t, resp.QR)
}
