// Package storage persists wallet settings in an embedded LevelDB database.
// Values are JSON documents addressed by string keys.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/syndtr/goleveldb/leveldb"
	lvstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Keys used by the wallet
const (
	KeyVault          = "wallet_vault"
	KeyAddresses      = "wallet_addresses"
	KeyCurrentAddress = "wallet_current"
	KeyChain          = "chain"
	KeyCustomChains   = "custom_chains"
	KeyHistory        = "tx_history"
	tokensKeyPrefix   = "tokens:"
)

// ErrNotFound is returned when a key has no value
var ErrNotFound = errors.New("key not found")

// TokensKey is the key of the token list for a chain
func TokensKey(chainID int64) string {
	return tokensKeyPrefix + strconv.FormatInt(chainID, 10)
}

// Store is a key-value store backed by LevelDB
type Store struct {
	db *leveldb.DB
}

// Open opens (or creates) the database in dir
func Open(dir string) (*Store, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a store that lives only in memory
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(lvstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open memory database: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the raw value of key
func (s *Store) Get(key string) ([]byte, error) {
	v, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, nil
}

// Put stores the raw value of key
func (s *Store) Put(key string, value []byte) error {
	if err := s.db.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// Has reports whether key has a value
func (s *Store) Has(key string) (bool, error) {
	ok, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", key, err)
	}
	return ok, nil
}

// GetJSON decodes the value of key into v
func (s *Store) GetJSON(key string, v any) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// PutJSON encodes v and stores it under key
func (s *Store) PutJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Put(key, raw)
}

// Delete removes keys in one atomic batch. Missing keys are ignored.
func (s *Store) Delete(keys ...string) error {
	batch := new(leveldb.Batch)
	for _, k := range keys {
		batch.Delete([]byte(k))
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// Batch applies puts and deletes atomically. A nil value deletes the key.
func (s *Store) Batch(values map[string][]byte) error {
	batch := new(leveldb.Batch)
	for k, v := range values {
		if v == nil {
			batch.Delete([]byte(k))
			continue
		}
		batch.Put([]byte(k), v)
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	return nil
}

// TokenKeys lists every per-chain token list key
func (s *Store) TokenKeys() ([]string, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(tokensKeyPrefix)), nil)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate token keys: %w", err)
	}
	return keys, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
