package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := newStore(t)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	var v item
	assert.ErrorIs(t, s.GetJSON("nope", &v), ErrNotFound)

	ok, err := s.Has("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.PutJSON(KeyChain, item{Name: "a", Count: 3}))

	var got item
	require.NoError(t, s.GetJSON(KeyChain, &got))
	assert.Equal(t, item{Name: "a", Count: 3}, got)

	ok, err := s.Has(KeyChain)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGetJSONCorrupt(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put("bad", []byte("{")))

	var v item
	err := s.GetJSON("bad", &v)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndBatch(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put("a", []byte("1")))
	require.NoError(t, s.Put("b", []byte("2")))

	require.NoError(t, s.Delete("a", "missing"))
	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Batch(map[string][]byte{"b": nil, "c": []byte("3")}))
	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
	v, err := s.Get("c")
	require.NoError(t, err)
	assert.Equal(t, "3", string(v))
}

func TestTokenKeys(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Put(TokensKey(1), []byte("[]")))
	require.NoError(t, s.Put(TokensKey(824), []byte("[]")))
	require.NoError(t, s.Put(KeyChain, []byte("{}")))

	keys, err := s.TokenKeys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tokens:1", "tokens:824"}, keys)
}

func TestOpenOnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(v))
}
