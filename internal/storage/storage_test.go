package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("thisis32byteslongsecretkey123456")

type payload struct {
	Names []string `json:"names"`
	Count int      `json:"count"`
}

func newMem() *Persistence {
	return NewPersistence(NewMemoryMedium(), "", zerolog.Nop())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	p := newMem()
	data := payload{Names: []string{"a", "b"}, Count: 2}

	require.NoError(t, Save(p, 1, data))
	got := Load(p, 1, payload{Count: -1})
	assert.Equal(t, data, got)
}

func TestLoad_VersionMismatchReturnsFallback(t *testing.T) {
	p := newMem()
	require.NoError(t, Save(p, 1, payload{Count: 7}))

	fallback := payload{Names: []string{"seed"}}
	got := Load(p, 2, fallback)
	assert.Equal(t, fallback, got)

	_, err := Read[payload](p, 2)
	assert.ErrorIs(t, err, ErrMalformedState)
}

func TestLoad_FallbackIsNotWrittenBack(t *testing.T) {
	m := NewMemoryMedium()
	p := NewPersistence(m, "", zerolog.Nop())

	_ = Load(p, 1, payload{Count: 3})

	_, err := m.Get(DefaultKey)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestLoad_MalformedBlobs(t *testing.T) {
	cases := map[string]string{
		"not json":        "{oops",
		"missing version": `{"data":{"count":1}}`,
		"wrong data type": `{"version":1,"data":"text"}`,
		"null data":       `{"version":1,"data":null}`,
		"missing data":    `{"version":1}`,
		"empty":           "",
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			m := NewMemoryMedium()
			require.NoError(t, m.Set(DefaultKey, []byte(blob)))
			p := NewPersistence(m, "", zerolog.Nop())

			got := Load(p, 1, payload{Count: 42})
			assert.Equal(t, 42, got.Count)

			_, err := Read[payload](p, 1)
			assert.Error(t, err)
		})
	}
}

func TestUnavailableStorage(t *testing.T) {
	var nilP *Persistence
	assert.Equal(t, payload{Count: 1}, Load(nilP, 1, payload{Count: 1}))
	assert.ErrorIs(t, Save(nilP, 1, payload{}), ErrStorageUnavailable)

	noMedium := NewPersistence(nil, "", zerolog.Nop())
	assert.ErrorIs(t, Save(noMedium, 1, payload{}), ErrStorageUnavailable)
	_, err := Read[payload](noMedium, 1)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestFileMedium_AtomicWrite(t *testing.T) {
	dir := t.TempDir()
	m, err := NewFileMedium(dir)
	require.NoError(t, err)
	p := NewPersistence(m, "", zerolog.Nop())

	require.NoError(t, Save(p, 1, payload{Count: 1}))
	require.NoError(t, Save(p, 1, payload{Count: 2}))

	_, err = os.Stat(filepath.Join(dir, DefaultKey+".json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, DefaultKey+".json.tmp"))
	assert.True(t, os.IsNotExist(err), "temporary file should be renamed away")

	// A second medium over the same directory sees the last write.
	m2, err := NewFileMedium(dir)
	require.NoError(t, err)
	got := Load(NewPersistence(m2, "", zerolog.Nop()), 1, payload{})
	assert.Equal(t, 2, got.Count)
}

func TestFileMedium_RejectsPathKeys(t *testing.T) {
	m, err := NewFileMedium(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, m.Set("../escape", []byte("x")))
	_, err = m.Get("a/b")
	assert.Error(t, err)
}

func TestSealedMedium(t *testing.T) {
	inner := NewMemoryMedium()
	sealed, err := NewSealedMedium(inner, testKey)
	require.NoError(t, err)
	p := NewPersistence(sealed, "", zerolog.Nop())

	require.NoError(t, Save(p, 1, payload{Names: []string{"secret"}}))

	raw, err := inner.Get(DefaultKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")

	assert.Equal(t, []string{"secret"}, Load(p, 1, payload{}).Names)

	other, err := NewSealedMedium(inner, []byte("another32byteslongsecretkey65432"))
	require.NoError(t, err)
	got := Load(NewPersistence(other, "", zerolog.Nop()), 1, payload{Count: -1})
	assert.Equal(t, -1, got.Count)
}

func TestNewSealedMedium_KeySize(t *testing.T) {
	_, err := NewSealedMedium(NewMemoryMedium(), []byte("short"))
	assert.Error(t, err)
}

func TestMigrate(t *testing.T) {
	src := newMem()
	dstInner := NewMemoryMedium()
	sealed, err := NewSealedMedium(dstInner, testKey)
	require.NoError(t, err)
	dst := NewPersistence(sealed, "", zerolog.Nop())

	require.NoError(t, Save(src, 1, payload{Count: 9}))
	require.NoError(t, Migrate(src, dst, 1))
	assert.Equal(t, 9, Load(dst, 1, payload{}).Count)

	assert.ErrorIs(t, Migrate(newMem(), dst, 1), ErrMalformedState)
	assert.ErrorIs(t, Migrate(src, dst, 2), ErrMalformedState)
}
