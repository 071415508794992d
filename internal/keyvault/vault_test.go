package keyvault

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateKeys_Idempotent(t *testing.T) {
	vault := New(NewMemStore())

	first, err := vault.LoadOrCreateKeys()
	require.NoError(t, err)

	second, err := vault.LoadOrCreateKeys()
	require.NoError(t, err)

	firstPub, err := first.ExportSigningPublic()
	require.NoError(t, err)
	secondPub, err := second.ExportSigningPublic()
	require.NoError(t, err)
	require.Equal(t, firstPub, secondPub, "repeated calls must return the persisted pair unchanged")
}

func TestLoadOrCreateKeys_SurvivesNewVaultOverSameStore(t *testing.T) {
	store := NewMemStore()

	ring, err := New(store).LoadOrCreateKeys()
	require.NoError(t, err)
	exchangePub, err := ring.ExportExchangePublic()
	require.NoError(t, err)

	// A fresh vault over the same store loads, it does not regenerate.
	reloaded, err := New(store).LoadOrCreateKeys()
	require.NoError(t, err)
	reloadedPub, err := reloaded.ExportExchangePublic()
	require.NoError(t, err)

	require.Equal(t, exchangePub, reloadedPub)
}

func TestLoadOrCreateKeys_ConcurrentFirstUse(t *testing.T) {
	vault := New(NewMemStore())

	const callers = 16
	results := make([]string, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ring, err := vault.LoadOrCreateKeys()
			if err != nil {
				t.Error(err)
				return
			}
			pub, err := ring.ExportSigningPublic()
			if err != nil {
				t.Error(err)
				return
			}
			results[i] = pub
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		require.Equal(t, results[0], results[i], "exactly one key pair must win first-time generation")
	}
}

func TestKeyRing_SeparateRoles(t *testing.T) {
	ring, err := New(NewMemStore()).LoadOrCreateKeys()
	require.NoError(t, err)

	signingPub, err := ring.ExportSigningPublic()
	require.NoError(t, err)
	exchangePub, err := ring.ExportExchangePublic()
	require.NoError(t, err)

	require.NotEqual(t, signingPub, exchangePub, "signing and exchange pairs must be independent")
}

func TestWipe_DestroysKeys(t *testing.T) {
	store := NewMemStore()
	vault := New(store)

	before, err := vault.LoadOrCreateKeys()
	require.NoError(t, err)
	beforePub, err := before.ExportSigningPublic()
	require.NoError(t, err)

	require.NoError(t, vault.Wipe())

	_, err = store.Get(string(RoleSigning))
	require.ErrorIs(t, err, ErrNotFound)

	// The next load generates a brand-new ring.
	after, err := vault.LoadOrCreateKeys()
	require.NoError(t, err)
	afterPub, err := after.ExportSigningPublic()
	require.NoError(t, err)
	require.NotEqual(t, beforePub, afterPub)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	secret := []byte("device secret")

	store, err := NewFileStore(dir, secret)
	require.NoError(t, err)

	vault := New(store)
	ring, err := vault.LoadOrCreateKeys()
	require.NoError(t, err)
	pub, err := ring.ExportSigningPublic()
	require.NoError(t, err)

	// Reopen the store as a new process would.
	reopened, err := NewFileStore(dir, secret)
	require.NoError(t, err)
	reloaded, err := New(reopened).LoadOrCreateKeys()
	require.NoError(t, err)
	reloadedPub, err := reloaded.ExportSigningPublic()
	require.NoError(t, err)

	require.Equal(t, pub, reloadedPub)
}

func TestFileStore_WrongDeviceSecret(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, []byte("right secret"))
	require.NoError(t, err)
	_, err = New(store).LoadOrCreateKeys()
	require.NoError(t, err)

	wrong, err := NewFileStore(dir, []byte("wrong secret"))
	require.NoError(t, err)
	_, err = wrong.Get(string(RoleSigning))
	require.ErrorIs(t, err, ErrEnvelopeOpen)
}

func TestFileStore_ClearRemovesEnvelopes(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, []byte("secret"))
	require.NoError(t, err)
	_, err = New(store).LoadOrCreateKeys()
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	_, err = store.Get(string(RoleSigning))
	require.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(string(RoleExchange))
	require.ErrorIs(t, err, ErrNotFound)
}
