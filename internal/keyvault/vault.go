package keyvault

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"errors"
	"fmt"
	"sync"

	"github.com/cipherfeed/client-go/internal/crypto"
)

// Role names a key pair's purpose. Signing keys only ever sign and verify;
// exchange keys only ever derive shared secrets.
type Role string

const (
	// RoleSigning is the ECDSA signing pair.
	RoleSigning Role = "signing"
	// RoleExchange is the ECDH exchange pair.
	RoleExchange Role = "exchange"
)

var (
	// ErrKeyGeneration is returned when key generation fails. It is fatal:
	// the vault does not retry silently.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrVaultCorrupted is returned when persisted key material cannot be
	// parsed back into usable keys.
	ErrVaultCorrupted = errors.New("stored key material is corrupted")
)

// KeyRing holds the device's two key pairs as in-memory handles.
// The private halves are usable for signing and key agreement but are never
// exposed in an exportable encoding.
type KeyRing struct {
	signing  *ecdsa.PrivateKey
	exchange *ecdh.PrivateKey
}

// Signing returns the handle used to sign payloads.
func (r *KeyRing) Signing() *ecdsa.PrivateKey { return r.signing }

// Exchange returns the handle used to derive shared secrets.
func (r *KeyRing) Exchange() *ecdh.PrivateKey { return r.exchange }

// SigningPublic returns the public half of the signing pair.
func (r *KeyRing) SigningPublic() *ecdsa.PublicKey { return &r.signing.PublicKey }

// ExchangePublic returns the public half of the exchange pair.
func (r *KeyRing) ExchangePublic() *ecdh.PublicKey { return r.exchange.PublicKey() }

// ExportSigningPublic returns the transport-safe encoding of the signing
// public key.
func (r *KeyRing) ExportSigningPublic() (string, error) {
	return crypto.ExportSigningPublic(r.SigningPublic())
}

// ExportExchangePublic returns the transport-safe encoding of the exchange
// public key.
func (r *KeyRing) ExportExchangePublic() (string, error) {
	return crypto.ExportExchangePublic(r.ExchangePublic())
}

// Vault loads, creates, and wipes the device key ring backed by a Store.
type Vault struct {
	store Store

	mu     sync.Mutex
	cached *KeyRing
}

// New creates a vault over the given secure store.
func New(store Store) *Vault {
	return &Vault{store: store}
}

// LoadOrCreateKeys returns the device key ring, generating and persisting it
// on first use. The call is idempotent; subsequent calls return the persisted
// pairs unchanged. First-time generation is serialized so concurrent calls
// against an empty store all observe the same winning key ring.
func (v *Vault) LoadOrCreateKeys() (*KeyRing, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cached != nil {
		return v.cached, nil
	}

	ring, err := v.load()
	if err == nil {
		v.cached = ring
		return ring, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	ring, err = v.generate()
	if err != nil {
		return nil, err
	}
	if err := v.persist(ring); err != nil {
		return nil, err
	}

	v.cached = ring
	return ring, nil
}

// Wipe destroys all stored key material. This is deliberately a loud,
// explicit operation: every payload previously encrypted by this device
// becomes permanently undecryptable.
func (v *Vault) Wipe() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cached = nil
	return v.store.Clear()
}

func (v *Vault) load() (*KeyRing, error) {
	signingDER, err := v.store.Get(string(RoleSigning))
	if err != nil {
		return nil, err
	}
	exchangeDER, err := v.store.Get(string(RoleExchange))
	if err != nil {
		return nil, err
	}

	signing, err := parseSigningKey(signingDER)
	if err != nil {
		return nil, err
	}
	exchange, err := parseExchangeKey(exchangeDER)
	if err != nil {
		return nil, err
	}
	return &KeyRing{signing: signing, exchange: exchange}, nil
}

func (v *Vault) generate() (*KeyRing, error) {
	signing, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: signing pair: %v", ErrKeyGeneration, err)
	}
	exchange, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange pair: %v", ErrKeyGeneration, err)
	}
	return &KeyRing{signing: signing, exchange: exchange}, nil
}

func (v *Vault) persist(ring *KeyRing) error {
	signingDER, err := x509.MarshalPKCS8PrivateKey(ring.signing)
	if err != nil {
		return fmt.Errorf("marshal signing key: %w", err)
	}
	exchangeDER, err := x509.MarshalPKCS8PrivateKey(ring.exchange)
	if err != nil {
		return fmt.Errorf("marshal exchange key: %w", err)
	}

	if err := v.store.Put(string(RoleSigning), signingDER); err != nil {
		return fmt.Errorf("persist signing key: %w", err)
	}
	if err := v.store.Put(string(RoleExchange), exchangeDER); err != nil {
		return fmt.Errorf("persist exchange key: %w", err)
	}
	return nil
}

func parseSigningKey(der []byte) (*ecdsa.PrivateKey, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultCorrupted, err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: signing slot holds %T", ErrVaultCorrupted, parsed)
	}
	return key, nil
}

func parseExchangeKey(der []byte) (*ecdh.PrivateKey, error) {
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVaultCorrupted, err)
	}

	// PKCS#8 EC keys parse as *ecdsa.PrivateKey regardless of how they were
	// marshaled; convert back to the agreement-only handle.
	switch key := parsed.(type) {
	case *ecdh.PrivateKey:
		return key, nil
	case *ecdsa.PrivateKey:
		exchange, err := key.ECDH()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVaultCorrupted, err)
		}
		return exchange, nil
	default:
		return nil, fmt.Errorf("%w: exchange slot holds %T", ErrVaultCorrupted, parsed)
	}
}
