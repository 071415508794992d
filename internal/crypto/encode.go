package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/x509"
	"fmt"
)

// ExportSigningPublic encodes an ECDSA signing public key as base64 PKIX DER.
func ExportSigningPublic(pub *ecdsa.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal signing public key: %w", err)
	}
	return ToBase64(der), nil
}

// ExportExchangePublic encodes an ECDH exchange public key as base64 PKIX DER.
func ExportExchangePublic(pub *ecdh.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("marshal exchange public key: %w", err)
	}
	return ToBase64(der), nil
}

// ImportSigningPublic decodes a base64 PKIX encoding into an ECDSA public key.
// Returns ErrMalformedPublicKey for undecodable input and ErrKeyRoleMismatch
// when the key's algorithm family is not elliptic-curve.
func ImportSigningPublic(encoded string) (*ecdsa.PublicKey, error) {
	parsed, err := parsePKIX(encoded)
	if err != nil {
		return nil, err
	}

	pub, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want EC signing key", ErrKeyRoleMismatch, parsed)
	}
	return pub, nil
}

// ImportExchangePublic decodes a base64 PKIX encoding into an ECDH public key.
// P-256 signing and exchange keys share the SPKI shape, so role enforcement
// here is by algorithm family; keeping the pairs separate per usage is the
// vault's contract.
func ImportExchangePublic(encoded string) (*ecdh.PublicKey, error) {
	parsed, err := parsePKIX(encoded)
	if err != nil {
		return nil, err
	}

	switch pub := parsed.(type) {
	case *ecdh.PublicKey:
		return pub, nil
	case *ecdsa.PublicKey:
		ecdhPub, err := pub.ECDH()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyRoleMismatch, err)
		}
		return ecdhPub, nil
	default:
		return nil, fmt.Errorf("%w: got %T, want EC exchange key", ErrKeyRoleMismatch, parsed)
	}
}

func parsePKIX(encoded string) (any, error) {
	der, err := FromBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}

	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPublicKey, err)
	}
	return parsed, nil
}
