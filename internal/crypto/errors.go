package crypto

import "errors"

var (
	// ErrSignatureVerificationFailed is returned when the ECDSA signature over
	// nonce || ciphertext does not verify against the author's signing key.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")

	// ErrDecryptionFailed is returned when the AEAD fails to open the
	// ciphertext: wrong derived key, corrupted ciphertext, or tag mismatch.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when the nonce size is invalid.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrMalformedPublicKey is returned when an encoded public key cannot be
	// decoded as base64 PKIX DER.
	ErrMalformedPublicKey = errors.New("malformed public key encoding")

	// ErrKeyRoleMismatch is returned when an imported public key's algorithm
	// family does not match the requested role (signing or exchange).
	ErrKeyRoleMismatch = errors.New("public key algorithm does not match requested role")

	// ErrInvalidPayload is returned when the encrypted payload structure is
	// invalid: missing fields or undecodable base64.
	ErrInvalidPayload = errors.New("invalid payload")
)
