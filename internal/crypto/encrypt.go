package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// Encrypt encrypts a post body for a recipient (or for the author itself;
// self-encryption takes the same path).
//
// The process:
//  1. Derive the static shared secret via ECDH between the author's exchange
//     private key and the recipient's exchange public key (exactly 32 bytes).
//  2. Use the shared secret as an AES-256-GCM key with a fresh random
//     12-byte nonce and no AAD.
//  3. Sign nonce || ciphertext with the author's signing private key
//     (ECDSA over SHA-256).
//
// The returned payload's AuthorKeyRef is left empty; the caller fills it from
// the external identity registry.
func Encrypt(plaintext []byte, recipientPub *ecdh.PublicKey, myExchange *ecdh.PrivateKey, mySigning *ecdsa.PrivateKey) (*EncryptedPayload, error) {
	key, err := deriveSharedKey(myExchange, recipientPub)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext, err := encryptAESGCM(key, nonce, plaintext)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(signingMessage(nonce, ciphertext))
	signature, err := ecdsa.SignASN1(rand.Reader, mySigning, digest[:])
	if err != nil {
		return nil, fmt.Errorf("sign payload: %w", err)
	}

	return &EncryptedPayload{
		Ciphertext: ToBase64(ciphertext),
		IV:         ToBase64(nonce),
		Signature:  ToBase64(signature),
	}, nil
}

// deriveSharedKey runs ECDH and checks the secret is usable as an AES-256 key.
func deriveSharedKey(myExchange *ecdh.PrivateKey, peerPub *ecdh.PublicKey) ([]byte, error) {
	secret, err := myExchange.ECDH(peerPub)
	if err != nil {
		return nil, fmt.Errorf("derive shared secret: %w", err)
	}
	if len(secret) != SharedSecretSize {
		return nil, fmt.Errorf("%w: shared secret is %d bytes, want %d", ErrInvalidKeySize, len(secret), SharedSecretSize)
	}
	return secret, nil
}
