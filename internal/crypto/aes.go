package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// encryptAESGCM encrypts plaintext using AES-256-GCM with no AAD.
// Returns ciphertext || tag; the nonce travels separately in the payload.
func encryptAESGCM(key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := newAESGCM(key, nonce)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// decryptAESGCM decrypts ciphertext || tag using AES-256-GCM with no AAD.
func decryptAESGCM(key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := newAESGCM(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAESGCM(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}
	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AESNonceSize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
