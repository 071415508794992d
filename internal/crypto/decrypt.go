package crypto

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/sha256"
)

// Decrypt verifies and decrypts an encrypted post body.
//
// Signature verification happens first, before any decryption attempt: the
// signature over nonce || ciphertext is checked against the sender's signing
// public key, and a failure returns ErrSignatureVerificationFailed without
// touching the AEAD. Only then is the shared secret derived and the
// ciphertext opened; an AEAD failure returns ErrDecryptionFailed, a distinct
// condition so callers can tell tampering from a key mismatch.
func Decrypt(payload *EncryptedPayload, myExchange *ecdh.PrivateKey, senderExchangePub *ecdh.PublicKey, senderSigningPub *ecdsa.PublicKey) ([]byte, error) {
	d, err := payload.decode()
	if err != nil {
		return nil, err
	}

	// 1. Verify provenance before processing any ciphertext.
	digest := sha256.Sum256(signingMessage(d.nonce, d.ciphertext))
	if !ecdsa.VerifyASN1(senderSigningPub, digest[:], d.signature) {
		return nil, ErrSignatureVerificationFailed
	}

	// 2. Derive the shared key with the sender's exchange key.
	key, err := deriveSharedKey(myExchange, senderExchangePub)
	if err != nil {
		return nil, err
	}

	// 3. Open.
	return decryptAESGCM(key, d.nonce, d.ciphertext)
}

// VerifyPayload checks the payload signature without decrypting. It is used
// where integrity needs confirming but the content is not for this device.
func VerifyPayload(payload *EncryptedPayload, senderSigningPub *ecdsa.PublicKey) error {
	d, err := payload.decode()
	if err != nil {
		return err
	}

	digest := sha256.Sum256(signingMessage(d.nonce, d.ciphertext))
	if !ecdsa.VerifyASN1(senderSigningPub, digest[:], d.signature) {
		return ErrSignatureVerificationFailed
	}
	return nil
}
