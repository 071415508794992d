package crypto

import (
	"bytes"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"
)

type party struct {
	signing  *ecdsa.PrivateKey
	exchange *ecdh.PrivateKey
}

func newParty(t *testing.T) *party {
	t.Helper()

	signing, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	exchange, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return &party{signing: signing, exchange: exchange}
}

func TestEncrypt_Decrypt_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello world")},
		{"unicode", []byte("héllo wörld — こんにちは")},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	alice := newParty(t)
	bob := newParty(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Encrypt(tt.plaintext, bob.exchange.PublicKey(), alice.exchange, alice.signing)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}

			plaintext, err := Decrypt(payload, bob.exchange, alice.exchange.PublicKey(), &alice.signing.PublicKey)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}

			if !bytes.Equal(plaintext, tt.plaintext) {
				t.Errorf("decrypted = %q, want %q", plaintext, tt.plaintext)
			}
		})
	}
}

func TestEncrypt_SelfEncryption(t *testing.T) {
	alice := newParty(t)
	plaintext := []byte("note to self")

	payload, err := Encrypt(plaintext, alice.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}

	decrypted, err := Decrypt(payload, alice.exchange, alice.exchange.PublicKey(), &alice.signing.PublicKey)
	if err != nil {
		t.Fatalf("Decrypt() error = %v", err)
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q, want %q", decrypted, plaintext)
	}
}

func TestEncrypt_FreshNoncePerCall(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)
	plaintext := []byte("same input twice")

	first, err := Encrypt(plaintext, bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Encrypt(plaintext, bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	if first.IV == second.IV {
		t.Error("nonce reused across calls with the same derived key")
	}
	if first.Ciphertext == second.Ciphertext {
		t.Error("identical ciphertext for two encryptions of the same plaintext")
	}
}

func TestDecrypt_TamperedCiphertext(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	payload, err := Encrypt([]byte("authentic content"), bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	tamper := func(encoded string, idx int) string {
		raw, err := FromBase64(encoded)
		if err != nil {
			t.Fatal(err)
		}
		raw[idx] ^= 0x01
		return ToBase64(raw)
	}

	tests := []struct {
		name   string
		mutate func(p *EncryptedPayload)
	}{
		{"first ciphertext byte", func(p *EncryptedPayload) { p.Ciphertext = tamper(p.Ciphertext, 0) }},
		{"last ciphertext byte", func(p *EncryptedPayload) {
			raw, _ := FromBase64(p.Ciphertext)
			p.Ciphertext = tamper(p.Ciphertext, len(raw)-1)
		}},
		{"iv byte", func(p *EncryptedPayload) { p.IV = tamper(p.IV, 4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := *payload
			tt.mutate(&mutated)

			_, err := Decrypt(&mutated, bob.exchange, alice.exchange.PublicKey(), &alice.signing.PublicKey)
			if !errors.Is(err, ErrSignatureVerificationFailed) {
				t.Errorf("expected ErrSignatureVerificationFailed, got %v", err)
			}
		})
	}
}

func TestDecrypt_WrongExchangeKey(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)
	mallory := newParty(t)

	payload, err := Encrypt([]byte("for bob only"), bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	// Signature is authentic, so verification passes; the AEAD must then
	// fail with a decryption error, not an integrity one.
	_, err = Decrypt(payload, mallory.exchange, alice.exchange.PublicKey(), &alice.signing.PublicKey)
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
	if errors.Is(err, ErrSignatureVerificationFailed) {
		t.Error("wrong exchange key must not be reported as an integrity failure")
	}
}

func TestDecrypt_WrongSigningKey(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)
	mallory := newParty(t)

	payload, err := Encrypt([]byte("claimed by mallory"), bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	_, err = Decrypt(payload, bob.exchange, alice.exchange.PublicKey(), &mallory.signing.PublicKey)
	if !errors.Is(err, ErrSignatureVerificationFailed) {
		t.Errorf("expected ErrSignatureVerificationFailed, got %v", err)
	}
}

func TestDecrypt_MalformedPayload(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	payload, err := Encrypt([]byte("ok"), bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(p *EncryptedPayload)
	}{
		{"bad ciphertext base64", func(p *EncryptedPayload) { p.Ciphertext = "!!not base64!!" }},
		{"bad iv base64", func(p *EncryptedPayload) { p.IV = "!!not base64!!" }},
		{"bad signature base64", func(p *EncryptedPayload) { p.Signature = "!!not base64!!" }},
		{"short iv", func(p *EncryptedPayload) { p.IV = ToBase64([]byte{1, 2, 3}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := *payload
			tt.mutate(&mutated)

			_, err := Decrypt(&mutated, bob.exchange, alice.exchange.PublicKey(), &alice.signing.PublicKey)
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestVerifyPayload(t *testing.T) {
	alice := newParty(t)
	bob := newParty(t)

	payload, err := Encrypt([]byte("verifiable"), bob.exchange.PublicKey(), alice.exchange, alice.signing)
	if err != nil {
		t.Fatal(err)
	}

	if err := VerifyPayload(payload, &alice.signing.PublicKey); err != nil {
		t.Errorf("VerifyPayload() error = %v", err)
	}

	mallory := newParty(t)
	if err := VerifyPayload(payload, &mallory.signing.PublicKey); !errors.Is(err, ErrSignatureVerificationFailed) {
		t.Errorf("expected ErrSignatureVerificationFailed, got %v", err)
	}
}
