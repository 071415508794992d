package crypto

import "fmt"

// EncryptedPayload is the wire form of an encrypted post body.
// It is immutable once created.
type EncryptedPayload struct {
	// Ciphertext is the AES-256-GCM ciphertext plus tag (base64-encoded).
	Ciphertext string `json:"ciphertext"`
	// IV is the 12-byte AES-GCM nonce (base64-encoded).
	IV string `json:"iv"`
	// Signature is the ECDSA-SHA-256 signature over nonce || ciphertext
	// (base64-encoded ASN.1 DER).
	Signature string `json:"signature"`
	// AuthorKeyRef identifies the author's exchange public key in the
	// external identity registry. It is filled by the caller, never derived
	// inside this package.
	AuthorKeyRef string `json:"authorKeyRef,omitempty"`
}

// decoded holds the raw byte components of a payload.
type decoded struct {
	ciphertext []byte
	nonce      []byte
	signature  []byte
}

// decode validates and base64-decodes the payload fields.
func (p *EncryptedPayload) decode() (*decoded, error) {
	ciphertext, err := FromBase64(p.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext: %v", ErrInvalidPayload, err)
	}

	nonce, err := FromBase64(p.IV)
	if err != nil {
		return nil, fmt.Errorf("%w: decode iv: %v", ErrInvalidPayload, err)
	}
	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: iv is %d bytes, want %d", ErrInvalidPayload, len(nonce), AESNonceSize)
	}

	signature, err := FromBase64(p.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: decode signature: %v", ErrInvalidPayload, err)
	}

	return &decoded{ciphertext: ciphertext, nonce: nonce, signature: signature}, nil
}

// signingMessage builds the byte sequence covered by the payload signature:
// nonce followed by ciphertext, in that order.
func signingMessage(nonce, ciphertext []byte) []byte {
	msg := make([]byte, 0, len(nonce)+len(ciphertext))
	msg = append(msg, nonce...)
	msg = append(msg, ciphertext...)
	return msg
}
