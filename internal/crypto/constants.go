package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// SharedSecretSize is the size of a P-256 ECDH shared secret in bytes.
	// It matches AESKeySize: the shared secret is used directly as the AEAD key.
	SharedSecretSize = 32
)

// Ciphersuite is the canonical string representation of the algorithm suite.
const Ciphersuite = "ECDH-P256:ECDSA-P256-SHA256:AES-256-GCM"
