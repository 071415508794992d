// Package crypto implements the CipherFeed payload protocol: authenticated
// encryption of a single post body between two devices (or a device and
// itself).
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - ECDH over NIST P-256: static-static key agreement between the author's
//     exchange private key and the recipient's exchange public key. The raw
//     32-byte shared secret is used directly as the AEAD key.
//
//   - AES-256-GCM: authenticated encryption of the post body with a fresh
//     random 12-byte nonce per call and no additional authenticated data.
//
//   - ECDSA over P-256 with SHA-256: signature binding the ciphertext and
//     nonce to the author's signing identity. The signed message is the byte
//     concatenation nonce || ciphertext.
//
// Signing and exchange keys are independent pairs. A signing key is never
// used for key agreement and an exchange key is never used to sign.
//
// # Critical Security Notes
//
// Signature verification MUST be performed BEFORE decryption. [Decrypt]
// enforces this ordering itself: it verifies the author's signature over
// nonce || ciphertext and refuses to touch the AEAD if verification fails.
// This prevents processing attacker-controlled ciphertext with no valid
// provenance, and avoids leaking decryption-oracle behavior to an
// unauthenticated sender.
//
// The scheme derives a static shared key per sender/recipient pair rather
// than a per-message ephemeral secret, so it provides no forward secrecy.
// This mirrors the deployed payload format and is a documented limitation,
// not an oversight; nonce uniqueness per call is what keeps AES-GCM safe
// under the static key.
//
// # Encoding
//
// Payload fields and exported public keys are standard base64 with padding
// (RFC 4648 §4). Public keys travel as base64-encoded PKIX (SPKI) DER, which
// round-trips exactly through [ExportSigningPublic]/[ImportSigningPublic]
// and [ExportExchangePublic]/[ImportExchangePublic].
package crypto
