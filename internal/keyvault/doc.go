// Package keyvault manages a device's asymmetric key material: one ECDSA
// P-256 signing pair and one ECDH P-256 exchange pair, generated on first use
// and persisted in a device-local secure store.
//
// Private keys never leave the vault in exportable form. The public API hands
// out in-memory key handles for signing and key agreement plus base64 PKIX
// encodings of the public halves; the private halves are persisted only
// inside an encrypted envelope (see FileStore).
//
// First-time generation is serialized: concurrent LoadOrCreateKeys calls
// against an empty store resolve to the same winning key ring. Wipe is the
// single destructive operation and permanently removes the ability to
// decrypt anything this device encrypted before.
package keyvault
