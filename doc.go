// Package cipherfeed is the official Go SDK for CipherFeed, an
// end-to-end encrypted social feed.
//
// The client owns a local key vault holding two P-256 key pairs per
// user (one for ECDSA signing, one for ECDH key agreement), encrypts
// every post with AES-256-GCM under a shared secret derived from the
// recipient's exchange key, and signs nonce plus ciphertext so that
// recipients verify authorship before decrypting. Drafts pass through
// a local PII scan and an anonymizing risk audit before anything
// leaves the device.
//
// Basic usage:
//
//	identity := cipherfeed.StaticIdentity(cipherfeed.UserInfo{ID: "alice", Name: "Alice"})
//	registry := cipherfeed.NewMemoryKeyRegistry()
//	store := cipherfeed.NewMemoryContentStore()
//
//	client, err := cipherfeed.New(identity, registry, store)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := client.Init(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	post, err := client.ComposePost(ctx, "hello, feed", "bob")
//
// Plaintext never reaches the content store and private keys never
// leave the vault. See the README for the full threat model.
package cipherfeed
