// Package commands implements the cipherfeed CLI: local key vault
// management and offline risk audits against a CipherFeed deployment.
package commands
