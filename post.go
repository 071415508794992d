package cipherfeed

import (
	"time"

	"github.com/cipherfeed/client-go/internal/audit"
	"github.com/cipherfeed/client-go/internal/crypto"
)

// EncryptedPayload is the wire form of an encrypted post body:
// base64-encoded ciphertext, nonce and signature plus the author's key
// reference. The signature covers nonce followed by ciphertext.
type EncryptedPayload = crypto.EncryptedPayload

// RiskAssessment is the outcome of a pre-post risk audit.
type RiskAssessment = audit.Assessment

// RiskLevel is the severity assigned to a draft by the risk audit.
type RiskLevel = audit.Level

// Risk levels in increasing severity.
const (
	RiskLow      = audit.LevelLow
	RiskMedium   = audit.LevelMedium
	RiskHigh     = audit.LevelHigh
	RiskCritical = audit.LevelCritical
)

// Assessment sources.
const (
	SourceLocal = audit.SourceLocal
	SourceAI    = audit.SourceAI
)

// Oracle classifies already-anonymized draft text. The SDK ships an
// HTTP client for the hosted classifier (see WithOracleAPI); supply
// your own implementation for offline or self-hosted setups.
type Oracle = audit.Oracle

// Classification is an Oracle's verdict for a sanitized draft.
type Classification = audit.Classification

// EncryptedPost is a post as stored and transported: metadata in the
// clear, body encrypted and signed.
type EncryptedPost struct {
	ID          string            `json:"id"`
	AuthorID    string            `json:"authorId"`
	AuthorName  string            `json:"authorName"`
	RecipientID string            `json:"recipientId"`
	CreatedAt   time.Time         `json:"createdAt"`
	Payload     *EncryptedPayload `json:"payload"`

	// Risk is the audit outcome recorded at compose time. Warnings in
	// it are de-anonymized and must not be shown to anyone but the
	// author; stores that sync posts to other users should strip it.
	Risk *RiskAssessment `json:"risk,omitempty"`
}

// PostEvent is delivered by Client.Watch for each new post. Plaintext
// is set when the post decrypted cleanly; otherwise Err explains why
// (ErrIntegrity for a bad signature, ErrDecryption for a post addressed
// to someone else).
type PostEvent struct {
	Post      *EncryptedPost
	Plaintext string
	Err       error
}
