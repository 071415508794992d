package cipherfeed

import (
	"errors"
	"fmt"

	"github.com/cipherfeed/client-go/internal/crypto"
	"github.com/cipherfeed/client-go/internal/keyvault"
)

// Sentinel errors returned by the SDK. Use errors.Is to test for them;
// typed errors below carry additional context and unwrap to these.
var (
	// ErrNotInitialized is returned when a client method that needs the
	// key vault is called before Init.
	ErrNotInitialized = errors.New("cipherfeed: client not initialized")

	// ErrKeyGeneration is returned when the vault cannot create or
	// persist a key pair.
	ErrKeyGeneration = errors.New("cipherfeed: key generation failed")

	// ErrKeyFormat is returned when an imported public key cannot be
	// parsed, or is the wrong kind of key for its role.
	ErrKeyFormat = errors.New("cipherfeed: invalid public key")

	// ErrIntegrity is returned when a post's signature does not verify
	// against the claimed author's signing key. The ciphertext is never
	// decrypted in that case.
	ErrIntegrity = errors.New("cipherfeed: signature verification failed")

	// ErrDecryption is returned when a post's signature verified but
	// AES-GCM decryption failed, usually because the post was encrypted
	// for a different recipient.
	ErrDecryption = errors.New("cipherfeed: decryption failed")

	// ErrPostingBlocked is returned by ComposePost when the risk audit
	// classifies the draft above the configured maximum level.
	ErrPostingBlocked = errors.New("cipherfeed: posting blocked by risk policy")

	// ErrKillSwitchActive is returned when the remote kill switch has
	// disabled this client.
	ErrKillSwitchActive = errors.New("cipherfeed: client disabled by kill switch")

	// ErrUnknownRecipient is returned when the key registry has no
	// published keys for the requested user.
	ErrUnknownRecipient = errors.New("cipherfeed: recipient keys not found")
)

// CipherFeedError is implemented by all typed errors in this package,
// so callers can match any SDK error with a single errors.As target.
type CipherFeedError interface {
	error
	CipherFeedError()
}

// KeyFormatError reports a peer public key that could not be imported.
type KeyFormatError struct {
	// UserID is the owner of the rejected key, when known.
	UserID string
	// Role is "signing" or "exchange".
	Role string
	Err  error
}

func (e *KeyFormatError) Error() string {
	if e.UserID != "" {
		return fmt.Sprintf("invalid %s key for user %q: %v", e.Role, e.UserID, e.Err)
	}
	return fmt.Sprintf("invalid %s key: %v", e.Role, e.Err)
}

func (e *KeyFormatError) Unwrap() error { return e.Err }

func (e *KeyFormatError) Is(target error) bool { return target == ErrKeyFormat }

func (e *KeyFormatError) CipherFeedError() {}

// IntegrityError reports a post whose signature failed verification.
type IntegrityError struct {
	// PostID identifies the rejected post, when known.
	PostID string
	// AuthorID is the claimed author whose signing key was used.
	AuthorID string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("post %s: signature verification failed for author %q", e.PostID, e.AuthorID)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

func (e *IntegrityError) CipherFeedError() {}

// DecryptionError reports a post that verified but did not decrypt.
type DecryptionError struct {
	PostID string
	Err    error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("post %s: decryption failed: %v", e.PostID, e.Err)
}

func (e *DecryptionError) Unwrap() error { return e.Err }

func (e *DecryptionError) Is(target error) bool { return target == ErrDecryption }

func (e *DecryptionError) CipherFeedError() {}

// PolicyError reports a draft rejected by the risk policy. The full
// assessment is attached so callers can show the warnings to the user.
type PolicyError struct {
	Assessment *RiskAssessment
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("posting blocked: risk level %s exceeds policy", e.Assessment.Level)
}

func (e *PolicyError) Is(target error) bool { return target == ErrPostingBlocked }

func (e *PolicyError) CipherFeedError() {}

// KillSwitchError reports a client disabled remotely.
type KillSwitchError struct {
	// Message is the operator-supplied explanation, if any.
	Message string
	// MinClientVersion is the oldest version still allowed, if the
	// switch was a forced-upgrade rather than a full stop.
	MinClientVersion string
}

func (e *KillSwitchError) Error() string {
	if e.Message != "" {
		return "client disabled by kill switch: " + e.Message
	}
	return "client disabled by kill switch"
}

func (e *KillSwitchError) Is(target error) bool { return target == ErrKillSwitchActive }

func (e *KillSwitchError) CipherFeedError() {}

// wrapVaultError maps internal keyvault errors onto public sentinels.
func wrapVaultError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, keyvault.ErrKeyGeneration) || errors.Is(err, keyvault.ErrVaultCorrupted) {
		return fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return err
}

// wrapDecryptError maps internal crypto errors onto the public typed
// errors, preserving the verify-before-decrypt distinction.
func wrapDecryptError(err error, postID, authorID string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, crypto.ErrSignatureVerificationFailed):
		return &IntegrityError{PostID: postID, AuthorID: authorID}
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return &DecryptionError{PostID: postID, Err: err}
	case errors.Is(err, crypto.ErrInvalidPayload), errors.Is(err, crypto.ErrInvalidNonceSize):
		return &DecryptionError{PostID: postID, Err: err}
	default:
		return err
	}
}
