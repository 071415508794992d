package cipherfeed

import "context"

// UserInfo identifies the local user. The SDK does not authenticate
// users itself; the host application supplies identity through an
// IdentityProvider.
type UserInfo struct {
	ID   string
	Name string
}

// PublicKeys is a user's published key material, base64-encoded SPKI.
// Private keys are never part of this structure.
type PublicKeys struct {
	Signing  string `json:"signing"`
	Exchange string `json:"exchange"`
}

// IdentityProvider supplies the current user's identity. Implemented by
// the host application on top of whatever auth it already has.
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (UserInfo, error)
}

// staticIdentity is the trivial provider for a fixed user.
type staticIdentity struct {
	user UserInfo
}

func (s staticIdentity) CurrentUser(ctx context.Context) (UserInfo, error) {
	return s.user, nil
}

// StaticIdentity returns an IdentityProvider that always reports the
// given user. Useful for tests and single-user tools.
func StaticIdentity(user UserInfo) IdentityProvider {
	return staticIdentity{user: user}
}

// KeyRegistry publishes and looks up user public keys. Lookup returns
// ErrUnknownRecipient when no keys are published for the user.
//
// The registry is trusted to return authentic keys; key transparency
// and out-of-band verification are out of scope for this SDK.
type KeyRegistry interface {
	Publish(ctx context.Context, userID string, keys PublicKeys) error
	Lookup(ctx context.Context, userID string) (PublicKeys, error)
}

// ContentStore persists encrypted posts. Implementations only ever see
// ciphertext; plaintext never reaches the store.
type ContentStore interface {
	Append(ctx context.Context, post *EncryptedPost) error
	Get(ctx context.Context, postID string) (*EncryptedPost, error)
	// List returns posts in append order, oldest first.
	List(ctx context.Context) ([]*EncryptedPost, error)
	// Subscribe delivers posts appended after the call. The channel is
	// closed when ctx is done.
	Subscribe(ctx context.Context) (<-chan *EncryptedPost, error)
}
