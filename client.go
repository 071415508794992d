package cipherfeed

import (
	"context"
	"crypto/ecdh"
	"crypto/ecdsa"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cipherfeed/client-go/internal/audit"
	"github.com/cipherfeed/client-go/internal/crypto"
	"github.com/cipherfeed/client-go/internal/keyvault"
	"github.com/cipherfeed/client-go/internal/oracle"
)

// Client is the CipherFeed SDK entry point. It is safe for concurrent
// use after Init.
type Client struct {
	identity IdentityProvider
	registry KeyRegistry
	store    ContentStore

	vault   *keyvault.Vault
	auditor *audit.Auditor
	cfg     clientConfig
	log     *zap.Logger

	mu   sync.RWMutex
	user UserInfo
	ring *keyvault.KeyRing
}

// New creates a Client over the host application's identity, key
// registry and content store. Call Init before composing or reading
// posts.
func New(identity IdentityProvider, registry KeyRegistry, store ContentStore, opts ...Option) (*Client, error) {
	if identity == nil {
		return nil, fmt.Errorf("cipherfeed: identity provider is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("cipherfeed: key registry is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cipherfeed: content store is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	riskOracle := cfg.oracle
	if riskOracle == nil && cfg.oracleAPIKey != "" {
		oracleOpts := []oracle.Option{oracle.WithLogger(cfg.log)}
		if cfg.oracleBaseURL != "" {
			oracleOpts = append(oracleOpts, oracle.WithBaseURL(cfg.oracleBaseURL))
		}
		client, err := oracle.New(cfg.oracleAPIKey, oracleOpts...)
		if err != nil {
			return nil, err
		}
		riskOracle = client
	}

	keyStore := cfg.keyStore
	if keyStore == nil {
		keyStore = keyvault.NewMemStore()
	}

	return &Client{
		identity: identity,
		registry: registry,
		store:    store,
		vault:    keyvault.New(keyStore),
		auditor: audit.New(riskOracle,
			audit.WithTimeout(cfg.auditTimeout),
			audit.WithFailClosed(cfg.failClosed),
			audit.WithLogger(cfg.log)),
		cfg: cfg,
		log: cfg.log,
	}, nil
}

// Init prepares the client for use: it checks the remote kill switch
// when one is configured, loads or creates the local key pairs, and
// publishes the public halves to the key registry. Init is idempotent;
// a second call republishes the same keys.
func (c *Client) Init(ctx context.Context) error {
	if err := c.checkKillSwitch(ctx); err != nil {
		return err
	}

	user, err := c.identity.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("resolving identity: %w", err)
	}

	ring, err := c.vault.LoadOrCreateKeys()
	if err != nil {
		return wrapVaultError(err)
	}

	keys, err := exportRing(ring)
	if err != nil {
		return wrapVaultError(err)
	}
	if err := c.registry.Publish(ctx, user.ID, keys); err != nil {
		return fmt.Errorf("publishing public keys: %w", err)
	}

	c.mu.Lock()
	c.user = user
	c.ring = ring
	c.mu.Unlock()

	c.log.Info("client initialized",
		zap.String("user_id", user.ID))
	return nil
}

// CurrentUser returns the identity the client was initialized with.
func (c *Client) CurrentUser() (UserInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ring == nil {
		return UserInfo{}, ErrNotInitialized
	}
	return c.user, nil
}

// ExportPublicKeys returns the local public keys in the registry wire
// format. Private keys cannot be exported.
func (c *Client) ExportPublicKeys() (PublicKeys, error) {
	ring, _, err := c.keyRing()
	if err != nil {
		return PublicKeys{}, err
	}
	return exportRing(ring)
}

// Audit runs the pre-post risk pipeline over a draft without posting
// it. The draft is scanned locally and an anonymized copy is sent to
// the oracle; the raw text never leaves the device.
func (c *Client) Audit(ctx context.Context, draft string) *RiskAssessment {
	return c.auditor.Audit(ctx, draft)
}

// ComposePost audits, encrypts, signs and stores a new post for the
// given recipient. The risk audit gates the post: a draft assessed
// above the configured maximum level, or marked unsafe by the oracle,
// is rejected with a PolicyError and nothing is encrypted or stored.
//
// Posting to your own user ID produces a self-addressed post, the
// private-notes case.
func (c *Client) ComposePost(ctx context.Context, plaintext, recipientID string) (*EncryptedPost, error) {
	ring, user, err := c.keyRing()
	if err != nil {
		return nil, err
	}

	var assessment *RiskAssessment
	if c.cfg.requireAudit {
		assessment = c.auditor.Audit(ctx, plaintext)
		if !c.permits(assessment) {
			return nil, &PolicyError{Assessment: assessment}
		}
	}

	recipientKeys, err := c.registry.Lookup(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("looking up recipient %q: %w", recipientID, err)
	}
	recipientPub, err := crypto.ImportExchangePublic(recipientKeys.Exchange)
	if err != nil {
		return nil, &KeyFormatError{UserID: recipientID, Role: "exchange", Err: err}
	}

	payload, err := crypto.Encrypt([]byte(plaintext), recipientPub, ring.Exchange(), ring.Signing())
	if err != nil {
		return nil, fmt.Errorf("encrypting post: %w", err)
	}
	payload.AuthorKeyRef = user.ID

	post := &EncryptedPost{
		ID:          uuid.NewString(),
		AuthorID:    user.ID,
		AuthorName:  user.Name,
		RecipientID: recipientID,
		CreatedAt:   time.Now().UTC(),
		Payload:     payload,
		Risk:        assessment,
	}
	if err := c.store.Append(ctx, post); err != nil {
		return nil, fmt.Errorf("storing post: %w", err)
	}

	c.log.Info("post composed",
		zap.String("post_id", post.ID),
		zap.String("recipient_id", recipientID))
	return post, nil
}

// ReadPost verifies and decrypts a post. The author's signature is
// checked against their published signing key before any decryption
// happens; a forged or tampered post fails with an IntegrityError and
// its ciphertext is never touched. A post addressed to someone else
// verifies but fails to decrypt with a DecryptionError.
func (c *Client) ReadPost(ctx context.Context, post *EncryptedPost) (string, error) {
	ring, _, err := c.keyRing()
	if err != nil {
		return "", err
	}
	if post == nil || post.Payload == nil {
		return "", fmt.Errorf("cipherfeed: post has no payload")
	}

	signingPub, exchangePub, err := c.authorKeys(ctx, post.AuthorID)
	if err != nil {
		return "", err
	}

	plaintext, err := crypto.Decrypt(post.Payload, ring.Exchange(), exchangePub, signingPub)
	if err != nil {
		return "", wrapDecryptError(err, post.ID, post.AuthorID)
	}
	return string(plaintext), nil
}

// VerifyPost checks a post's signature against the author's published
// signing key without decrypting it. Useful for relays that validate
// authorship but hold no exchange keys.
func (c *Client) VerifyPost(ctx context.Context, post *EncryptedPost) error {
	if post == nil || post.Payload == nil {
		return fmt.Errorf("cipherfeed: post has no payload")
	}
	signingPub, _, err := c.authorKeys(ctx, post.AuthorID)
	if err != nil {
		return err
	}
	if err := crypto.VerifyPayload(post.Payload, signingPub); err != nil {
		return wrapDecryptError(err, post.ID, post.AuthorID)
	}
	return nil
}

// Watch subscribes to the content store and delivers every new post as
// a PostEvent with decryption already attempted. Events for posts that
// cannot be decrypted carry the error instead of plaintext. The
// returned channel is closed when ctx is done.
func (c *Client) Watch(ctx context.Context) (<-chan PostEvent, error) {
	if _, _, err := c.keyRing(); err != nil {
		return nil, err
	}

	posts, err := c.store.Subscribe(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribing to content store: %w", err)
	}

	events := make(chan PostEvent)
	go func() {
		defer close(events)
		for post := range posts {
			event := PostEvent{Post: post}
			event.Plaintext, event.Err = c.ReadPost(ctx, post)
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// WipeKeys destroys all local key material. Posts encrypted for this
// client become permanently unreadable; there is no key escrow or
// recovery. The client must be re-initialized before further use, which
// generates a fresh identity key set.
func (c *Client) WipeKeys() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.vault.Wipe(); err != nil {
		return err
	}
	c.ring = nil
	c.log.Warn("local key material wiped")
	return nil
}

// permits applies the posting policy to an assessment.
func (c *Client) permits(a *RiskAssessment) bool {
	if !a.SafeToPost {
		return false
	}
	return a.Level.Severity() <= c.cfg.maxPostRisk.Severity()
}

// keyRing returns the loaded ring and user, or ErrNotInitialized.
func (c *Client) keyRing() (*keyvault.KeyRing, UserInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ring == nil {
		return nil, UserInfo{}, ErrNotInitialized
	}
	return c.ring, c.user, nil
}

// authorKeys fetches and imports a user's published public keys.
func (c *Client) authorKeys(ctx context.Context, userID string) (*ecdsa.PublicKey, *ecdh.PublicKey, error) {
	keys, err := c.registry.Lookup(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("looking up author %q: %w", userID, err)
	}
	signingPub, err := crypto.ImportSigningPublic(keys.Signing)
	if err != nil {
		return nil, nil, &KeyFormatError{UserID: userID, Role: "signing", Err: err}
	}
	exchangePub, err := crypto.ImportExchangePublic(keys.Exchange)
	if err != nil {
		return nil, nil, &KeyFormatError{UserID: userID, Role: "exchange", Err: err}
	}
	return signingPub, exchangePub, nil
}

func exportRing(ring *keyvault.KeyRing) (PublicKeys, error) {
	signing, err := ring.ExportSigningPublic()
	if err != nil {
		return PublicKeys{}, err
	}
	exchange, err := ring.ExportExchangePublic()
	if err != nil {
		return PublicKeys{}, err
	}
	return PublicKeys{Signing: signing, Exchange: exchange}, nil
}
