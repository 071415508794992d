package cipherfeed

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cipherfeed/client-go/internal/audit"
	"github.com/cipherfeed/client-go/internal/keyvault"
)

// KeyStore persists vault key material. The SDK ships an encrypted
// on-disk store (NewFileKeyStore) and an in-memory store for tests
// (NewMemoryKeyStore).
type KeyStore = keyvault.Store

// NewFileKeyStore returns a KeyStore that keeps key material in dir,
// each entry sealed with a key derived from deviceSecret. The secret
// should be device-bound (OS keychain entry, TPM-wrapped blob); it is
// what makes the files useless when copied off the machine.
func NewFileKeyStore(dir string, deviceSecret []byte) (KeyStore, error) {
	return keyvault.NewFileStore(dir, deviceSecret)
}

// NewMemoryKeyStore returns a KeyStore that holds key material in
// process memory only. Keys do not survive a restart.
func NewMemoryKeyStore() KeyStore {
	return keyvault.NewMemStore()
}

type clientConfig struct {
	keyStore      KeyStore
	oracle        Oracle
	oracleBaseURL string
	oracleAPIKey  string
	auditTimeout  time.Duration
	failClosed    bool
	requireAudit  bool
	maxPostRisk   RiskLevel
	killSwitchURL string
	log           *zap.Logger
}

func defaultConfig() clientConfig {
	return clientConfig{
		auditTimeout: audit.DefaultOracleTimeout,
		requireAudit: true,
		maxPostRisk:  RiskHigh,
		log:          zap.NewNop(),
	}
}

// Option configures a Client.
type Option func(*clientConfig)

// WithKeyStore sets where the vault persists key material. Defaults to
// an in-memory store; production clients should use NewFileKeyStore.
func WithKeyStore(store KeyStore) Option {
	return func(c *clientConfig) {
		c.keyStore = store
	}
}

// WithOracle sets the risk classifier used by the pre-post audit.
// Mutually exclusive with WithOracleAPI.
func WithOracle(oracle Oracle) Option {
	return func(c *clientConfig) {
		c.oracle = oracle
	}
}

// WithOracleAPI configures the built-in HTTP client for the hosted
// classifier. baseURL may be empty to use the default endpoint.
func WithOracleAPI(baseURL, apiKey string) Option {
	return func(c *clientConfig) {
		c.oracleBaseURL = baseURL
		c.oracleAPIKey = apiKey
	}
}

// WithAuditTimeout bounds how long a risk audit waits for the oracle
// before falling back to the local assessment. Defaults to 10s.
func WithAuditTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.auditTimeout = timeout
	}
}

// WithFailClosed makes the audit mark drafts unsafe to post when the
// oracle is unreachable, instead of the default fail-open behavior of
// allowing the post with a degraded MEDIUM assessment.
func WithFailClosed() Option {
	return func(c *clientConfig) {
		c.failClosed = true
	}
}

// WithRiskScanRequired controls whether ComposePost runs the risk audit
// before encrypting. Enabled by default; disabling it skips the gate
// entirely and posts carry no assessment.
func WithRiskScanRequired(required bool) Option {
	return func(c *clientConfig) {
		c.requireAudit = required
	}
}

// WithMaxPostRisk sets the highest risk level ComposePost will accept.
// Drafts assessed above it, or marked unsafe by the oracle, are
// rejected with a PolicyError. Defaults to HIGH, so only CRITICAL
// drafts are blocked.
func WithMaxPostRisk(level RiskLevel) Option {
	return func(c *clientConfig) {
		c.maxPostRisk = level
	}
}

// WithKillSwitchURL enables the remote kill-switch check performed by
// Init. An unreachable endpoint is treated as inactive unless the
// client is configured fail-closed.
func WithKillSwitchURL(url string) Option {
	return func(c *clientConfig) {
		c.killSwitchURL = url
	}
}

// WithLogger sets the logger for all SDK components. Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *clientConfig) {
		c.log = log
	}
}

func (c *clientConfig) validate() error {
	if c.oracle != nil && c.oracleAPIKey != "" {
		return errors.New("cipherfeed: WithOracle and WithOracleAPI are mutually exclusive")
	}
	if c.auditTimeout <= 0 {
		return errors.New("cipherfeed: audit timeout must be positive")
	}
	if !c.maxPostRisk.Valid() {
		return errors.New("cipherfeed: invalid max post risk level")
	}
	return nil
}
