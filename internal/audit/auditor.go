// Package audit implements the privacy-risk audit pipeline that gates what
// may be encrypted and posted: local PII scan, anonymization, a round trip
// to an external risk-classification oracle, and a merged assessment.
//
// The pipeline fails open: an unreachable, slow, or malformed oracle
// degrades to a conservative local assessment instead of blocking the
// caller. The degraded state is flagged on the assessment so policy above
// this package can decide how much to trust it (see WithFailClosed for the
// stricter stance).
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cipherfeed/client-go/internal/privacy"
)

// DegradedWarning is appended when the oracle path is unavailable and the
// assessment falls back to local analysis.
const DegradedWarning = "AI analysis unavailable, proceed with caution"

// DefaultOracleTimeout bounds the single network suspension point in the
// pipeline.
const DefaultOracleTimeout = 10 * time.Second

// Oracle is the external risk-classification collaborator. It only ever
// receives sanitized text; the raw draft never crosses this boundary.
type Oracle interface {
	Classify(ctx context.Context, sanitized string) (*Classification, error)
}

// Auditor orchestrates the scanner, the anonymizer, and the oracle.
type Auditor struct {
	oracle     Oracle
	timeout    time.Duration
	failClosed bool
	log        *zap.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithTimeout sets the oracle call timeout. Default: DefaultOracleTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *Auditor) {
		a.timeout = timeout
	}
}

// WithFailClosed makes the degraded fallback refuse posting instead of
// allowing it. The default is fail-open: availability is prioritized over
// blocking, and the degraded state is flagged rather than fatal.
func WithFailClosed(failClosed bool) Option {
	return func(a *Auditor) {
		a.failClosed = failClosed
	}
}

// WithLogger sets the structured logger. Default: no-op.
func WithLogger(log *zap.Logger) Option {
	return func(a *Auditor) {
		a.log = log
	}
}

// New creates an Auditor over the given oracle. A nil oracle is allowed and
// behaves as a permanently unavailable one, always producing the fallback.
func New(oracle Oracle, opts ...Option) *Auditor {
	a := &Auditor{
		oracle:  oracle,
		timeout: DefaultOracleTimeout,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Audit runs the full pipeline over a raw draft and always returns an
// assessment: oracle failures are converted to the conservative fallback,
// never propagated. The caller's context bounds the oracle round trip in
// addition to the auditor's own timeout.
func (a *Auditor) Audit(ctx context.Context, draft string) *Assessment {
	// 1. Local scan over the raw draft.
	localWarnings := privacy.Scan(draft)

	// 2. Anonymize before anything leaves the trust boundary. The token map
	// lives only for this call.
	sanitized, tokens := privacy.Anonymize(draft)

	// 3. Oracle round trip with the sanitized text only.
	classification, err := a.classify(ctx, sanitized)
	if err != nil {
		a.log.Warn("risk oracle unavailable, using local fallback",
			zap.Error(err),
			zap.Bool("fail_closed", a.failClosed))
		return a.fallback(localWarnings)
	}

	// 4. Merge. Oracle warnings may reference placeholder tokens; restore
	// the original substrings for local display before deduplication.
	oracleWarnings := make([]string, len(classification.Warnings))
	for i, w := range classification.Warnings {
		oracleWarnings[i] = privacy.DeAnonymize(w, tokens)
	}
	warnings := mergeWarnings(localWarnings, oracleWarnings)

	source := SourceAI
	if len(localWarnings) > 0 {
		source = SourceLocal
	}

	return &Assessment{
		Level:      classification.Level,
		Warnings:   warnings,
		SafeToPost: classification.SafeToPost,
		Source:     source,
	}
}

func (a *Auditor) classify(ctx context.Context, sanitized string) (*Classification, error) {
	if a.oracle == nil {
		return nil, ErrOracleUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	classification, err := a.oracle.Classify(ctx, sanitized)
	if err != nil {
		return nil, err
	}
	// A malformed verdict is treated identically to an oracle failure.
	if classification == nil || !classification.Level.Valid() {
		return nil, ErrMalformedVerdict
	}
	return classification, nil
}

// fallback builds the conservative local assessment used when the oracle
// cannot be consulted.
func (a *Auditor) fallback(localWarnings []string) *Assessment {
	return &Assessment{
		Level:      LevelMedium,
		Warnings:   mergeWarnings(localWarnings, []string{DegradedWarning}),
		SafeToPost: !a.failClosed,
		Source:     SourceLocal,
		Degraded:   true,
	}
}

// mergeWarnings concatenates the groups and deduplicates while preserving
// first-seen order.
func mergeWarnings(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, group := range groups {
		for _, w := range group {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			merged = append(merged, w)
		}
	}
	return merged
}
