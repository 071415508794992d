// Package privacy provides the local half of the risk-audit pipeline: a
// stateless PII scanner and a reversible anonymizer.
//
// The scanner flags sensitive substrings (email addresses, phone numbers,
// government ID formats, sensitive keywords) with deterministic,
// declaration-ordered warnings. The anonymizer replaces structured matches
// with [CATEGORY_n] placeholder tokens before any content crosses the trust
// boundary to the external classification oracle, and can reverse the
// substitution for local display. Token maps are scoped to a single call and
// are never persisted.
package privacy
