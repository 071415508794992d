package privacy

import (
	"fmt"
	"sort"
	"strings"
)

// TokenMap maps a placeholder token back to the sensitive substring it
// replaced. It is scoped to one Anonymize call and must never be persisted;
// it exists only long enough to de-anonymize a result for local display.
type TokenMap map[string]string

// Anonymize replaces every email and phone match in text with a unique
// [CATEGORY_n] placeholder and returns the sanitized text plus the map that
// reverses the substitution. The counter is shared across categories and
// increases monotonically within the call, so tokens are unique per call and
// stable for identical input. The sanitized text contains no verbatim
// occurrence of any matched substring.
func Anonymize(text string) (string, TokenMap) {
	tokens := make(TokenMap)
	counter := 0

	sanitized := emailPattern.ReplaceAllStringFunc(text, func(match string) string {
		counter++
		token := fmt.Sprintf("[EMAIL_%d]", counter)
		tokens[token] = match
		return token
	})

	sanitized = phonePattern.ReplaceAllStringFunc(sanitized, func(match string) string {
		counter++
		token := fmt.Sprintf("[PHONE_%d]", counter)
		tokens[token] = match
		return token
	})

	return sanitized, tokens
}

// DeAnonymize replaces every occurrence of every token in text with its
// original value. Longer tokens are applied first so a token that is a
// substring of another is never double-substituted; the bracketed token
// shape keeps collisions with ordinary text unlikely.
func DeAnonymize(text string, tokens TokenMap) string {
	ordered := make([]string, 0, len(tokens))
	for token := range tokens {
		ordered = append(ordered, token)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if len(ordered[i]) != len(ordered[j]) {
			return len(ordered[i]) > len(ordered[j])
		}
		return ordered[i] < ordered[j]
	})

	for _, token := range ordered {
		text = strings.ReplaceAll(text, token, tokens[token])
	}
	return text
}
