package audit

import "errors"

var (
	// ErrOracleUnavailable is returned internally when no oracle is
	// configured or the oracle cannot be reached. It never escapes Audit;
	// the pipeline converts it to the fallback assessment.
	ErrOracleUnavailable = errors.New("risk oracle unavailable")

	// ErrMalformedVerdict is returned internally when the oracle responds
	// with a verdict missing required fields. Treated identically to
	// ErrOracleUnavailable.
	ErrMalformedVerdict = errors.New("malformed oracle verdict")
)
