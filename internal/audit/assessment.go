package audit

// Level grades the privacy risk of a draft.
type Level string

// Risk levels, lowest to highest.
const (
	LevelLow      Level = "LOW"
	LevelMedium   Level = "MEDIUM"
	LevelHigh     Level = "HIGH"
	LevelCritical Level = "CRITICAL"
)

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Severity returns a comparable rank: LOW=0 up to CRITICAL=3.
// Unknown levels rank above CRITICAL so they are never treated as safe.
func (l Level) Severity() int {
	switch l {
	case LevelLow:
		return 0
	case LevelMedium:
		return 1
	case LevelHigh:
		return 2
	case LevelCritical:
		return 3
	}
	return 4
}

// Source attributes an assessment. Local findings take precedence: if the
// local scanner produced any warning, the source is LOCAL even when the
// oracle also ran.
type Source string

const (
	// SourceLocal marks assessments attributed to the local scanner
	// (including the degraded fallback path).
	SourceLocal Source = "LOCAL"
	// SourceAI marks assessments attributed to the external oracle.
	SourceAI Source = "AI"
)

// Assessment is the merged outcome of one audit call.
type Assessment struct {
	// Level is the risk grade, taken from the oracle unless degraded.
	Level Level `json:"riskLevel"`
	// Warnings is the ordered, deduplicated union of local and oracle
	// warnings, local first.
	Warnings []string `json:"warnings"`
	// SafeToPost is the oracle's recommendation (or the fallback policy's).
	// Callers must not trust it blindly; posting policy may additionally
	// require Level below a threshold.
	SafeToPost bool `json:"safeToPost"`
	// Source is LOCAL when local findings exist or the oracle was
	// unavailable, AI otherwise.
	Source Source `json:"source"`
	// Degraded is true when the oracle could not be consulted and the
	// conservative local fallback was used instead.
	Degraded bool `json:"degraded,omitempty"`
}

// Classification is the structured verdict returned by the external
// risk-classification oracle for sanitized text.
type Classification struct {
	Level      Level    `json:"riskLevel"`
	Warnings   []string `json:"warnings"`
	SafeToPost bool     `json:"safeToPost"`
}
