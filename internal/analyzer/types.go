package analyzer

import "github.com/gzhole/veritas/internal/catalog"

// RiskLevel is the discrete classification of an aggregate risk score. It
// shares the severity scale used by catalog rules.
type RiskLevel = catalog.Severity

// Evidence is one concrete pattern match found in analyzed text. A new slice
// of Evidence is produced for every analysis and never mutated afterwards.
type Evidence struct {
	Text        string           `json:"text"`
	Category    catalog.Category `json:"command_type"`
	Severity    catalog.Severity `json:"severity"`
	Confidence  float64          `json:"confidence"`
	Pattern     string           `json:"pattern_matched"`
	Description string           `json:"description"`
	// Executable is the command word of shell-like matches, for audit only.
	Executable string       `json:"executable,omitempty"`
	Context    MatchContext `json:"context"`
}

// MatchContext locates a match in the analyzed input. Start and End are byte
// offsets; SurroundingText holds up to 20 characters on either side.
type MatchContext struct {
	Start           int    `json:"start"`
	End             int    `json:"end"`
	SurroundingText string `json:"surrounding_text"`
}

// Assessment is the result of analyzing one input string.
type Assessment struct {
	Evidence      []Evidence `json:"detected_commands"`
	RiskScore     float64    `json:"risk_score"`
	RiskLevel     RiskLevel  `json:"risk_level"`
	RequiresBlock bool       `json:"requires_block"`
	// BlockedTexts lists the HIGH and CRITICAL matches in detection order.
	// Duplicates are kept.
	BlockedTexts []string `json:"blocked_commands"`
	// Filtered is the redacted content, or the input itself when the
	// assessment does not require a block.
	Filtered string `json:"filtered_content"`
}

// Categories returns the distinct categories present in the evidence, in
// first-seen order.
func (a Assessment) Categories() []catalog.Category {
	seen := make(map[catalog.Category]bool)
	var out []catalog.Category
	for _, e := range a.Evidence {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}
