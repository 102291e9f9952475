package analyzer

import "github.com/gzhole/veritas/internal/catalog"

// overrideConfidence is the confidence above which a match in an
// unconditional category blocks regardless of the aggregate score.
const overrideConfidence = 0.7

// unconditionalCategories block on a single confident match even when the
// averaged score is diluted by benign text.
var unconditionalCategories = map[catalog.Category]bool{
	catalog.Shell:               true,
	catalog.System:              true,
	catalog.PromptInjection:     true,
	catalog.DataExfiltration:    true,
	catalog.PrivilegeEscalation: true,
}

// RequiresBlock applies the block policy: HIGH or CRITICAL risk blocks, and
// so does any unconditional-category match with confidence above 0.7.
func RequiresBlock(level RiskLevel, evidence []Evidence) bool {
	if level == catalog.Critical || level == catalog.High {
		return true
	}
	for _, e := range evidence {
		if unconditionalCategories[e.Category] && e.Confidence > overrideConfidence {
			return true
		}
	}
	return false
}

// BlockedTexts returns the matched text of every HIGH or CRITICAL match in
// detection order. The same text flagged by two rules appears twice.
func BlockedTexts(evidence []Evidence) []string {
	blocked := []string{}
	for _, e := range evidence {
		if e.Severity >= catalog.High {
			blocked = append(blocked, e.Text)
		}
	}
	return blocked
}
