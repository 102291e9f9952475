package gateway

import (
	"strings"
	"time"

	"github.com/gzhole/veritas/internal/analyzer"
	"github.com/gzhole/veritas/internal/hidden"
)

// Request is one piece of content submitted for analysis.
type Request struct {
	Content string
	// Policy is echoed back in responses. It does not change analysis.
	Policy string
	// Source identifies the caller in the audit log (remote address, "cli").
	Source string
}

func (r Request) policy() string {
	if p := strings.TrimSpace(r.Policy); p != "" {
		return p
	}
	return DefaultPolicy
}

type AnalysisResponse struct {
	ID               string              `json:"id"`
	Content          string              `json:"content"`
	DetectedCommands []analyzer.Evidence `json:"detected_commands"`
	RiskScore        float64             `json:"risk_score"`
	RiskLevel        analyzer.RiskLevel  `json:"risk_level"`
	RequiresReview   bool                `json:"requires_review"`
	BlockedCommands  []string            `json:"blocked_commands"`
	PolicyApplied    string              `json:"policy_applied"`
	Timestamp        time.Time           `json:"timestamp"`
	FileAnalysis     FileAnalysis        `json:"file_analysis"`
}

type FileAnalysis struct {
	TotalThreats     int              `json:"total_threats"`
	Blocked          bool             `json:"blocked"`
	AnalysisTime     time.Time        `json:"analysis_time"`
	Policy           string           `json:"policy"`
	HiddenCharacters []hidden.Finding `json:"hidden_characters"`
}

type FilterResponse struct {
	OriginalContent string             `json:"original_content"`
	FilteredContent string             `json:"filtered_content"`
	Blocked         bool               `json:"blocked"`
	RiskLevel       analyzer.RiskLevel `json:"risk_level"`
	BlockedCommands []string           `json:"blocked_commands"`
	SafeToExecute   bool               `json:"safe_to_execute"`
	Timestamp       time.Time          `json:"timestamp"`
}

type Stats struct {
	TotalRequests   int64     `json:"total_requests"`
	BlockedRequests int64     `json:"blocked_commands"`
	BlockRate       float64   `json:"block_rate"`
	CacheHits       int64     `json:"cache_hits"`
	PatternsLoaded  int       `json:"patterns_loaded"`
	RulesLoaded     int       `json:"rules_loaded"`
	StartedAt       time.Time `json:"started_at"`
	UptimeSeconds   float64   `json:"uptime_seconds"`
}
