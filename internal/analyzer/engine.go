package analyzer

import (
	"github.com/gzhole/veritas/internal/catalog"
	"github.com/gzhole/veritas/internal/redact"
)

// Engine runs the full detection pipeline over a catalog: match, score,
// decide, redact. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	matcher *Matcher
}

// NewEngine creates an engine over the given catalog. A nil catalog selects
// the built-in rules.
func NewEngine(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{
		catalog: c,
		matcher: NewMatcher(c),
	}
}

// Catalog returns the catalog the engine matches against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Analyze assesses one input string. Empty input yields a LOW assessment with
// no evidence and is not an error.
func (e *Engine) Analyze(content string) Assessment {
	evidence := e.matcher.Match(content)
	if evidence == nil {
		evidence = []Evidence{}
	}

	score := RiskScore(evidence)
	level := LevelFor(score)
	block := RequiresBlock(level, evidence)
	blocked := BlockedTexts(evidence)

	filtered := content
	if block {
		filtered = redact.Filter(content, blocked)
	}

	return Assessment{
		Evidence:      evidence,
		RiskScore:     score,
		RiskLevel:     level,
		RequiresBlock: block,
		BlockedTexts:  blocked,
		Filtered:      filtered,
	}
}
