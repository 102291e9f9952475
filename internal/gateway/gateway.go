// Package gateway wraps the detection engine with the request-level concerns
// of the service: identifiers, timestamps, policy echo, hidden character
// reports, counters, caching and the audit trail.
package gateway

import (
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/gzhole/veritas/internal/analyzer"
	"github.com/gzhole/veritas/internal/catalog"
	"github.com/gzhole/veritas/internal/hidden"
	"github.com/gzhole/veritas/internal/logger"
)

// DefaultPolicy is reported when a request names no policy.
const DefaultPolicy = "default"

// FileAnalysisPolicy names the enforcement mode in file_analysis. It is fixed:
// the request policy is echoed in policy_applied only.
const FileAnalysisPolicy = "block_dangerous_commands"

// Gateway is safe for concurrent use. Counters live for the life of the
// process and are not persisted.
type Gateway struct {
	engine  *analyzer.Engine
	cache   *expirable.LRU[string, analyzer.Assessment]
	audit   *logger.AuditLogger
	now     func() time.Time
	newID   func() string
	started time.Time

	total   atomic.Int64
	blocked atomic.Int64
	hits    atomic.Int64
}

type Option func(*Gateway)

// WithCache keeps up to size assessments for ttl, keyed by a content hash.
// A size below 1 disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(g *Gateway) {
		if size < 1 {
			g.cache = nil
			return
		}
		g.cache = expirable.NewLRU[string, analyzer.Assessment](size, nil, ttl)
	}
}

// WithAuditLogger records every analysis to the given audit log.
func WithAuditLogger(l *logger.AuditLogger) Option {
	return func(g *Gateway) { g.audit = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// WithIDGenerator replaces the UUID generator, for tests.
func WithIDGenerator(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

// New creates a gateway over engine. A nil engine uses the built-in catalog.
func New(engine *analyzer.Engine, opts ...Option) *Gateway {
	if engine == nil {
		engine = analyzer.NewEngine(nil)
	}
	g := &Gateway{
		engine: engine,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	g.started = g.now()
	return g
}

// Catalog returns the catalog behind the engine.
func (g *Gateway) Catalog() *catalog.Catalog {
	return g.engine.Catalog()
}

// Analyze assesses req.Content and returns the full report.
func (g *Gateway) Analyze(req Request) AnalysisResponse {
	now := g.now()
	policy := req.policy()
	a := g.assess(req.Content)
	scan := hidden.Scan(req.Content)

	resp := AnalysisResponse{
		ID:               g.newID(),
		Content:          req.Content,
		DetectedCommands: a.Evidence,
		RiskScore:        a.RiskScore,
		RiskLevel:        a.RiskLevel,
		RequiresReview:   a.RequiresBlock,
		BlockedCommands:  reportedBlocked(a),
		PolicyApplied:    policy,
		Timestamp:        now,
		FileAnalysis: FileAnalysis{
			TotalThreats:     len(a.Evidence),
			Blocked:          a.RequiresBlock,
			AnalysisTime:     now,
			Policy:           FileAnalysisPolicy,
			HiddenCharacters: scan.Findings,
		},
	}

	g.record("analyze", resp.ID, req, a, len(scan.Findings), now)
	return resp
}

// Filter assesses req.Content and returns the redacted content.
func (g *Gateway) Filter(req Request) FilterResponse {
	now := g.now()
	a := g.assess(req.Content)

	resp := FilterResponse{
		OriginalContent: req.Content,
		FilteredContent: a.Filtered,
		Blocked:         a.RequiresBlock,
		RiskLevel:       a.RiskLevel,
		BlockedCommands: reportedBlocked(a),
		SafeToExecute:   !a.RequiresBlock,
		Timestamp:       now,
	}

	g.record("filter", "", req, a, 0, now)
	return resp
}

// Stats snapshots the request counters.
func (g *Gateway) Stats() Stats {
	total := g.total.Load()
	blocked := g.blocked.Load()

	var rate float64
	if total > 0 {
		rate = float64(blocked) / float64(total)
	}
	cat := g.engine.Catalog()
	return Stats{
		TotalRequests:   total,
		BlockedRequests: blocked,
		BlockRate:       rate,
		CacheHits:       g.hits.Load(),
		PatternsLoaded:  len(cat.Categories()),
		RulesLoaded:     cat.Len(),
		StartedAt:       g.started,
		UptimeSeconds:   g.now().Sub(g.started).Seconds(),
	}
}

// assess returns the engine's assessment, from cache when possible. Cached
// assessments are shared between callers and must not be modified.
func (g *Gateway) assess(content string) analyzer.Assessment {
	if g.cache == nil {
		return g.engine.Analyze(content)
	}

	key := contentKey(content)
	if a, ok := g.cache.Get(key); ok {
		g.hits.Add(1)
		return a
	}
	a := g.engine.Analyze(content)
	g.cache.Add(key, a)
	return a
}

func (g *Gateway) record(op, id string, req Request, a analyzer.Assessment, hiddenChars int, now time.Time) {
	g.total.Add(1)
	if a.RequiresBlock {
		g.blocked.Add(1)
	}

	fields := logrus.Fields{
		"op":         op,
		"risk_level": a.RiskLevel.String(),
		"risk_score": fmt.Sprintf("%.3f", a.RiskScore),
		"evidence":   len(a.Evidence),
		"blocked":    a.RequiresBlock,
	}
	if id != "" {
		fields["id"] = id
	}
	logrus.WithFields(fields).Debug("Content analyzed")

	if g.audit == nil {
		return
	}

	categories := make([]string, 0, len(a.Evidence))
	for _, c := range a.Categories() {
		categories = append(categories, c.String())
	}
	event := logger.AuditEvent{
		Timestamp:     now.UTC().Format(time.RFC3339),
		ID:            id,
		Operation:     op,
		Policy:        req.policy(),
		RiskScore:     a.RiskScore,
		RiskLevel:     a.RiskLevel.String(),
		Blocked:       a.RequiresBlock,
		BlockedCount:  len(reportedBlocked(a)),
		EvidenceCount: len(a.Evidence),
		Categories:    categories,
		HiddenChars:   hiddenChars,
		Content:       req.Content,
		Source:        req.Source,
	}
	if err := g.audit.Log(event); err != nil {
		logrus.WithError(err).WithField("path", g.audit.Path()).Warn("Failed to write audit event")
	}
}

// reportedBlocked is the blocked list callers see: empty unless the content
// requires a block.
func reportedBlocked(a analyzer.Assessment) []string {
	if !a.RequiresBlock {
		return []string{}
	}
	return a.BlockedTexts
}

func contentKey(content string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(content)))
}
