package analyzer

import (
	"unicode/utf8"

	"github.com/gzhole/veritas/internal/catalog"
)

// contextWindow is the number of characters kept on each side of a match.
const contextWindow = 20

// Matcher scans text against every rule of a catalog. Each rule is evaluated
// independently, so overlapping matches from different rules are all kept.
type Matcher struct {
	catalog *catalog.Catalog
}

// NewMatcher creates a Matcher over an immutable catalog.
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// Match returns one Evidence per non-overlapping match of every rule, ordered
// by category, then rule, then position in the text.
func (m *Matcher) Match(text string) []Evidence {
	if text == "" {
		return nil
	}

	total := utf8.RuneCountInString(text)
	var evidence []Evidence

	m.catalog.Each(func(rule catalog.Rule) {
		for _, loc := range rule.Regexp().FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			matched := text[start:end]

			e := Evidence{
				Text:        matched,
				Category:    rule.Category,
				Severity:    rule.Severity,
				Confidence:  Confidence(utf8.RuneCountInString(matched), total),
				Pattern:     rule.Pattern,
				Description: rule.Description,
				Context: MatchContext{
					Start:           start,
					End:             end,
					SurroundingText: surrounding(text, start, end),
				},
			}
			if isCommandCategory(rule.Category) {
				e.Executable = Executable(matched)
			}
			evidence = append(evidence, e)
		}
	})

	return evidence
}

// surrounding returns text[start:end] widened by up to contextWindow runes on
// each side, clamped to the bounds of text.
func surrounding(text string, start, end int) string {
	lo := start
	for i := 0; i < contextWindow && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < contextWindow && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return text[lo:hi]
}
