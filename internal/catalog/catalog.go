package catalog

import (
	"fmt"
	"regexp"
	"sync"
)

// Rule is a single detection rule. Rules are immutable once they belong to a
// Catalog.
type Rule struct {
	Category    Category `json:"category"`
	Pattern     string   `json:"pattern"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`

	re *regexp.Regexp
}

// Regexp returns the compiled matcher for the rule. It is nil for rules that
// were never added to a Catalog.
func (r Rule) Regexp() *regexp.Regexp {
	return r.re
}

// CategoryRules is one entry of the ordered category → rules mapping.
type CategoryRules struct {
	Category Category `json:"category"`
	Rules    []Rule   `json:"rules"`
}

// Catalog is the read-only detection table. It is built once and shared by
// every analysis; all accessors return copies.
type Catalog struct {
	byCategory [][]Rule // indexed by Category
	total      int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. A built-in rule that fails to compile
// is a programming error and panics on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := build(builtinRules, nil)
		if err != nil {
			panic(fmt.Sprintf("catalog: built-in rules: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// New builds a catalog from the built-in rules followed by extra rules, for
// example rules loaded from packs. Extra rules are appended after the
// built-in rules of their category.
func New(extra ...Rule) (*Catalog, error) {
	return build(builtinRules, extra)
}

func build(base, extra []Rule) (*Catalog, error) {
	c := &Catalog{byCategory: make([][]Rule, len(categoryNames))}

	for i, r := range base {
		compiled, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Description, err)
		}
		c.add(compiled)
	}

	for i, r := range extra {
		compiled, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("extra rule %d (%s): %w", i, r.Description, err)
		}
		if compiled.re.MatchString("") {
			return nil, fmt.Errorf("extra rule %d (%s): %w: pattern %q matches the empty string",
				i, r.Description, ErrMalformedPattern, r.Pattern)
		}
		c.add(compiled)
	}

	return c, nil
}

func compileRule(r Rule) (Rule, error) {
	if !r.Category.Valid() {
		return r, fmt.Errorf("%w: %d", ErrInvalidCategory, int(r.Category))
	}
	if !r.Severity.Valid() {
		return r, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(r.Severity))
	}
	if r.Pattern == "" {
		return r, fmt.Errorf("%w: empty pattern", ErrMalformedPattern)
	}
	// Case-insensitive with multi-line anchors for every rule.
	re, err := regexp.Compile("(?im)" + r.Pattern)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrMalformedPattern, err)
	}
	r.re = re
	return r, nil
}

func (c *Catalog) add(r Rule) {
	c.byCategory[r.Category] = append(c.byCategory[r.Category], r)
	c.total++
}

// Rules returns the ordered rules registered under a category.
func (c *Catalog) Rules(cat Category) ([]Rule, error) {
	if !cat.Valid() || len(c.byCategory[cat]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cat)
	}
	out := make([]Rule, len(c.byCategory[cat]))
	copy(out, c.byCategory[cat])
	return out, nil
}

// All returns the full category → rules mapping in declared category order.
// Categories without rules are omitted.
func (c *Catalog) All() []CategoryRules {
	out := make([]CategoryRules, 0, len(c.byCategory))
	for i, rules := range c.byCategory {
		if len(rules) == 0 {
			continue
		}
		cp := make([]Rule, len(rules))
		copy(cp, rules)
		out = append(out, CategoryRules{Category: Category(i), Rules: cp})
	}
	return out
}

// Categories returns the categories that hold at least one rule.
func (c *Catalog) Categories() []Category {
	var out []Category
	for i, rules := range c.byCategory {
		if len(rules) > 0 {
			out = append(out, Category(i))
		}
	}
	return out
}

// Len returns the total number of rules.
func (c *Catalog) Len() int {
	return c.total
}

// Each calls fn for every rule in iteration order without copying. It is the
// hot path used by the matcher.
func (c *Catalog) Each(fn func(Rule)) {
	for _, rules := range c.byCategory {
		for _, r := range rules {
			fn(r)
		}
	}
}
