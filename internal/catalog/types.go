package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCategory is returned when an external category name does not
	// belong to the fixed enumeration.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNotFound is returned when a catalog lookup names a category the
	// catalog holds no rules for.
	ErrNotFound = errors.New("category not found")

	// ErrMalformedPattern is returned at catalog build time when a rule
	// pattern does not compile.
	ErrMalformedPattern = errors.New("malformed pattern")

	// ErrInvalidSeverity is returned when a rule pack names an unknown severity.
	ErrInvalidSeverity = errors.New("invalid severity")
)

// Category is a closed classification of threat types.
type Category int

const (
	Shell Category = iota
	Code
	FileOp
	Network
	System
	PromptInjection
	DataExfiltration
	SocialEngineering
	IdentityManipulation
	APIHarvesting
	PrivilegeEscalation
)

// categoryNames holds the wire names, indexed by Category. The index order is
// the iteration order used everywhere evidence ordering matters.
var categoryNames = [...]string{
	Shell:                "shell",
	Code:                 "code",
	FileOp:               "file_operation",
	Network:              "network",
	System:               "system",
	PromptInjection:      "prompt_injection",
	DataExfiltration:     "data_exfiltration",
	SocialEngineering:    "social_engineering",
	IdentityManipulation: "identity_manipulation",
	APIHarvesting:        "api_harvesting",
	PrivilegeEscalation:  "privilege_escalation",
}

// Categories returns every category in declared order.
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is part of the enumeration.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory converts an external name (case-insensitive) into a Category.
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, wire := range categoryNames {
		if wire == n {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, name)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Severity is the static weight class of a rule. The same scale is used for
// the risk level of an assessment.
type Severity int

const (
	Low Severity = iota
	Medium
	High
	Critical
)

var severityNames = [...]string{
	Low:      "low",
	Medium:   "medium",
	High:     "high",
	Critical: "critical",
}

// Valid reports whether s is one of the four severities.
func (s Severity) Valid() bool {
	return s >= 0 && int(s) < len(severityNames)
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity converts an external name (case-insensitive) into a Severity.
func ParseSeverity(name string) (Severity, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, wire := range severityNames {
		if wire == n {
			return Severity(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, name)
}

func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSeverity, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	parsed, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
