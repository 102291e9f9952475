// Package hidden reports characters in model output that render differently
// from how they are read by software: invisible joiners, bidirectional
// overrides, tag characters, raw control bytes and Latin look-alikes. The
// report is attached to analyses for review and does not affect decisions.
package hidden

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind names a class of hidden character.
type Kind string

const (
	ZeroWidth   Kind = "zero-width"
	Bidi        Kind = "bidi-override"
	Tag         Kind = "tag-char"
	Control     Kind = "control-char"
	InvalidUTF8 Kind = "invalid-utf8"
	Homoglyph   Kind = "homoglyph"
)

// Finding is one hidden character located in the input.
type Finding struct {
	Kind      Kind   `json:"kind"`
	Codepoint string `json:"codepoint"`
	// Position is a byte offset into the scanned text.
	Position    int    `json:"position"`
	Description string `json:"description"`
}

// Report is the result of scanning one text.
type Report struct {
	Clean    bool      `json:"clean"`
	Findings []Finding `json:"findings"`
	// Visible is the input with every invisible or control character removed.
	// Homoglyphs are kept.
	Visible string `json:"-"`
}

// Count returns the number of findings of the given kind.
func (r Report) Count(k Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Scan inspects text for hidden characters.
func Scan(text string) Report {
	report := Report{Clean: true, Findings: []Finding{}}
	var visible strings.Builder
	visible.Grow(len(text))

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		if r == utf8.RuneError && size == 1 {
			report.add(Finding{
				Kind:        InvalidUTF8,
				Codepoint:   fmt.Sprintf("0x%02X", text[i]),
				Position:    i,
				Description: "Invalid UTF-8 byte",
			})
			i++
			continue
		}

		kind, desc := classify(r)
		switch kind {
		case "":
			visible.WriteRune(r)
		case Homoglyph:
			report.add(Finding{Kind: kind, Codepoint: codepoint(r), Position: i, Description: desc})
			visible.WriteRune(r)
		default:
			report.add(Finding{Kind: kind, Codepoint: codepoint(r), Position: i, Description: desc})
		}
		i += size
	}

	report.Visible = visible.String()
	return report
}

func (r *Report) add(f Finding) {
	r.Clean = false
	r.Findings = append(r.Findings, f)
}

func codepoint(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

func classify(r rune) (Kind, string) {
	switch {
	case zeroWidth[r]:
		return ZeroWidth, "Zero-width character hides content from display"
	case bidiControls[r]:
		return Bidi, "Bidirectional control reorders displayed text"
	case r >= 0xE0001 && r <= 0xE007F:
		return Tag, "Unicode tag character can carry invisible instructions"
	case isControl(r):
		return Control, "Control character in text output"
	}
	if latin, ok := confusables[r]; ok {
		script := "Cyrillic"
		if unicode.Is(unicode.Greek, r) {
			script = "Greek"
		}
		return Homoglyph, fmt.Sprintf("%s letter resembles Latin '%c'", script, latin)
	}
	return "", ""
}

// isControl reports C0, DEL and C1 controls other than tab, newline and
// carriage return.
func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r <= 0x1F || (r >= 0x7F && r <= 0x9F)
}

var zeroWidth = map[rune]bool{
	'\u200B': true, // zero width space
	'\u200C': true, // zero width non-joiner
	'\u200D': true, // zero width joiner
	'\u200E': true, // left-to-right mark
	'\u200F': true, // right-to-left mark
	'\u2060': true, // word joiner
	'\u180E': true, // mongolian vowel separator
	'\uFEFF': true, // byte order mark
}

var bidiControls = map[rune]bool{
	'\u202A': true, '\u202B': true, '\u202C': true, '\u202D': true, '\u202E': true,
	'\u2066': true, '\u2067': true, '\u2068': true, '\u2069': true,
}

// confusables maps Cyrillic and Greek letters to the Latin letter they
// imitate.
var confusables = map[rune]rune{
	'\u0430': 'a', '\u0410': 'A', '\u0412': 'B', '\u0441': 'c', '\u0421': 'C',
	'\u0435': 'e', '\u0415': 'E', '\u041D': 'H', '\u0456': 'i', '\u0406': 'I',
	'\u041A': 'K', '\u041C': 'M', '\u043E': 'o', '\u041E': 'O', '\u0440': 'p',
	'\u0420': 'P', '\u0422': 'T', '\u0445': 'x', '\u0425': 'X', '\u0443': 'y',
	'\u0423': 'Y',

	'\u0391': 'A', '\u0392': 'B', '\u0395': 'E', '\u0397': 'H', '\u0399': 'I',
	'\u039A': 'K', '\u039C': 'M', '\u039D': 'N', '\u039F': 'O', '\u03BF': 'o',
	'\u03A1': 'P', '\u03A4': 'T', '\u03A7': 'X', '\u03A5': 'Y', '\u0396': 'Z',
}
