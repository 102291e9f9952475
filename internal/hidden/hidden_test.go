package hidden

import (
	"testing"
)

func TestScan_CleanASCII(t *testing.T) {
	result := Scan("ls -la /tmp")
	if !result.Clean {
		t.Errorf("expected clean result, got %v", result.Findings)
	}
	if result.Visible != "ls -la /tmp" {
		t.Errorf("expected visible = original, got %q", result.Visible)
	}
	if result.Findings == nil {
		t.Error("findings should be an empty slice, not nil")
	}
}

func TestScan_ZeroWidth(t *testing.T) {
	result := Scan("ignore\u200B previous")

	if result.Clean {
		t.Fatal("expected a finding for zero-width space")
	}
	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(result.Findings))
	}
	f := result.Findings[0]
	if f.Kind != ZeroWidth || f.Codepoint != "U+200B" || f.Position != 6 {
		t.Errorf("unexpected finding: %+v", f)
	}
	if result.Visible != "ignore previous" {
		t.Errorf("expected zero-width removed, got %q", result.Visible)
	}
}

func TestScan_Kinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Kind
	}{
		{"bom", "\uFEFFecho hello", ZeroWidth},
		{"rtl override", "echo \u202Erm -rf /", Bidi},
		{"tag", "hi \U000E0041", Tag},
		{"null byte", "ls\x00 -la", Control},
		{"c1 control", "a\u0085b", Control},
		{"invalid utf8", "ab\xffcd", InvalidUTF8},
		{"cyrillic a", "c\u0430t secrets.txt", Homoglyph},
		{"greek omicron", "ech\u03BF hello", Homoglyph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Scan(tt.input)
			if result.Clean {
				t.Fatalf("expected findings for %q", tt.input)
			}
			if result.Findings[0].Kind != tt.want {
				t.Errorf("expected %s, got %s", tt.want, result.Findings[0].Kind)
			}
		})
	}
}

func TestScan_HomoglyphKeptInVisible(t *testing.T) {
	input := "g\u0456thub.com"
	result := Scan(input)
	if result.Visible != input {
		t.Errorf("homoglyphs should stay visible, got %q", result.Visible)
	}
	if result.Count(Homoglyph) != 1 {
		t.Errorf("expected one homoglyph, got %d", result.Count(Homoglyph))
	}
}

func TestScan_AllowsTabAndNewline(t *testing.T) {
	if result := Scan("echo\thello\r\nworld"); !result.Clean {
		t.Errorf("tab and newline should be allowed, got %v", result.Findings)
	}
}

func TestScan_Multiple(t *testing.T) {
	result := Scan("c\u0430t\u200B \u202Efile.txt")
	if len(result.Findings) != 3 {
		t.Fatalf("expected 3 findings, got %d: %v", len(result.Findings), result.Findings)
	}
	if result.Count(ZeroWidth) != 1 || result.Count(Bidi) != 1 || result.Count(Homoglyph) != 1 {
		t.Errorf("unexpected mix: %v", result.Findings)
	}
}
