package core

import (
	"strings"
	"testing"
)

func TestShieldCodeRoundTrip(t *testing.T) {
	text := "before\n```go\n[[not a link]]\n```\nafter `[[inline]]` end\n"

	shielded, spans := ShieldCode(text)
	if strings.Contains(shielded, "[[not a link]]") {
		t.Error("fenced block content leaked into shielded text")
	}
	if strings.Contains(shielded, "`[[inline]]`") {
		t.Error("inline code leaked into shielded text")
	}
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	if !strings.Contains(shielded, "__CODE_BLOCK_1__") || !strings.Contains(shielded, "__CODE_BLOCK_2__") {
		t.Errorf("placeholders missing in %q", shielded)
	}

	restored := RestoreCode(shielded, spans)
	if restored != text {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", restored, text)
	}
}

func TestShieldFences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		shielded bool // true if the marker ends up inside a placeholder
	}{
		{"backtick fence", "```\nMARKER\n```", true},
		{"tilde fence", "~~~\nMARKER\n~~~", true},
		{"longer opener", "````\nMARKER\n````", true},
		{"closer longer than opener", "```\nMARKER\n`````", true},
		{"closer shorter than opener", "````\nMARKER\n```\nstill open", false},
		{"mismatched fence char", "```\nMARKER\n~~~\nstill open", false},
		{"language tag", "```python\nMARKER\n```", true},
		{"unmatched opener", "```\nMARKER", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shielded, spans := ShieldCode(tt.text)
			gone := !strings.Contains(shielded, "MARKER")
			if gone != tt.shielded {
				t.Errorf("shielded=%v, want %v (shielded text %q)", gone, tt.shielded, shielded)
			}
			if RestoreCode(shielded, spans) != tt.text {
				t.Error("restore did not reproduce input")
			}
		})
	}
}

func TestShieldCodeLinksSurvive(t *testing.T) {
	text := "keep [[Link]] but not `[[code link]]`"
	shielded, _ := ShieldCode(text)
	if !strings.Contains(shielded, "[[Link]]") {
		t.Error("prose link was shielded")
	}
	if strings.Contains(shielded, "[[code link]]") {
		t.Error("code link was not shielded")
	}
}
