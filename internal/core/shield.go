package core

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeSpan is one shielded code region: the placeholder that replaced it and
// the original text it must be restored to.
type CodeSpan struct {
	Placeholder string
	Text        string
}

var inlineCodeRe = regexp.MustCompile("(?s)`[^`]+?`")

// ShieldCode replaces fenced code blocks and inline code with numbered
// placeholders so link rewriting never touches code content.
//
// Fences open with a run of 3+ backticks or tildes at the start of a line
// (optionally followed by a language tag) and close with a run of the same
// character at least as long as the opener. An opener with no matching close
// is passed through unshielded rather than rejected.
func ShieldCode(text string) (string, []CodeSpan) {
	var spans []CodeSpan
	n := 0

	placeholder := func(code string) string {
		n++
		p := fmt.Sprintf("__CODE_BLOCK_%d__", n)
		spans = append(spans, CodeSpan{Placeholder: p, Text: code})
		return p
	}

	shielded := shieldFences(text, placeholder)
	shielded = inlineCodeRe.ReplaceAllStringFunc(shielded, placeholder)
	return shielded, spans
}

// RestoreCode replaces each placeholder with its saved span, in first-seen
// order. Correct only because placeholder tokens never appear verbatim inside
// code spans and no rewriting step introduces them into prose.
func RestoreCode(text string, spans []CodeSpan) string {
	for _, s := range spans {
		text = strings.Replace(text, s.Placeholder, s.Text, 1)
	}
	return text
}

// shieldFences replaces fenced blocks line by line. A closing fence must use
// the same character as the opener with a run at least as long.
func shieldFences(text string, placeholder func(string) string) string {
	lines := strings.Split(text, "\n")
	var out []string

	for i := 0; i < len(lines); i++ {
		ch, open := fenceRun(lines[i])
		if open < 3 {
			out = append(out, lines[i])
			continue
		}
		closed := -1
		for j := i + 1; j < len(lines); j++ {
			c, run := fenceRun(lines[j])
			if c == ch && run >= open && strings.TrimRight(lines[j], "\r \t") == strings.Repeat(string(ch), run) {
				closed = j
				break
			}
		}
		if closed < 0 {
			// Unmatched opener: best-effort passthrough.
			out = append(out, lines[i])
			continue
		}
		block := strings.Join(lines[i:closed+1], "\n")
		out = append(out, placeholder(block))
		i = closed
	}
	return strings.Join(out, "\n")
}

// fenceRun returns the fence character and its leading run length for a line,
// or (0, 0) when the line does not start with a backtick/tilde run.
func fenceRun(line string) (byte, int) {
	if line == "" {
		return 0, 0
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return 0, 0
	}
	run := 0
	for run < len(line) && line[run] == ch {
		run++
	}
	return ch, run
}
