package core

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractHeadings returns the text of every heading in a markdown document.
func ExtractHeadings(content []byte) []string {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, string(h.Text(content)))
		}
		return ast.WalkContinue, nil
	})
	return out
}

// normalizeAnchor folds an anchor or heading for comparison: lowercase,
// collapsed inner whitespace.
func normalizeAnchor(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// hasHeading reports whether anchor names one of the document's headings.
func hasHeading(headings []string, anchor string) bool {
	want := normalizeAnchor(anchor)
	for _, h := range headings {
		if normalizeAnchor(h) == want {
			return true
		}
	}
	return false
}
