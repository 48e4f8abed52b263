package core

import (
	"regexp"
	"sort"
	"strings"
)

// LinkMatch is one parsed wiki or markdown link.
type LinkMatch struct {
	Kind    string // "wiki" or "markdown"
	Embed   bool   // "!"-prefixed
	Path    string // raw resource reference; empty means the current document
	Anchor  string // heading anchor, without "#"
	BlockID string // block reference, without "#^"
	Desc    string // alias / display text / image alt text
	Size    string // "W" or "WxH"
	Start   int    // byte span in the scanned text, [Start, End)
	End     int
	Raw     string // matched text, spliced back verbatim on passthrough
}

var sizeRe = regexp.MustCompile(`^\d{1,4}(x\d{1,4})?$`)

// isSizeSpec reports whether s is a "W" or "WxH" pixel spec. A pipe slot of
// this shape is always a size, never a description.
func isSizeSpec(s string) bool {
	return sizeRe.MatchString(s)
}

// ExtractLinks returns all wiki and markdown links in text, ordered by start
// offset. Matches never overlap.
func ExtractLinks(text string) []LinkMatch {
	matches := ExtractWikiLinks(text)
	matches = append(matches, ExtractMarkdownLinks(text)...)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })

	// Drop anything overlapping an earlier match.
	out := matches[:0]
	end := 0
	for _, m := range matches {
		if m.Start < end {
			continue
		}
		out = append(out, m)
		end = m.End
	}
	return out
}

// ExtractWikiLinks parses "!"? [[path#anchor|size|alias]] links.
// Pipe slots are classified by shape, so both [[p|alias|400]] and
// [[p|400|alias]] parse to the same match.
func ExtractWikiLinks(text string) []LinkMatch {
	var out []LinkMatch
	pos := 0
	for {
		idx := strings.Index(text[pos:], "[[")
		if idx < 0 {
			break
		}
		start := pos + idx
		rest := text[start+2:]
		closing := strings.Index(rest, "]]")
		if closing < 0 {
			break
		}
		inner := rest[:closing]
		pos = start + 2 + closing + 2

		m, ok := parseWikiInner(inner)
		if !ok {
			// Not a link: rescan right after the opener so a stray "[["
			// doesn't hide a real link that follows.
			pos = start + 2
			continue
		}
		m.Start = start
		m.End = start + 2 + closing + 2
		if start > 0 && text[start-1] == '!' {
			m.Embed = true
			m.Start = start - 1
		}
		m.Raw = text[m.Start:m.End]
		out = append(out, m)
	}
	return out
}

func parseWikiInner(inner string) (LinkMatch, bool) {
	if inner == "" || strings.ContainsAny(inner, "[]\n") {
		return LinkMatch{}, false
	}
	m := LinkMatch{Kind: "wiki"}

	segs := strings.Split(inner, "|")
	head := strings.TrimSpace(segs[0])

	if hash := strings.Index(head, "#"); hash >= 0 {
		m.Path = strings.TrimSpace(head[:hash])
		sub := head[hash+1:]
		if strings.HasPrefix(sub, "^") {
			m.BlockID = sub[1:]
			if m.BlockID == "" || strings.Contains(m.BlockID, "#") {
				return LinkMatch{}, false
			}
		} else {
			m.Anchor = sub
			if m.Anchor == "" || strings.ContainsAny(m.Anchor, "#^") {
				return LinkMatch{}, false
			}
		}
	} else {
		m.Path = head
	}
	if strings.ContainsAny(m.Path, "#^") {
		return LinkMatch{}, false
	}
	if m.Path == "" && m.Anchor == "" && m.BlockID == "" {
		return LinkMatch{}, false
	}

	for _, slot := range segs[1:] {
		slot = strings.TrimSpace(slot)
		switch {
		case slot == "":
		case m.Size == "" && isSizeSpec(slot):
			m.Size = slot
		case m.Desc == "":
			m.Desc = slot
		}
	}
	return m, true
}

// ExtractMarkdownLinks parses "!"? [desc|size](path#anchor) links.
func ExtractMarkdownLinks(text string) []LinkMatch {
	var out []LinkMatch
	pos := 0
	for {
		idx := strings.Index(text[pos:], "[")
		if idx < 0 {
			break
		}
		open := pos + idx
		// "[[": wikilink territory.
		if open+1 < len(text) && text[open+1] == '[' {
			pos = open + 2
			continue
		}
		mid := strings.Index(text[open:], "](")
		if mid < 0 {
			break
		}
		mid = open + mid
		closeIdx := strings.Index(text[mid+2:], ")")
		if closeIdx < 0 {
			break
		}
		closeIdx = mid + 2 + closeIdx
		pos = open + 1

		m, ok := parseMarkdownParts(text[open+1:mid], text[mid+2:closeIdx])
		if !ok {
			continue
		}
		m.Start = open
		m.End = closeIdx + 1
		if open > 0 && text[open-1] == '!' {
			m.Embed = true
			m.Start = open - 1
		}
		m.Raw = text[m.Start:m.End]
		out = append(out, m)
		pos = m.End
	}
	return out
}

func parseMarkdownParts(bracket, paren string) (LinkMatch, bool) {
	if strings.ContainsAny(bracket, "]\n") || strings.ContainsAny(paren, "()\n") {
		return LinkMatch{}, false
	}
	m := LinkMatch{Kind: "markdown"}

	// Bracket: desc, optionally "desc|size". A single size-shaped slot is a
	// size with no description.
	segs := strings.Split(bracket, "|")
	switch len(segs) {
	case 1:
		t := strings.TrimSpace(segs[0])
		if isSizeSpec(t) {
			m.Size = t
		} else {
			m.Desc = t
		}
	case 2:
		m.Desc = strings.TrimSpace(segs[0])
		size := strings.TrimSpace(segs[1])
		if !isSizeSpec(size) {
			return LinkMatch{}, false
		}
		m.Size = size
	default:
		return LinkMatch{}, false
	}

	target := strings.TrimSpace(paren)
	if hash := strings.Index(target, "#"); hash >= 0 {
		m.Path = target[:hash]
		sub := target[hash+1:]
		if strings.HasPrefix(sub, "^") {
			m.BlockID = sub[1:]
			if m.BlockID == "" || strings.Contains(m.BlockID, "#") {
				return LinkMatch{}, false
			}
		} else {
			m.Anchor = sub
			if m.Anchor == "" || strings.ContainsAny(m.Anchor, "#^") {
				return LinkMatch{}, false
			}
		}
	} else {
		m.Path = target
	}
	if strings.Contains(m.Path, "^") {
		return LinkMatch{}, false
	}
	if m.Path == "" && m.Anchor == "" && m.BlockID == "" {
		return LinkMatch{}, false
	}
	return m, true
}
