package core

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Rewriter converts internal vault links to the external link format.
// One Rewriter (and its resolver cache) is shared across a batch run.
type Rewriter struct {
	vault    string
	cfg      Config
	resolver *Resolver
	log      *slog.Logger
}

// NewRewriter creates a Rewriter for the given vault root.
func NewRewriter(vaultPath string, cfg Config, logger *slog.Logger) *Rewriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Rewriter{
		vault:    vaultPath,
		cfg:      cfg,
		resolver: NewResolver(vaultPath, cfg.AllExtensions()),
		log:      logger,
	}
}

// Resolver exposes the shared resolver (collect reuses it).
func (rw *Rewriter) Resolver() *Resolver { return rw.resolver }

// RewriteNote rewrites all links in the note's content. notePath is
// vault-relative. Code blocks are shielded up front so links inside code are
// never touched, and unresolvable references pass through unchanged with a
// warning.
func (rw *Rewriter) RewriteNote(notePath, content string) string {
	shielded, spans := ShieldCode(content)
	matches := ExtractLinks(shielded)
	if len(matches) == 0 {
		return RestoreCode(shielded, spans)
	}

	noteDir := filepath.Join(rw.vault, filepath.Dir(filepath.FromSlash(notePath)))

	var b strings.Builder
	cursor := 0
	for _, m := range matches {
		b.WriteString(shielded[cursor:m.Start])
		b.WriteString(rw.rewriteMatch(notePath, noteDir, m))
		cursor = m.End
	}
	b.WriteString(shielded[cursor:])

	return RestoreCode(b.String(), spans)
}

// rewriteMatch produces the replacement text for one link, or the original
// match text when the link is external or unresolvable.
func (rw *Rewriter) rewriteMatch(notePath, noteDir string, m LinkMatch) string {
	if m.Path != "" && (IsWebLink(m.Path) || strings.HasPrefix(m.Path, "obsidian://")) {
		return m.Raw
	}

	var rel string
	if m.Path == "" {
		// Anchor-only link to the current document.
		rel = NormalizePath(notePath)
	} else {
		var err error
		rel, err = rw.resolver.Resolve(m.Path, noteDir)
		if err != nil {
			if errors.Is(err, ErrEscapesVault) {
				rw.log.Warn("resource out of bounds", "resource", m.Path, "note", notePath)
			} else {
				rw.log.Warn("resource not found", "resource", m.Path, "note", notePath)
			}
			return m.Raw
		}
	}

	url := rw.cfg.LinkPrefix + rel
	switch {
	case m.Anchor != "" && m.BlockID == "":
		url += "#" + m.Anchor
	case m.BlockID != "" && rw.cfg.KeepBlockAnchors:
		url += "#^" + m.BlockID
	}
	url = EncodeSpaces(DecodeSpaces(url))

	name := filepath.Base(rel)
	if rw.cfg.IsImage(rel) {
		return rw.imageLink(m, url, name)
	}

	display := m.Desc
	if display == "" {
		display = m.Anchor
	}
	if display == "" {
		display = m.BlockID
	}
	if display == "" {
		display = name
	}
	display = DecodeSpaces(display)
	if m.Embed {
		return fmt.Sprintf("![%s](%s)", display, url)
	}
	return fmt.Sprintf("[%s](%s)", display, url)
}

// imageLink renders an image resource: an <img> tag when embedded with an
// explicit size, a markdown image link otherwise.
func (rw *Rewriter) imageLink(m LinkMatch, url, name string) string {
	alt := m.Desc
	if alt == "" {
		alt = name
	}
	alt = DecodeSpaces(alt)

	if m.Embed && m.Size != "" {
		width, height := splitSize(m.Size)
		if height != "" {
			return fmt.Sprintf(`<img src="%s" width="%s" height="%s" alt="%s" />`, url, width, height, alt)
		}
		return fmt.Sprintf(`<img src="%s" width="%s" alt="%s" />`, url, width, alt)
	}
	if m.Size != "" {
		return fmt.Sprintf("![%s|%s](%s)", alt, m.Size, url)
	}
	return fmt.Sprintf("![%s](%s)", alt, url)
}

// splitSize splits "W" or "WxH" into width and height.
func splitSize(size string) (string, string) {
	if i := strings.Index(size, "x"); i >= 0 {
		return size[:i], size[i+1:]
	}
	return size, ""
}
