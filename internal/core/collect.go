package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectOptions controls attachment collection.
type CollectOptions struct {
	OutDir     string // destination root for collected attachments (required)
	Subdir     string // subdirectory inside OutDir; default "obsidian"
	Prefix     string // link prefix for rewritten attachment links
	ImagesOnly bool   // collect only image resources
	DryRun     bool
}

// CollectResult reports the outcome of a collect run.
type CollectResult struct {
	Notes   int      // notes rewritten
	Copied  []string // attachment basenames copied to OutDir
	Missing []string // references that could not be resolved
}

// Collect copies every local attachment referenced from the vault's notes
// into a flat directory (for upload to an image host) and rewrites the
// referencing links to prefix/filename. Unresolvable references are logged
// and left untouched.
func Collect(vaultPath string, opts CollectOptions, logger *slog.Logger) (*CollectResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OutDir == "" {
		return nil, fmt.Errorf("collect: output directory is required")
	}
	if opts.Subdir == "" {
		opts.Subdir = "obsidian"
	}

	cfg, err := LoadConfig(vaultPath)
	if err != nil {
		return nil, err
	}
	files, err := collectMarkdownFiles(vaultPath)
	if err != nil {
		return nil, err
	}
	files = filterExcludes(files, cfg.Exclude.Paths)
	sort.Strings(files)

	destDir := filepath.Join(opts.OutDir, opts.Subdir)
	if !opts.DryRun {
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return nil, err
		}
	}

	resolver := NewResolver(vaultPath, cfg.AllExtensions())
	result := &CollectResult{}
	copied := make(map[string]bool)

	for _, rel := range files {
		full := filepath.Join(vaultPath, filepath.FromSlash(rel))
		info, err := os.Stat(full)
		if err != nil {
			logger.Warn("skipping note", "note", rel, "error", err)
			continue
		}
		content, err := os.ReadFile(full)
		if err != nil {
			logger.Warn("skipping note", "note", rel, "error", err)
			continue
		}

		updated, changed := collectNote(cfg, resolver, opts, vaultPath, rel, string(content), destDir, copied, result, logger)
		if !changed {
			continue
		}
		if !opts.DryRun {
			if err := writeFilePreservePerm(full, []byte(updated), info.Mode().Perm()); err != nil {
				logger.Warn("write failed", "note", rel, "error", err)
				continue
			}
		}
		result.Notes++
	}

	sort.Strings(result.Copied)
	sort.Strings(result.Missing)
	return result, nil
}

func collectNote(cfg Config, resolver *Resolver, opts CollectOptions, vaultPath, notePath, content, destDir string, copied map[string]bool, result *CollectResult, logger *slog.Logger) (string, bool) {
	shielded, spans := ShieldCode(content)
	matches := ExtractLinks(shielded)
	if len(matches) == 0 {
		return content, false
	}

	noteDir := filepath.Join(vaultPath, filepath.Dir(filepath.FromSlash(notePath)))

	var b strings.Builder
	cursor := 0
	changed := false
	for _, m := range matches {
		b.WriteString(shielded[cursor:m.Start])
		cursor = m.End

		replacement, ok := collectMatch(cfg, resolver, opts, vaultPath, notePath, noteDir, m, destDir, copied, result, logger)
		if ok {
			changed = true
			b.WriteString(replacement)
		} else {
			b.WriteString(m.Raw)
		}
	}
	b.WriteString(shielded[cursor:])

	if !changed {
		return content, false
	}
	return RestoreCode(b.String(), spans), true
}

func collectMatch(cfg Config, resolver *Resolver, opts CollectOptions, vaultPath, notePath, noteDir string, m LinkMatch, destDir string, copied map[string]bool, result *CollectResult, logger *slog.Logger) (string, bool) {
	if m.Path == "" || IsWebLink(m.Path) || strings.HasPrefix(m.Path, "obsidian://") {
		return "", false
	}

	rel, err := resolver.Resolve(m.Path, noteDir)
	if err != nil {
		logger.Warn("attachment not found", "resource", m.Path, "note", notePath)
		result.Missing = append(result.Missing, m.Path)
		return "", false
	}
	if strings.EqualFold(filepath.Ext(rel), ".md") {
		return "", false // notes stay in the vault
	}
	if opts.ImagesOnly && !cfg.IsImage(rel) {
		return "", false
	}

	name := filepath.Base(rel)
	if !copied[name] {
		if !opts.DryRun {
			src := filepath.Join(vaultPath, filepath.FromSlash(rel))
			if err := copyFilePreserveTimes(src, filepath.Join(destDir, name)); err != nil {
				logger.Warn("copy failed", "resource", rel, "error", err)
				result.Missing = append(result.Missing, m.Path)
				return "", false
			}
		}
		copied[name] = true
		result.Copied = append(result.Copied, name)
	}

	url := EncodeSpaces(opts.Prefix + name)
	alt := m.Desc
	if alt == "" {
		alt = name
	}
	if cfg.IsImage(rel) {
		if m.Size != "" {
			return fmt.Sprintf("![%s|%s](%s)", alt, m.Size, url), true
		}
		return fmt.Sprintf("![%s](%s)", alt, url), true
	}
	return fmt.Sprintf("[%s](%s)", alt, url), true
}
