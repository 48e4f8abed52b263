package core

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanResult summarizes an index build.
type ScanResult struct {
	Notes   int
	Links   int
	Missing int
	Escaped int
}

// Scan parses every note in the vault and records each link with its
// resolution status in the index DB. The index is written to a temp file and
// renamed into place so a failed scan never leaves a half-built index.
func Scan(vaultPath string, logger *slog.Logger) (*ScanResult, error) {
	if logger == nil {
		logger = slog.Default()
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

	if _, err := ensureDataDir(vaultPath); err != nil {
		return nil, err
	}

	tmpPath := dbPath(vaultPath) + ".tmp"
	_ = os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	db, err := openDBAt(tmpPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return nil, err
	}

	resolver := NewResolver(vaultPath, cfg.AllExtensions())
	result := &ScanResult{}

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

		noteID, err := insertNote(db, rel, info.ModTime().Unix())
		if err != nil {
			return nil, err
		}
		result.Notes++

		shielded, _ := ShieldCode(string(content))
		noteDir := filepath.Dir(full)
		for _, m := range ExtractLinks(shielded) {
			status, resolved := classifyLink(resolver, rel, noteDir, m)
			if err := insertLink(db, noteID, m, status, resolved); err != nil {
				return nil, err
			}
			result.Links++
			switch status {
			case statusMissing:
				result.Missing++
			case statusEscaped:
				result.Escaped++
			}
		}
	}

	if err := db.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmpPath, dbPath(vaultPath)); err != nil {
		return nil, err
	}
	return result, nil
}

func classifyLink(resolver *Resolver, notePath, noteDir string, m LinkMatch) (string, string) {
	if m.Path == "" {
		// Anchor-only self link.
		return statusResolved, NormalizePath(notePath)
	}
	if IsWebLink(m.Path) || strings.HasPrefix(m.Path, "obsidian://") {
		return statusWeb, ""
	}
	rel, err := resolver.Resolve(m.Path, noteDir)
	switch {
	case err == nil:
		return statusResolved, rel
	case errors.Is(err, ErrEscapesVault):
		return statusEscaped, ""
	default:
		return statusMissing, ""
	}
}
