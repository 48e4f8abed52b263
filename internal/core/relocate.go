package core

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// RelocateOptions controls image relocation.
type RelocateOptions struct {
	SearchDir string // where to look for stray images; default: the vault root's parent
	DryRun    bool
}

// RelocateResult reports moved and unlocatable images.
type RelocateResult struct {
	Moved   []string // vault-relative destination paths
	Missing []string // image basenames that could not be located
}

// Relocate ensures every image referenced by a note lives in the note's
// adjacent image directory (cfg.ImageDir, default "res"). Images found
// elsewhere under the search dir are moved into place; links are not
// rewritten, since the expected location is what the links already point at.
func Relocate(vaultPath string, opts RelocateOptions, logger *slog.Logger) (*RelocateResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := LoadConfig(vaultPath)
	if err != nil {
		return nil, err
	}
	if opts.SearchDir == "" {
		opts.SearchDir = filepath.Dir(vaultPath)
	}

	files, err := collectMarkdownFiles(vaultPath)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	result := &RelocateResult{}
	for _, rel := range files {
		full := filepath.Join(vaultPath, filepath.FromSlash(rel))
		content, err := os.ReadFile(full)
		if err != nil {
			logger.Warn("skipping note", "note", rel, "error", err)
			continue
		}

		shielded, _ := ShieldCode(string(content))
		noteDir := filepath.Dir(full)
		imageDir := filepath.Join(noteDir, cfg.ImageDir)

		for _, m := range ExtractLinks(shielded) {
			if m.Path == "" || !cfg.IsImage(m.Path) || IsWebLink(m.Path) {
				continue
			}
			name := filepath.Base(DecodeSpaces(m.Path))
			expected := filepath.Join(imageDir, name)
			if fileExists(expected) {
				continue
			}

			found, ok := findFileUnder(opts.SearchDir, name)
			if !ok {
				logger.Warn("image not found", "image", name, "note", rel)
				result.Missing = append(result.Missing, name)
				continue
			}
			if opts.DryRun {
				result.Moved = append(result.Moved, name)
				continue
			}
			if err := os.MkdirAll(imageDir, 0o755); err != nil {
				return nil, err
			}
			if err := moveFile(found, expected); err != nil {
				logger.Warn("move failed", "image", name, "error", err)
				result.Missing = append(result.Missing, name)
				continue
			}
			logger.Info("moved image", "image", name, "to", expected)
			result.Moved = append(result.Moved, name)
		}
	}

	sort.Strings(result.Moved)
	sort.Strings(result.Missing)
	return result, nil
}

// findFileUnder walks dir looking for a file with the given basename.
func findFileUnder(dir, name string) (string, bool) {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == dataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found, found != ""
}

// moveFile renames src to dst, falling back to copy-and-remove across
// filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFilePreserveTimes(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}
