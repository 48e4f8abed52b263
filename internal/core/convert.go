package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ConvertOptions controls the convert operation.
type ConvertOptions struct {
	DryRun bool
	Files  []string // limit to these vault-relative files
	Jobs   int      // parallel workers; <= 1 means sequential
}

// ConvertResult reports the outcome of the convert operation.
type ConvertResult struct {
	Processed int
	Changed   []string // files whose content was rewritten
	Failed    []string // files skipped due to I/O errors
}

// convertibleFiles returns the set of vault-relative markdown files Convert
// operates on, after exclude filtering.
func convertibleFiles(vaultPath string) (map[string]bool, error) {
	cfg, err := LoadConfig(vaultPath)
	if err != nil {
		return nil, err
	}
	files, err := collectMarkdownFiles(vaultPath)
	if err != nil {
		return nil, err
	}
	files = filterExcludes(files, cfg.Exclude.Paths)
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[f] = true
	}
	return set, nil
}

// Convert rewrites internal links to the external format across the vault.
// A file that cannot be read or written is logged and skipped; the batch
// continues. The resolver cache is shared across all workers.
func Convert(vaultPath string, opts ConvertOptions, logger *slog.Logger) (*ConvertResult, error) {
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

	if len(opts.Files) > 0 {
		fileSet := make(map[string]bool, len(files))
		for _, f := range files {
			fileSet[f] = true
		}
		scoped := make([]string, 0, len(opts.Files))
		for _, f := range opts.Files {
			np := NormalizePath(f)
			if !fileSet[np] {
				return nil, fmt.Errorf("file not found or excluded: %s", f)
			}
			scoped = append(scoped, np)
		}
		files = scoped
	}

	rw := NewRewriter(vaultPath, cfg, logger)

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	result := &ConvertResult{Processed: len(files)}
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(jobs)

	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			full := filepath.Join(vaultPath, filepath.FromSlash(rel))
			info, err := os.Stat(full)
			if err != nil {
				logger.Warn("skipping note", "note", rel, "error", err)
				mu.Lock()
				result.Failed = append(result.Failed, rel)
				mu.Unlock()
				return nil
			}
			content, err := os.ReadFile(full)
			if err != nil {
				logger.Warn("skipping note", "note", rel, "error", err)
				mu.Lock()
				result.Failed = append(result.Failed, rel)
				mu.Unlock()
				return nil
			}

			updated := rw.RewriteNote(rel, string(content))
			if updated == string(content) {
				return nil
			}

			if !opts.DryRun {
				if err := writeFilePreservePerm(full, []byte(updated), info.Mode().Perm()); err != nil {
					logger.Warn("write failed", "note", rel, "error", err)
					mu.Lock()
					result.Failed = append(result.Failed, rel)
					mu.Unlock()
					return nil
				}
			}
			mu.Lock()
			result.Changed = append(result.Changed, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(result.Changed)
	sort.Strings(result.Failed)
	return result, nil
}
