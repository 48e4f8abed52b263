package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound reports that no candidate file exists for a reference.
var ErrNotFound = errors.New("resource not found")

// ErrEscapesVault reports a "/"- or "./"-prefixed reference that resolves
// outside the vault root.
var ErrEscapesVault = errors.New("resource path escapes vault")

type resolveKey struct {
	path string // space-decoded raw reference
	dir  string // absolute directory of the referencing note
}

type resolveEntry struct {
	rel string
	err error
}

// Resolver locates a referenced resource inside a vault and returns its
// vault-relative path. Results, including failures, are memoized per
// (reference, note directory) so the full-tree fallback scan runs at most
// once per unique key. Safe for concurrent use.
type Resolver struct {
	vault string
	exts  []string

	mu    sync.Mutex
	cache map[resolveKey]resolveEntry

	// stat is the existence probe, swappable in tests.
	stat func(path string) bool
}

// NewResolver creates a Resolver rooted at vaultPath. exts is the ordered
// list of extensions tried when a reference omits its own.
func NewResolver(vaultPath string, exts []string) *Resolver {
	return &Resolver{
		vault: vaultPath,
		exts:  exts,
		cache: make(map[resolveKey]resolveEntry),
		stat:  fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Resolve finds the file referenced by rawPath from a note in noteDir
// (absolute). It tries, in order: the note-relative and vault-root joins,
// the prefix-specific candidate, extension completion on each candidate, and
// finally a full recursive basename search under the vault root. The first
// hit wins and its vault-relative path is returned.
func (r *Resolver) Resolve(rawPath, noteDir string) (string, error) {
	decoded := DecodeSpaces(rawPath)

	key := resolveKey{path: decoded, dir: noteDir}
	r.mu.Lock()
	if e, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return e.rel, e.err
	}
	r.mu.Unlock()

	rel, err := r.resolve(decoded, noteDir)

	r.mu.Lock()
	r.cache[key] = resolveEntry{rel: rel, err: err}
	r.mu.Unlock()
	return rel, err
}

func (r *Resolver) resolve(decoded, noteDir string) (string, error) {
	ref := filepath.FromSlash(decoded)
	candidates := []string{
		filepath.Join(noteDir, ref),
		filepath.Join(r.vault, ref),
	}

	switch {
	case strings.HasPrefix(decoded, "/"):
		abs := filepath.Join(r.vault, strings.TrimPrefix(decoded, "/"))
		if escapesRoot(r.vault, abs) {
			return "", ErrEscapesVault
		}
		candidates = append(candidates, abs)
	case strings.HasPrefix(decoded, "./"), strings.HasPrefix(decoded, "../"):
		abs := filepath.Join(noteDir, ref)
		if escapesRoot(r.vault, abs) {
			return "", ErrEscapesVault
		}
		candidates = append(candidates, abs)
	default:
		candidates = append(candidates,
			filepath.Clean(filepath.Join(r.vault, ref)),
			filepath.Clean(filepath.Join(noteDir, ref)))
	}

	for _, c := range candidates {
		if r.stat(c) {
			return r.vaultRel(c)
		}
		for _, ext := range r.exts {
			if extended := c + "." + ext; r.stat(extended) {
				return r.vaultRel(extended)
			}
		}
	}

	if rel, ok := r.scanForBasename(filepath.Base(ref)); ok {
		return rel, nil
	}
	return "", ErrNotFound
}

func (r *Resolver) vaultRel(abs string) (string, error) {
	rel, err := filepath.Rel(r.vault, abs)
	if err != nil {
		return "", err
	}
	return NormalizePath(rel), nil
}

// scanForBasename walks the whole vault looking for a file named base or
// base.ext for a known extension. WalkDir visits entries in lexical order,
// so the first match is deterministic.
func (r *Resolver) scanForBasename(base string) (string, bool) {
	var found string
	err := filepath.WalkDir(r.vault, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == dataDirName {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		match := name == base
		for _, ext := range r.exts {
			if match {
				break
			}
			match = name == base+"."+ext
		}
		if match && r.stat(path) {
			rel, relErr := filepath.Rel(r.vault, path)
			if relErr != nil {
				return nil
			}
			found = NormalizePath(rel)
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil || found == "" {
		return "", false
	}
	return found, true
}
