package core

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestReconvertSetSkipsExcludedAndDeleted(t *testing.T) {
	vault := newTestVault(t, map[string]string{
		"Note.md":        "[[Target]]\n",
		"Target.md":      "x",
		"drafts/Wip.md":  "[[Target]]\n",
		"vaultlink.yaml": "exclude:\n  paths:\n    - \"drafts/*\"\n",
	})

	pending := map[string]bool{
		"Note.md":       true,
		"drafts/Wip.md": true,
		"Gone.md":       true,
	}
	files, err := reconvertSet(vault, pending)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"Note.md"}) {
		t.Fatalf("files = %v, want [Note.md]", files)
	}

	// The narrowed set must be convertible as a batch: an excluded note in
	// the same debounce window cannot take the others down with it.
	result, err := Convert(vault, ConvertOptions{Files: files}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(result.Changed, []string{"Note.md"}) {
		t.Errorf("Changed = %v, want [Note.md]", result.Changed)
	}
}

func TestAddDirsRecursive(t *testing.T) {
	vault := newTestVault(t, map[string]string{
		"a.md":                  "x",
		"sub/b.md":              "x",
		"sub/deep/c.md":         "x",
		".hidden/d.md":          "x",
		dataDirName + "/idx.db": "x",
	})

	w, err := fsnotify.NewWatcher()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := addDirsRecursive(w, vault); err != nil {
		t.Fatal(err)
	}

	watched := make(map[string]bool)
	for _, p := range w.WatchList() {
		rel, err := filepath.Rel(vault, p)
		if err != nil {
			t.Fatal(err)
		}
		watched[filepath.ToSlash(rel)] = true
	}

	for _, want := range []string{".", "sub", "sub/deep"} {
		if !watched[want] {
			t.Errorf("directory %s not watched (got %v)", want, watched)
		}
	}
	for _, skip := range []string{".hidden", dataDirName} {
		if watched[skip] {
			t.Errorf("directory %s should not be watched", skip)
		}
	}
}
