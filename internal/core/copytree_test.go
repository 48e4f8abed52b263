package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyTree(t *testing.T) {
	src := newTestVault(t, map[string]string{
		"a.md":        "alpha",
		"sub/b.md":    "beta",
		"sub/c.tmp":   "temp",
		"res/img.png": "img",
	})
	old := time.Date(2020, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(filepath.Join(src, "a.md"), old, old); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(filepath.Join(src, "sub"), old, old); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "mirror")
	if err := CopyTree(src, dst, []string{".tmp"}); err != nil {
		t.Fatal(err)
	}

	for rel, want := range map[string]string{
		"a.md":        "alpha",
		"sub/b.md":    "beta",
		"res/img.png": "img",
	} {
		got, err := os.ReadFile(filepath.Join(dst, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("%s: %v", rel, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", rel, got, want)
		}
	}

	if _, err := os.Stat(filepath.Join(dst, "sub", "c.tmp")); !os.IsNotExist(err) {
		t.Error("ignored suffix was copied")
	}

	info, err := os.Stat(filepath.Join(dst, "a.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(old) {
		t.Errorf("file mtime = %v, want %v", info.ModTime(), old)
	}
	dirInfo, err := os.Stat(filepath.Join(dst, "sub"))
	if err != nil {
		t.Fatal(err)
	}
	if !dirInfo.ModTime().Equal(old) {
		t.Errorf("dir mtime = %v, want %v", dirInfo.ModTime(), old)
	}
}
