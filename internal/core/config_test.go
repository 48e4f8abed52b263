package core

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LinkPrefix != "" {
		t.Errorf("LinkPrefix = %q, want empty", cfg.LinkPrefix)
	}
	if cfg.KeepBlockAnchors {
		t.Error("KeepBlockAnchors should default to false")
	}
	if cfg.ImageDir != "res" {
		t.Errorf("ImageDir = %q, want res", cfg.ImageDir)
	}
	if !reflect.DeepEqual(cfg.Extensions, defaultExtensions()) {
		t.Error("Extensions should default to the built-in table")
	}
}

func TestLoadConfigFile(t *testing.T) {
	vault := t.TempDir()
	yaml := `
link_prefix: "https://raw.example.com/repo/"
keep_block_anchors: true
image_dir: attachments
extensions:
  image: [png, webp]
exclude:
  paths:
    - "drafts/*"
`
	if err := os.WriteFile(filepath.Join(vault, "vaultlink.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(vault)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LinkPrefix != "https://raw.example.com/repo/" {
		t.Errorf("LinkPrefix = %q", cfg.LinkPrefix)
	}
	if !cfg.KeepBlockAnchors {
		t.Error("KeepBlockAnchors not read")
	}
	if cfg.ImageDir != "attachments" {
		t.Errorf("ImageDir = %q", cfg.ImageDir)
	}
	if !reflect.DeepEqual(cfg.Extensions["image"], []string{"png", "webp"}) {
		t.Errorf("image extensions = %v", cfg.Extensions["image"])
	}
	// Unset categories keep their defaults.
	if !reflect.DeepEqual(cfg.Extensions["document"], defaultExtensions()["document"]) {
		t.Errorf("document extensions = %v", cfg.Extensions["document"])
	}
	if !reflect.DeepEqual(cfg.Exclude.Paths, []string{"drafts/*"}) {
		t.Errorf("exclude paths = %v", cfg.Exclude.Paths)
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	vault := t.TempDir()
	if err := os.WriteFile(filepath.Join(vault, "vaultlink.yaml"), []byte("link_prefix: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(vault); err == nil || !strings.Contains(err.Error(), "vaultlink.yaml") {
		t.Errorf("want yaml error naming the file, got %v", err)
	}
}

func TestLoadConfigBadGlob(t *testing.T) {
	vault := t.TempDir()
	yaml := "exclude:\n  paths:\n    - \"[abc]*.md\"\n"
	if err := os.WriteFile(filepath.Join(vault, "vaultlink.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(vault); err == nil || !strings.Contains(err.Error(), "unsupported glob") {
		t.Errorf("want glob validation error, got %v", err)
	}
}

func TestFileType(t *testing.T) {
	cfg := Config{Extensions: defaultExtensions()}
	tests := []struct {
		path string
		want string
	}{
		{"a/b/photo.PNG", "image"},
		{"report.pdf", "document"},
		{"song.mp3", "audio"},
		{"clip.mov", "video"},
		{"backup.tar", "archive"},
		{"script.py", "other"},
		{"noext", "other"},
	}
	for _, tt := range tests {
		if got := cfg.FileType(tt.path); got != tt.want {
			t.Errorf("FileType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
	if !cfg.IsImage("x.webp") || cfg.IsImage("x.pdf") {
		t.Error("IsImage misclassified")
	}
}

func TestFilterExcludes(t *testing.T) {
	files := []string{"a.md", "drafts/b.md", "notes/drafts.md", "notes/deep/c.md"}
	got := filterExcludes(files, []string{"drafts/*"})
	want := []string{"a.md", "notes/drafts.md", "notes/deep/c.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = filterExcludes(files, []string{"*deep*"})
	want = []string{"a.md", "drafts/b.md", "notes/drafts.md"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
