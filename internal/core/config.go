package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the vaultlink.yaml configuration file.
type Config struct {
	// LinkPrefix is prepended to every rewritten resource path. Empty means
	// vault-relative links; "/" makes root-absolute links; a full URL makes
	// web links (e.g. a raw.githubusercontent.com prefix).
	LinkPrefix string `yaml:"link_prefix"`

	// KeepBlockAnchors appends "#^id" block references to rewritten URLs.
	// Off by default: most renderers outside Obsidian don't understand them.
	KeepBlockAnchors bool `yaml:"keep_block_anchors"`

	// ImageDir is the note-adjacent directory images are expected to live in
	// (used by relocate). Default "res".
	ImageDir string `yaml:"image_dir"`

	// Extensions maps a category (image, document, audio, video, archive)
	// to its file extensions. Empty categories fall back to the defaults.
	Extensions map[string][]string `yaml:"extensions"`

	Exclude ExcludeConfig `yaml:"exclude"`
}

// ExcludeConfig holds exclusion patterns from the config file.
type ExcludeConfig struct {
	Paths []string `yaml:"paths"`
}

// extensionCategories fixes iteration order over the extension table.
var extensionCategories = []string{"image", "document", "audio", "video", "archive"}

func defaultExtensions() map[string][]string {
	return map[string][]string{
		"image":    {"png", "jpg", "jpeg", "gif", "bmp", "tiff", "webp", "svg"},
		"document": {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "md"},
		"audio":    {"mp3", "wav", "ogg", "flac", "m4a"},
		"video":    {"mp4", "mov", "avi", "mkv", "webm"},
		"archive":  {"zip", "rar", "7z", "tar", "gz"},
	}
}

// LoadConfig reads vaultlink.yaml from the vault root.
// Returns the default Config and nil error if the file does not exist.
func LoadConfig(vaultPath string) (Config, error) {
	cfg := Config{ImageDir: "res"}
	p := filepath.Join(vaultPath, "vaultlink.yaml")
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Extensions = defaultExtensions()
			return cfg, nil
		}
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("vaultlink.yaml: %w", err)
	}
	if cfg.ImageDir == "" {
		cfg.ImageDir = "res"
	}
	defaults := defaultExtensions()
	if cfg.Extensions == nil {
		cfg.Extensions = defaults
	} else {
		for _, cat := range extensionCategories {
			if len(cfg.Extensions[cat]) == 0 {
				cfg.Extensions[cat] = defaults[cat]
			}
		}
	}
	if err := validateGlobPatterns(cfg.Exclude.Paths); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// AllExtensions returns every known extension, in fixed category order.
func (c Config) AllExtensions() []string {
	var out []string
	for _, cat := range extensionCategories {
		out = append(out, c.Extensions[cat]...)
	}
	return out
}

// FileType returns the category for a path's extension, or "other".
func (c Config) FileType(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "other"
	}
	for _, cat := range extensionCategories {
		for _, e := range c.Extensions[cat] {
			if e == ext {
				return cat
			}
		}
	}
	return "other"
}

// IsImage reports whether path has an image extension.
func (c Config) IsImage(path string) bool {
	return c.FileType(path) == "image"
}

// validateGlobPatterns checks that none of the patterns use unsupported character classes.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.Contains(p, "[") {
			return fmt.Errorf("unsupported glob pattern (character class): %s", p)
		}
	}
	return nil
}

// filterExcludes removes files matching any of the given glob patterns.
func filterExcludes(files []string, patterns []string) []string {
	if len(patterns) == 0 {
		return files
	}
	result := make([]string, 0, len(files))
	for _, f := range files {
		excluded := false
		for _, p := range patterns {
			if globMatch(p, f) {
				excluded = true
				break
			}
		}
		if !excluded {
			result = append(result, f)
		}
	}
	return result
}
