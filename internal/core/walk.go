package core

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// loadIgnoreList reads directory names to skip from a .gitignore-style file
// at the vault root. Only bare names are honored; comment and blank lines
// are dropped and a trailing "/" is stripped.
func loadIgnoreList(vaultPath string) ([]string, error) {
	f, err := os.Open(filepath.Join(vaultPath, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var ignored []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ignored = append(ignored, strings.TrimSuffix(line, "/"))
	}
	return ignored, sc.Err()
}

// collectMarkdownFiles returns vault-relative paths of every .md file under
// vaultPath, skipping the data dir and any directory named in the ignore
// list.
func collectMarkdownFiles(vaultPath string) ([]string, error) {
	ignored, err := loadIgnoreList(vaultPath)
	if err != nil {
		return nil, err
	}
	skip := make(map[string]bool, len(ignored)+1)
	for _, name := range ignored {
		skip[name] = true
	}
	skip[dataDirName] = true

	var files []string
	err = filepath.WalkDir(vaultPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != vaultPath && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			rel, err := filepath.Rel(vaultPath, path)
			if err != nil {
				return err
			}
			files = append(files, NormalizePath(rel))
		}
		return nil
	})
	return files, err
}
