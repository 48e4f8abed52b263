package core

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CopyTree recursively copies src into dst, preserving permission bits and
// modification times. Files whose name ends with one of ignoreSuffixes are
// skipped. Directory mtimes are fixed after their contents are written,
// since writing into a directory bumps its mtime.
func CopyTree(src, dst string, ignoreSuffixes []string) error {
	type dirTime struct {
		path string
		info os.FileInfo
	}
	var dirs []dirTime

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return err
			}
			dirs = append(dirs, dirTime{path: target, info: info})
			return nil
		}

		for _, suffix := range ignoreSuffixes {
			if strings.HasSuffix(d.Name(), suffix) {
				return nil
			}
		}
		return copyFilePreserveTimes(path, target)
	})
	if err != nil {
		return err
	}

	// Deepest directories last in the walk; restore times in reverse so
	// parent fixes aren't invalidated by child writes.
	for i := len(dirs) - 1; i >= 0; i-- {
		mt := dirs[i].info.ModTime()
		if err := os.Chtimes(dirs[i].path, mt, mt); err != nil {
			return err
		}
	}
	return nil
}

// copyFilePreserveTimes copies one file, carrying over permission bits and
// the modification time.
func copyFilePreserveTimes(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	mt := info.ModTime()
	return os.Chtimes(dst, mt, mt)
}
