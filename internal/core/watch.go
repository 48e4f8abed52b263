package core

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce batches rapid editor write events before reconverting.
const watchDebounce = 200 * time.Millisecond

// Watch monitors the vault and reconverts changed markdown files until ctx
// is cancelled. New directories created at runtime are added to the watch
// list automatically.
func Watch(ctx context.Context, vaultPath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, vaultPath); err != nil {
		return err
	}

	logger.Info("watching vault", "root", vaultPath)

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			fire = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher stopped")
			return nil

		case <-fire:
			changed := pending
			pending = make(map[string]bool)
			files, err := reconvertSet(vaultPath, changed)
			if err != nil {
				logger.Warn("convert failed", "error", err)
				continue
			}
			if len(files) == 0 {
				continue
			}
			result, err := Convert(vaultPath, ConvertOptions{Files: files}, logger)
			if err != nil {
				logger.Warn("convert failed", "error", err)
				continue
			}
			logger.Info("reconverted", "files", len(files), "changed", len(result.Changed))

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if filepath.Base(ev.Name) != dataDirName {
						_ = addDirsRecursive(w, ev.Name)
					}
					continue
				}
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(ev.Name), ".md") {
				continue
			}
			rel, err := filepath.Rel(vaultPath, ev.Name)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			pending[NormalizePath(rel)] = true
			schedule()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// reconvertSet narrows pending changed files to those Convert accepts.
// Deleted and config-excluded notes are dropped here so one stray event
// cannot abort the whole batch; the strict scoping error stays reserved
// for the explicit -file flag.
func reconvertSet(vaultPath string, pending map[string]bool) ([]string, error) {
	eligible, err := convertibleFiles(vaultPath)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(pending))
	for f := range pending {
		if eligible[f] {
			files = append(files, f)
		}
	}
	sort.Strings(files)
	return files, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == dataDirName || (d.Name() != filepath.Base(root) && strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
