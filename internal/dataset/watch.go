package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay coalesces the burst of write events produced when a set of
// corpus files is copied into the directory.
const settleDelay = 2 * time.Second

// Watch monitors dir for changes to corpus files and calls onChange after
// the directory has been quiet for a short settle period. It runs until ctx
// is cancelled.
//
// Only files matching the corpus naming convention (train_*, test_*, RUL_*)
// trigger a reload; editor temp files and unrelated writes are ignored.
func Watch(ctx context.Context, dir string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	slog.Info("dataset: watching for changes", "dir", dir)

	var settle *time.Timer
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	fired := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isCorpusFile(event.Name) {
				continue
			}
			// Restart the settle timer; onChange fires once the burst ends.
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(settleDelay, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case <-fired:
			slog.Info("dataset: corpus changed, reprocessing", "dir", dir)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("dataset: watcher error", "err", err)
		}
	}
}

// isCorpusFile reports whether name looks like one of the corpus triple files.
func isCorpusFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, "train_") ||
		strings.HasPrefix(base, "test_") ||
		strings.HasPrefix(base, "RUL_")
}
