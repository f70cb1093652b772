package seed

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Applier receives reloaded seed data. It is expected to validate the data and
// leave its state untouched when it returns an error.
type Applier interface {
	ReplaceAll(data Data) error
}

// Reloader watches a seed file and pushes every change into an Applier.
type Reloader struct {
	path     string
	target   Applier
	debounce time.Duration
}

// NewReloader creates a reloader for path. Rapid successive writes within
// debounce are collapsed into a single reload.
func NewReloader(path string, target Applier, debounce time.Duration) *Reloader {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Reloader{path: path, target: target, debounce: debounce}
}

// ReloadOnce loads the file and applies it.
func (r *Reloader) ReloadOnce() error {
	data, err := Load(r.path)
	if err != nil {
		return err
	}
	if err := r.target.ReplaceAll(data); err != nil {
		return fmt.Errorf("seed file %s rejected: %w", r.path, err)
	}
	return nil
}

// Run watches the file until ctx is cancelled. The containing directory is
// watched rather than the file so editors that replace the file on save keep
// working.
func (r *Reloader) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(r.path)
	if err != nil {
		return fmt.Errorf("failed to resolve seed path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch seed directory: %w", err)
	}
	log.Printf("Watching seed file %s for changes", absPath)

	name := filepath.Base(absPath)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Println("Seed reloader shutting down.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				log.Printf("Seed file %s removed; keeping current data", absPath)
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := r.ReloadOnce(); err != nil {
				log.Printf("Error reloading seed file: %v", err)
				continue
			}
			log.Printf("Seed file %s reloaded", absPath)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Seed watcher error: %v", err)
		}
	}
}
