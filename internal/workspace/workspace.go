package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Dir is a flat directory of disposable files named by random ids.
type Dir struct {
	root string
}

// Open creates root if it does not exist.
func Open(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create dir %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) Root() string { return d.root }

// NewID returns a fresh id for a group of related files.
func (d *Dir) NewID() string {
	return uuid.NewString()
}

// Path joins id and ext inside the directory. ext includes the dot.
func (d *Dir) Path(id, ext string) string {
	return filepath.Join(d.root, id+ext)
}

// Save writes r to a new file and returns the number of bytes written.
// A partially written file is removed.
func (d *Dir) Save(path string, r io.Reader) (int64, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}

// Remove deletes the given files. Files that are already gone are not an error.
func Remove(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sweep removes regular files whose modification time is older than ttl.
// It returns how many were removed.
func (d *Dir) Sweep(ttl time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return 0, fmt.Errorf("read dir %s: %w", d.root, err)
	}

	cutoff := now.Add(-ttl)
	removed := 0
	var errs []error

	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed concurrently by its request
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := Remove(filepath.Join(d.root, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}
