// Package fs stores the authoritative theme source and its audit snapshot
// on the local filesystem.
package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/themecheck"
	"github.com/fwojciec/themecheck/snapshot"
)

// Store reads and writes whole files. Writes go to a temporary file in the
// same directory and are renamed into place.
type Store struct {
	// Perm is the mode of newly created files. Zero means 0644.
	Perm os.FileMode
}

// NewStore creates a Store with default permissions.
func NewStore() *Store {
	return &Store{Perm: 0644}
}

// Read returns the contents of path.
func (s *Store) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists reports whether path names an existing regular file.
func (s *Store) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Write replaces the contents of path, creating parent directories as
// needed. An existing file keeps its mode.
func (s *Store) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	perm := s.Perm
	if perm == 0 {
		perm = 0644
	}
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// DeriveApply returns what ApplyBack would write to sourcePath, along with
// the current source. It fails with a themecheck.SyncError when no
// snapshot exists.
func (s *Store) DeriveApply(snapshotPath, sourcePath, identifier string) (derived, current []byte, err error) {
	ok, err := s.Exists(snapshotPath)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, &themecheck.SyncError{Path: snapshotPath, Reason: "no snapshot; run sync first"}
	}

	generated, err := s.Read(snapshotPath)
	if err != nil {
		return nil, nil, err
	}
	current, err = s.Read(sourcePath)
	if err != nil {
		return nil, nil, err
	}
	derived, err = snapshot.Derive(generated, current, identifier)
	if err != nil {
		return nil, nil, fmt.Errorf("derive %s from %s: %w", sourcePath, snapshotPath, err)
	}
	return derived, current, nil
}

// ApplyBack overwrites the theme literal in sourcePath with the one in the
// snapshot at snapshotPath. The rest of the source is kept. The last
// writer wins; nothing is merged.
func (s *Store) ApplyBack(snapshotPath, sourcePath, identifier string) error {
	derived, _, err := s.DeriveApply(snapshotPath, sourcePath, identifier)
	if err != nil {
		return err
	}
	return s.Write(sourcePath, derived)
}
