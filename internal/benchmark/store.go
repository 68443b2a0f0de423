package benchmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Store persists benchmark runs. LoadAll returns runs oldest first and
// LoadLatest returns nil when nothing has been saved yet.
type Store interface {
	Save(run Run) error
	LoadLatest() (*Run, error)
	LoadAll() ([]Run, error)
}

// FileStore keeps the whole history as one JSON array on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path, creating its parent
// directory. The file itself is created on the first Save.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory %s: %w", dir, err)
		}
	}
	return &FileStore{path: path}, nil
}

// Save appends run to the history. The file is rewritten through a
// temporary sibling and renamed into place, so readers never see a
// half-written history.
func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(append(runs, run), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []Run{}, nil
	case err != nil:
		return nil, err
	case len(data) == 0:
		return []Run{}, nil
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("corrupt history %s: %w", s.path, err)
	}
	slices.SortStableFunc(runs, func(a, b Run) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return runs, nil
}

func (s *FileStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return &runs[len(runs)-1], nil
}

// LoadPair returns the two most recent runs, oldest first. prev is nil when
// fewer than two runs are stored and latest is nil when none are.
func LoadPair(s Store) (prev, latest *Run, err error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	switch n := len(runs); n {
	case 0:
		return nil, nil, nil
	case 1:
		return nil, &runs[0], nil
	default:
		return &runs[n-2], &runs[n-1], nil
	}
}
