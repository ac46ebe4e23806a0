package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// fileStore keeps each slot as a JSON file in one directory,
// written atomically (tmp + rename).
type fileStore struct {
	dir string
}

func newFileStore(dir string) (*fileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "minishop")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir storage dir: %w", err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Slot(name string) Slot {
	return &fileSlot{path: filepath.Join(s.dir, name+".json")}
}

func (s *fileStore) Close() error { return nil }

type fileSlot struct {
	path string
}

func (s *fileSlot) Load(_ context.Context) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (s *fileSlot) Save(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *fileSlot) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
