package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store keeps collector snapshots as pretty-printed JSON documents on
// the local filesystem, one file per snapshot name.
type Store struct {
	basePath string
}

func New(basePath string) (*Store, error) {
	if basePath == "" {
		basePath = "./data"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &Store{basePath: basePath}, nil
}

func (s *Store) WriteJSON(_ context.Context, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}

	path := filepath.Join(s.basePath, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace snapshot %s: %w", name, err)
	}
	return nil
}

func (s *Store) ReadJSON(_ context.Context, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.basePath, name))
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal snapshot %s: %w", name, err)
	}
	return nil
}
