package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a Store backed by one file per key under a root directory.
// Key names are not filesystem-safe (they contain ':'), so each file is named
// by the url-safe base64 of its key.
type File struct {
	mu   sync.Mutex
	root string
}

const fileExt = ".json"

// NewFile constructs a filesystem store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		dir = "petpaldata"
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &File{root: dir}, nil
}

func (s *File) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key)) + fileExt
	return filepath.Join(s.root, name)
}

func (s *File) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (s *File) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	dst := s.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *File) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (s *File) RemoveMany(ctx context.Context, keys []string) error {
	for _, k := range keys {
		if err := s.Remove(ctx, k); err != nil {
			return err
		}
	}
	return nil
}

func (s *File) Keys(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list storage root: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(e.Name(), fileExt))
		if err != nil {
			continue // foreign file, not ours
		}
		keys = append(keys, string(raw))
	}
	return keys, nil
}

func (s *File) Close() error { return nil }
