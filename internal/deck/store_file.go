// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package deck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileLocalStore implements LocalStore with one JSON file per slot in a directory.
type FileLocalStore struct {
	dir string
}

// NewFileLocalStore creates dir if needed.
func NewFileLocalStore(dir string) (*FileLocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("deck: create state dir: %w", err)
	}
	return &FileLocalStore{dir: dir}, nil
}

// Path is the file backing key.
func (store *FileLocalStore) Path(key string) string {
	return filepath.Join(store.dir, strings.ReplaceAll(key, ":", "_")+".json")
}

func (store *FileLocalStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(store.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("file_deck_get_failed: %w", err)
	}
	return data, true, nil
}

// Set replaces the slot atomically through a temporary file in the same directory.
func (store *FileLocalStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := store.Path(key)
	temp, err := os.CreateTemp(store.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file_deck_set_failed: %w", err)
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(value); err != nil {
		temp.Close()
		return fmt.Errorf("file_deck_set_failed: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("file_deck_set_failed: %w", err)
	}
	if err := os.Rename(temp.Name(), target); err != nil {
		return fmt.Errorf("file_deck_set_failed: %w", err)
	}
	return nil
}
