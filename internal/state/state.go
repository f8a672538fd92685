/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package state keeps small JSON snapshots of screen state (list filter, flashcard cursor)
// on disk between runs.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const fileExt = ".json"

// Store is a diskv-backed key/value store of JSON documents.
type Store struct {
	d    *diskv.Diskv
	base string
}

// Open returns a store rooted at dir. The directory is created on first write.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("state dir is required")
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPath,
		InverseTransform:  pathToKey,
		CacheSizeMax:      64 * 1024,
	}), base: dir}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string { return s.base }

// Save writes v as JSON under key.
func (s *Store) Save(key string, v any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.d.Write(key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Load decodes the document under key into v. It reports false when nothing was saved.
func (s *Store) Load(key string, v any) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	b, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

// Keys lists saved keys in sorted order.
func (s *Store) Keys(ctx context.Context) []string {
	if _, err := os.Stat(s.base); err != nil {
		return nil
	}
	var out []string
	for k := range s.d.Keys(ctx.Done()) {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\.`) {
		return fmt.Errorf("invalid state key %q", key)
	}
	return nil
}

func keyToPath(key string) *diskv.PathKey {
	return &diskv.PathKey{FileName: key + fileExt}
}

func pathToKey(pk *diskv.PathKey) string {
	return strings.TrimSuffix(pk.FileName, fileExt)
}
