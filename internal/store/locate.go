/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultCandidates lists where word_master.db is looked for, in order: next to the
// executable's parent directory, next to the executable, then the working directory.
func DefaultCandidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		dir := filepath.Dir(exe)
		out = append(out,
			filepath.Join(dir, "..", DBFileName),
			filepath.Join(dir, DBFileName),
		)
	}
	return append(out, DBFileName)
}

// FindDatabase returns the first candidate that exists as a regular file.
func FindDatabase(candidates []string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		fi, err := os.Stat(c)
		if err != nil || fi.IsDir() {
			continue
		}
		return filepath.Clean(c), nil
	}
	return "", fmt.Errorf("%w: %s not found in %v", ErrUnavailable, DBFileName, candidates)
}
