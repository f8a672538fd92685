/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package bundle reads and writes portable JSON term bundles, validated against an
// embedded JSON schema.
package bundle

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"wordbook/internal/domain"
	applog "wordbook/internal/log"
)

// Format identifies a bundle document.
const Format = "wordbook-bundle"

// Version is the bundle layout written by this build.
const Version = 1

//go:embed bundle.schema.json
var schemaJSON []byte

// Bundle is the on-disk document.
type Bundle struct {
	Format     string        `json:"format"`
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Terms      []domain.Term `json:"terms"`
}

// New wraps terms in a bundle stamped with now.
func New(terms []domain.Term, now time.Time) Bundle {
	if terms == nil {
		terms = []domain.Term{}
	}
	return Bundle{Format: Format, Version: Version, ExportedAt: now.UTC(), Terms: terms}
}

// Write encodes b as indented JSON.
func Write(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	return nil
}

// SchemaError lists every schema violation of a rejected document.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "bundle does not match schema: " + strings.Join(e.Problems, "; ")
}

// Read validates the document against the schema and decodes it.
func Read(r io.Reader) (Bundle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, fmt.Errorf("read bundle: %w", err)
	}
	if err := Validate(data); err != nil {
		return Bundle{}, err
	}
	var b Bundle
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	return b, nil
}

// Validate checks raw JSON against the bundle schema.
func Validate(data []byte) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validate: %w", err)
	}
	if result.Valid() {
		return nil
	}
	se := &SchemaError{}
	for _, e := range result.Errors() {
		se.Problems = append(se.Problems, e.String())
	}
	return se
}

// Sink receives imported terms. *model.WordList satisfies it.
type Sink interface {
	AllTerms(ctx context.Context) []string
	Add(ctx context.Context, in domain.TermFields) (int64, bool)
}

// Result counts what Import did. Failed includes blank names and store failures.
type Result struct {
	Added   int
	Skipped int
	Failed  int
}

// ErrSinkUnavailable is returned when no term could be stored.
var ErrSinkUnavailable = errors.New("import target unavailable")

// Import adds every term of b to dst. Ids in the bundle are ignored. With skipExisting,
// names already present (or repeated earlier in the bundle) are skipped.
func Import(ctx context.Context, dst Sink, b Bundle, skipExisting bool) (Result, error) {
	l := applog.WithOperation(applog.WithComponent("bundle"), "import")
	var res Result
	seen := map[string]struct{}{}
	if skipExisting {
		for _, n := range dst.AllTerms(ctx) {
			seen[n] = struct{}{}
		}
	}
	storeFailures := 0
	for _, t := range b.Terms {
		f := t.Fields()
		f.WordName = strings.TrimSpace(f.WordName)
		if f.WordName == "" {
			res.Failed++
			continue
		}
		if skipExisting {
			if _, dup := seen[f.WordName]; dup {
				res.Skipped++
				continue
			}
		}
		if _, ok := dst.Add(ctx, f); !ok {
			res.Failed++
			storeFailures++
			continue
		}
		seen[f.WordName] = struct{}{}
		res.Added++
	}
	l.Info("bundle imported", slog.Int("added", res.Added), slog.Int("skipped", res.Skipped), slog.Int("failed", res.Failed))
	if res.Added == 0 && storeFailures > 0 {
		return res, ErrSinkUnavailable
	}
	return res, nil
}
