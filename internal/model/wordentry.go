/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package model

import (
	"context"
	"errors"
	"strings"

	"wordbook/internal/domain"
	"wordbook/internal/validation"
)

// ErrCreateFailed is returned when a valid entry could not be stored.
var ErrCreateFailed = errors.New("create term failed")

// ErrNoDatabase is returned when there is no reachable database to store into.
var ErrNoDatabase = errors.New("database not available")

// EntryForm is the registration form. Maker is stored in the tag column.
type EntryForm struct {
	WordName string `json:"word_name" validate:"required,max=100"`
	Yomi     string `json:"yomi" validate:"max=100"`
	Explain  string `json:"explain" validate:"required,max=2000"`
	Category string `json:"category" validate:"max=100"`
	Maker    string `json:"maker" validate:"max=100"`
}

func (f EntryForm) trimmed() EntryForm {
	return EntryForm{
		WordName: strings.TrimSpace(f.WordName),
		Yomi:     strings.TrimSpace(f.Yomi),
		Explain:  strings.TrimSpace(f.Explain),
		Category: strings.TrimSpace(f.Category),
		Maker:    strings.TrimSpace(f.Maker),
	}
}

// EditForm is the detail edit form of the list screen.
type EditForm struct {
	WordName string `json:"word_name" validate:"required,max=100"`
	Yomi     string `json:"yomi" validate:"max=100"`
	Explain  string `json:"explain" validate:"max=2000"`
	Tag      string `json:"tag" validate:"max=200"`
	Category string `json:"category" validate:"max=100"`
}

// Validate checks the trimmed form.
func (f EditForm) Validate() error {
	return validation.Struct(f.trimmed())
}

// Patch turns the form into a full overwrite of the editable columns.
func (f EditForm) Patch() domain.TermPatch {
	t := f.trimmed()
	return domain.TermPatch{
		WordName: domain.Str(t.WordName),
		Yomi:     domain.Str(t.Yomi),
		Explain:  domain.Str(t.Explain),
		Tag:      domain.Str(t.Tag),
		Category: domain.Str(t.Category),
	}
}

func (f EditForm) trimmed() EditForm {
	return EditForm{
		WordName: strings.TrimSpace(f.WordName),
		Yomi:     strings.TrimSpace(f.Yomi),
		Explain:  strings.TrimSpace(f.Explain),
		Tag:      strings.TrimSpace(f.Tag),
		Category: strings.TrimSpace(f.Category),
	}
}

// EditFormOf prefills an edit form from a stored term.
func EditFormOf(t domain.Term) EditForm {
	return EditForm{WordName: t.WordName, Yomi: t.Yomi, Explain: t.Explain, Tag: t.Tag, Category: t.Category}
}

var (
	defaultCategories = []string{"生物", "物理", "数学", "歴史"}
	defaultMakers     = []string{"松下", "日立", "東芝", "ソニー", "シャープ", "三井", "三菱", "住友", "安田"}
)

// WordEntry backs the registration screen.
type WordEntry struct {
	store TermStore
}

// NewWordEntry returns a model over s.
func NewWordEntry(s TermStore) *WordEntry { return &WordEntry{store: s} }

// Create validates f and inserts it. Validation failures come back as *validation.Error.
func (m *WordEntry) Create(ctx context.Context, f EntryForm) (int64, error) {
	f = f.trimmed()
	if err := validation.Struct(f); err != nil {
		return 0, err
	}
	if !available(ctx, m.store) {
		return 0, ErrNoDatabase
	}
	id, ok := m.store.Insert(ctx, domain.TermFields{
		WordName: f.WordName,
		Yomi:     f.Yomi,
		Explain:  f.Explain,
		Tag:      f.Maker,
		Category: f.Category,
	})
	if !ok {
		return 0, ErrCreateFailed
	}
	return id, nil
}

// Categories lists the stored categories, or a default set when none exist yet.
func (m *WordEntry) Categories(ctx context.Context) []string {
	if m.store != nil {
		if v := splitDistinct(m.store.DistinctValues(ctx, "category")); len(v) > 0 {
			return v
		}
	}
	return append([]string(nil), defaultCategories...)
}

// Makers lists the known makers, or a default set when none are stored.
func (m *WordEntry) Makers(ctx context.Context) []string {
	if m.store != nil {
		if v := splitDistinct(m.store.DistinctValues(ctx, "tag")); len(v) > 0 {
			return v
		}
	}
	return append([]string(nil), defaultMakers...)
}
