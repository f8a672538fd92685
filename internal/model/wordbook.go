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

	"wordbook/internal/domain"
	"wordbook/internal/store"
)

// Wordbook tracks the term shown on the flashcard screen and moves through the table by id.
type Wordbook struct {
	store   TermStore
	current int64
	has     bool
}

// NewWordbook returns a model with no selection.
func NewWordbook(s TermStore) *Wordbook { return &Wordbook{store: s} }

// Available reports whether the store can be queried.
func (m *Wordbook) Available(ctx context.Context) bool { return available(ctx, m.store) }

// CurrentID returns the selected id, if any.
func (m *Wordbook) CurrentID() (int64, bool) { return m.current, m.has }

// Current loads the selected term from the store.
func (m *Wordbook) Current(ctx context.Context) (domain.Term, bool) {
	if !m.has || m.store == nil {
		return domain.Term{}, false
	}
	return m.store.FetchOne(ctx, store.Filter{ID: m.current})
}

// LoadByName selects the term called name.
func (m *Wordbook) LoadByName(ctx context.Context, name string) (domain.Term, bool) {
	if m.store == nil || name == "" {
		return domain.Term{}, false
	}
	t, ok := m.store.FetchOne(ctx, store.Filter{Name: name})
	if ok {
		m.current, m.has = t.ID, true
	}
	return t, ok
}

// LoadByID selects the term with id.
func (m *Wordbook) LoadByID(ctx context.Context, id int64) (domain.Term, bool) {
	if m.store == nil || id <= 0 {
		return domain.Term{}, false
	}
	t, ok := m.store.FetchOne(ctx, store.Filter{ID: id})
	if ok {
		m.current, m.has = t.ID, true
	}
	return t, ok
}

// ResetToFirst selects the smallest id. It reports false on an empty table.
func (m *Wordbook) ResetToFirst(ctx context.Context) bool {
	if m.store == nil {
		return false
	}
	id, ok := m.store.FirstID(ctx)
	if !ok {
		m.current, m.has = 0, false
		return false
	}
	m.current, m.has = id, true
	return true
}

// Next moves to the smallest id greater than the current one.
// It reports false, leaving the selection alone, at the end or without a selection.
func (m *Wordbook) Next(ctx context.Context) bool {
	if !m.has || m.store == nil {
		return false
	}
	id, ok := m.store.NextID(ctx, m.current)
	if !ok {
		return false
	}
	m.current = id
	return true
}

// Previous moves to the largest id less than the current one.
func (m *Wordbook) Previous(ctx context.Context) bool {
	if !m.has || m.store == nil {
		return false
	}
	id, ok := m.store.PrevID(ctx, m.current)
	if !ok {
		return false
	}
	m.current = id
	return true
}

// Update patches the selected term.
func (m *Wordbook) Update(ctx context.Context, p domain.TermPatch) bool {
	if !m.has || m.store == nil || p.Empty() {
		return false
	}
	return m.store.Update(ctx, m.current, p)
}

// Delete removes the selected term and moves to its successor, else its predecessor,
// else clears the selection.
func (m *Wordbook) Delete(ctx context.Context) bool {
	if !m.has || m.store == nil {
		return false
	}
	id := m.current
	if !m.store.Delete(ctx, id) {
		return false
	}
	m.moveFrom(ctx, id)
	return true
}

// Reselect repairs a selection whose term no longer exists, for instance after it was
// deleted from another screen. It reports whether a term is selected afterwards.
func (m *Wordbook) Reselect(ctx context.Context) bool {
	if !m.has || !available(ctx, m.store) {
		return false
	}
	if _, ok := m.store.FetchOne(ctx, store.Filter{ID: m.current}); ok {
		return true
	}
	m.moveFrom(ctx, m.current)
	return m.has
}

// moveFrom selects the successor of id, else its predecessor, else nothing.
func (m *Wordbook) moveFrom(ctx context.Context, id int64) {
	if next, ok := m.store.NextID(ctx, id); ok {
		m.current = next
	} else if prev, ok := m.store.PrevID(ctx, id); ok {
		m.current = prev
	} else {
		m.current, m.has = 0, false
	}
}
