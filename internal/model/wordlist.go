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
	"sort"
	"strings"

	"wordbook/internal/domain"
	"wordbook/internal/store"
)

// WordList serves the list screen. The full name list is memoised until Invalidate.
type WordList struct {
	store  TermStore
	cache  []string
	cached bool
	gen    uint64
}

// NewWordList returns a model over s. s may be nil when no database was found.
func NewWordList(s TermStore) *WordList { return &WordList{store: s} }

// Available reports whether the store can be queried.
func (m *WordList) Available(ctx context.Context) bool { return available(ctx, m.store) }

// Invalidate drops the memoised name list. Call it after every mutation of the terms table.
func (m *WordList) Invalidate() {
	m.cache, m.cached = nil, false
	m.gen++
}

// Generation increases with every Invalidate.
func (m *WordList) Generation() uint64 { return m.gen }

// AllTerms returns the distinct names ordered by name.
func (m *WordList) AllTerms(ctx context.Context) []string {
	if m.cached {
		return append([]string(nil), m.cache...)
	}
	if m.store == nil {
		return nil
	}
	names := m.store.Names(ctx, store.Filter{})
	if names == nil {
		// Failure: do not memoise so the next call retries.
		return nil
	}
	m.cache, m.cached = names, true
	return append([]string(nil), names...)
}

// ByCategory returns names whose stored category equals the row key, ordered by name.
func (m *WordList) ByCategory(ctx context.Context, row domain.KanaRow) []string {
	if !row.Valid() || m.store == nil {
		return nil
	}
	return m.store.Names(ctx, store.Filter{Category: string(row)})
}

// ByYomiRow returns names whose reading starts with a member of row, ordered by reading.
func (m *WordList) ByYomiRow(ctx context.Context, row domain.KanaRow) []string {
	if !row.Valid() || m.store == nil {
		return nil
	}
	return m.store.Names(ctx, store.Filter{YomiInitials: row.Members(), OrderByYomi: true})
}

// ByTag returns names carrying tag as one of their comma separated tags.
func (m *WordList) ByTag(ctx context.Context, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" || m.store == nil {
		return nil
	}
	terms := m.store.FetchAll(ctx, store.Filter{Tag: tag})
	if terms == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !domain.HasListItem(t.Tag, tag) {
			continue
		}
		if _, dup := seen[t.WordName]; dup {
			continue
		}
		seen[t.WordName] = struct{}{}
		out = append(out, t.WordName)
	}
	return out
}

// Search filters the cached list by case-insensitive containment. An empty query returns
// the full list.
func (m *WordList) Search(ctx context.Context, query string) []string {
	all := m.AllTerms(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	out := make([]string, 0, len(all))
	for _, n := range all {
		if strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
		}
	}
	return out
}

// Detail returns the term called name (lowest id when the name repeats).
func (m *WordList) Detail(ctx context.Context, name string) (domain.Term, bool) {
	if m.store == nil || strings.TrimSpace(name) == "" {
		return domain.Term{}, false
	}
	return m.store.FetchOne(ctx, store.Filter{Name: name})
}

// Add inserts a term and invalidates the cache on success.
func (m *WordList) Add(ctx context.Context, in domain.TermFields) (int64, bool) {
	if m.store == nil {
		return 0, false
	}
	id, ok := m.store.Insert(ctx, in)
	if ok {
		m.Invalidate()
	}
	return id, ok
}

// Update patches a term and invalidates the cache on success.
func (m *WordList) Update(ctx context.Context, id int64, p domain.TermPatch) bool {
	if m.store == nil || p.Empty() {
		return false
	}
	ok := m.store.Update(ctx, id, p)
	if ok {
		m.Invalidate()
	}
	return ok
}

// Delete removes a term and invalidates the cache on success.
func (m *WordList) Delete(ctx context.Context, id int64) bool {
	if m.store == nil {
		return false
	}
	ok := m.store.Delete(ctx, id)
	if ok {
		m.Invalidate()
	}
	return ok
}

// Tags lists every distinct tag item, sorted.
func (m *WordList) Tags(ctx context.Context) []string {
	if m.store == nil {
		return nil
	}
	return splitDistinct(m.store.DistinctValues(ctx, "tag"))
}

// Categories lists the selectable kana rows.
func (m *WordList) Categories() []domain.KanaRow { return domain.Rows() }

// Stats returns the total and per-category counts.
func (m *WordList) Stats(ctx context.Context) (domain.Stats, bool) {
	if m.store == nil {
		return domain.Stats{}, false
	}
	return m.store.Stats(ctx)
}

func splitDistinct(raw []string) []string {
	set := make(map[string]struct{})
	for _, v := range raw {
		for _, item := range domain.SplitList(v) {
			set[item] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
