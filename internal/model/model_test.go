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
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/store"
	"wordbook/internal/validation"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Create(context.Background(), filepath.Join(t.TempDir(), store.DBFileName))
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return s
}

// seedScenario inserts the three reference terms in id order 1, 2, 3.
func seedScenario(t *testing.T, s *store.Store) {
	t.Helper()
	for _, f := range []domain.TermFields{
		{WordName: "Bergmann's rule", Yomi: "べ"},
		{WordName: "Allen's rule", Yomi: "あ"},
		{WordName: "Gaussian", Yomi: "が"},
	} {
		if _, ok := s.Insert(context.Background(), f); !ok {
			t.Fatalf("seed %q failed", f.WordName)
		}
	}
}

func TestThreeTermScenario(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedScenario(t, s)
	wl := NewWordList(s)
	wb := NewWordbook(s)

	if got := wl.ByYomiRow(ctx, domain.RowA); fmt.Sprint(got) != "[Allen's rule]" {
		t.Fatalf("row あ = %v", got)
	}
	if got := wl.Search(ctx, "law"); len(got) != 0 {
		t.Fatalf("search law = %v, want empty", got)
	}
	if _, ok := wb.LoadByName(ctx, "Gaussian"); !ok {
		t.Fatalf("LoadByName Gaussian failed")
	}
	if !wb.Previous(ctx) {
		t.Fatalf("Previous from Gaussian should move")
	}
	cur, ok := wb.Current(ctx)
	if !ok || cur.ID != 2 || cur.WordName != "Allen's rule" {
		t.Fatalf("after Previous got %+v", cur)
	}

	before := wl.ByYomiRow(ctx, domain.RowA)
	all := wl.AllTerms(ctx)
	if _, ok := wl.Add(ctx, domain.TermFields{WordName: "Zipf's law", Yomi: "じ"}); !ok {
		t.Fatalf("Add failed")
	}
	if got := wl.AllTerms(ctx); len(got) != len(all)+1 {
		t.Fatalf("new term missing after Add: %v", got)
	}
	if after := wl.ByYomiRow(ctx, domain.RowA); fmt.Sprint(after) != fmt.Sprint(before) {
		t.Fatalf("row あ changed: %v -> %v", before, after)
	}
	if got := wl.Search(ctx, "LAW"); fmt.Sprint(got) != "[Zipf's law]" {
		t.Fatalf("case-insensitive search = %v", got)
	}
}

func TestWordListCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	wl := NewWordList(s)
	if got := wl.AllTerms(ctx); len(got) != 0 {
		t.Fatalf("empty store listed %v", got)
	}
	g := wl.Generation()
	// Direct store write bypasses the model: cached list is stale until Invalidate.
	if _, ok := s.Insert(ctx, domain.TermFields{WordName: "外部"}); !ok {
		t.Fatalf("insert")
	}
	if got := wl.AllTerms(ctx); len(got) != 0 {
		t.Fatalf("expected memoised empty list, got %v", got)
	}
	wl.Invalidate()
	if wl.Generation() != g+1 {
		t.Fatalf("generation not bumped")
	}
	if got := wl.AllTerms(ctx); fmt.Sprint(got) != "[外部]" {
		t.Fatalf("after Invalidate got %v", got)
	}
	id, _ := s.FirstID(ctx)
	if !wl.Delete(ctx, id) {
		t.Fatalf("Delete failed")
	}
	if got := wl.AllTerms(ctx); len(got) != 0 {
		t.Fatalf("deleted term still listed: %v", got)
	}
}

func TestWordListCategoryAndTag(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	wl := NewWordList(s)
	for _, f := range []domain.TermFields{
		{WordName: "アリ", Yomi: "あり", Tag: "昆虫, 動物", Category: "あ"},
		{WordName: "カラス", Yomi: "からす", Tag: "鳥，動物", Category: "か"},
		{WordName: "動物園", Yomi: "どうぶつえん", Tag: "施設"},
		{WordName: "動物学", Yomi: "どうぶつがく", Tag: "動物学"},
		{WordName: "鴨", Yomi: "かも", Category: "か"},
		{WordName: "キツネ", Yomi: "きつね", Category: "か"},
	} {
		if _, ok := wl.Add(ctx, f); !ok {
			t.Fatalf("add %s", f.WordName)
		}
	}
	if got := wl.ByCategory(ctx, domain.RowKa); fmt.Sprint(got) != "[カラス キツネ 鴨]" {
		t.Fatalf("ByCategory(か) should be in name order, got %v", got)
	}
	if got := wl.ByYomiRow(ctx, domain.RowKa); fmt.Sprint(got) != "[鴨 カラス キツネ]" {
		t.Fatalf("ByYomiRow(か) should be in reading order, got %v", got)
	}
	if got := wl.ByCategory(ctx, domain.KanaRow("x")); got != nil {
		t.Fatalf("invalid row should give nil, got %v", got)
	}
	if got := wl.ByTag(ctx, "動物"); fmt.Sprint(got) != "[アリ カラス]" {
		t.Fatalf("ByTag(動物) = %v", got)
	}
	tags := wl.Tags(ctx)
	want := map[string]bool{"昆虫": true, "動物": true, "鳥": true, "施設": true, "動物学": true}
	if len(tags) != len(want) {
		t.Fatalf("Tags = %v", tags)
	}
	for _, tg := range tags {
		if !want[tg] {
			t.Fatalf("unexpected tag %q in %v", tg, tags)
		}
	}
	if len(wl.Categories()) != 10 {
		t.Fatalf("Categories = %v", wl.Categories())
	}
	st, ok := wl.Stats(ctx)
	if !ok || st.Total != 6 || st.ByCategory["か"] != 3 {
		t.Fatalf("Stats = %+v ok=%v", st, ok)
	}
}

func TestWordListWithoutStore(t *testing.T) {
	ctx := context.Background()
	wl := NewWordList(nil)
	if wl.Available(ctx) {
		t.Fatalf("nil store reported available")
	}
	if wl.AllTerms(ctx) != nil || wl.Search(ctx, "") != nil {
		t.Fatalf("nil store should list nothing")
	}
	if _, ok := wl.Add(ctx, domain.TermFields{WordName: "x"}); ok {
		t.Fatalf("Add on nil store should fail")
	}
}

func TestWordbookNavigationBoundaries(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	wb := NewWordbook(s)
	if wb.Next(ctx) || wb.Previous(ctx) {
		t.Fatalf("navigation without selection must not move")
	}
	if wb.ResetToFirst(ctx) {
		t.Fatalf("ResetToFirst on empty table should be false")
	}
	seedScenario(t, s)
	if !wb.ResetToFirst(ctx) {
		t.Fatalf("ResetToFirst failed")
	}
	if id, _ := wb.CurrentID(); id != 1 {
		t.Fatalf("first id = %d", id)
	}
	if wb.Previous(ctx) {
		t.Fatalf("Previous at first should report false")
	}
	if !wb.Next(ctx) || !wb.Next(ctx) {
		t.Fatalf("Next should move twice")
	}
	if wb.Next(ctx) {
		t.Fatalf("Next at last should report false")
	}
	if id, _ := wb.CurrentID(); id != 3 {
		t.Fatalf("cursor moved past boundary: %d", id)
	}
}

func TestWordbookUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	seedScenario(t, s)
	wb := NewWordbook(s)
	if _, ok := wb.LoadByID(ctx, 2); !ok {
		t.Fatalf("LoadByID(2)")
	}
	if !wb.Update(ctx, domain.TermPatch{Explain: domain.Str("Allen")}) {
		t.Fatalf("Update failed")
	}
	cur, _ := wb.Current(ctx)
	if cur.Explain != "Allen" || cur.Yomi != "あ" {
		t.Fatalf("after update %+v", cur)
	}
	if !wb.Delete(ctx) {
		t.Fatalf("Delete failed")
	}
	if id, ok := wb.CurrentID(); !ok || id != 3 {
		t.Fatalf("after delete cursor = %d,%v want successor 3", id, ok)
	}
	if !wb.Delete(ctx) {
		t.Fatalf("Delete 3 failed")
	}
	if id, ok := wb.CurrentID(); !ok || id != 1 {
		t.Fatalf("after deleting last cursor = %d,%v want predecessor 1", id, ok)
	}
	if !wb.Delete(ctx) {
		t.Fatalf("Delete 1 failed")
	}
	if _, ok := wb.CurrentID(); ok {
		t.Fatalf("selection should be cleared on empty table")
	}
}

func TestWordEntryCreate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	we := NewWordEntry(s)

	_, err := we.Create(ctx, EntryForm{WordName: "  ", Explain: ""})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Message("word_name") == "" || verr.Message("explain") == "" {
		t.Fatalf("both fields should be reported: %v", verr.Fields)
	}

	id, err := we.Create(ctx, EntryForm{WordName: " 半導体 ", Explain: "電気を通す", Category: "物理", Maker: "東芝"})
	if err != nil || id <= 0 {
		t.Fatalf("Create: id=%d err=%v", id, err)
	}
	got, ok := s.FetchOne(ctx, store.Filter{ID: id})
	if !ok || got.WordName != "半導体" || got.Tag != "東芝" || got.Category != "物理" {
		t.Fatalf("stored %+v", got)
	}
	if fmt.Sprint(we.Makers(ctx)) != "[東芝]" || fmt.Sprint(we.Categories(ctx)) != "[物理]" {
		t.Fatalf("Makers/Categories from store: %v %v", we.Makers(ctx), we.Categories(ctx))
	}

	if err := os.Remove(s.Path()); err != nil {
		t.Fatalf("remove db: %v", err)
	}
	if _, err := we.Create(ctx, EntryForm{WordName: "x", Explain: "y"}); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase, got %v", err)
	}
	if len(we.Makers(ctx)) != 9 || len(we.Categories(ctx)) != 4 {
		t.Fatalf("defaults expected when store unavailable")
	}
}

func TestEditFormPatchAndValidate(t *testing.T) {
	f := EditFormOf(domain.Term{ID: 1, WordName: "x", Tag: " a , b "})
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	p := f.Patch()
	if p.Tag == nil || *p.Tag != "a , b" || p.Explain == nil || *p.Explain != "" {
		t.Fatalf("Patch = %+v", p)
	}
	f.WordName = " "
	var verr *validation.Error
	if !errors.As(f.Validate(), &verr) {
		t.Fatalf("blank name should fail validation")
	}
}
