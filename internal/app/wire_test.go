/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package app

import (
	"context"
	"path/filepath"
	"testing"

	"wordbook/internal/controller"
	"wordbook/internal/domain"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/store"
)

type nopView struct{}

func (nopView) Show()                                            {}
func (nopView) Hide()                                            {}
func (nopView) ShowError(string)                                 {}
func (nopView) ShowInfo(string)                                  {}
func (nopView) ShowSuccess(string)                               {}
func (nopView) Confirm(string) bool                              { return true }
func (nopView) ShowFieldErrors(map[string]string)                {}
func (nopView) RenderFilter(controller.ListState)                {}
func (nopView) ShowDetail(controller.TermDetail, model.EditForm) {}
func (nopView) SetChoices([]string, []string)                    {}
func (nopView) ClearInputs()                                     {}

type listV struct {
	nopView
	names []string
	bound *controller.WordList
}

func (v *listV) RenderList(names []string, _ string) { v.names = names }
func (v *listV) Bind(c *controller.WordList)         { v.bound = c }

type bookV struct {
	nopView
	last controller.WordbookState
}

func (v *bookV) Render(st controller.WordbookState) { v.last = st }

type entryV struct {
	nopView
	form model.EntryForm
}

func (v *entryV) Form() model.EntryForm { return v.form }

type fakeViews struct {
	home  nopView
	list  *listV
	book  *bookV
	entry *entryV
}

func (f *fakeViews) Home() controller.HomeView           { return f.home }
func (f *fakeViews) Wordbook() controller.WordbookView   { return f.book }
func (f *fakeViews) WordList() controller.WordListView   { return f.list }
func (f *fakeViews) WordEntry() controller.WordEntryView { return f.entry }

func TestWiredScenario(t *testing.T) {
	ctx := context.Background()
	s, err := store.Create(ctx, filepath.Join(t.TempDir(), store.DBFileName))
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	for _, f := range []domain.TermFields{
		{WordName: "Bergmann's rule", Yomi: "べ"},
		{WordName: "Allen's rule", Yomi: "あ"},
		{WordName: "Gaussian", Yomi: "が"},
	} {
		if _, ok := s.Insert(ctx, f); !ok {
			t.Fatalf("seed %s", f.WordName)
		}
	}
	views := &fakeViews{list: &listV{}, book: &bookV{}, entry: &entryV{}}
	models := NewModels(s)
	w := &titleRecorder{}
	c := New(w, models)
	Wire(c, models, views, Options{FilterMode: controller.ModeYomi})

	if err := c.Switch(screen.Quiz); err == nil {
		t.Fatalf("quiz must not be implemented")
	}
	if err := c.Switch(screen.WordList); err != nil {
		t.Fatalf("Switch(wordlist): %v", err)
	}
	if views.list.bound == nil {
		t.Fatalf("list view was not bound to its controller")
	}
	list := views.list.bound
	list.SelectCategory(domain.RowA)
	if len(views.list.names) != 1 || views.list.names[0] != "Allen's rule" {
		t.Fatalf("row あ = %v", views.list.names)
	}

	list.OpenWordbook("Gaussian")
	if cur, _ := c.Current(); cur != screen.Wordbook {
		t.Fatalf("current = %v", cur)
	}
	ctrl, _ := c.Controller(screen.Wordbook)
	ctrl.(*controller.Wordbook).Previous()
	if views.book.last.TermID != 2 || views.book.last.Name != "Allen's rule" {
		t.Fatalf("previous from Gaussian = %+v", views.book.last)
	}

	// Warm the list cache, then add through the entry screen.
	all := len(models.WordList().AllTerms(ctx))
	if err := c.Switch(screen.WordEntry); err != nil {
		t.Fatalf("Switch(wordentry): %v", err)
	}
	views.entry.form = model.EntryForm{WordName: "Zipf's law", Yomi: "じ", Explain: "frequency"}
	entry, _ := c.Controller(screen.WordEntry)
	if _, ok := entry.(*controller.WordEntry).Submit(); !ok {
		t.Fatalf("Submit failed")
	}
	if got := len(models.WordList().AllTerms(ctx)); got != all+1 {
		t.Fatalf("TermsChanged did not invalidate the list cache: %d -> %d", all, got)
	}
	if err := c.Switch(screen.WordList); err != nil {
		t.Fatalf("back to list: %v", err)
	}
	if len(views.list.names) != 1 || views.list.names[0] != "Allen's rule" {
		t.Fatalf("category filter result changed after unrelated add: %v", views.list.names)
	}
	if got := w.titles[len(w.titles)-1]; got != "WordBook - Wordlist" {
		t.Fatalf("title = %q", got)
	}
}
