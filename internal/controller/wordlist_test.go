/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package controller

import (
	"fmt"
	"os"
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/model"
)

func newListController(t *testing.T, terms ...domain.TermFields) (*WordList, *listView, *fakeNav) {
	t.Helper()
	s := newStore(t, terms...)
	v := &listView{confirm: true}
	nav := &fakeNav{}
	return NewWordList(model.NewWordList(s), v, nav, nil), v, nav
}

func TestWordListRowFilterAndEmptyMessage(t *testing.T) {
	c, v, _ := newListController(t, scenario...)
	c.Show()
	if v.shown != 1 || len(v.names) != 3 || v.empty != "" {
		t.Fatalf("initial render: shown=%d names=%v empty=%q", v.shown, v.names, v.empty)
	}
	c.SelectCategory(domain.RowA)
	if fmt.Sprint(v.names) != "[Allen's rule]" {
		t.Fatalf("row あ = %v", v.names)
	}
	c.SelectCategory(domain.RowKa)
	if len(v.names) != 0 || v.empty != "か行の用語はありません" {
		t.Fatalf("row か: names=%v empty=%q", v.names, v.empty)
	}
	if v.filter.Category != domain.RowKa {
		t.Fatalf("filter state not rendered: %+v", v.filter)
	}
}

func TestWordListEmptySearchRestoresCategory(t *testing.T) {
	c, v, _ := newListController(t, scenario...)
	c.SelectCategory(domain.RowA)
	c.Search("law")
	if len(v.names) != 0 || v.empty != MsgNoSearchResult {
		t.Fatalf("search law: %v %q", v.names, v.empty)
	}
	c.Search("   ")
	if fmt.Sprint(v.names) != "[Allen's rule]" {
		t.Fatalf("empty search should restore row filter, got %v", v.names)
	}
	if c.State().Category != domain.RowA || c.State().Query != "" {
		t.Fatalf("state = %+v", c.State())
	}
	c.Search("rule")
	c.SelectCategory(domain.RowA)
	if c.State().Query != "" {
		t.Fatalf("selecting a category must clear the search")
	}
}

func TestWordListPrecedence(t *testing.T) {
	c, v, _ := newListController(t,
		domain.TermFields{WordName: "アリ", Yomi: "あり", Tag: "虫"},
		domain.TermFields{WordName: "イカ", Yomi: "いか", Tag: "海"},
		domain.TermFields{WordName: "サメ", Yomi: "さめ", Tag: "海"},
	)
	c.SelectCategory(domain.RowA)
	c.SelectTag("海")
	if fmt.Sprint(v.names) != "[イカ サメ]" {
		t.Fatalf("tag beats category: %v", v.names)
	}
	c.Search("アリ")
	if fmt.Sprint(v.names) != "[アリ]" {
		t.Fatalf("search beats tag: %v", v.names)
	}
	c.ClearSearch()
	c.ClearTag()
	if fmt.Sprint(v.names) != "[アリ イカ]" {
		t.Fatalf("category after clearing tag: %v", v.names)
	}
	c.SelectTag("森")
	if v.empty != "タグ「森」の用語はありません" {
		t.Fatalf("tag empty message = %q", v.empty)
	}
	c.ListAll()
	if len(v.names) != 3 {
		t.Fatalf("ListAll = %v", v.names)
	}
}

func TestWordListFilterModeUsesCategoryColumn(t *testing.T) {
	c, v, _ := newListController(t,
		domain.TermFields{WordName: "読みあり", Yomi: "あ", Category: "か"},
		domain.TermFields{WordName: "カテゴリ", Yomi: "か", Category: "あ"},
	)
	c.SelectCategory(domain.RowA)
	if fmt.Sprint(v.names) != "[読みあり]" {
		t.Fatalf("yomi mode = %v", v.names)
	}
	c.ToggleFilterMode()
	if c.State().Mode != ModeCategory || fmt.Sprint(v.names) != "[カテゴリ]" {
		t.Fatalf("category mode = %v (%s)", v.names, c.State().Mode)
	}
	c.ToggleFilterMode()
	if c.State().Mode != ModeYomi {
		t.Fatalf("toggle back failed")
	}
}

func TestWordListMutationsKeepFilterAndNotify(t *testing.T) {
	c, v, nav := newListController(t, scenario...)
	c.SelectCategory(domain.RowA)
	before := fmt.Sprint(v.names)
	if _, ok := c.Add(model.EditForm{WordName: "Zipf", Yomi: "じ"}); !ok {
		t.Fatalf("Add failed: %v %v", v.errs, v.fieldErrs)
	}
	if fmt.Sprint(v.names) != before {
		t.Fatalf("non-matching add changed filtered list: %v", v.names)
	}
	if nav.changed != 1 || len(v.success) != 1 {
		t.Fatalf("changed=%d success=%v", nav.changed, v.success)
	}
	if _, ok := c.Add(model.EditForm{WordName: "Aisu", Yomi: "あいす"}); !ok {
		t.Fatalf("second Add failed")
	}
	if fmt.Sprint(v.names) != "[Allen's rule Aisu]" {
		t.Fatalf("matching add should appear: %v", v.names)
	}
	c.ListAll()
	if len(v.names) != 5 {
		t.Fatalf("unfiltered list after adds = %v", v.names)
	}

	if _, ok := c.Add(model.EditForm{WordName: " "}); ok {
		t.Fatalf("blank name accepted")
	}
	if v.fieldErrs["word_name"] == "" {
		t.Fatalf("field errors not shown: %v", v.fieldErrs)
	}

	c.Detail("Gaussian")
	if v.detail == nil || v.detail.Tag != domain.NotSet || v.detail.Category != domain.NotSet {
		t.Fatalf("detail = %+v", v.detail)
	}
	id := v.detail.ID
	if !c.Update(id, model.EditForm{WordName: "Gauss", Tag: "数学,，統計"}) {
		t.Fatalf("Update failed: %v", v.errs)
	}
	c.Detail("Gauss")
	if v.detail.Tag != "数学, 統計" {
		t.Fatalf("normalised tag = %q", v.detail.Tag)
	}
	if !c.Delete(id, "Gauss") {
		t.Fatalf("Delete failed")
	}
	if v.asked[len(v.asked)-1] != "'Gauss'を削除しますか？\nこの操作は元に戻せません。" {
		t.Fatalf("confirm text = %q", v.asked[len(v.asked)-1])
	}
	v.confirm = false
	if c.Delete(1, "Bergmann's rule") {
		t.Fatalf("declined delete should not delete")
	}
	c.Detail("nope")
	if v.errs[len(v.errs)-1] != MsgTermNotFound {
		t.Fatalf("missing detail error = %v", v.errs)
	}
}

func TestWordListUnavailableStore(t *testing.T) {
	s := newStore(t, scenario...)
	v := &listView{}
	c := NewWordList(model.NewWordList(s), v, nil, nil)
	if err := os.Remove(s.Path()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	c.Show()
	if v.empty != MsgNoDatabase || len(v.names) != 0 {
		t.Fatalf("unavailable render: %v %q", v.names, v.empty)
	}
}

func TestWordListStatePersistence(t *testing.T) {
	s := newStore(t, scenario...)
	st := memState{}
	v := &listView{}
	c := NewWordList(model.NewWordList(s), v, nil, st)
	c.Show()
	c.SetFilterMode(ModeCategory)
	c.SelectCategory(domain.RowWa)
	c.Hide()
	if v.hidden != 1 {
		t.Fatalf("view not hidden")
	}

	v2 := &listView{}
	c2 := NewWordList(model.NewWordList(s), v2, nil, st)
	c2.Initialize()
	if c2.State().Category != domain.RowWa || c2.State().Mode != ModeCategory {
		t.Fatalf("restored state = %+v", c2.State())
	}
	if v2.empty != "わ行の用語はありません" {
		t.Fatalf("restored render = %q", v2.empty)
	}
}

type panickyView struct{ listView }

func (p *panickyView) RenderList([]string, string) { panic("boom") }

func TestWordListGuardRecoversPanics(t *testing.T) {
	s := newStore(t)
	c := NewWordList(model.NewWordList(s), &panickyView{}, nil, nil)
	c.Refresh()
	c.Search("x")
	if c.State().Query != "x" {
		t.Fatalf("state should still update before the panicking render")
	}
}

func TestParseFilterMode(t *testing.T) {
	if m, ok := ParseFilterMode(" Category "); !ok || m != ModeCategory {
		t.Fatalf("ParseFilterMode(Category) = %v %v", m, ok)
	}
	if m, ok := ParseFilterMode("other"); ok || m != ModeYomi {
		t.Fatalf("ParseFilterMode(other) = %v %v", m, ok)
	}
}
