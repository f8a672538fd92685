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
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"wordbook/internal/domain"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/store"
)

func newStore(t *testing.T, terms ...domain.TermFields) *store.Store {
	t.Helper()
	s, err := store.Create(context.Background(), filepath.Join(t.TempDir(), store.DBFileName))
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	for _, f := range terms {
		if _, ok := s.Insert(context.Background(), f); !ok {
			t.Fatalf("seed %q", f.WordName)
		}
	}
	return s
}

var scenario = []domain.TermFields{
	{WordName: "Bergmann's rule", Yomi: "べ"},
	{WordName: "Allen's rule", Yomi: "あ"},
	{WordName: "Gaussian", Yomi: "が"},
}

type listView struct {
	shown, hidden int
	names         []string
	empty         string
	filter        ListState
	detail        *TermDetail
	fieldErrs     map[string]string
	success, errs []string
	confirm       bool
	asked         []string
}

func (v *listView) Show() { v.shown++ }
func (v *listView) Hide() { v.hidden++ }
func (v *listView) RenderList(names []string, empty string) {
	v.names, v.empty = names, empty
}
func (v *listView) RenderFilter(st ListState)                    { v.filter = st }
func (v *listView) ShowDetail(d TermDetail, _ model.EditForm)     { v.detail = &d }
func (v *listView) ShowFieldErrors(f map[string]string)           { v.fieldErrs = f }
func (v *listView) ShowSuccess(msg string)                        { v.success = append(v.success, msg) }
func (v *listView) ShowError(msg string)                          { v.errs = append(v.errs, msg) }
func (v *listView) Confirm(msg string) bool                       { v.asked = append(v.asked, msg); return v.confirm }

type bookView struct {
	shown, hidden int
	last          WordbookState
	renders       int
	infos, errs   []string
	confirm       bool
}

func (v *bookView) Show()                   { v.shown++ }
func (v *bookView) Hide()                   { v.hidden++ }
func (v *bookView) Render(st WordbookState) { v.last = st; v.renders++ }
func (v *bookView) ShowInfo(msg string)     { v.infos = append(v.infos, msg) }
func (v *bookView) ShowError(msg string)    { v.errs = append(v.errs, msg) }
func (v *bookView) Confirm(string) bool     { return v.confirm }

type entryView struct {
	form                model.EntryForm
	categories, makers  []string
	fieldErrs           map[string]string
	success, errs       []string
	confirm             bool
	cleared, shown      int
}

func (v *entryView) Show()                               { v.shown++ }
func (v *entryView) Hide()                               {}
func (v *entryView) Form() model.EntryForm               { return v.form }
func (v *entryView) SetChoices(c, m []string)            { v.categories, v.makers = c, m }
func (v *entryView) ShowFieldErrors(f map[string]string) { v.fieldErrs = f }
func (v *entryView) ShowSuccess(msg string)              { v.success = append(v.success, msg) }
func (v *entryView) ShowError(msg string)                { v.errs = append(v.errs, msg) }
func (v *entryView) Confirm(string) bool                 { return v.confirm }
func (v *entryView) ClearInputs()                        { v.cleared++; v.form = model.EntryForm{} }

type fakeNav struct {
	switched []screen.ID
	opened   []string
	changed  int
	err      error
}

func (n *fakeNav) Switch(id screen.ID) error {
	n.switched = append(n.switched, id)
	return n.err
}
func (n *fakeNav) OpenWordbook(name string) error { n.opened = append(n.opened, name); return n.err }
func (n *fakeNav) TermsChanged()                  { n.changed++ }

// memState is an in-memory StateStore using JSON like the disk-backed one.
type memState map[string][]byte

func (m memState) Save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m[key] = b
	return nil
}

func (m memState) Load(key string, v any) (bool, error) {
	b, ok := m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, v)
}
