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
	"errors"
	"log/slog"
	"strings"

	"wordbook/internal/domain"
	applog "wordbook/internal/log"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/validation"
)

// FilterMode chooses which column a kana-row selection filters on.
type FilterMode string

const (
	// ModeYomi matches the first character of the reading.
	ModeYomi FilterMode = "yomi"
	// ModeCategory matches the stored category column.
	ModeCategory FilterMode = "category"
)

// ParseFilterMode accepts "yomi" or "category"; anything else yields ModeYomi and false.
func ParseFilterMode(s string) (FilterMode, bool) {
	switch FilterMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeYomi:
		return ModeYomi, true
	case ModeCategory:
		return ModeCategory, true
	}
	return ModeYomi, false
}

// ListState is the serialisable filter state of the list screen.
type ListState struct {
	Category domain.KanaRow `json:"category,omitempty"`
	Mode     FilterMode     `json:"mode"`
	Query    string         `json:"query,omitempty"`
	Tag      string         `json:"tag,omitempty"`
}

// TermDetail is a term prepared for display: tag and category are normalised.
type TermDetail struct {
	ID       int64
	Name     string
	Yomi     string
	Explain  string
	Tag      string
	Category string
}

// DetailOf normalises t for display.
func DetailOf(t domain.Term) TermDetail {
	return TermDetail{
		ID:       t.ID,
		Name:     t.WordName,
		Yomi:     t.Yomi,
		Explain:  t.Explain,
		Tag:      domain.DisplayList(t.Tag),
		Category: domain.DisplayList(t.Category),
	}
}

// WordListView renders the list screen.
type WordListView interface {
	View
	RenderList(names []string, emptyMessage string)
	RenderFilter(st ListState)
	ShowDetail(d TermDetail, edit model.EditForm)
	ShowFieldErrors(fields map[string]string)
	ShowSuccess(msg string)
	ShowError(msg string)
	Confirm(msg string) bool
}

const listStateKey = "wordlist"

// WordList drives the list screen.
type WordList struct {
	model *model.WordList
	view  WordListView
	nav   screen.Navigator
	state StateStore
	log   *slog.Logger

	st          ListState
	initialized bool
	lastNames   []string
}

// NewWordList wires a list controller. nav and state may be nil.
func NewWordList(m *model.WordList, v WordListView, nav screen.Navigator, state StateStore) *WordList {
	return &WordList{
		model: m,
		view:  v,
		nav:   nav,
		state: state,
		log:   applog.WithComponent("controller").With(slog.String("screen", screen.WordList.String())),
		st:    ListState{Mode: ModeYomi},
	}
}

// SetDefaultMode sets the filter mode used when no saved state exists. Call before Initialize.
func (c *WordList) SetDefaultMode(m FilterMode) {
	if !c.initialized {
		c.st.Mode = m
	}
}

// Initialize restores the saved filter state and renders once.
func (c *WordList) Initialize() {
	guard(c.log, "initialize", func() {
		c.initialize()
		c.render()
	})
}

func (c *WordList) initialize() {
	if c.initialized {
		return
	}
	c.initialized = true
	var saved ListState
	if loadState(c.log, c.state, listStateKey, &saved) {
		if saved.Mode == "" {
			saved.Mode = c.st.Mode
		}
		if saved.Category != "" && !saved.Category.Valid() {
			saved.Category = ""
		}
		c.st = saved
	}
}

// Show displays the screen with the current filter.
func (c *WordList) Show() {
	guard(c.log, "show", func() {
		c.initialize()
		c.view.Show()
		c.render()
	})
}

// Hide persists the filter state and hides the view.
func (c *WordList) Hide() {
	c.Save()
	c.view.Hide()
}

// Save persists the filter state.
func (c *WordList) Save() { saveState(c.log, c.state, listStateKey, c.st) }

// State returns a copy of the filter state.
func (c *WordList) State() ListState { return c.st }

// Names returns the names shown by the last render.
func (c *WordList) Names() []string { return append([]string(nil), c.lastNames...) }

// ListAll clears every filter.
func (c *WordList) ListAll() {
	guard(c.log, "list_all", func() {
		c.st.Category, c.st.Tag, c.st.Query = "", "", ""
		c.render()
	})
}

// SelectCategory filters by kana row and clears the search.
func (c *WordList) SelectCategory(row domain.KanaRow) {
	guard(c.log, "select_category", func() {
		if !row.Valid() {
			c.view.ShowError(MsgEmptyRow(string(row)))
			return
		}
		c.st.Category, c.st.Query = row, ""
		c.render()
	})
}

// ClearCategory drops the kana-row filter.
func (c *WordList) ClearCategory() {
	guard(c.log, "clear_category", func() {
		c.st.Category = ""
		c.render()
	})
}

// SetFilterMode switches between reading and category matching.
func (c *WordList) SetFilterMode(m FilterMode) {
	guard(c.log, "set_filter_mode", func() {
		if m != ModeYomi && m != ModeCategory {
			return
		}
		c.st.Mode = m
		c.render()
	})
}

// ToggleFilterMode flips the filter mode.
func (c *WordList) ToggleFilterMode() {
	if c.st.Mode == ModeCategory {
		c.SetFilterMode(ModeYomi)
		return
	}
	c.SetFilterMode(ModeCategory)
}

// SelectTag filters by tag and clears the search.
func (c *WordList) SelectTag(tag string) {
	guard(c.log, "select_tag", func() {
		c.st.Tag, c.st.Query = strings.TrimSpace(tag), ""
		c.render()
	})
}

// ClearTag drops the tag filter.
func (c *WordList) ClearTag() {
	guard(c.log, "clear_tag", func() {
		c.st.Tag = ""
		c.render()
	})
}

// Search applies a free-text query. An empty query falls back to the active filter.
func (c *WordList) Search(q string) {
	guard(c.log, "search", func() {
		c.st.Query = strings.TrimSpace(q)
		c.render()
	})
}

// ClearSearch drops the query.
func (c *WordList) ClearSearch() { c.Search("") }

// Refresh re-renders with the active filter.
func (c *WordList) Refresh() {
	guard(c.log, "refresh", c.render)
}

// Detail opens the detail view for name.
func (c *WordList) Detail(name string) {
	guard(c.log, "detail", func() {
		t, ok := c.model.Detail(background(), name)
		if !ok {
			c.view.ShowError(MsgTermNotFound)
			return
		}
		c.view.ShowDetail(DetailOf(t), model.EditFormOf(t))
	})
}

// OpenWordbook shows name on the flashcard screen.
func (c *WordList) OpenWordbook(name string) {
	guard(c.log, "open_wordbook", func() {
		if c.nav == nil {
			return
		}
		if err := c.nav.OpenWordbook(name); err != nil {
			c.log.Warn("open wordbook failed", slog.String("name", name), slog.Any("err", err))
			c.view.ShowError(MsgTermNotFound)
		}
	})
}

// Add validates and inserts a term, then re-renders.
func (c *WordList) Add(f model.EditForm) (id int64, ok bool) {
	guard(c.log, "add", func() {
		if !c.validate(f) {
			return
		}
		id, ok = c.model.Add(background(), termFields(f))
		c.afterMutation(ok, MsgAdded, MsgAddFailed)
	})
	return id, ok
}

// Update overwrites the editable columns of id, then re-renders.
func (c *WordList) Update(id int64, f model.EditForm) (ok bool) {
	guard(c.log, "update", func() {
		if !c.validate(f) {
			return
		}
		ok = c.model.Update(background(), id, f.Patch())
		c.afterMutation(ok, MsgUpdated, MsgUpdateFailed)
	})
	return ok
}

// Delete removes id after the user confirms.
func (c *WordList) Delete(id int64, name string) (ok bool) {
	guard(c.log, "delete", func() {
		if !c.view.Confirm(MsgConfirmDelete(name)) {
			return
		}
		ok = c.model.Delete(background(), id)
		c.afterMutation(ok, MsgDeleted, MsgDeleteFailed)
	})
	return ok
}

// Tags lists every tag for the tag picker.
func (c *WordList) Tags() []string { return c.model.Tags(background()) }

// Categories lists the kana rows.
func (c *WordList) Categories() []domain.KanaRow { return c.model.Categories() }

// Stats returns term counts.
func (c *WordList) Stats() (domain.Stats, bool) { return c.model.Stats(background()) }

func (c *WordList) validate(f model.EditForm) bool {
	err := f.Validate()
	if err == nil {
		return true
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.view.ShowFieldErrors(verr.Fields)
		return false
	}
	c.log.Error("validate edit form", slog.Any("err", err))
	c.view.ShowError(MsgUpdateFailed)
	return false
}

func (c *WordList) afterMutation(ok bool, success, failure string) {
	if !ok {
		c.view.ShowError(failure)
		return
	}
	if c.nav != nil {
		c.nav.TermsChanged()
	}
	c.view.ShowSuccess(success)
	c.render()
}

func (c *WordList) render() {
	ctx := background()
	c.view.RenderFilter(c.st)
	if !c.model.Available(ctx) {
		c.lastNames = nil
		c.view.RenderList(nil, MsgNoDatabase)
		return
	}
	var names []string
	var empty string
	switch {
	case c.st.Query != "":
		names, empty = c.model.Search(ctx, c.st.Query), MsgNoSearchResult
	case c.st.Tag != "":
		names, empty = c.model.ByTag(ctx, c.st.Tag), MsgEmptyTag(c.st.Tag)
	case c.st.Category != "":
		if c.st.Mode == ModeCategory {
			names = c.model.ByCategory(ctx, c.st.Category)
		} else {
			names = c.model.ByYomiRow(ctx, c.st.Category)
		}
		empty = MsgEmptyRow(string(c.st.Category))
	default:
		names, empty = c.model.AllTerms(ctx), MsgNoTerms
	}
	c.lastNames = names
	if len(names) > 0 {
		empty = ""
	}
	c.view.RenderList(names, empty)
}

func termFields(f model.EditForm) domain.TermFields {
	p := f.Patch()
	return domain.TermFields{WordName: *p.WordName, Yomi: *p.Yomi, Explain: *p.Explain, Tag: *p.Tag, Category: *p.Category}
}
