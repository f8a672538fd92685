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
	"log/slog"

	"wordbook/internal/domain"
	applog "wordbook/internal/log"
	"wordbook/internal/model"
	"wordbook/internal/screen"
)

// WordbookState is the flashcard view-model.
type WordbookState struct {
	TermID             int64  `json:"term_id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	Tag                string `json:"tag"`
	Category           string `json:"category"`
	NameVisible        bool   `json:"name_visible"`
	DescriptionVisible bool   `json:"description_visible"`
}

// cursor is what survives a session: only the position, never the toggles.
type cursor struct {
	TermID int64 `json:"term_id"`
}

// DisplayName is the name or "???" when hidden.
func (s WordbookState) DisplayName() string { return domain.Masked(s.Name, s.NameVisible) }

// DisplayDescription is the description or "???" when hidden.
func (s WordbookState) DisplayDescription() string {
	return domain.Masked(s.Description, s.DescriptionVisible)
}

// WordbookView renders the flashcard screen.
type WordbookView interface {
	View
	Render(st WordbookState)
	ShowInfo(msg string)
	ShowError(msg string)
	Confirm(msg string) bool
}

const wordbookStateKey = "wordbook"

// Wordbook drives the flashcard screen.
type Wordbook struct {
	model *model.Wordbook
	view  WordbookView
	nav   screen.Navigator
	state StateStore
	log   *slog.Logger

	st       WordbookState
	restored bool
}

// NewWordbook wires a flashcard controller. Both toggles start visible.
func NewWordbook(m *model.Wordbook, v WordbookView, nav screen.Navigator, state StateStore) *Wordbook {
	return &Wordbook{
		model: m,
		view:  v,
		nav:   nav,
		state: state,
		log:   applog.WithComponent("controller").With(slog.String("screen", screen.Wordbook.String())),
		st:    WordbookState{NameVisible: true, DescriptionVisible: true},
	}
}

// State returns a copy of the view-model.
func (c *Wordbook) State() WordbookState { return c.st }

// Show displays the current term, falling back to the first one when nothing is selected.
func (c *Wordbook) Show() {
	guard(c.log, "show", func() {
		c.restore()
		c.view.Show()
		if !c.model.Available(background()) {
			c.clear()
			c.view.Render(c.st)
			c.view.ShowError(MsgNoDatabase)
			return
		}
		if _, ok := c.model.CurrentID(); !ok {
			c.model.ResetToFirst(background())
		}
		c.load()
		c.view.Render(c.st)
	})
}

// Hide persists the cursor, then hides the view.
func (c *Wordbook) Hide() {
	c.Save()
	c.view.Hide()
}

// Save persists the cursor position.
func (c *Wordbook) Save() {
	saveState(c.log, c.state, wordbookStateKey, cursor{TermID: c.st.TermID})
}

func (c *Wordbook) restore() {
	if c.restored {
		return
	}
	c.restored = true
	var saved cursor
	if !loadState(c.log, c.state, wordbookStateKey, &saved) {
		return
	}
	if _, ok := c.model.CurrentID(); !ok && saved.TermID > 0 {
		c.model.LoadByID(background(), saved.TermID)
	}
}

// LoadTerm selects the term called name and renders it.
func (c *Wordbook) LoadTerm(name string) (ok bool) {
	guard(c.log, "load_term", func() {
		c.restore()
		if !c.model.Available(background()) {
			c.view.ShowError(MsgNoDatabase)
			return
		}
		if _, ok = c.model.LoadByName(background(), name); !ok {
			c.view.ShowError(MsgTermNotFound)
			return
		}
		c.load()
		c.view.Render(c.st)
	})
	return ok
}

// Next moves forward; at the last term the view is told so instead.
func (c *Wordbook) Next() {
	guard(c.log, "next", func() {
		c.restore()
		if !c.model.Next(background()) {
			c.boundary(MsgAtLast)
			return
		}
		c.load()
		c.view.Render(c.st)
	})
}

// Previous moves back; at the first term the view is told so instead.
func (c *Wordbook) Previous() {
	guard(c.log, "previous", func() {
		c.restore()
		if !c.model.Previous(background()) {
			c.boundary(MsgAtFirst)
			return
		}
		c.load()
		c.view.Render(c.st)
	})
}

func (c *Wordbook) boundary(msg string) {
	if !c.model.Available(background()) {
		c.view.ShowError(MsgNoDatabase)
		return
	}
	before := c.st.TermID
	c.load()
	if c.st.TermID != before {
		c.view.Render(c.st)
	}
	if _, ok := c.model.CurrentID(); !ok {
		c.view.ShowInfo(MsgNoTerms)
		return
	}
	c.view.ShowInfo(msg)
}

// ToggleName flips the name visibility.
func (c *Wordbook) ToggleName() {
	guard(c.log, "toggle_name", func() {
		c.st.NameVisible = !c.st.NameVisible
		c.view.Render(c.st)
	})
}

// ToggleDescription flips the description visibility.
func (c *Wordbook) ToggleDescription() {
	guard(c.log, "toggle_description", func() {
		c.st.DescriptionVisible = !c.st.DescriptionVisible
		c.view.Render(c.st)
	})
}

// Delete removes the shown term after confirmation and shows its neighbour.
func (c *Wordbook) Delete() (ok bool) {
	guard(c.log, "delete", func() {
		if c.st.TermID == 0 || !c.view.Confirm(MsgConfirmDelete(c.st.Name)) {
			return
		}
		if ok = c.model.Delete(background()); !ok {
			c.view.ShowError(MsgDeleteFailed)
			return
		}
		if c.nav != nil {
			c.nav.TermsChanged()
		}
		c.load()
		c.view.Render(c.st)
	})
	return ok
}

// GoHome switches to the home screen.
func (c *Wordbook) GoHome() { c.navigate(screen.Home) }

// GoWordList switches to the list screen.
func (c *Wordbook) GoWordList() { c.navigate(screen.WordList) }

func (c *Wordbook) navigate(id screen.ID) {
	guard(c.log, "navigate", func() {
		if c.nav == nil {
			return
		}
		if err := c.nav.Switch(id); err != nil {
			c.log.Warn("switch failed", slog.String("to", id.String()), slog.Any("err", err))
		}
	})
}

// load copies the selected term into the view-model, keeping the toggles.
// A selection whose term has gone moves to a neighbour first.
func (c *Wordbook) load() {
	ctx := background()
	t, ok := c.model.Current(ctx)
	if !ok && c.model.Reselect(ctx) {
		t, ok = c.model.Current(ctx)
	}
	if !ok {
		c.clear()
		return
	}
	c.st.TermID = t.ID
	c.st.Name = t.WordName
	c.st.Description = t.Explain
	c.st.Tag = domain.DisplayList(t.Tag)
	c.st.Category = domain.DisplayList(t.Category)
}

func (c *Wordbook) clear() {
	c.st.TermID, c.st.Name, c.st.Description, c.st.Tag, c.st.Category = 0, "", "", "", ""
}
