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

	applog "wordbook/internal/log"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/validation"
)

// WordEntryView renders the registration form.
type WordEntryView interface {
	View
	Form() model.EntryForm
	SetChoices(categories, makers []string)
	ShowFieldErrors(fields map[string]string)
	ShowSuccess(msg string)
	ShowError(msg string)
	Confirm(msg string) bool
	ClearInputs()
}

// WordEntry drives the registration screen.
type WordEntry struct {
	model *model.WordEntry
	view  WordEntryView
	nav   screen.Navigator
	log   *slog.Logger
}

// NewWordEntry wires a registration controller.
func NewWordEntry(m *model.WordEntry, v WordEntryView, nav screen.Navigator) *WordEntry {
	return &WordEntry{
		model: m,
		view:  v,
		nav:   nav,
		log:   applog.WithComponent("controller").With(slog.String("screen", screen.WordEntry.String())),
	}
}

// Show fills the pickers and displays the form.
func (c *WordEntry) Show() {
	guard(c.log, "show", func() {
		ctx := background()
		c.view.SetChoices(c.model.Categories(ctx), c.model.Makers(ctx))
		c.view.Show()
	})
}

// Hide hides the form.
func (c *WordEntry) Hide() { c.view.Hide() }

// Submit stores the form. Field problems are shown next to the fields.
func (c *WordEntry) Submit() (id int64, ok bool) {
	guard(c.log, "submit", func() {
		var err error
		id, err = c.model.Create(background(), c.view.Form())
		var verr *validation.Error
		switch {
		case err == nil:
			ok = true
			c.view.ShowSuccess(MsgAdded)
			c.view.ClearInputs()
			if c.nav != nil {
				c.nav.TermsChanged()
			}
		case errors.As(err, &verr):
			c.view.ShowFieldErrors(verr.Fields)
		case errors.Is(err, model.ErrNoDatabase):
			c.view.ShowError(MsgNoDatabase)
		default:
			c.log.Error("create term", slog.Any("err", err))
			c.view.ShowError(MsgAddFailed)
		}
	})
	return id, ok
}

// Reset clears the inputs once the user confirms.
func (c *WordEntry) Reset() {
	guard(c.log, "reset", func() {
		if c.view.Confirm(MsgConfirmReset) {
			c.view.ClearInputs()
		}
	})
}

// Back returns to the home screen.
func (c *WordEntry) Back() {
	guard(c.log, "back", func() {
		if c.nav == nil {
			return
		}
		if err := c.nav.Switch(screen.Home); err != nil {
			c.log.Warn("switch home failed", slog.Any("err", err))
		}
	})
}
