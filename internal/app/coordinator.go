/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package app is the screen coordinator: it owns one controller per screen, builds them
// lazily from a registry and switches between them.
package app

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	applog "wordbook/internal/log"
	"wordbook/internal/screen"
)

// Window is the top-level window whose title follows the active screen.
type Window interface {
	SetTitle(title string)
}

// Factory builds the controller for one screen.
type Factory func() (screen.Showable, error)

// TitlePrefix starts every window title.
const TitlePrefix = "WordBook"

// Coordinator switches screens. It is not safe for concurrent use; call it from the UI thread.
type Coordinator struct {
	window      Window
	factories   map[screen.ID]Factory
	controllers map[screen.ID]screen.Showable
	current     screen.ID
	hasCurrent  bool
	models      *Models
	log         *slog.Logger
}

// New returns a coordinator with an empty registry. models may be nil.
func New(w Window, models *Models) *Coordinator {
	return &Coordinator{
		window:      w,
		factories:   make(map[screen.ID]Factory),
		controllers: make(map[screen.ID]screen.Showable),
		models:      models,
		log:         applog.WithComponent("app"),
	}
}

// Register sets the factory for id, replacing any earlier one. Unknown ids are ignored.
func (c *Coordinator) Register(id screen.ID, f Factory) {
	if !id.Valid() || f == nil {
		return
	}
	c.factories[id] = f
}

// Current returns the active screen.
func (c *Coordinator) Current() (screen.ID, bool) { return c.current, c.hasCurrent }

// Controller returns the already built controller for id.
func (c *Coordinator) Controller(id screen.ID) (screen.Showable, bool) {
	ctrl, ok := c.controllers[id]
	return ctrl, ok
}

// Switch hides the active screen and shows id. On any error nothing changes.
func (c *Coordinator) Switch(id screen.ID) error {
	l := applog.WithOperation(c.log, "switch").With(slog.String("to", id.String()))
	if !id.Valid() {
		return fmt.Errorf("%w: %s", screen.ErrUnknownScreen, id)
	}
	ctrl, err := c.controllerFor(id)
	if err != nil {
		l.Warn("switch refused", slog.Any("err", err))
		return err
	}
	if c.hasCurrent {
		if prev, ok := c.controllers[c.current]; ok {
			c.hide(prev, c.current)
		}
	}
	c.current, c.hasCurrent = id, true
	if c.window != nil {
		c.window.SetTitle(TitlePrefix + " - " + id.Title())
	}
	c.show(ctrl, id)
	l.Debug("screen switched")
	return nil
}

func (c *Coordinator) controllerFor(id screen.ID) (screen.Showable, error) {
	if ctrl, ok := c.controllers[id]; ok {
		return ctrl, nil
	}
	f, ok := c.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", screen.ErrNotImplemented, id)
	}
	ctrl, err := f()
	if err != nil {
		return nil, fmt.Errorf("build %s controller: %w", id, err)
	}
	if ctrl == nil {
		return nil, fmt.Errorf("%w: %s factory returned nil", screen.ErrNotImplemented, id)
	}
	c.controllers[id] = ctrl
	return ctrl, nil
}

// hide never lets an outgoing screen block the switch.
func (c *Coordinator) hide(ctrl screen.Showable, id screen.ID) {
	h, ok := ctrl.(screen.Hideable)
	if !ok {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("hide panicked", slog.String("screen", id.String()), slog.Any("panic", r))
		}
	}()
	h.Hide()
}

func (c *Coordinator) show(ctrl screen.Showable, id screen.ID) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("show panicked", slog.String("screen", id.String()), slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()
	ctrl.Show()
}

// OpenWordbook switches to the flashcard screen and loads name there.
func (c *Coordinator) OpenWordbook(name string) error {
	if err := c.Switch(screen.Wordbook); err != nil {
		return err
	}
	ctrl := c.controllers[screen.Wordbook]
	loader, ok := ctrl.(screen.TermLoadable)
	if !ok {
		return fmt.Errorf("%w: wordbook cannot load terms", screen.ErrNotImplemented)
	}
	if !loader.LoadTerm(name) {
		return fmt.Errorf("term %q not found", name)
	}
	return nil
}

// TermsChanged tells the shared models that the terms table was modified.
func (c *Coordinator) TermsChanged() {
	if c.models != nil {
		c.models.Invalidate()
	}
}

// HideCurrent hides the active screen, e.g. before the window closes so state gets saved.
func (c *Coordinator) HideCurrent() {
	if !c.hasCurrent {
		return
	}
	if ctrl, ok := c.controllers[c.current]; ok {
		c.hide(ctrl, c.current)
	}
}

var _ screen.Navigator = (*Coordinator)(nil)
