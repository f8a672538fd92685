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
	"wordbook/internal/screen"
)

// HomeView renders the start screen.
type HomeView interface {
	View
	ShowError(msg string)
}

// Home drives the start screen: one button per screen.
type Home struct {
	view HomeView
	nav  screen.Navigator
	log  *slog.Logger
}

// NewHome wires the start screen.
func NewHome(v HomeView, nav screen.Navigator) *Home {
	return &Home{view: v, nav: nav, log: applog.WithComponent("controller").With(slog.String("screen", screen.Home.String()))}
}

func (c *Home) Show() { guard(c.log, "show", c.view.Show) }

func (c *Home) Hide() { c.view.Hide() }

// Navigate forwards a button press to the coordinator.
func (c *Home) Navigate(id screen.ID) {
	guard(c.log, "navigate", func() {
		if c.nav == nil {
			return
		}
		err := c.nav.Switch(id)
		switch {
		case err == nil:
		case errors.Is(err, screen.ErrNotImplemented):
			c.view.ShowError(MsgNotImplemented)
		default:
			c.log.Warn("switch failed", slog.String("to", id.String()), slog.Any("err", err))
			c.view.ShowError(err.Error())
		}
	})
}
