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
	"wordbook/internal/controller"
	"wordbook/internal/screen"
)

// Views hands out the view for each implemented screen. A view that needs its controller
// for callbacks implements Bind(*controller.X) and gets it right after construction.
type Views interface {
	Home() controller.HomeView
	Wordbook() controller.WordbookView
	WordList() controller.WordListView
	WordEntry() controller.WordEntryView
}

// Options tune the default wiring.
type Options struct {
	State      controller.StateStore
	FilterMode controller.FilterMode
}

// Wire registers the four implemented screens. Quiz stays unregistered.
func Wire(c *Coordinator, models *Models, views Views, opts Options) {
	c.Register(screen.Home, func() (screen.Showable, error) {
		v := views.Home()
		ctrl := controller.NewHome(v, c)
		bind(v, ctrl)
		return ctrl, nil
	})
	c.Register(screen.Wordbook, func() (screen.Showable, error) {
		v := views.Wordbook()
		ctrl := controller.NewWordbook(models.Wordbook(), v, c, opts.State)
		bind(v, ctrl)
		return ctrl, nil
	})
	c.Register(screen.WordList, func() (screen.Showable, error) {
		v := views.WordList()
		ctrl := controller.NewWordList(models.WordList(), v, c, opts.State)
		if opts.FilterMode != "" {
			ctrl.SetDefaultMode(opts.FilterMode)
		}
		bind(v, ctrl)
		return ctrl, nil
	})
	c.Register(screen.WordEntry, func() (screen.Showable, error) {
		v := views.WordEntry()
		ctrl := controller.NewWordEntry(models.WordEntry(), v, c)
		bind(v, ctrl)
		return ctrl, nil
	})
}

func bind[T any](v any, ctrl T) {
	if b, ok := v.(interface{ Bind(T) }); ok {
		b.Bind(ctrl)
	}
}
