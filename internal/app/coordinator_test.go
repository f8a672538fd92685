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
	"errors"
	"testing"

	"wordbook/internal/screen"
)

type titleRecorder struct{ titles []string }

func (w *titleRecorder) SetTitle(t string) { w.titles = append(w.titles, t) }

type stubCtrl struct {
	name       string
	events     *[]string
	panicHide  bool
	loadResult bool
}

func (s *stubCtrl) Show() { *s.events = append(*s.events, "show:"+s.name) }
func (s *stubCtrl) Hide() {
	*s.events = append(*s.events, "hide:"+s.name)
	if s.panicHide {
		panic("hide failed")
	}
}

type loadable struct {
	stubCtrl
	loaded []string
}

func (l *loadable) LoadTerm(name string) bool {
	l.loaded = append(l.loaded, name)
	return l.loadResult
}

type showOnly struct{ shown int }

func (s *showOnly) Show() { s.shown++ }

func TestSwitchLifecycle(t *testing.T) {
	var events []string
	w := &titleRecorder{}
	c := New(w, nil)
	builds := map[screen.ID]int{}
	for _, id := range []screen.ID{screen.Home, screen.WordList} {
		id := id
		c.Register(id, func() (screen.Showable, error) {
			builds[id]++
			return &stubCtrl{name: id.String(), events: &events}, nil
		})
	}
	if err := c.Switch(screen.Home); err != nil {
		t.Fatalf("Switch(home): %v", err)
	}
	if err := c.Switch(screen.WordList); err != nil {
		t.Fatalf("Switch(wordlist): %v", err)
	}
	if err := c.Switch(screen.Home); err != nil {
		t.Fatalf("Switch(home) again: %v", err)
	}
	want := []string{"show:home", "hide:home", "show:wordlist", "hide:wordlist", "show:home"}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if builds[screen.Home] != 1 || builds[screen.WordList] != 1 {
		t.Fatalf("controllers must be built once: %v", builds)
	}
	if got := w.titles[len(w.titles)-1]; got != "WordBook - Home" {
		t.Fatalf("title = %q", got)
	}
	if w.titles[1] != "WordBook - Wordlist" {
		t.Fatalf("titles = %v", w.titles)
	}
}

func TestSwitchErrorsLeaveStateUnchanged(t *testing.T) {
	var events []string
	w := &titleRecorder{}
	c := New(w, nil)
	c.Register(screen.Home, func() (screen.Showable, error) {
		return &stubCtrl{name: "home", events: &events}, nil
	})
	boom := errors.New("boom")
	c.Register(screen.WordEntry, func() (screen.Showable, error) { return nil, boom })
	if err := c.Switch(screen.Home); err != nil {
		t.Fatalf("Switch(home): %v", err)
	}

	cases := []struct {
		id   screen.ID
		want error
	}{
		{screen.Quiz, screen.ErrNotImplemented},
		{screen.ID(99), screen.ErrUnknownScreen},
		{screen.WordEntry, boom},
	}
	for _, tc := range cases {
		if err := c.Switch(tc.id); !errors.Is(err, tc.want) {
			t.Fatalf("Switch(%v) err = %v, want %v", tc.id, err, tc.want)
		}
		if cur, ok := c.Current(); !ok || cur != screen.Home {
			t.Fatalf("current changed to %v after failed switch", cur)
		}
	}
	if len(events) != 1 || len(w.titles) != 1 {
		t.Fatalf("failed switches must not hide/show or retitle: events=%v titles=%v", events, w.titles)
	}
}

func TestHideFailureIsSwallowed(t *testing.T) {
	var events []string
	c := New(nil, nil)
	c.Register(screen.Home, func() (screen.Showable, error) {
		return &stubCtrl{name: "home", events: &events, panicHide: true}, nil
	})
	plain := &showOnly{}
	c.Register(screen.WordEntry, func() (screen.Showable, error) { return plain, nil })
	_ = c.Switch(screen.Home)
	if err := c.Switch(screen.WordEntry); err != nil {
		t.Fatalf("Switch after panicking Hide: %v", err)
	}
	if plain.shown != 1 {
		t.Fatalf("incoming screen not shown")
	}
	// showOnly has no Hide; switching away must still work.
	if err := c.Switch(screen.Home); err != nil {
		t.Fatalf("switch from controller without Hide: %v", err)
	}
}

func TestOpenWordbook(t *testing.T) {
	var events []string
	c := New(nil, nil)
	wb := &loadable{stubCtrl: stubCtrl{name: "wordbook", events: &events, loadResult: true}}
	c.Register(screen.Wordbook, func() (screen.Showable, error) { return wb, nil })
	if err := c.OpenWordbook("Gaussian"); err != nil {
		t.Fatalf("OpenWordbook: %v", err)
	}
	if len(wb.loaded) != 1 || wb.loaded[0] != "Gaussian" {
		t.Fatalf("loaded = %v", wb.loaded)
	}
	wb.loadResult = false
	if err := c.OpenWordbook("missing"); err == nil {
		t.Fatalf("missing term should be an error")
	}

	c2 := New(nil, nil)
	c2.Register(screen.Wordbook, func() (screen.Showable, error) { return &showOnly{}, nil })
	if err := c2.OpenWordbook("x"); !errors.Is(err, screen.ErrNotImplemented) {
		t.Fatalf("non-loadable wordbook err = %v", err)
	}
}
