/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package screen names the application's screens and the contracts shared by the
// coordinator and the screen controllers.
package screen

import (
	"errors"
	"fmt"
	"strings"
)

// ID identifies a screen. The set is closed.
type ID int

const (
	Home ID = iota
	Wordbook
	WordList
	WordEntry
	Quiz
)

var names = [...]string{
	Home:      "home",
	Wordbook:  "wordbook",
	WordList:  "wordlist",
	WordEntry: "wordentry",
	Quiz:      "quiz",
}

var (
	// ErrUnknownScreen is returned for an ID outside the enumeration.
	ErrUnknownScreen = errors.New("unknown screen")
	// ErrNotImplemented is returned for a known screen that has no controller.
	ErrNotImplemented = errors.New("screen not implemented")
)

// All lists every screen in declaration order.
func All() []ID { return []ID{Home, Wordbook, WordList, WordEntry, Quiz} }

// Valid reports whether id is part of the enumeration.
func (id ID) Valid() bool { return id >= Home && id <= Quiz }

// String returns the lower-case key ("wordlist").
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("screen(%d)", int(id))
	}
	return names[id]
}

// Title returns the key with its first letter capitalised, as used in the window title.
func (id ID) Title() string {
	s := id.String()
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Parse maps a key ("home", "WordList") to its ID.
func Parse(s string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for id, n := range names {
		if n == key {
			return ID(id), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScreen, s)
}

// Showable is implemented by every screen controller.
type Showable interface {
	Show()
}

// Hideable controllers are told when they are switched away from.
type Hideable interface {
	Hide()
}

// TermLoadable controllers can be pointed at a term by name.
type TermLoadable interface {
	LoadTerm(name string) bool
}

// Navigator is what controllers use to reach the coordinator.
type Navigator interface {
	Switch(id ID) error
	OpenWordbook(name string) error
	TermsChanged()
}
