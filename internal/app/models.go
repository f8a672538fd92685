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
	"wordbook/internal/model"
)

// Models builds each screen model once, on first use, over a shared store.
type Models struct {
	store     model.TermStore
	wordList  *model.WordList
	wordbook  *model.Wordbook
	wordEntry *model.WordEntry
}

// NewModels returns a lazy model cache. s may be nil when no database is available.
func NewModels(s model.TermStore) *Models { return &Models{store: s} }

func (m *Models) WordList() *model.WordList {
	if m.wordList == nil {
		m.wordList = model.NewWordList(m.store)
	}
	return m.wordList
}

func (m *Models) Wordbook() *model.Wordbook {
	if m.wordbook == nil {
		m.wordbook = model.NewWordbook(m.store)
	}
	return m.wordbook
}

func (m *Models) WordEntry() *model.WordEntry {
	if m.wordEntry == nil {
		m.wordEntry = model.NewWordEntry(m.store)
	}
	return m.wordEntry
}

// Invalidate drops cached term lists. Models not built yet have nothing to drop.
func (m *Models) Invalidate() {
	if m.wordList != nil {
		m.wordList.Invalidate()
	}
}
