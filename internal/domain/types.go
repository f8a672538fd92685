/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model of the wordbook: a single persisted Term entity
// plus the field bags used to create and patch it.

// Term is one dictionary entry as stored in the terms table.
// Optional columns that are NULL in the store surface as empty strings.
type Term struct {
	ID       int64  `json:"id"`
	WordName string `json:"word_name"`
	Yomi     string `json:"yomi,omitempty"`
	Explain  string `json:"explain,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Category string `json:"category,omitempty"`
}

// Fields returns the insertable part of the term (everything but the id).
func (t Term) Fields() TermFields {
	return TermFields{WordName: t.WordName, Yomi: t.Yomi, Explain: t.Explain, Tag: t.Tag, Category: t.Category}
}

// TermFields carries the values for a new term. Empty optional values are stored as NULL.
type TermFields struct {
	WordName string `json:"word_name"`
	Yomi     string `json:"yomi,omitempty"`
	Explain  string `json:"explain,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Category string `json:"category,omitempty"`
}

// TermPatch is a partial update. Nil fields leave the stored column untouched.
type TermPatch struct {
	WordName *string
	Yomi     *string
	Explain  *string
	Tag      *string
	Category *string
}

// Empty reports whether the patch changes nothing.
func (p TermPatch) Empty() bool {
	return p.WordName == nil && p.Yomi == nil && p.Explain == nil && p.Tag == nil && p.Category == nil
}

// Str is a small helper to build patches: domain.TermPatch{Explain: domain.Str("...")}.
func Str(s string) *string { return &s }

// Stats summarises the store contents.
type Stats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category,omitempty"`
}
