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

import "strings"

const (
	// NotSet is shown for an empty tag or category.
	NotSet = "未設定"
	// Hidden replaces a value whose visibility toggle is off.
	Hidden = "???"
)

// SplitList splits free text on ASCII and fullwidth commas, trimming blanks and dropping empties.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DisplayList normalises a tag or category value for display: items joined with ", ",
// or NotSet when nothing remains.
func DisplayList(s string) string {
	items := SplitList(s)
	if len(items) == 0 {
		return NotSet
	}
	return strings.Join(items, ", ")
}

// HasListItem reports whether the comma separated value s contains item (exact, trimmed).
func HasListItem(s, item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	for _, v := range SplitList(s) {
		if v == item {
			return true
		}
	}
	return false
}

// Masked returns value when visible, otherwise the Hidden placeholder.
func Masked(value string, visible bool) string {
	if !visible {
		return Hidden
	}
	return value
}
