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

import "fmt"

// KanaRow identifies one gojuon row by its leading character (あ, か, ...).
type KanaRow string

const (
	RowA  KanaRow = "あ"
	RowKa KanaRow = "か"
	RowSa KanaRow = "さ"
	RowTa KanaRow = "た"
	RowNa KanaRow = "な"
	RowHa KanaRow = "は"
	RowMa KanaRow = "ま"
	RowYa KanaRow = "や"
	RowRa KanaRow = "ら"
	RowWa KanaRow = "わ"
)

var rowOrder = []KanaRow{RowA, RowKa, RowSa, RowTa, RowNa, RowHa, RowMa, RowYa, RowRa, RowWa}

// や and わ rows are short.
var rowMembers = map[KanaRow][]string{
	RowA:  {"あ", "い", "う", "え", "お"},
	RowKa: {"か", "き", "く", "け", "こ"},
	RowSa: {"さ", "し", "す", "せ", "そ"},
	RowTa: {"た", "ち", "つ", "て", "と"},
	RowNa: {"な", "に", "ぬ", "ね", "の"},
	RowHa: {"は", "ひ", "ふ", "へ", "ほ"},
	RowMa: {"ま", "み", "む", "め", "も"},
	RowYa: {"や", "ゆ", "よ"},
	RowRa: {"ら", "り", "る", "れ", "ろ"},
	RowWa: {"わ", "を", "ん"},
}

// Rows returns the ten rows in gojuon order.
func Rows() []KanaRow { return append([]KanaRow(nil), rowOrder...) }

// ParseRow validates s as a row key.
func ParseRow(s string) (KanaRow, error) {
	r := KanaRow(s)
	if _, ok := rowMembers[r]; !ok {
		return "", fmt.Errorf("unknown kana row %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the ten rows.
func (r KanaRow) Valid() bool {
	_, ok := rowMembers[r]
	return ok
}

// Members returns the initial characters belonging to the row (nil for an invalid row).
func (r KanaRow) Members() []string {
	m := rowMembers[r]
	if m == nil {
		return nil
	}
	return append([]string(nil), m...)
}

func (r KanaRow) String() string { return string(r) }
