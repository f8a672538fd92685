/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package screen

import (
	"errors"
	"testing"
)

func TestTitleAndParse(t *testing.T) {
	if WordList.Title() != "Wordlist" || Home.Title() != "Home" {
		t.Fatalf("titles: %s %s", WordList.Title(), Home.Title())
	}
	for _, id := range All() {
		got, err := Parse(id.String())
		if err != nil || got != id {
			t.Fatalf("Parse(%s) = %v, %v", id, got, err)
		}
	}
	if id, err := Parse(" WordEntry "); err != nil || id != WordEntry {
		t.Fatalf("Parse is case-insensitive: %v %v", id, err)
	}
	if _, err := Parse("settings"); !errors.Is(err, ErrUnknownScreen) {
		t.Fatalf("Parse(settings) err = %v", err)
	}
	if ID(42).Valid() || ID(42).String() != "screen(42)" {
		t.Fatalf("out of range id handling")
	}
}
