/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package store

import (
	"strings"
)

// Filter narrows a terms query. Zero fields are ignored; set fields are combined with AND.
type Filter struct {
	ID       int64
	Name     string
	Category string
	// YomiInitials matches terms whose reading starts with any of these characters.
	YomiInitials []string
	// Tag matches terms whose tag column contains this text.
	Tag         string
	OrderByYomi bool
	Limit       int
}

// where renders the WHERE clause (with ? placeholders) and its arguments.
func (f Filter) where() (string, []any) {
	var conds []string
	var args []any
	if f.ID > 0 {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Name != "" {
		conds = append(conds, "word_name = ?")
		args = append(args, f.Name)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if len(f.YomiInitials) > 0 {
		ph := make([]string, len(f.YomiInitials))
		for i, ch := range f.YomiInitials {
			ph[i] = "?"
			args = append(args, ch)
		}
		conds = append(conds, "SUBSTR(yomi, 1, 1) IN ("+strings.Join(ph, ",")+")")
	}
	if f.Tag != "" {
		conds = append(conds, "tag LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(f.Tag)+"%")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (f Filter) orderBy() string {
	if f.OrderByYomi {
		return " ORDER BY yomi, word_name, id"
	}
	return " ORDER BY word_name, id"
}

func escapeLike(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_")
	return r.Replace(s)
}
