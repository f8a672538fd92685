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
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"wordbook/internal/domain"
)

const termColumns = `id, word_name, yomi, "explain", tag, category`

// FetchAll returns every term matching f, ordered by name (or reading when f.OrderByYomi).
// Returns nil when the store cannot be queried.
func (s *Store) FetchAll(ctx context.Context, f Filter) []domain.Term {
	var out []domain.Term
	ok := s.withConn(ctx, "fetch_all", func(db *sql.DB) error {
		where, args := f.where()
		q := "SELECT " + termColumns + " FROM terms" + where + f.orderBy()
		if f.Limit > 0 {
			q += " LIMIT ?"
			args = append(args, f.Limit)
		}
		rows, err := db.QueryContext(ctx, rebind(s.driver, q), args...)
		if err != nil {
			return fmt.Errorf("query terms: %w", err)
		}
		defer rows.Close()
		terms := make([]domain.Term, 0, 32)
		for rows.Next() {
			t, err := scanTerm(rows)
			if err != nil {
				return err
			}
			terms = append(terms, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate terms: %w", err)
		}
		out = terms
		return nil
	})
	if !ok {
		return nil
	}
	return out
}

// Names returns the distinct word names matching f in query order.
func (s *Store) Names(ctx context.Context, f Filter) []string {
	var out []string
	ok := s.withConn(ctx, "names", func(db *sql.DB) error {
		where, args := f.where()
		q := "SELECT word_name FROM terms" + where + f.orderBy()
		rows, err := db.QueryContext(ctx, rebind(s.driver, q), args...)
		if err != nil {
			return fmt.Errorf("query names: %w", err)
		}
		defer rows.Close()
		seen := make(map[string]struct{})
		names := make([]string, 0, 32)
		for rows.Next() {
			var n string
			if err := rows.Scan(&n); err != nil {
				return fmt.Errorf("scan name: %w", err)
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
			if f.Limit > 0 && len(names) >= f.Limit {
				break
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate names: %w", err)
		}
		out = names
		return nil
	})
	if !ok {
		return nil
	}
	return out
}

// FetchOne returns the first term matching f. When several terms share a name the one
// with the lowest id wins.
func (s *Store) FetchOne(ctx context.Context, f Filter) (domain.Term, bool) {
	var t domain.Term
	found := false
	ok := s.withConn(ctx, "fetch_one", func(db *sql.DB) error {
		where, args := f.where()
		q := "SELECT " + termColumns + " FROM terms" + where + " ORDER BY id LIMIT 1"
		row := db.QueryRowContext(ctx, rebind(s.driver, q), args...)
		got, err := scanTerm(row)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		t, found = got, true
		return nil
	})
	return t, ok && found
}

// Insert adds a term and returns its generated id.
func (s *Store) Insert(ctx context.Context, in domain.TermFields) (int64, bool) {
	var id int64
	ok := s.withConn(ctx, "insert", func(db *sql.DB) error {
		q := `INSERT INTO terms (word_name, yomi, "explain", tag, category) VALUES (?, ?, ?, ?, ?) RETURNING id`
		err := db.QueryRowContext(ctx, rebind(s.driver, q),
			in.WordName, nullable(in.Yomi), nullable(in.Explain), nullable(in.Tag), nullable(in.Category),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert term: %w", err)
		}
		return nil
	})
	if ok {
		s.log.Info("term inserted", slog.Int64("id", id), slog.String("word_name", in.WordName))
	}
	return id, ok
}

// Update overwrites the columns set in p. Nil fields keep their current value.
// Returns false when the id does not exist or the store fails.
func (s *Store) Update(ctx context.Context, id int64, p domain.TermPatch) bool {
	var n int64
	ok := s.withConn(ctx, "update", func(db *sql.DB) error {
		q := `UPDATE terms SET
			word_name = COALESCE(?, word_name),
			yomi      = COALESCE(?, yomi),
			"explain" = COALESCE(?, "explain"),
			tag       = COALESCE(?, tag),
			category  = COALESCE(?, category)
			WHERE id = ?`
		res, err := db.ExecContext(ctx, rebind(s.driver, q),
			patchArg(p.WordName), patchArg(p.Yomi), patchArg(p.Explain), patchArg(p.Tag), patchArg(p.Category), id)
		if err != nil {
			return fmt.Errorf("update term %d: %w", id, err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return ok && n > 0
}

// Delete physically removes the term with id. Returns false when nothing was deleted.
func (s *Store) Delete(ctx context.Context, id int64) bool {
	var n int64
	ok := s.withConn(ctx, "delete", func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, rebind(s.driver, `DELETE FROM terms WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete term %d: %w", id, err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	if ok && n > 0 {
		s.log.Info("term deleted", slog.Int64("id", id))
	}
	return ok && n > 0
}

// NextID returns the smallest id strictly greater than id.
func (s *Store) NextID(ctx context.Context, id int64) (int64, bool) {
	return s.scalarID(ctx, "next_id", `SELECT id FROM terms WHERE id > ? ORDER BY id ASC LIMIT 1`, id)
}

// PrevID returns the largest id strictly less than id.
func (s *Store) PrevID(ctx context.Context, id int64) (int64, bool) {
	return s.scalarID(ctx, "prev_id", `SELECT id FROM terms WHERE id < ? ORDER BY id DESC LIMIT 1`, id)
}

// FirstID returns the smallest id in the table.
func (s *Store) FirstID(ctx context.Context) (int64, bool) {
	return s.scalarID(ctx, "first_id", `SELECT id FROM terms ORDER BY id ASC LIMIT 1`)
}

func (s *Store) scalarID(ctx context.Context, op, q string, args ...any) (int64, bool) {
	var id int64
	found := false
	ok := s.withConn(ctx, op, func(db *sql.DB) error {
		err := db.QueryRowContext(ctx, rebind(s.driver, q), args...).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		found = true
		return nil
	})
	return id, ok && found
}

// DistinctValues lists the distinct non-empty raw values of column ("tag" or "category").
func (s *Store) DistinctValues(ctx context.Context, column string) []string {
	switch column {
	case "tag", "category":
	default:
		s.log.Warn("distinct on unsupported column", slog.String("column", column))
		return nil
	}
	var out []string
	ok := s.withConn(ctx, "distinct_"+column, func(db *sql.DB) error {
		q := "SELECT DISTINCT " + column + " FROM terms WHERE " + column + " IS NOT NULL AND " + column + " <> '' ORDER BY " + column
		rows, err := db.QueryContext(ctx, q)
		if err != nil {
			return fmt.Errorf("query distinct %s: %w", column, err)
		}
		defer rows.Close()
		vals := make([]string, 0, 16)
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return fmt.Errorf("scan %s: %w", column, err)
			}
			vals = append(vals, v)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate %s: %w", column, err)
		}
		out = vals
		return nil
	})
	if !ok {
		return nil
	}
	return out
}

// Stats counts distinct names overall and per category. Terms without a category are
// part of the total only.
func (s *Store) Stats(ctx context.Context) (domain.Stats, bool) {
	st := domain.Stats{ByCategory: map[string]int{}}
	ok := s.withConn(ctx, "stats", func(db *sql.DB) error {
		if err := db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT word_name) FROM terms`).Scan(&st.Total); err != nil {
			return fmt.Errorf("count terms: %w", err)
		}
		rows, err := db.QueryContext(ctx, `SELECT category, COUNT(DISTINCT word_name) FROM terms
			WHERE category IS NOT NULL AND category <> '' GROUP BY category`)
		if err != nil {
			return fmt.Errorf("count categories: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var cat string
			var n int
			if err := rows.Scan(&cat, &n); err != nil {
				return fmt.Errorf("scan category count: %w", err)
			}
			st.ByCategory[cat] = n
		}
		return rows.Err()
	})
	return st, ok
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTerm(sc scanner) (domain.Term, error) {
	var (
		t                             domain.Term
		yomi, explain, tag, category sql.NullString
	)
	if err := sc.Scan(&t.ID, &t.WordName, &yomi, &explain, &tag, &category); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan term: %w", err)
	}
	t.Yomi, t.Explain, t.Tag, t.Category = yomi.String, explain.String, tag.String, category.String
	return t, nil
}

// nullable stores empty optional fields as NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func patchArg(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
