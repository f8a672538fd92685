/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package model holds the screen models. Each wraps the term store and keeps the small
// amount of per-screen state the controllers need (cache, cursor).
package model

import (
	"context"

	"wordbook/internal/domain"
	"wordbook/internal/store"
)

// TermStore is the subset of *store.Store the models use.
type TermStore interface {
	Available(ctx context.Context) bool
	FetchAll(ctx context.Context, f store.Filter) []domain.Term
	Names(ctx context.Context, f store.Filter) []string
	FetchOne(ctx context.Context, f store.Filter) (domain.Term, bool)
	Insert(ctx context.Context, in domain.TermFields) (int64, bool)
	Update(ctx context.Context, id int64, p domain.TermPatch) bool
	Delete(ctx context.Context, id int64) bool
	NextID(ctx context.Context, id int64) (int64, bool)
	PrevID(ctx context.Context, id int64) (int64, bool)
	FirstID(ctx context.Context) (int64, bool)
	DistinctValues(ctx context.Context, column string) []string
	Stats(ctx context.Context) (domain.Stats, bool)
}

var _ TermStore = (*store.Store)(nil)

// available is nil-safe: a model built without a store behaves as "database not found".
func available(ctx context.Context, s TermStore) bool {
	return s != nil && s.Available(ctx)
}
