/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package store implements the term store: the single terms table behind every screen.
// The default backend is a local SQLite file (word_master.db) opened through the pure-Go
// modernc driver; a shared Postgres database can be used instead via pgx.
//
// Each operation opens its own scoped connection, runs one parameterised statement and closes
// the connection again. Operation failures are logged and reported as an absent result
// (nil, false, 0); they are routine for callers, never panics or propagated errors.
package store
