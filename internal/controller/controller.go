/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package controller mediates between the screen models and their views. Controllers own
// all screen state as plain structs; views only render what they are given.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	applog "wordbook/internal/log"
)

// User-facing messages.
const (
	MsgNoDatabase     = "データベースが見つかりません"
	MsgNoSearchResult = "該当する用語はありません"
	MsgNoTerms        = "登録されている用語はありません"
	MsgTermNotFound   = "用語が見つかりません"
	MsgAtLast         = "これが最後の用語です"
	MsgAtFirst        = "これが最初の用語です"
	MsgAdded          = "単語を追加しました。"
	MsgAddFailed      = "追加に失敗しました。"
	MsgUpdated        = "更新しました。"
	MsgUpdateFailed   = "更新に失敗しました。"
	MsgDeleted        = "削除しました。"
	MsgDeleteFailed   = "削除に失敗しました。"
	MsgConfirmReset   = "入力をリセットしますか？"
	MsgNotImplemented = "この画面はまだ実装されていません"
)

// MsgEmptyRow is shown when a kana-row filter matches nothing.
func MsgEmptyRow(row string) string { return fmt.Sprintf("%s行の用語はありません", row) }

// MsgEmptyTag is shown when a tag filter matches nothing.
func MsgEmptyTag(tag string) string { return fmt.Sprintf("タグ「%s」の用語はありません", tag) }

// MsgConfirmDelete asks before a term is removed.
func MsgConfirmDelete(name string) string {
	return fmt.Sprintf("'%s'を削除しますか？\nこの操作は元に戻せません。", name)
}

// StateStore persists view-model snapshots between sessions.
type StateStore interface {
	Save(key string, v any) error
	Load(key string, v any) (bool, error)
}

// View is the part every screen view shares.
type View interface {
	Show()
	Hide()
}

// background is the context for store calls triggered by UI events.
func background() context.Context { return context.Background() }

// guard runs a user action and turns a panic into a log entry so the UI stays usable.
func guard(l *slog.Logger, op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithOperation(l, op).Error("recovered panic in controller",
				slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
		}
	}()
	fn()
}

func saveState(l *slog.Logger, st StateStore, key string, v any) {
	if st == nil {
		return
	}
	if err := st.Save(key, v); err != nil {
		l.Warn("save state failed", slog.String("key", key), slog.Any("err", err))
	}
}

func loadState(l *slog.Logger, st StateStore, key string, v any) bool {
	if st == nil {
		return false
	}
	ok, err := st.Load(key, v)
	if err != nil {
		l.Warn("load state failed", slog.String("key", key), slog.Any("err", err))
		return false
	}
	return ok
}
