/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui hosts the desktop views. The Fyne implementation is compiled with -tags fyne
// and cgo; other builds get a stub Run that explains how to enable it.
package ui

import (
	"wordbook/internal/app"
	"wordbook/internal/controller"
	"wordbook/internal/screen"
)

// Options carry what the desktop app needs from the command line.
type Options struct {
	Models      *app.Models
	State       controller.StateStore
	FilterMode  controller.FilterMode
	StartScreen screen.ID
	// NoDatabase is set when no database could be opened; the user is told once at startup.
	NoDatabase bool
}
