/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package version carries build metadata injected via -ldflags.
package version

import (
	"fmt"

	goversion "go.hein.dev/go-version"
)

// Overridden at build time, e.g.
//
//	go build -ldflags "-X wordbook/internal/version.Version=v1.2.0 -X wordbook/internal/version.Commit=abc123"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns a short human-readable version line.
func String() string {
	if Commit == "none" || Commit == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}

// Formatted renders version information as json or yaml; short prints the version number only.
func Formatted(short bool, output string) string {
	return goversion.FuncWithOutput(short, Version, Commit, Date, output)
}
