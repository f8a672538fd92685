/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"os"

	"wordbook/internal/config"
	"wordbook/internal/console"
	"wordbook/internal/crash"
	applog "wordbook/internal/log"
)

func main() {
	cfg, password, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	applog.Init(logOptions(cfg))

	stateDir, _ := cfg.StateDir()
	c := newCLI(cfg, password, console.NewTerminal(os.Stdin))
	defer crash.Recover(stateDir, c.flush)

	if err := newRootCmd(c).Execute(); err != nil {
		if !errors.Is(err, errReported) {
			c.term.Error("Error: " + err.Error())
		}
		os.Exit(1)
	}
}

func logOptions(cfg config.AppConfig) applog.Options {
	return applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
}
