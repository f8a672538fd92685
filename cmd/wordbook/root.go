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
	"github.com/spf13/cobra"

	applog "wordbook/internal/log"
)

func newRootCmd(c *cli) *cobra.Command {
	var titles bool
	cmd := &cobra.Command{
		Use:           "wordbook",
		Short:         "Vocabulary flashcards and term dictionary.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.logLevel != "" {
				applog.SetLevel(c.logLevel)
			}
			if c.stateDir != "" {
				c.cfg.State.Dir = c.stateDir
			}
			c.term.Quiet = !titles
			return c.cfg.Validate()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.flush()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.dbPath, "db", "", "SQLite database file (overrides store.path and the driver).")
	flags.StringVar(&c.stateDir, "state-dir", "", "Directory for session state.")
	flags.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flags.BoolVarP(&c.term.Yes, "yes", "y", false, "Answer yes to every confirmation.")
	flags.BoolVar(&titles, "titles", false, "Print the screen title before the output.")

	addHome(cmd, c)
	addList(cmd, c)
	addShow(cmd, c)
	addTags(cmd, c)
	addStats(cmd, c)
	addCard(cmd, c)
	addNext(cmd, c)
	addPrev(cmd, c)
	addAdd(cmd, c)
	addUpdate(cmd, c)
	addDelete(cmd, c)
	addInit(cmd, c)
	addExport(cmd, c)
	addImport(cmd, c)
	addSession(cmd, c)
	addConfig(cmd, c)
	addUI(cmd, c)
	addVersion(cmd)
	return cmd
}
