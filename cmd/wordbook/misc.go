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
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"wordbook/internal/app"
	"wordbook/internal/config"
	"wordbook/internal/screen"
	"wordbook/internal/store"
	"wordbook/internal/ui"
	"wordbook/internal/version"
)

func addSession(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the saved screen state.",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "List the saved state keys.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.stateStore() == nil {
				return errors.New("no state directory")
			}
			c.term.Lines(c.state.Keys(cmd.Context()), "(empty)")
			return nil
		},
	}
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved list filter and flashcard position.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.stateStore() == nil {
				return errors.New("no state directory")
			}
			if !c.term.Confirm("保存された画面の状態を削除しますか？") {
				return nil
			}
			for _, k := range c.state.Keys(cmd.Context()) {
				if err := c.state.Delete(k); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(show, reset)
	topLevel.AddCommand(cmd)
}

func addConfig(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or store the configuration.",
	}
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(c.cfg)
			if err != nil {
				return err
			}
			path, _ := config.ConfigPath()
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "# %s\n", path); err != nil {
				return err
			}
			for _, key := range config.Overridden() {
				env, _ := config.EnvOverrideFor(key)
				if _, err := fmt.Fprintf(w, "# %s is set by %s\n", key, env); err != nil {
					return err
				}
			}
			_, err = w.Write(out)
			return err
		},
	}
	var passwordStdin bool
	save := &cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to the config file.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw := ""
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				pw = strings.TrimRight(line, "\r\n")
			}
			if c.dbPath != "" {
				c.cfg.Store.Driver, c.cfg.Store.Path = string(store.DriverSQLite), c.dbPath
			}
			if err := config.Save(c.cfg, pw); err != nil {
				return err
			}
			path, _ := config.ConfigPath()
			c.term.Success("保存しました: " + path)
			return nil
		},
	}
	save.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the Postgres password from stdin into the OS keyring.")
	forget := &cobra.Command{
		Use:   "forget-password",
		Short: "Remove the Postgres password from the OS keyring.",
		RunE: func(*cobra.Command, []string) error {
			return config.ForgetPassword()
		},
	}
	cmd.AddCommand(show, save, forget)
	topLevel.AddCommand(cmd)
}

func addUI(topLevel *cobra.Command, c *cli) {
	var start string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Launch the desktop app (build with -tags fyne).",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if start == "" {
				start = c.cfg.UI.StartScreen
			}
			id, err := screen.Parse(start)
			if err != nil {
				return err
			}
			// A missing database is shown inside the app, not reported here.
			_, err = c.openStore(cmd.Context())
			if err != nil {
				c.log.Warn("starting without a database", slog.Any("err", err))
			}
			return ui.Run(ui.Options{
				Models:      app.NewModels(c.termStore()),
				State:       c.stateStore(),
				FilterMode:  c.filterMode(),
				StartScreen: id,
				NoDatabase:  err != nil,
			})
		},
	}
	cmd.Flags().StringVar(&start, "screen", "", "Start screen: home, wordbook, wordlist or wordentry.")
	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the wordbook version.",
		Example: `
wordbook version
wordbook version -o yaml
`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Formatted(shortened, output))
		},
	}
	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	topLevel.AddCommand(cmd)
}
