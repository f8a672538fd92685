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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"wordbook/internal/bundle"
	"wordbook/internal/domain"
	"wordbook/internal/export"
	"wordbook/internal/store"
)

func addInit(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty term database.",
		Long:  "Create an empty term database. The path defaults to --db, then store.path, then ./" + store.DBFileName + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := store.DBFileName
			switch {
			case len(args) == 1:
				path = args[0]
			case c.dbPath != "":
				path = c.dbPath
			case c.cfg.Store.Path != "":
				path = c.cfg.Store.Path
			}
			s, err := store.Create(cmd.Context(), path)
			if err != nil {
				return err
			}
			c.term.Success("作成しました: " + s.Path())
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// exportFilter selects the exported terms.
type exportFilter struct {
	row string
	tag string
}

func (f *exportFilter) add(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.row, "row", "", "Only terms whose reading starts in this kana row.")
	cmd.Flags().StringVar(&f.tag, "tag", "", "Only terms carrying this tag.")
}

func (f *exportFilter) terms(cmd *cobra.Command, c *cli) ([]domain.Term, error) {
	s, err := c.requireStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	q := store.Filter{OrderByYomi: true}
	if f.row != "" {
		r, err := domain.ParseRow(f.row)
		if err != nil {
			return nil, err
		}
		q.YomiInitials = r.Members()
	}
	terms := s.FetchAll(cmd.Context(), q)
	if f.tag == "" {
		return terms, nil
	}
	out := terms[:0]
	for _, t := range terms {
		if domain.HasListItem(t.Tag, f.tag) {
			out = append(out, t)
		}
	}
	return out, nil
}

func addExport(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export terms as printable flashcards or as a JSON bundle.",
	}

	var pf exportFilter
	opt := export.CardOptions{}
	pdf := &cobra.Command{
		Use:   "pdf <out.pdf>",
		Short: "Write flashcards to a PDF.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := pf.terms(cmd, c)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("font") {
				opt.FontPath = c.cfg.Export.FontPath
			}
			if !cmd.Flags().Changed("per-page") {
				opt.CardsPerPage = c.cfg.Export.CardsPerPage
			}
			if err := export.FlashcardsPDF(terms, args[0], opt); err != nil {
				return err
			}
			c.term.Success(fmt.Sprintf("%d 枚のカードを書き出しました: %s", len(terms), args[0]))
			return nil
		},
	}
	pf.add(pdf)
	pdf.Flags().StringVar(&opt.Title, "title", "", "Header printed on every page.")
	pdf.Flags().StringVar(&opt.FontPath, "font", "", "TTF font with Japanese glyphs.")
	pdf.Flags().IntVar(&opt.CardsPerPage, "per-page", 8, "Cards per page (even).")
	pdf.Flags().BoolVar(&opt.HideNames, "hide-names", false, "Print ??? instead of the names.")
	pdf.Flags().BoolVar(&opt.HideExplain, "hide-explain", false, "Print ??? instead of the explanations.")
	pdf.Flags().BoolVar(&opt.Guides, "guides", false, "Draw cut lines.")

	var jf exportFilter
	jsonCmd := &cobra.Command{
		Use:   "json <out.json|->",
		Short: "Write a JSON term bundle.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := jf.terms(cmd, c)
			if err != nil {
				return err
			}
			b := bundle.New(terms, time.Now())
			if args[0] == "-" {
				return bundle.Write(cmd.OutOrStdout(), b)
			}
			if err := writeFile(args[0], func(w io.Writer) error { return bundle.Write(w, b) }); err != nil {
				return err
			}
			c.term.Success(fmt.Sprintf("%d 件を書き出しました: %s", len(terms), args[0]))
			return nil
		},
	}
	jf.add(jsonCmd)

	cmd.AddCommand(pdf, jsonCmd)
	topLevel.AddCommand(cmd)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func addImport(topLevel *cobra.Command, c *cli) {
	skip := true
	cmd := &cobra.Command{
		Use:   "import <bundle.json|->",
		Short: "Add the terms of a JSON bundle.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			b, err := bundle.Read(r)
			if err != nil {
				return err
			}
			if err := c.screens(cmd.Context()); err != nil {
				return err
			}
			res, err := bundle.Import(cmd.Context(), c.models.WordList(), b, skip)
			c.coord.TermsChanged()
			if err != nil {
				return err
			}
			c.term.Success(fmt.Sprintf("追加 %d / スキップ %d / 失敗 %d", res.Added, res.Skipped, res.Failed))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skip, "skip-existing", true, "Skip names that already exist.")
	topLevel.AddCommand(cmd)
}
