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
	"strconv"

	"github.com/spf13/cobra"

	"wordbook/internal/controller"
	"wordbook/internal/domain"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/store"
	"wordbook/internal/validation"
)

func addHome(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "home",
		Short: "List the screens.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.screens(cmd.Context()); err != nil {
				return err
			}
			return c.coord.Switch(screen.Home)
		},
	}
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, c *cli) {
	var all bool
	var row, mode, tag, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List term names with the saved or given filter.",
		Long: "List term names. Without flags the filter of the previous list is reused;\n" +
			"any filter flag starts from an unfiltered list.",
		Example: `
wordbook list --all
wordbook list --row か
wordbook list --row さ --mode category
wordbook list --tag 生物
wordbook list --search 原子
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fm controller.FilterMode
			if mode != "" {
				m, ok := controller.ParseFilterMode(mode)
				if !ok {
					return fmt.Errorf("unknown mode %q, want yomi or category", mode)
				}
				fm = m
			}
			var kr domain.KanaRow
			if row != "" {
				r, err := domain.ParseRow(row)
				if err != nil {
					return err
				}
				kr = r
			}
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			reset := all || row != "" || tag != "" || search != ""
			c.term.Muted(func() {
				if reset {
					ctrl.ListAll()
				}
				if fm != "" {
					ctrl.SetFilterMode(fm)
				}
				if kr != "" {
					ctrl.SelectCategory(kr)
				}
				if tag != "" {
					ctrl.SelectTag(tag)
				}
				if search != "" {
					ctrl.Search(search)
				}
			})
			ctrl.Refresh()
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Drop every filter.")
	cmd.Flags().StringVar(&row, "row", "", "Kana row (あ, か, さ, た, な, は, ま, や, ら, わ).")
	cmd.Flags().StringVar(&mode, "mode", "", "Row filter column: yomi or category.")
	cmd.Flags().StringVar(&tag, "tag", "", "Only terms carrying this tag.")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive substring of the name.")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the details of a term.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			ctrl.Detail(args[0])
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addTags(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			c.term.Lines(ctrl.Tags(), controller.MsgNoTerms)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addStats(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count terms per category.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			st, ok := ctrl.Stats()
			if !ok {
				c.term.Error(controller.MsgNoDatabase)
				return errReported
			}
			c.term.Stats(st)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

// cardFlags are the visibility toggles of the flashcard commands. Both start visible.
type cardFlags struct {
	hideName    bool
	hideExplain bool
}

func (f *cardFlags) add(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.hideName, "hide-name", false, "Mask the term name.")
	cmd.Flags().BoolVar(&f.hideExplain, "hide-explain", false, "Mask the explanation.")
}

func (f *cardFlags) apply(c *cli, ctrl *controller.Wordbook) {
	c.term.Muted(func() {
		if f.hideName {
			ctrl.ToggleName()
		}
		if f.hideExplain {
			ctrl.ToggleDescription()
		}
	})
}

func addCard(topLevel *cobra.Command, c *cli) {
	var flags cardFlags
	cmd := &cobra.Command{
		Use:   "card [name]",
		Short: "Show the current flashcard, or jump to the named term.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.wordbook(cmd.Context())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				c.term.Muted(func() { err = c.coord.OpenWordbook(args[0]) })
				if err != nil {
					c.term.Error(controller.MsgTermNotFound)
					return errReported
				}
			}
			flags.apply(c, ctrl)
			ctrl.Show()
			return nil
		},
	}
	flags.add(cmd)
	topLevel.AddCommand(cmd)
}

func addNext(topLevel *cobra.Command, c *cli) {
	addStep(topLevel, c, "next", "Move to the next flashcard.", (*controller.Wordbook).Next)
}

func addPrev(topLevel *cobra.Command, c *cli) {
	addStep(topLevel, c, "prev", "Move to the previous flashcard.", (*controller.Wordbook).Previous)
}

func addStep(topLevel *cobra.Command, c *cli, use, short string, step func(*controller.Wordbook)) {
	var flags cardFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl, err := c.wordbook(cmd.Context())
			if err != nil {
				return err
			}
			flags.apply(c, ctrl)
			step(ctrl)
			return nil
		},
	}
	flags.add(cmd)
	topLevel.AddCommand(cmd)
}

func addAdd(topLevel *cobra.Command, c *cli) {
	var f model.EntryForm
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new term.",
		Example: `
wordbook add --name 光合成 --yomi こうごうせい --explain "植物が光で糖を作る反応" --category 生物 --maker 松下
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.screens(cmd.Context()); err != nil {
				return err
			}
			c.views.Entry().Set(f)
			if err := c.coord.Switch(screen.WordEntry); err != nil {
				return err
			}
			ctrl, _ := c.coord.Controller(screen.WordEntry)
			if _, ok := ctrl.(*controller.WordEntry).Submit(); !ok {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&f.WordName, "name", "", "Term name (required).")
	cmd.Flags().StringVar(&f.Yomi, "yomi", "", "Reading in kana.")
	cmd.Flags().StringVar(&f.Explain, "explain", "", "Explanation (required).")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category.")
	cmd.Flags().StringVar(&f.Maker, "maker", "", "Author of the entry, stored as the tag.")
	topLevel.AddCommand(cmd)
}

// lookup finds a term by numeric id, falling back to the name so numeric names still resolve.
func lookup(cmd *cobra.Command, c *cli, ref string) (domain.Term, error) {
	s, err := c.requireStore(cmd.Context())
	if err != nil {
		return domain.Term{}, err
	}
	var (
		t  domain.Term
		ok bool
	)
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil && id > 0 {
		t, ok = s.FetchOne(cmd.Context(), store.Filter{ID: id})
	}
	if !ok {
		t, ok = s.FetchOne(cmd.Context(), store.Filter{Name: ref})
	}
	if !ok {
		c.term.Error(controller.MsgTermNotFound)
		return domain.Term{}, errReported
	}
	return t, nil
}

func addUpdate(topLevel *cobra.Command, c *cli) {
	var in model.EditForm
	cmd := &cobra.Command{
		Use:   "update <id|name>",
		Short: "Change the fields of a term. Fields without a flag keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			t, err := lookup(cmd, c, args[0])
			if err != nil {
				return err
			}
			f := model.EditFormOf(t)
			changed := false
			for flag, dst := range map[string]*string{
				"name": &f.WordName, "yomi": &f.Yomi, "explain": &f.Explain, "tag": &f.Tag, "category": &f.Category,
			} {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					*dst = v
					changed = true
				}
			}
			if !changed {
				return errors.New("nothing to update, pass at least one field flag")
			}
			var verr *validation.Error
			if err := f.Validate(); errors.As(err, &verr) {
				c.term.FieldErrors(verr.Fields)
				return errReported
			}
			var ok bool
			c.term.Muted(func() { ok = ctrl.Update(t.ID, f) })
			if !ok {
				c.term.Error(controller.MsgUpdateFailed)
				return errReported
			}
			c.term.Success(controller.MsgUpdated)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.WordName, "name", "", "Term name.")
	cmd.Flags().StringVar(&in.Yomi, "yomi", "", "Reading.")
	cmd.Flags().StringVar(&in.Explain, "explain", "", "Explanation.")
	cmd.Flags().StringVar(&in.Tag, "tag", "", "Comma separated tags.")
	cmd.Flags().StringVar(&in.Category, "category", "", "Comma separated categories.")
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command, c *cli) {
	cmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a term after confirmation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.wordList(cmd.Context())
			if err != nil {
				return err
			}
			t, err := lookup(cmd, c, args[0])
			if err != nil {
				return err
			}
			if !c.term.Confirm(controller.MsgConfirmDelete(t.WordName)) {
				return nil
			}
			yes := c.term.Yes
			c.term.Yes = true
			defer func() { c.term.Yes = yes }()
			var ok bool
			c.term.Muted(func() { ok = ctrl.Delete(t.ID, t.WordName) })
			if !ok {
				c.term.Error(controller.MsgDeleteFailed)
				return errReported
			}
			c.term.Success(controller.MsgDeleted)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
