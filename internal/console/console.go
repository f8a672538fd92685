/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package console renders the screens on a terminal. The views are plain renderers: the
// controllers decide what to show, the console only prints it.
package console

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"wordbook/internal/controller"
	"wordbook/internal/domain"
)

// Terminal is the shared output and prompt of every console view.
type Terminal struct {
	Out io.Writer
	In  io.Reader
	// Yes answers every confirmation with yes.
	Yes bool
	// Quiet suppresses the screen titles.
	Quiet bool

	reader *bufio.Reader
	muted  bool
}

// NewTerminal writes to color.Output and prompts on in.
func NewTerminal(in io.Reader) *Terminal {
	return &Terminal{Out: color.Output, In: in}
}

// Muted runs fn with all output discarded, e.g. while filters are replayed before one render.
func (t *Terminal) Muted(fn func()) {
	prev := t.muted
	t.muted = true
	defer func() { t.muted = prev }()
	fn()
}

func (t *Terminal) out() io.Writer {
	if t.muted {
		return io.Discard
	}
	if t.Out == nil {
		return color.Output
	}
	return t.Out
}

// SetTitle prints the window title as a heading.
func (t *Terminal) SetTitle(title string) {
	if t.Quiet {
		return
	}
	_, _ = color.New(color.Bold, color.Underline).Fprintln(t.out(), title)
}

func (t *Terminal) info(msg string) {
	_, _ = color.New(color.FgHiYellow).Fprintln(t.out(), msg)
}

func (t *Terminal) success(msg string) {
	_, _ = color.New(color.FgGreen).Fprintln(t.out(), msg)
}

func (t *Terminal) error(msg string) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(t.out(), msg)
}

func (t *Terminal) faint(msg string) {
	_, _ = color.New(color.Faint, color.Italic).Fprintln(t.out(), msg)
}

func (t *Terminal) table(rows [][2]string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	for _, r := range rows {
		tbl.AddRow(color.New(color.Bold).Sprint(r[0]), r[1])
	}
	_, _ = fmt.Fprintln(t.out(), tbl)
}

// FieldErrors prints validation messages in field order.
func (t *Terminal) FieldErrors(fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.error(fields[k])
	}
}

// Stats prints the total, then one row per category in name order.
func (t *Terminal) Stats(st domain.Stats) {
	cats := make([]string, 0, len(st.ByCategory))
	for c := range st.ByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(color.New(color.Bold).Sprint("合計"), st.Total)
	for _, c := range cats {
		tbl.AddRow(c, st.ByCategory[c])
	}
	_, _ = fmt.Fprintln(t.out(), tbl)
}

// Lines prints one value per line, or the faint message when there is nothing to print.
func (t *Terminal) Lines(values []string, emptyMessage string) {
	if len(values) == 0 {
		t.faint(emptyMessage)
		return
	}
	for _, v := range values {
		_, _ = fmt.Fprintln(t.out(), v)
	}
}

// Error prints msg as an error.
func (t *Terminal) Error(msg string) { t.error(msg) }

// Success prints msg as a success note.
func (t *Terminal) Success(msg string) { t.success(msg) }

// Confirm asks a yes/no question. Without input it answers no.
func (t *Terminal) Confirm(msg string) bool {
	if t.Yes {
		return true
	}
	if t.In == nil {
		return false
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}
	_, _ = fmt.Fprintf(t.out(), "%s [y/N]: ", msg)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(t.out())
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "はい":
		return true
	}
	return false
}

// Views hands out console views sharing one terminal.
type Views struct {
	term  *Terminal
	entry *EntryView
}

// NewViews returns the console view set.
func NewViews(t *Terminal) *Views {
	return &Views{term: t, entry: &EntryView{term: t}}
}

func (v *Views) Home() controller.HomeView           { return &HomeView{term: v.term} }
func (v *Views) Wordbook() controller.WordbookView   { return &BookView{term: v.term} }
func (v *Views) WordList() controller.WordListView   { return &ListView{term: v.term} }
func (v *Views) WordEntry() controller.WordEntryView { return v.entry }

// Entry is the registration view; the CLI fills its form from flags before submitting.
func (v *Views) Entry() *EntryView { return v.entry }
