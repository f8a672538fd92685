/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package console

import (
	"fmt"
	"strconv"
	"strings"

	"wordbook/internal/controller"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/validation"
)

// HomeView lists the screens.
type HomeView struct {
	term *Terminal
}

func (v *HomeView) Show() {
	for _, id := range screen.All() {
		if id == screen.Home {
			continue
		}
		line := fmt.Sprintf("  %-10s %s", id.String(), id.Title())
		if id == screen.Quiz {
			v.term.faint(line + " (" + controller.MsgNotImplemented + ")")
			continue
		}
		_, _ = fmt.Fprintln(v.term.out(), line)
	}
}

func (v *HomeView) Hide()                {}
func (v *HomeView) ShowError(msg string) { v.term.error(msg) }

// BookView prints the current flashcard.
type BookView struct {
	term *Terminal
}

func (v *BookView) Show() {}
func (v *BookView) Hide() {}

func (v *BookView) Render(st controller.WordbookState) {
	if st.TermID == 0 {
		v.term.faint(controller.MsgNoTerms)
		return
	}
	v.term.table([][2]string{
		{validation.FieldLabel("word_name"), st.DisplayName()},
		{validation.FieldLabel("explain"), st.DisplayDescription()},
		{validation.FieldLabel("tag"), st.Tag},
		{validation.FieldLabel("category"), st.Category},
		{"ID", strconv.FormatInt(st.TermID, 10)},
	})
}

func (v *BookView) ShowInfo(msg string)     { v.term.info(msg) }
func (v *BookView) ShowError(msg string)    { v.term.error(msg) }
func (v *BookView) Confirm(msg string) bool { return v.term.Confirm(msg) }

// ListView prints term names and details.
type ListView struct {
	term *Terminal
}

func (v *ListView) Show() {}
func (v *ListView) Hide() {}

func (v *ListView) RenderList(names []string, emptyMessage string) {
	v.term.Lines(names, emptyMessage)
}

func (v *ListView) RenderFilter(st controller.ListState) {
	var parts []string
	parts = append(parts, "mode="+string(st.Mode))
	if st.Category != "" {
		parts = append(parts, "row="+st.Category.String())
	}
	if st.Tag != "" {
		parts = append(parts, "tag="+st.Tag)
	}
	if st.Query != "" {
		parts = append(parts, "search="+st.Query)
	}
	v.term.faint(strings.Join(parts, " "))
}

func (v *ListView) ShowDetail(d controller.TermDetail, _ model.EditForm) {
	v.term.table([][2]string{
		{"ID", strconv.FormatInt(d.ID, 10)},
		{validation.FieldLabel("word_name"), d.Name},
		{validation.FieldLabel("yomi"), d.Yomi},
		{validation.FieldLabel("explain"), d.Explain},
		{validation.FieldLabel("tag"), d.Tag},
		{validation.FieldLabel("category"), d.Category},
	})
}

func (v *ListView) ShowFieldErrors(fields map[string]string) { v.term.FieldErrors(fields) }
func (v *ListView) ShowSuccess(msg string)                   { v.term.success(msg) }
func (v *ListView) ShowError(msg string)                     { v.term.error(msg) }
func (v *ListView) Confirm(msg string) bool                  { return v.term.Confirm(msg) }

// EntryView is the registration form. Values come from Set, not from interactive input.
type EntryView struct {
	term       *Terminal
	form       model.EntryForm
	categories []string
	makers     []string
}

// Set fills the form before the controller submits it.
func (v *EntryView) Set(f model.EntryForm) { v.form = f }

// Show lists the pickers when the form is still empty.
func (v *EntryView) Show() {
	if v.form != (model.EntryForm{}) {
		return
	}
	v.term.faint(validation.FieldLabel("category") + ": " + strings.Join(v.categories, ", "))
	v.term.faint(validation.FieldLabel("maker") + ": " + strings.Join(v.makers, ", "))
}

func (v *EntryView) Hide() {}

func (v *EntryView) Form() model.EntryForm { return v.form }

func (v *EntryView) SetChoices(categories, makers []string) {
	v.categories = categories
	v.makers = makers
}

func (v *EntryView) ShowFieldErrors(fields map[string]string) { v.term.FieldErrors(fields) }
func (v *EntryView) ShowSuccess(msg string)                   { v.term.success(msg) }
func (v *EntryView) ShowError(msg string)                     { v.term.error(msg) }
func (v *EntryView) Confirm(msg string) bool                  { return v.term.Confirm(msg) }
func (v *EntryView) ClearInputs()                             { v.form = model.EntryForm{} }
