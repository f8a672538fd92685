//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"wordbook/internal/app"
	"wordbook/internal/controller"
	"wordbook/internal/domain"
	applog "wordbook/internal/log"
	"wordbook/internal/model"
	"wordbook/internal/screen"
	"wordbook/internal/validation"
)

// Run opens the main window on the start screen and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	fyneApp := fyneapp.NewWithID("wordbook")
	w := fyneApp.NewWindow(app.TitlePrefix)
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 900)
	winH := prefs.IntWithFallback("window.height", 640)
	if winW < 640 {
		winW = 640
	}
	if winH < 480 {
		winH = 480
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	coord, err := newCoordinator(w, opts)
	if err != nil {
		return err
	}

	// Persist screen state and preferences on close
	w.SetCloseIntercept(func() {
		coord.HideCurrent()
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		w.Close()
	})

	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

// newCoordinator wires the Fyne views and shows the start screen, falling back to home.
func newCoordinator(w fyne.Window, opts Options) (*app.Coordinator, error) {
	models := opts.Models
	if models == nil {
		models = app.NewModels(nil)
	}
	coord := app.New(w, models)
	app.Wire(coord, models, &views{w: w}, app.Options{State: opts.State, FilterMode: opts.FilterMode})
	if err := coord.Switch(opts.StartScreen); err != nil {
		applog.WithComponent("ui").Warn("start screen unavailable",
			slog.String("screen", opts.StartScreen.String()), slog.Any("err", err))
		if err := coord.Switch(screen.Home); err != nil {
			return nil, fmt.Errorf("show home screen: %w", err)
		}
	}
	// The wordbook screen reports a missing database itself.
	if cur, _ := coord.Current(); opts.NoDatabase && cur != screen.Wordbook {
		dialog.ShowError(errors.New(controller.MsgNoDatabase), w)
	}
	return coord, nil
}

var buttonLabels = map[screen.ID]string{
	screen.Wordbook:  "単語帳",
	screen.WordList:  "単語一覧",
	screen.WordEntry: "単語登録",
	screen.Quiz:      "クイズ",
}

type views struct {
	w fyne.Window
}

func (v *views) Home() controller.HomeView           { return newHomeView(v.w) }
func (v *views) Wordbook() controller.WordbookView   { return newBookView(v.w) }
func (v *views) WordList() controller.WordListView   { return newListView(v.w) }
func (v *views) WordEntry() controller.WordEntryView { return newEntryView(v.w) }

// page is the part shared by every screen: it owns the content shown by Show.
// Fyne dialogs do not block, so a destructive action asks first and then runs the
// controller with armed set; Confirm only reports that answer.
type page struct {
	w       fyne.Window
	content fyne.CanvasObject
	armed   bool
}

func (p *page) Show() { p.w.SetContent(p.content) }
func (p *page) Hide() {}

func (p *page) Confirm(string) bool { return p.armed }

func (p *page) ask(msg string, action func()) {
	dialog.ShowConfirm("確認", msg, func(ok bool) {
		if !ok {
			return
		}
		p.armed = true
		defer func() { p.armed = false }()
		action()
	}, p.w)
}

func (p *page) ShowInfo(msg string)    { dialog.ShowInformation(app.TitlePrefix, msg, p.w) }
func (p *page) ShowSuccess(msg string) { dialog.ShowInformation(app.TitlePrefix, msg, p.w) }
func (p *page) ShowError(msg string)   { dialog.ShowError(errors.New(msg), p.w) }

func (p *page) ShowFieldErrors(fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fields[k])
	}
	dialog.ShowError(errors.New(strings.Join(msgs, "\n")), p.w)
}

type homeView struct {
	page
	ctrl *controller.Home
}

func newHomeView(w fyne.Window) *homeView {
	v := &homeView{page: page{w: w}}
	title := widget.NewLabelWithStyle(app.TitlePrefix, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	box := container.NewVBox(title, widget.NewSeparator())
	for _, id := range screen.All() {
		if id == screen.Home {
			continue
		}
		box.Add(widget.NewButton(buttonLabels[id], func() {
			if v.ctrl != nil {
				v.ctrl.Navigate(id)
			}
		}))
	}
	v.content = container.NewCenter(box)
	return v
}

func (v *homeView) Bind(c *controller.Home) { v.ctrl = c }

type bookView struct {
	page
	ctrl *controller.Wordbook
	st   controller.WordbookState

	name     *widget.Label
	desc     *widget.Label
	tag      *widget.Label
	category *widget.Label
}

func newBookView(w fyne.Window) *bookView {
	v := &bookView{page: page{w: w}}
	v.name = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	v.desc = widget.NewLabel("")
	v.desc.Wrapping = fyne.TextWrapWord
	v.tag = widget.NewLabel("")
	v.category = widget.NewLabel("")

	call := func(fn func(c *controller.Wordbook)) func() {
		return func() {
			if v.ctrl != nil {
				fn(v.ctrl)
			}
		}
	}
	card := widget.NewForm(
		widget.NewFormItem(validation.FieldLabel("word_name"), v.name),
		widget.NewFormItem(validation.FieldLabel("explain"), v.desc),
		widget.NewFormItem(validation.FieldLabel("tag"), v.tag),
		widget.NewFormItem(validation.FieldLabel("category"), v.category),
	)
	nav := container.NewGridWithColumns(2,
		widget.NewButton("前へ", call((*controller.Wordbook).Previous)),
		widget.NewButton("次へ", call((*controller.Wordbook).Next)),
		widget.NewButton("単語名の表示切替", call((*controller.Wordbook).ToggleName)),
		widget.NewButton("解説の表示切替", call((*controller.Wordbook).ToggleDescription)),
	)
	bottom := container.NewHBox(
		widget.NewButton("ホーム", call((*controller.Wordbook).GoHome)),
		widget.NewButton(buttonLabels[screen.WordList], call((*controller.Wordbook).GoWordList)),
		widget.NewButton("削除", func() {
			if v.ctrl == nil || v.st.TermID == 0 {
				return
			}
			v.ask(controller.MsgConfirmDelete(v.st.Name), func() { v.ctrl.Delete() })
		}),
	)
	v.content = container.NewBorder(nil, bottom, nil, nil, container.NewVBox(card, nav))
	return v
}

func (v *bookView) Bind(c *controller.Wordbook) { v.ctrl = c }

func (v *bookView) Render(st controller.WordbookState) {
	v.st = st
	if st.TermID == 0 {
		v.name.SetText(controller.MsgNoTerms)
		v.desc.SetText("")
		v.tag.SetText("")
		v.category.SetText("")
		return
	}
	v.name.SetText(st.DisplayName())
	v.desc.SetText(st.DisplayDescription())
	v.tag.SetText(st.Tag)
	v.category.SetText(st.Category)
}

const allTags = "（すべて）"

type listView struct {
	page
	ctrl *controller.WordList

	names   []string
	list    *widget.List
	empty   *widget.Label
	stats   *widget.Label
	mode    *widget.RadioGroup
	tags    *widget.Select
	search  *widget.Entry
	syncing bool

	selectedID   int64
	selectedName string
	detail       *widget.Label
	editName     *widget.Entry
	editYomi     *widget.Entry
	editExplain  *widget.Entry
	editTag      *widget.Entry
	editCategory *widget.Entry
}

func newListView(w fyne.Window) *listView {
	v := &listView{page: page{w: w}}

	v.list = widget.NewList(
		func() int { return len(v.names) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i >= 0 && int(i) < len(v.names) {
				o.(*widget.Label).SetText(v.names[i])
			} else {
				o.(*widget.Label).SetText("")
			}
		},
	)
	v.list.OnSelected = func(i widget.ListItemID) {
		if v.ctrl != nil && i >= 0 && int(i) < len(v.names) {
			v.ctrl.Detail(v.names[i])
		}
	}
	v.empty = widget.NewLabel("")
	v.stats = widget.NewLabel("")

	v.mode = widget.NewRadioGroup([]string{string(controller.ModeYomi), string(controller.ModeCategory)}, func(s string) {
		if v.syncing || v.ctrl == nil {
			return
		}
		if m, ok := controller.ParseFilterMode(s); ok {
			v.ctrl.SetFilterMode(m)
		}
	})
	v.mode.Horizontal = true
	v.tags = widget.NewSelect([]string{allTags}, func(s string) {
		if v.syncing || v.ctrl == nil {
			return
		}
		if s == allTags {
			v.ctrl.ClearTag()
			return
		}
		v.ctrl.SelectTag(s)
	})
	v.search = widget.NewEntry()
	v.search.SetPlaceHolder("検索")
	v.search.OnSubmitted = func(q string) {
		if v.ctrl != nil {
			v.ctrl.Search(q)
		}
	}

	rows := container.NewGridWithColumns(5)
	for _, r := range domain.Rows() {
		rows.Add(widget.NewButton(r.String(), func() {
			if v.ctrl != nil {
				v.ctrl.SelectCategory(r)
			}
		}))
	}
	filters := container.NewVBox(
		v.mode,
		rows,
		container.NewGridWithColumns(2,
			widget.NewButton("全て", func() {
				if v.ctrl != nil {
					v.ctrl.ListAll()
				}
			}),
			widget.NewButton("更新", func() {
				if v.ctrl != nil {
					v.ctrl.Refresh()
				}
			}),
		),
		v.tags,
		container.NewBorder(nil, nil, nil, widget.NewButton("×", func() {
			v.search.SetText("")
			if v.ctrl != nil {
				v.ctrl.ClearSearch()
			}
		}), v.search),
		v.stats,
	)

	v.detail = widget.NewLabel("")
	v.editName = widget.NewEntry()
	v.editYomi = widget.NewEntry()
	v.editExplain = widget.NewMultiLineEntry()
	v.editExplain.Wrapping = fyne.TextWrapWord
	v.editTag = widget.NewEntry()
	v.editCategory = widget.NewEntry()
	form := widget.NewForm(
		widget.NewFormItem(validation.FieldLabel("word_name"), v.editName),
		widget.NewFormItem(validation.FieldLabel("yomi"), v.editYomi),
		widget.NewFormItem(validation.FieldLabel("explain"), v.editExplain),
		widget.NewFormItem(validation.FieldLabel("tag"), v.editTag),
		widget.NewFormItem(validation.FieldLabel("category"), v.editCategory),
	)
	actions := container.NewGridWithColumns(2,
		widget.NewButton("追加", func() {
			if v.ctrl != nil {
				v.ctrl.Add(v.editForm())
			}
		}),
		widget.NewButton("更新", func() {
			if v.ctrl != nil && v.selectedID != 0 {
				v.ctrl.Update(v.selectedID, v.editForm())
			}
		}),
		widget.NewButton("削除", func() {
			if v.ctrl == nil || v.selectedID == 0 {
				return
			}
			id, name := v.selectedID, v.selectedName
			v.ask(controller.MsgConfirmDelete(name), func() {
				if v.ctrl.Delete(id, name) {
					v.clearDetail()
				}
			})
		}),
		widget.NewButton(buttonLabels[screen.Wordbook]+"で開く", func() {
			if v.ctrl != nil && v.selectedName != "" {
				v.ctrl.OpenWordbook(v.selectedName)
			}
		}),
	)
	right := container.NewVBox(v.detail, form, actions)

	center := container.NewBorder(v.empty, nil, nil, nil, v.list)
	split := container.NewHSplit(center, right)
	split.Offset = 0.4
	v.content = container.NewBorder(nil, nil, filters, nil, split)
	return v
}

func (v *listView) Bind(c *controller.WordList) { v.ctrl = c }

// Show refreshes the tag picker and the stats line before the controller renders.
func (v *listView) Show() {
	if v.ctrl != nil {
		v.tags.Options = append([]string{allTags}, v.ctrl.Tags()...)
		v.tags.Refresh()
		if st, ok := v.ctrl.Stats(); ok {
			v.stats.SetText(fmt.Sprintf("総数: %d", st.Total))
		}
	}
	v.page.Show()
}

func (v *listView) RenderList(names []string, emptyMessage string) {
	v.names = append(v.names[:0], names...)
	v.list.UnselectAll()
	v.list.Refresh()
	if len(names) == 0 {
		v.empty.SetText(emptyMessage)
		v.empty.Show()
		return
	}
	v.empty.Hide()
}

func (v *listView) RenderFilter(st controller.ListState) {
	v.syncing = true
	defer func() { v.syncing = false }()
	v.mode.SetSelected(string(st.Mode))
	if st.Tag == "" {
		v.tags.SetSelected(allTags)
	} else {
		v.tags.SetSelected(st.Tag)
	}
	if v.search.Text != st.Query {
		v.search.SetText(st.Query)
	}
}

func (v *listView) ShowDetail(d controller.TermDetail, edit model.EditForm) {
	v.selectedID, v.selectedName = d.ID, d.Name
	v.detail.SetText(fmt.Sprintf("%s: %s / %s: %s",
		validation.FieldLabel("tag"), d.Tag, validation.FieldLabel("category"), d.Category))
	v.editName.SetText(edit.WordName)
	v.editYomi.SetText(edit.Yomi)
	v.editExplain.SetText(edit.Explain)
	v.editTag.SetText(edit.Tag)
	v.editCategory.SetText(edit.Category)
}

func (v *listView) clearDetail() {
	v.selectedID, v.selectedName = 0, ""
	v.detail.SetText("")
	for _, e := range []*widget.Entry{v.editName, v.editYomi, v.editExplain, v.editTag, v.editCategory} {
		e.SetText("")
	}
}

func (v *listView) editForm() model.EditForm {
	return model.EditForm{
		WordName: v.editName.Text,
		Yomi:     v.editYomi.Text,
		Explain:  v.editExplain.Text,
		Tag:      v.editTag.Text,
		Category: v.editCategory.Text,
	}
}

type entryView struct {
	page
	ctrl *controller.WordEntry

	name     *widget.Entry
	yomi     *widget.Entry
	explain  *widget.Entry
	category *widget.Select
	maker    *widget.Select
}

func newEntryView(w fyne.Window) *entryView {
	v := &entryView{page: page{w: w}}
	v.name = widget.NewEntry()
	v.yomi = widget.NewEntry()
	v.explain = widget.NewMultiLineEntry()
	v.explain.Wrapping = fyne.TextWrapWord
	v.category = widget.NewSelect(nil, nil)
	v.maker = widget.NewSelect(nil, nil)

	form := widget.NewForm(
		widget.NewFormItem(validation.FieldLabel("word_name"), v.name),
		widget.NewFormItem(validation.FieldLabel("yomi"), v.yomi),
		widget.NewFormItem(validation.FieldLabel("explain"), v.explain),
		widget.NewFormItem(validation.FieldLabel("category"), v.category),
		widget.NewFormItem(validation.FieldLabel("maker"), v.maker),
	)
	buttons := container.NewHBox(
		widget.NewButton("登録", func() {
			if v.ctrl != nil {
				v.ctrl.Submit()
			}
		}),
		widget.NewButton("リセット", func() {
			if v.ctrl != nil {
				v.ask(controller.MsgConfirmReset, v.ctrl.Reset)
			}
		}),
		widget.NewButton("戻る", func() {
			if v.ctrl != nil {
				v.ctrl.Back()
			}
		}),
	)
	v.content = container.NewBorder(nil, buttons, nil, nil, form)
	return v
}

func (v *entryView) Bind(c *controller.WordEntry) { v.ctrl = c }

func (v *entryView) Form() model.EntryForm {
	return model.EntryForm{
		WordName: v.name.Text,
		Yomi:     v.yomi.Text,
		Explain:  v.explain.Text,
		Category: v.category.Selected,
		Maker:    v.maker.Selected,
	}
}

func (v *entryView) SetChoices(categories, makers []string) {
	v.category.Options = categories
	v.category.Refresh()
	v.maker.Options = makers
	v.maker.Refresh()
}

func (v *entryView) ClearInputs() {
	v.name.SetText("")
	v.yomi.SetText("")
	v.explain.SetText("")
	v.category.ClearSelected()
	v.maker.ClearSelected()
}
