/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"wordbook/internal/domain"
)

// CardOptions controls flashcard PDF export.
// Units are millimetres on an A4 portrait page.
//
// Built-in Helvetica only covers Latin-1; Japanese text needs FontPath pointing at a TTF
// (e.g. Noto Sans JP), which is embedded as a UTF-8 font.
type CardOptions struct {
	Title        string
	FontPath     string
	CardsPerPage int  // rounded up to an even number, two columns
	HideNames    bool // print "???" instead of the name (self-test sheets)
	HideExplain  bool
	Guides       bool // draw cut lines
}

const (
	pageW      = 210.0
	pageH      = 297.0
	pageMargin = 10.0
	cardPad    = 4.0
	utf8Family = "wbfont"
	coreFamily = "Helvetica"
)

// FlashcardsPDF writes one card per term to outPath, creating parent directories.
func FlashcardsPDF(terms []domain.Term, outPath string, opt CardOptions) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := WriteFlashcards(f, terms, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}

// WriteFlashcards renders the cards to w.
func WriteFlashcards(w io.Writer, terms []domain.Term, opt CardOptions) error {
	if len(terms) == 0 {
		return errors.New("no terms to export")
	}
	perPage := normalisePerPage(opt.CardsPerPage)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	title := opt.Title
	if title == "" {
		title = "WordBook flashcards"
	}
	family := coreFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opt.FontPath != "" {
		if _, err := os.Stat(opt.FontPath); err != nil {
			return fmt.Errorf("font: %w", err)
		}
		pdf.AddUTF8Font(utf8Family, "", opt.FontPath)
		family = utf8Family
		tr = func(s string) string { return s }
	}
	pdf.SetTitle(title, true)
	pdf.SetAuthor("WordBook", true)

	for i, t := range terms {
		slot := i % perPage
		if slot == 0 {
			pdf.AddPage()
		}
		x, y, cw, ch := cardRect(slot, perPage)
		if opt.Guides {
			pdf.SetDrawColor(160, 160, 160)
			pdf.SetLineWidth(0.2)
			pdf.Rect(x, y, cw, ch, "D")
		}
		drawCard(pdf, family, tr, t, x, y, cw, ch, opt)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func normalisePerPage(n int) int {
	if n <= 0 {
		n = 8
	}
	if n%2 == 1 {
		n++
	}
	return n
}

// cardRect returns the card box for a slot in a two column grid.
func cardRect(slot, perPage int) (x, y, w, h float64) {
	rows := perPage / 2
	w = (pageW - 2*pageMargin) / 2
	h = (pageH - 2*pageMargin) / float64(rows)
	col := slot % 2
	row := slot / 2
	return pageMargin + float64(col)*w, pageMargin + float64(row)*h, w, h
}

func drawCard(pdf *gofpdf.Fpdf, family string, tr func(string) string, t domain.Term, x, y, w, h float64, opt CardOptions) {
	inner := w - 2*cardPad
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont(family, "", 16)
	pdf.SetXY(x+cardPad, y+cardPad)
	pdf.CellFormat(inner, 8, tr(domain.Masked(t.WordName, !opt.HideNames)), "", 1, "L", false, 0, "")

	if t.Yomi != "" && !opt.HideNames {
		pdf.SetFont(family, "", 9)
		pdf.SetX(x + cardPad)
		pdf.CellFormat(inner, 5, tr(t.Yomi), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(family, "", 10)
	pdf.SetX(x + cardPad)
	explain := strings.TrimSpace(t.Explain)
	if opt.HideExplain {
		explain = domain.Hidden
	}
	// Clip long explanations to what fits above the footer.
	lines := pdf.SplitText(tr(explain), inner)
	maxLines := int((h - 2*cardPad - 8 - 5 - 6) / 5)
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) > maxLines {
		lines = append(lines[:maxLines-1], lines[maxLines-1]+"...")
	}
	for _, ln := range lines {
		pdf.SetX(x + cardPad)
		pdf.CellFormat(inner, 5, ln, "", 1, "L", false, 0, "")
	}

	pdf.SetFont(family, "", 8)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(x+cardPad, y+h-cardPad-5)
	footer := fmt.Sprintf("%s / %s", domain.DisplayList(t.Category), domain.DisplayList(t.Tag))
	pdf.CellFormat(inner, 5, tr(footer), "", 0, "L", false, 0, "")
}
