/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"labeldesigner/internal/domain"
	"labeldesigner/internal/preview"
)

const emptyNote = "No elements on the label."

// PDFOptions controls PDF export behavior. Units are millimeters.
type PDFOptions struct {
	Title string
	// CutMarks draws a hairline around every copy.
	CutMarks bool
}

const (
	familyRegular = "goregular"
	familyMono    = "gomono"
)

// WritePDF renders s as a multi-page PDF with copies tiled row by row.
// Text uses embedded Go fonts so any script in element values survives.
func WritePDF(w io.Writer, s preview.Sheet, opt PDFOptions) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: s.PageWidthMM, Ht: s.PageHeightMM},
	})
	title := opt.Title
	if title == "" {
		title = "Labels"
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator("labeldesigner", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(familyRegular, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(familyMono, "", gomono.TTF)
	pageSize := gofpdf.SizeType{Wd: s.PageWidthMM, Ht: s.PageHeightMM}

	if s.Empty || len(s.Copies) == 0 {
		pdf.AddPageFormat("P", pageSize)
		pdf.SetFont(familyRegular, "", 12)
		pdf.SetTextColor(136, 136, 136)
		pdf.Text(10, 15, emptyNote)
		return outputPDF(pdf, w)
	}

	for n := 0; n < s.Pages; n++ {
		pdf.AddPageFormat("P", pageSize)
		for _, c := range s.Page(n) {
			ox, oy := s.Origin(c)
			if opt.CutMarks {
				pdf.SetDrawColor(200, 200, 200)
				pdf.SetLineWidth(0.1)
				pdf.Rect(ox, oy, s.Label.WidthMM, s.Label.HeightMM, "D")
			}
			pdf.ClipRect(ox, oy, s.Label.WidthMM, s.Label.HeightMM, false)
			for _, p := range s.Placements {
				drawPDFPlacement(pdf, s, p, ox, oy)
			}
			pdf.ClipEnd()
		}
	}
	return outputPDF(pdf, w)
}

func drawPDFPlacement(pdf *gofpdf.Fpdf, s preview.Sheet, p preview.Placement, ox, oy float64) {
	e := p.Element
	x, y, w, h := s.Rect(p)
	x += ox
	y += oy
	col := domain.ColorOrDefault(e.Color)
	pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
	family, align, border := familyRegular, "LM", ""
	if e.Monospace() {
		family, align, border = familyMono, "CM", "1"
		pdf.SetDrawColor(int(col.R), int(col.G), int(col.B))
		pdf.SetLineWidth(domain.PxToMM(1))
	}
	pdf.SetFont(family, "", domain.PxToPt(float64(max(1, e.FontSize))))
	pdf.SetCellMargin(domain.PxToMM(2))
	pdf.ClipRect(x, y, w, h, false)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, e.Value, border, 0, align, false, 0, "")
	pdf.ClipEnd()
}

func outputPDF(pdf *gofpdf.Fpdf, w io.Writer) error {
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDFFile writes the PDF sheet to path, creating parent directories.
func WritePDFFile(path string, s preview.Sheet, opt PDFOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	if err := WritePDF(f, s, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close pdf: %w", err)
	}
	return nil
}
