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
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"labeldesigner/internal/export"
	"labeldesigner/internal/preview"
)

// sheet lays out the current design on the configured print page.
func (d *designer) sheet() preview.Sheet {
	opts := preview.DefaultOptions()
	if d.cfg.Print.PageWidthMM > 0 && d.cfg.Print.PageHeightMM > 0 {
		opts.PageWidthMM, opts.PageHeightMM = d.cfg.Print.PageWidthMM, d.cfg.Print.PageHeightMM
	}
	return preview.Build(d.st.Elements(), d.st.Config(), opts)
}

func (d *designer) dpi() int {
	if d.cfg.Print.DPI > 0 {
		return d.cfg.Print.DPI
	}
	return export.DefaultDPI
}

// showPreview renders the sheet page by page into a dialog.
func (d *designer) showPreview() {
	s := d.sheet()
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(420, 594))
	render := func(n int) {
		page, err := export.RenderPagePNG(s, n, d.dpi())
		if err != nil {
			dialog.ShowError(err, d.win)
			return
		}
		img.Image = page
		img.Refresh()
	}

	info := widget.NewLabel(fmt.Sprintf("%d copies of %s x %s mm, %d per page, %d page(s)",
		len(s.Copies), fmtMM(s.Label.WidthMM), fmtMM(s.Label.HeightMM), s.PerPage, max(1, s.Pages)))
	if s.Empty {
		info.SetText("The label is empty. Add elements to see them here.")
	}
	var pages []string
	for n := 0; n < max(1, s.Pages); n++ {
		pages = append(pages, fmt.Sprintf("Page %d", n+1))
	}
	sel := widget.NewSelect(pages, nil)
	sel.OnChanged = func(string) { render(sel.SelectedIndex()) }
	sel.SetSelectedIndex(0)

	body := container.NewBorder(container.NewVBox(info, sel), nil, nil, nil, img)
	dlg := dialog.NewCustom("Preview", "Close", body, d.win)
	dlg.Resize(fyne.NewSize(520, 720))
	dlg.Show()
}

// print writes the HTML sheet with an auto print trigger and hands it to the
// system browser, which owns the print dialog.
func (d *designer) print() {
	s := d.sheet()
	dir, err := os.MkdirTemp("", "labeldesigner-print-")
	if err != nil {
		dialog.ShowError(err, d.win)
		return
	}
	path := filepath.Join(dir, "labels.html")
	if err := export.WriteHTMLFile(path, s, export.HTMLOptions{Title: "Labels", AutoPrint: d.cfg.Print.AutoPrint}); err != nil {
		dialog.ShowError(err, d.win)
		return
	}
	u := &url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	if err := d.app.OpenURL(u); err != nil {
		dialog.ShowError(fmt.Errorf("open print sheet: %w", err), d.win)
		return
	}
	d.log.Info("print sheet opened", slog.String("path", path), slog.Int("copies", len(s.Copies)))
	d.setStatus("Print sheet opened in the browser")
}

func (d *designer) exportPDF() {
	s := d.sheet()
	save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, d.win)
			return
		}
		if wc == nil {
			return
		}
		if werr := export.WritePDF(wc, s, export.PDFOptions{Title: "Labels"}); werr != nil {
			_ = wc.Close()
			dialog.ShowError(werr, d.win)
			return
		}
		if cerr := wc.Close(); cerr != nil {
			dialog.ShowError(cerr, d.win)
			return
		}
		d.log.Info("pdf exported", slog.String("uri", wc.URI().String()))
		d.setStatus("Exported " + wc.URI().Name())
	}, d.win)
	save.SetFileName("labels.pdf")
	save.Show()
}

func fmtMM(v float64) string { return fmt.Sprintf("%g", v) }
