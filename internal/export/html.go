/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a laid-out preview.Sheet to print formats.
package export

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"labeldesigner/internal/domain"
	"labeldesigner/internal/preview"
)

// HTMLOptions controls the print sheet markup.
type HTMLOptions struct {
	Title string
	// AutoPrint opens the host print dialog once the page has loaded.
	AutoPrint bool
}

type htmlElement struct {
	Class string
	Style template.CSS
	Value string
}

type htmlCopy struct {
	PageBreakBefore bool
	Style           template.CSS
}

type htmlData struct {
	Title     string
	AutoPrint bool
	Empty     bool
	Copies    []htmlCopy
	Elements  []htmlElement
}

var sheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { margin: 0; }
body { margin: 0; font-family: sans-serif; }
.sheet { display: flex; flex-wrap: wrap; align-content: flex-start; }
.label-copy { position: relative; overflow: hidden; box-sizing: border-box; outline: 1px dashed #ccc; }
.page-break { flex-basis: 100%; height: 0; break-before: page; page-break-before: always; }
.el { position: absolute; display: flex; align-items: center; overflow: hidden; white-space: nowrap; box-sizing: border-box; }
.el.barcode { font-family: monospace; border: 1px solid currentColor; justify-content: center; letter-spacing: 1px; }
.empty { padding: 2em; color: #888; text-align: center; }
@media print { .label-copy { outline: none; } }
</style>
</head>
<body>
{{- if .Empty}}
<div class="empty">No elements on the label. Add text, price or barcode fields in the designer.</div>
{{- else}}
<div class="sheet">
{{- range .Copies}}
{{- if .PageBreakBefore}}
<div class="page-break"></div>
{{- end}}
<div class="label-copy" style="{{.Style}}">
{{- range $.Elements}}
<div class="{{.Class}}" style="{{.Style}}">{{.Value}}</div>
{{- end}}
</div>
{{- end}}
</div>
{{- end}}
{{- if .AutoPrint}}
<script>window.addEventListener("load", function () { window.print(); });</script>
{{- end}}
</body>
</html>
`))

// WriteHTML writes the print markup for s. Copies are sized in millimeters and
// elements are positioned by percentage so the print engine scales them.
func WriteHTML(w io.Writer, s preview.Sheet, opt HTMLOptions) error {
	title := opt.Title
	if title == "" {
		title = "Labels"
	}
	copyStyle := template.CSS(fmt.Sprintf("width:%smm;height:%smm", mm(s.Label.WidthMM), mm(s.Label.HeightMM)))
	data := htmlData{Title: title, AutoPrint: opt.AutoPrint, Empty: s.Empty}
	for _, c := range s.Copies {
		data.Copies = append(data.Copies, htmlCopy{PageBreakBefore: c.PageBreakBefore, Style: copyStyle})
	}
	for _, p := range s.Placements {
		e := p.Element
		class := "el"
		if e.Monospace() {
			class += " barcode"
		}
		col := domain.HexColor(domain.ColorOrDefault(e.Color))
		data.Elements = append(data.Elements, htmlElement{
			Class: class,
			Style: template.CSS(fmt.Sprintf("left:%.4f%%;top:%.4f%%;width:%.4f%%;height:%.4f%%;font-size:%dpx;color:%s",
				p.LeftPct, p.TopPct, p.WidthPct, p.HeightPct, max(1, e.FontSize), col)),
			Value: e.Value,
		})
	}
	if err := sheetTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// WriteHTMLFile writes the print markup to path, creating parent directories.
func WriteHTMLFile(path string, s preview.Sheet, opt HTMLOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	if err := WriteHTML(f, s, opt); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close html: %w", err)
	}
	return nil
}

func mm(v float64) string { return fmt.Sprintf("%g", v) }
