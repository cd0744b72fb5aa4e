/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	applog "labeldesigner/internal/log"
	"labeldesigner/internal/preview"
)

// PresetName represents a named export preset.
type PresetName string

const (
	// PresetPrint produces the printable sheet: html and pdf.
	PresetPrint PresetName = "print"
	// PresetProof produces review images: png pages and an svg of one label.
	PresetProof PresetName = "proof"
)

// Formats lists every format BatchExport understands.
var Formats = []string{"html", "pdf", "png", "svg"}

// BatchOptions controls batch export of one sheet into several formats.
//
// Output layout under OutDir:
//   - <base>.html, <base>.pdf, <base>.svg
//   - png/<base>-page-<n>.png
type BatchOptions struct {
	Preset    PresetName
	Formats   []string // empty means preset defaults
	OutDir    string   // defaults to the preset name
	BaseName  string   // defaults to "labels"
	DPI       int      // raster DPI; DefaultDPI when zero
	AutoPrint bool     // html only
	CutMarks  *bool    // when set, overrides the preset's default
}

// BatchExport writes s in every requested format and returns the files written.
func BatchExport(s preview.Sheet, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	formats = lo.Uniq(lo.Map(formats, func(f string, _ int) string { return strings.ToLower(strings.TrimSpace(f)) }))
	if bad, ok := lo.Find(formats, func(f string) bool { return !lo.Contains(Formats, f) }); ok {
		return nil, fmt.Errorf("unknown format: %s", bad)
	}

	outDir := opt.OutDir
	if outDir == "" {
		outDir = string(opt.Preset)
	}
	base := opt.BaseName
	if base == "" {
		base = "labels"
	}
	cutMarks := presetCutMarks(opt.Preset)
	if opt.CutMarks != nil {
		cutMarks = *opt.CutMarks
	}
	l := applog.WithOperation(applog.WithComponent("export"), "batch")

	var written []string
	for _, f := range formats {
		switch f {
		case "html":
			out := filepath.Join(outDir, base+".html")
			if err := WriteHTMLFile(out, s, HTMLOptions{Title: base, AutoPrint: opt.AutoPrint}); err != nil {
				return written, fmt.Errorf("html: %w", err)
			}
			written = append(written, out)
		case "pdf":
			out := filepath.Join(outDir, base+".pdf")
			if err := WritePDFFile(out, s, PDFOptions{Title: base, CutMarks: cutMarks}); err != nil {
				return written, fmt.Errorf("pdf: %w", err)
			}
			written = append(written, out)
		case "png":
			names, err := WritePNGPages(filepath.Join(outDir, "png"), base, s, opt.DPI)
			written = append(written, names...)
			if err != nil {
				return written, fmt.Errorf("png: %w", err)
			}
		case "svg":
			out := filepath.Join(outDir, base+".svg")
			if err := WriteSVGFile(out, s); err != nil {
				return written, fmt.Errorf("svg: %w", err)
			}
			written = append(written, out)
		}
	}
	l.Info("export complete", slog.String("preset", string(opt.Preset)), slog.Int("files", len(written)), slog.Int("copies", len(s.Copies)))
	return written, nil
}

// ParsePreset maps a name onto a preset; empty selects print.
func ParsePreset(s string) (PresetName, error) {
	switch p := PresetName(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PresetPrint, nil
	case PresetPrint, PresetProof:
		return p, nil
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetProof:
		return []string{"png", "svg"}
	default:
		return []string{"html", "pdf"}
	}
}

func presetCutMarks(p PresetName) bool {
	return p == PresetProof
}
