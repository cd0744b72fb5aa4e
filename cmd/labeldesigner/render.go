/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"labeldesigner/internal/config"
	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	"labeldesigner/internal/export"
	"labeldesigner/internal/labelfile"
	applog "labeldesigner/internal/log"
	"labeldesigner/internal/panel"
	"labeldesigner/internal/preview"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		in        string
		preset    string
		formats   []string
		outDir    string
		base      string
		dpi       int
		quantity  int
		pageSize  string
		autoPrint bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a design document to print formats",
		Long: `Render lays out the copies of a design document on the configured page and
writes them as HTML, PDF, PNG or SVG. Presets: print (html, pdf) and proof (png, svg).`,
		Example: `  labeldesigner render --in shelf.yaml
  labeldesigner render --in shelf.json --format pdf --quantity 120 --page-size letter`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := applog.WithOperation(applog.WithComponent("cli"), "render")
			p, err := export.ParsePreset(preset)
			if err != nil {
				return err
			}
			doc, err := labelfile.Load(in)
			if err != nil {
				return err
			}
			st := design.NewStore(doc.Label, a.cfg.General.Locale)
			doc.Apply(st)
			q := st.Config().Quantity
			if cmd.Flags().Changed("quantity") {
				q = quantity
			}
			if err := panel.New(st, a.cfg.Print.MaxQuantity).SetQuantity(strconv.Itoa(q)); err != nil {
				return err
			}

			opts := preview.DefaultOptions()
			opts.PageWidthMM, opts.PageHeightMM = a.cfg.Print.PageWidthMM, a.cfg.Print.PageHeightMM
			if pageSize != "" {
				w, h, ok := config.ParsePageSize(pageSize)
				if !ok {
					return fmt.Errorf("invalid page size %q", pageSize)
				}
				opts.PageWidthMM, opts.PageHeightMM = w, h
			}
			opts.Fallback = domain.LabelConfig{WidthMM: a.cfg.Label.WidthMM, HeightMM: a.cfg.Label.HeightMM}
			sheet := preview.Build(st.Elements(), st.Config(), opts)

			if dpi <= 0 {
				dpi = a.cfg.Print.DPI
			}
			files, err := export.BatchExport(sheet, export.BatchOptions{
				Preset:    p,
				Formats:   formats,
				OutDir:    outDir,
				BaseName:  base,
				DPI:       dpi,
				AutoPrint: autoPrint,
			})
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			if err != nil {
				return err
			}
			l.Info("rendered", slog.String("in", in), slog.Int("copies", len(sheet.Copies)), slog.Int("pages", sheet.Pages))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in, "in", "", "design document (.yaml, .yml or .json)")
	f.StringVar(&preset, "preset", string(export.PresetPrint), "export preset: print|proof")
	f.StringSliceVar(&formats, "format", nil, "formats to write (html,pdf,png,svg); overrides the preset")
	f.StringVar(&outDir, "out", "", "output directory (default: preset name)")
	f.StringVar(&base, "name", "labels", "base name of the written files")
	f.IntVar(&dpi, "dpi", 0, "raster resolution for png (default: config print.dpi)")
	f.IntVar(&quantity, "quantity", 0, "override the number of copies")
	f.StringVar(&pageSize, "page-size", "", "page size: a4|a5|letter|<w>x<h> in mm (default: config)")
	f.BoolVar(&autoPrint, "auto-print", false, "open the print dialog when the html sheet loads")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newSampleCommand(a *app) *cobra.Command {
	var (
		locale string
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sample design document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if locale == "" {
				locale = a.cfg.General.Locale
			}
			doc := sampleDocument(a.cfg, locale)
			if out != "" {
				if err := labelfile.WriteFile(out, doc); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
				return nil
			}
			f := labelfile.FormatYAML
			if format == string(labelfile.FormatJSON) {
				f = labelfile.FormatJSON
			}
			return labelfile.Encode(cmd.OutOrStdout(), doc, f)
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "placeholder language (default: config general.locale)")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format when writing to stdout: yaml|json")
	cmd.Flags().StringVar(&out, "out", "", "write to this file instead of stdout (format from extension)")
	return cmd
}

// sampleDocument builds a three-field shelf label through the store.
func sampleDocument(cfg config.AppConfig, locale string) labelfile.Document {
	st := design.NewStore(domain.LabelConfig{
		WidthMM:  cfg.Label.WidthMM,
		HeightMM: cfg.Label.HeightMM,
		Quantity: cfg.Label.Quantity,
	}.Bounded(), locale)
	x := float32(8)
	rows := []float32{6, 38, 66}
	for i, t := range domain.ElementTypes {
		e := st.Add(t)
		y := rows[i]
		st.Update(e.ID, design.Patch{X: &x, Y: &y})
	}
	st.ClearSelection()
	return labelfile.FromStore(st)
}
