/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package preview lays out printed copies of a label. Element geometry is
// expressed as a percentage of the canvas so every renderer can scale it to
// physical size.
package preview

import (
	"math"

	"github.com/samber/lo"

	"labeldesigner/internal/domain"
)

// Options controls the physical page the copies are tiled onto.
type Options struct {
	PageWidthMM  float64
	PageHeightMM float64
	// Fallback replaces non-positive or non-finite label dimensions.
	Fallback domain.LabelConfig
}

// DefaultOptions is an A4 portrait page with a 50x30 mm fallback label.
func DefaultOptions() Options {
	return Options{
		PageWidthMM:  210,
		PageHeightMM: 297,
		Fallback:     domain.LabelConfig{WidthMM: 50, HeightMM: 30},
	}
}

// Placement is one element positioned within a copy.
type Placement struct {
	Element   domain.LabelElement
	LeftPct   float64
	TopPct    float64
	WidthPct  float64
	HeightPct float64
}

// Copy is one printed label on the sheet.
type Copy struct {
	Index           int
	Page            int
	Row, Col        int
	PageBreakBefore bool
}

// Sheet is the renderer-independent result of Build.
type Sheet struct {
	Label        domain.LabelConfig
	CanvasW      float64
	CanvasH      float64
	PageWidthMM  float64
	PageHeightMM float64
	Placements   []Placement
	Copies       []Copy
	Columns      int
	Rows         int
	PerPage      int
	Pages        int
	Empty        bool
}

// Build lays out cfg.Quantity copies of elements. Copies flow row by row and
// a page break precedes the first copy of every page after the first.
func Build(elements []domain.LabelElement, cfg domain.LabelConfig, opts Options) Sheet {
	def := DefaultOptions()
	if !positive(opts.PageWidthMM) || !positive(opts.PageHeightMM) {
		opts.PageWidthMM, opts.PageHeightMM = def.PageWidthMM, def.PageHeightMM
	}
	if !positive(opts.Fallback.WidthMM) || !positive(opts.Fallback.HeightMM) {
		opts.Fallback = def.Fallback
	}
	if !positive(cfg.WidthMM) {
		cfg.WidthMM = opts.Fallback.WidthMM
	}
	if !positive(cfg.HeightMM) {
		cfg.HeightMM = opts.Fallback.HeightMM
	}
	cfg = cfg.Bounded()

	s := Sheet{
		Label:        cfg,
		CanvasW:      domain.MMToPx(cfg.WidthMM),
		CanvasH:      domain.MMToPx(cfg.HeightMM),
		PageWidthMM:  opts.PageWidthMM,
		PageHeightMM: opts.PageHeightMM,
		Empty:        len(elements) == 0,
	}
	s.Placements = lo.Map(elements, func(e domain.LabelElement, _ int) Placement {
		return Placement{
			Element:   e,
			LeftPct:   pct(float64(e.X), s.CanvasW),
			TopPct:    pct(float64(e.Y), s.CanvasH),
			WidthPct:  pct(float64(e.Width), s.CanvasW),
			HeightPct: pct(float64(e.Height), s.CanvasH),
		}
	})

	s.Columns = fit(opts.PageWidthMM, cfg.WidthMM)
	s.Rows = fit(opts.PageHeightMM, cfg.HeightMM)
	s.PerPage = s.Columns * s.Rows
	s.Copies = make([]Copy, cfg.Quantity)
	for i := range s.Copies {
		slot := i % s.PerPage
		s.Copies[i] = Copy{
			Index:           i,
			Page:            i / s.PerPage,
			Row:             slot / s.Columns,
			Col:             slot % s.Columns,
			PageBreakBefore: i > 0 && slot == 0,
		}
	}
	if cfg.Quantity > 0 {
		s.Pages = (cfg.Quantity + s.PerPage - 1) / s.PerPage
	}
	return s
}

// Page returns the copies on page n (zero-based).
func (s Sheet) Page(n int) []Copy {
	return lo.Filter(s.Copies, func(c Copy, _ int) bool { return c.Page == n })
}

// Rect converts a placement into millimeters within a copy.
func (s Sheet) Rect(p Placement) (x, y, w, h float64) {
	return p.LeftPct / 100 * s.Label.WidthMM, p.TopPct / 100 * s.Label.HeightMM,
		p.WidthPct / 100 * s.Label.WidthMM, p.HeightPct / 100 * s.Label.HeightMM
}

// Origin is the top-left corner of copy c on its page, in millimeters.
func (s Sheet) Origin(c Copy) (x, y float64) {
	return float64(c.Col) * s.Label.WidthMM, float64(c.Row) * s.Label.HeightMM
}

// maxGrid bounds columns and rows so PerPage cannot overflow.
const maxGrid = 10000

// fit is how many labels of size fit along page, in [1, maxGrid].
func fit(page, label float64) int {
	n := math.Floor(page / label)
	if !(n >= 1) {
		return 1
	}
	return int(min(n, maxGrid))
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func pct(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return v / total * 100
}
