/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package preview

import (
	"math"
	"testing"

	"labeldesigner/internal/domain"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestBuildTenCopiesAtFiftyByThirty(t *testing.T) {
	cfg := domain.LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10}
	cw, ch := domain.MMToPx(50), domain.MMToPx(30)
	els := []domain.LabelElement{
		{ID: "a", Type: domain.TypeText, X: 10, Y: 10, Width: 100, Height: 30},
		{ID: "b", Type: domain.TypeBarcode, X: 40, Y: 60, Width: 120, Height: 40},
	}
	s := Build(els, cfg, DefaultOptions())
	if len(s.Copies) != 10 {
		t.Fatalf("copies = %d", len(s.Copies))
	}
	if s.Label.WidthMM != 50 || s.Label.HeightMM != 30 {
		t.Fatalf("copy size = %vx%v", s.Label.WidthMM, s.Label.HeightMM)
	}
	if len(s.Placements) != 2 || s.Empty {
		t.Fatalf("placements = %d empty=%v", len(s.Placements), s.Empty)
	}
	p := s.Placements[1]
	if !near(p.LeftPct, 40/cw*100) || !near(p.TopPct, 60/ch*100) ||
		!near(p.WidthPct, 120/cw*100) || !near(p.HeightPct, 40/ch*100) {
		t.Fatalf("placement = %+v", p)
	}
	x, y, w, h := s.Rect(p)
	if !near(x, domain.PxToMM(40)) || !near(y, domain.PxToMM(60)) || !near(w, domain.PxToMM(120)) || !near(h, domain.PxToMM(40)) {
		t.Fatalf("mm rect = %v %v %v %v", x, y, w, h)
	}
	// A4 holds 4 columns x 9 rows of 50x30 labels.
	if s.Columns != 4 || s.Rows != 9 || s.PerPage != 36 || s.Pages != 1 {
		t.Fatalf("grid = %dx%d per=%d pages=%d", s.Columns, s.Rows, s.PerPage, s.Pages)
	}
	for _, c := range s.Copies {
		if c.PageBreakBefore {
			t.Fatalf("single page must not break")
		}
	}
}

func TestPagination(t *testing.T) {
	cfg := domain.LabelConfig{WidthMM: 100, HeightMM: 100, Quantity: 9}
	s := Build([]domain.LabelElement{{ID: "a"}}, cfg, DefaultOptions())
	if s.PerPage != 4 || s.Pages != 3 {
		t.Fatalf("per page %d pages %d", s.PerPage, s.Pages)
	}
	var breaks []int
	for _, c := range s.Copies {
		if c.PageBreakBefore {
			breaks = append(breaks, c.Index)
		}
	}
	if len(breaks) != 2 || breaks[0] != 4 || breaks[1] != 8 {
		t.Fatalf("breaks at %v", breaks)
	}
	if got := s.Page(2); len(got) != 1 || got[0].Row != 0 || got[0].Col != 0 {
		t.Fatalf("last page = %+v", got)
	}
	c := s.Copies[3]
	if x, y := s.Origin(c); x != 100 || y != 100 {
		t.Fatalf("origin of copy 3 = %v,%v", x, y)
	}
}

func TestOversizedLabelStillFitsOnePerPage(t *testing.T) {
	s := Build(nil, domain.LabelConfig{WidthMM: 400, HeightMM: 400, Quantity: 2}, DefaultOptions())
	if s.PerPage != 1 || s.Pages != 2 || !s.Copies[1].PageBreakBefore {
		t.Fatalf("per=%d pages=%d", s.PerPage, s.Pages)
	}
}

func TestEmptyAndDegenerateInput(t *testing.T) {
	s := Build(nil, domain.LabelConfig{WidthMM: math.NaN(), HeightMM: -1, Quantity: -5}, Options{})
	if !s.Empty {
		t.Fatalf("no elements should report empty")
	}
	if s.Label.WidthMM != 50 || s.Label.HeightMM != 30 {
		t.Fatalf("fallback not applied: %+v", s.Label)
	}
	if len(s.Copies) != 0 || s.Pages != 0 {
		t.Fatalf("negative quantity should produce nothing")
	}
	if math.IsNaN(s.CanvasW) || math.IsNaN(s.CanvasH) {
		t.Fatalf("NaN leaked into canvas size")
	}
}

func TestTinyLabelKeepsPaginationSane(t *testing.T) {
	for _, mm := range []float64{1e-12, 1e-9, 0.2} {
		s := Build([]domain.LabelElement{{ID: "a"}}, domain.LabelConfig{WidthMM: mm, HeightMM: mm, Quantity: 3}, DefaultOptions())
		if s.Label.WidthMM != domain.MinLabelMM || s.Label.HeightMM != domain.MinLabelMM {
			t.Fatalf("%g mm: label not clamped: %+v", mm, s.Label)
		}
		if s.PerPage <= 0 || s.PerPage != s.Columns*s.Rows {
			t.Fatalf("%g mm: per page = %d (%dx%d)", mm, s.PerPage, s.Columns, s.Rows)
		}
		if s.Pages != 1 || len(s.Page(0)) != 3 {
			t.Fatalf("%g mm: pages = %d, first page has %d copies", mm, s.Pages, len(s.Page(0)))
		}
	}
}

func TestHugePageAndQuantityAreBounded(t *testing.T) {
	opts := DefaultOptions()
	opts.PageWidthMM, opts.PageHeightMM = 1e300, 1e300
	s := Build(nil, domain.LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: math.MaxInt}, opts)
	if len(s.Copies) != domain.MaxQuantity {
		t.Fatalf("copies = %d, want %d", len(s.Copies), domain.MaxQuantity)
	}
	if s.Columns != maxGrid || s.Rows != maxGrid || s.Pages != 1 {
		t.Fatalf("grid = %dx%d pages=%d", s.Columns, s.Rows, s.Pages)
	}
}
