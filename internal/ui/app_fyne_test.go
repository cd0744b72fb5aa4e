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

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"labeldesigner/internal/config"
	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	"labeldesigner/internal/interact"
)

func almostEqual(a, b, eps float32) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func newTestCanvas(t *testing.T) (*design.Store, *LabelCanvas) {
	t.Helper()
	test.NewTempApp(t)
	st := design.NewStore(domain.LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10}, "en")
	lc := NewLabelCanvas(st, interact.NewController(st))
	lc.Resize(fyne.NewSize(400, 300))
	return st, lc
}

func press(lc *LabelCanvas, x, y float32) {
	o := lc.origin()
	lc.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(o.X+x, o.Y+y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func drag(lc *LabelCanvas, x, y float32) {
	o := lc.origin()
	lc.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(o.X+x, o.Y+y)}})
}

func TestLabelCanvasMinSizeFollowsLabel(t *testing.T) {
	_, lc := newTestCanvas(t)
	sz := lc.MinSize()
	pad := rulerSize + 2*canvasInset
	if !almostEqual(sz.Width, 188.976+pad, 0.1) || !almostEqual(sz.Height, 113.386+pad, 0.1) {
		t.Fatalf("min size = %v", sz)
	}
	lc.SetZoom(10)
	if lc.zoom != maxZoom {
		t.Fatalf("zoom not clamped: %v", lc.zoom)
	}
}

func TestLabelCanvasDragMovesElement(t *testing.T) {
	st, lc := newTestCanvas(t)
	e := st.Add(domain.TypeText)
	st.ClearSelection()
	press(lc, e.X+5, e.Y+5)
	if st.SelectedID() != e.ID {
		t.Fatalf("press on element should select it")
	}
	drag(lc, 120, 60)
	got, _ := st.Get(e.ID)
	if got.X != 70 || got.Y != 45 {
		t.Fatalf("after drag: %+v", got)
	}
	lc.DragEnd()
	drag(lc, 10, 10)
	after, _ := st.Get(e.ID)
	if after != got {
		t.Fatalf("drag after release moved the element")
	}
}

func TestLabelCanvasResizeFromCorner(t *testing.T) {
	st, lc := newTestCanvas(t)
	e := st.Add(domain.TypeText)
	press(lc, e.X+e.Width, e.Y+e.Height)
	if _, h, ok := lc.ctrl.Resizing(); !ok || h != interact.SouthEast {
		t.Fatalf("expected se resize")
	}
	drag(lc, e.X+10, e.Y+5)
	got, _ := st.Get(e.ID)
	if got.Width != domain.MinWidth || got.Height != domain.MinHeight {
		t.Fatalf("resize should floor at minimum: %+v", got)
	}
	lc.MouseOut()
	if lc.ctrl.Active() {
		t.Fatalf("leaving the canvas must end the gesture")
	}
}

func TestDesignerFormFollowsSelection(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	defer w.Close()
	cfg := config.Defaults()
	st := design.NewStore(domain.LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10}, "en")
	d := newDesigner(fyne.CurrentApp(), w, st, cfg)
	w.SetContent(d.content())
	d.refreshAll()

	if d.elementBox.Visible() {
		t.Fatalf("element form must be hidden without selection")
	}
	if d.widthEntry.Text != "50" || d.quantityEntry.Text != "10" {
		t.Fatalf("config form = %q %q", d.widthEntry.Text, d.quantityEntry.Text)
	}
	e := st.Add(domain.TypePrice)
	if !d.elementBox.Visible() || d.labelEntry.Text != e.Label || d.fontSizeEntry.Text != "16" {
		t.Fatalf("element form not populated: %q %q", d.labelEntry.Text, d.fontSizeEntry.Text)
	}
	test.Type(d.fontSizeEntry, "x")
	got, _ := st.Get(e.ID)
	if got.FontSize != 16 {
		t.Fatalf("garbage font size reached the store: %d", got.FontSize)
	}
	d.widthEntry.SetText("62.5")
	if st.Config().WidthMM != 62.5 {
		t.Fatalf("width not applied: %v", st.Config().WidthMM)
	}
	d.widthEntry.SetText("1e9")
	if st.Config().WidthMM != 62.5 {
		t.Fatalf("oversized width reached the store: %v", st.Config().WidthMM)
	}
	st.Remove(e.ID)
	if d.elementBox.Visible() || len(d.ids) != 0 {
		t.Fatalf("form should hide after delete")
	}
}
