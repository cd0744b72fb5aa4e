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
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	"labeldesigner/internal/interact"
	"labeldesigner/internal/vector"
)

const (
	rulerSize   float32 = 22
	canvasInset float32 = 12
	minZoom     float32 = 0.5
	maxZoom     float32 = 4
)

var (
	canvasBg     = color.RGBA{R: 236, G: 236, B: 240, A: 255}
	rulerBg      = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	rulerInk     = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	labelBorder  = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	selectionInk = color.RGBA{R: 0, G: 170, B: 255, A: 255}
	placeholder  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// LabelCanvas draws the label surface with millimeter rulers and the
// store's elements, and forwards pointer input to the interaction controller.
type LabelCanvas struct {
	widget.BaseWidget
	st   *design.Store
	ctrl *interact.Controller
	zoom float32
}

var (
	_ desktop.Mouseable = (*LabelCanvas)(nil)
	_ desktop.Hoverable = (*LabelCanvas)(nil)
	_ fyne.Draggable    = (*LabelCanvas)(nil)
)

func NewLabelCanvas(st *design.Store, ctrl *interact.Controller) *LabelCanvas {
	lc := &LabelCanvas{st: st, ctrl: ctrl, zoom: 1}
	lc.ExtendBaseWidget(lc)
	return lc
}

// origin is the screen position of the label's top-left corner.
func (lc *LabelCanvas) origin() fyne.Position {
	return fyne.NewPos(rulerSize+canvasInset, rulerSize+canvasInset)
}

func (lc *LabelCanvas) toCanvas(pos fyne.Position) vector.Pt {
	o := lc.origin()
	return vector.P((pos.X-o.X)/lc.zoom, (pos.Y-o.Y)/lc.zoom)
}

func (lc *LabelCanvas) toScreen(r vector.Rect) (fyne.Position, fyne.Size) {
	o := lc.origin()
	s := r.Scale(lc.zoom)
	return fyne.NewPos(o.X+s.X, o.Y+s.Y), fyne.NewSize(s.W, s.H)
}

func (lc *LabelCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	lc.ctrl.PointerDown(lc.toCanvas(e.Position))
}

func (lc *LabelCanvas) MouseUp(*desktop.MouseEvent) { lc.ctrl.PointerUp() }

func (lc *LabelCanvas) MouseIn(*desktop.MouseEvent) {}

func (lc *LabelCanvas) MouseMoved(e *desktop.MouseEvent) {
	if lc.ctrl.Active() {
		lc.ctrl.PointerMove(lc.toCanvas(e.Position))
	}
}

func (lc *LabelCanvas) MouseOut() { lc.ctrl.PointerLeave() }

func (lc *LabelCanvas) Dragged(e *fyne.DragEvent) { lc.ctrl.PointerMove(lc.toCanvas(e.Position)) }

func (lc *LabelCanvas) DragEnd() { lc.ctrl.PointerUp() }

// Scrolled zooms the view; geometry in the store is unaffected.
func (lc *LabelCanvas) Scrolled(e *fyne.ScrollEvent) {
	lc.SetZoom(lc.zoom + e.Scrolled.DY*0.01)
}

func (lc *LabelCanvas) SetZoom(z float32) {
	lc.zoom = min(maxZoom, max(minZoom, z))
	lc.Refresh()
}

func (lc *LabelCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &labelCanvasRenderer{lc: lc}
	r.rebuild()
	return r
}

type labelCanvasRenderer struct {
	lc      *LabelCanvas
	bg      *canvas.Rectangle
	surface *canvas.Rectangle
	empty   *canvas.Text
	objects []fyne.CanvasObject
}

func (r *labelCanvasRenderer) Destroy()                     {}
func (r *labelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *labelCanvasRenderer) MinSize() fyne.Size {
	w, h := r.lc.st.Config().CanvasSize()
	pad := rulerSize + 2*canvasInset
	return fyne.NewSize(w*r.lc.zoom+pad, h*r.lc.zoom+pad)
}

func (r *labelCanvasRenderer) Layout(size fyne.Size) {
	if r.bg != nil {
		r.bg.Resize(size)
	}
}

func (r *labelCanvasRenderer) Refresh() {
	r.rebuild()
	r.Layout(r.lc.Size())
	canvas.Refresh(r.lc)
}

// rebuild recreates the drawing for the current store state. Elements are
// drawn in store order so later ones end up on top.
func (r *labelCanvasRenderer) rebuild() {
	lc := r.lc
	cfg := lc.st.Config()
	cw, ch := cfg.CanvasSize()
	o := lc.origin()

	r.bg = canvas.NewRectangle(canvasBg)
	r.bg.Resize(lc.Size())
	objs := []fyne.CanvasObject{r.bg}
	objs = append(objs, r.rulers(cfg, o)...)

	r.surface = canvas.NewRectangle(color.White)
	r.surface.StrokeColor = labelBorder
	r.surface.StrokeWidth = 1
	r.surface.Move(o)
	r.surface.Resize(fyne.NewSize(cw*lc.zoom, ch*lc.zoom))
	objs = append(objs, r.surface)

	elements := lc.st.Elements()
	for _, e := range elements {
		objs = append(objs, r.element(e)...)
	}

	r.empty = nil
	if len(elements) == 0 {
		r.empty = canvas.NewText("Empty label: add a text, price or barcode field", placeholder)
		r.empty.TextSize = 12
		ts := r.empty.MinSize()
		r.empty.Move(fyne.NewPos(o.X+(cw*lc.zoom-ts.Width)/2, o.Y+(ch*lc.zoom-ts.Height)/2))
		objs = append(objs, r.empty)
	}

	if sel, ok := lc.st.Selected(); ok {
		objs = append(objs, r.selection(sel)...)
	}
	r.objects = objs
}

func (r *labelCanvasRenderer) element(e domain.LabelElement) []fyne.CanvasObject {
	pos, size := r.lc.toScreen(interact.RectOf(e))
	col := domain.ColorOrDefault(e.Color)
	var out []fyne.CanvasObject
	if e.Monospace() {
		frame := canvas.NewRectangle(color.Transparent)
		frame.StrokeColor = col
		frame.StrokeWidth = 1
		frame.Move(pos)
		frame.Resize(size)
		out = append(out, frame)
	}
	txt := canvas.NewText(e.Value, col)
	txt.TextSize = float32(max(1, e.FontSize)) * r.lc.zoom
	txt.TextStyle = fyne.TextStyle{Monospace: e.Monospace()}
	ts := txt.MinSize()
	x := pos.X + 2*r.lc.zoom
	if e.Monospace() {
		txt.Alignment = fyne.TextAlignCenter
		x = pos.X + (size.Width-ts.Width)/2
	}
	txt.Move(fyne.NewPos(x, pos.Y+(size.Height-ts.Height)/2))
	txt.Resize(ts)
	return append(out, txt)
}

func (r *labelCanvasRenderer) selection(e domain.LabelElement) []fyne.CanvasObject {
	rect := interact.RectOf(e)
	pos, size := r.lc.toScreen(rect)
	box := canvas.NewRectangle(color.Transparent)
	box.StrokeColor = selectionInk
	box.StrokeWidth = 1
	box.Move(pos)
	box.Resize(size)
	out := []fyne.CanvasObject{box}
	grips := interact.HandleRects(rect, r.lc.ctrl.HandleSize)
	for _, h := range interact.Handles {
		hp, hsz := r.lc.toScreen(grips[h])
		g := canvas.NewRectangle(selectionInk)
		g.Move(hp)
		g.Resize(hsz)
		out = append(out, g)
	}
	return out
}

// rulers draws millimeter ticks along the top and left edges with a label every 10 mm.
func (r *labelCanvasRenderer) rulers(cfg domain.LabelConfig, o fyne.Position) []fyne.CanvasObject {
	cfg = cfg.Bounded()
	z := r.lc.zoom
	top := canvas.NewRectangle(rulerBg)
	top.Move(fyne.NewPos(o.X, 0))
	top.Resize(fyne.NewSize(float32(domain.MMToPx(cfg.WidthMM))*z, rulerSize))
	left := canvas.NewRectangle(rulerBg)
	left.Move(fyne.NewPos(0, o.Y))
	left.Resize(fyne.NewSize(rulerSize, float32(domain.MMToPx(cfg.HeightMM))*z))
	out := []fyne.CanvasObject{top, left}

	tick := func(mm int) (length float32, labelled bool) {
		switch {
		case mm%10 == 0:
			return rulerSize * 0.6, true
		case mm%5 == 0:
			return rulerSize * 0.4, false
		default:
			return rulerSize * 0.2, false
		}
	}
	for mm := 0; float64(mm) <= cfg.WidthMM; mm++ {
		x := o.X + float32(domain.MMToPx(float64(mm)))*z
		n, labelled := tick(mm)
		ln := canvas.NewLine(rulerInk)
		ln.Position1 = fyne.NewPos(x, rulerSize-n)
		ln.Position2 = fyne.NewPos(x, rulerSize)
		out = append(out, ln)
		if labelled {
			t := canvas.NewText(fmt.Sprint(mm), rulerInk)
			t.TextSize = 8
			t.Move(fyne.NewPos(x+2, 0))
			out = append(out, t)
		}
	}
	for mm := 0; float64(mm) <= cfg.HeightMM; mm++ {
		y := o.Y + float32(domain.MMToPx(float64(mm)))*z
		n, labelled := tick(mm)
		ln := canvas.NewLine(rulerInk)
		ln.Position1 = fyne.NewPos(rulerSize-n, y)
		ln.Position2 = fyne.NewPos(rulerSize, y)
		out = append(out, ln)
		if labelled {
			t := canvas.NewText(fmt.Sprint(mm), rulerInk)
			t.TextSize = 8
			t.Move(fyne.NewPos(1, y+1))
			out = append(out, t)
		}
	}
	return out
}
