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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"labeldesigner/internal/domain"
	"labeldesigner/internal/preview"
)

// DefaultDPI is used when a raster export does not specify one.
const DefaultDPI = 150

var (
	white    = color.RGBA{255, 255, 255, 255}
	cutColor = color.RGBA{200, 200, 200, 255}
	hintGray = color.RGBA{136, 136, 136, 255}
)

// RenderPagePNG rasterizes page n (zero-based) of s at dpi. An empty sheet
// renders a single page carrying the placeholder note.
func RenderPagePNG(s preview.Sheet, n, dpi int) (*image.RGBA, error) {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	scale := float64(dpi) / domain.MMPerInch
	pixW := int(math.Round(s.PageWidthMM * scale))
	pixH := int(math.Round(s.PageHeightMM * scale))
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)

	if s.Empty || len(s.Copies) == 0 {
		face, err := newFace(false, 12, float64(dpi))
		if err != nil {
			return nil, err
		}
		defer face.Close()
		drawString(img, face, hintGray, emptyNote, int(10*scale), int(15*scale))
		return img, nil
	}
	if n < 0 || n >= s.Pages {
		return nil, fmt.Errorf("page %d out of range (%d pages)", n, s.Pages)
	}

	lw := int(math.Round(s.Label.WidthMM * scale))
	lh := int(math.Round(s.Label.HeightMM * scale))
	for _, c := range s.Page(n) {
		ox, oy := s.Origin(c)
		x0, y0 := int(math.Round(ox*scale)), int(math.Round(oy*scale))
		label := image.Rect(x0, y0, x0+lw, y0+lh).Intersect(img.Bounds())
		if label.Empty() {
			continue
		}
		strokeRect(img, label.Min.X, label.Min.Y, label.Max.X-1, label.Max.Y-1, cutColor)
		dst := img.SubImage(label).(*image.RGBA)
		for _, p := range s.Placements {
			if err := drawPlacement(dst, s, p, x0, y0, scale, dpi); err != nil {
				return nil, err
			}
		}
	}
	return img, nil
}

func drawPlacement(dst *image.RGBA, s preview.Sheet, p preview.Placement, x0, y0 int, scale float64, dpi int) error {
	x, y, w, h := s.Rect(p)
	r := image.Rect(
		x0+int(math.Round(x*scale)), y0+int(math.Round(y*scale)),
		x0+int(math.Round((x+w)*scale)), y0+int(math.Round((y+h)*scale)),
	).Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}
	e := p.Element
	col := domain.ColorOrDefault(e.Color)
	if e.Monospace() {
		strokeRect(dst, r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1, col)
	}
	face, err := newFace(e.Monospace(), domain.PxToPt(float64(max(1, e.FontSize))), float64(dpi))
	if err != nil {
		return err
	}
	defer face.Close()
	m := face.Metrics()
	textH := (m.Ascent + m.Descent).Ceil()
	baseline := r.Min.Y + (r.Dy()-textH)/2 + m.Ascent.Ceil()
	tx := r.Min.X + int(math.Round(2*scale*domain.MMPerInch/domain.PxPerInch))
	if e.Monospace() {
		adv := font.MeasureString(face, e.Value).Ceil()
		tx = r.Min.X + (r.Dx()-adv)/2
	}
	drawString(dst.SubImage(r).(*image.RGBA), face, col, e.Value, tx, baseline)
	return nil
}

func drawString(dst draw.Image, face font.Face, col color.Color, s string, x, y int) {
	d := font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

// WritePNGPages writes one PNG per page into dir and returns the file names.
func WritePNGPages(dir, base string, s preview.Sheet, dpi int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	pages := max(1, s.Pages)
	var out []string
	for n := 0; n < pages; n++ {
		img, err := RenderPagePNG(s, n, dpi)
		if err != nil {
			return out, err
		}
		name := filepath.Join(dir, fmt.Sprintf("%s-page-%d.png", base, n+1))
		if err := writePNG(name, img); err != nil {
			return out, err
		}
		out = append(out, name)
	}
	return out, nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}
