/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"labeldesigner/internal/domain"
	"labeldesigner/internal/preview"
)

// WriteSVG renders a single label of s as an SVG proof in canvas pixels.
func WriteSVG(w io.Writer, s preview.Sheet) error {
	var buf bytes.Buffer
	cw := int(math.Round(s.CanvasW))
	ch := int(math.Round(s.CanvasH))
	canvas := svg.New(&buf)
	canvas.Start(cw, ch)
	canvas.Title(fmt.Sprintf("Label %smm x %smm", mm(s.Label.WidthMM), mm(s.Label.HeightMM)))
	canvas.Rect(0, 0, cw, ch, "fill:#ffffff;stroke:#cccccc;stroke-width:1;stroke-dasharray:4,2")
	if s.Empty {
		canvas.Text(cw/2, ch/2, emptyNote, "text-anchor:middle;dominant-baseline:middle;font-size:11px;fill:#888888")
	}
	for _, p := range s.Placements {
		e := p.Element
		x, y := int(math.Round(float64(e.X))), int(math.Round(float64(e.Y)))
		ew, eh := int(math.Round(float64(e.Width))), int(math.Round(float64(e.Height)))
		col := domain.HexColor(domain.ColorOrDefault(e.Color))
		family, anchor, tx := "sans-serif", "start", x+2
		if e.Monospace() {
			canvas.Rect(x, y, ew, eh, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", col))
			family, anchor, tx = "monospace", "middle", x+ew/2
		}
		canvas.Text(tx, y+eh/2, e.Value, fmt.Sprintf(
			"text-anchor:%s;dominant-baseline:middle;font-family:%s;font-size:%dpx;fill:%s",
			anchor, family, max(1, e.FontSize), col))
	}
	canvas.End()
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// WriteSVGFile writes the SVG proof to path, creating parent directories.
func WriteSVGFile(path string, s preview.Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, s); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
