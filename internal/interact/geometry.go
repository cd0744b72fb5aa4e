/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package interact

import (
	"labeldesigner/internal/domain"
	"labeldesigner/internal/vector"
)

// Handle tags a resize grip with the compass corner it sits on.
type Handle int

const (
	SouthEast Handle = iota
	SouthWest
	NorthEast
	NorthWest
)

// Handles lists all corners in hit-test order.
var Handles = []Handle{SouthEast, SouthWest, NorthEast, NorthWest}

func (h Handle) String() string {
	switch h {
	case SouthEast:
		return "se"
	case SouthWest:
		return "sw"
	case NorthEast:
		return "ne"
	case NorthWest:
		return "nw"
	}
	return "unknown"
}

// Recenter moves r so its center sits under p. The result never has a
// negative origin; the far edges are not clamped.
func Recenter(r vector.Rect, p vector.Pt) vector.Rect {
	r.X = max(0, p.X-r.W/2)
	r.Y = max(0, p.Y-r.H/2)
	return r
}

// Resize drags corner h of r to p while the opposite corner stays fixed.
// Width and height are floored at the minimum size before the anchored
// origin is derived from them, so the element cannot invert or jump.
func Resize(r vector.Rect, h Handle, p vector.Pt) vector.Rect {
	p = p.ClampMin()
	right, bottom := r.Right(), r.Bottom()
	out := r
	switch h {
	case SouthEast:
		out.W = max(domain.MinWidth, p.X-r.X)
		out.H = max(domain.MinHeight, p.Y-r.Y)
	case SouthWest:
		out.W = max(domain.MinWidth, right-p.X)
		out.X = min(p.X, right-domain.MinWidth)
		out.H = max(domain.MinHeight, p.Y-r.Y)
	case NorthEast:
		out.W = max(domain.MinWidth, p.X-r.X)
		out.H = max(domain.MinHeight, bottom-p.Y)
		out.Y = min(p.Y, bottom-domain.MinHeight)
	case NorthWest:
		out.W = max(domain.MinWidth, right-p.X)
		out.X = min(p.X, right-domain.MinWidth)
		out.H = max(domain.MinHeight, bottom-p.Y)
		out.Y = min(p.Y, bottom-domain.MinHeight)
	}
	return out
}

// RectOf returns the canvas rectangle of e.
func RectOf(e domain.LabelElement) vector.Rect { return vector.R(e.X, e.Y, e.Width, e.Height) }

// HandleRects returns one square grip of the given size centered on each corner of r.
func HandleRects(r vector.Rect, size float32) map[Handle]vector.Rect {
	half := size / 2
	at := func(x, y float32) vector.Rect { return vector.R(x-half, y-half, size, size) }
	return map[Handle]vector.Rect{
		SouthEast: at(r.Right(), r.Bottom()),
		SouthWest: at(r.X, r.Bottom()),
		NorthEast: at(r.Right(), r.Y),
		NorthWest: at(r.X, r.Y),
	}
}

// HandleAt reports which grip of r, if any, contains p.
func HandleAt(r vector.Rect, p vector.Pt, size float32) (Handle, bool) {
	rects := HandleRects(r, size)
	for _, h := range Handles {
		if rects[h].Contains(p) {
			return h, true
		}
	}
	return 0, false
}

// ElementAt returns the top-most element under p. Later elements are on top.
func ElementAt(elements []domain.LabelElement, p vector.Pt) (domain.LabelElement, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if RectOf(elements[i]).Contains(p) {
			return elements[i], true
		}
	}
	return domain.LabelElement{}, false
}
