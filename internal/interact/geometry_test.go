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
	"testing"

	"labeldesigner/internal/domain"
	"labeldesigner/internal/vector"
)

func TestResizeCorners(t *testing.T) {
	base := vector.R(10, 10, 100, 30)
	cases := []struct {
		name string
		h    Handle
		p    vector.Pt
		want vector.Rect
	}{
		{"se grows", SouthEast, vector.P(150, 60), vector.R(10, 10, 140, 50)},
		{"nw grows from bottom-right", NorthWest, vector.P(5, 5), vector.R(5, 5, 105, 35)},
		{"sw past right edge floors width", SouthWest, vector.P(200, 40), vector.R(80, 10, 30, 30)},
		{"ne past bottom edge floors height", NorthEast, vector.P(50, 90), vector.R(10, 20, 40, 20)},
		{"se inverted floors both", SouthEast, vector.P(0, 0), vector.R(10, 10, 30, 20)},
		{"nw negative pointer clamps origin", NorthWest, vector.P(-40, -40), vector.R(0, 0, 110, 40)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resize(base, tc.h, tc.p)
			if got != tc.want {
				t.Fatalf("Resize(%v, %v) = %+v, want %+v", tc.h, tc.p, got, tc.want)
			}
		})
	}
}

func TestResizeKeepsMinimumsAndOrigin(t *testing.T) {
	base := vector.R(10, 10, 100, 30)
	for _, h := range Handles {
		for x := float32(-50); x <= 250; x += 7 {
			for y := float32(-50); y <= 150; y += 7 {
				r := Resize(base, h, vector.P(x, y))
				if r.W < domain.MinWidth || r.H < domain.MinHeight || r.X < 0 || r.Y < 0 {
					t.Fatalf("%v at (%v,%v) produced %+v", h, x, y, r)
				}
			}
		}
	}
}

func TestRecenterClampsAtZero(t *testing.T) {
	r := vector.R(10, 10, 100, 30)
	if got := Recenter(r, vector.P(200, 100)); got != vector.R(150, 85, 100, 30) {
		t.Fatalf("recenter = %+v", got)
	}
	if got := Recenter(r, vector.P(5, 5)); got.X != 0 || got.Y != 0 {
		t.Fatalf("recenter should clamp to zero: %+v", got)
	}
	if got := Recenter(r, vector.P(5000, 5000)); got.X != 4950 {
		t.Fatalf("no far-edge clamp expected: %+v", got)
	}
}

func TestHandleAtAndElementAt(t *testing.T) {
	r := vector.R(10, 10, 100, 30)
	if h, ok := HandleAt(r, vector.P(111, 41), 8); !ok || h != SouthEast {
		t.Fatalf("expected se handle, got %v %v", h, ok)
	}
	if h, ok := HandleAt(r, vector.P(8, 12), 8); !ok || h != NorthWest {
		t.Fatalf("expected nw handle, got %v %v", h, ok)
	}
	if _, ok := HandleAt(r, vector.P(60, 25), 8); ok {
		t.Fatalf("body center is not a handle")
	}
	els := []domain.LabelElement{
		{ID: "bottom", X: 0, Y: 0, Width: 100, Height: 100},
		{ID: "top", X: 50, Y: 50, Width: 100, Height: 100},
	}
	if e, ok := ElementAt(els, vector.P(60, 60)); !ok || e.ID != "top" {
		t.Fatalf("top-most element should win, got %q", e.ID)
	}
	if e, ok := ElementAt(els, vector.P(10, 10)); !ok || e.ID != "bottom" {
		t.Fatalf("got %q", e.ID)
	}
	if _, ok := ElementAt(els, vector.P(300, 300)); ok {
		t.Fatalf("empty area should miss")
	}
}

func TestHandleString(t *testing.T) {
	if SouthWest.String() != "sw" || Handle(42).String() != "unknown" {
		t.Fatalf("unexpected handle names")
	}
}
