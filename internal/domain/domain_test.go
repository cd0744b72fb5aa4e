/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"image/color"
	"math"
	"testing"
)

func TestParseElementType(t *testing.T) {
	cases := map[string]ElementType{"text": TypeText, " Price ": TypePrice, "BARCODE": TypeBarcode}
	for in, want := range cases {
		got, err := ParseElementType(in)
		if err != nil || got != want {
			t.Fatalf("ParseElementType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseElementType("qr"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestUnits(t *testing.T) {
	if got := MMToPx(25.4); math.Abs(got-96) > 1e-9 {
		t.Fatalf("MMToPx(25.4) = %v", got)
	}
	if got := PxToMM(MMToPx(50)); math.Abs(got-50) > 1e-9 {
		t.Fatalf("round trip = %v", got)
	}
	if got := PxToPt(16); got != 12 {
		t.Fatalf("PxToPt(16) = %v", got)
	}
	w, h := LabelConfig{WidthMM: 50, HeightMM: 30}.CanvasSize()
	if math.Abs(float64(w)-188.976) > 0.01 || math.Abs(float64(h)-113.386) > 0.01 {
		t.Fatalf("canvas size = %vx%v", w, h)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff8000")
	if err != nil || c != (color.RGBA{R: 255, G: 128, B: 0, A: 255}) {
		t.Fatalf("got %v, %v", c, err)
	}
	c, err = ParseHexColor("0f0")
	if err != nil || c != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("short form: got %v, %v", c, err)
	}
	for _, bad := range []string{"", "#12", "#gggggg", "#1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if HexColor(color.RGBA{R: 0x12, G: 0xab, B: 0x00, A: 255}) != "#12ab00" {
		t.Fatalf("HexColor mismatch")
	}
	if ColorOrDefault("nope") != (color.RGBA{A: 255}) {
		t.Fatalf("ColorOrDefault should fall back to black")
	}
}

func TestDefaultsFor(t *testing.T) {
	if d := DefaultsFor(TypeBarcode); d.Width != 120 || d.Height != 40 || d.FontSize != 12 {
		t.Fatalf("barcode defaults = %+v", d)
	}
	if d := DefaultsFor(TypeText); d.Width != 100 || d.Height != 30 || d.FontSize != 16 {
		t.Fatalf("text defaults = %+v", d)
	}
	if !(LabelElement{Type: TypeBarcode}).Monospace() || (LabelElement{Type: TypePrice}).Monospace() {
		t.Fatalf("only barcodes are monospace")
	}
}

func TestPlaceholdersByLocale(t *testing.T) {
	if p := Placeholders("de-AT", TypePrice); p.Label != "Preis" {
		t.Fatalf("de-AT price label = %q", p.Label)
	}
	if p := Placeholders("ru", TypeBarcode); p.Label != "Штрихкод" {
		t.Fatalf("ru barcode label = %q", p.Label)
	}
	if p := Placeholders("", TypeText); p.Label != "Text" {
		t.Fatalf("default label = %q", p.Label)
	}
	if p := Placeholders("ja", TypePrice); p.Label != "Price" {
		t.Fatalf("unsupported locale should fall back to English, got %q", p.Label)
	}
}

func TestLabelConfigBounded(t *testing.T) {
	cases := []struct {
		in, want LabelConfig
	}{
		{LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10}, LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10}},
		{LabelConfig{WidthMM: 1e-12, HeightMM: 1e9, Quantity: -3}, LabelConfig{WidthMM: MinLabelMM, HeightMM: MaxLabelMM, Quantity: 0}},
		{LabelConfig{WidthMM: math.NaN(), HeightMM: math.Inf(1), Quantity: math.MaxInt}, LabelConfig{WidthMM: MinLabelMM, HeightMM: MaxLabelMM, Quantity: MaxQuantity}},
	}
	for _, c := range cases {
		if got := c.in.Bounded(); got != c.want {
			t.Errorf("%+v.Bounded() = %+v, want %+v", c.in, got, c.want)
		}
	}
	if w, h := (LabelConfig{WidthMM: 1e9, HeightMM: 1e9}).CanvasSize(); w != float32(MMToPx(MaxLabelMM)) || h != w {
		t.Errorf("CanvasSize not bounded: %v x %v", w, h)
	}
}
