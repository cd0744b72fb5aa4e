/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"fmt"
	"strings"
)

// ElementType is the closed set of field kinds a label can carry.
type ElementType string

const (
	TypeText    ElementType = "text"
	TypePrice   ElementType = "price"
	TypeBarcode ElementType = "barcode"
)

// ElementTypes lists every type in toolbar order.
var ElementTypes = []ElementType{TypeText, TypePrice, TypeBarcode}

// ParseElementType maps a string onto an ElementType.
func ParseElementType(s string) (ElementType, error) {
	switch t := ElementType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeText, TypePrice, TypeBarcode:
		return t, nil
	}
	return "", fmt.Errorf("unknown element type %q", s)
}

// Minimum element size in canvas pixels, enforced while resizing.
const (
	MinWidth  float32 = 30
	MinHeight float32 = 20
)

// Bounds for the label size in millimeters and the number of copies.
const (
	MinLabelMM  = 1.0
	MaxLabelMM  = 1000.0
	MaxQuantity = 100000
)

// DefaultColor is applied to new elements.
const DefaultColor = "#000000"

// LabelElement is one placed field on the label. Geometry is in canvas
// pixels relative to the label's top-left corner.
type LabelElement struct {
	ID       string      `json:"id" yaml:"id"`
	Type     ElementType `json:"type" yaml:"type"`
	Label    string      `json:"label" yaml:"label"`
	Value    string      `json:"value" yaml:"value"`
	X        float32     `json:"x" yaml:"x"`
	Y        float32     `json:"y" yaml:"y"`
	Width    float32     `json:"width" yaml:"width"`
	Height   float32     `json:"height" yaml:"height"`
	FontSize int         `json:"fontSize" yaml:"fontSize"`
	Color    string      `json:"color" yaml:"color"`
}

// Monospace reports whether the element renders in a fixed-width face with a border.
func (e LabelElement) Monospace() bool { return e.Type == TypeBarcode }

// LabelConfig holds the global sheet parameters. Width and height are physical millimeters.
type LabelConfig struct {
	WidthMM  float64 `json:"width_mm" yaml:"width_mm"`
	HeightMM float64 `json:"height_mm" yaml:"height_mm"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}

// CanvasSize returns the on-screen pixel size of the bounded label.
func (c LabelConfig) CanvasSize() (w, h float32) {
	c = c.Bounded()
	return float32(MMToPx(c.WidthMM)), float32(MMToPx(c.HeightMM))
}

// Bounded clamps the size into [MinLabelMM, MaxLabelMM] and the quantity
// into [0, MaxQuantity]. NaN sizes become MinLabelMM.
func (c LabelConfig) Bounded() LabelConfig {
	c.WidthMM = clampMM(c.WidthMM)
	c.HeightMM = clampMM(c.HeightMM)
	c.Quantity = min(max(0, c.Quantity), MaxQuantity)
	return c
}

func clampMM(v float64) float64 {
	if !(v >= MinLabelMM) {
		return MinLabelMM
	}
	return min(v, MaxLabelMM)
}

// TypeDefaults describes the footprint a freshly added element gets.
type TypeDefaults struct {
	Width, Height float32
	FontSize      int
}

// DefaultsFor returns the size and font defaults for an element type.
func DefaultsFor(t ElementType) TypeDefaults {
	switch t {
	case TypeBarcode:
		return TypeDefaults{Width: 120, Height: 40, FontSize: 12}
	case TypePrice:
		return TypeDefaults{Width: 100, Height: 30, FontSize: 16}
	default:
		return TypeDefaults{Width: 100, Height: 30, FontSize: 16}
	}
}
