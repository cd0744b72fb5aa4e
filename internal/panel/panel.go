/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package panel binds form text to the design store. Input is parsed
// tolerantly: anything that is not a valid value is rejected and the store
// keeps its previous value.
package panel

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	applog "labeldesigner/internal/log"
)

var (
	// ErrInvalidNumber is returned for numeric input that cannot be applied.
	ErrInvalidNumber = errors.New("invalid number")
	// ErrInvalidColor is returned for color input that is not #rgb or #rrggbb.
	ErrInvalidColor = errors.New("invalid color")
	// ErrNoSelection is returned for element edits while nothing is selected.
	ErrNoSelection = errors.New("no element selected")
)

// ElementFields is the text shown in the element section of the panel.
type ElementFields struct {
	ID       string
	Type     domain.ElementType
	Label    string
	Value    string
	FontSize string
	Color    string
}

// ConfigFields is the text shown in the always-visible label section.
type ConfigFields struct {
	WidthMM  string
	HeightMM string
	Quantity string
}

type Panel struct {
	st          *design.Store
	maxQuantity int
	log         *slog.Logger
}

// New binds a panel to st. Quantities above maxQuantity are rejected; a
// maxQuantity outside (0, domain.MaxQuantity] falls back to domain.MaxQuantity.
func New(st *design.Store, maxQuantity int) *Panel {
	if maxQuantity <= 0 || maxQuantity > domain.MaxQuantity {
		maxQuantity = domain.MaxQuantity
	}
	return &Panel{st: st, maxQuantity: maxQuantity, log: applog.WithComponent("panel")}
}

// Fields returns the selected element's values; false means the element
// section should be omitted.
func (p *Panel) Fields() (ElementFields, bool) {
	e, ok := p.st.Selected()
	if !ok {
		return ElementFields{}, false
	}
	return ElementFields{
		ID:       e.ID,
		Type:     e.Type,
		Label:    e.Label,
		Value:    e.Value,
		FontSize: strconv.Itoa(e.FontSize),
		Color:    e.Color,
	}, true
}

func (p *Panel) selectedID() (string, error) {
	e, ok := p.st.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	return e.ID, nil
}

func (p *Panel) SetLabel(s string) error {
	id, err := p.selectedID()
	if err != nil {
		return err
	}
	p.st.Update(id, design.Patch{Label: &s})
	return nil
}

func (p *Panel) SetValue(s string) error {
	id, err := p.selectedID()
	if err != nil {
		return err
	}
	p.st.Update(id, design.Patch{Value: &s})
	return nil
}

// SetFontSize accepts a positive integer.
func (p *Panel) SetFontSize(s string) error {
	id, err := p.selectedID()
	if err != nil {
		return err
	}
	n, err := ParsePositiveInt(s)
	if err != nil {
		p.log.Debug("font size rejected", slog.String("input", s))
		return err
	}
	p.st.Update(id, design.Patch{FontSize: &n})
	return nil
}

// SetColor accepts #rgb or #rrggbb and stores the normalized #rrggbb form.
func (p *Panel) SetColor(s string) error {
	id, err := p.selectedID()
	if err != nil {
		return err
	}
	c, err := domain.ParseHexColor(s)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	hex := domain.HexColor(c)
	p.st.Update(id, design.Patch{Color: &hex})
	return nil
}

func (p *Panel) ConfigFields() ConfigFields {
	c := p.st.Config()
	return ConfigFields{
		WidthMM:  FormatMM(c.WidthMM),
		HeightMM: FormatMM(c.HeightMM),
		Quantity: strconv.Itoa(c.Quantity),
	}
}

// SetWidthMM accepts a length within the label bounds.
func (p *Panel) SetWidthMM(s string) error {
	v, err := ParseMM(s)
	if err != nil {
		return err
	}
	c := p.st.Config()
	c.WidthMM = v
	p.st.SetConfig(c)
	return nil
}

// SetHeightMM accepts a length within the label bounds.
func (p *Panel) SetHeightMM(s string) error {
	v, err := ParseMM(s)
	if err != nil {
		return err
	}
	c := p.st.Config()
	c.HeightMM = v
	p.st.SetConfig(c)
	return nil
}

// SetQuantity accepts a non-negative integer up to the configured maximum.
func (p *Panel) SetQuantity(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("%w: quantity %q", ErrInvalidNumber, s)
	}
	if n > p.maxQuantity {
		return fmt.Errorf("%w: quantity %d exceeds maximum %d", ErrInvalidNumber, n, p.maxQuantity)
	}
	c := p.st.Config()
	c.Quantity = n
	p.st.SetConfig(c)
	return nil
}

// ParsePositiveInt parses an integer greater than zero.
func ParsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

// ParseMM parses a label length in [domain.MinLabelMM, domain.MaxLabelMM].
// A decimal comma is accepted.
func ParseMM(s string) (float64, error) {
	t := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if v < domain.MinLabelMM || v > domain.MaxLabelMM {
		return 0, fmt.Errorf("%w: %q is outside %g..%g mm", ErrInvalidNumber, s, domain.MinLabelMM, domain.MaxLabelMM)
	}
	return v, nil
}

// FormatMM renders v without trailing zeros.
func FormatMM(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
