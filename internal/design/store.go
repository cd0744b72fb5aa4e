/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package design holds the in-memory label design: the ordered element
// collection, the current selection and the label configuration. It is the
// only mutation surface; views subscribe with OnChange and re-render.
package design

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"labeldesigner/internal/domain"
	applog "labeldesigner/internal/log"
	"labeldesigner/internal/vector"
)

// EventKind names what changed in the store.
type EventKind string

const (
	EventAdded    EventKind = "added"
	EventUpdated  EventKind = "updated"
	EventRemoved  EventKind = "removed"
	EventSelected EventKind = "selected"
	EventConfig   EventKind = "config"
	EventCleared  EventKind = "cleared"
)

// Event is delivered to OnChange subscribers after the mutation is applied.
// ID is empty for config and cleared events, and for a cleared selection.
type Event struct {
	Kind EventKind
	ID   string
}

// Patch carries the fields of a partial update. Nil fields are left unchanged.
type Patch struct {
	Label    *string
	Value    *string
	X, Y     *float32
	Width    *float32
	Height   *float32
	FontSize *int
	Color    *string
}

// Geometry builds a patch that replaces position and size with r.
func Geometry(r vector.Rect) Patch {
	return Patch{X: &r.X, Y: &r.Y, Width: &r.W, Height: &r.H}
}

func (p Patch) apply(e *domain.LabelElement) {
	if p.Label != nil {
		e.Label = *p.Label
	}
	if p.Value != nil {
		e.Value = *p.Value
	}
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.FontSize != nil {
		e.FontSize = *p.FontSize
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
}

// cascade is the per-element offset for newly added elements.
const (
	cascadeStep  float32 = 20
	cascadeWraps         = 8
)

// Store is safe for concurrent use; subscribers are called without the lock held.
type Store struct {
	mu        sync.Mutex
	elements  []domain.LabelElement
	selected  string
	cfg       domain.LabelConfig
	locale    string
	listeners []func(Event)
	newID     func() string
}

// NewStore returns an empty design with the given label configuration.
// locale selects the placeholder language for new elements.
func NewStore(cfg domain.LabelConfig, locale string) *Store {
	return &Store{cfg: cfg, locale: locale, newID: uuid.NewString}
}

// OnChange registers fn for every subsequent mutation.
func (s *Store) OnChange(fn func(Event)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) emit(ev Event) {
	s.mu.Lock()
	ls := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range ls {
		fn(ev)
	}
}

func (s *Store) indexLocked(id string) int {
	_, idx, ok := lo.FindIndexOf(s.elements, func(e domain.LabelElement) bool { return e.ID == id })
	if !ok {
		return -1
	}
	return idx
}

// Add appends a new element of type t with type defaults and a localized
// placeholder, selects it and returns a copy.
func (s *Store) Add(t domain.ElementType) domain.LabelElement {
	d := domain.DefaultsFor(t)
	ph := domain.Placeholders(s.locale, t)
	s.mu.Lock()
	off := cascadeStep * float32(len(s.elements)%cascadeWraps)
	e := domain.LabelElement{
		ID:       s.newID(),
		Type:     t,
		Label:    ph.Label,
		Value:    ph.Value,
		X:        cascadeStep + off,
		Y:        cascadeStep + off,
		Width:    d.Width,
		Height:   d.Height,
		FontSize: d.FontSize,
		Color:    domain.DefaultColor,
	}
	s.elements = append(s.elements, e)
	s.selected = e.ID
	s.mu.Unlock()
	applog.WithComponent("design").Debug("element added", slog.String("id", e.ID), slog.String("type", string(t)))
	s.emit(Event{Kind: EventAdded, ID: e.ID})
	return e
}

// Insert appends a fully specified element, e.g. one loaded from a design
// document. A missing or duplicate id is replaced with a fresh one. The
// selection is not changed.
func (s *Store) Insert(e domain.LabelElement) domain.LabelElement {
	s.mu.Lock()
	if e.ID == "" || s.indexLocked(e.ID) >= 0 {
		e.ID = s.newID()
	}
	s.elements = append(s.elements, e)
	s.mu.Unlock()
	s.emit(Event{Kind: EventAdded, ID: e.ID})
	return e
}

// Update merges p into the element with the given id. Unknown ids are a no-op
// and report false.
func (s *Store) Update(id string, p Patch) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	p.apply(&s.elements[i])
	s.mu.Unlock()
	s.emit(Event{Kind: EventUpdated, ID: id})
	return true
}

// Remove deletes the element and clears the selection if it pointed at it.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.elements = slices.Delete(s.elements, i, i+1)
	if s.selected == id {
		s.selected = ""
	}
	s.mu.Unlock()
	applog.WithComponent("design").Debug("element removed", slog.String("id", id))
	s.emit(Event{Kind: EventRemoved, ID: id})
	return true
}

// Select sets the selection without checking that id exists.
func (s *Store) Select(id string) {
	s.mu.Lock()
	s.selected = id
	s.mu.Unlock()
	s.emit(Event{Kind: EventSelected, ID: id})
}

func (s *Store) ClearSelection() { s.Select("") }

// SelectedID returns the raw selection, which may be stale.
func (s *Store) SelectedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Selected returns the selected element; false when nothing or a stale id is selected.
func (s *Store) Selected() (domain.LabelElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == "" {
		return domain.LabelElement{}, false
	}
	i := s.indexLocked(s.selected)
	if i < 0 {
		return domain.LabelElement{}, false
	}
	return s.elements[i], true
}

// Get returns a copy of the element with id.
func (s *Store) Get(id string) (domain.LabelElement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.LabelElement{}, false
	}
	return s.elements[i], true
}

// Elements returns a copy in insertion (z) order.
func (s *Store) Elements() []domain.LabelElement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.elements)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elements)
}

func (s *Store) Config() domain.LabelConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

func (s *Store) SetConfig(cfg domain.LabelConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.emit(Event{Kind: EventConfig})
}

// Clear removes every element and the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	s.elements = nil
	s.selected = ""
	s.mu.Unlock()
	s.emit(Event{Kind: EventCleared})
}

// Snapshot is the serializable form of a design.
type Snapshot struct {
	Label    domain.LabelConfig    `json:"label" yaml:"label"`
	Elements []domain.LabelElement `json:"elements" yaml:"elements"`
	Selected string                `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// Snapshot captures the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Label: s.cfg, Elements: slices.Clone(s.elements), Selected: s.selected}
}
