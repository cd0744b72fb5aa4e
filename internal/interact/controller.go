/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package interact turns pointer events on the design canvas into move and
// resize operations on the element store.
//
// Two independent state machines share the pointer stream:
//
//	idle -> dragging(id) -> idle
//	idle -> resizing(id, handle) -> idle
//
// Pointer-up and pointer-leave end both unconditionally.
package interact

import (
	"log/slog"

	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	applog "labeldesigner/internal/log"
	"labeldesigner/internal/vector"
)

// Target is the store surface the controller mutates.
type Target interface {
	Get(id string) (domain.LabelElement, bool)
	Update(id string, p design.Patch) bool
	Select(id string)
	SelectedID() string
	Elements() []domain.LabelElement
}

// DefaultHandleSize is the side length of a resize grip in canvas pixels.
const DefaultHandleSize float32 = 8

type dragState struct {
	id string
}

type resizeState struct {
	id     string
	handle Handle
}

type Controller struct {
	target     Target
	drag       *dragState
	resize     *resizeState
	HandleSize float32
	log        *slog.Logger
}

func NewController(t Target) *Controller {
	return &Controller{target: t, HandleSize: DefaultHandleSize, log: applog.WithComponent("canvas")}
}

// PointerDownBody starts dragging id and selects it.
func (c *Controller) PointerDownBody(id string) {
	c.drag = &dragState{id: id}
	c.target.Select(id)
}

// PointerDownHandle starts resizing id from corner h and selects it. It does
// not start a drag.
func (c *Controller) PointerDownHandle(id string, h Handle) {
	c.resize = &resizeState{id: id, handle: h}
	c.target.Select(id)
	c.log.Debug("resize start", slog.String("id", id), slog.String("handle", h.String()))
}

// PointerDown hit-tests p: a grip of the selected element wins over any body,
// and a press on empty canvas clears the selection.
func (c *Controller) PointerDown(p vector.Pt) {
	if sel, ok := c.target.Get(c.target.SelectedID()); ok {
		if h, ok := HandleAt(RectOf(sel), p, c.HandleSize); ok {
			c.PointerDownHandle(sel.ID, h)
			return
		}
	}
	if e, ok := ElementAt(c.target.Elements(), p); ok {
		c.PointerDownBody(e.ID)
		return
	}
	c.target.Select("")
}

// PointerMove applies the active gesture for a canvas-relative pointer position.
func (c *Controller) PointerMove(p vector.Pt) {
	if c.drag != nil {
		if e, ok := c.target.Get(c.drag.id); ok {
			r := Recenter(RectOf(e), p)
			c.target.Update(e.ID, design.Patch{X: &r.X, Y: &r.Y})
		}
	}
	if c.resize != nil {
		if e, ok := c.target.Get(c.resize.id); ok {
			r := Resize(RectOf(e), c.resize.handle, p)
			c.target.Update(e.ID, design.Geometry(r))
		}
	}
}

// PointerUp ends any drag or resize.
func (c *Controller) PointerUp() { c.release() }

// PointerLeave ends any drag or resize when the pointer exits the canvas.
func (c *Controller) PointerLeave() { c.release() }

func (c *Controller) release() {
	c.drag = nil
	c.resize = nil
}

// Dragging reports the element being moved.
func (c *Controller) Dragging() (string, bool) {
	if c.drag == nil {
		return "", false
	}
	return c.drag.id, true
}

// Resizing reports the element and corner being resized.
func (c *Controller) Resizing() (string, Handle, bool) {
	if c.resize == nil {
		return "", 0, false
	}
	return c.resize.id, c.resize.handle, true
}

// Active reports whether any gesture is in progress.
func (c *Controller) Active() bool { return c.drag != nil || c.resize != nil }
