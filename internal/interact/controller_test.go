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

	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	"labeldesigner/internal/vector"
)

func setup(t *testing.T) (*design.Store, *Controller, domain.LabelElement) {
	t.Helper()
	st := design.NewStore(domain.LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 1}, "en")
	e := st.Add(domain.TypeText)
	x, y := float32(10), float32(10)
	st.Update(e.ID, design.Patch{X: &x, Y: &y})
	st.ClearSelection()
	e, _ = st.Get(e.ID)
	return st, NewController(st), e
}

func TestDragRecentersAndSelects(t *testing.T) {
	st, c, e := setup(t)
	c.PointerDownBody(e.ID)
	if st.SelectedID() != e.ID {
		t.Fatalf("drag start should select")
	}
	c.PointerMove(vector.P(100, 50))
	got, _ := st.Get(e.ID)
	if got.X != 50 || got.Y != 35 || got.Width != 100 || got.Height != 30 {
		t.Fatalf("after drag: %+v", got)
	}
	c.PointerMove(vector.P(-10, -10))
	got, _ = st.Get(e.ID)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("drag must clamp at zero: %+v", got)
	}
}

func TestUpAndLeaveClearBothMachines(t *testing.T) {
	for _, end := range []string{"up", "leave"} {
		st, c, e := setup(t)
		c.PointerDownBody(e.ID)
		c.PointerDownHandle(e.ID, SouthEast)
		if !c.Active() {
			t.Fatalf("gesture should be active")
		}
		if end == "up" {
			c.PointerUp()
		} else {
			c.PointerLeave()
		}
		if c.Active() {
			t.Fatalf("%s did not clear state", end)
		}
		before, _ := st.Get(e.ID)
		c.PointerMove(vector.P(300, 300))
		after, _ := st.Get(e.ID)
		if before != after {
			t.Fatalf("move after %s changed the element", end)
		}
	}
}

func TestHandleResizeDoesNotDrag(t *testing.T) {
	st, c, e := setup(t)
	c.PointerDownHandle(e.ID, SouthEast)
	if _, ok := c.Dragging(); ok {
		t.Fatalf("resize must not start a drag")
	}
	if id, h, ok := c.Resizing(); !ok || id != e.ID || h != SouthEast {
		t.Fatalf("resizing = %q %v %v", id, h, ok)
	}
	c.PointerMove(vector.P(150, 60))
	got, _ := st.Get(e.ID)
	if got.X != 10 || got.Y != 10 || got.Width != 140 || got.Height != 50 {
		t.Fatalf("after resize: %+v", got)
	}
}

func TestPointerDownHitTesting(t *testing.T) {
	st, c, e := setup(t)
	c.PointerDown(vector.P(50, 20))
	if id, ok := c.Dragging(); !ok || id != e.ID {
		t.Fatalf("press on body should drag")
	}
	c.PointerUp()
	c.PointerDown(vector.P(110, 40))
	if _, h, ok := c.Resizing(); !ok || h != SouthEast {
		t.Fatalf("press on selected corner should resize")
	}
	c.PointerUp()
	c.PointerDown(vector.P(180, 100))
	if c.Active() || st.SelectedID() != "" {
		t.Fatalf("press on empty canvas should clear selection")
	}
}

func TestMoveOnRemovedElementIsNoOp(t *testing.T) {
	st, c, e := setup(t)
	c.PointerDownBody(e.ID)
	st.Remove(e.ID)
	c.PointerMove(vector.P(40, 40))
	if st.Len() != 0 {
		t.Fatalf("removed element came back")
	}
}
