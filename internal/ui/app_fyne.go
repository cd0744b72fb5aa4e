//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"labeldesigner/internal/config"
	"labeldesigner/internal/crash"
	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
	"labeldesigner/internal/interact"
	applog "labeldesigner/internal/log"
	"labeldesigner/internal/panel"
	"labeldesigner/internal/version"
)

// Run starts the Fyne-based label designer.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	st := design.NewStore(domain.LabelConfig{
		WidthMM:  cfg.Label.WidthMM,
		HeightMM: cfg.Label.HeightMM,
		Quantity: cfg.Label.Quantity,
	}.Bounded(), cfg.General.Locale)
	defer crash.Recover(st)

	fyneApp := app.NewWithID("labeldesigner")
	applyTheme(fyneApp, cfg.General.Theme)
	w := fyneApp.NewWindow("Label Designer")
	prefs := fyneApp.Preferences()
	winW := max(800, prefs.IntWithFallback("window.width", 1200))
	winH := max(600, prefs.IntWithFallback("window.height", 760))
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	d := newDesigner(fyneApp, w, st, cfg)
	w.SetContent(d.content())
	d.refreshAll()
	w.ShowAndRun()
	l.Info("UI closed")
	return nil
}

// designer wires the store to the views. All handlers run on the UI goroutine.
type designer struct {
	app    fyne.App
	win    fyne.Window
	cfg    config.AppConfig
	st     *design.Store
	ctrl   *interact.Controller
	panel  *panel.Panel
	canvas *LabelCanvas
	log    *slog.Logger

	status *widget.Label
	list   *widget.List
	ids    []string

	elementBox    *fyne.Container
	typeLabel     *widget.Label
	labelEntry    *widget.Entry
	valueEntry    *widget.Entry
	fontSizeEntry *widget.Entry
	colorEntry    *widget.Entry
	widthEntry    *widget.Entry
	heightEntry   *widget.Entry
	quantityEntry *widget.Entry

	// syncing suppresses entry callbacks while the form is filled from the store.
	syncing bool
	// formID is the element currently shown in the element form.
	formID string
}

func newDesigner(a fyne.App, w fyne.Window, st *design.Store, cfg config.AppConfig) *designer {
	d := &designer{app: a, win: w, cfg: cfg, st: st, log: applog.WithComponent("designer")}
	d.ctrl = interact.NewController(st)
	d.panel = panel.New(st, cfg.Print.MaxQuantity)
	d.canvas = NewLabelCanvas(st, d.ctrl)
	d.status = widget.NewLabel("Ready")
	st.OnChange(d.onChange)
	return d
}

func (d *designer) content() fyne.CanvasObject {
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.VisibilityIcon(), d.showPreview),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), d.print),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), d.exportPDF),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomOutIcon(), func() { d.canvas.SetZoom(d.canvas.zoom - 0.25) }),
		widget.NewToolbarAction(theme.ZoomInIcon(), func() { d.canvas.SetZoom(d.canvas.zoom + 0.25) }),
	)
	center := container.NewScroll(d.canvas)
	split := container.NewHSplit(d.leftPane(), container.NewHSplit(center, d.rightPane()))
	split.Offset = 0.2
	return container.NewBorder(toolbar, d.status, nil, nil, split)
}

func (d *designer) leftPane() fyne.CanvasObject {
	var adds []fyne.CanvasObject
	for _, t := range domain.ElementTypes {
		t := t
		adds = append(adds, widget.NewButtonWithIcon("Add "+titleCase(string(t)), theme.ContentAddIcon(), func() {
			e := d.st.Add(t)
			d.setStatus(fmt.Sprintf("Added %s field", e.Type))
		}))
	}
	d.list = widget.NewList(
		func() int { return len(d.ids) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			if i < 0 || int(i) >= len(d.ids) {
				o.(*widget.Label).SetText("")
				return
			}
			e, _ := d.st.Get(d.ids[i])
			o.(*widget.Label).SetText(listLabel(e))
		},
	)
	d.list.OnSelected = func(i widget.ListItemID) {
		if d.syncing || int(i) >= len(d.ids) {
			return
		}
		d.st.Select(d.ids[i])
	}
	del := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		id := d.st.SelectedID()
		if d.st.Remove(id) {
			d.setStatus("Element deleted")
		}
	})
	clearAll := widget.NewButtonWithIcon("Clear all", theme.ContentClearIcon(), func() {
		if d.st.Len() == 0 {
			return
		}
		dialog.ShowConfirm("Clear label", "Remove every element from the label?", func(ok bool) {
			if ok {
				d.st.Clear()
			}
		}, d.win)
	})
	top := container.NewVBox(append(adds, widget.NewSeparator(), widget.NewLabel("Elements"))...)
	return container.NewBorder(top, container.NewVBox(del, clearAll), nil, nil, d.list)
}

func (d *designer) rightPane() fyne.CanvasObject {
	d.typeLabel = widget.NewLabel("")
	d.labelEntry = d.entry(d.panel.SetLabel)
	d.valueEntry = d.entry(d.panel.SetValue)
	d.fontSizeEntry = d.entry(d.panel.SetFontSize)
	d.colorEntry = d.entry(d.panel.SetColor)
	pick := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), d.pickColor)
	d.elementBox = container.NewVBox(
		widget.NewLabelWithStyle("Element", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Type", d.typeLabel),
			widget.NewFormItem("Label", d.labelEntry),
			widget.NewFormItem("Value", d.valueEntry),
			widget.NewFormItem("Font size", d.fontSizeEntry),
			widget.NewFormItem("Color", container.NewBorder(nil, nil, nil, pick, d.colorEntry)),
		),
		widget.NewSeparator(),
	)

	d.widthEntry = d.entry(d.panel.SetWidthMM)
	d.heightEntry = d.entry(d.panel.SetHeightMM)
	d.quantityEntry = d.entry(d.panel.SetQuantity)
	labelBox := container.NewVBox(
		widget.NewLabelWithStyle("Label", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Width (mm)", d.widthEntry),
			widget.NewFormItem("Height (mm)", d.heightEntry),
			widget.NewFormItem("Quantity", d.quantityEntry),
		),
	)
	return container.NewVScroll(container.NewVBox(d.elementBox, labelBox))
}

// entry builds an input whose edits go straight to set. Rejected input stays
// in the field and is reported in the status bar; the store keeps its value.
func (d *designer) entry(set func(string) error) *widget.Entry {
	e := widget.NewEntry()
	e.OnChanged = func(s string) {
		if d.syncing {
			return
		}
		if err := set(s); err != nil {
			d.setStatus(err.Error())
			return
		}
		d.setStatus("Ready")
	}
	return e
}

func (d *designer) pickColor() {
	cur, ok := d.panel.Fields()
	if !ok {
		return
	}
	picker := dialog.NewColorPicker("Element color", "Text and border color", func(c color.Color) {
		if err := d.panel.SetColor(domain.HexColor(c)); err != nil {
			d.setStatus(err.Error())
		}
	}, d.win)
	picker.Advanced = true
	picker.SetColor(domain.ColorOrDefault(cur.Color))
	picker.Show()
}

func (d *designer) onChange(ev design.Event) {
	switch ev.Kind {
	case design.EventUpdated:
		d.canvas.Refresh()
		d.list.Refresh()
		if ev.ID == d.st.SelectedID() {
			d.refreshElementForm()
		}
	case design.EventConfig:
		d.canvas.Refresh()
		d.refreshConfigForm()
	default:
		d.refreshAll()
	}
}

func (d *designer) refreshAll() {
	d.ids = d.ids[:0]
	for _, e := range d.st.Elements() {
		d.ids = append(d.ids, e.ID)
	}
	d.syncing = true
	d.list.UnselectAll()
	for i, id := range d.ids {
		if id == d.st.SelectedID() {
			d.list.Select(widget.ListItemID(i))
		}
	}
	d.syncing = false
	d.list.Refresh()
	d.canvas.Refresh()
	d.refreshElementForm()
	d.refreshConfigForm()
}

func (d *designer) refreshElementForm() {
	f, ok := d.panel.Fields()
	if !ok {
		d.formID = ""
		d.elementBox.Hide()
		return
	}
	d.syncing = true
	defer func() { d.syncing = false }()
	fresh := f.ID != d.formID
	d.formID = f.ID
	d.typeLabel.SetText(titleCase(string(f.Type)))
	setIfDiff(d.labelEntry, f.Label)
	setIfDiff(d.valueEntry, f.Value)
	// Half-typed numbers and colors stay in the field until the element changes.
	if n, err := panel.ParsePositiveInt(d.fontSizeEntry.Text); fresh || (err == nil && fmt.Sprint(n) != f.FontSize) {
		setIfDiff(d.fontSizeEntry, f.FontSize)
	}
	if c, err := domain.ParseHexColor(d.colorEntry.Text); fresh || (err == nil && domain.HexColor(c) != f.Color) {
		setIfDiff(d.colorEntry, f.Color)
	}
	d.elementBox.Show()
}

func (d *designer) refreshConfigForm() {
	f := d.panel.ConfigFields()
	d.syncing = true
	defer func() { d.syncing = false }()
	if v, err := panel.ParseMM(d.widthEntry.Text); d.widthEntry.Text == "" || (err == nil && panel.FormatMM(v) != f.WidthMM) {
		setIfDiff(d.widthEntry, f.WidthMM)
	}
	if v, err := panel.ParseMM(d.heightEntry.Text); d.heightEntry.Text == "" || (err == nil && panel.FormatMM(v) != f.HeightMM) {
		setIfDiff(d.heightEntry, f.HeightMM)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(d.quantityEntry.Text)); d.quantityEntry.Text == "" || (err == nil && strconv.Itoa(n) != f.Quantity) {
		setIfDiff(d.quantityEntry, f.Quantity)
	}
}

func (d *designer) setStatus(s string) { d.status.SetText(s) }

// setIfDiff avoids resetting the cursor of an entry the user is typing in.
func setIfDiff(e *widget.Entry, s string) {
	if e.Text != s {
		e.SetText(s)
	}
}

func listLabel(e domain.LabelElement) string {
	name := e.Label
	if strings.TrimSpace(name) == "" {
		name = titleCase(string(e.Type))
	}
	return fmt.Sprintf("%s: %s", name, e.Value)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func applyTheme(a fyne.App, name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	case "light":
		a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	}
}
