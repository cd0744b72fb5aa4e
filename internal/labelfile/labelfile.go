/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package labelfile reads and writes design documents used for headless
// rendering. Documents are YAML or JSON and are validated against an
// embedded JSON schema before they reach the store.
package labelfile

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"labeldesigner/internal/design"
	"labeldesigner/internal/domain"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidDocument is returned when a document fails schema validation.
var ErrInvalidDocument = errors.New("invalid label document")

// Format selects the document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension; anything but .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the on-disk form of a design.
type Document struct {
	Label    domain.LabelConfig    `json:"label" yaml:"label"`
	Elements []domain.LabelElement `json:"elements" yaml:"elements"`
}

// Load reads and validates the document at path.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// Parse validates data and fills defaults for omitted element fields.
func Parse(data []byte, f Format) (Document, error) {
	raw := data
	if f == FormatYAML {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		b, err := json.Marshal(v)
		if err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		raw = b
	}
	if err := validate(raw); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	for i := range doc.Elements {
		fillDefaults(&doc.Elements[i])
	}
	return doc, nil
}

func validate(raw []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

func fillDefaults(e *domain.LabelElement) {
	d := domain.DefaultsFor(e.Type)
	if e.Width == 0 {
		e.Width = d.Width
	}
	if e.Height == 0 {
		e.Height = d.Height
	}
	if e.FontSize == 0 {
		e.FontSize = d.FontSize
	}
	if e.Color == "" {
		e.Color = domain.DefaultColor
	} else {
		e.Color = domain.HexColor(domain.ColorOrDefault(e.Color))
	}
}

// FromStore captures the store's configuration and elements.
func FromStore(st *design.Store) Document {
	snap := st.Snapshot()
	return Document{Label: snap.Label, Elements: snap.Elements}
}

// Apply replaces the store's content with the document.
func (d Document) Apply(st *design.Store) {
	st.Clear()
	st.SetConfig(d.Label)
	for _, e := range d.Elements {
		st.Insert(e)
	}
}

// Encode writes d in format f.
func Encode(w io.Writer, d Document, f Format) error {
	if d.Elements == nil {
		d.Elements = []domain.LabelElement{}
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	}
	return nil
}

// WriteFile encodes d to path through a temp file and rename.
func WriteFile(path string, d Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	f, err := os.OpenFile(temp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if err := Encode(f, d, FormatFor(path)); err != nil {
		_ = f.Close()
		_ = os.Remove(temp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
