/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the loader at a config file inside a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigFile, path)
	for _, k := range []string{EnvLocale, EnvTheme, EnvPageSize, EnvDPI, EnvAutoPrint, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	return path
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Label = LabelConfig{WidthMM: 62, HeightMM: 29, Quantity: 24}
	cfg.General.Locale = "de"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Label != cfg.Label || got.General.Locale != "de" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("label: [this is not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Label != Defaults().Label {
		t.Fatalf("expected default label config, got %+v", cfg.Label)
	}
}

func TestMergeIgnoresNonPositiveDimensions(t *testing.T) {
	dst := Defaults()
	src := AppConfig{Label: LabelConfig{WidthMM: -5, HeightMM: 0, Quantity: 3}}
	mergeInto(&dst, &src)
	if dst.Label.WidthMM != 50 || dst.Label.HeightMM != 30 || dst.Label.Quantity != 3 {
		t.Fatalf("unexpected merge result: %+v", dst.Label)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging = LoggingConfig{Level: "DEBUG", Format: "json", Source: true, File: "/tmp/lbl.log"}
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/lbl.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLocale, "ru")
	t.Setenv(EnvPageSize, "100x150")
	t.Setenv(EnvDPI, "300")
	t.Setenv(EnvAutoPrint, "off")
	t.Setenv(EnvLogLevel, "error")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.General.Locale != "ru" {
		t.Errorf("locale = %q", cfg.General.Locale)
	}
	if cfg.Print.PageWidthMM != 100 || cfg.Print.PageHeightMM != 150 {
		t.Errorf("page size = %vx%v", cfg.Print.PageWidthMM, cfg.Print.PageHeightMM)
	}
	if cfg.Print.DPI != 300 || cfg.Print.AutoPrint {
		t.Errorf("print = %+v", cfg.Print)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestParsePageSize(t *testing.T) {
	cases := []struct {
		in   string
		w, h float64
		ok   bool
	}{
		{"A4", 210, 297, true},
		{"letter", 215.9, 279.4, true},
		{"100 x 50", 100, 50, true},
		{"0x50", 0, 0, false},
		{"wide", 0, 0, false},
	}
	for _, c := range cases {
		w, h, ok := ParsePageSize(c.in)
		if ok != c.ok || w != c.w || h != c.h {
			t.Errorf("ParsePageSize(%q) = %v,%v,%v want %v,%v,%v", c.in, w, h, ok, c.w, c.h, c.ok)
		}
	}
}
