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
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Label         LabelConfig   `yaml:"label"`
	Print         PrintConfig   `yaml:"print"`
	Logging       LoggingConfig `yaml:"logging"`
}

type GeneralConfig struct {
	Theme  string `yaml:"theme"`  // "system" | "light" | "dark"
	Locale string `yaml:"locale"` // placeholder language, e.g. "en", "de"
}

// LabelConfig holds the label settings a fresh designer session starts with.
type LabelConfig struct {
	WidthMM  float64 `yaml:"width_mm"`
	HeightMM float64 `yaml:"height_mm"`
	Quantity int     `yaml:"quantity"`
}

// PrintConfig describes the sheet copies are tiled onto.
type PrintConfig struct {
	PageWidthMM  float64 `yaml:"page_width_mm"`
	PageHeightMM float64 `yaml:"page_height_mm"`
	DPI          int     `yaml:"dpi"`
	AutoPrint    bool    `yaml:"auto_print"`
	MaxQuantity  int     `yaml:"max_quantity"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system", Locale: "en"},
		Label:         LabelConfig{WidthMM: 50, HeightMM: 30, Quantity: 10},
		Print:         PrintConfig{PageWidthMM: 210, PageHeightMM: 297, DPI: 150, AutoPrint: true, MaxQuantity: 1000},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile = "LBL_CONFIG"
	EnvLocale     = "LBL_LOCALE"
	EnvTheme      = "LBL_THEME"
	EnvPageSize   = "LBL_PAGE_SIZE" // "<width>x<height>" in mm
	EnvDPI        = "LBL_DPI"
	EnvAutoPrint  = "LBL_AUTO_PRINT"
	EnvLogLevel   = "LBL_LOG_LEVEL"
	EnvLogFormat  = "LBL_LOG_FORMAT"
	EnvLogSource  = "LBL_LOG_SOURCE"
	EnvLogFile    = "LBL_LOG_FILE"
)

// ConfigPath returns the per-user config file path. LBL_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "LabelDesigner")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "LabelDesigner")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "labeldesigner")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "labeldesigner")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing file is not an error; a malformed one is ignored in favor of defaults.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.General.Theme); v != "" {
		dst.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.General.Locale); v != "" {
		dst.General.Locale = v
	}
	// label and page dimensions only replace defaults when usable
	if src.Label.WidthMM > 0 {
		dst.Label.WidthMM = src.Label.WidthMM
	}
	if src.Label.HeightMM > 0 {
		dst.Label.HeightMM = src.Label.HeightMM
	}
	if src.Label.Quantity > 0 {
		dst.Label.Quantity = src.Label.Quantity
	}
	if src.Print.PageWidthMM > 0 {
		dst.Print.PageWidthMM = src.Print.PageWidthMM
	}
	if src.Print.PageHeightMM > 0 {
		dst.Print.PageHeightMM = src.Print.PageHeightMM
	}
	if src.Print.DPI > 0 {
		dst.Print.DPI = src.Print.DPI
	}
	if src.Print.MaxQuantity > 0 {
		dst.Print.MaxQuantity = src.Print.MaxQuantity
	}
	dst.Print.AutoPrint = src.Print.AutoPrint
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLocale)); v != "" {
		cfg.General.Locale = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPageSize)); v != "" {
		if w, h, ok := ParsePageSize(v); ok {
			cfg.Print.PageWidthMM, cfg.Print.PageHeightMM = w, h
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDPI)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Print.DPI = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvAutoPrint)); v != "" {
		cfg.Print.AutoPrint = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// ParsePageSize accepts "210x297" (millimeters) or the names "a4", "a5", "letter".
func ParsePageSize(s string) (w, h float64, ok bool) {
	switch strings.ToLower(s) {
	case "a4":
		return 210, 297, true
	case "a5":
		return 148, 210, true
	case "letter":
		return 215.9, 279.4, true
	}
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
