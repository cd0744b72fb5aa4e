/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce sync.Once
	fontsErr  error
	regular   *opentype.Font
	mono      *opentype.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regular, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse goregular: %w", fontsErr)
			return
		}
		if mono, fontsErr = opentype.Parse(gomono.TTF); fontsErr != nil {
			fontsErr = fmt.Errorf("parse gomono: %w", fontsErr)
		}
	})
	return fontsErr
}

// newFace returns a face of sizePt points at dpi. The caller closes it.
func newFace(monospace bool, sizePt, dpi float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	f := regular
	if monospace {
		f = mono
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: sizePt, DPI: dpi, Hinting: font.HintingFull})
}
