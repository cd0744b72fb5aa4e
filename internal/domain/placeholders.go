/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "golang.org/x/text/language"

// Placeholder is the label/value pair a new element starts with.
type Placeholder struct {
	Label string
	Value string
}

var supportedLocales = []language.Tag{language.English, language.German, language.Russian}

var localeMatcher = language.NewMatcher(supportedLocales)

var placeholders = map[language.Tag]map[ElementType]Placeholder{
	language.English: {
		TypeText:    {Label: "Text", Value: "Product name"},
		TypePrice:   {Label: "Price", Value: "$9.99"},
		TypeBarcode: {Label: "Barcode", Value: "4006381333931"},
	},
	language.German: {
		TypeText:    {Label: "Text", Value: "Produktname"},
		TypePrice:   {Label: "Preis", Value: "9,99 €"},
		TypeBarcode: {Label: "Strichcode", Value: "4006381333931"},
	},
	language.Russian: {
		TypeText:    {Label: "Текст", Value: "Название товара"},
		TypePrice:   {Label: "Цена", Value: "99,90 ₽"},
		TypeBarcode: {Label: "Штрихкод", Value: "4006381333931"},
	},
}

// MatchLocale resolves a BCP 47 string ("de-AT", "ru", "") to a supported locale.
func MatchLocale(locale string) language.Tag {
	_, idx := language.MatchStrings(localeMatcher, locale)
	return supportedLocales[idx]
}

// Placeholders returns the localized defaults for a new element of type t.
func Placeholders(locale string, t ElementType) Placeholder {
	p, ok := placeholders[MatchLocale(locale)][t]
	if !ok {
		return placeholders[language.English][TypeText]
	}
	return p
}
