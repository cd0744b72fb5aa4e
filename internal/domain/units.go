/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Screen pixels are CSS pixels: 96 per inch.
const (
	PxPerInch = 96.0
	MMPerInch = 25.4
	PtPerInch = 72.0
)

func MMToPx(mm float64) float64 { return mm * PxPerInch / MMPerInch }
func PxToMM(px float64) float64 { return px * MMPerInch / PxPerInch }

// PxToPt converts a pixel font size to typographic points.
func PxToPt(px float64) float64 { return px * PtPerInch / PxPerInch }
