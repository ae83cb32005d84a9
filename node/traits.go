/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package node

import "strings"

// Traits is a bitmask describing the shape of a reflected type.
type Traits uint32

const (
	// Arithmetic marks predeclared numeric and boolean types.
	Arithmetic Traits = 1 << iota
	// Integral marks integer kinds (named or not).
	Integral
	// FloatingPoint marks float32/float64 kinds (named or not).
	FloatingPoint
	// Array marks fixed-size arrays.
	Array
	// Enum marks named integer types declared in a package (e.g. type Color int).
	Enum
	// Class marks struct types.
	Class
	// Pointer marks Go pointers.
	Pointer
	// FuncKind marks function types.
	FuncKind
	// PointerLike marks types that can be dereferenced: pointers and types
	// registered with a dereference thunk.
	PointerLike
	// SequenceContainer marks slices and arrays.
	SequenceContainer
	// AssociativeContainer marks maps.
	AssociativeContainer
	// VoidKind marks the result type of functions that return nothing.
	VoidKind
)

var traitNames = [...]string{
	"Arithmetic",
	"Integral",
	"FloatingPoint",
	"Array",
	"Enum",
	"Class",
	"Pointer",
	"Func",
	"PointerLike",
	"SequenceContainer",
	"AssociativeContainer",
	"Void",
}

// Has reports whether every bit of mask is set.
func (t Traits) Has(mask Traits) bool {
	return t&mask == mask
}

// Any reports whether at least one bit of mask is set.
func (t Traits) Any(mask Traits) bool {
	return t&mask != 0
}

// String lists the set traits separated by '|', or "None".
func (t Traits) String() string {
	if t == 0 {
		return "None"
	}
	var parts []string
	for i, name := range traitNames {
		if t&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
