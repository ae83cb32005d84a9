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

package reflect

import (
	"reflect"

	"dirpx.dev/meta/node"
)

// Traits computes the trait mask of t.
//
// Classification:
//   - bool and every numeric kind    -> Arithmetic (+ Integral / FloatingPoint)
//   - named integer declared in a package -> Enum instead of Arithmetic
//   - struct -> Class
//   - ptr    -> Pointer | PointerLike
//   - func   -> Func
//   - array  -> Array | SequenceContainer
//   - slice  -> SequenceContainer
//   - map    -> AssociativeContainer
//
// Complex numbers are left out: they have no float64 projection.
func Traits(t reflect.Type) node.Traits {
	if t == nil {
		return 0
	}
	var tr node.Traits
	switch t.Kind() {
	case reflect.Bool:
		tr |= arithmeticOrEnum(t)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		tr |= node.Integral | arithmeticOrEnum(t)
	case reflect.Float32, reflect.Float64:
		tr |= node.FloatingPoint | arithmeticOrEnum(t)
	case reflect.Struct:
		tr |= node.Class
	case reflect.Ptr:
		tr |= node.Pointer | node.PointerLike
	case reflect.Func:
		tr |= node.FuncKind
	case reflect.Array:
		tr |= node.Array | node.SequenceContainer
	case reflect.Slice:
		tr |= node.SequenceContainer
	case reflect.Map:
		tr |= node.AssociativeContainer
	}
	return tr
}

// arithmeticOrEnum distinguishes predeclared scalars from user-declared
// integer types. Named floats and bools stay arithmetic.
func arithmeticOrEnum(t reflect.Type) node.Traits {
	if t.PkgPath() == "" {
		return node.Arithmetic
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Float32, reflect.Float64:
		return node.Arithmetic
	}
	return node.Enum
}

// IsKeyOnly reports whether t is a set-like map (map[K]struct{}).
func IsKeyOnly(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map &&
		t.Elem().Kind() == reflect.Struct && t.Elem().NumField() == 0
}
