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

package strategy

import (
	"reflect"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/node"
	uref "dirpx.dev/meta/utils/reflect"
)

// NewArithmeticStrategy creates an apis.Strategy converting between
// arithmetic and enum types through float64.
func NewArithmeticStrategy() apis.Strategy {
	return arithmeticStrategy{}
}

type arithmeticStrategy struct{}

var _ apis.Strategy = arithmeticStrategy{}

// TryCast projects v onto float64 and back onto dst.
func (arithmeticStrategy) TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if !canArith(src, dst) || !v.IsValid() {
		return reflect.Value{}, false
	}
	out := uref.FromFloat64(dst, src.ToFloat(v))
	return out, out.IsValid()
}

// CanCast reports whether both sides are numeric.
func (arithmeticStrategy) CanCast(src *node.Type, dst reflect.Type) bool {
	return canArith(src, dst)
}

func canArith(src *node.Type, dst reflect.Type) bool {
	return src != nil && src.ToFloat != nil && uref.IsNumeric(dst)
}
