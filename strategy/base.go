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
)

// NewBaseStrategy creates an apis.Strategy that walks base edges.
//
// A cast succeeds when dst is a base at any depth, yielding the addressable
// sub-object, or when some base has a registered conversion to dst. Each
// base is visited once so cyclic graphs terminate.
func NewBaseStrategy() apis.Strategy {
	return baseStrategy{}
}

type baseStrategy struct{}

var _ apis.Strategy = baseStrategy{}

// TryCast returns the base sub-object of v, or the converted value of the
// first base that can convert to dst.
func (baseStrategy) TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if src == nil || !v.IsValid() {
		return reflect.Value{}, false
	}
	if sub, ok := node.UpCast(src, v, dst); ok {
		return sub, true
	}

	var (
		out reflect.Value
		ok  bool
	)
	node.Walk(src, func(curr *node.Type) bool {
		if curr == src {
			return true
		}
		c := curr.Conv(dst)
		if c == nil {
			return true
		}
		sub, found := node.UpCast(src, v, curr.Info)
		if !found {
			return true
		}
		res, err := c.Conv(sub)
		if err != nil || !res.IsValid() {
			return true
		}
		out, ok = owned(res), true
		return false
	})
	return out, ok
}

// CanCast reports whether dst is a base of src or a base converts to it.
func (baseStrategy) CanCast(src *node.Type, dst reflect.Type) bool {
	if src == nil {
		return false
	}
	found := false
	node.Walk(src, func(curr *node.Type) bool {
		if curr == src {
			return true
		}
		if curr.Info == dst || curr.Conv(dst) != nil {
			found = true
			return false
		}
		return true
	})
	return found
}
