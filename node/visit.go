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

import "reflect"

// Walk visits t and then, depth first in registration order, every type
// reachable through base edges. Each node is visited at most once, so a
// cyclic base graph terminates. Walk stops as soon as fn returns false.
func Walk(t *Type, fn func(*Type) bool) {
	if t == nil {
		return
	}
	walk(t, fn, map[*Type]struct{}{})
}

func walk(t *Type, fn func(*Type) bool, seen map[*Type]struct{}) bool {
	if _, ok := seen[t]; ok {
		return true
	}
	seen[t] = struct{}{}
	if !fn(t) {
		return false
	}
	for _, b := range t.Bases {
		if b.Type != nil && !walk(b.Type, fn, seen) {
			return false
		}
	}
	return true
}

// FindData returns the data member with the given id declared on t or on
// any of its bases, together with the type that declares it.
func FindData(t *Type, id ID) (*Type, *Data) {
	var (
		owner *Type
		found *Data
	)
	Walk(t, func(curr *Type) bool {
		for _, d := range curr.Data {
			if d.ID == id {
				owner, found = curr, d
				return false
			}
		}
		return true
	})
	return owner, found
}

// FindFuncs returns the overload set for id from the first type, in walk
// order, that declares it. Declarations on a derived type shadow those on
// its bases.
func FindFuncs(t *Type, id ID) (*Type, []*Func) {
	var (
		owner *Type
		found []*Func
	)
	Walk(t, func(curr *Type) bool {
		found = curr.Overloads(id)
		if len(found) > 0 {
			owner = curr
			return false
		}
		return true
	})
	return owner, found
}

// FindBase returns the base edge, at any depth, whose type has the given id.
func FindBase(t *Type, id ID) *Base {
	var found *Base
	Walk(t, func(curr *Type) bool {
		for _, b := range curr.Bases {
			if b.Type != nil && b.Type.ID == id {
				found = b
				return false
			}
		}
		return true
	})
	return found
}

// HasBase reports whether dst is reachable from t through base edges.
func HasBase(t *Type, dst reflect.Type) bool {
	found := false
	Walk(t, func(curr *Type) bool {
		if curr != t && curr.Info == dst {
			found = true
			return false
		}
		return true
	})
	return found
}

// UpCast walks the base edges of t, applying each up-cast thunk to v, until
// it reaches dst. It returns the addressable sub-object and true on success.
func UpCast(t *Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if t == nil || !v.IsValid() {
		return reflect.Value{}, false
	}
	return upCast(t, v, dst, map[*Type]struct{}{})
}

func upCast(t *Type, v reflect.Value, dst reflect.Type, seen map[*Type]struct{}) (reflect.Value, bool) {
	if _, ok := seen[t]; ok {
		return reflect.Value{}, false
	}
	seen[t] = struct{}{}
	for _, b := range t.Bases {
		if b.Type == nil {
			continue
		}
		sub := b.Cast(v)
		if !sub.IsValid() {
			continue
		}
		if b.Type.Info == dst {
			return sub, true
		}
		if out, ok := upCast(b.Type, sub, dst, seen); ok {
			return out, true
		}
	}
	return reflect.Value{}, false
}
