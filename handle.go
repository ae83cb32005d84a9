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

package meta

import "reflect"

// Handle is a non-owning reference to the instance a member operates on.
// The referent must outlive the handle. The zero Handle is used for static
// members.
type Handle struct {
	ref Any
}

// HandleOf returns a handle aliasing the storage of a. Read-only values
// give read-only handles.
func HandleOf(a Any) Handle {
	return Handle{ref: a.AsRef()}
}

// HandleTo returns a handle to *ptr.
func HandleTo(ctx *Context, ptr any) Handle {
	return Handle{ref: Ref(ctx, ptr)}
}

// Valid reports whether h refers to an instance.
func (h Handle) Valid() bool {
	return h.ref.Valid()
}

// Any returns the alias held by h.
func (h Handle) Any() Any {
	return h.ref
}

// Type returns the type of the referenced instance.
func (h Handle) Type() Type {
	return h.ref.Type()
}

// instance returns the storage of the referenced instance seen as owner,
// going through base sub-objects and one level of pointer indirection.
func (h Handle) instance(owner reflect.Type) (reflect.Value, bool) {
	if v, ok := h.ref.view(owner); ok && v.Type() == owner {
		return v, true
	}
	if inner := h.ref.Deref(); inner.Valid() {
		if v, ok := inner.view(owner); ok && v.Type() == owner {
			return v, true
		}
	}
	return reflect.Value{}, false
}

// readOnly reports whether the referenced instance may not be mutated.
func (h Handle) readOnly() bool {
	return h.ref.mode == ModeCRef
}
