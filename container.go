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

import (
	"iter"
	"reflect"

	uref "dirpx.dev/meta/utils/reflect"
)

// castTo wraps v and casts it to t through the resolver chain.
func (c *Context) castTo(v any, t reflect.Type) (reflect.Value, bool) {
	w := Wrap(c, v)
	if !w.Valid() {
		return reflect.Value{}, false
	}
	return c.res.Cast(w.node, w.val, t)
}

// SequenceContainer is a view over a slice or an array held by an Any.
// Mutations go to the viewed storage. Arrays have a fixed length, so
// Clear, Reserve, Resize, Insert and Erase fail on them; read-only views
// refuse every mutation.
type SequenceContainer struct {
	cont Any
}

func newSequence(a Any) SequenceContainer {
	return SequenceContainer{cont: a.AsRef()}
}

// Valid reports whether the view refers to a container.
func (s SequenceContainer) Valid() bool {
	return s.cont.Valid()
}

func (s SequenceContainer) mutable() bool {
	return s.Valid() && s.cont.mode != ModeCRef && s.cont.val.Kind() == reflect.Slice && s.cont.val.CanSet()
}

// ValueType returns the element type.
func (s SequenceContainer) ValueType() Type {
	if !s.Valid() {
		return Type{}
	}
	ctx := s.cont.context()
	return ctx.typ(ctx.node(s.cont.node.Info.Elem()))
}

// Size returns the number of elements.
func (s SequenceContainer) Size() int {
	if !s.Valid() {
		return 0
	}
	return s.cont.val.Len()
}

// Clear drops every element, keeping the capacity.
func (s SequenceContainer) Clear() bool {
	if !s.mutable() {
		return false
	}
	s.cont.val.Set(s.cont.val.Slice(0, 0))
	return true
}

// Reserve grows the capacity to at least n.
func (s SequenceContainer) Reserve(n int) bool {
	if !s.mutable() || n < 0 {
		return false
	}
	v := s.cont.val
	if n > v.Cap() {
		grown := reflect.MakeSlice(v.Type(), v.Len(), n)
		reflect.Copy(grown, v)
		v.Set(grown)
	}
	return true
}

// Resize sets the length to n. New elements are zero values.
func (s SequenceContainer) Resize(n int) bool {
	if !s.mutable() || n < 0 {
		return false
	}
	v := s.cont.val
	if n <= v.Len() {
		v.Set(v.Slice(0, n))
		return true
	}
	v.Set(reflect.AppendSlice(v, reflect.MakeSlice(v.Type(), n-v.Len(), n-v.Len())))
	return true
}

// Get returns an alias of element i, or an empty Any when out of range.
func (s SequenceContainer) Get(i int) Any {
	if !s.Valid() || i < 0 || i >= s.cont.val.Len() {
		return Any{}
	}
	return s.cont.context().alias(s.cont.val.Index(i), s.cont.mode == ModeCRef)
}

// Begin returns an iterator at the first element.
func (s SequenceContainer) Begin() Iterator {
	if !s.Valid() {
		return Iterator{}
	}
	return Iterator{ops: seqIterOps, cont: s.cont}
}

// End returns the past-the-end iterator.
func (s SequenceContainer) End() Iterator {
	if !s.Valid() {
		return Iterator{}
	}
	return Iterator{ops: seqIterOps, cont: s.cont, pos: s.cont.val.Len()}
}

// Insert inserts v, cast to the element type, before it and returns an
// iterator at the new element. It returns an invalid iterator on failure.
func (s SequenceContainer) Insert(it Iterator, v any) Iterator {
	if !s.mutable() || !s.owns(it) {
		return Iterator{}
	}
	val := s.cont.val
	elem, ok := s.cont.context().castTo(v, val.Type().Elem())
	if !ok {
		return Iterator{}
	}
	i, n := it.pos, val.Len()
	val.Set(reflect.Append(val, reflect.Zero(val.Type().Elem())))
	reflect.Copy(val.Slice(i+1, n+1), val.Slice(i, n))
	val.Index(i).Set(elem)
	return Iterator{ops: seqIterOps, cont: s.cont, pos: i}
}

// Erase removes the element at it and returns an iterator at the element
// that followed it.
func (s SequenceContainer) Erase(it Iterator) Iterator {
	if !s.mutable() || !s.owns(it) || it.pos >= s.cont.val.Len() {
		return Iterator{}
	}
	val := s.cont.val
	i, n := it.pos, val.Len()
	reflect.Copy(val.Slice(i, n-1), val.Slice(i+1, n))
	val.Index(n - 1).Set(reflect.Zero(val.Type().Elem()))
	val.Set(val.Slice(0, n-1))
	return Iterator{ops: seqIterOps, cont: s.cont, pos: i}
}

func (s SequenceContainer) owns(it Iterator) bool {
	return it.ops == seqIterOps && it.cont.Addr() == s.cont.Addr() &&
		it.pos >= 0 && it.pos <= s.cont.val.Len()
}

// All yields the index and an alias of every element.
func (s SequenceContainer) All() iter.Seq2[int, Any] {
	return func(yield func(int, Any) bool) {
		for i := 0; i < s.Size(); i++ {
			if !yield(i, s.Get(i)) {
				return
			}
		}
	}
}

// AssociativeContainer is a view over a map held by an Any. Maps with an
// empty struct element (map[K]struct{}) are key-only sets. Map values are
// not addressable, so Find and iteration yield read-only copies.
type AssociativeContainer struct {
	cont Any
}

func newAssociative(a Any) AssociativeContainer {
	return AssociativeContainer{cont: a.AsRef()}
}

// Valid reports whether the view refers to a container.
func (m AssociativeContainer) Valid() bool {
	return m.cont.Valid()
}

func (m AssociativeContainer) mutable() bool {
	return m.Valid() && m.cont.mode != ModeCRef
}

// KeyOnly reports whether the container is a set.
func (m AssociativeContainer) KeyOnly() bool {
	return m.Valid() && uref.IsKeyOnly(m.cont.node.Info)
}

// KeyType returns the key type.
func (m AssociativeContainer) KeyType() Type {
	if !m.Valid() {
		return Type{}
	}
	ctx := m.cont.context()
	return ctx.typ(ctx.node(m.cont.node.Info.Key()))
}

// MappedType returns the mapped type, or an invalid Type for sets.
func (m AssociativeContainer) MappedType() Type {
	if !m.Valid() || m.KeyOnly() {
		return Type{}
	}
	ctx := m.cont.context()
	return ctx.typ(ctx.node(m.cont.node.Info.Elem()))
}

// ValueType returns the mapped type, or the key type for sets.
func (m AssociativeContainer) ValueType() Type {
	if m.KeyOnly() {
		return m.KeyType()
	}
	return m.MappedType()
}

// Size returns the number of entries.
func (m AssociativeContainer) Size() int {
	if !m.Valid() {
		return 0
	}
	return m.cont.val.Len()
}

// Clear removes every entry.
func (m AssociativeContainer) Clear() bool {
	if !m.mutable() {
		return false
	}
	if !m.cont.val.IsNil() {
		m.cont.val.Clear()
	}
	return true
}

// Begin returns an iterator over a snapshot of the current keys.
func (m AssociativeContainer) Begin() Iterator {
	if !m.Valid() {
		return Iterator{}
	}
	return Iterator{ops: mapIterOps, cont: m.cont, keys: m.cont.val.MapKeys()}
}

// End returns the past-the-end iterator.
func (m AssociativeContainer) End() Iterator {
	if !m.Valid() {
		return Iterator{}
	}
	return Iterator{ops: mapIterOps, cont: m.cont, pos: -1}
}

// Insert adds key with value, both cast to the container types. Sets take
// no value. An existing key is left untouched and Insert returns false.
// A nil map is allocated on first insertion.
func (m AssociativeContainer) Insert(key any, value ...any) bool {
	if !m.mutable() {
		return false
	}
	t := m.cont.node.Info
	ctx := m.cont.context()
	k, ok := ctx.castTo(key, t.Key())
	if !ok {
		return false
	}
	var v reflect.Value
	switch {
	case m.KeyOnly():
		if len(value) != 0 {
			return false
		}
		v = reflect.Zero(t.Elem())
	case len(value) == 1:
		if v, ok = ctx.castTo(value[0], t.Elem()); !ok {
			return false
		}
	default:
		return false
	}
	val := m.cont.val
	if val.IsNil() {
		if !val.CanSet() {
			return false
		}
		val.Set(reflect.MakeMap(t))
	}
	if val.MapIndex(k).IsValid() {
		return false
	}
	val.SetMapIndex(k, v)
	return true
}

// Erase removes key and reports whether it was present.
func (m AssociativeContainer) Erase(key any) bool {
	if !m.mutable() {
		return false
	}
	k, ok := m.cont.context().castTo(key, m.cont.node.Info.Key())
	if !ok || m.cont.val.IsNil() || !m.cont.val.MapIndex(k).IsValid() {
		return false
	}
	m.cont.val.SetMapIndex(k, reflect.Value{})
	return true
}

// Find returns an iterator at key, or End when key is absent.
func (m AssociativeContainer) Find(key any) Iterator {
	if !m.Valid() {
		return Iterator{}
	}
	k, ok := m.cont.context().castTo(key, m.cont.node.Info.Key())
	if !ok || !m.cont.val.MapIndex(k).IsValid() {
		return m.End()
	}
	return Iterator{ops: mapIterOps, cont: m.cont, keys: []reflect.Value{k}}
}

// All yields every key with its mapped value (the key again for sets).
func (m AssociativeContainer) All() iter.Seq2[Any, Any] {
	return func(yield func(Any, Any) bool) {
		for it := m.Begin(); it.Valid(); it = it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// iterOps is the per-shape operation table of an Iterator.
type iterOps struct {
	size  func(it Iterator) int
	key   func(it Iterator) Any
	value func(it Iterator) Any
}

var (
	seqIterOps = &iterOps{
		size: func(it Iterator) int { return it.cont.val.Len() },
		key: func(it Iterator) Any {
			return it.cont.context().own(reflect.ValueOf(it.pos))
		},
		value: func(it Iterator) Any {
			return it.cont.context().alias(it.cont.val.Index(it.pos), it.cont.mode == ModeCRef)
		},
	}
	mapIterOps = &iterOps{
		size: func(it Iterator) int { return len(it.keys) },
		key: func(it Iterator) Any {
			return it.cont.context().alias(it.keys[it.pos], true)
		},
		value: func(it Iterator) Any {
			k := it.keys[it.pos]
			if uref.IsKeyOnly(it.cont.node.Info) {
				return it.cont.context().alias(k, true)
			}
			v := it.cont.val.MapIndex(k)
			if !v.IsValid() {
				return Any{}
			}
			return it.cont.context().alias(v, true)
		},
	}
)

// Iterator is a position in a container view. Sequence iterators are
// indices and see later mutations; map iterators walk a snapshot of the
// keys taken by Begin, in unspecified order.
type Iterator struct {
	ops  *iterOps
	cont Any
	pos  int
	keys []reflect.Value
}

// Valid reports whether the iterator points at an element.
func (it Iterator) Valid() bool {
	return it.ops != nil && it.cont.Valid() && it.pos >= 0 && it.pos < it.ops.size(it)
}

// Next returns the iterator advanced by one.
func (it Iterator) Next() Iterator {
	if it.Valid() {
		it.pos++
	}
	return it
}

// Equal reports whether both iterators point at the same element of the
// same container, or are both past the end of it.
func (it Iterator) Equal(other Iterator) bool {
	if it.ops != other.ops || it.cont.Addr() != other.cont.Addr() {
		return false
	}
	if !it.Valid() || !other.Valid() {
		return it.Valid() == other.Valid()
	}
	if it.ops == mapIterOps {
		return it.keys[it.pos].Interface() == other.keys[other.pos].Interface()
	}
	return it.pos == other.pos
}

// Index returns the position within the sequence or the key snapshot.
func (it Iterator) Index() int {
	return it.pos
}

// Key returns the index of a sequence element or the key of a map entry.
func (it Iterator) Key() Any {
	if !it.Valid() {
		return Any{}
	}
	return it.ops.key(it)
}

// Value returns the element: an alias for sequences, a read-only copy of
// the mapped value for maps and the key for sets.
func (it Iterator) Value() Any {
	if !it.Valid() {
		return Any{}
	}
	return it.ops.value(it)
}
