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
	"fmt"
	"reflect"

	"dirpx.dev/meta/node"
)

// Mode is the storage state of an Any.
type Mode uint8

const (
	// ModeEmpty holds nothing. It is the zero value.
	ModeEmpty Mode = iota
	// ModeEmbedded owns a value small enough for the inline buffer.
	ModeEmbedded
	// ModeHeap owns a value allocated on its own.
	ModeHeap
	// ModeRef aliases storage owned elsewhere.
	ModeRef
	// ModeCRef aliases storage owned elsewhere, read-only.
	ModeCRef
)

// String returns a stable token for the mode.
func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeEmbedded:
		return "embedded"
	case ModeHeap:
		return "heap"
	case ModeRef:
		return "ref"
	case ModeCRef:
		return "cref"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// vtable holds the operations that depend on the shape of the wrapped type.
// It is picked once, when the value is wrapped.
type vtable struct {
	deref func(a Any) Any
	seq   func(a Any) SequenceContainer
	assoc func(a Any) AssociativeContainer
}

func noDeref(Any) Any                  { return Any{} }
func noSeq(Any) SequenceContainer      { return SequenceContainer{} }
func noAssoc(Any) AssociativeContainer { return AssociativeContainer{} }

var plainOps, derefOps, seqOps, assocOps *vtable

// The tables are filled in init because their thunks wrap results through
// opsFor, which refers back to them.
func init() {
	plainOps = &vtable{deref: noDeref, seq: noSeq, assoc: noAssoc}
	derefOps = &vtable{deref: derefAny, seq: noSeq, assoc: noAssoc}
	seqOps = &vtable{deref: noDeref, seq: newSequence, assoc: noAssoc}
	assocOps = &vtable{deref: noDeref, seq: noSeq, assoc: newAssociative}
}

func opsFor(n *node.Type) *vtable {
	switch {
	case n.Deref != nil:
		return derefOps
	case n.Traits.Has(node.SequenceContainer):
		return seqOps
	case n.Traits.Has(node.AssociativeContainer):
		return assocOps
	default:
		return plainOps
	}
}

// Any is an opaque value: at most one value of any type, paired with its
// type node.
//
// The zero Any is empty. Copying an Any aliases its storage; use Clone for a
// deep copy and Move to transfer ownership. Owned values are embedded when
// their size fits Config.SmallBufferSize and heap-allocated otherwise; the
// distinction shows in Move, which re-embeds small values into new storage
// and hands large ones over in place.
type Any struct {
	ctx  *Context
	node *node.Type
	mode Mode
	// val is the addressable storage of the value.
	val reflect.Value
	ops *vtable
}

// Wrap returns an Any owning a copy of v. An Any passed as v is returned
// as-is and a nil v yields an empty Any.
func Wrap(ctx *Context, v any) Any {
	switch x := v.(type) {
	case nil:
		return Any{}
	case Any:
		return x
	case *Any:
		if x == nil {
			return Any{}
		}
		return *x
	}
	return orDefault(ctx).own(reflect.ValueOf(v))
}

// Make returns an Any owning the zero value of T.
func Make[T any](ctx *Context) Any {
	return orDefault(ctx).adopt(reflect.New(typeOf[T]()).Elem())
}

// Ref returns a mutable alias of *ptr. It returns an empty Any unless ptr
// is a non-nil pointer.
func Ref(ctx *Context, ptr any) Any {
	return refTo(orDefault(ctx), ptr, false)
}

// CRef returns a read-only alias of *ptr.
func CRef(ctx *Context, ptr any) Any {
	return refTo(orDefault(ctx), ptr, true)
}

func refTo(ctx *Context, ptr any, ro bool) Any {
	rv := reflect.ValueOf(ptr)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Any{}
	}
	return ctx.alias(rv.Elem(), ro)
}

// own copies v into fresh storage.
func (c *Context) own(v reflect.Value) Any {
	if !v.IsValid() {
		return Any{}
	}
	storage := reflect.New(v.Type()).Elem()
	storage.Set(v)
	return c.adopt(storage)
}

// adopt takes ownership of addressable storage.
func (c *Context) adopt(storage reflect.Value) Any {
	return c.adoptAs(storage, c.node(storage.Type()))
}

// adoptAs takes ownership of addressable storage described by n.
func (c *Context) adoptAs(storage reflect.Value, n *node.Type) Any {
	mode := ModeHeap
	if c.cfg.SmallBufferSize >= 0 && n.Size <= uintptr(c.cfg.SmallBufferSize) {
		mode = ModeEmbedded
	}
	return Any{ctx: c, node: n, mode: mode, val: storage, ops: opsFor(n)}
}

// alias references addressable storage owned elsewhere. Non-addressable
// values are copied first.
func (c *Context) alias(v reflect.Value, ro bool) Any {
	if !v.IsValid() {
		return Any{}
	}
	if !v.CanAddr() {
		a := c.own(v)
		if ro {
			a.mode = ModeCRef
		}
		return a
	}
	n := c.node(v.Type())
	mode := ModeRef
	if ro {
		mode = ModeCRef
	}
	return Any{ctx: c, node: n, mode: mode, val: v, ops: opsFor(n)}
}

// void returns the result of a call that produced nothing.
func (c *Context) void() Any {
	return c.adopt(reflect.New(node.VoidInfo).Elem())
}

func (a Any) context() *Context {
	return orDefault(a.ctx)
}

// Valid reports whether a holds a value.
func (a Any) Valid() bool {
	return a.mode != ModeEmpty
}

// Mode returns the storage state of a.
func (a Any) Mode() Mode {
	return a.mode
}

// Owner reports whether a owns its value.
func (a Any) Owner() bool {
	return a.mode == ModeEmbedded || a.mode == ModeHeap
}

// IsConst reports whether a is a read-only alias.
func (a Any) IsConst() bool {
	return a.mode == ModeCRef
}

// Type returns the type of the held value, or an invalid Type when empty.
func (a Any) Type() Type {
	if !a.Valid() {
		return Type{}
	}
	return Type{ctx: a.context(), node: a.node}
}

// Interface returns the held value as an interface, or nil when empty.
func (a Any) Interface() any {
	if !a.Valid() || !a.val.CanInterface() {
		return nil
	}
	return a.val.Interface()
}

// Value returns the storage of a. Read-only aliases yield a copy.
func (a Any) Value() reflect.Value {
	if !a.Valid() {
		return reflect.Value{}
	}
	if a.mode == ModeCRef {
		return copyOf(a.val)
	}
	return a.val
}

// Addr returns the address of the storage, or 0 when empty.
func (a Any) Addr() uintptr {
	if !a.Valid() || !a.val.CanAddr() {
		return 0
	}
	return a.val.Addr().Pointer()
}

// AsRef returns a mutable alias of the same storage. Read-only values stay
// read-only.
func (a Any) AsRef() Any {
	if !a.Valid() {
		return Any{}
	}
	out := a
	if a.mode != ModeCRef {
		out.mode = ModeRef
	}
	return out
}

// AsCRef returns a read-only alias of the same storage.
func (a Any) AsCRef() Any {
	if !a.Valid() {
		return Any{}
	}
	out := a
	out.mode = ModeCRef
	return out
}

// Clone returns an owning deep copy made with Go assignment semantics.
func (a Any) Clone() Any {
	if !a.Valid() {
		return Any{}
	}
	return a.context().adoptAs(copyOf(a.val), a.node)
}

// Move transfers the value out of a, leaving a empty. Embedded values are
// copied into new storage; heap values and aliases keep their address.
func (a *Any) Move() Any {
	out := *a
	if a.mode == ModeEmbedded {
		out.val = copyOf(a.val)
	}
	*a = Any{}
	return out
}

// Reset destroys an owned value with the registered destructor and leaves a
// empty. Aliases are dropped without destruction.
func (a *Any) Reset() {
	if a.Owner() && a.node.Dtor != nil {
		a.node.Dtor.Destroy(a.val)
	}
	*a = Any{}
}

// Emplace destroys the current value, if owned, and takes a copy of v.
func (a *Any) Emplace(v any) {
	ctx := a.ctx
	a.Reset()
	out := Wrap(ctx, v)
	if out.Valid() && !out.Owner() {
		out = out.Clone()
	}
	*a = out
}

// EmplaceAs destroys the current value of a, if owned, and constructs a T
// in its place from args.
func EmplaceAs[T any](a *Any, args ...any) error {
	ctx := a.context()
	out, err := Resolve[T](ctx).Construct(args...)
	if err != nil {
		return err
	}
	a.Reset()
	*a = out
	return nil
}

// Deref returns an alias of the pointee for pointer-like values, or an
// empty Any otherwise (including nil pointers).
func (a Any) Deref() Any {
	if !a.Valid() {
		return Any{}
	}
	return a.ops.deref(a)
}

func derefAny(a Any) Any {
	v := a.node.Deref(a.val)
	if !v.IsValid() {
		return Any{}
	}
	return a.context().alias(v, a.mode == ModeCRef)
}

// AsSequence returns a sequence view over slices and arrays, or an invalid
// view otherwise.
func (a Any) AsSequence() SequenceContainer {
	if !a.Valid() {
		return SequenceContainer{}
	}
	return a.ops.seq(a)
}

// AsAssociative returns an associative view over maps, or an invalid view
// otherwise.
func (a Any) AsAssociative() AssociativeContainer {
	if !a.Valid() {
		return AssociativeContainer{}
	}
	return a.ops.assoc(a)
}

// view returns storage of a seen as dst without conversion: the value itself,
// a base sub-object, or the value boxed into an interface it implements.
func (a Any) view(dst reflect.Type) (reflect.Value, bool) {
	if !a.Valid() || dst == nil {
		return reflect.Value{}, false
	}
	if a.node.Info == dst {
		return a.val, true
	}
	if sub, ok := node.UpCast(a.node, a.val, dst); ok {
		return sub, true
	}
	if dst.Kind() != reflect.Interface {
		return reflect.Value{}, false
	}
	box := reflect.New(dst).Elem()
	switch {
	case a.node.Info.Implements(dst):
		box.Set(a.val)
	case a.mode != ModeCRef && a.val.CanAddr() && reflect.PointerTo(a.node.Info).Implements(dst):
		box.Set(a.val.Addr())
	default:
		return reflect.Value{}, false
	}
	return box, true
}

// TryCast returns a copy of the held value as T. The value matches when it
// is a T, embeds a registered base T, or implements the interface T.
func TryCast[T any](a Any) (T, bool) {
	var zero T
	v, ok := a.view(typeOf[T]())
	if !ok || !v.CanInterface() {
		return zero, false
	}
	if out, ok := v.Interface().(T); ok {
		return out, true
	}
	// A nil interface value is a valid T.
	return zero, v.Kind() == reflect.Interface && v.IsNil()
}

// Cast is TryCast without the flag. A failing cast returns the zero T, or
// panics with ErrBadCast in strict mode.
func Cast[T any](a Any) T {
	out, ok := TryCast[T](a)
	if !ok && a.context().strict() {
		panic(fmt.Errorf("%w: %s to %s", ErrBadCast, a.Type(), typeOf[T]()))
	}
	return out
}

// TryCastRef returns a pointer into the storage of a, seen as T or as a
// registered base T. Read-only values yield nil.
func TryCastRef[T any](a Any) *T {
	if a.mode == ModeCRef {
		return nil
	}
	dst := typeOf[T]()
	if dst.Kind() == reflect.Interface {
		if a.Valid() && a.node.Info == dst {
			return a.val.Addr().Interface().(*T)
		}
		return nil
	}
	v, ok := a.view(dst)
	if !ok || !v.CanAddr() || !v.CanInterface() {
		return nil
	}
	return v.Addr().Interface().(*T)
}

// CastRef is TryCastRef that panics with ErrBadCast in strict mode.
func CastRef[T any](a Any) *T {
	out := TryCastRef[T](a)
	if out == nil && a.context().strict() {
		panic(fmt.Errorf("%w: %s to *%s", ErrBadCast, a.Type(), typeOf[T]()))
	}
	return out
}

// AllowCast tries, in order, identity, a registered conversion, the
// arithmetic round trip, interface boxing and base traversal. Identity and
// base results alias the original storage; every other result is owned.
// It returns an empty Any when nothing applies.
func (a Any) AllowCast(t Type) Any {
	if !a.Valid() || !t.Valid() {
		return Any{}
	}
	dst := t.node.Info
	if a.node.Info == dst {
		return a.AsRef()
	}
	ctx := a.context()
	out, ok := ctx.res.Cast(a.node, a.val, dst)
	if !ok {
		return Any{}
	}
	if sub, found := node.UpCast(a.node, a.val, dst); found && sameAddr(sub, out) {
		return ctx.alias(sub, a.mode == ModeCRef)
	}
	return ctx.own(out)
}

// Convert replaces the held value by its AllowCast to t.
func (a *Any) Convert(t Type) bool {
	if !a.Valid() || !t.Valid() {
		return false
	}
	if a.node.Info == t.node.Info {
		return true
	}
	out := a.AllowCast(t)
	if !out.Valid() {
		return false
	}
	if !out.Owner() {
		out = out.Clone()
	}
	a.Reset()
	*a = out
	return true
}

// Assign overwrites the held value with other, cast to the held type. The
// type of a never changes. Read-only values refuse assignment.
func (a Any) Assign(other any) bool {
	if !a.Valid() || a.mode == ModeCRef || !a.val.CanSet() {
		return false
	}
	o := Wrap(a.ctx, other)
	if !o.Valid() {
		return false
	}
	if o.node.Info != a.node.Info {
		o = o.AllowCast(a.Type())
		if !o.Valid() {
			return false
		}
	}
	a.val.Set(o.val)
	return true
}

// Equal compares type identity first, then values with == when both held
// values are comparable, and storage addresses otherwise. Comparability is
// decided on the dynamic values, so an interface or struct holding a slice
// falls back to addresses.
func (a Any) Equal(other Any) bool {
	if !a.Valid() || !other.Valid() {
		return a.Valid() == other.Valid()
	}
	if a.node.Info != other.node.Info {
		return false
	}
	if a.val.Comparable() && other.val.Comparable() {
		return a.val.Equal(other.val)
	}
	return a.Addr() == other.Addr()
}

// Get reads the data member id of the held value.
func (a Any) Get(id ID) Any {
	return a.Type().Data(id).Get(HandleOf(a))
}

// Set writes the data member id of the held value.
func (a Any) Set(id ID, v any) bool {
	return a.Type().Data(id).Set(HandleOf(a), v)
}

// Invoke calls the function id on the held value.
func (a Any) Invoke(id ID, args ...any) (Any, error) {
	return a.Type().Invoke(id, HandleOf(a), args...)
}

// String formats the held value, or "<empty>".
func (a Any) String() string {
	if !a.Valid() {
		return "<empty>"
	}
	return fmt.Sprintf("%v", a.Interface())
}

// copyOf returns an addressable copy of v.
func copyOf(v reflect.Value) reflect.Value {
	out := reflect.New(v.Type()).Elem()
	out.Set(v)
	return out
}

func sameAddr(x, y reflect.Value) bool {
	return x.CanAddr() && y.CanAddr() && x.Type() == y.Type() &&
		x.Addr().Pointer() == y.Addr().Pointer()
}
