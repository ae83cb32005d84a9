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
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"dirpx.dev/meta/node"
	"dirpx.dev/meta/policy"
	uref "dirpx.dev/meta/utils/reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Factory registers the members of T into a context. Every method returns
// the factory so calls chain; rejected registrations are logged, collected
// in Err and, in strict mode, panic.
//
//	meta.Register[Point](ctx).
//		Data(meta.Hash("x"), "X").
//		Data(meta.Hash("y"), "Y").
//		Func(meta.Hash("len"), Point.Len).
//		Prop("doc", "a 2D point")
type Factory[T any] struct {
	ctx  *Context
	node *node.Type
	// props receives the next Prop call: the most recently registered entry.
	props *[]node.Prop
	errs  []error
}

// Register returns a factory for T, creating the node of T if needed. A
// type removed by Reset[T] gets a fresh node.
func Register[T any](ctx *Context) *Factory[T] {
	ctx = orDefault(ctx)
	n := ctx.reg.Register(typeOf[T]())
	return &Factory[T]{ctx: ctx, node: n, props: &n.Props}
}

// Resolve returns the type being registered.
func (f *Factory[T]) Resolve() Type {
	return f.ctx.typ(f.node)
}

// Err returns every rejected registration joined, or nil.
func (f *Factory[T]) Err() error {
	return errors.Join(f.errs...)
}

func (f *Factory[T]) fail(err error) *Factory[T] {
	if f.ctx.strict() {
		panic(err)
	}
	f.ctx.log.Warn("registration rejected", "type", f.node.Name, "err", err)
	f.errs = append(f.errs, err)
	return f
}

func (f *Factory[T]) policyOf(pol []policy.Policy) policy.Policy {
	if len(pol) > 0 {
		return pol[0]
	}
	return f.ctx.cfg.DefaultPolicy
}

// Type assigns the identifier of T. An id already taken by another type is
// reported as ErrConflict and assigned anyway.
func (f *Factory[T]) Type(id ID) *Factory[T] {
	f.props = &f.node.Props
	if other, ok := f.ctx.reg.LookupID(id); ok && other != f.node {
		f.fail(fmt.Errorf("%w: %s already used by %s", ErrConflict, id, other.Name))
	}
	f.node.ID = id
	return f
}

// Base registers b as a base of T. b must be embedded in T, by value or by
// pointer; a nil embedded pointer makes casts to b fail at run time.
func (f *Factory[T]) Base(b reflect.Type) *Factory[T] {
	f.props = &f.node.Props
	t := f.node.Info
	if b == nil || t.Kind() != reflect.Struct {
		return f.fail(fmt.Errorf("%w: %v in %s", ErrNotBase, b, f.node.Name))
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.Anonymous {
			continue
		}
		ptr := sf.Type.Kind() == reflect.Ptr && sf.Type.Elem() == b
		if !ptr && sf.Type != b {
			continue
		}
		bn := f.ctx.node(b)
		if f.ctx.cfg.CheckBaseCycles && f.ctx.reg.Reachable(bn, f.node) {
			return f.fail(fmt.Errorf("%w: %s -> %s", ErrBaseCycle, f.node.Name, bn.Name))
		}
		idx := i
		f.node.SetBase(&node.Base{
			Type: bn,
			Cast: func(v reflect.Value) reflect.Value {
				fv := v.Field(idx)
				if !ptr {
					return fv
				}
				if fv.IsNil() {
					return reflect.Value{}
				}
				return fv.Elem()
			},
		})
		return f
	}
	return f.fail(fmt.Errorf("%w: %v in %s", ErrNotBase, b, f.node.Name))
}

// Conv registers a conversion function func(T) To or func(T) (To, error).
// The receiver may also be *T.
func (f *Factory[T]) Conv(fn any) *Factory[T] {
	f.props = &f.node.Props
	fv, ok := funcValue(fn)
	if !ok {
		return f.fail(fmt.Errorf("%w: conversion %T", ErrSignature, fn))
	}
	ft := fv.Type()
	kind := f.recvOf(ft)
	ret, hasErr, ok := signature(ft)
	if !ok || ret == nil || kind == recvNone || ft.NumIn() != 1 {
		return f.fail(fmt.Errorf("%w: conversion %s", ErrSignature, ft))
	}
	f.node.SetConv(&node.Conv{
		Type: ret,
		Conv: func(v reflect.Value) (reflect.Value, error) {
			return invoke(fv, []reflect.Value{receiver(kind, v)}, hasErr)
		},
	})
	return f
}

// ConvTo registers the language conversion from T to to.
func (f *Factory[T]) ConvTo(to reflect.Type) *Factory[T] {
	f.props = &f.node.Props
	if to == nil || !f.node.Info.ConvertibleTo(to) {
		return f.fail(fmt.Errorf("%w: %s is not convertible to %v", ErrSignature, f.node.Name, to))
	}
	f.node.SetConv(&node.Conv{
		Type: to,
		Conv: func(v reflect.Value) (reflect.Value, error) {
			return v.Convert(to), nil
		},
	})
	return f
}

// Ctor registers a constructor func(Args...) T or func(Args...) (T, error).
// Registering another constructor with the same argument types replaces it.
func (f *Factory[T]) Ctor(fn any) *Factory[T] {
	fv, ok := funcValue(fn)
	if !ok {
		return f.fail(fmt.Errorf("%w: constructor %T", ErrSignature, fn))
	}
	ft := fv.Type()
	ret, hasErr, ok := signature(ft)
	if !ok || ret != f.node.Info {
		return f.fail(fmt.Errorf("%w: constructor %s for %s", ErrSignature, ft, f.node.Name))
	}
	args := ins(ft, 0)
	c := f.node.SetCtor(&node.Ctor{
		Hash: node.HashArgs(args),
		Args: args,
		Invoke: func(in []reflect.Value) (reflect.Value, error) {
			return invoke(fv, in, hasErr)
		},
	})
	f.props = &c.Props
	return f
}

// CtorArgs registers aggregate construction: the arguments are assigned, in
// order, to the leading fields of T.
func (f *Factory[T]) CtorArgs(args ...reflect.Type) *Factory[T] {
	t := f.node.Info
	if t.Kind() != reflect.Struct || len(args) > t.NumField() {
		return f.fail(fmt.Errorf("%w: aggregate %s with %d fields", ErrSignature, f.node.Name, len(args)))
	}
	for i, a := range args {
		sf := t.Field(i)
		if a == nil || !sf.IsExported() || !a.AssignableTo(sf.Type) {
			return f.fail(fmt.Errorf("%w: aggregate field %s.%s from %v", ErrSignature, f.node.Name, sf.Name, a))
		}
	}
	args = append([]reflect.Type(nil), args...)
	c := f.node.SetCtor(&node.Ctor{
		Hash: node.HashArgs(args),
		Args: args,
		Invoke: func(in []reflect.Value) (reflect.Value, error) {
			out := reflect.New(t).Elem()
			for i, v := range in {
				out.Field(i).Set(v)
			}
			return out, nil
		},
	})
	f.props = &c.Props
	return f
}

// Dtor registers the destructor func(T) or func(*T). It runs when an owning
// Any is reset or re-emplaced.
func (f *Factory[T]) Dtor(fn any) *Factory[T] {
	fv, ok := funcValue(fn)
	if !ok {
		return f.fail(fmt.Errorf("%w: destructor %T", ErrSignature, fn))
	}
	ft := fv.Type()
	kind := f.recvOf(ft)
	if kind == recvNone || ft.NumIn() != 1 || ft.NumOut() != 0 {
		return f.fail(fmt.Errorf("%w: destructor %s", ErrSignature, ft))
	}
	f.node.Dtor = &node.Dtor{
		Destroy: func(v reflect.Value) {
			fv.Call([]reflect.Value{receiver(kind, v)})
		},
	}
	f.props = &f.node.Dtor.Props
	return f
}

// Data registers the exported field named field (promoted fields included).
func (f *Factory[T]) Data(id ID, field string, pol ...policy.Policy) *Factory[T] {
	return f.field(id, field, false, f.policyOf(pol))
}

// ConstData registers the exported field named field as read-only.
func (f *Factory[T]) ConstData(id ID, field string, pol ...policy.Policy) *Factory[T] {
	return f.field(id, field, true, f.policyOf(pol))
}

func (f *Factory[T]) field(id ID, name string, ro bool, pol policy.Policy) *Factory[T] {
	t := f.node.Info
	if t.Kind() != reflect.Struct {
		return f.fail(fmt.Errorf("%w: %s on %s", ErrField, name, f.node.Name))
	}
	sf, ok := t.FieldByName(name)
	if !ok || !sf.IsExported() {
		return f.fail(fmt.Errorf("%w: %s on %s", ErrField, name, f.node.Name))
	}
	idx := sf.Index
	d := &node.Data{
		ID:     id,
		Name:   name,
		Const:  ro,
		Type:   sf.Type,
		Policy: pol,
		Get: func(inst reflect.Value) (reflect.Value, error) {
			return inst.FieldByIndexErr(idx)
		},
	}
	if !ro {
		d.Setters = []node.Setter{{
			Arg: sf.Type,
			Set: func(inst, v reflect.Value) error {
				fv, err := inst.FieldByIndexErr(idx)
				if err != nil {
					return err
				}
				if !fv.CanSet() {
					return fmt.Errorf("%w: %s is not settable", ErrField, name)
				}
				fv.Set(v)
				return nil
			},
		}}
	}
	d = f.node.SetData(d)
	f.props = &d.Props
	return f
}

// DataFunc registers a data member backed by accessors. The getter is
// func(T) V, func(*T) V or, for static members, func() V, optionally
// returning an error too. The setter is func(*T, V) or func(V), optionally
// returning an error; a nil setter makes the member read-only.
func (f *Factory[T]) DataFunc(id ID, setter, getter any, pol ...policy.Policy) *Factory[T] {
	var setters []any
	if setter != nil {
		setters = []any{setter}
	}
	return f.accessors(id, getter, setters, f.policyOf(pol))
}

// DataOverloads registers a data member with several setters. Set picks the
// setter whose argument type matches exactly, then the first one the value
// can be cast to.
func (f *Factory[T]) DataOverloads(id ID, getter any, setters ...any) *Factory[T] {
	return f.accessors(id, getter, setters, f.ctx.cfg.DefaultPolicy)
}

func (f *Factory[T]) accessors(id ID, getter any, setters []any, pol policy.Policy) *Factory[T] {
	gv, ok := funcValue(getter)
	if !ok {
		return f.fail(fmt.Errorf("%w: getter %T", ErrSignature, getter))
	}
	gt := gv.Type()
	kind := f.recvOf(gt)
	ret, hasErr, ok := signature(gt)
	static := kind == recvNone
	if !ok || ret == nil || (static && gt.NumIn() != 0) || (!static && gt.NumIn() != 1) {
		return f.fail(fmt.Errorf("%w: getter %s", ErrSignature, gt))
	}
	d := &node.Data{
		ID:     id,
		Name:   funcName(gv),
		Const:  len(setters) == 0,
		Static: static,
		Type:   ret,
		Policy: pol,
		Get: func(inst reflect.Value) (reflect.Value, error) {
			var in []reflect.Value
			if !static {
				in = []reflect.Value{receiver(kind, inst)}
			}
			return invoke(gv, in, hasErr)
		},
	}
	for _, s := range setters {
		setter, err := f.setter(s, static)
		if err != nil {
			return f.fail(err)
		}
		d.Setters = append(d.Setters, setter)
	}
	d = f.node.SetData(d)
	f.props = &d.Props
	return f
}

func (f *Factory[T]) setter(fn any, static bool) (node.Setter, error) {
	sv, ok := funcValue(fn)
	if !ok {
		return node.Setter{}, fmt.Errorf("%w: setter %T", ErrSignature, fn)
	}
	st := sv.Type()
	want, kind := 2, f.recvOf(st)
	if static {
		want, kind = 1, recvNone
	}
	if st.NumIn() != want || (!static && kind != recvPtr) || st.IsVariadic() {
		return node.Setter{}, fmt.Errorf("%w: setter %s", ErrSignature, st)
	}
	ret, hasErr, ok := signature(st)
	if !ok || ret != nil {
		return node.Setter{}, fmt.Errorf("%w: setter %s", ErrSignature, st)
	}
	return node.Setter{
		Arg: st.In(want - 1),
		Set: func(inst, v reflect.Value) error {
			in := []reflect.Value{v}
			if !static {
				in = []reflect.Value{receiver(kind, inst), v}
			}
			_, err := invoke(sv, in, hasErr)
			return err
		},
	}, nil
}

// Var registers the variable *ptr as a static data member of T.
func (f *Factory[T]) Var(id ID, ptr any, pol ...policy.Policy) *Factory[T] {
	rv := reflect.ValueOf(ptr)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return f.fail(fmt.Errorf("%w: variable %T", ErrSignature, ptr))
	}
	elem := rv.Elem()
	d := f.node.SetData(&node.Data{
		ID:     id,
		Static: true,
		Type:   elem.Type(),
		Policy: f.policyOf(pol),
		Setters: []node.Setter{{
			Arg: elem.Type(),
			Set: func(_, v reflect.Value) error {
				elem.Set(v)
				return nil
			},
		}},
		Get: func(reflect.Value) (reflect.Value, error) {
			return elem, nil
		},
	})
	f.props = &d.Props
	return f
}

// Func registers fn under id. A first parameter of type T or *T makes fn a
// member (const when it takes T); anything else makes it static. Functions
// may return nothing, a value, an error, or a value and an error. Reference
// policies require a pointer result. Registering the same fn again replaces
// the entry; a different fn under the same id adds an overload.
func (f *Factory[T]) Func(id ID, fn any, pol ...policy.Policy) *Factory[T] {
	fv, ok := funcValue(fn)
	if !ok {
		return f.fail(fmt.Errorf("%w: function %T", ErrSignature, fn))
	}
	return f.function(id, funcName(fv), fv, f.policyOf(pol))
}

// Method registers the method name of T (or *T) under id.
func (f *Factory[T]) Method(id ID, name string, pol ...policy.Policy) *Factory[T] {
	t := f.node.Info
	if t.Kind() != reflect.Interface {
		if m, ok := t.MethodByName(name); ok {
			return f.function(id, name, m.Func, f.policyOf(pol))
		}
		if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
			return f.function(id, name, m.Func, f.policyOf(pol))
		}
	}
	return f.fail(fmt.Errorf("%w: %s on %s", ErrMethod, name, f.node.Name))
}

func (f *Factory[T]) function(id ID, name string, fv reflect.Value, pol policy.Policy) *Factory[T] {
	ft := fv.Type()
	ret, hasErr, ok := signature(ft)
	if !ok {
		return f.fail(fmt.Errorf("%w: function %s", ErrSignature, ft))
	}
	if pol.IsRef() && (ret == nil || ret.Kind() != reflect.Ptr) {
		return f.fail(fmt.Errorf("%w: %s requires a pointer result, got %s", ErrSignature, pol, ft))
	}
	kind := f.recvOf(ft)
	skip := 0
	if kind != recvNone {
		skip = 1
	}
	fn := f.node.SetFunc(&node.Func{
		ID:     id,
		Name:   name,
		Key:    fv.Pointer(),
		Const:  kind == recvValue,
		Static: kind == recvNone,
		Ret:    ret,
		Args:   ins(ft, skip),
		Policy: pol,
		Invoke: func(inst reflect.Value, in []reflect.Value) (reflect.Value, error) {
			if kind != recvNone {
				in = append([]reflect.Value{receiver(kind, inst)}, in...)
			}
			return invoke(fv, in, hasErr)
		},
	})
	f.props = &fn.Props
	return f
}

// Prop attaches a property to the most recently registered entry, or to T
// itself. The value is optional.
func (f *Factory[T]) Prop(key any, value ...any) *Factory[T] {
	if a, ok := key.(Any); ok {
		key = a.Interface()
	}
	p := node.Prop{Key: key}
	if len(value) > 0 {
		p.Value, p.HasValue = value[0], true
		if a, ok := p.Value.(Any); ok {
			p.Value = a.Interface()
		}
	}
	*f.props = append(*f.props, p)
	return f
}

// Template records T as an instantiation of a generic type with the given
// type arguments.
func (f *Factory[T]) Template(args ...reflect.Type) *Factory[T] {
	f.props = &f.node.Props
	name := uref.TemplateName(f.node.Info)
	if name == "" {
		name = f.node.Name
	}
	nodes := make([]*node.Type, 0, len(args))
	for _, a := range args {
		if a == nil {
			return f.fail(fmt.Errorf("%w: nil template argument for %s", ErrSignature, f.node.Name))
		}
		nodes = append(nodes, f.ctx.node(a))
	}
	f.node.Template = &node.Template{Name: name, Args: nodes}
	return f
}

// Deref makes T pointer-like: fn is func(T) *V or func(*T) *V and a nil
// result means nothing to dereference.
func (f *Factory[T]) Deref(fn any) *Factory[T] {
	f.props = &f.node.Props
	fv, ok := funcValue(fn)
	if !ok {
		return f.fail(fmt.Errorf("%w: dereference %T", ErrSignature, fn))
	}
	ft := fv.Type()
	kind := f.recvOf(ft)
	if kind == recvNone || ft.NumIn() != 1 || ft.NumOut() != 1 || ft.Out(0).Kind() != reflect.Ptr {
		return f.fail(fmt.Errorf("%w: dereference %s", ErrSignature, ft))
	}
	f.node.Deref = func(v reflect.Value) reflect.Value {
		out := fv.Call([]reflect.Value{receiver(kind, v)})[0]
		if out.IsNil() {
			return reflect.Value{}
		}
		return out.Elem()
	}
	f.node.Traits |= node.PointerLike
	return f
}

// Receiver kinds of a callable registered on T.
const (
	recvNone = iota
	recvValue
	recvPtr
)

func (f *Factory[T]) recvOf(ft reflect.Type) int {
	if ft.NumIn() == 0 {
		return recvNone
	}
	switch ft.In(0) {
	case f.node.Info:
		return recvValue
	case reflect.PointerTo(f.node.Info):
		return recvPtr
	}
	return recvNone
}

// receiver adapts addressable instance storage to the receiver kind.
func receiver(kind int, inst reflect.Value) reflect.Value {
	if kind != recvPtr {
		return inst
	}
	if !inst.CanAddr() {
		inst = copyOf(inst)
	}
	return inst.Addr()
}

func funcValue(fn any) (reflect.Value, bool) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return reflect.Value{}, false
	}
	return fv, true
}

// signature splits the results of ft into an optional value and an optional
// trailing error.
func signature(ft reflect.Type) (ret reflect.Type, hasErr, ok bool) {
	switch ft.NumOut() {
	case 0:
		return nil, false, true
	case 1:
		if ft.Out(0) == errorType {
			return nil, true, true
		}
		return ft.Out(0), false, true
	case 2:
		if ft.Out(1) == errorType {
			return ft.Out(0), true, true
		}
	}
	return nil, false, false
}

// ins returns the parameter types of ft after the first skip ones.
func ins(ft reflect.Type, skip int) []reflect.Type {
	out := make([]reflect.Type, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		out = append(out, ft.In(i))
	}
	return out
}

// invoke calls fv and splits its results. Errors returned by fv come back
// unchanged.
func invoke(fv reflect.Value, in []reflect.Value, hasErr bool) (reflect.Value, error) {
	var outs []reflect.Value
	if fv.Type().IsVariadic() {
		outs = fv.CallSlice(in)
	} else {
		outs = fv.Call(in)
	}
	if hasErr {
		last := outs[len(outs)-1]
		outs = outs[:len(outs)-1]
		if !last.IsNil() {
			return reflect.Value{}, last.Interface().(error)
		}
	}
	if len(outs) == 0 {
		return reflect.Value{}, nil
	}
	return outs[0], nil
}

// funcName returns the short Go name of fv.
func funcName(fv reflect.Value) string {
	fn := runtime.FuncForPC(fv.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
