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

// Package meta is a runtime reflection engine: it lets code introspect,
// construct, read, write and invoke members of types that are only known at
// run time, while the values themselves are produced and consumed by
// ordinary Go code.
//
// # Design
//
// A Context is one reflection universe. It holds:
//
//   - Config: small-buffer size, strictness, base-cycle checks, the default
//     result policy and the logger.
//
//   - Registry: the type node graph. There is exactly one node per Go type
//     per context; nodes are created lazily by Resolve and Register and are
//     populated by a Factory.
//
//   - Resolver: an ordered chain of cast strategies (identity, registered
//     conversion, arithmetic round trip, interface boxing, base traversal)
//     used by AllowCast and by overload resolution.
//
//   - Builder: the factory of Registry and Resolver. Rebuilding a context
//     with a new configuration migrates its nodes.
//
// Every operation takes the context explicitly. A nil *Context selects the
// ambient default one, which Configure and SetDefault replace atomically.
//
// # Registration
//
//	meta.Register[Point](ctx).
//		Type(meta.Hash("point")).
//		Ctor(NewPoint).
//		Data(meta.Hash("x"), "X").
//		Data(meta.Hash("y"), "Y").
//		Func(meta.Hash("scale"), (*Point).Scale).
//		Prop("doc", "a 2D point")
//
// Bases are embedded fields: Register[Derived](ctx).Base(meta.TypeOf[Base]())
// makes the members of Base reachable from Derived and lets a Derived be
// seen as a Base without copying.
//
// # Values
//
// Any holds at most one value. It owns it (embedded or heap-allocated,
// depending on its size) or aliases storage owned elsewhere, mutably or
// read-only. Handle is the non-owning receiver of member operations.
//
//	p := meta.Wrap(ctx, Point{1, 2})
//	x := meta.Resolve[Point](ctx).Data(meta.Hash("x")).Get(meta.HandleOf(p))
//	meta.Cast[int](x) // 1
//
// # Dispatch
//
// Construct and Invoke pick, among the candidates with the right arity, the
// one whose arguments need the fewest casts. A tie is reported as
// ErrAmbiguous and no viable candidate as ErrNoMatch. Errors returned by
// registered functions come back unchanged.
//
// # Concurrency
//
// Node creation is synchronized, so concurrent Resolve calls are safe.
// Populating nodes through a Factory is not: register first, then share the
// context read-only.
package meta
