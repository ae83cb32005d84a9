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

	"dirpx.dev/meta/resolver"
)

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("meta: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("meta: builder returned nil resolver")

	// ErrNoMatch is returned by construction and invocation when no
	// candidate accepts the arguments, including when nothing is registered
	// under the requested id.
	ErrNoMatch = resolver.ErrNoMatch
	// ErrAmbiguous is returned by construction and invocation when several
	// candidates accept the arguments at the same cost.
	ErrAmbiguous = resolver.ErrAmbiguous

	// ErrInvalid is returned when operating on an invalid proxy or an empty
	// value.
	ErrInvalid = errors.New("meta: invalid type or value")
	// ErrInstance is returned when the instance handle cannot be cast to the
	// type declaring the member.
	ErrInstance = errors.New("meta: instance does not match the member's type")
	// ErrReadOnly is returned when a mutating member is invoked through a
	// read-only instance.
	ErrReadOnly = errors.New("meta: read-only instance")
	// ErrBadCast is the panic value of Cast and CastRef on a failing value
	// in strict mode.
	ErrBadCast = errors.New("meta: bad cast")

	// ErrConflict reports two distinct types registered under the same id.
	ErrConflict = errors.New("meta(factory): conflicting type id")
	// ErrSignature reports a callable whose signature does not fit the
	// registration.
	ErrSignature = errors.New("meta(factory): unsupported signature")
	// ErrNotBase reports a base that is not embedded in the registered type.
	ErrNotBase = errors.New("meta(factory): not an embedded base")
	// ErrBaseCycle reports a base registration that would close a cycle.
	ErrBaseCycle = errors.New("meta(factory): base cycle")
	// ErrField reports a missing or unexported field.
	ErrField = errors.New("meta(factory): no such exported field")
	// ErrMethod reports a missing method.
	ErrMethod = errors.New("meta(factory): no such method")
)
