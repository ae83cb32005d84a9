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

import (
	"reflect"
	"strconv"
)

// ID is a stable 32-bit identifier for types, data members and functions.
type ID uint32

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// Hash returns the FNV-1a hash of s as an ID.
// The same string always produces the same ID, across processes and builds.
func Hash(s string) ID {
	h := uint32(fnvOffset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime32
	}
	return ID(h)
}

// String renders the identifier in hex, e.g. "0x811c9dc5".
func (id ID) String() string {
	return "0x" + strconv.FormatUint(uint64(id), 16)
}

// HashArgs returns the identifier of an argument-type list.
// Two lists hash equal only if they contain the same types in the same order.
func HashArgs(args []reflect.Type) ID {
	h := uint32(fnvOffset32)
	for i, t := range args {
		if i > 0 {
			h ^= ','
			h *= fnvPrime32
		}
		s := "<nil>"
		if t != nil {
			s = TypeKey(t)
		}
		for j := 0; j < len(s); j++ {
			h ^= uint32(s[j])
			h *= fnvPrime32
		}
	}
	return ID(h)
}

// TypeKey returns the string used to hash a type: "pkg/path.Name" for named
// types and the reflect description for everything else.
func TypeKey(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}
