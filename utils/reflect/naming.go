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

package reflect

import (
	"path"
	"reflect"
	"strings"
)

// Name returns the display name of t: "pkg.Type" for named types (package
// reduced to its last path element) and the reflect description otherwise.
// Generic instantiations keep their parameters: "pkg.Box[int]".
func Name(t reflect.Type) string {
	if t == nil {
		return ""
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return path.Base(t.PkgPath()) + "." + t.Name()
}

// TemplateName returns the name of a generic instantiation with its
// parameters stripped, or "" if t is not an instantiation.
func TemplateName(t reflect.Type) string {
	if t == nil || !IsInstantiation(t) {
		return ""
	}
	return StripTypeParams(Name(t))
}

// IsInstantiation reports whether t is an instantiated generic type.
func IsInstantiation(t reflect.Type) bool {
	return t != nil && strings.IndexByte(t.Name(), '[') >= 0
}

// StripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func StripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
