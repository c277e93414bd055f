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

// Package reflect holds the reflect.Type helpers shared by the registry and
// the name strategies.
package reflect

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("rtti(reflect): nil reflect.Type provided")
	// ErrNotNamed indicates that the provided type (after unwrapping
	// containers) has no named type that could own a descriptor
	// (e.g., anonymous struct, func, interface{}).
	ErrNotNamed = errors.New("rtti(reflect): type has no named owner")
)

// Normalize unwraps containers according to cfg (MaxUnwrap/MapPreferElem)
// and returns the nearest named inner type. A registry indexes descriptors
// by the normalized owner type, so *Vector3, []Vector3 and map[string]Vector3
// all lead to the Vector3 descriptor.
//
// Unwrapping policy:
//   - ptr/slice/array/chan  -> Elem()
//   - map[K]V: the preferred side (V if MapPreferElem, else K) if named,
//     then the other side if named, else continue with V.
//   - anything else: t itself if named, otherwise ErrNotNamed.
//
// If MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; depth > 0; depth-- {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			if side := namedSide(t, cfg.MapPreferElem); side != nil {
				return side, nil
			}
			t = t.Elem()
		default:
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrNotNamed
		}
	}

	// Out of depth: only a named type is acceptable.
	if t.Name() != "" {
		return t, nil
	}
	return nil, ErrNotNamed
}

// namedSide returns the named side of map type t, trying the preferred side
// first, or nil when neither side is named.
func namedSide(t reflect.Type, preferElem bool) reflect.Type {
	first, second := t.Key(), t.Elem()
	if preferElem {
		first, second = second, first
	}
	if first.Name() != "" {
		return first
	}
	if second.Name() != "" {
		return second
	}
	return nil
}

// BareName returns the name of t without generic instantiation arguments:
// "Pool[int]" -> "Pool". Unnamed types yield "".
func BareName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}
