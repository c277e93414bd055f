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

package extract

import (
	"fmt"
	"go/ast"
)

// ClassDescription is a reflectable struct found in source.
type ClassDescription struct {
	// Name is the registered name; the name= argument overrides TypeName.
	Name string
	// TypeName is the Go identifier of the struct.
	TypeName string
	// Kind is KindClass or KindStruct.
	Kind       Kind
	Package    string
	ImportPath string
	Dir        string
	File       string
	Fields     []FieldDescription
	Methods    []MethodDescription
}

// Arrays returns the container fields in declaration order.
func (c *ClassDescription) Arrays() []FieldDescription {
	var out []FieldDescription
	for _, f := range c.Fields {
		if f.IsContainer {
			out = append(out, f)
		}
	}
	return out
}

// PlainFields returns the non-container fields in declaration order.
func (c *ClassDescription) PlainFields() []FieldDescription {
	var out []FieldDescription
	for _, f := range c.Fields {
		if !f.IsContainer {
			out = append(out, f)
		}
	}
	return out
}

// FieldDescription is one marked field of a class.
type FieldDescription struct {
	Name         string
	GoName       string
	DeclaredType string
	IsContainer  bool
	// ElemType is empty unless IsContainer.
	ElemType string

	// TypeExpr is the parsed field type.
	TypeExpr ast.Expr
	// Imports maps the local package names of the declaring file to import paths.
	Imports map[string]string
}

// MethodDescription is one marked method. Signatures are not recorded;
// the method is bound by expression at registration.
type MethodDescription struct {
	Name            string
	GoName          string
	PointerReceiver bool
}

// EnumDescription is a reflectable integer enum.
type EnumDescription struct {
	Name        string
	Underlying  string
	Enumerators []string
	Package     string
	ImportPath  string
	Dir         string
	File        string
}

// Has reports whether the enum declares an enumerator named name.
func (e *EnumDescription) Has(name string) bool {
	for _, n := range e.Enumerators {
		if n == name {
			return true
		}
	}
	return false
}

// Source is a file that contributed at least one reflectable entity.
type Source struct {
	Path       string
	Package    string
	ImportPath string
}

// Result is everything an Extractor found, in extraction order.
type Result struct {
	Classes []*ClassDescription
	Enums   []*EnumDescription
	Sources []Source
}

// Class returns the class registered under name.
func (r *Result) Class(name string) (*ClassDescription, bool) {
	for _, c := range r.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Enum returns the enum named name.
func (r *Result) Enum(name string) (*EnumDescription, bool) {
	for _, e := range r.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// ParseError reports a file whose syntax tree could not be built.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rtti(extract): parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
