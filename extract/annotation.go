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
	"errors"
	"fmt"
	"go/ast"
	"strings"
)

var (
	// ErrConflictingAnnotations is returned when one declaration carries more
	// than one recognized directive.
	ErrConflictingAnnotations = errors.New("rtti(extract): conflicting annotations")
)

// Kind is the reflection intent of a marked declaration.
type Kind uint8

const (
	KindNone Kind = iota
	KindClass
	KindStruct
	KindField
	KindMethod
	KindEnum
)

var kindTags = [...]string{
	KindNone:   "",
	KindClass:  "class",
	KindStruct: "struct",
	KindField:  "field",
	KindMethod: "method",
	KindEnum:   "enum",
}

// String returns the directive tag of k.
func (k Kind) String() string {
	if int(k) < len(kindTags) {
		return kindTags[k]
	}
	return "unknown"
}

// IsClass reports whether k marks a reflectable aggregate.
func (k Kind) IsClass() bool { return k == KindClass || k == KindStruct }

func kindOf(tag string) Kind {
	for k, t := range kindTags {
		if t != "" && t == tag {
			return Kind(k)
		}
	}
	return KindNone
}

// Annotation is the directive attached to a declaration, such as
// //rtti:class name=Player.
type Annotation struct {
	Kind Kind
	Tag  string
	Args []string
}

// Arg returns the value of the key=value argument named key.
func (a Annotation) Arg(key string) (string, bool) {
	for _, arg := range a.Args {
		if k, v, ok := strings.Cut(arg, "="); ok && k == key {
			return v, true
		}
	}
	return "", false
}

// NameOr returns the name= argument, or def when it is absent or empty.
func (a Annotation) NameOr(def string) string {
	if v, ok := a.Arg("name"); ok && v != "" {
		return v
	}
	return def
}

// parseAnnotation scans the comment groups for //<marker><tag> directives.
// Unrecognized tags are ignored. ok is false when no recognized directive
// is present.
func parseAnnotation(marker string, groups ...*ast.CommentGroup) (ann Annotation, ok bool, err error) {
	prefix := "//" + marker
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			rest, found := strings.CutPrefix(c.Text, prefix)
			if !found {
				continue
			}
			words := strings.Fields(rest)
			if len(words) == 0 {
				continue
			}
			kind := kindOf(words[0])
			if kind == KindNone {
				continue
			}
			if ok {
				return ann, true, fmt.Errorf("%w: %s and %s", ErrConflictingAnnotations, ann.Tag, words[0])
			}
			ann = Annotation{Kind: kind, Tag: words[0], Args: words[1:]}
			ok = true
		}
	}
	return ann, ok, nil
}
