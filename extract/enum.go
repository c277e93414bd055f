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
	"go/ast"
	"go/token"
)

var integerTypes = map[string]struct{}{
	"int": {}, "int8": {}, "int16": {}, "int32": {}, "int64": {},
	"uint": {}, "uint8": {}, "uint16": {}, "uint32": {}, "uint64": {},
	"uintptr": {}, "byte": {}, "rune": {},
}

// integerUnderlying returns the predeclared integer type spelled by expr.
func integerUnderlying(expr ast.Expr) (string, bool) {
	id, ok := expr.(*ast.Ident)
	if !ok {
		return "", false
	}
	_, ok = integerTypes[id.Name]
	return id.Name, ok
}

// enumerators returns the constants of type name declared in file, in
// declaration order. A constant belongs to the enum when its declaration
// names the type, converts to it, or implicitly repeats one that does
// (iota continuation). Blank names are skipped.
func enumerators(file *ast.File, name string) []string {
	var out []string
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		inherited := false
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			of := inherited
			switch {
			case vs.Type != nil:
				of = isIdent(vs.Type, name)
			case len(vs.Values) > 0:
				of = isConversion(vs.Values[0], name)
			}
			if vs.Type != nil || len(vs.Values) > 0 {
				inherited = of
			}
			if !of {
				continue
			}
			for _, n := range vs.Names {
				if n.Name != "_" {
					out = append(out, n.Name)
				}
			}
		}
	}
	return out
}

func isIdent(expr ast.Expr, name string) bool {
	id, ok := expr.(*ast.Ident)
	return ok && id.Name == name
}

func isConversion(expr ast.Expr, name string) bool {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			break
		}
		expr = p.X
	}
	call, ok := expr.(*ast.CallExpr)
	return ok && len(call.Args) == 1 && isIdent(call.Fun, name)
}
