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

package emit

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"dirpx.dev/rtti/extract"
)

const (
	apisPath     = "dirpx.dev/rtti/apis"
	builderPath  = "dirpx.dev/rtti/builder"
	accessorPath = "dirpx.dev/rtti/accessor"
)

// registrationFile renders RegisterAll and one register<Class> helper per
// class. Each helper is a single builder chain.
func (e *Emitter) registrationFile(classes []*extract.ClassDescription, outPath string) (File, error) {
	path := filepath.Join(e.cfg.OutputDir, RegistrationFile)

	f := jen.NewFilePathName(outPath, e.cfg.OutputPackage)
	f.HeaderComment(header)

	var (
		helpers []jen.Code
		calls   []jen.Code
		errs    []error
		used    = make(map[string]struct{}, len(classes))
	)
	for _, c := range classes {
		fn := helperName(c.Name, used)
		body, err := e.classBody(c, outPath)
		if err != nil {
			errs = append(errs, fmt.Errorf("class %s: %w", c.Name, err))
			continue
		}
		calls = append(calls, jen.Id(fn).Call(jen.Id("reg")))
		helpers = append(helpers,
			jen.Func().Id(fn).Params(jen.Id("reg").Qual(apisPath, "Registry")).Error().Block(body...))
	}
	if err := errors.Join(errs...); err != nil {
		return File{}, err
	}

	f.Comment("RegisterAll registers every reflectable type into reg. Names already")
	f.Comment("present in reg are kept; failures of independent types are joined.")
	if len(calls) == 0 {
		f.Func().Id("RegisterAll").Params(jen.Id("reg").Qual(apisPath, "Registry")).Error().Block(
			jen.Return(jen.Nil()),
		)
	} else {
		multi := jen.Options{Open: "(", Close: ")", Separator: ",", Multi: true}
		f.Func().Id("RegisterAll").Params(jen.Id("reg").Qual(apisPath, "Registry")).Error().Block(
			jen.Return(jen.Qual("errors", "Join").Custom(multi, calls...)),
		)
	}
	for _, h := range helpers {
		f.Line()
		f.Add(h)
	}
	return render(f, path)
}

// classBody renders the statements of one register<Class> helper:
//
//	b := builder.For[pkg.T](reg, "Name")
//	b.AddField(accessor.NewField("F", "int", func(c *pkg.T) *int { return &c.F }))
//	b.AddMethod("M", (*pkg.T).M)
//	return b.Register()
func (e *Emitter) classBody(c *extract.ClassDescription, outPath string) ([]jen.Code, error) {
	cross := c.ImportPath != outPath
	if cross && !token.IsExported(c.TypeName) {
		return nil, fmt.Errorf("%w: type %s", ErrUnexported, c.TypeName)
	}
	owner := func() *jen.Statement { return jen.Qual(c.ImportPath, c.TypeName) }

	body := []jen.Code{
		jen.Id("b").Op(":=").Qual(builderPath, "For").Types(owner()).Call(jen.Id("reg"), jen.Lit(c.Name)),
	}

	var errs []error
	for _, fd := range c.Fields {
		if cross && !token.IsExported(fd.GoName) {
			errs = append(errs, fmt.Errorf("%w: field %s.%s", ErrUnexported, c.TypeName, fd.GoName))
			continue
		}
		typ, err := typeCode(fd.TypeExpr, c, fd.Imports, cross)
		if err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", fd.GoName, err))
			continue
		}
		ref := jen.Func().Params(jen.Id("c").Op("*").Add(owner())).Op("*").Add(typ).Block(
			jen.Return(jen.Op("&").Id("c").Dot(fd.GoName)),
		)
		if fd.IsContainer {
			body = append(body, jen.Id("b").Dot("AddArray").Call(
				jen.Qual(accessorPath, "NewArray").Call(jen.Lit(fd.Name), jen.Lit(fd.DeclaredType), jen.Lit(fd.ElemType), ref),
			))
		} else {
			body = append(body, jen.Id("b").Dot("AddField").Call(
				jen.Qual(accessorPath, "NewField").Call(jen.Lit(fd.Name), jen.Lit(fd.DeclaredType), ref),
			))
		}
	}
	for _, m := range c.Methods {
		if cross && !token.IsExported(m.GoName) {
			errs = append(errs, fmt.Errorf("%w: method %s.%s", ErrUnexported, c.TypeName, m.GoName))
			continue
		}
		var expr *jen.Statement
		if m.PointerReceiver {
			expr = jen.Parens(jen.Op("*").Add(owner())).Dot(m.GoName)
		} else {
			expr = owner().Dot(m.GoName)
		}
		body = append(body, jen.Id("b").Dot("AddMethod").Call(jen.Lit(m.Name), expr))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return append(body, jen.Return(jen.Id("b").Dot("Register").Call())), nil
}

// typeCode spells a field type as written in the declaring file, qualifying
// identifiers of the declaring package and resolving selectors through the
// file's imports.
func typeCode(expr ast.Expr, c *extract.ClassDescription, imports map[string]string, cross bool) (*jen.Statement, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if obj, ok := types.Universe.Lookup(t.Name).(*types.TypeName); ok {
			return jen.Id(obj.Name()), nil
		}
		if cross && !token.IsExported(t.Name) {
			return nil, fmt.Errorf("%w: type %s", ErrUnexported, t.Name)
		}
		return jen.Qual(c.ImportPath, t.Name), nil
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, types.ExprString(t))
		}
		path, ok := imports[pkg.Name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown package %s", ErrUnsupportedType, pkg.Name)
		}
		return jen.Qual(path, t.Sel.Name), nil
	case *ast.StarExpr:
		inner, err := typeCode(t.X, c, imports, cross)
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(inner), nil
	case *ast.ParenExpr:
		inner, err := typeCode(t.X, c, imports, cross)
		if err != nil {
			return nil, err
		}
		return jen.Parens(inner), nil
	case *ast.ArrayType:
		elem, err := typeCode(t.Elt, c, imports, cross)
		if err != nil {
			return nil, err
		}
		if t.Len == nil {
			return jen.Index().Add(elem), nil
		}
		n, ok := t.Len.(*ast.BasicLit)
		if !ok || n.Kind != token.INT {
			return nil, fmt.Errorf("%w: array length %s", ErrUnsupportedType, types.ExprString(t.Len))
		}
		return jen.Index(jen.Op(n.Value)).Add(elem), nil
	case *ast.MapType:
		key, err := typeCode(t.Key, c, imports, cross)
		if err != nil {
			return nil, err
		}
		val, err := typeCode(t.Value, c, imports, cross)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(val), nil
	case *ast.ChanType:
		elem, err := typeCode(t.Value, c, imports, cross)
		if err != nil {
			return nil, err
		}
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(elem), nil
		case ast.RECV:
			return jen.Op("<-").Chan().Add(elem), nil
		default:
			return jen.Chan().Add(elem), nil
		}
	case *ast.IndexExpr:
		return instance(t.X, []ast.Expr{t.Index}, c, imports, cross)
	case *ast.IndexListExpr:
		return instance(t.X, t.Indices, c, imports, cross)
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return jen.Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, types.ExprString(expr))
}

func instance(base ast.Expr, args []ast.Expr, c *extract.ClassDescription, imports map[string]string, cross bool) (*jen.Statement, error) {
	generic, err := typeCode(base, c, imports, cross)
	if err != nil {
		return nil, err
	}
	codes := make([]jen.Code, 0, len(args))
	for _, a := range args {
		code, err := typeCode(a, c, imports, cross)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return generic.Types(codes...), nil
}

// helperName returns a unique register<Name> identifier for a class.
func helperName(name string, used map[string]struct{}) string {
	var b strings.Builder
	b.WriteString("register")
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	fn := b.String()
	for i := 2; ; i++ {
		if _, taken := used[fn]; !taken {
			break
		}
		fn = fmt.Sprintf("%s%d", b.String(), i)
	}
	used[fn] = struct{}{}
	return fn
}
