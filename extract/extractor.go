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

// Package extract scans Go sources for //rtti: directives and produces the
// class and enum descriptions consumed by the code emitter.
//
// Directives are ordinary comment lines without a space after the slashes:
//
//	//rtti:class name=Player
//	type Player struct {
//		Health int //rtti:field
//		Tags []string //rtti:field name=tags
//	}
//
//	//rtti:method
//	func (p *Player) Heal(amount int) { ... }
//
//	//rtti:enum
//	type Season int
//
// Extraction is purely syntactic: no type checking is done, container
// detection works on the type as written, and enumerators are the constants
// of the enum type declared in the same file.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/internal/gomod"
)

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Extractor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithModule fixes the module used to derive import paths instead of
// discovering the nearest go.mod of each parsed directory.
func WithModule(root, modulePath string) Option {
	return func(e *Extractor) {
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
		e.module = &gomod.Module{Dir: root, Path: modulePath}
	}
}

// Extractor accumulates descriptions over any number of files and roots.
// Names are deduplicated for its whole lifetime: the first class and the
// first enum seen under a name win. An Extractor is not safe for
// concurrent use.
type Extractor struct {
	cfg    config.Generator
	log    *slog.Logger
	fset   *token.FileSet
	module *gomod.Module
	mods   map[string]gomod.Module

	classNames map[string]struct{}
	enumNames  map[string]struct{}
	sourceSeen map[string]struct{}
	parsed     map[string]struct{}

	classes []*ClassDescription
	enums   []*EnumDescription
	methods []pendingMethod
	sources []Source
}

type pendingMethod struct {
	dir      string
	typeName string
	pos      token.Position
	desc     MethodDescription
}

// New constructs an Extractor. Only the marker and the container prefixes
// of cfg are used.
func New(cfg config.Generator, opts ...Option) (*Extractor, error) {
	if cfg.Marker == "" || strings.ContainsAny(cfg.Marker, " \t\n") {
		return nil, fmt.Errorf("%w: marker %q", config.ErrInvalidGenerator, cfg.Marker)
	}
	if len(cfg.ContainerPrefixes) == 0 {
		cfg.ContainerPrefixes = config.DefaultGenerator().ContainerPrefixes
	}
	e := &Extractor{
		cfg:        cfg,
		log:        slog.Default(),
		fset:       token.NewFileSet(),
		mods:       make(map[string]gomod.Module),
		classNames: make(map[string]struct{}),
		enumNames:  make(map[string]struct{}),
		sourceSeen: make(map[string]struct{}),
		parsed:     make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(slog.String("component", "rtti.extract"))
	return e, nil
}

// ParseDir walks root in lexical order and parses every Go file containing
// the marker. Hidden and underscore directories, vendor, testdata below root,
// test files and generated .gen.go files are skipped.
func (e *Extractor) ParseDir(root string) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("rtti(extract): %w", err)
	}
	parsed := 0
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && skipDir(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, ".gen.go") {
			return nil
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("rtti(extract): %w", err)
		}
		if !bytes.Contains(src, []byte("//"+e.cfg.Marker)) {
			return nil
		}
		parsed++
		return e.parse(p, src)
	})
	if err != nil {
		return err
	}
	e.log.Debug("scanned root", slog.String("root", root), slog.Int("files", parsed))
	return nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "testdata"
}

// ParseFile parses one file and records its marked declarations.
func (e *Extractor) ParseFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("rtti(extract): %w", err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("rtti(extract): %w", err)
	}
	return e.parse(abs, src)
}

// fileScope is the per-file state shared by the declaration visitors.
type fileScope struct {
	path    string
	dir     string
	file    *ast.File
	imports map[string]string
	ipath   string
	errs    []error
}

// parse records the declarations of one file. A file reached again through
// an overlapping root is skipped.
func (e *Extractor) parse(path string, src []byte) error {
	if _, ok := e.parsed[path]; ok {
		e.log.Debug("file already parsed", slog.String("path", path))
		return nil
	}
	file, err := parser.ParseFile(e.fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	e.parsed[path] = struct{}{}
	sc := &fileScope{
		path:    path,
		dir:     filepath.Dir(path),
		file:    file,
		imports: fileImports(file),
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				e.typeSpec(sc, ts, doc)
			}
		case *ast.FuncDecl:
			e.funcDecl(sc, d)
		}
	}
	return errors.Join(sc.errs...)
}

func (e *Extractor) typeSpec(sc *fileScope, ts *ast.TypeSpec, doc *ast.CommentGroup) {
	ann, ok, err := parseAnnotation(e.cfg.Marker, doc)
	if err != nil {
		sc.errs = append(sc.errs, e.at(ts.Pos(), err))
		return
	}
	if !ok {
		return
	}
	switch {
	case ann.Kind.IsClass():
		e.class(sc, ts, ann)
	case ann.Kind == KindEnum:
		e.enum(sc, ts, ann)
	default:
		e.log.Debug("directive ignored on type",
			slog.String("tag", ann.Tag), slog.String("type", ts.Name.Name), slog.String("pos", e.pos(ts.Pos())))
	}
}

func (e *Extractor) class(sc *fileScope, ts *ast.TypeSpec, ann Annotation) {
	typeName := ts.Name.Name
	st, ok := ts.Type.(*ast.StructType)
	switch {
	case !ok || ts.Assign.IsValid():
		e.log.Warn("class directive on a non-struct type, skipped",
			slog.String("type", typeName), slog.String("pos", e.pos(ts.Pos())))
		return
	case ts.TypeParams != nil:
		e.log.Warn("class directive on a generic type, skipped",
			slog.String("type", typeName), slog.String("pos", e.pos(ts.Pos())))
		return
	}

	name := ann.NameOr(typeName)
	if _, dup := e.classNames[name]; dup {
		e.log.Info("class already extracted, skipped",
			slog.String("class", name), slog.String("pos", e.pos(ts.Pos())))
		return
	}

	fields, err := e.fields(sc, st)
	if err != nil {
		sc.errs = append(sc.errs, err)
		return
	}
	ipath, err := e.importPath(sc)
	if err != nil {
		sc.errs = append(sc.errs, err)
		return
	}

	e.classNames[name] = struct{}{}
	e.classes = append(e.classes, &ClassDescription{
		Name:       name,
		TypeName:   typeName,
		Kind:       ann.Kind,
		Package:    sc.file.Name.Name,
		ImportPath: ipath,
		Dir:        sc.dir,
		File:       sc.path,
		Fields:     fields,
	})
	e.source(sc)
	e.log.Debug("class extracted", slog.String("class", name), slog.Int("fields", len(fields)))
}

func (e *Extractor) fields(sc *fileScope, st *ast.StructType) ([]FieldDescription, error) {
	var (
		out  []FieldDescription
		errs []error
	)
	for _, f := range st.Fields.List {
		ann, ok, err := parseAnnotation(e.cfg.Marker, f.Doc, f.Comment)
		if err != nil {
			errs = append(errs, e.at(f.Pos(), err))
			continue
		}
		if !ok {
			continue
		}
		if ann.Kind != KindField {
			e.log.Debug("directive ignored on field", slog.String("tag", ann.Tag), slog.String("pos", e.pos(f.Pos())))
			continue
		}

		names := fieldNames(f)
		declared := types.ExprString(f.Type)
		elem, isContainer := SplitContainer(declared, e.cfg.ContainerPrefixes)
		for _, goName := range names {
			name := goName
			if len(names) == 1 {
				name = ann.NameOr(goName)
			}
			out = append(out, FieldDescription{
				Name:         name,
				GoName:       goName,
				DeclaredType: declared,
				IsContainer:  isContainer,
				ElemType:     elem,
				TypeExpr:     f.Type,
				Imports:      sc.imports,
			})
		}
	}
	return out, errors.Join(errs...)
}

// fieldNames returns the declared names of f, or the type name for an
// embedded field. Blank names are dropped.
func fieldNames(f *ast.Field) []string {
	if len(f.Names) == 0 {
		t := f.Type
		if star, ok := t.(*ast.StarExpr); ok {
			t = star.X
		}
		switch x := t.(type) {
		case *ast.Ident:
			return []string{x.Name}
		case *ast.SelectorExpr:
			return []string{x.Sel.Name}
		}
		return nil
	}
	names := make([]string, 0, len(f.Names))
	for _, n := range f.Names {
		if n.Name != "_" {
			names = append(names, n.Name)
		}
	}
	return names
}

func (e *Extractor) enum(sc *fileScope, ts *ast.TypeSpec, ann Annotation) {
	name := ts.Name.Name
	underlying, ok := integerUnderlying(ts.Type)
	if !ok || ts.Assign.IsValid() || ts.TypeParams != nil {
		e.log.Warn("enum directive on a non-integer type, skipped",
			slog.String("type", name), slog.String("pos", e.pos(ts.Pos())))
		return
	}
	if _, dup := e.enumNames[name]; dup {
		e.log.Info("enum already extracted, skipped",
			slog.String("enum", name), slog.String("pos", e.pos(ts.Pos())))
		return
	}
	values := enumerators(sc.file, name)
	if len(values) == 0 {
		e.log.Warn("enum has no enumerators in its file, skipped",
			slog.String("enum", name), slog.String("pos", e.pos(ts.Pos())))
		return
	}
	ipath, err := e.importPath(sc)
	if err != nil {
		sc.errs = append(sc.errs, err)
		return
	}

	e.enumNames[name] = struct{}{}
	e.enums = append(e.enums, &EnumDescription{
		Name:        name,
		Underlying:  underlying,
		Enumerators: values,
		Package:     sc.file.Name.Name,
		ImportPath:  ipath,
		Dir:         sc.dir,
		File:        sc.path,
	})
	e.source(sc)
	e.log.Debug("enum extracted", slog.String("enum", name), slog.Int("enumerators", len(values)))
}

func (e *Extractor) funcDecl(sc *fileScope, fd *ast.FuncDecl) {
	ann, ok, err := parseAnnotation(e.cfg.Marker, fd.Doc)
	if err != nil {
		sc.errs = append(sc.errs, e.at(fd.Pos(), err))
		return
	}
	if !ok {
		return
	}
	if ann.Kind != KindMethod {
		e.log.Debug("directive ignored on function", slog.String("tag", ann.Tag), slog.String("func", fd.Name.Name))
		return
	}
	if fd.Recv == nil || len(fd.Recv.List) != 1 {
		e.log.Warn("method directive on a function without receiver, skipped",
			slog.String("func", fd.Name.Name), slog.String("pos", e.pos(fd.Pos())))
		return
	}

	recv := fd.Recv.List[0].Type
	pointer := false
	if star, ok := recv.(*ast.StarExpr); ok {
		recv, pointer = star.X, true
	}
	id, ok := recv.(*ast.Ident)
	if !ok {
		e.log.Warn("method directive on a generic receiver, skipped",
			slog.String("func", fd.Name.Name), slog.String("pos", e.pos(fd.Pos())))
		return
	}

	if _, err := e.importPath(sc); err != nil {
		sc.errs = append(sc.errs, err)
		return
	}
	e.methods = append(e.methods, pendingMethod{
		dir:      sc.dir,
		typeName: id.Name,
		pos:      e.fset.Position(fd.Pos()),
		desc: MethodDescription{
			Name:            ann.NameOr(fd.Name.Name),
			GoName:          fd.Name.Name,
			PointerReceiver: pointer,
		},
	})
	e.source(sc)
}

// Result returns the descriptions extracted so far. Methods are attached to
// the class declared by their receiver type in the same directory; methods
// of unknown or skipped classes are dropped.
func (e *Extractor) Result() *Result {
	res := &Result{
		Classes: make([]*ClassDescription, 0, len(e.classes)),
		Enums:   make([]*EnumDescription, 0, len(e.enums)),
		Sources: append([]Source(nil), e.sources...),
	}
	for _, c := range e.classes {
		cp := *c
		cp.Fields = append([]FieldDescription(nil), c.Fields...)
		cp.Methods = nil
		res.Classes = append(res.Classes, &cp)
	}
	for _, en := range e.enums {
		cp := *en
		cp.Enumerators = append([]string(nil), en.Enumerators...)
		res.Enums = append(res.Enums, &cp)
	}

	for _, m := range e.methods {
		var owner *ClassDescription
		for _, c := range res.Classes {
			if c.Dir == m.dir && c.TypeName == m.typeName {
				owner = c
				break
			}
		}
		if owner == nil {
			e.log.Warn("method of an unextracted type dropped",
				slog.String("type", m.typeName), slog.String("method", m.desc.GoName), slog.String("pos", m.pos.String()))
			continue
		}
		owner.Methods = append(owner.Methods, m.desc)
	}
	return res
}

func (e *Extractor) source(sc *fileScope) {
	if _, ok := e.sourceSeen[sc.path]; ok {
		return
	}
	e.sourceSeen[sc.path] = struct{}{}
	e.sources = append(e.sources, Source{
		Path:       sc.path,
		Package:    sc.file.Name.Name,
		ImportPath: sc.ipath,
	})
}

// importPath derives the import path of the file's directory once per file.
func (e *Extractor) importPath(sc *fileScope) (string, error) {
	if sc.ipath != "" {
		return sc.ipath, nil
	}
	mod := e.module
	if mod == nil {
		m, ok := e.mods[sc.dir]
		if !ok {
			found, err := gomod.Find(sc.dir)
			if err != nil {
				return "", fmt.Errorf("rtti(extract): import path of %s: %w", sc.path, err)
			}
			e.mods[sc.dir] = found
			m = found
		}
		mod = &m
	}
	ipath, err := mod.ImportPath(sc.dir)
	if err != nil {
		return "", fmt.Errorf("rtti(extract): import path of %s: %w", sc.path, err)
	}
	sc.ipath = ipath
	return ipath, nil
}

func (e *Extractor) pos(p token.Pos) string { return e.fset.Position(p).String() }

func (e *Extractor) at(p token.Pos, err error) error {
	return fmt.Errorf("%s: %w", e.pos(p), err)
}

// fileImports maps each local package name of file to its import path.
// Blank and dot imports are omitted.
func fileImports(file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := importName(p)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		out[name] = p
	}
	return out
}

// importName guesses the package name of an import path the way goimports
// does: the last element, without a major version suffix or a go- prefix.
func importName(p string) string {
	base := path.Base(p)
	if isMajorVersion(base) {
		if dir := path.Dir(p); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.Index(base, ".v"); i > 0 && isMajorVersion(base[i+1:]) {
		base = base[:i]
	}
	base = strings.TrimPrefix(base, "go-")
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, base)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}
