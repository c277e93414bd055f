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

// Package emit renders the Go sources produced from an extract.Result:
// one <enum>.gen.go next to every reflectable enum, and one
// register_all.gen.go holding RegisterAll.
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/extract"
	"dirpx.dev/rtti/internal/gomod"
)

const (
	// RegistrationFile is the name of the registration unit.
	RegistrationFile = "register_all.gen.go"
	// GeneratedSuffix ends the name of every emitted file.
	GeneratedSuffix = ".gen.go"

	header = "Code generated by rttigen. DO NOT EDIT."
)

var (
	// ErrMissingInvalidEnumerator is returned for an enum without the
	// designated invalid enumerator.
	ErrMissingInvalidEnumerator = errors.New("rtti(emit): enum has no invalid enumerator")
	// ErrUnexported is returned when generated code would refer to an
	// unexported identifier of another package.
	ErrUnexported = errors.New("rtti(emit): unexported identifier")
	// ErrUnsupportedType is returned for field types the emitter cannot spell.
	ErrUnsupportedType = errors.New("rtti(emit): unsupported field type")
	// ErrNoOutput is returned when the output directory is not configured.
	ErrNoOutput = errors.New("rtti(emit): output dir is not set")
)

// File is one generated source file.
type File struct {
	Path    string
	Content []byte
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Emitter) {
		if log != nil {
			e.log = log
		}
	}
}

// Emitter turns extraction results into files. It holds no state between
// Generate calls.
type Emitter struct {
	cfg config.Generator
	log *slog.Logger
}

// New constructs an Emitter.
func New(cfg config.Generator, opts ...Option) *Emitter {
	def := config.DefaultGenerator()
	if cfg.OutputPackage == "" {
		cfg.OutputPackage = def.OutputPackage
	}
	if cfg.InvalidEnumerator == "" {
		cfg.InvalidEnumerator = def.InvalidEnumerator
	}
	if cfg.UnknownString == "" {
		cfg.UnknownString = def.UnknownString
	}
	e := &Emitter{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(slog.String("component", "rtti.emit"))
	return e
}

// Generate renders one file per enum followed by the registration unit.
// Classes and enums are emitted in extraction order. Every failure is
// reported; no files are returned unless all of them render.
func (e *Emitter) Generate(res *extract.Result) ([]File, error) {
	if e.cfg.OutputDir == "" {
		return nil, ErrNoOutput
	}
	outPath, err := e.outputImportPath()
	if err != nil {
		return nil, err
	}

	var (
		files []File
		errs  []error
	)
	for _, en := range res.Enums {
		f, err := e.enumFile(en)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		files = append(files, f)
	}
	reg, err := e.registrationFile(res.Classes, outPath)
	if err != nil {
		errs = append(errs, err)
	} else {
		files = append(files, reg)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	e.log.Debug("generated", slog.Int("enums", len(res.Enums)), slog.Int("classes", len(res.Classes)))
	return files, nil
}

func (e *Emitter) outputImportPath() (string, error) {
	if e.cfg.OutputImportPath != "" {
		return e.cfg.OutputImportPath, nil
	}
	mod, err := gomod.Find(e.cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("rtti(emit): output import path: %w", err)
	}
	p, err := mod.ImportPath(e.cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("rtti(emit): output import path: %w", err)
	}
	return p, nil
}

func render(f *jen.File, path string) (File, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return File{}, fmt.Errorf("rtti(emit): render %s: %w", filepath.Base(path), err)
	}
	return File{Path: path, Content: buf.Bytes()}, nil
}
