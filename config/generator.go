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

package config

import (
	"errors"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"
)

const (
	// DefaultMarker is the comment directive prefix, as in //rtti:class.
	DefaultMarker = "rtti:"
	// DefaultOutputPackage is the package name of the registration unit.
	DefaultOutputPackage = "generated"
	// DefaultInvalidEnumerator is the enumerator every enum must declare,
	// either bare or prefixed with the enum name.
	DefaultInvalidEnumerator = "None"
	// DefaultUnknownString is what String returns for undeclared enum values.
	DefaultUnknownString = "Unknown"
)

var (
	// ErrInvalidGenerator is wrapped by every Generator.Validate failure.
	ErrInvalidGenerator = errors.New("rtti(config): invalid generator config")
)

// Generator holds the settings of the metadata extractor and code emitter.
// It can be loaded from YAML; CLI flags override loaded values.
type Generator struct {
	// Marker is the directive prefix recognized in comments.
	Marker string `yaml:"marker"`
	// SourceRoot is the primary directory scanned for marked declarations.
	SourceRoot string `yaml:"source_root"`
	// SearchPaths are additional roots scanned after SourceRoot.
	SearchPaths []string `yaml:"search_paths"`
	// OutputDir is the directory receiving register_all.gen.go.
	OutputDir string `yaml:"output_dir"`
	// OutputPackage is the package name of the registration unit.
	OutputPackage string `yaml:"output_package"`
	// OutputImportPath is the import path of OutputDir. When empty it is
	// derived from the enclosing go.mod.
	OutputImportPath string `yaml:"output_import_path"`
	// ContainerPrefixes are the type prefixes treated as sequences:
	// "[]" for slices, and generic prefixes such as "Seq[".
	ContainerPrefixes []string `yaml:"container_prefixes"`
	// InvalidEnumerator names the enumerator FromString returns on no match.
	InvalidEnumerator string `yaml:"invalid_enumerator"`
	// UnknownString is returned by String for undeclared values.
	UnknownString string `yaml:"unknown_string"`
}

// GeneratorOption mutates a Generator during construction.
type GeneratorOption func(*Generator)

// DefaultGenerator returns the generator defaults. Source and output
// locations are left empty.
func DefaultGenerator() Generator {
	return Generator{
		Marker:            DefaultMarker,
		OutputPackage:     DefaultOutputPackage,
		ContainerPrefixes: []string{"[]"},
		InvalidEnumerator: DefaultInvalidEnumerator,
		UnknownString:     DefaultUnknownString,
	}
}

// NewGenerator constructs a Generator from the defaults and opts.
func NewGenerator(opts ...GeneratorOption) Generator {
	g := DefaultGenerator()
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// WithSourceRoot sets the primary source root.
func WithSourceRoot(dir string) GeneratorOption {
	return func(g *Generator) { g.SourceRoot = dir }
}

// WithSearchPaths appends additional source roots.
func WithSearchPaths(dirs ...string) GeneratorOption {
	return func(g *Generator) { g.SearchPaths = append(g.SearchPaths, dirs...) }
}

// WithOutput sets the output directory and package name.
func WithOutput(dir, pkg string) GeneratorOption {
	return func(g *Generator) {
		g.OutputDir = dir
		if pkg != "" {
			g.OutputPackage = pkg
		}
	}
}

// WithOutputPackage sets the package name of the registration unit.
func WithOutputPackage(pkg string) GeneratorOption {
	return func(g *Generator) { g.OutputPackage = pkg }
}

// WithOutputImportPath sets the import path of the output directory.
func WithOutputImportPath(path string) GeneratorOption {
	return func(g *Generator) { g.OutputImportPath = path }
}

// WithContainerPrefixes replaces the container prefixes.
func WithContainerPrefixes(prefixes ...string) GeneratorOption {
	return func(g *Generator) { g.ContainerPrefixes = prefixes }
}

// WithMarker sets the directive prefix.
func WithMarker(marker string) GeneratorOption {
	return func(g *Generator) { g.Marker = marker }
}

// LoadGenerator reads a YAML generator config from path. Keys absent from
// the file keep their default; unknown keys are an error.
func LoadGenerator(path string) (Generator, error) {
	g := DefaultGenerator()
	if err := decodeFile(path, &g); err != nil {
		return g, err
	}
	return g, nil
}

// Validate reports every problem with g at once.
func (g Generator) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidGenerator}, args...)...))
	}

	if g.Marker == "" || strings.ContainsAny(g.Marker, " \t\n") {
		bad("marker %q must be a non-empty word", g.Marker)
	}
	if g.SourceRoot == "" {
		bad("source root is required")
	}
	if g.OutputDir == "" {
		bad("output dir is required")
	}
	if !token.IsIdentifier(g.OutputPackage) {
		bad("output package %q is not an identifier", g.OutputPackage)
	}
	if len(g.ContainerPrefixes) == 0 {
		bad("at least one container prefix is required")
	}
	for _, p := range g.ContainerPrefixes {
		if p != "[]" && !strings.HasSuffix(p, "[") {
			bad("container prefix %q must be \"[]\" or end with \"[\"", p)
		}
	}
	if !token.IsIdentifier(g.InvalidEnumerator) {
		bad("invalid enumerator %q is not an identifier", g.InvalidEnumerator)
	}
	return errors.Join(errs...)
}

// Roots returns SourceRoot followed by SearchPaths, in scan order. Empty
// entries and repeats of an already listed path are dropped.
func (g Generator) Roots() []string {
	roots := make([]string, 0, 1+len(g.SearchPaths))
	seen := make(map[string]struct{}, 1+len(g.SearchPaths))
	for _, r := range append([]string{g.SourceRoot}, g.SearchPaths...) {
		if r == "" {
			continue
		}
		key := filepath.Clean(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		roots = append(roots, r)
	}
	return roots
}
