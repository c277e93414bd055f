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

// Package gomod locates the enclosing Go module of a directory and maps
// directories inside it to import paths.
package gomod

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var (
	// ErrNoModule is returned when no go.mod is found up to the filesystem root.
	ErrNoModule = errors.New("rtti(gomod): no go.mod found")
	// ErrNoModuleLine is returned when go.mod has no module directive.
	ErrNoModuleLine = errors.New("rtti(gomod): go.mod has no module directive")
	// ErrOutsideModule is returned when a directory is not below the module root.
	ErrOutsideModule = errors.New("rtti(gomod): directory is outside the module")
)

// Module is a Go module rooted at Dir with module path Path.
type Module struct {
	Dir  string
	Path string
}

// Find walks up from dir to the nearest go.mod.
func Find(dir string) (Module, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Module{}, fmt.Errorf("rtti(gomod): %w", err)
	}
	for d := abs; ; {
		gomod := filepath.Join(d, "go.mod")
		if _, err := os.Stat(gomod); err == nil {
			p, err := ReadPath(gomod)
			if err != nil {
				return Module{}, err
			}
			return Module{Dir: d, Path: p}, nil
		}
		parent := filepath.Dir(d)
		if parent == d {
			return Module{}, fmt.Errorf("%w: above %s", ErrNoModule, abs)
		}
		d = parent
	}
}

// ReadPath returns the module path declared in the go.mod file at file.
func ReadPath(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("rtti(gomod): %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "module"); ok && rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
			if i := strings.Index(rest, "//"); i >= 0 {
				rest = rest[:i]
			}
			return strings.Trim(strings.TrimSpace(rest), `"`), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("rtti(gomod): read %s: %w", file, err)
	}
	return "", fmt.Errorf("%w: %s", ErrNoModuleLine, file)
}

// ImportPath returns the import path of dir, which must be m.Dir or below it.
func (m Module) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("rtti(gomod): %w", err)
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s not in %s", ErrOutsideModule, abs, m.Dir)
	}
	if rel == "." {
		return m.Path, nil
	}
	return path.Join(m.Path, filepath.ToSlash(rel)), nil
}
