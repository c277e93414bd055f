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

package gomod

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte(body), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "engine", "scene"), 0o755))
	return root
}

func TestFind(t *testing.T) {
	root := writeModule(t, "// engine module\nmodule example.com/engine // main\n\ngo 1.25\n")

	m, err := Find(filepath.Join(root, "engine", "scene"))
	require.NoError(t, err)

	wantDir, _ := filepath.Abs(root)
	assert.Equal(t, wantDir, m.Dir)
	assert.Equal(t, "example.com/engine", m.Path)

	ip, err := m.ImportPath(filepath.Join(root, "engine", "scene"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/engine/engine/scene", ip)

	ip, err = m.ImportPath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/engine", ip)
}

func TestReadPath_Quoted(t *testing.T) {
	root := writeModule(t, "module \"example.com/quoted\"\n")
	p, err := ReadPath(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/quoted", p)
}

func TestReadPath_NoDirective(t *testing.T) {
	root := writeModule(t, "go 1.25\nmodulex foo\n")
	_, err := ReadPath(filepath.Join(root, "go.mod"))
	assert.ErrorIs(t, err, ErrNoModuleLine)
}

func TestImportPath_Outside(t *testing.T) {
	root := writeModule(t, "module example.com/engine\n")
	m, err := Find(root)
	require.NoError(t, err)

	_, err = m.ImportPath(filepath.Dir(root))
	assert.ErrorIs(t, err, ErrOutsideModule)
}
