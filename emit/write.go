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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFiles writes every file whose content differs from what is on disk
// and returns how many were written. Unchanged files are left untouched so
// their modification times survive repeated runs.
func WriteFiles(files []File, log *slog.Logger) (int, error) {
	if log == nil {
		log = slog.Default()
	}
	var (
		written int
		errs    []error
	)
	for _, f := range files {
		old, err := os.ReadFile(f.Path)
		if err == nil && bytes.Equal(old, f.Content) {
			log.Debug("unchanged", slog.String("file", f.Path))
			continue
		}
		if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
			errs = append(errs, fmt.Errorf("rtti(emit): %w", err))
			continue
		}
		if err := os.WriteFile(f.Path, f.Content, 0o644); err != nil {
			errs = append(errs, fmt.Errorf("rtti(emit): %w", err))
			continue
		}
		written++
		log.Info("wrote", slog.String("file", f.Path), slog.Int("bytes", len(f.Content)))
	}
	return written, errors.Join(errs...)
}
