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

package rtti

import (
	"errors"
	"fmt"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/registry"
)

var (
	// ErrNilPopulate is returned when Bootstrap is given no populate function.
	ErrNilPopulate = errors.New("rtti: nil populate function")
)

// PopulateFunc fills a registry, usually a generated RegisterAll.
type PopulateFunc func(reg apis.Registry) error

// Bootstrap is the startup sequence of the runtime registry: it constructs a
// registry from cfg and opts, runs populate exactly once and freezes the
// result.
//
// A registry with no types is valid. If populate fails the registry is
// cleared and the error is returned.
func Bootstrap(cfg apis.Config, populate PopulateFunc, opts ...registry.Option) (apis.Registry, error) {
	if populate == nil {
		return nil, ErrNilPopulate
	}
	reg := registry.New(cfg, opts...)
	if err := populate(reg); err != nil {
		reg.Clear()
		return nil, fmt.Errorf("rtti: populate registry: %w", err)
	}
	reg.Freeze()
	return reg, nil
}
