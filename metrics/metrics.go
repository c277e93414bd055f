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

// Package metrics declares the instrumentation hooks of the runtime registry
// so that a backend (Prometheus, StatsD, ...) can be plugged in without the
// registry importing it.
package metrics

// RegistryMetrics receives registry events. All methods are safe for
// concurrent use.
type RegistryMetrics interface {
	// TypeRegistered is called once per newly registered type name.
	TypeRegistered(name string)
	// DuplicateSkipped is called when a registration is ignored because
	// the name is already present.
	DuplicateSkipped(name string)
	// Lookup is called for every name or type lookup.
	Lookup(hit bool)
	// Types reports the number of registered types after every change.
	Types(count int)
}
