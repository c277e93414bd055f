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

package apis

// Namer lets a value declare the name its type was registered under.
//
// When a value implements Namer, Registry.Describe uses EntityName directly
// and does not consult the owner-type index or derive a name by reflection.
// This is the escape hatch for types registered under a name that differs
// from their Go identifier (for example via a `name=` marker argument).
//
// EntityName is a type-level contract: it MUST NOT depend on instance state,
// MUST be non-empty and MUST be safe for concurrent calls.
type Namer interface {
	// EntityName returns the registered type name for this value's type.
	EntityName() string
}
