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

// Config holds the runtime knobs a Registry uses when it maps a Go value or
// type onto a registered descriptor. It is a plain value: copy it freely and
// never mutate a Config a Registry was built with.
type Config struct {
	// IncludeBuiltins lets the reflection strategy name predeclared types
	// such as int. Without it they resolve to "" and Describe fails with a
	// not-found error.
	IncludeBuiltins bool `yaml:"include_builtins"`

	// MaxUnwrap bounds how many pointer, slice, array, chan and map layers
	// are peeled off a type before it is compared with registered owners.
	// Zero selects the default depth.
	MaxUnwrap int `yaml:"max_unwrap"`

	// MapPreferElem picks the value side of map[K]V as the owner when both
	// sides are named. Otherwise the key side wins.
	MapPreferElem bool `yaml:"map_prefer_elem"`
}
