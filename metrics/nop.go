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

package metrics

// nopRegistryMetrics is a no-op implementation of RegistryMetrics.
type nopRegistryMetrics struct{}

func (nopRegistryMetrics) TypeRegistered(string)   {}
func (nopRegistryMetrics) DuplicateSkipped(string) {}
func (nopRegistryMetrics) Lookup(bool)             {}
func (nopRegistryMetrics) Types(int)               {}

// NopRegistryMetrics returns a no-op RegistryMetrics implementation.
func NopRegistryMetrics() RegistryMetrics { return nopRegistryMetrics{} }
