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

package extract

import "strings"

// SplitContainer reports whether typeText names a sequence and returns its
// element type. "[]E" yields "E". A bracketed prefix such as "Seq[" yields
// the text between the first "[" and the last "]". Only one level is
// stripped, so "[][]int" yields "[]int". Malformed nesting or an empty
// payload yields ("", false).
func SplitContainer(typeText string, prefixes []string) (string, bool) {
	typeText = strings.TrimSpace(typeText)
	for _, p := range prefixes {
		if p == "" || !strings.HasPrefix(typeText, p) {
			continue
		}
		if p == "[]" {
			elem := typeText[2:]
			if elem == "" || !balanced(elem) {
				return "", false
			}
			return elem, true
		}
		open := strings.IndexByte(typeText, '[')
		end := strings.LastIndexByte(typeText, ']')
		if end != len(typeText)-1 || end <= open+1 {
			return "", false
		}
		elem := typeText[open+1 : end]
		if !balanced(elem) {
			return "", false
		}
		return elem, true
	}
	return "", false
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
