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
	"fmt"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"dirpx.dev/rtti/extract"
)

// invalidEnumerator returns the enumerator FromString falls back to:
// the configured name, or the enum name followed by it.
func (e *Emitter) invalidEnumerator(en *extract.EnumDescription) (string, error) {
	bare := e.cfg.InvalidEnumerator
	if en.Has(bare) {
		return bare, nil
	}
	if prefixed := en.Name + bare; en.Has(prefixed) {
		return prefixed, nil
	}
	return "", fmt.Errorf("%w: %s must declare %s or %s%s",
		ErrMissingInvalidEnumerator, en.Name, bare, en.Name, bare)
}

// enumFile renders String, <Enum>FromString and <Enum>Values into the
// enum's own package. Dispatch is a chain of ifs so enumerators sharing a
// value resolve to the first one declared.
func (e *Emitter) enumFile(en *extract.EnumDescription) (File, error) {
	invalid, err := e.invalidEnumerator(en)
	if err != nil {
		return File{}, err
	}
	path := filepath.Join(en.Dir, SnakeCase(en.Name)+GeneratedSuffix)

	f := jen.NewFilePathName(en.ImportPath, en.Package)
	f.HeaderComment(header)

	recv := freeName(en.Enumerators, "v", "val", "value")
	var toString []jen.Code
	for _, name := range en.Enumerators {
		toString = append(toString, jen.If(jen.Id(recv).Op("==").Id(name)).Block(jen.Return(jen.Lit(name))))
	}
	toString = append(toString, jen.Return(jen.Lit(e.cfg.UnknownString)))

	f.Commentf("String returns the name of %s, or %q for undeclared values.", recv, e.cfg.UnknownString)
	f.Func().Params(jen.Id(recv).Id(en.Name)).Id("String").Params().String().Block(toString...)

	arg := freeName(en.Enumerators, "s", "str", "text")
	var fromString []jen.Code
	for _, name := range en.Enumerators {
		fromString = append(fromString, jen.If(jen.Id(arg).Op("==").Lit(name)).Block(jen.Return(jen.Id(name))))
	}
	fromString = append(fromString, jen.Return(jen.Id(invalid)))

	fn := en.Name + "FromString"
	f.Commentf("%s returns the %s named %s, or %s when there is none.", fn, en.Name, arg, invalid)
	f.Func().Id(fn).Params(jen.Id(arg).String()).Id(en.Name).Block(fromString...)

	values := make([]jen.Code, 0, len(en.Enumerators))
	for _, name := range en.Enumerators {
		values = append(values, jen.Id(name))
	}
	fn = en.Name + "Values"
	f.Commentf("%s returns every %s in declaration order.", fn, en.Name)
	f.Func().Id(fn).Params().Index().Id(en.Name).Block(
		jen.Return(jen.Index().Id(en.Name).Values(values...)),
	)

	return render(f, path)
}

// freeName returns the first candidate that does not collide with taken.
func freeName(taken []string, candidates ...string) string {
	for _, c := range candidates {
		clash := false
		for _, t := range taken {
			if t == c {
				clash = true
				break
			}
		}
		if !clash {
			return c
		}
	}
	return candidates[len(candidates)-1] + "_"
}
