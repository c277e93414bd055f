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

package accessor

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/erased"
)

var errorType = reflect.TypeFor[error]()

// Method is an apis.MethodAccessor bound to a method expression.
//
// A method expression with a pointer receiver, (*T).M, binds a mutable
// method: Invoke passes the instance pointer through. A value receiver, T.M,
// binds a const method: Invoke passes a copy of the instance.
type Method struct {
	name    string
	owner   reflect.Type
	fn      reflect.Value
	sig     reflect.Type
	isConst bool
	arity   int
	// errOut is set when the last result is an error.
	errOut bool
	// result is set when the method has a non-error result.
	result bool
}

// Ensure Method implements apis.MethodAccessor.
var _ apis.MethodAccessor = (*Method)(nil)

// NewMethod binds fn, a method expression of owner, under name.
//
// fn may return nothing, one value, an error, or one value followed by an
// error. Variadic functions are not supported.
func NewMethod(owner reflect.Type, name string, fn any) (*Method, error) {
	if owner == nil {
		return nil, fmt.Errorf("%s: %w: nil owner", name, ErrReceiverType)
	}
	if owner.Kind() == reflect.Pointer {
		owner = owner.Elem()
	}
	rv := reflect.ValueOf(fn)
	if !rv.IsValid() || rv.Kind() != reflect.Func || rv.IsNil() {
		return nil, fmt.Errorf("%s: %w: %T is not a function", name, ErrUnsupportedSignature, fn)
	}
	sig := rv.Type()
	if sig.IsVariadic() {
		return nil, fmt.Errorf("%s: %w: variadic %s", name, ErrUnsupportedSignature, sig)
	}
	if sig.NumIn() == 0 {
		return nil, fmt.Errorf("%s: %w: %s has no receiver", name, ErrReceiverType, sig)
	}

	m := &Method{name: name, owner: owner, fn: rv, sig: sig, arity: sig.NumIn() - 1}
	switch sig.In(0) {
	case owner:
		m.isConst = true
	case reflect.PointerTo(owner):
	default:
		return nil, fmt.Errorf("%s: %w: have %s, want %s or *%s", name, ErrReceiverType, sig.In(0), owner, owner)
	}

	outs := sig.NumOut()
	if outs > 0 && sig.Out(outs-1) == errorType {
		m.errOut = true
		outs--
	}
	switch outs {
	case 0:
	case 1:
		m.result = true
	default:
		return nil, fmt.Errorf("%s: %w: %d results in %s", name, ErrUnsupportedSignature, sig.NumOut(), sig)
	}
	return m, nil
}

// Name returns the registered method name.
func (m *Method) Name() string { return m.name }

// Owner returns the receiver base type.
func (m *Method) Owner() reflect.Type { return m.owner }

// Arity returns the number of arguments, receiver excluded.
func (m *Method) Arity() int { return m.arity }

// IsConst reports whether the method has a value receiver.
func (m *Method) IsConst() bool { return m.isConst }

// Signature returns the method expression type.
func (m *Method) Signature() reflect.Type { return m.sig }

// Invoke calls the method on instance with args.
func (m *Method) Invoke(instance any, args ...erased.Value) (erased.Value, error) {
	if len(args) != m.arity {
		return erased.Value{}, &ArityError{Method: m.qualified(), Want: m.arity, Got: len(args)}
	}

	in := make([]reflect.Value, 0, m.arity+1)
	recv, err := m.receiver(instance)
	if err != nil {
		return erased.Value{}, err
	}
	in = append(in, recv)
	for i, arg := range args {
		v, err := arg.Reconstruct(m.sig.In(i + 1))
		if err != nil {
			return erased.Value{}, &ArgumentError{Method: m.qualified(), Index: i, Err: err}
		}
		in = append(in, v)
	}

	out := m.fn.Call(in)
	if m.errOut {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return erased.Value{}, fmt.Errorf("%s: %w", m.qualified(), err)
		}
	}
	if !m.result {
		return erased.Value{}, nil
	}
	return erased.FromReflect(out[0]), nil
}

func (m *Method) receiver(instance any) (reflect.Value, error) {
	want := m.sig.In(0)
	if ev, ok := instance.(erased.Value); ok {
		v, err := ev.Reconstruct(want)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%s: %w: %w", m.qualified(), ErrInstanceType, err)
		}
		if v.Kind() == reflect.Pointer && v.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", m.qualified(), ErrNilInstance)
		}
		return v, nil
	}

	rv := reflect.ValueOf(instance)
	if !rv.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s: %w", m.qualified(), ErrNilInstance)
	}
	switch rv.Type() {
	case reflect.PointerTo(m.owner):
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s: %w", m.qualified(), ErrNilInstance)
		}
		if m.isConst {
			return rv.Elem(), nil
		}
		return rv, nil
	case m.owner:
		if m.isConst {
			return rv, nil
		}
	}
	return reflect.Value{}, fmt.Errorf("%s: %w: have %T, want *%s", m.qualified(), ErrInstanceType, instance, m.owner)
}

func (m *Method) qualified() string {
	return m.owner.Name() + "." + m.name
}

// Call invokes m with plain Go values. Arguments that are not already
// erased.Value are wrapped as owned copies.
func Call(m apis.MethodAccessor, instance any, args ...any) (erased.Value, error) {
	wrapped := make([]erased.Value, len(args))
	for i, a := range args {
		wrapped[i] = erased.Of(a)
	}
	return m.Invoke(instance, wrapped...)
}
