/*
 * MIT License
 *
 * Copyright (c) 2026 Orchd Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package codec converts typed configuration records to and from a
// portable byte format. The set of record types it will encode or decode
// is bounded by a Registry fixed at construction time: the registry is a
// security boundary against materializing arbitrary types from persisted
// bytes.
package codec

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Registry is the closed set of record types the codec is permitted to
// encode and decode. It is immutable once built; production code holds a
// single registry enumerating the data model, tests build their own.
type Registry struct {
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// NewRegistry builds a registry from struct specimens (values or
// pointers). Each type is keyed on the wire by its lowercased type name.
// Registering a non-struct specimen panics: membership is enumerated at
// compile time and a bad specimen is a programming error.
func NewRegistry(specimens ...any) *Registry {
	r := &Registry{
		byName: make(map[string]reflect.Type, len(specimens)),
		byType: make(map[reflect.Type]string, len(specimens)),
	}
	for _, specimen := range specimens {
		r.register(specimen)
	}
	return r
}

func (r *Registry) register(specimen any) {
	t := reflect.TypeOf(specimen)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("codec: cannot register non-struct specimen %T", specimen))
	}
	name := strings.ToLower(t.Name())
	r.byName[name] = t
	r.byType[t] = name
}

// Lookup resolves a wire type tag to its record type.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	t, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// NameOf returns the wire type tag under which the given type is
// registered.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	name, ok := r.byType[t]
	return name, ok
}

// Contains reports whether the given type belongs to the registry.
func (r *Registry) Contains(t reflect.Type) bool {
	_, ok := r.byType[t]
	return ok
}

// Names returns the sorted wire tags of every registered type.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
