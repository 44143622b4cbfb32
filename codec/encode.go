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

package codec

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// typeTag is the per-object discriminator key in the wire format.
const typeTag = "$type"

// Builtin discriminators. These leaf encodings are always permitted and
// are not subject to registry membership.
const (
	mapTag  = "map"
	uuidTag = "uuid"
	timeTag = "timestamp"
)

var (
	uuidType = reflect.TypeOf(uuid.UUID{})
	timeType = reflect.TypeOf(time.Time{})
)

// Encode serializes a record built from the registry's permitted types
// into canonical JSON. Records carry a "$type" discriminator; mappings
// with non-string keys are encoded as tagged key-value pair lists so the
// key type round-trips exactly. The output is deterministic: object keys
// and pair lists are sorted.
//
// Encoding fails with ErrTypeNotSerializable when any reachable value's
// type is outside the registry; no partial bytes are returned.
func Encode(reg *Registry, value any) ([]byte, error) {
	tree, err := encodeValue(reg, reflect.ValueOf(value))
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

func encodeValue(reg *Registry, rv reflect.Value) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	switch rv.Type() {
	case uuidType:
		id := rv.Interface().(uuid.UUID)
		return map[string]any{typeTag: uuidTag, "value": id.String()}, nil
	case timeType:
		ts := rv.Interface().(time.Time)
		return map[string]any{typeTag: timeTag, "value": ts.UTC().Format(time.RFC3339Nano)}, nil
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return encodeValue(reg, rv.Elem())
	case reflect.Struct:
		return encodeRecord(reg, rv)
	case reflect.Map:
		return encodeMap(reg, rv)
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item, err := encodeValue(reg, rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported kind %s", ErrTypeNotSerializable, rv.Kind())
	}
}

func encodeRecord(reg *Registry, rv reflect.Value) (any, error) {
	t := rv.Type()
	name, ok := reg.NameOf(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotSerializable, t)
	}

	obj := map[string]any{typeTag: name}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, ok := fieldKey(field)
		if !ok {
			continue
		}
		encoded, err := encodeValue(reg, rv.Field(i))
		if err != nil {
			return nil, err
		}
		obj[key] = encoded
	}
	return obj, nil
}

// encodeMap turns string-keyed mappings into plain JSON objects and
// everything else into the tagged pair-list form. A string-keyed mapping
// that happens to contain the discriminator key also takes the pair-list
// form so decoding cannot mistake it for a record.
func encodeMap(reg *Registry, rv reflect.Value) (any, error) {
	if rv.Type().Key().Kind() == reflect.String && !hasReservedKey(rv) {
		obj := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			encoded, err := encodeValue(reg, iter.Value())
			if err != nil {
				return nil, err
			}
			obj[iter.Key().String()] = encoded
		}
		return obj, nil
	}

	type pair struct {
		sortKey string
		item    []any
	}
	pairs := make([]pair, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		encodedKey, err := encodeValue(reg, iter.Key())
		if err != nil {
			return nil, err
		}
		encodedValue, err := encodeValue(reg, iter.Value())
		if err != nil {
			return nil, err
		}
		rawKey, err := json.Marshal(encodedKey)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{sortKey: string(rawKey), item: []any{encodedKey, encodedValue}})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].sortKey < pairs[j].sortKey })

	items := make([]any, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, p.item)
	}
	return map[string]any{typeTag: mapTag, "items": items}, nil
}

func hasReservedKey(rv reflect.Value) bool {
	iter := rv.MapRange()
	for iter.Next() {
		if iter.Key().String() == typeTag {
			return true
		}
	}
	return false
}

// fieldKey derives the wire key of a struct field from its json tag,
// falling back to the lowercased field name. Fields tagged "-" are
// skipped.
func fieldKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "-":
		return "", false
	case "":
		return strings.ToLower(field.Name), true
	default:
		return name, true
	}
}
