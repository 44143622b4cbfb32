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
	"time"

	"github.com/google/uuid"
)

// Decode parses a wire document and reconstructs the record it holds. The
// root of a document is always a discriminated record; each record's
// "$type" tag is resolved against the registry and its fields are rebuilt
// using the record's static field types.
//
// Decoding fails closed: a discriminator absent from the registry yields
// ErrUnknownTypeTag and no value of the unregistered type is ever
// constructed.
func Decode(reg *Registry, data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document root is not a record", ErrMalformedDocument)
	}
	return decodeRecord(reg, obj)
}

func decodeRecord(reg *Registry, obj map[string]any) (any, error) {
	tag, ok := obj[typeTag].(string)
	if !ok {
		return nil, fmt.Errorf("%w: record is missing its %q discriminator", ErrMalformedDocument, typeTag)
	}
	t, ok := reg.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypeTag, tag)
	}

	record := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, ok := fieldKey(field)
		if !ok {
			continue
		}
		rawField, present := obj[key]
		if !present {
			continue
		}
		value, err := decodeInto(reg, rawField, field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q of record %q: %w", key, tag, err)
		}
		record.Field(i).Set(value)
	}
	return record.Interface(), nil
}

// decodeInto rebuilds raw (a generic parsed JSON value) as a value of the
// target type.
func decodeInto(reg *Registry, raw any, t reflect.Type) (reflect.Value, error) {
	switch t {
	case uuidType:
		return decodeUUID(raw)
	case timeType:
		return decodeTimestamp(raw)
	}

	switch t.Kind() {
	case reflect.Pointer:
		if raw == nil {
			return reflect.Zero(t), nil
		}
		ptr := reflect.New(t.Elem())
		elem, err := decodeInto(reg, raw, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a record, got %T", ErrMalformedDocument, raw)
		}
		record, err := decodeRecord(reg, obj)
		if err != nil {
			return reflect.Value{}, err
		}
		rv := reflect.ValueOf(record)
		if !rv.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("%w: record of type %s where %s was expected", ErrMalformedDocument, rv.Type(), t)
		}
		return rv, nil
	case reflect.Map:
		return decodeMapInto(reg, raw, t)
	case reflect.Slice:
		items, ok := raw.([]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a sequence, got %T", ErrMalformedDocument, raw)
		}
		out := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			value, err := decodeInto(reg, item, t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(value)
		}
		return out, nil
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a boolean, got %T", ErrMalformedDocument, raw)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := raw.(float64)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a number, got %T", ErrMalformedDocument, raw)
		}
		out := reflect.New(t).Elem()
		out.SetInt(int64(f))
		return out, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := raw.(float64)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a number, got %T", ErrMalformedDocument, raw)
		}
		out := reflect.New(t).Elem()
		out.SetUint(uint64(f))
		return out, nil
	case reflect.Float32, reflect.Float64:
		f, ok := raw.(float64)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a number, got %T", ErrMalformedDocument, raw)
		}
		out := reflect.New(t).Elem()
		out.SetFloat(f)
		return out, nil
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: expected a string, got %T", ErrMalformedDocument, raw)
		}
		return reflect.ValueOf(s).Convert(t), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: cannot decode into kind %s", ErrMalformedDocument, t.Kind())
	}
}

func decodeMapInto(reg *Registry, raw any, t reflect.Type) (reflect.Value, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: expected a mapping, got %T", ErrMalformedDocument, raw)
	}

	out := reflect.MakeMapWithSize(t, len(obj))

	tag, tagged := obj[typeTag].(string)
	if tagged {
		if tag != mapTag {
			return reflect.Value{}, fmt.Errorf("%w: record of type %q where a mapping was expected", ErrMalformedDocument, tag)
		}
		items, ok := obj["items"].([]any)
		if !ok {
			return reflect.Value{}, fmt.Errorf("%w: tagged mapping has no items list", ErrMalformedDocument)
		}
		for _, item := range items {
			pair, ok := item.([]any)
			if !ok || len(pair) != 2 {
				return reflect.Value{}, fmt.Errorf("%w: mapping item is not a key-value pair", ErrMalformedDocument)
			}
			key, err := decodeInto(reg, pair[0], t.Key())
			if err != nil {
				return reflect.Value{}, err
			}
			value, err := decodeInto(reg, pair[1], t.Elem())
			if err != nil {
				return reflect.Value{}, err
			}
			out.SetMapIndex(key, value)
		}
		return out, nil
	}

	if t.Key().Kind() != reflect.String {
		return reflect.Value{}, fmt.Errorf("%w: plain object for mapping with %s keys", ErrMalformedDocument, t.Key())
	}
	for k, v := range obj {
		value, err := decodeInto(reg, v, t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), value)
	}
	return out, nil
}

func decodeUUID(raw any) (reflect.Value, error) {
	obj, ok := raw.(map[string]any)
	if !ok || obj[typeTag] != uuidTag {
		return reflect.Value{}, fmt.Errorf("%w: expected a tagged uuid", ErrMalformedDocument)
	}
	text, ok := obj["value"].(string)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: uuid value is not a string", ErrMalformedDocument)
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return reflect.ValueOf(id), nil
}

func decodeTimestamp(raw any) (reflect.Value, error) {
	obj, ok := raw.(map[string]any)
	if !ok || obj[typeTag] != timeTag {
		return reflect.Value{}, fmt.Errorf("%w: expected a tagged timestamp", ErrMalformedDocument)
	}
	text, ok := obj["value"].(string)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: timestamp value is not a string", ErrMalformedDocument)
	}
	ts, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return reflect.ValueOf(ts.UTC()), nil
}
