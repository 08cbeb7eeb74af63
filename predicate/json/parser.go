// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

// Package json implements a lenient view over decoded JSON objects. Every
// accessor returns a default instead of failing when a key is missing or
// holds a value of the wrong type.
package json

import (
	"bytes"
	gojson "encoding/json"
	"errors"
	"fmt"
)

var ErrNotAnObject = errors.New("json value is not an object")

type (
	DataMap  map[string]any
	DataList []any
)

// Parse decodes data into a DataMap. The document must hold a JSON object.
func Parse(data []byte) (DataMap, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	// Keep numbers as text, we never do math with them
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parsing raw json data: %w", err)
	}
	if dec.More() {
		return nil, errors.New("parsing raw json data: trailing data after document")
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotAnObject
	}
	return DataMap(m), nil
}

// GetMap returns the object stored at key or an empty map.
func (dm DataMap) GetMap(key string) DataMap {
	if m, ok := dm[key].(map[string]any); ok {
		return DataMap(m)
	}
	return DataMap{}
}

// GetList returns the array stored at key or an empty list.
func (dm DataMap) GetList(key string) DataList {
	if l, ok := dm[key].([]any); ok {
		return DataList(l)
	}
	return DataList{}
}

// GetString returns the string at key or def if missing or not a string.
func (dm DataMap) GetString(key, def string) string {
	if s, ok := dm[key].(string); ok {
		return s
	}
	return def
}

// GetStringPath walks a chain of objects and returns the string at the
// end of it, or def.
func (dm DataMap) GetStringPath(def string, keys ...string) string {
	if len(keys) == 0 {
		return def
	}
	m := dm
	for _, k := range keys[:len(keys)-1] {
		m = m.GetMap(k)
	}
	return m.GetString(keys[len(keys)-1], def)
}

// Map returns the element at position i as an object, or an empty map
// when out of range or not an object.
func (dl DataList) Map(i int) DataMap {
	if i < 0 || i >= len(dl) {
		return DataMap{}
	}
	if m, ok := dl[i].(map[string]any); ok {
		return DataMap(m)
	}
	return DataMap{}
}
