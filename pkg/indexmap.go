// Package pkg is a package that provides utilities for covfold.
package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Map is a generic map that remembers the order in which keys were first
// inserted. The merge engine depends on key order, so coverage data is never
// stored in plain Go maps.
//
// Like a built-in map, a copied Map shares its underlying storage.
type Map[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

// NewMap creates an empty ordered map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{vals: make(map[K]V)}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.vals[key]
	return ok
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	value, ok := m.vals[key]
	return value, ok
}

// Set stores value under key. A new key is appended to the iteration order;
// an existing key keeps its position.
func (m *Map[K, V]) Set(key K, value V) {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}

	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.vals[key] = value
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// Range calls f for every entry in insertion order and stops at the first
// error, which is returned.
func (m *Map[K, V]) Range(f func(key K, value V) error) error {
	for _, key := range m.keys {
		if err := f(key, m.vals[key]); err != nil {
			return err
		}
	}

	return nil
}

// IntMap is an ordered map with integer keys that marshals to a JSON object
// with stringified keys, preserving key order in both directions. This is the
// shape coverage records use on the wire ({"0": ..., "1": ...}).
type IntMap[V any] struct {
	Map[int, V]
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m IntMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(strconv.Quote(strconv.Itoa(key)))
		buf.WriteByte(':')

		encoded, err := json.Marshal(m.vals[key])
		if err != nil {
			return nil, fmt.Errorf("failed to encode value for key %d: %w", key, err)
		}

		buf.Write(encoded)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the document's key order.
func (m *IntMap[V]) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.vals = make(map[int]V)

	dec := json.NewDecoder(bytes.NewReader(data))

	open, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode map: %w", err)
	}

	if delim, ok := open.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", open)
	}

	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode map key: %w", err)
		}

		raw, ok := token.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", token)
		}

		key, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("non-integer key %q: %w", raw, err)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value for key %q: %w", raw, err)
		}

		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to decode map: %w", err)
	}

	return nil
}
