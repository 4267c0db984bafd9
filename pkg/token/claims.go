package token

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"strings"

	"github.com/tidwall/gjson"
)

// Registered claim names handled by the codec
const (
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
	ClaimNotBefore = "nbf"
	ClaimID        = "jti"
)

// Map is a string-keyed map that remembers insertion order.
// It is used for both token headers and claims so that encoded tokens
// keep the order the caller chose. The zero value is ready to use and a
// nil *Map reads as empty.
type Map struct {
	keys   []string
	values map[string]interface{}
}

// NewMap creates an empty Map
func NewMap() *Map {
	return &Map{values: make(map[string]interface{})}
}

// Set stores value under key. Existing keys keep their position.
func (m *Map) Set(key string, value interface{}) {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Map) Get(key string) (interface{}, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]
	return value, ok
}

func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// All iterates over the entries in insertion order
func (m *Map) All() iter.Seq2[string, interface{}] {
	return func(yield func(string, interface{}) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns a copy of m. Nested maps are copied as well.
func (m *Map) Clone() *Map {
	clone := NewMap()
	for k, v := range m.All() {
		if nested, ok := v.(*Map); ok {
			v = nested.Clone()
		}
		clone.Set(k, v)
	}
	return clone
}

// MarshalJSON encodes the entries in insertion order without HTML escaping
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		trimNewline(&buf)
		buf.WriteByte(':')
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode %q: %w", k, err)
		}
		trimNewline(&buf)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of m with a JSON object
func (m *Map) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMap(data)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// String renders the map as {key=value, key2=value2}
func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	i := 0
	for k, v := range m.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		i++
		sb.WriteString(k)
		sb.WriteByte('=')
		writeValue(&sb, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

func writeValue(sb *strings.Builder, v interface{}) {
	switch val := v.(type) {
	case nil:
		sb.WriteString("null")
	case []interface{}:
		sb.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, item)
		}
		sb.WriteByte(']')
	default:
		fmt.Fprint(sb, val)
	}
}

func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}

// ParseMap decodes a JSON object keeping the document order of its keys.
// Numbers are kept as json.Number, nested objects become *Map.
func ParseMap(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidClaims)
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidClaims)
	}

	return mapFromResult(result), nil
}

func mapFromResult(result gjson.Result) *Map {
	m := NewMap()
	result.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), valueFromResult(value))
		return true
	})
	return m
}

func valueFromResult(value gjson.Result) interface{} {
	switch value.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(value.Raw)
	case gjson.String:
		return value.Str
	}

	if value.IsObject() {
		return mapFromResult(value)
	}
	items := value.Array()
	out := make([]interface{}, len(items))
	for i, item := range items {
		out[i] = valueFromResult(item)
	}
	return out
}
