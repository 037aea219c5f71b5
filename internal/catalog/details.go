package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Structural fields carry the track title, album title, and release date.
// They are excluded from shortcut generation and from detail display.
const (
	FieldTrack = "track"
	FieldAlbum = "album"
	FieldDate  = "date"
)

// IsStructuralField reports whether name is one of the structural fields.
func IsStructuralField(name string) bool {
	switch name {
	case FieldTrack, FieldAlbum, FieldDate:
		return true
	}
	return false
}

// Field is a single metadata entry of a track.
type Field struct {
	Key   string
	Value any
}

// Details is an insertion-ordered metadata record. Values are JSON scalars
// decoded with json.Number for numbers.
type Details []Field

// Get returns the value stored under key.
func (d Details) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String returns the stringified value stored under key, or "" when absent.
func (d Details) String(key string) string {
	if v, ok := d.Get(key); ok {
		return Stringify(v)
	}
	return ""
}

// Keys returns the field names in insertion order.
func (d Details) Keys() []string {
	keys := make([]string, len(d))
	for i, f := range d {
		keys[i] = f.Key
	}
	return keys
}

// Without returns a copy that omits the named fields.
func (d Details) Without(keys ...string) Details {
	out := make(Details, 0, len(d))
	for _, f := range d {
		skip := false
		for _, k := range keys {
			if f.Key == k {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a shallow copy.
func (d Details) Clone() Details {
	if d == nil {
		return nil
	}
	out := make(Details, len(d))
	copy(out, d)
	return out
}

// UnmarshalJSON decodes a JSON object keeping key order. Duplicate keys keep
// the first position and the last value, matching JavaScript object semantics.
func (d *Details) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("details: expected JSON object")
	}
	out := Details{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("details: unexpected key token %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("details: field %q: %w", key, err)
		}
		if pos, seen := index[key]; seen {
			out[pos].Value = value
			continue
		}
		index[key] = len(out)
		out = append(out, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// MarshalJSON encodes the record as a JSON object in insertion order.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("details: field %q: %w", f.Key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Stringify renders a field value the way search and display see it:
// strings verbatim, numbers in shortest decimal form (1.50 -> 1.5, 1e3 -> 1000), null as "null", arrays as
// comma-joined elements and objects as compact JSON.
func Stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return value.String()
		}
		return formatNumber(f)
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return formatNumber(value)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	case []any:
		parts := make([]string, len(value))
		for i, elem := range value {
			if elem == nil {
				continue
			}
			parts[i] = Stringify(elem)
		}
		return strings.Join(parts, ",")
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(encoded)
	}
}

// formatNumber prints f in shortest round-trip form, switching to exponent
// notation outside [1e-6, 1e21) with an unpadded exponent ("1e+21", "1e-7").
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exponent, _ := strings.Cut(s, "e")
	sign := exponent[:1]
	digits := strings.TrimLeft(exponent[1:], "0")
	return mantissa + "e" + sign + digits
}
