// Package metadata parses the RFC 822 style key/value files found in a
// distribution's *.dist-info directory (METADATA, WHEEL).
//
// Field order and duplicate keys are preserved, since both are significant
// in distribution metadata (e.g. repeated Classifier fields).
package metadata

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a header line is not a field and not a
// continuation of the previous field.
var ErrMalformed = errors.New("metadata: malformed header line")

// Field is a single metadata field.
type Field struct {
	Key   string
	Value string
}

// Fields is an ordered sequence of metadata fields. Keys may repeat.
type Fields []Field

// Get returns the value of the first field with the given key.
// Key comparison is case-insensitive.
func (f Fields) Get(key string) (string, bool) {
	for _, fld := range f {
		if strings.EqualFold(fld.Key, key) {
			return fld.Value, true
		}
	}
	return "", false
}

// Values returns the values of every field with the given key, in order.
// Key comparison is case-insensitive.
func (f Fields) Values(key string) []string {
	var vals []string
	for _, fld := range f {
		if strings.EqualFold(fld.Key, key) {
			vals = append(vals, fld.Value)
		}
	}
	return vals
}

// Keys returns the field keys in order, including repeats.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, fld := range f {
		keys[i] = fld.Key
	}
	return keys
}

// Parse parses metadata text into ordered fields.
//
// Header lines have the form "Key: value". A line beginning with a space or
// tab continues the previous field's value. The first blank line ends the
// headers; any remaining text is the message body and is appended as a
// trailing Description field, matching how distribution metadata stores the
// long description.
func Parse(text string) (Fields, error) {
	var fields Fields

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inBody := false
	var body strings.Builder

	for sc.Scan() {
		line := sc.Text()

		if inBody {
			if body.Len() > 0 {
				body.WriteByte('\n')
			}
			body.WriteString(line)
			continue
		}

		if line == "" {
			inBody = true
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if len(fields) == 0 {
				return nil, fmt.Errorf("%w: continuation before any field: %q", ErrMalformed, line)
			}
			last := &fields[len(fields)-1]
			last.Value += "\n" + strings.TrimLeft(line, " \t")
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, line)
		}
		fields = append(fields, Field{Key: key, Value: strings.TrimSpace(value)})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if b := strings.TrimRight(body.String(), "\n"); b != "" {
		fields = append(fields, Field{Key: "Description", Value: b})
	}

	return fields, nil
}
