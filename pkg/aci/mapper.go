package aci

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Extractor converts one raw attribute value into a typed scalar. It must
// return an error wrapping ErrFieldType or ErrFieldRange when the value does
// not fit.
type Extractor[V any] = func(raw json.RawMessage) (V, error)

// FieldSpec is one row of a Mapper's decode table.
type FieldSpec[T any] struct {
	name     string
	required bool
	apply    func(dst *T, raw json.RawMessage) error
}

// Name returns the attribute name.
func (f FieldSpec[T]) Name() string {
	return f.name
}

// Required reports whether absence fails the decode.
func (f FieldSpec[T]) Required() bool {
	return f.required
}

// Field declares a required attribute, its extractor and where the value goes.
func Field[T, V any](name string, extract Extractor[V], set func(dst *T, value V)) FieldSpec[T] {
	return FieldSpec[T]{
		name:     name,
		required: true,
		apply: func(dst *T, raw json.RawMessage) error {
			value, err := extract(raw)
			if err != nil {
				return err
			}

			set(dst, value)

			return nil
		},
	}
}

// Optional marks a field whose absence (or null) leaves the zero value.
func Optional[T any](field FieldSpec[T]) FieldSpec[T] {
	field.required = false

	return field
}

// Mapper decodes class wrappers of one class into T. It is built once per
// target type and is safe for concurrent use.
type Mapper[T any] struct {
	class  string
	fields []FieldSpec[T]
}

// NewMapper builds the decode table for className.
func NewMapper[T any](className string, fields ...FieldSpec[T]) *Mapper[T] {
	return &Mapper[T]{
		class:  className,
		fields: slices.Clone(fields),
	}
}

// Class returns the class name this mapper decodes.
func (m *Mapper[T]) Class() string {
	return m.class
}

// Fields returns the declared attribute names in decode order.
func (m *Mapper[T]) Fields() []string {
	names := make([]string, 0, len(m.fields))
	for _, field := range m.fields {
		names = append(names, field.name)
	}

	return names
}

// Decode extracts every declared field from raw[class]["attributes"]. It
// stops at the first absent or mistyped field; the result is never partially
// populated.
func (m *Mapper[T]) Decode(raw json.RawMessage) (T, error) {
	var zero T

	attributes := m.attributes(raw)

	var out T

	for _, field := range m.fields {
		value, ok := attributes[field.name]
		if !ok || isNull(value) {
			if !field.required {
				continue
			}

			cause := ErrFieldAbsent
			if ok {
				cause = fmt.Errorf("%w: null", ErrFieldType)
			}

			return zero, &MappingError{Class: m.class, Field: field.name, Err: cause}
		}

		err := field.apply(&out, value)
		if err != nil {
			return zero, &MappingError{Class: m.class, Field: field.name, Err: err}
		}
	}

	return out, nil
}

// DecodeWrapper decodes an already parsed class wrapper.
func (m *Mapper[T]) DecodeWrapper(w ClassWrapper) (T, error) {
	raw, err := json.Marshal(w)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("encoding %s: %w", w.Class, err)
	}

	return m.Decode(raw)
}

// DecodeAll decodes every element of an imdata array.
func (m *Mapper[T]) DecodeAll(imdata json.RawMessage) ([]T, error) {
	var items []json.RawMessage

	err := json.Unmarshal(imdata, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing imdata: %w", err)
	}

	out := make([]T, 0, len(items))

	for i, item := range items {
		record, err := m.Decode(item)
		if err != nil {
			return nil, fmt.Errorf("imdata[%d]: %w", i, err)
		}

		out = append(out, record)
	}

	return out, nil
}

// attributes indexes raw[class]["attributes"]. Any shape mismatch yields an
// empty table so the first required field reports itself as absent.
func (m *Mapper[T]) attributes(raw json.RawMessage) map[string]json.RawMessage {
	var top map[string]json.RawMessage

	err := json.Unmarshal(raw, &top)
	if err != nil {
		return nil
	}

	var body map[string]json.RawMessage

	err = json.Unmarshal(top[m.class], &body)
	if err != nil {
		return nil
	}

	var attributes map[string]json.RawMessage

	err = json.Unmarshal(body[keyAttributes], &attributes)
	if err != nil {
		return nil
	}

	return attributes
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// jsonKind returns the first significant byte of a raw value.
func jsonKind(raw json.RawMessage) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}

	return trimmed[0]
}

func typeError(want string, raw json.RawMessage) error {
	return fmt.Errorf("%w: want %s, got %s", ErrFieldType, want, bytes.TrimSpace(raw))
}

// String requires a JSON string.
func String(raw json.RawMessage) (string, error) {
	if jsonKind(raw) != '"' {
		return "", typeError("string", raw)
	}

	var value string

	err := json.Unmarshal(raw, &value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFieldType, err)
	}

	return value, nil
}

// number requires a JSON number and returns its literal text.
func number(raw json.RawMessage) (json.Number, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var value interface{}

	err := decoder.Decode(&value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFieldType, err)
	}

	n, ok := value.(json.Number)
	if !ok {
		return "", typeError("number", raw)
	}

	return n, nil
}

// Uint requires a JSON number representable as a non-negative integer.
func Uint(raw json.RawMessage) (uint64, error) {
	n, err := number(raw)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an unsigned integer", ErrFieldRange, n)
	}

	return value, nil
}

// Int requires a JSON number representable as a signed integer.
func Int(raw json.RawMessage) (int64, error) {
	n, err := number(raw)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrFieldRange, n)
	}

	return value, nil
}

// Bool requires a JSON boolean.
func Bool(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, typeError("boolean", raw)
	}
}

// NumericString requires a JSON string holding an unsigned integer. The
// controller encodes most counters this way ("bytes": "500").
func NumericString(raw json.RawMessage) (uint64, error) {
	text, err := String(raw)
	if err != nil {
		return 0, err
	}

	value, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrFieldRange, text)
	}

	return value, nil
}

// UintOrNumericString accepts either encoding of an unsigned counter: a JSON
// number or a string holding the digits.
func UintOrNumericString(raw json.RawMessage) (uint64, error) {
	if jsonKind(raw) == '"' {
		return NumericString(raw)
	}

	return Uint(raw)
}

// Enum returns a string extractor that accepts only the given values.
func Enum(allowed ...string) Extractor[string] {
	return func(raw json.RawMessage) (string, error) {
		value, err := String(raw)
		if err != nil {
			return "", err
		}

		if !slices.Contains(allowed, value) {
			return "", fmt.Errorf("%w: %q not in %v", ErrFieldRange, value, allowed)
		}

		return value, nil
	}
}
