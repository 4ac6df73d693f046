package resource

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/totegamma/charsheet/core"
)

type FieldType int

const (
	FieldString FieldType = iota
	FieldInteger
	FieldBoolean
	FieldEnum
)

// Field describes one writable attribute of a kind.
// Name is both the JSON key and the column name.
type Field struct {
	Name     string
	Type     FieldType
	Nullable bool
	Enum     *core.Enum
}

// Schema is the ordered list of writable fields of a kind
type Schema []Field

var booleanTokens = map[string]bool{
	"0":     false,
	"1":     true,
	"false": false,
	"true":  true,
}

// Coerce converts a decoded request value into the value stored for the field.
// value must not be nil.
func (f Field) Coerce(value any) (any, error) {
	switch f.Type {
	case FieldString:
		switch v := value.(type) {
		case string:
			return v, nil
		case json.Number:
			return v.String(), nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(v), nil
		}

	case FieldInteger:
		switch v := value.(type) {
		case json.Number:
			if i, err := v.Int64(); err == nil {
				return i, nil
			}
			if fl, err := v.Float64(); err == nil {
				return integral(fl)
			}
		case float64:
			return integral(v)
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err == nil {
				return i, nil
			}
		}

	case FieldBoolean:
		var token string
		switch v := value.(type) {
		case string:
			token = v
		case bool:
			token = strconv.FormatBool(v)
		default:
			return nil, core.NewErrorBadRequest("%s must be one of 0, 1, false, true", f.Name)
		}
		b, ok := booleanTokens[token]
		if !ok {
			return nil, core.NewErrorBadRequest("%s must be one of 0, 1, false, true", f.Name)
		}
		return b, nil

	case FieldEnum:
		if symbol, ok := value.(string); ok {
			if _, ok := f.Enum.Value(symbol); ok {
				return symbol, nil
			}
		}
		return nil, core.NewErrorBadRequest("%s must be one of %s", f.Name, strings.Join(f.Enum.Symbols(), ", "))
	}

	return nil, core.NewErrorBadRequest("invalid value for %s", f.Name)
}

func integral(f float64) (any, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, core.NewErrorBadRequest("not an integer")
	}
	return int64(f), nil
}

// ForCreate coerces the provided fields.
// Absent and null fields are left out so the column defaults apply.
func (s Schema) ForCreate(fields map[string]any) (map[string]any, error) {
	values := map[string]any{}
	for _, field := range s {
		value, ok := fields[field.Name]
		if !ok || value == nil {
			continue
		}
		coerced, err := field.Coerce(value)
		if err != nil {
			return nil, err
		}
		values[field.Name] = coerced
	}
	return values, nil
}

// ForUpdate coerces the provided fields.
// null clears a nullable field and so does "" on a nullable string field.
func (s Schema) ForUpdate(fields map[string]any) (map[string]any, error) {
	values := map[string]any{}
	for _, field := range s {
		value, ok := fields[field.Name]
		if !ok {
			continue
		}
		if value == nil {
			if !field.Nullable {
				return nil, core.NewErrorBadRequest("%s must not be null", field.Name)
			}
			values[field.Name] = nil
			continue
		}
		coerced, err := field.Coerce(value)
		if err != nil {
			return nil, err
		}
		if field.Type == FieldString && field.Nullable && coerced == "" {
			coerced = nil
		}
		values[field.Name] = coerced
	}
	return values, nil
}
