package settings

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueType enum for typed setting values
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeJSON    ValueType = "json"
)

// ParseValue decodes a stored string into its typed value. Numbers always come
// back as float64 and JSON as the encoding/json generic shapes, so
// ParseValue(StringifyValue(v, t), t) == v holds for every supported type.
func ParseValue(raw string, t ValueType) (any, error) {
	switch t {
	case TypeBoolean:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse boolean setting: %w", err)
		}
		return v, nil
	case TypeNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse number setting: %w", err)
		}
		return v, nil
	case TypeJSON:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("parse json setting: %w", err)
		}
		return v, nil
	case TypeString:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown setting type: %s", t)
	}
}

// StringifyValue encodes a typed value into its stored string form.
func StringifyValue(v any, t ValueType) (string, error) {
	switch t {
	case TypeBoolean:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("expected bool, got %T", v)
		}
		return strconv.FormatBool(b), nil
	case TypeNumber:
		f, ok := v.(float64)
		if !ok {
			return "", fmt.Errorf("expected float64, got %T", v)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case TypeJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("stringify json setting: %w", err)
		}
		return string(b), nil
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	default:
		return "", fmt.Errorf("unknown setting type: %s", t)
	}
}
