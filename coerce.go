package refdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CoerceFunc converts a raw attribute value into its typed form. Implementations
// must be pure and must not be handed nil (absent values are never coerced).
type CoerceFunc func(raw any) (any, error)

// Built-in type tags. RegisterCoercion accepts custom tags as well.
const (
	TypeString   = "string"
	TypeInteger  = "integer"
	TypeFloat    = "float"
	TypeBoolean  = "boolean"
	TypeDate     = "date"
	TypeTime     = "time"
	TypeDateTime = "datetime"
)

var coercions = make(map[string]CoerceFunc)

// RegisterCoercion adds a coercion for the given type tag. Call during
// process startup, before declaring schemas that reference the tag; the
// table is read-only afterwards.
func RegisterCoercion(tag string, fn CoerceFunc) {
	if coercions[tag] != nil {
		panic(fmt.Errorf("refdata: coercion for type %q already registered", tag))
	}
	coercions[tag] = fn
}

// Coerce converts raw via the coercion registered for tag. A nil raw value is
// returned unchanged (absent stays absent).
func Coerce(tag string, raw any) (any, error) {
	fn := coercions[tag]
	if fn == nil {
		return nil, &FieldTypeError{Tag: tag}
	}
	if raw == nil {
		return nil, nil
	}
	return fn(raw)
}

func init() {
	RegisterCoercion(TypeString, coerceString)
	RegisterCoercion(TypeInteger, coerceInteger)
	RegisterCoercion(TypeFloat, coerceFloat)
	RegisterCoercion(TypeBoolean, coerceBoolean)
	RegisterCoercion(TypeDate, coerceDate)
	RegisterCoercion(TypeTime, coerceTime)
	RegisterCoercion(TypeDateTime, coerceDateTime)
}

func coerceString(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func coerceInteger(raw any) (any, error) {
	if n, ok := asInt64(raw); ok {
		return n, nil
	}
	switch v := raw.(type) {
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q into integer: %w", v, err)
		}
		return n, nil
	}
	return nil, fmt.Errorf("cannot coerce %T into integer", raw)
}

func coerceFloat(raw any) (any, error) {
	if f, ok := asFloat64(raw); ok {
		return f, nil
	}
	if v, ok := raw.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q into float: %w", v, err)
		}
		return f, nil
	}
	return nil, fmt.Errorf("cannot coerce %T into float", raw)
}

func coerceBoolean(raw any) (any, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("cannot coerce %q into boolean: %w", v, err)
		}
		return b, nil
	}
	if n, ok := asInt64(raw); ok {
		return n != 0, nil
	}
	return nil, fmt.Errorf("cannot coerce %T into boolean", raw)
}

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

func coerceDate(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location()), nil
	case string:
		return parseTimeString(v, dateLayouts, "date")
	}
	return nil, fmt.Errorf("cannot coerce %T into date", raw)
}

var timeLayouts = []string{"15:04:05", "15:04"}

func coerceTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeString(v, timeLayouts, "time")
	}
	return nil, fmt.Errorf("cannot coerce %T into time", raw)
}

var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

func coerceDateTime(raw any) (any, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeString(v, dateTimeLayouts, "datetime")
	}
	return nil, fmt.Errorf("cannot coerce %T into datetime", raw)
}

func parseTimeString(s string, layouts []string, kind string) (any, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %q into %s", s, kind)
}

func asInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch v := v.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	if n, ok := asInt64(v); ok {
		return float64(n), true
	}
	return 0, false
}
