package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Issue a single normalization failure
type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

func (i Issue) Error() string {
	if len(i.Path) == 0 {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", strings.Join(i.Path, "."), i.Message)
}

// Normalize walks value against the schema and returns a fresh copy with defaults applied
// and unknown object keys stripped. The input is never modified.
//
// Normalize checks presence, JSON types, enum members and union discriminants. Range,
// length and pattern rules are enforced later on the typed value.
func Normalize(n Node, value interface{}) (interface{}, []Issue) {
	return normalize(n, value, nil)
}

// integers beyond this bound lose precision as float64
const maxSafeInteger = 1<<53 - 1

func normalize(n Node, value interface{}, path []string) (interface{}, []Issue) {
	switch v := n.(type) {
	case *Object:
		return normalizeObject(v, value, path)

	case *String:
		s, ok := value.(string)
		if !ok {
			if t, isTime := value.(time.Time); isTime && v.Format == FormatDateTime {
				return t.Format(time.RFC3339Nano), nil
			}
			return nil, []Issue{typeIssue(path, "string", value)}
		}
		if v.Format == FormatDateTime {
			if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
				return nil, []Issue{{Path: path, Message: "Invalid datetime"}}
			}
		}
		return s, nil

	case *Number:
		f, ok := toNumber(value)
		if !ok {
			return nil, []Issue{typeIssue(path, "number", value)}
		}
		if math.IsNaN(f) {
			return nil, []Issue{{Path: path, Message: "Expected number, received nan"}}
		}
		if math.IsInf(f, 0) {
			return nil, []Issue{{Path: path, Message: "Expected number, received infinity"}}
		}
		if v.Int && f != math.Trunc(f) {
			return nil, []Issue{{Path: path, Message: "Expected integer, received float"}}
		}
		if v.Int && f > maxSafeInteger {
			return nil, []Issue{{Path: path, Message: fmt.Sprintf("Number must be less than or equal to %d", int64(maxSafeInteger))}}
		}
		if v.Int && f < -maxSafeInteger {
			return nil, []Issue{{Path: path, Message: fmt.Sprintf("Number must be greater than or equal to %d", int64(-maxSafeInteger))}}
		}
		return f, nil

	case *Bool:
		b, ok := value.(bool)
		if !ok {
			return nil, []Issue{typeIssue(path, "boolean", value)}
		}
		return b, nil

	case *Enum:
		s, ok := value.(string)
		if !ok || !contains(v.Values, s) {
			return nil, []Issue{{Path: path, Message: fmt.Sprintf("Invalid enum value. Expected %s, received '%v'", quoteAll(v.Values), value)}}
		}
		return s, nil

	case *Literal:
		if !literalEqual(v.Value, value) {
			return nil, []Issue{{Path: path, Message: fmt.Sprintf("Invalid literal value, expected %q", fmt.Sprint(v.Value))}}
		}
		return v.Value, nil

	case *Array:
		return normalizeList(v.Items, value, path, false)

	case *Set:
		return normalizeList(v.Items, value, path, true)

	case *Record:
		m, ok := asMap(value)
		if !ok {
			return nil, []Issue{typeIssue(path, "object", value)}
		}
		res := make(map[string]interface{}, len(m))
		var issues []Issue
		for key, item := range m {
			val, errs := normalize(v.Values, item, join(path, key))
			issues = append(issues, errs...)
			res[key] = val
		}
		return res, issues

	case *Any:
		return copyValue(value), nil

	case *Optional:
		if value == nil {
			return nil, nil
		}
		return normalize(v.Inner, value, path)

	case *Nullable:
		if value == nil {
			return nil, nil
		}
		return normalize(v.Inner, value, path)

	case *Default:
		if value == nil {
			value = v.value()
		}
		return normalize(v.Inner, value, path)

	case *Union:
		return normalizeUnion(v, value, path)

	case *Effects:
		return normalize(v.Inner, value, path)
	}

	return nil, []Issue{{Path: path, Message: fmt.Sprintf("unsupported schema node %T", n)}}
}

func normalizeObject(o *Object, value interface{}, path []string) (interface{}, []Issue) {
	m, ok := asMap(value)
	if !ok {
		return nil, []Issue{typeIssue(path, "object", value)}
	}

	res := make(map[string]interface{}, len(o.Fields))
	var issues []Issue
	for _, f := range o.Fields {
		raw, present := m[f.Name]
		if present && raw == nil && !acceptsNull(f.Node) {
			present = false
		}

		val, has, errs := normalizeField(f.Node, raw, present, join(path, f.Name))
		issues = append(issues, errs...)
		if has {
			res[f.Name] = val
		}
	}
	return res, issues
}

func normalizeField(n Node, raw interface{}, present bool, path []string) (interface{}, bool, []Issue) {
	switch v := n.(type) {
	case *Optional:
		if !present {
			return nil, false, nil
		}
		return normalizeField(v.Inner, raw, present, path)

	case *Default:
		if !present {
			val, issues := normalize(v.Inner, v.value(), path)
			return val, true, issues
		}
		return normalizeField(v.Inner, raw, present, path)

	case *Nullable:
		if present && raw == nil {
			return nil, true, nil
		}
		return normalizeField(v.Inner, raw, present, path)

	case *Effects:
		return normalizeField(v.Inner, raw, present, path)
	}

	if !present {
		return nil, false, []Issue{{Path: path, Message: "Required"}}
	}
	val, issues := normalize(n, raw, path)
	return val, true, issues
}

func normalizeList(items Node, value interface{}, path []string, unique bool) (interface{}, []Issue) {
	list, ok := asList(value)
	if !ok {
		return nil, []Issue{typeIssue(path, "array", value)}
	}

	res := make([]interface{}, 0, len(list))
	var issues []Issue
	for i, item := range list {
		val, errs := normalize(items, item, join(path, strconv.Itoa(i)))
		issues = append(issues, errs...)
		if unique && containsValue(res, val) {
			continue
		}
		res = append(res, val)
	}
	return res, issues
}

func normalizeUnion(u *Union, value interface{}, path []string) (interface{}, []Issue) {
	if u.Discriminator != "" {
		m, ok := asMap(value)
		if !ok {
			return nil, []Issue{typeIssue(path, "object", value)}
		}

		options := []string{}
		for _, variant := range u.Variants {
			lit, ok := discriminant(variant, u.Discriminator)
			if !ok {
				continue
			}
			if literalEqual(lit.Value, m[u.Discriminator]) {
				return normalize(variant, value, path)
			}
			options = append(options, fmt.Sprint(lit.Value))
		}
		return nil, []Issue{{
			Path:    join(path, u.Discriminator),
			Message: fmt.Sprintf("Invalid discriminator value. Expected %s", quoteAll(options)),
		}}
	}

	var best []Issue
	for i, variant := range u.Variants {
		val, issues := normalize(variant, value, path)
		if len(issues) == 0 {
			return val, nil
		}
		if i == 0 || len(issues) < len(best) {
			best = issues
		}
	}
	return nil, best
}

func discriminant(variant Node, key string) (*Literal, bool) {
	obj, ok := Unwrap(variant).(*Object)
	if !ok {
		return nil, false
	}
	field, ok := obj.Field(key)
	if !ok {
		return nil, false
	}
	lit, ok := Unwrap(field).(*Literal)
	return lit, ok
}

func acceptsNull(n Node) bool {
	for {
		switch v := n.(type) {
		case *Nullable:
			return true
		case *Optional:
			n = v.Inner
		case *Default:
			n = v.Inner
		case *Effects:
			n = v.Inner
		default:
			return false
		}
	}
}

func asMap(value interface{}) (map[string]interface{}, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(m))
		for k, v := range m {
			res[fmt.Sprint(k)] = v
		}
		return res, true
	}
	return nil, false
}

func asList(value interface{}) ([]interface{}, bool) {
	if list, ok := value.([]interface{}); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	res := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		res[i] = rv.Index(i).Interface()
	}
	return res, true
}

func toNumber(value interface{}) (float64, bool) {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func literalEqual(expected, actual interface{}) bool {
	if f, ok := toNumber(expected); ok {
		g, ok := toNumber(actual)
		return ok && f == g
	}
	return expected == actual
}

func typeIssue(path []string, expected string, value interface{}) Issue {
	received := typeName(value)
	if value == nil {
		return Issue{Path: path, Message: "Required"}
	}
	return Issue{Path: path, Message: fmt.Sprintf("Expected %s, received %s", expected, received)}
}

func typeName(value interface{}) string {
	if value == nil {
		return "null"
	}
	if _, ok := toNumber(value); ok {
		return "number"
	}
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, ok := asMap(value); ok {
		return "object"
	}
	if _, ok := asList(value); ok {
		return "array"
	}
	return fmt.Sprintf("%T", value)
}

func join(path []string, seg string) []string {
	res := make([]string, len(path), len(path)+1)
	copy(res, path)
	return append(res, seg)
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func containsValue(values []interface{}, v interface{}) bool {
	for _, item := range values {
		if reflect.DeepEqual(item, v) {
			return true
		}
	}
	return false
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " | ")
}
