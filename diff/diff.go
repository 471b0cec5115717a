package diff

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/kun/maps"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Diff computes the minimal PATCH payload turning baseline into updated.
//
// Both values are compared in their JSON form. Nested objects are diffed per key, arrays
// and scalars are replaced as a whole, and keys missing from updated are emitted as nil.
// An empty map means nothing changed.
func Diff(baseline, updated interface{}) (maps.MapStrAny, error) {
	before, err := object(baseline)
	if err != nil {
		return nil, fmt.Errorf("diff baseline: %w", err)
	}

	after, err := object(updated)
	if err != nil {
		return nil, fmt.Errorf("diff updated: %w", err)
	}

	return diff(before, after), nil
}

// Apply merges a patch produced by Diff into baseline and returns the result. Nil values
// delete keys. The baseline is not modified.
func Apply(baseline interface{}, patch maps.MapStrAny) (maps.MapStrAny, error) {
	before, err := object(baseline)
	if err != nil {
		return nil, fmt.Errorf("apply baseline: %w", err)
	}
	return apply(before, patch), nil
}

func diff(before, after map[string]interface{}) maps.MapStrAny {
	res := maps.MapStrAny{}
	for key, value := range after {
		old, has := before[key]
		if !has {
			res[key] = value
			continue
		}

		oldMap, oldIsMap := old.(map[string]interface{})
		newMap, newIsMap := value.(map[string]interface{})
		if oldIsMap && newIsMap {
			if nested := diff(oldMap, newMap); len(nested) > 0 {
				res[key] = map[string]interface{}(nested)
			}
			continue
		}

		if !reflect.DeepEqual(old, value) {
			res[key] = value
		}
	}

	for key := range before {
		if _, has := after[key]; !has {
			res[key] = nil
		}
	}
	return res
}

func apply(before map[string]interface{}, patch map[string]interface{}) maps.MapStrAny {
	res := maps.MapStrAny{}
	for key, value := range before {
		res[key] = value
	}

	for key, value := range patch {
		if value == nil {
			delete(res, key)
			continue
		}

		nested, isMap := value.(map[string]interface{})
		if !isMap {
			if m, ok := value.(maps.MapStrAny); ok {
				nested, isMap = map[string]interface{}(m), true
			}
		}
		old, oldIsMap := res[key].(map[string]interface{})
		if isMap && oldIsMap {
			res[key] = map[string]interface{}(apply(old, nested))
			continue
		}
		res[key] = value
	}
	return res
}

// object converts v to a generic JSON object
func object(v interface{}) (map[string]interface{}, error) {
	if v == nil {
		return map[string]interface{}{}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var res map[string]interface{}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	if res == nil {
		res = map[string]interface{}{}
	}
	return res, nil
}
