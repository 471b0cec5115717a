package rag

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/yaoapp/lisa/rag/types"
	"github.com/yaoapp/lisa/schema"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// parse normalizes raw against node, decodes the result into out and runs the field
// and struct rules. Every failure is returned as *types.ValidationError.
//
// When normalization reports issues the rules still run on what could be normalized, and
// their errors are added unless an issue already covers the same path.
func parse(model string, node schema.Node, raw interface{}, out interface{}) error {
	generic, err := ToGeneric(raw)
	if err != nil {
		return invalid(model, []types.FieldError{{Path: []string{}, Message: err.Error()}})
	}

	normalized, issues := schema.Normalize(node, generic)
	errs := make([]types.FieldError, 0, len(issues))
	for _, issue := range issues {
		errs = append(errs, types.FieldError{Path: issue.Path, Message: issue.Message})
	}
	if normalized == nil && len(errs) > 0 {
		return invalid(model, errs)
	}

	data, err := json.Marshal(normalized)
	if err == nil {
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		if len(errs) > 0 {
			return invalid(model, errs)
		}
		return invalid(model, []types.FieldError{{Path: []string{}, Message: err.Error()}})
	}

	if err := validate.Struct(out); err != nil {
		reported := errs
		for _, fe := range fieldErrors(err) {
			if !covered(reported, fe.Path) {
				errs = append(errs, fe)
			}
		}
	}

	if len(errs) > 0 {
		return invalid(model, errs)
	}
	return nil
}

// covered an issue is already reported on path, one of its parents or one of its children
func covered(errs []types.FieldError, path []string) bool {
	for _, fe := range errs {
		if isPrefix(fe.Path, path) || isPrefix(path, fe.Path) {
			return true
		}
	}
	return false
}

func isPrefix(prefix, path []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if prefix[i] != path[i] {
			return false
		}
	}
	return true
}

func invalid(model string, errs []types.FieldError) error {
	return &types.ValidationError{Model: model, Errors: errs}
}

// ToGeneric converts typed values (structs, typed slices and maps) to their generic JSON form.
// Generic values are returned as is.
func ToGeneric(v interface{}) (interface{}, error) {
	switch v.(type) {
	case nil, map[string]interface{}, map[interface{}]interface{}, []interface{},
		string, bool, float64, float32, int, int64, int32:
		return v, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var res interface{}
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Decode reads a JSON or YAML document into its generic form
func Decode(data []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	var res interface{}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &res); err == nil {
			return res, nil
		}
	}

	if err := yaml.Unmarshal(trimmed, &res); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToGeneric(res)
}
