package schema

// Defaults derives the default instance of an object schema.
//
// Rules, applied per field:
//   - Default: the declared value (deep copied), or the factory result
//   - Optional / Nullable: unwrapped and derived from the inner node
//   - Array / Set: an empty list
//   - String: ""
//   - Object: derived recursively
//   - anything else (numbers without a default, bools, enums, literals, unions, records,
//     effects): absent
//
// A top-level node that is not an Object, including an Effects wrapping an Object, yields
// an empty map. Callers should read an unexpectedly empty result as "shape not supported",
// not as a valid empty configuration.
func Defaults(n Node) map[string]interface{} {
	obj, ok := n.(*Object)
	if !ok {
		return map[string]interface{}{}
	}

	res := make(map[string]interface{}, len(obj.Fields))
	for _, f := range obj.Fields {
		if v, has := defaultValue(f.Node); has {
			res[f.Name] = v
		}
	}
	return res
}

func defaultValue(n Node) (interface{}, bool) {
	switch v := n.(type) {
	case *Default:
		return v.value(), true
	case *Optional:
		return defaultValue(v.Inner)
	case *Nullable:
		return defaultValue(v.Inner)
	case *Array, *Set:
		return []interface{}{}, true
	case *String:
		return "", true
	case *Object:
		return Defaults(v), true
	}
	return nil, false
}

func (d *Default) value() interface{} {
	if d.Factory != nil {
		return d.Factory()
	}
	return copyValue(d.Value)
}

// copyValue deep copies JSON-like values so callers never share state with a schema
func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		res := make(map[string]interface{}, len(val))
		for k, item := range val {
			res[k] = copyValue(item)
		}
		return res
	case []interface{}:
		res := make([]interface{}, len(val))
		for i, item := range val {
			res[i] = copyValue(item)
		}
		return res
	case []string:
		res := make([]interface{}, len(val))
		for i, item := range val {
			res[i] = item
		}
		return res
	case map[string]string:
		res := make(map[string]interface{}, len(val))
		for k, item := range val {
			res[k] = item
		}
		return res
	}
	return v
}
