package schema

// Document renders the schema as a JSON Schema (draft 2020-12) document describing the
// shape of the value: types, required keys, enums, literals and defaults. Range, length
// and pattern rules live on the typed models and are not part of the document.
func Document(n Node) map[string]interface{} {
	doc := document(n)
	doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	return doc
}

func document(n Node) map[string]interface{} {
	switch v := n.(type) {
	case *Object:
		props := map[string]interface{}{}
		required := []interface{}{}
		for _, f := range v.Fields {
			props[f.Name] = document(f.Node)
			if isRequired(f.Node) {
				required = append(required, f.Name)
			}
		}
		doc := map[string]interface{}{"type": "object", "properties": props}
		if len(required) > 0 {
			doc["required"] = required
		}
		return doc

	case *String:
		doc := map[string]interface{}{"type": "string"}
		if v.Format != "" {
			doc["format"] = v.Format
		}
		return doc

	case *Number:
		if v.Int {
			return map[string]interface{}{"type": "integer"}
		}
		return map[string]interface{}{"type": "number"}

	case *Bool:
		return map[string]interface{}{"type": "boolean"}

	case *Enum:
		values := make([]interface{}, len(v.Values))
		for i, s := range v.Values {
			values[i] = s
		}
		return map[string]interface{}{"type": "string", "enum": values}

	case *Literal:
		return map[string]interface{}{"const": v.Value}

	case *Array:
		return map[string]interface{}{"type": "array", "items": document(v.Items)}

	case *Set:
		return map[string]interface{}{"type": "array", "items": document(v.Items), "uniqueItems": true}

	case *Record:
		return map[string]interface{}{"type": "object", "additionalProperties": document(v.Values)}

	case *Optional:
		return document(v.Inner)

	case *Nullable:
		return map[string]interface{}{"anyOf": []interface{}{document(v.Inner), map[string]interface{}{"type": "null"}}}

	case *Default:
		doc := document(v.Inner)
		doc["default"] = v.value()
		return doc

	case *Union:
		variants := make([]interface{}, len(v.Variants))
		for i, variant := range v.Variants {
			variants[i] = document(variant)
		}
		return map[string]interface{}{"anyOf": variants}

	case *Effects:
		return document(v.Inner)
	}

	return map[string]interface{}{}
}

func isRequired(n Node) bool {
	switch v := n.(type) {
	case *Optional, *Default:
		return false
	case *Nullable:
		return isRequired(v.Inner)
	case *Effects:
		return isRequired(v.Inner)
	}
	return true
}
