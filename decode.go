package typson

import (
	"bytes"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/typson-dev/typson/i18n"
)

// DecodeSchemaJSON decodes a JSON schema document into a Node tree.
func DecodeSchemaJSON(data []byte) (Node, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return NodeFromValue(v)
}

// DecodeSchemaYAML decodes a YAML schema document into a Node tree.
func DecodeSchemaYAML(data []byte) (Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return NodeFromValue(normalizeYAML(v))
}

// normalizeYAML rewrites yaml.v3 output into the JSON value shapes the node
// decoder expects: map keys become strings, nested containers recurse.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeYAML(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				ks = stringifyKey(k)
			}
			out[ks] = normalizeYAML(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeYAML(val)
		}
		return out
	default:
		return v
	}
}

func stringifyKey(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NodeFromValue builds a Node from a raw schema value (a decoded document or
// a hand-authored map). The variant is decided in this priority, first match
// wins: type string/number/boolean/null/object/array/function, then oneOf,
// then allOf, then a bare enum. Anything else is an unknown_schema_kind,
// never a silent unconstrained node.
func NodeFromValue(v any) (Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeUnknownSchemaKind, Message: i18n.T(CodeUnknownSchemaKind, nil), Hint: "schema node must be an object"}}
	}
	if ty, has := m["type"]; has {
		ts, ok := ty.(string)
		if !ok {
			return nil, Issues{{Path: "/type", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "type must be a string"}}
		}
		switch ts {
		case "string":
			return stringNodeFromValue(m)
		case "number":
			return numberNodeFromValue(m)
		case "boolean":
			return boolNodeFromValue(m)
		case "null":
			return &NullNode{Description: getString(m, "description")}, nil
		case "object":
			return objectNodeFromValue(m)
		case "array":
			return arrayNodeFromValue(m)
		case "function":
			return funcNodeFromValue(m)
		default:
			return nil, Issues{{Path: "/type", Code: CodeUnknownSchemaKind, Message: i18n.T(CodeUnknownSchemaKind, nil), Hint: "unknown type '" + ts + "'"}}
		}
	}
	if raw, has := m["oneOf"]; has {
		return oneOfNodeFromValue(raw, m)
	}
	if raw, has := m["allOf"]; has {
		return allOfNodeFromValue(raw, m)
	}
	if raw, has := m["enum"]; has {
		return enumNodeFromValue(raw, m)
	}
	return nil, Issues{{Path: "/", Code: CodeUnknownSchemaKind, Message: i18n.T(CodeUnknownSchemaKind, nil), Hint: "no type, oneOf, allOf or enum discriminator"}}
}

func getString(m map[string]any, k string) string {
	s, _ := m[k].(string)
	return s
}

func getBool(m map[string]any, k string) bool {
	b, _ := m[k].(bool)
	return b
}

func stringNodeFromValue(m map[string]any) (Node, error) {
	n := &StringNode{Format: getString(m, "format"), Default: m["default"], Description: getString(m, "description")}
	if raw, has := m["enum"]; has {
		lits, ok := raw.([]any)
		if !ok {
			return nil, Issues{{Path: "/enum", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum must be a list"}}
		}
		for i, lit := range lits {
			s, ok := lit.(string)
			if !ok {
				return nil, Issues{{Path: "/enum/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "string enum literal expected"}}
			}
			n.Enum = append(n.Enum, s)
		}
	}
	return n, nil
}

func numberNodeFromValue(m map[string]any) (Node, error) {
	n := &NumberNode{Default: m["default"], Description: getString(m, "description")}
	if raw, has := m["enum"]; has {
		lits, ok := raw.([]any)
		if !ok {
			return nil, Issues{{Path: "/enum", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum must be a list"}}
		}
		for i, lit := range lits {
			num, ok := canonNumber(lit)
			if !ok {
				return nil, Issues{{Path: "/enum/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "numeric enum literal expected"}}
			}
			n.Enum = append(n.Enum, num)
		}
	}
	return n, nil
}

func boolNodeFromValue(m map[string]any) (Node, error) {
	n := &BoolNode{Default: m["default"], Description: getString(m, "description")}
	if raw, has := m["enum"]; has {
		lits, ok := raw.([]any)
		if !ok {
			return nil, Issues{{Path: "/enum", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum must be a list"}}
		}
		for i, lit := range lits {
			b, ok := lit.(bool)
			if !ok {
				return nil, Issues{{Path: "/enum/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "boolean enum literal expected"}}
			}
			n.Enum = append(n.Enum, b)
		}
	}
	return n, nil
}

func objectNodeFromValue(m map[string]any) (Node, error) {
	n := &ObjectNode{
		AdditionalProperties: getBool(m, "additionalProperties"),
		Default:              m["default"],
		Description:          getString(m, "description"),
	}
	if raw, has := m["properties"]; has {
		props, ok := raw.(map[string]any)
		if !ok {
			return nil, Issues{{Path: "/properties", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "properties must be an object"}}
		}
		n.Properties = make(map[string]Node, len(props))
		var iss Issues
		for k, pv := range props {
			child, err := NodeFromValue(pv)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/properties/"+k, err)...)
				continue
			}
			n.Properties[k] = child
		}
		if len(iss) > 0 {
			return nil, iss
		}
	}
	if raw, has := m["required"]; has {
		reqs, ok := raw.([]any)
		if !ok {
			return nil, Issues{{Path: "/required", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "required must be a list of keys"}}
		}
		for i, r := range reqs {
			s, ok := r.(string)
			if !ok {
				return nil, Issues{{Path: "/required/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "required entries must be strings"}}
			}
			n.Required = append(n.Required, s)
		}
	}
	return n, nil
}

func arrayNodeFromValue(m map[string]any) (Node, error) {
	n := &ArrayNode{Default: m["default"], Description: getString(m, "description")}
	if raw, has := m["prefixItems"]; has {
		items, ok := raw.([]any)
		if !ok {
			return nil, Issues{{Path: "/prefixItems", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "prefixItems must be a list"}}
		}
		var iss Issues
		for i, it := range items {
			child, err := NodeFromValue(it)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/prefixItems/"+strconv.Itoa(i), err)...)
				continue
			}
			n.PrefixItems = append(n.PrefixItems, child)
		}
		if len(iss) > 0 {
			return nil, iss
		}
	}
	if raw, has := m["items"]; has {
		switch it := raw.(type) {
		case bool:
			n.AnyItems = it
		case map[string]any:
			child, err := NodeFromValue(it)
			if err != nil {
				return nil, rebaseIssues("/items", err)
			}
			n.Items = child
		default:
			return nil, Issues{{Path: "/items", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "items must be a schema or a boolean"}}
		}
	}
	return n, nil
}

func oneOfNodeFromValue(raw any, m map[string]any) (Node, error) {
	alts, ok := raw.([]any)
	if !ok {
		return nil, Issues{{Path: "/oneOf", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "oneOf must be a list"}}
	}
	n := &OneOfNode{Description: getString(m, "description")}
	var iss Issues
	for i, alt := range alts {
		child, err := NodeFromValue(alt)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/oneOf/"+strconv.Itoa(i), err)...)
			continue
		}
		n.Alternatives = append(n.Alternatives, child)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return n, nil
}

func allOfNodeFromValue(raw any, m map[string]any) (Node, error) {
	members, ok := raw.([]any)
	if !ok {
		return nil, Issues{{Path: "/allOf", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "allOf must be a list"}}
	}
	n := &AllOfNode{Description: getString(m, "description")}
	var iss Issues
	for i, mem := range members {
		child, err := NodeFromValue(mem)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/allOf/"+strconv.Itoa(i), err)...)
			continue
		}
		n.Members = append(n.Members, child)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return n, nil
}

func enumNodeFromValue(raw any, m map[string]any) (Node, error) {
	lits, ok := raw.([]any)
	if !ok {
		return nil, Issues{{Path: "/enum", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum must be a list"}}
	}
	n := &EnumNode{Description: getString(m, "description")}
	for i, lit := range lits {
		switch lit.(type) {
		case nil, string, bool:
			n.Values = append(n.Values, lit)
		default:
			num, ok := canonNumber(lit)
			if !ok {
				return nil, Issues{{Path: "/enum/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum literals must be string, number, boolean or null"}}
			}
			n.Values = append(n.Values, num)
		}
	}
	return n, nil
}

func funcNodeFromValue(m map[string]any) (Node, error) {
	n := &FuncNode{Async: getBool(m, "async"), Description: getString(m, "description")}
	if raw, has := m["params"]; has {
		switch p := raw.(type) {
		case map[string]any:
			param, err := paramFromValue(p, "/params")
			if err != nil {
				return nil, err
			}
			n.Params = append(n.Params, param)
		case []any:
			for i, pv := range p {
				pm, ok := pv.(map[string]any)
				if !ok {
					return nil, Issues{{Path: "/params/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "parameter descriptor expected"}}
				}
				param, err := paramFromValue(pm, "/params/"+strconv.Itoa(i))
				if err != nil {
					return nil, err
				}
				n.Params = append(n.Params, param)
			}
		default:
			return nil, Issues{{Path: "/params", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "params must be a descriptor or a list"}}
		}
	}
	if raw, has := m["return"]; has {
		child, err := NodeFromValue(raw)
		if err != nil {
			return nil, rebaseIssues("/return", err)
		}
		n.Result = child
	}
	return n, nil
}

func paramFromValue(m map[string]any, base string) (Param, error) {
	raw, has := m["schema"]
	if !has {
		return Param{}, Issues{{Path: base + "/schema", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "parameter requires a schema"}}
	}
	child, err := NodeFromValue(raw)
	if err != nil {
		return Param{}, rebaseIssues(base+"/schema", err)
	}
	return Param{Schema: child, Required: getBool(m, "required")}, nil
}
