package typson

import (
	"sort"
	"strconv"

	"github.com/typson-dev/typson/i18n"
)

// defaultMaxInferDepth bounds schema tree recursion. Finite author-written
// trees stay far below this; self-referential node graphs fail loudly
// instead of exhausting the stack.
const defaultMaxInferDepth = 64

// Infer is the public entry point: it projects a Node tree into a runtime
// Type. Projection is pure and side-effect free; the same Node always yields
// an equivalent Type. Unrecognized or malformed nodes fail with
// unknown_schema_kind / invalid_schema_structure rather than degrading to an
// unconstrained type.
func Infer(n Node, opts ...InferOpt) (Type, error) {
	var opt InferOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = defaultMaxInferDepth
	}
	return inferNode(n, opt, 0)
}

// MustInfer is Infer for statically known-good schemas; it panics on error.
func MustInfer(n Node, opts ...InferOpt) Type {
	t, err := Infer(n, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// inferNode dispatches over the closed variant set. Every kind, including
// allOf and function nodes, routes through this single dispatcher.
func inferNode(n Node, opt InferOpt, depth int) (Type, error) {
	if depth > opt.MaxDepth {
		return nil, Issues{{Path: "/", Code: CodeMaxDepth, Message: i18n.T(CodeMaxDepth, nil), Hint: "schema tree too deep"}}
	}
	switch node := n.(type) {
	case *StringNode:
		return &stringType{enum: node.Enum, format: node.Format, def: node.Default, desc: node.Description}, nil
	case *NumberNode:
		return &numberType{enum: node.Enum, def: node.Default, desc: node.Description}, nil
	case *BoolNode:
		return &boolType{enum: node.Enum, def: node.Default, desc: node.Description}, nil
	case *NullNode:
		return &nullType{desc: node.Description}, nil
	case *ObjectNode:
		return inferObject(node, opt, depth)
	case *ArrayNode:
		return inferArray(node, opt, depth)
	case *EnumNode:
		if len(node.Values) == 0 {
			return nil, Issues{{Path: "/enum", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "enum node requires at least one literal"}}
		}
		return &enumType{values: node.Values, desc: node.Description}, nil
	case *OneOfNode:
		return inferOneOf(node, opt, depth)
	case *AllOfNode:
		return inferAllOf(node, opt, depth)
	case *FuncNode:
		return inferFunc(node, opt, depth)
	case nil:
		return nil, Issues{{Path: "/", Code: CodeUnknownSchemaKind, Message: i18n.T(CodeUnknownSchemaKind, nil), Hint: "nil node"}}
	default:
		return nil, Issues{{Path: "/", Code: CodeUnknownSchemaKind, Message: i18n.T(CodeUnknownSchemaKind, nil)}}
	}
}

func inferObject(node *ObjectNode, opt InferOpt, depth int) (Type, error) {
	fields := make(map[string]objectField, len(node.Properties))
	var iss Issues
	required := make(map[string]struct{}, len(node.Required))
	for _, k := range node.Required {
		if _, ok := node.Properties[k]; !ok {
			iss = AppendIssues(iss, Issue{Path: "/required", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "required key '" + k + "' not in properties"})
			continue
		}
		required[k] = struct{}{}
	}
	for k, child := range node.Properties {
		ct, err := inferNode(child, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/properties/"+k, err)...)
			continue
		}
		_, req := required[k]
		f := objectField{typ: ct, required: req}
		if def := nodeDefault(child); def != nil {
			f.def = def
			f.hasDef = true
		}
		fields[k] = f
	}
	if len(iss) > 0 {
		return nil, iss
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &objectType{
		fields:     fields,
		sortedKeys: keys,
		additional: node.AdditionalProperties,
		unknown:    opt.Unknown,
		def:        node.Default,
		desc:       node.Description,
	}, nil
}

// nodeDefault extracts the author-supplied default of a property node, if any.
func nodeDefault(n Node) any {
	switch t := n.(type) {
	case *StringNode:
		return t.Default
	case *NumberNode:
		return t.Default
	case *BoolNode:
		return t.Default
	case *ObjectNode:
		return t.Default
	case *ArrayNode:
		return t.Default
	default:
		return nil
	}
}

func inferArray(node *ArrayNode, opt InferOpt, depth int) (Type, error) {
	var iss Issues
	prefix := make([]Type, 0, len(node.PrefixItems))
	for i, p := range node.PrefixItems {
		if p == nil {
			iss = AppendIssues(iss, Issue{Path: "/prefixItems/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "nil prefix item"})
			continue
		}
		pt, err := inferNode(p, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/prefixItems/"+strconv.Itoa(i), err)...)
			continue
		}
		prefix = append(prefix, pt)
	}
	var rest Type
	if node.Items != nil {
		rt, err := inferNode(node.Items, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/items", err)...)
		} else {
			rest = rt
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &arrayType{
		prefix:    prefix,
		rest:      rest,
		anyRest:   node.AnyItems,
		emptyMode: opt.EmptyArrays,
		def:       node.Default,
		desc:      node.Description,
	}, nil
}

func inferOneOf(node *OneOfNode, opt InferOpt, depth int) (Type, error) {
	if len(node.Alternatives) == 0 {
		return nil, Issues{{Path: "/oneOf", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "oneOf requires at least one member"}}
	}
	var iss Issues
	alts := make([]Type, 0, len(node.Alternatives))
	for i, alt := range node.Alternatives {
		at, err := inferNode(alt, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/oneOf/"+strconv.Itoa(i), err)...)
			continue
		}
		alts = append(alts, at)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &unionType{alts: alts, desc: node.Description}, nil
}

func inferAllOf(node *AllOfNode, opt InferOpt, depth int) (Type, error) {
	if len(node.Members) == 0 {
		return nil, Issues{{Path: "/allOf", Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "allOf requires at least one member"}}
	}
	var iss Issues
	members := make([]Type, 0, len(node.Members))
	for i, m := range node.Members {
		mt, err := inferNode(m, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/allOf/"+strconv.Itoa(i), err)...)
			continue
		}
		members = append(members, mt)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &intersectionType{members: members, desc: node.Description}, nil
}

func inferFunc(node *FuncNode, opt InferOpt, depth int) (Type, error) {
	var iss Issues
	params := make([]funcParam, 0, len(node.Params))
	for i, p := range node.Params {
		if p.Schema == nil {
			iss = AppendIssues(iss, Issue{Path: "/params/" + strconv.Itoa(i), Code: CodeInvalidSchemaStructure, Message: i18n.T(CodeInvalidSchemaStructure, nil), Hint: "parameter without schema"})
			continue
		}
		pt, err := inferNode(p.Schema, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/params/"+strconv.Itoa(i), err)...)
			continue
		}
		params = append(params, funcParam{typ: pt, required: p.Required})
	}
	var result Type
	if node.Result != nil {
		rt, err := inferNode(node.Result, opt, depth+1)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/return", err)...)
		} else {
			result = rt
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &funcType{params: params, async: node.Async, result: result, desc: node.Description}, nil
}
