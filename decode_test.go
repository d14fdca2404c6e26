package typson_test

import (
	"context"
	"encoding/json"
	"testing"

	typson "github.com/typson-dev/typson"
)

func TestNodeFromValue_TypeWinsOverComposition(t *testing.T) {
	n, err := typson.NodeFromValue(map[string]any{
		"type":  "string",
		"oneOf": []any{map[string]any{"type": "number"}},
		"enum":  []any{"a"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sn, ok := n.(*typson.StringNode)
	if !ok {
		t.Fatalf("want *StringNode, got %T", n)
	}
	if len(sn.Enum) != 1 || sn.Enum[0] != "a" {
		t.Fatalf("string enum not captured: %+v", sn.Enum)
	}
}

func TestNodeFromValue_OneOfBeforeEnum(t *testing.T) {
	n, err := typson.NodeFromValue(map[string]any{
		"oneOf": []any{map[string]any{"type": "string"}, map[string]any{"type": "null"}},
		"enum":  []any{"x"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := n.(*typson.OneOfNode); !ok {
		t.Fatalf("want *OneOfNode, got %T", n)
	}
}

func TestNodeFromValue_EnumFallback(t *testing.T) {
	n, err := typson.NodeFromValue(map[string]any{
		"enum": []any{"a", json.Number("2"), true, nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	en, ok := n.(*typson.EnumNode)
	if !ok {
		t.Fatalf("want *EnumNode, got %T", n)
	}
	if len(en.Values) != 4 {
		t.Fatalf("want 4 literals, got %d", len(en.Values))
	}
}

func TestNodeFromValue_NoDiscriminatorFails(t *testing.T) {
	_, err := typson.NodeFromValue(map[string]any{"description": "nothing here"})
	if !hasIssue(err, typson.CodeUnknownSchemaKind, "/") {
		t.Fatalf("expected unknown_schema_kind, got: %v", err)
	}
}

func TestNodeFromValue_NonObjectFails(t *testing.T) {
	_, err := typson.NodeFromValue("not a schema")
	if !hasIssue(err, typson.CodeUnknownSchemaKind, "/") {
		t.Fatalf("expected unknown_schema_kind, got: %v", err)
	}
}

func TestNodeFromValue_TypeMustBeString(t *testing.T) {
	_, err := typson.NodeFromValue(map[string]any{"type": json.Number("1")})
	if !hasIssue(err, typson.CodeInvalidSchemaStructure, "/type") {
		t.Fatalf("expected invalid_schema_structure at /type, got: %v", err)
	}
}

func TestNodeFromValue_UnknownTypeName(t *testing.T) {
	_, err := typson.NodeFromValue(map[string]any{"type": "integer"})
	if !hasIssue(err, typson.CodeUnknownSchemaKind, "/type") {
		t.Fatalf("expected unknown_schema_kind at /type, got: %v", err)
	}
}

func TestNodeFromValue_RequiredMustBeStringList(t *testing.T) {
	_, err := typson.NodeFromValue(map[string]any{
		"type":     "object",
		"required": []any{"ok", json.Number("1")},
	})
	if !hasIssue(err, typson.CodeInvalidSchemaStructure, "/required/1") {
		t.Fatalf("expected invalid_schema_structure at /required/1, got: %v", err)
	}
}

func TestNodeFromValue_ItemsBooleanAndSchema(t *testing.T) {
	n, err := typson.NodeFromValue(map[string]any{"type": "array", "items": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	an := n.(*typson.ArrayNode)
	if !an.AnyItems {
		t.Fatalf("items:true should set AnyItems")
	}

	n, err = typson.NodeFromValue(map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "number"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	an = n.(*typson.ArrayNode)
	if _, ok := an.Items.(*typson.NumberNode); !ok {
		t.Fatalf("want *NumberNode items, got %T", an.Items)
	}
}

func TestNodeFromValue_FunctionType(t *testing.T) {
	n, err := typson.NodeFromValue(map[string]any{
		"type":  "function",
		"async": true,
		"params": []any{
			map[string]any{"required": true, "schema": map[string]any{"type": "string"}},
			map[string]any{"schema": map[string]any{"type": "number"}},
		},
		"return": map[string]any{"type": "boolean"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := n.(*typson.FuncNode)
	if !ok {
		t.Fatalf("want *FuncNode, got %T", n)
	}
	if !fn.Async || len(fn.Params) != 2 || !fn.Params[0].Required || fn.Params[1].Required {
		t.Fatalf("function shape not captured: %+v", fn)
	}
	if _, ok := fn.Result.(*typson.BoolNode); !ok {
		t.Fatalf("want *BoolNode return, got %T", fn.Result)
	}
}

func TestNodeFromValue_ParamWithoutSchemaFails(t *testing.T) {
	_, err := typson.NodeFromValue(map[string]any{
		"type":   "function",
		"params": []any{map[string]any{"required": true}},
	})
	if !hasIssue(err, typson.CodeInvalidSchemaStructure, "/params/0/schema") {
		t.Fatalf("expected invalid_schema_structure at /params/0/schema, got: %v", err)
	}
}

func TestDecodeSchemaJSON_EndToEnd(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`{
		"type": "object",
		"properties": {
			"status": {"type": "string", "enum": ["active", "inactive"]},
			"retries": {"type": "number"}
		},
		"required": ["status"]
	}`)
	n, err := typson.DecodeSchemaJSON(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ty := typson.MustInfer(n)

	if err := ty.Validate(ctx, map[string]any{"status": "active"}); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
	err = ty.Validate(ctx, map[string]any{"status": "paused"})
	if !hasIssue(err, typson.CodeInvalidEnum, "/status") {
		t.Fatalf("expected invalid_enum at /status, got: %v", err)
	}
	err = ty.Validate(ctx, map[string]any{"retries": json.Number("2")})
	if !hasIssue(err, typson.CodeRequired, "/status") {
		t.Fatalf("expected required at /status, got: %v", err)
	}
}

func TestDecodeSchemaYAML_EndToEnd(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`
type: object
properties:
  name:
    type: string
  port:
    type: number
required:
  - name
`)
	n, err := typson.DecodeSchemaYAML(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	ty := typson.MustInfer(n)
	if err := ty.Validate(ctx, map[string]any{"name": "api", "port": 8080}); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}
}

func TestDecodeSchemaJSON_BadDocument(t *testing.T) {
	_, err := typson.DecodeSchemaJSON([]byte(`{"type":`))
	if !hasIssue(err, typson.CodeParseError, "/") {
		t.Fatalf("expected parse_error, got: %v", err)
	}
}
