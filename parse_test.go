package typson_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	typson "github.com/typson-dev/typson"
)

func userSchema(opts ...typson.InferOpt) typson.Type {
	n := &typson.ObjectNode{
		Properties: map[string]typson.Node{
			"name":  &typson.StringNode{},
			"role":  &typson.StringNode{Default: "viewer"},
			"count": &typson.NumberNode{},
		},
		Required: []string{"name"},
	}
	return typson.MustInfer(n, opts...)
}

func TestParseFrom_JSONBytesAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	out, err := typson.ParseFrom(ctx, ty, typson.JSONBytes([]byte(`{"name":"alice","count":3}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if m["name"] != "alice" {
		t.Fatalf("want name alice, got %v", m["name"])
	}
	if m["role"] != "viewer" {
		t.Fatalf("default not applied, got %v", m["role"])
	}
	if m["count"] != json.Number("3") {
		t.Fatalf("numbers must surface as json.Number, got %T", m["count"])
	}
}

func TestParseFrom_UnknownKeyStrictByDefault(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	_, err := typson.ParseFrom(ctx, ty, typson.JSONBytes([]byte(`{"name":"a","extra":1}`)))
	if !hasIssue(err, typson.CodeUnknownKey, "/extra") {
		t.Fatalf("expected unknown_key at /extra, got: %v", err)
	}
}

func TestParseFrom_UnknownStripDrops(t *testing.T) {
	ctx := context.Background()
	ty := userSchema(typson.InferOpt{Unknown: typson.UnknownStrip})
	out, err := typson.ParseFrom(ctx, ty, typson.JSONBytes([]byte(`{"name":"a","extra":1}`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, has := out.(map[string]any)["extra"]; has {
		t.Fatalf("extra key should be stripped")
	}
}

func TestParseFrom_DuplicateKey(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	src := func() typson.Source { return typson.JSONBytes([]byte(`{"name":"a","name":"b"}`)) }

	// ignored unless requested
	if _, err := typson.ParseFrom(ctx, ty, src()); err != nil {
		t.Fatalf("duplicates should be ignored by default: %v", err)
	}

	opt := typson.ParseOpt{Strictness: typson.Strictness{OnDuplicateKey: typson.Error}}
	_, err := typson.ParseFrom(ctx, ty, src(), opt)
	if !hasIssue(err, typson.CodeDuplicateKey, "/name") {
		t.Fatalf("expected duplicate_key at /name, got: %v", err)
	}
}

func TestParseFrom_MaxDepth(t *testing.T) {
	ctx := context.Background()
	ty := typson.MustInfer(&typson.ObjectNode{AdditionalProperties: true})
	opt := typson.ParseOpt{MaxDepth: 2}
	_, err := typson.ParseFrom(ctx, ty, typson.JSONBytes([]byte(`{"a":{"b":{"c":1}}}`)), opt)
	if !hasIssue(err, typson.CodeMaxDepth, "") {
		t.Fatalf("expected max_depth, got: %v", err)
	}
}

func TestStreamParse_MaxBytes(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	big := `{"name":"` + strings.Repeat("x", 128) + `"}`
	_, err := typson.StreamParse(ctx, ty, strings.NewReader(big), typson.ParseOpt{MaxBytes: 32})
	if !hasIssue(err, typson.CodeTruncated, "") {
		t.Fatalf("expected truncated, got: %v", err)
	}
}

func TestStreamParse_WithinLimit(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	out, err := typson.StreamParse(ctx, ty, strings.NewReader(`{"name":"a"}`), typson.ParseOpt{MaxBytes: 1024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(map[string]any)["name"] != "a" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestParseFrom_YAMLBytes(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	src, err := typson.YAMLBytes([]byte("name: api\ncount: 8080\n"))
	if err != nil {
		t.Fatalf("yaml source: %v", err)
	}
	out, err := typson.ParseFrom(ctx, ty, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if m["name"] != "api" || m["count"] != json.Number("8080") {
		t.Fatalf("unexpected output: %v", m)
	}
}

func TestParseFrom_ValueSource(t *testing.T) {
	ctx := context.Background()
	ty := userSchema()
	out, err := typson.ParseFrom(ctx, ty, typson.ValueSource(map[string]any{
		"name":  "bob",
		"count": 2,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(map[string]any)["count"] != json.Number("2") {
		t.Fatalf("value source numbers must canonicalize: %v", out)
	}
}

func TestValidateFrom_NestedPaths(t *testing.T) {
	ctx := context.Background()
	ty := typson.MustInfer(&typson.ObjectNode{
		Properties: map[string]typson.Node{
			"tags": &typson.ArrayNode{Items: &typson.StringNode{}},
		},
	})
	err := typson.ValidateFrom(ctx, ty, typson.JSONBytes([]byte(`{"tags":["ok",3]}`)))
	if !hasIssue(err, typson.CodeInvalidType, "/tags/1") {
		t.Fatalf("expected invalid_type at /tags/1, got: %v", err)
	}
}

func TestParseFrom_FailFastStopsEarly(t *testing.T) {
	ctx := context.Background()
	ty := typson.MustInfer(&typson.ObjectNode{
		Properties: map[string]typson.Node{
			"a": &typson.StringNode{},
			"b": &typson.StringNode{},
		},
		Required: []string{"a", "b"},
	})
	_, err := typson.ParseFrom(ctx, ty, typson.JSONBytes([]byte(`{}`)), typson.ParseOpt{FailFast: true})
	iss, ok := typson.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("fail-fast should report a single issue, got: %v", err)
	}
}

func TestParseFrom_NilType(t *testing.T) {
	_, err := typson.ParseFrom(context.Background(), nil, typson.JSONBytes([]byte(`{}`)))
	if !hasIssue(err, typson.CodeParseError, "") {
		t.Fatalf("expected parse_error, got: %v", err)
	}
}
