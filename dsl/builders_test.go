package dsl_test

import (
	"context"
	"encoding/json"
	"testing"

	typson "github.com/typson-dev/typson"
	g "github.com/typson-dev/typson/dsl"
)

func hasIssue(err error, code, path string) bool {
	iss, ok := typson.AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code != code {
			continue
		}
		if path == "" || it.Path == path {
			return true
		}
	}
	return false
}

func TestStringEnumNarrowing(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.String().Enum("active", "inactive"))

	if err := ty.Validate(ctx, "active"); err != nil {
		t.Fatalf("member rejected: %v", err)
	}
	err := ty.Validate(ctx, "paused")
	if !hasIssue(err, typson.CodeInvalidEnum, "/") {
		t.Fatalf("expected invalid_enum, got: %v", err)
	}
	err = ty.Validate(ctx, 42)
	if !hasIssue(err, typson.CodeInvalidType, "/") {
		t.Fatalf("expected invalid_type, got: %v", err)
	}
}

func TestObjectRequiredOptionalSplit(t *testing.T) {
	ctx := context.Background()
	ty := g.Object().
		Field("id", g.String()).
		Field("note", g.String()).
		Require("id").
		MustBuild()

	if err := ty.Validate(ctx, map[string]any{"id": "u1"}); err != nil {
		t.Fatalf("optional field absent should pass: %v", err)
	}
	err := ty.Validate(ctx, map[string]any{"note": "hi"})
	if !hasIssue(err, typson.CodeRequired, "/id") {
		t.Fatalf("expected required at /id, got: %v", err)
	}
}

func TestObjectAllOptionalWithoutRequire(t *testing.T) {
	ctx := context.Background()
	ty := g.Object().
		Field("a", g.String()).
		Field("b", g.Number()).
		MustBuild()
	if err := ty.Validate(ctx, map[string]any{}); err != nil {
		t.Fatalf("empty object should pass when nothing is required: %v", err)
	}
}

func TestArrayTuplePlusRest(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.Array().
		Prefix(g.String(), g.Number()).
		Items(g.Bool()))

	if err := ty.Validate(ctx, []any{"op", json.Number("1"), true, false}); err != nil {
		t.Fatalf("tuple with rest rejected: %v", err)
	}
	err := ty.Validate(ctx, []any{"op"})
	if !hasIssue(err, typson.CodeTooShort, "/") {
		t.Fatalf("expected too_short, got: %v", err)
	}
	err = ty.Validate(ctx, []any{"op", json.Number("1"), "nope"})
	if !hasIssue(err, typson.CodeInvalidType, "/2") {
		t.Fatalf("expected invalid_type at /2, got: %v", err)
	}
}

func TestArrayEmptyModes(t *testing.T) {
	ctx := context.Background()

	loose := g.MustCompile(g.Array())
	if err := loose.Validate(ctx, []any{"anything", json.Number("1")}); err != nil {
		t.Fatalf("unconstrained array default should tolerate elements: %v", err)
	}

	strict := g.MustCompile(g.Array(), typson.InferOpt{EmptyArrays: typson.EmptyArrayOnly})
	if err := strict.Validate(ctx, []any{}); err != nil {
		t.Fatalf("empty array must pass in empty-only mode: %v", err)
	}
	err := strict.Validate(ctx, []any{"x"})
	if !hasIssue(err, typson.CodeTooLong, "/0") {
		t.Fatalf("expected too_long at /0, got: %v", err)
	}
}

func TestMixedLiteralUnionIncludingNull(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.Literals("auto", 0, nil))

	for _, v := range []any{"auto", json.Number("0"), float64(0), nil} {
		if err := ty.Validate(ctx, v); err != nil {
			t.Fatalf("literal %v rejected: %v", v, err)
		}
	}
	err := ty.Validate(ctx, "manual")
	if !hasIssue(err, typson.CodeInvalidEnum, "/") {
		t.Fatalf("expected invalid_enum, got: %v", err)
	}
}

func TestOneOfFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.OneOf(g.String(), g.Number(), g.Null()))

	out, err := ty.Parse(ctx, float64(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != json.Number("5") {
		t.Fatalf("number member should normalize, got %T %v", out, out)
	}
	err = ty.Validate(ctx, true)
	if !hasIssue(err, typson.CodeUnionNoMatch, "/") {
		t.Fatalf("expected union_no_match, got: %v", err)
	}
}

func TestAllOfIntersection(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.AllOf(
		g.Object().Field("a", g.String()).Require("a").AllowUnknown(),
		g.Object().Field("b", g.Number()).Require("b").AllowUnknown(),
	))

	out, err := ty.Parse(ctx, map[string]any{"a": "x", "b": json.Number("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := out.(map[string]any)
	if m["a"] != "x" || m["b"] != json.Number("1") {
		t.Fatalf("merged result incomplete: %v", m)
	}

	err = ty.Validate(ctx, map[string]any{"a": "x"})
	if !hasIssue(err, typson.CodeRequired, "/allOf/1/b") {
		t.Fatalf("expected required at /allOf/1/b, got: %v", err)
	}
}

func TestAsyncFunctionSignature(t *testing.T) {
	ctx := context.Background()
	ty := g.MustCompile(g.Func().
		Param(g.String()).
		OptionalParam(g.Number()).
		Async().
		Returns(g.Bool()))

	ft, ok := ty.(typson.FuncType)
	if !ok {
		t.Fatalf("expected FuncType, got %T", ty)
	}
	if !ft.Async() {
		t.Fatalf("signature must be async")
	}
	if min, max := ft.Arity(); min != 1 || max != 2 {
		t.Fatalf("want arity (1,2), got (%d,%d)", min, max)
	}
	if ft.Result() == nil || ft.Result().Kind() != typson.KindBool {
		t.Fatalf("return type not projected")
	}

	if err := ty.Validate(ctx, func(s string) bool { return true }); err != nil {
		t.Fatalf("matching func rejected: %v", err)
	}
	if err := ty.Validate(ctx, func(s string, n, extra float64) bool { return true }); err == nil {
		t.Fatalf("arity overflow should fail")
	}
	if err := ty.Validate(ctx, "not a func"); !hasIssue(err, typson.CodeInvalidType, "/") {
		t.Fatalf("expected invalid_type, got: %v", err)
	}
}

func TestFieldRedeclarationReplaces(t *testing.T) {
	n := g.Object().
		Field("x", g.String()).
		Field("x", g.Number()).
		Node().(*typson.ObjectNode)
	if len(n.PropertyOrder) != 1 {
		t.Fatalf("redeclared key must not duplicate order: %v", n.PropertyOrder)
	}
	if _, ok := n.Properties["x"].(*typson.NumberNode); !ok {
		t.Fatalf("later declaration must win, got %T", n.Properties["x"])
	}
}

func TestBuilderJSONSchemaExport(t *testing.T) {
	ty := g.Object().
		Field("status", g.String().Enum("on", "off")).
		Field("level", g.Number()).
		Require("status").
		MustBuild()

	s, err := ty.JSONSchema()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if s.Type != "object" {
		t.Fatalf("want object, got %q", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "status" {
		t.Fatalf("required not exported: %v", s.Required)
	}
	st, ok := s.Properties["status"]
	if !ok || st.Type != "string" || len(st.Enum) != 2 {
		t.Fatalf("status property not exported: %+v", st)
	}
}
