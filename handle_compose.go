package typson

import (
	"context"
	"strconv"

	"github.com/typson-dev/typson/i18n"
	js "github.com/typson-dev/typson/jsonschema"
)

// enumType projects an EnumNode: a bare literal set that may mix strings,
// numbers, bools and null.
type enumType struct {
	values []any
	desc   string
}

func (e *enumType) Kind() TypeKind { return KindUnion }

func (e *enumType) Validate(ctx context.Context, v any) error {
	for _, lit := range e.values {
		if literalEqual(lit, v) {
			return nil
		}
	}
	return Issues{{Path: "/", Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"count": len(e.values)}}}
}

func (e *enumType) Parse(ctx context.Context, v any) (any, error) {
	if err := e.Validate(ctx, v); err != nil {
		return nil, err
	}
	if num, ok := canonNumber(v); ok {
		return num, nil
	}
	return v, nil
}

func (e *enumType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Enum: append([]any(nil), e.values...), Description: e.desc}, nil
}

// literalEqual compares an enum literal with an input value. Numeric
// literals compare canonically so 200, 200.0 and json.Number("200") agree.
func literalEqual(lit, v any) bool {
	if lit == nil || v == nil {
		return lit == nil && v == nil
	}
	if ln, ok := canonNumber(lit); ok {
		vn, ok2 := canonNumber(v)
		return ok2 && numberEqual(ln, vn)
	}
	switch l := lit.(type) {
	case string:
		s, ok := v.(string)
		return ok && s == l
	case bool:
		b, ok := v.(bool)
		return ok && b == l
	default:
		return false
	}
}

// unionType projects a OneOfNode. Members are tried in list order; the first
// match wins, which keeps diagnostics deterministic.
type unionType struct {
	alts []Type
	desc string
}

func (u *unionType) Kind() TypeKind { return KindUnion }

func (u *unionType) Validate(ctx context.Context, v any) error {
	for _, alt := range u.alts {
		if alt.Validate(ctx, v) == nil {
			return nil
		}
	}
	return Issues{{Path: "/", Code: CodeUnionNoMatch, Message: i18n.T(CodeUnionNoMatch, nil), Params: map[string]any{"members": len(u.alts)}}}
}

func (u *unionType) Parse(ctx context.Context, v any) (any, error) {
	for _, alt := range u.alts {
		if parsed, err := alt.Parse(ctx, v); err == nil {
			return parsed, nil
		}
	}
	return nil, Issues{{Path: "/", Code: CodeUnionNoMatch, Message: i18n.T(CodeUnionNoMatch, nil), Params: map[string]any{"members": len(u.alts)}}}
}

func (u *unionType) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Description: u.desc}
	for _, alt := range u.alts {
		as, err := alt.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, as)
	}
	return out, nil
}

// intersectionType projects an AllOfNode: every member must accept the value.
// Member issues surface under /allOf/<i> so the failing member is visible.
type intersectionType struct {
	members []Type
	desc    string
}

func (a *intersectionType) Kind() TypeKind { return KindIntersection }

func (a *intersectionType) Validate(ctx context.Context, v any) error {
	var iss Issues
	for i, m := range a.members {
		if err := m.Validate(ctx, v); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/allOf/"+strconv.Itoa(i), err)...)
			if IsFailFast(ctx) {
				return iss
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Parse validates against every member and merges the member results: when
// all members parse to objects the maps are merged in member order (later
// members win on key collision), which is the runtime analogue of an
// intersection of record types. Otherwise the first member's result stands.
func (a *intersectionType) Parse(ctx context.Context, v any) (any, error) {
	var iss Issues
	results := make([]any, 0, len(a.members))
	for i, m := range a.members {
		parsed, err := m.Parse(ctx, v)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/allOf/"+strconv.Itoa(i), err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		results = append(results, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	if len(results) == 0 {
		return v, nil
	}
	merged := make(map[string]any)
	allMaps := true
	for _, r := range results {
		m, ok := r.(map[string]any)
		if !ok {
			allMaps = false
			break
		}
		for k, val := range m {
			merged[k] = val
		}
	}
	if allMaps {
		return merged, nil
	}
	return results[0], nil
}

func (a *intersectionType) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Description: a.desc}
	for _, m := range a.members {
		ms, err := m.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.AllOf = append(out.AllOf, ms)
	}
	return out, nil
}
