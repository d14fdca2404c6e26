package typson

import (
	"context"
	"strconv"

	"github.com/typson-dev/typson/i18n"
	js "github.com/typson-dev/typson/jsonschema"
)

// arrayType projects an ArrayNode: fixed leading positions typed by prefix,
// trailing elements typed by rest. With neither, the projection follows
// emptyMode (unconstrained by default, empty-only in the strict mode).
type arrayType struct {
	prefix    []Type
	rest      Type
	anyRest   bool
	emptyMode EmptyArrayMode
	def       any
	desc      string
}

func (a *arrayType) Kind() TypeKind { return KindArray }

func (a *arrayType) Validate(ctx context.Context, v any) error {
	src, ok := v.([]any)
	if !ok {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
	}
	var iss Issues
	if len(src) < len(a.prefix) {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooShort, Message: i18n.T(CodeTooShort, nil), Hint: "array shorter than prefixItems"})
		if IsFailFast(ctx) {
			return iss
		}
	}
	for i, el := range src {
		et := a.elementType(i)
		if et == nil {
			if a.tolerateExtra(i) {
				continue
			}
			iss = AppendIssues(iss, Issue{Path: "/" + strconv.Itoa(i), Code: CodeTooLong, Message: i18n.T(CodeTooLong, nil), Hint: "no schema for trailing element"})
			if IsFailFast(ctx) {
				return iss
			}
			continue
		}
		if err := et.Validate(ctx, el); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
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

// elementType returns the schema type for position i, or nil when no schema
// constrains it (either tolerated or an error, see tolerateExtra).
func (a *arrayType) elementType(i int) Type {
	if i < len(a.prefix) {
		return a.prefix[i]
	}
	return a.rest
}

// tolerateExtra reports whether an element beyond the typed positions is
// acceptable: items:true, or the permissive no-items/no-prefix default.
func (a *arrayType) tolerateExtra(i int) bool {
	if a.anyRest {
		return true
	}
	if len(a.prefix) == 0 && a.rest == nil {
		return a.emptyMode == EmptyArrayAny
	}
	return false
}

func (a *arrayType) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.([]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected array"}}
	}
	var iss Issues
	if len(src) < len(a.prefix) {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeTooShort, Message: i18n.T(CodeTooShort, nil), Hint: "array shorter than prefixItems"})
		if IsFailFast(ctx) {
			return nil, iss
		}
	}
	out := make([]any, 0, len(src))
	for i, el := range src {
		et := a.elementType(i)
		if et == nil {
			if a.tolerateExtra(i) {
				out = append(out, el)
				continue
			}
			iss = AppendIssues(iss, Issue{Path: "/" + strconv.Itoa(i), Code: CodeTooLong, Message: i18n.T(CodeTooLong, nil), Hint: "no schema for trailing element"})
			if IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		parsed, err := et.Parse(ctx, el)
		if err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+strconv.Itoa(i), err)...)
			if IsFailFast(ctx) {
				return nil, iss
			}
			continue
		}
		out = append(out, parsed)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (a *arrayType) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "array", Default: a.def, Description: a.desc}
	for _, p := range a.prefix {
		ps, err := p.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.PrefixItems = append(s.PrefixItems, ps)
	}
	switch {
	case a.rest != nil:
		rs, err := a.rest.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Items = rs
	case a.anyRest:
		s.Items = true
	case len(a.prefix) > 0:
		s.Items = false
	case a.emptyMode == EmptyArrayOnly:
		s.Items = false
	}
	return s, nil
}
