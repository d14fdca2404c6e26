package typson

import (
	"context"
	"sort"

	"github.com/typson-dev/typson/i18n"
	js "github.com/typson-dev/typson/jsonschema"
)

// objectField is one declared property of an objectType.
type objectField struct {
	typ      Type
	required bool
	def      any
	hasDef   bool
}

// objectType projects an ObjectNode into a record validator: required keys
// mandatory, the rest optional, unknown keys governed by additionalProperties
// and the UnknownPolicy.
type objectType struct {
	fields     map[string]objectField
	additional bool
	unknown    UnknownPolicy
	def        any
	desc       string
	// sortedKeys is computed once at projection time and only read afterwards;
	// Validate/Parse must not mutate the type, which stays safe for concurrent
	// use without locking.
	sortedKeys []string
}

func (o *objectType) Kind() TypeKind { return KindObject }

func (o *objectType) Validate(ctx context.Context, v any) error {
	src, ok := v.(map[string]any)
	if !ok {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}
	var iss Issues
	for _, k := range o.sortedKeys {
		f := o.fields[k]
		val, exists := src[k]
		if !exists {
			if f.required {
				iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required property missing"})
				if IsFailFast(ctx) {
					return iss
				}
			}
			continue
		}
		if err := f.typ.Validate(ctx, val); err != nil {
			iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
			if IsFailFast(ctx) {
				return iss
			}
		}
	}
	iss = AppendIssues(iss, o.checkUnknown(src)...)
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// checkUnknown reports undeclared keys in key-sorted order. Under UnknownStrip
// they are tolerated here and removed by Parse.
func (o *objectType) checkUnknown(src map[string]any) Issues {
	if o.additional || o.unknown == UnknownStrip {
		return nil
	}
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	var iss Issues
	for _, k := range uks {
		iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
	}
	return iss
}

func (o *objectType) Parse(ctx context.Context, v any) (any, error) {
	src, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected object"}}
	}
	out := make(map[string]any, len(src))
	var iss Issues
	for _, k := range o.sortedKeys {
		f := o.fields[k]
		if val, exists := src[k]; exists {
			parsed, err := f.typ.Parse(ctx, val)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
				if IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		// missing: apply default if provided; otherwise enforce required
		if f.hasDef {
			parsed, err := f.typ.Parse(ctx, f.def)
			if err != nil {
				iss = AppendIssues(iss, rebaseIssues("/"+k, err)...)
				if IsFailFast(ctx) {
					return nil, iss
				}
				continue
			}
			out[k] = parsed
			continue
		}
		if f.required {
			iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeRequired, Message: i18n.T(CodeRequired, nil), Hint: "required property missing"})
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	// unknown keys in key-sorted order
	uks := make([]string, 0, len(src))
	for k := range src {
		if _, known := o.fields[k]; !known {
			uks = append(uks, k)
		}
	}
	sort.Strings(uks)
	for _, k := range uks {
		switch {
		case o.additional:
			out[k] = src[k]
		case o.unknown == UnknownStrip:
			// drop
		default:
			iss = AppendIssues(iss, Issue{Path: "/" + k, Code: CodeUnknownKey, Message: i18n.T(CodeUnknownKey, nil)})
			if IsFailFast(ctx) {
				return nil, iss
			}
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func (o *objectType) JSONSchema() (*js.Schema, error) {
	props := make(map[string]*js.Schema, len(o.fields))
	for k, f := range o.fields {
		ps, err := f.typ.JSONSchema()
		if err != nil {
			return nil, err
		}
		props[k] = ps
	}
	// Required list (sorted for deterministic output)
	var req []string
	for k, f := range o.fields {
		if f.required {
			req = append(req, k)
		}
	}
	sort.Strings(req)
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             req,
		AdditionalProperties: o.additional,
		Default:              o.def,
		Description:          o.desc,
	}, nil
}
