package typson

import (
	"context"

	js "github.com/typson-dev/typson/jsonschema"
)

// TypeKind enumerates the projected type shapes.
type TypeKind int

const (
	KindString TypeKind = iota
	KindNumber
	KindBool
	KindNull
	KindObject
	KindArray
	KindUnion
	KindIntersection
	KindFunc
)

func (k TypeKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindFunc:
		return "func"
	default:
		return "null"
	}
}

// Type is the runtime projection of a Node. A Type is immutable and safe for
// concurrent use; it holds no shared state.
type Type interface {
	// Kind reports the projected shape.
	Kind() TypeKind

	// Validate checks v against the projected shape without conversion. It
	// returns Issues on failure and never mutates v.
	Validate(ctx context.Context, v any) error

	// Parse validates v and returns the normalized value: defaults applied
	// for absent optional object fields and unknown keys stripped under
	// UnknownStrip. Numbers surface as json.Number.
	Parse(ctx context.Context, v any) (any, error)

	// JSONSchema projects the type back into the JSON Schema dialect.
	JSONSchema() (*js.Schema, error)
}
