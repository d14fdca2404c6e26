package typson

import (
	"context"
	"reflect"

	"github.com/typson-dev/typson/i18n"
	js "github.com/typson-dev/typson/jsonschema"
)

// FuncType is the extended surface of function-kind Types: callers that need
// the signature (hook wiring, documentation) assert Type to FuncType.
type FuncType interface {
	Type
	// Async reports whether the signature resolves asynchronously.
	Async() bool
	// Result returns the projected return type, or nil when the signature
	// has no meaningful result.
	Result() Type
	// Arity returns the mandatory and maximum positional parameter counts.
	Arity() (min, max int)
}

// funcParam is one positional parameter of a funcType.
type funcParam struct {
	typ      Type
	required bool
}

// funcType projects a FuncNode into a callable signature. Parameter and
// result types are fully projected for documentation and export; at runtime
// a Go func value can only be checked structurally (func kind and arity),
// since Go carries no schema information in its function types.
type funcType struct {
	params []funcParam
	async  bool
	result Type
	desc   string
}

var _ FuncType = (*funcType)(nil)

func (f *funcType) Kind() TypeKind { return KindFunc }

func (f *funcType) Arity() (min, max int) {
	for _, p := range f.params {
		if p.required {
			min++
		}
	}
	return min, len(f.params)
}

func (f *funcType) Validate(ctx context.Context, v any) error {
	if v == nil {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected function"}}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected function"}}
	}
	if rv.IsNil() {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "nil function"}}
	}
	min, max := f.Arity()
	rt := rv.Type()
	n := rt.NumIn()
	if rt.IsVariadic() {
		n--
		if n > max {
			return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "too many parameters"}}
		}
		return nil
	}
	if n < min {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "missing required parameters"}}
	}
	if n > max {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "too many parameters"}}
	}
	return nil
}

func (f *funcType) Parse(ctx context.Context, v any) (any, error) {
	if err := f.Validate(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (f *funcType) Async() bool { return f.async }

func (f *funcType) Result() Type { return f.result }

func (f *funcType) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "function", Async: f.async, Description: f.desc}
	for _, p := range f.params {
		ps, err := p.typ.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Params = append(s.Params, &js.ParamSchema{Required: p.required, Schema: ps})
	}
	if f.result != nil {
		rs, err := f.result.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Return = rs
	}
	return s, nil
}
