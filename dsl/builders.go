package dsl

import (
	"encoding/json"
	"strconv"

	typson "github.com/typson-dev/typson"
)

// NodeBuilder is implemented by every builder; Node materializes the
// schema node.
type NodeBuilder interface {
	Node() typson.Node
}

// Compile projects a built node into a runtime type in one step.
func Compile(b NodeBuilder, opts ...typson.InferOpt) (typson.Type, error) {
	return typson.Infer(b.Node(), opts...)
}

// MustCompile is Compile for statically known-good schemas.
func MustCompile(b NodeBuilder, opts ...typson.InferOpt) typson.Type {
	return typson.MustInfer(b.Node(), opts...)
}

// Raw adapts an existing node as a NodeBuilder, for mixing hand-authored
// nodes into builder trees.
func Raw(n typson.Node) NodeBuilder { return rawNode{n} }

type rawNode struct{ n typson.Node }

func (r rawNode) Node() typson.Node { return r.n }

// ---- string ----

// StringBuilder assembles a StringNode.
type StringBuilder struct{ n typson.StringNode }

// String returns a string node builder.
func String() *StringBuilder { return &StringBuilder{} }

// Enum narrows the node to the listed literals.
func (b *StringBuilder) Enum(vals ...string) *StringBuilder {
	b.n.Enum = append(b.n.Enum, vals...)
	return b
}

// Format tags the node with a format name (date-time, email, uuid, ...).
func (b *StringBuilder) Format(f string) *StringBuilder { b.n.Format = f; return b }

// Default records the default value applied for absent optional fields.
func (b *StringBuilder) Default(v string) *StringBuilder { b.n.Default = v; return b }

// Describe attaches documentation text.
func (b *StringBuilder) Describe(d string) *StringBuilder { b.n.Description = d; return b }

func (b *StringBuilder) Node() typson.Node { n := b.n; return &n }

// ---- number ----

// NumberBuilder assembles a NumberNode.
type NumberBuilder struct{ n typson.NumberNode }

// Number returns a number node builder.
func Number() *NumberBuilder { return &NumberBuilder{} }

// Enum narrows the node to the listed literals.
func (b *NumberBuilder) Enum(vals ...float64) *NumberBuilder {
	for _, v := range vals {
		b.n.Enum = append(b.n.Enum, json.Number(strconv.FormatFloat(v, 'g', -1, 64)))
	}
	return b
}

// EnumJSON narrows with exact json.Number literals, avoiding float rounding.
func (b *NumberBuilder) EnumJSON(vals ...json.Number) *NumberBuilder {
	b.n.Enum = append(b.n.Enum, vals...)
	return b
}

func (b *NumberBuilder) Default(v float64) *NumberBuilder {
	b.n.Default = json.Number(strconv.FormatFloat(v, 'g', -1, 64))
	return b
}

func (b *NumberBuilder) Describe(d string) *NumberBuilder { b.n.Description = d; return b }

func (b *NumberBuilder) Node() typson.Node { n := b.n; return &n }

// ---- boolean ----

// BoolBuilder assembles a BoolNode.
type BoolBuilder struct{ n typson.BoolNode }

// Bool returns a boolean node builder.
func Bool() *BoolBuilder { return &BoolBuilder{} }

// Enum narrows the node; conventionally a singleton (true) or (false).
func (b *BoolBuilder) Enum(vals ...bool) *BoolBuilder {
	b.n.Enum = append(b.n.Enum, vals...)
	return b
}

func (b *BoolBuilder) Default(v bool) *BoolBuilder { b.n.Default = v; return b }

func (b *BoolBuilder) Describe(d string) *BoolBuilder { b.n.Description = d; return b }

func (b *BoolBuilder) Node() typson.Node { n := b.n; return &n }

// ---- null ----

// Null returns a null node builder.
func Null() NodeBuilder { return rawNode{&typson.NullNode{}} }

// ---- object ----

// ObjectBuilder assembles an ObjectNode, preserving field insertion order
// for documentation output.
type ObjectBuilder struct{ n typson.ObjectNode }

// Object returns an object node builder.
func Object() *ObjectBuilder {
	return &ObjectBuilder{n: typson.ObjectNode{Properties: map[string]typson.Node{}}}
}

// Field declares a property. Redeclaring a key replaces the earlier schema.
func (b *ObjectBuilder) Field(name string, child NodeBuilder) *ObjectBuilder {
	if _, exists := b.n.Properties[name]; !exists {
		b.n.PropertyOrder = append(b.n.PropertyOrder, name)
	}
	b.n.Properties[name] = child.Node()
	return b
}

// Require marks keys as mandatory. Without any Require call all properties
// are optional.
func (b *ObjectBuilder) Require(keys ...string) *ObjectBuilder {
	b.n.Required = append(b.n.Required, keys...)
	return b
}

// AllowUnknown accepts arbitrary undeclared string-keyed fields
// (additionalProperties: true).
func (b *ObjectBuilder) AllowUnknown() *ObjectBuilder {
	b.n.AdditionalProperties = true
	return b
}

func (b *ObjectBuilder) Default(v map[string]any) *ObjectBuilder { b.n.Default = v; return b }

func (b *ObjectBuilder) Describe(d string) *ObjectBuilder { b.n.Description = d; return b }

func (b *ObjectBuilder) Node() typson.Node { n := b.n; return &n }

// Build projects the object into a runtime type.
func (b *ObjectBuilder) Build(opts ...typson.InferOpt) (typson.Type, error) {
	return typson.Infer(b.Node(), opts...)
}

// MustBuild is Build for statically known-good schemas.
func (b *ObjectBuilder) MustBuild(opts ...typson.InferOpt) typson.Type {
	return typson.MustInfer(b.Node(), opts...)
}

// ---- array ----

// ArrayBuilder assembles an ArrayNode.
type ArrayBuilder struct{ n typson.ArrayNode }

// Array returns an array node builder.
func Array() *ArrayBuilder { return &ArrayBuilder{} }

// Prefix appends fixed leading positions (tuple positions).
func (b *ArrayBuilder) Prefix(items ...NodeBuilder) *ArrayBuilder {
	for _, it := range items {
		b.n.PrefixItems = append(b.n.PrefixItems, it.Node())
	}
	return b
}

// Items types the rest elements after the prefix positions.
func (b *ArrayBuilder) Items(child NodeBuilder) *ArrayBuilder {
	b.n.Items = child.Node()
	return b
}

// AnyItems allows unconstrained rest elements (items: true).
func (b *ArrayBuilder) AnyItems() *ArrayBuilder { b.n.AnyItems = true; return b }

func (b *ArrayBuilder) Default(v []any) *ArrayBuilder { b.n.Default = v; return b }

func (b *ArrayBuilder) Describe(d string) *ArrayBuilder { b.n.Description = d; return b }

func (b *ArrayBuilder) Node() typson.Node { n := b.n; return &n }

// ---- enum / literals ----

// Literal builds a single-value enum node: exactly v is valid.
func Literal(v any) NodeBuilder {
	return rawNode{&typson.EnumNode{Values: []any{toLiteral(v)}}}
}

// Literals builds an enum node over mixed literals (string, number, boolean
// or nil).
func Literals(vals ...any) NodeBuilder {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		out = append(out, toLiteral(v))
	}
	return rawNode{&typson.EnumNode{Values: out}}
}

// toLiteral canonicalizes numeric literals to json.Number; other literal
// kinds pass through untouched.
func toLiteral(v any) any {
	switch t := v.(type) {
	case int:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case float64:
		return json.Number(strconv.FormatFloat(t, 'g', -1, 64))
	case float32:
		return json.Number(strconv.FormatFloat(float64(t), 'g', -1, 64))
	default:
		return v
	}
}

// ---- composition ----

// OneOf builds a union node; members are matched in argument order.
func OneOf(alts ...NodeBuilder) NodeBuilder {
	n := &typson.OneOfNode{}
	for _, alt := range alts {
		n.Alternatives = append(n.Alternatives, alt.Node())
	}
	return rawNode{n}
}

// AllOf builds an intersection node.
func AllOf(members ...NodeBuilder) NodeBuilder {
	n := &typson.AllOfNode{}
	for _, m := range members {
		n.Members = append(n.Members, m.Node())
	}
	return rawNode{n}
}

// ---- function ----

// FuncBuilder assembles a FuncNode describing a callable hook signature.
type FuncBuilder struct{ n typson.FuncNode }

// Func returns a function node builder.
func Func() *FuncBuilder { return &FuncBuilder{} }

// Param appends a mandatory positional parameter.
func (b *FuncBuilder) Param(child NodeBuilder) *FuncBuilder {
	b.n.Params = append(b.n.Params, typson.Param{Schema: child.Node(), Required: true})
	return b
}

// OptionalParam appends an optional positional parameter.
func (b *FuncBuilder) OptionalParam(child NodeBuilder) *FuncBuilder {
	b.n.Params = append(b.n.Params, typson.Param{Schema: child.Node()})
	return b
}

// Async marks the signature as resolving asynchronously.
func (b *FuncBuilder) Async() *FuncBuilder { b.n.Async = true; return b }

// Returns declares the result node.
func (b *FuncBuilder) Returns(child NodeBuilder) *FuncBuilder {
	b.n.Result = child.Node()
	return b
}

func (b *FuncBuilder) Describe(d string) *FuncBuilder { b.n.Description = d; return b }

func (b *FuncBuilder) Node() typson.Node { n := b.n; return &n }
