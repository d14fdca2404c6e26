package typson

import "encoding/json"

// Node is a single declarative data-shape description. The variant set is
// closed: String/Number/Bool/Null/Object/Array/Enum/OneOf/AllOf/Func. Nodes
// are immutable pure data; they are constructed once (by dsl builders or by
// DecodeSchemaJSON/DecodeSchemaYAML) and then only read by Infer.
type Node interface {
	node()
}

// StringNode describes a string value, optionally narrowed to a literal set
// via Enum or tagged with a format name.
type StringNode struct {
	Enum        []string
	Format      string
	Default     any
	Description string
}

// NumberNode describes a numeric value. Literals are carried as json.Number
// so enum comparison is exact rather than float-rounded.
type NumberNode struct {
	Enum        []json.Number
	Default     any
	Description string
}

// BoolNode describes a boolean value. Enum is conventionally a singleton
// ([true] or [false]) and narrows to that literal.
type BoolNode struct {
	Enum        []bool
	Default     any
	Description string
}

// NullNode describes the null value. It carries no enum.
type NullNode struct {
	Description string
}

// ObjectNode describes a record with named properties. PropertyOrder keeps
// the author's insertion order for documentation output; it never affects
// validation.
type ObjectNode struct {
	Properties           map[string]Node
	PropertyOrder        []string
	Required             []string
	AdditionalProperties bool
	Default              any
	Description          string
}

// ArrayNode describes a sequence. PrefixItems type fixed leading positions;
// Items types the rest elements. AnyItems corresponds to items:true
// (unconstrained rest). With neither PrefixItems nor Items the node maps to
// an unconstrained array by default (see EmptyArrayMode).
type ArrayNode struct {
	PrefixItems []Node
	Items       Node
	AnyItems    bool
	Default     any
	Description string
}

// EnumNode describes a bare literal set without a base type. Values may mix
// strings, json.Number, bools and nil.
type EnumNode struct {
	Values      []any
	Description string
}

// OneOfNode describes a union: a value is valid iff it matches at least one
// alternative. Member order is the deterministic match order.
type OneOfNode struct {
	Alternatives []Node
	Description  string
}

// AllOfNode describes an intersection: a value is valid iff it satisfies
// every member simultaneously.
type AllOfNode struct {
	Members     []Node
	Description string
}

// Param is one positional parameter of a FuncNode.
type Param struct {
	Schema   Node
	Required bool
}

// FuncNode describes a callable signature: ordered params, an async flag and
// an optional result node. This is a deliberate, narrow extension beyond
// pure JSON-Schema so schemas can describe plugin hooks.
type FuncNode struct {
	Params      []Param
	Async       bool
	Result      Node
	Description string
}

func (*StringNode) node() {}
func (*NumberNode) node() {}
func (*BoolNode) node()   {}
func (*NullNode) node()   {}
func (*ObjectNode) node() {}
func (*ArrayNode) node()  {}
func (*EnumNode) node()   {}
func (*OneOfNode) node()  {}
func (*AllOfNode) node()  {}
func (*FuncNode) node()   {}
