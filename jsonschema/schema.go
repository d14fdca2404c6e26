package jsonschema

// Schema is a minimal JSON-Schema-dialect representation used for export.
// Keep this struct small and extend incrementally; the function fields are a
// typson dialect extension, not standard JSON Schema.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Enum        []any  `json:"enum,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       any       `json:"items,omitempty"` // *Schema or bool

	// Composition
	OneOf []*Schema `json:"oneOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`

	// Function extension
	Params []*ParamSchema `json:"params,omitempty"`
	Async  bool           `json:"async,omitempty"`
	Return *Schema        `json:"return,omitempty"`
}

// ParamSchema documents one positional parameter of a function schema.
type ParamSchema struct {
	Required bool    `json:"required,omitempty"`
	Schema   *Schema `json:"schema,omitempty"`
}
