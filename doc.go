// Package typson projects declarative schema nodes into runtime types.
//
//   - A closed Node model (string/number/boolean/null/object/array/enum/oneOf/allOf/function)
//   - Infer: one total dispatcher from Node to Type (Parse/Validate/JSONSchema)
//   - A stable error model via Issues (JSON Pointer, code, message)
//   - Schema documents and value inputs via Source (JSON bytes/reader, YAML, in-memory values)
//
// Design policy:
//   - Keep only public APIs in the root package; put detailed implementations under internal/.
//   - Place builders under dsl/, the JSON Schema export model under jsonschema/, and the CLI under cmd/typson.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	n := dsl.Object().
//		Field("status", dsl.String().Enum("active", "inactive")).
//		Require("status").
//		Node()
//	ty, err := typson.Infer(n)
//	err = typson.ValidateFrom(ctx, ty, typson.JSONBytes(data))
package typson
