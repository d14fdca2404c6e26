// Package dsl provides the builder functions for typson schema nodes.
//
// Builders are purely structural constructors: they assemble Node literals
// and never validate their input against a meta-schema. Structural checks
// (required keys present in properties, non-empty enums) happen when the
// tree is projected via typson.Infer.
//
//	n := dsl.Object().
//		Field("type", dsl.Literal("user")).
//		Field("id", dsl.String().Format("uuid")).
//		Require("type").
//		Node()
package dsl
