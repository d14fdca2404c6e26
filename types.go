package typson

import "context"

// UnknownPolicy controls how object keys outside the declared properties are
// handled when additionalProperties is false.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys during Parse.
)

// EmptyArrayMode dictates how an array node with neither prefixItems nor
// items projects. The permissive default mirrors the original behavior; the
// strict mode is the reconsidered alternative.
type EmptyArrayMode int

const (
	EmptyArrayAny  EmptyArrayMode = iota // Unconstrained element array.
	EmptyArrayOnly                       // Only the empty array is valid.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys in value sources.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// InferOpt bundles projection options.
type InferOpt struct {
	// MaxDepth caps the schema tree depth walked by Infer. Zero means the
	// default of 64; self-referential node graphs fail with max_depth
	// instead of exhausting the stack.
	MaxDepth int
	// Unknown selects the runtime semantics for undeclared object keys when
	// additionalProperties is false.
	Unknown UnknownPolicy
	// EmptyArrays selects the projection of array nodes that declare neither
	// prefixItems nor items.
	EmptyArrays EmptyArrayMode
}

// ParseOpt bundles value-source parsing options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	FailFast   bool
}

// ---- Parse-time context options ----

type contextKey int

const _ctxKeyFailFast contextKey = iota

// WithFailFast returns a child context that marks fail-fast behavior. It is
// set by ParseFrom/ValidateFrom based on ParseOpt and consumed by Type
// implementations.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether the current run should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
