package typson

import (
	"context"
	"encoding/json"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/typson-dev/typson/i18n"
	js "github.com/typson-dev/typson/jsonschema"
)

// stringType projects a StringNode: the base string type, or the union of
// the listed literals when an enum is present.
type stringType struct {
	enum   []string
	format string
	def    any
	desc   string
}

func (t *stringType) Kind() TypeKind { return KindString }

func (t *stringType) Validate(ctx context.Context, v any) error {
	s, ok := v.(string)
	if !ok {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected string"}}
	}
	if len(t.enum) > 0 {
		found := false
		for _, e := range t.enum {
			if e == s {
				found = true
				break
			}
		}
		if !found {
			return Issues{{Path: "/", Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"got": s}}}
		}
	}
	if t.format != "" {
		if err := checkFormat(t.format, s); err != nil {
			return Issues{{Path: "/", Code: CodeInvalidFormat, Message: i18n.T(CodeInvalidFormat, nil), Hint: t.format, Cause: err}}
		}
	}
	return nil
}

func (t *stringType) Parse(ctx context.Context, v any) (any, error) {
	if err := t.Validate(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *stringType) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "string", Format: t.format, Default: t.def, Description: t.desc}
	for _, e := range t.enum {
		s.Enum = append(s.Enum, e)
	}
	return s, nil
}

var (
	emailLooseRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	uuidRe       = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// checkFormat validates well-known format tags. Unrecognized tags pass; the
// tag set is open for schema authors and documentation-only by default.
func checkFormat(format, s string) error {
	switch format {
	case "date-time":
		_, err := time.Parse(time.RFC3339, s)
		return err
	case "date":
		_, err := time.Parse("2006-01-02", s)
		return err
	case "email":
		if !emailLooseRe.MatchString(s) {
			return errFormat("email")
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return err
		}
		return nil
	case "uuid":
		if !uuidRe.MatchString(s) {
			return errFormat("uuid")
		}
		return nil
	case "uri":
		u, err := url.Parse(s)
		if err != nil {
			return err
		}
		if u.Scheme == "" {
			return errFormat("uri")
		}
		return nil
	}
	return nil
}

type formatError string

func (e formatError) Error() string { return "malformed " + string(e) }

func errFormat(name string) error { return formatError(name) }

// numberType projects a NumberNode. Values are carried as json.Number; enum
// comparison uses the canonical numeric form so 1, 1.0 and json.Number("1")
// all agree.
type numberType struct {
	enum []json.Number
	def  any
	desc string
}

func (t *numberType) Kind() TypeKind { return KindNumber }

func (t *numberType) Validate(ctx context.Context, v any) error {
	num, ok := canonNumber(v)
	if !ok {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
	}
	if len(t.enum) > 0 {
		found := false
		for _, e := range t.enum {
			if numberEqual(e, num) {
				found = true
				break
			}
		}
		if !found {
			return Issues{{Path: "/", Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"got": num.String()}}}
		}
	}
	return nil
}

func (t *numberType) Parse(ctx context.Context, v any) (any, error) {
	num, ok := canonNumber(v)
	if !ok {
		return nil, Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected number"}}
	}
	if err := t.Validate(ctx, num); err != nil {
		return nil, err
	}
	return num, nil
}

func (t *numberType) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "number", Default: t.def, Description: t.desc}
	for _, e := range t.enum {
		s.Enum = append(s.Enum, e)
	}
	return s, nil
}

// canonNumber coerces the numeric shapes that reach validators (json.Number
// from the JSON engine, int/float64 from YAML and hand-authored values) into
// json.Number.
func canonNumber(v any) (json.Number, bool) {
	switch n := v.(type) {
	case json.Number:
		return n, true
	case float64:
		return json.Number(strconv.FormatFloat(n, 'g', -1, 64)), true
	case float32:
		return json.Number(strconv.FormatFloat(float64(n), 'g', -1, 64)), true
	case int:
		return json.Number(strconv.FormatInt(int64(n), 10)), true
	case int64:
		return json.Number(strconv.FormatInt(n, 10)), true
	case uint64:
		return json.Number(strconv.FormatUint(n, 10)), true
	default:
		return "", false
	}
}

// numberEqual compares two json.Number values numerically, preferring exact
// integer comparison and falling back to float64.
func numberEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	if ai, err := a.Int64(); err == nil {
		if bi, err2 := b.Int64(); err2 == nil {
			return ai == bi
		}
	}
	af, aerr := a.Float64()
	bf, berr := b.Float64()
	if aerr != nil || berr != nil {
		return false
	}
	return af == bf
}

// boolType projects a BoolNode; a one-element enum narrows to that literal.
type boolType struct {
	enum []bool
	def  any
	desc string
}

func (t *boolType) Kind() TypeKind { return KindBool }

func (t *boolType) Validate(ctx context.Context, v any) error {
	b, ok := v.(bool)
	if !ok {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected boolean"}}
	}
	if len(t.enum) > 0 {
		found := false
		for _, e := range t.enum {
			if e == b {
				found = true
				break
			}
		}
		if !found {
			return Issues{{Path: "/", Code: CodeInvalidEnum, Message: i18n.T(CodeInvalidEnum, nil), Params: map[string]any{"got": b}}}
		}
	}
	return nil
}

func (t *boolType) Parse(ctx context.Context, v any) (any, error) {
	if err := t.Validate(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *boolType) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "boolean", Default: t.def, Description: t.desc}
	for _, e := range t.enum {
		s.Enum = append(s.Enum, e)
	}
	return s, nil
}

// nullType projects a NullNode. Only the null value is accepted.
type nullType struct {
	desc string
}

func (t *nullType) Kind() TypeKind { return KindNull }

func (t *nullType) Validate(ctx context.Context, v any) error {
	if v != nil {
		return Issues{{Path: "/", Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "expected null"}}
	}
	return nil
}

func (t *nullType) Parse(ctx context.Context, v any) (any, error) {
	if err := t.Validate(ctx, v); err != nil {
		return nil, err
	}
	return nil, nil
}

func (t *nullType) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Type: "null", Description: t.desc}, nil
}
