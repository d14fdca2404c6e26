package typson

import (
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"

	eng "github.com/typson-dev/typson/internal/engine"
	jsonsrc "github.com/typson-dev/typson/source/json"
)

// tokenKind enumerates value-stream token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string // Stored as text; decoded downstream as json.Number.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic value inputs.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is backed by goccy/go-json and may be swapped with
// SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewBytes(b)}
}
func (defaultJSONDriver) Name() string { return "go-json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// YAMLBytes decodes YAML and replays it as a Source. Depth and duplicate-key
// enforcement apply to the replayed tree the same way as to JSON input.
func YAMLBytes(b []byte) (Source, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return ValueSource(normalizeYAML(v)), nil
}

// ValueSource replays an in-memory value tree (maps, slices, primitives) as
// a Source, so hand-built values flow through the same enforcement path.
func ValueSource(v any) Source {
	s := &valueSource{}
	s.push(v)
	return s
}

// ---- value replay source ----

type valueFrameKind int

const (
	frameLeaf valueFrameKind = iota
	frameObject
	frameArray
)

type valueFrame struct {
	kind valueFrameKind
	obj  []kv
	arr  []any
	leaf any
	idx  int
	// for objects: emit key before value
	keyPending bool
	opened     bool
}

type kv struct {
	k string
	v any
}

type valueSource struct {
	stack []valueFrame
}

func (s *valueSource) push(v any) {
	switch t := v.(type) {
	case map[string]any:
		kvs := make([]kv, 0, len(t))
		for k, val := range t {
			kvs = append(kvs, kv{k: k, v: val})
		}
		sortKVs(kvs)
		s.stack = append(s.stack, valueFrame{kind: frameObject, obj: kvs})
	case []any:
		s.stack = append(s.stack, valueFrame{kind: frameArray, arr: t})
	default:
		s.stack = append(s.stack, valueFrame{kind: frameLeaf, leaf: v})
	}
}

func sortKVs(kvs []kv) {
	// insertion sort; value objects are small and this keeps replay deterministic
	for i := 1; i < len(kvs); i++ {
		for j := i; j > 0 && kvs[j].k < kvs[j-1].k; j-- {
			kvs[j], kvs[j-1] = kvs[j-1], kvs[j]
		}
	}
}

func (s *valueSource) NextToken() (Token, error) {
	if len(s.stack) == 0 {
		return Token{}, io.EOF
	}
	top := &s.stack[len(s.stack)-1]

	switch top.kind {
	case frameLeaf:
		tok := leafToken(top.leaf)
		s.stack = s.stack[:len(s.stack)-1]
		return tok, nil
	case frameObject:
		if !top.opened {
			top.opened = true
			top.keyPending = true
			return Token{Kind: _tokenBeginObject, Offset: -1}, nil
		}
		if top.idx >= len(top.obj) {
			s.stack = s.stack[:len(s.stack)-1]
			return Token{Kind: _tokenEndObject, Offset: -1}, nil
		}
		if top.keyPending {
			top.keyPending = false
			return Token{Kind: _tokenKey, String: top.obj[top.idx].k, Offset: -1}, nil
		}
		v := top.obj[top.idx].v
		top.idx++
		top.keyPending = true
		s.push(v)
		return s.NextToken()
	default:
		if !top.opened {
			top.opened = true
			return Token{Kind: _tokenBeginArray, Offset: -1}, nil
		}
		if top.idx >= len(top.arr) {
			s.stack = s.stack[:len(s.stack)-1]
			return Token{Kind: _tokenEndArray, Offset: -1}, nil
		}
		v := top.arr[top.idx]
		top.idx++
		s.push(v)
		return s.NextToken()
	}
}

func leafToken(v any) Token {
	switch t := v.(type) {
	case nil:
		return Token{Kind: _tokenNull, Offset: -1}
	case string:
		return Token{Kind: _tokenString, String: t, Offset: -1}
	case bool:
		return Token{Kind: _tokenBool, Bool: t, Offset: -1}
	default:
		if num, ok := canonNumber(v); ok {
			return Token{Kind: _tokenNumber, Number: num.String(), Offset: -1}
		}
		// unsupported leaves degrade to their string form
		return Token{Kind: _tokenString, String: fmt.Sprint(v), Offset: -1}
	}
}

func (s *valueSource) Location() int64 { return -1 }

// ---- Source -> engine.TokenSource adapter ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{
		Kind:   toEngineKind(t.Kind),
		String: t.String,
		Number: t.Number,
		Bool:   t.Bool,
		Offset: t.Offset,
	}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

type engineSourceAdapter struct{ inner eng.TokenSource }

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	default:
		return _tokenNull
	}
}
