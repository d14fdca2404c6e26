package typson

import (
	"context"
	"errors"
	"io"

	eng "github.com/typson-dev/typson/internal/engine"
)

// ParseFrom is the primary value entry point. It consumes tokens from the
// Source with enforcement (duplicate keys, depth, size), builds an any value,
// and delegates normalization to the Type.
func ParseFrom(ctx context.Context, t Type, src Source, opts ...ParseOpt) (any, error) {
	if t == nil {
		return nil, singleIssue(CodeParseError, "nil type")
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	// propagate fail-fast intent via context for type implementations
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return nil, toIssues(err)
	}
	return t.Parse(ctx, v)
}

// ValidateFrom consumes the Source and validates the decoded value without
// normalization.
func ValidateFrom(ctx context.Context, t Type, src Source, opts ...ParseOpt) error {
	if t == nil {
		return singleIssue(CodeParseError, "nil type")
	}
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.FailFast {
		ctx = WithFailFast(ctx, true)
	}
	v, err := decodeAnyFromSource(src, opt)
	if err != nil {
		return toIssues(err)
	}
	return t.Validate(ctx, v)
}

// StreamParse validates input by streaming tokens from an io.Reader. When
// MaxBytes is set it enforces the size cap up front, otherwise it delegates
// directly to ParseFrom via the Source driver.
func StreamParse(ctx context.Context, t Type, r io.Reader, opts ...ParseOpt) (any, error) {
	if len(opts) > 0 && opts[len(opts)-1].MaxBytes > 0 {
		max := opts[len(opts)-1].MaxBytes
		lr := io.LimitReader(r, max+1)
		data, err := io.ReadAll(lr)
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > max {
			return nil, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return ParseFrom(ctx, t, JSONBytes(data), opts...)
	}
	return ParseFrom(ctx, t, JSONReader(r), opts...)
}

// ---- helpers (decode, error mapping) ----

func decodeAnyFromSource(src Source, opt ParseOpt) (any, error) {
	engSrc := &tokenSourceAdapter{inner: src}
	enforced := eng.WrapWithEnforcement(engSrc, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		FailFast:    opt.FailFast,
	})
	return eng.DecodeAnyFromSource(enforced)
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Message: err.Error()})
}

func singleIssue(code, msg string) Issues { return AppendIssues(nil, Issue{Code: code, Message: msg}) }
