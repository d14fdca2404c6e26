package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	typson "github.com/typson-dev/typson"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "typson CLI\n\nUsage:\n  typson validate -schema schema.json -in value.json [-strip] [-dup error|warn] [-max-depth N] [-max-bytes N]\n  typson export -schema schema.json [-o out.json]\n\nSchema and value files may be JSON or YAML; the extension decides.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, inPath, dup string
	var strip bool
	var maxDepth int
	var maxBytes int64
	fs.StringVar(&schemaPath, "schema", "", "schema document (json or yaml)")
	fs.StringVar(&inPath, "in", "", "value document to validate (json or yaml)")
	fs.BoolVar(&strip, "strip", false, "drop undeclared object keys instead of rejecting them")
	fs.StringVar(&dup, "dup", "", "duplicate key handling: error or warn")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum value nesting depth (0 = unlimited)")
	fs.Int64Var(&maxBytes, "max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	_ = fs.Parse(args)
	if schemaPath == "" || inPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	ty := loadType(schemaPath, strip)

	data, err := os.ReadFile(inPath)
	if err != nil {
		fatalf("read value: %v", err)
	}
	src, err := valueSource(inPath, data)
	if err != nil {
		fatalf("value source: %v", err)
	}

	var popt typson.ParseOpt
	popt.MaxDepth = maxDepth
	popt.MaxBytes = maxBytes
	switch dup {
	case "error":
		popt.Strictness.OnDuplicateKey = typson.Error
	case "warn":
		popt.Strictness.OnDuplicateKey = typson.Warn
	case "":
	default:
		fatalf("unknown -dup value %q", dup)
	}

	out, err := typson.ParseFrom(context.Background(), ty, src, popt)
	if err != nil {
		printIssues(err)
		os.Exit(1)
	}
	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fatalf("encode: %v", err)
	}
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var schemaPath, out string
	fs.StringVar(&schemaPath, "schema", "", "schema document (json or yaml)")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	ty := loadType(schemaPath, false)
	js, err := ty.JSONSchema()
	if err != nil {
		fatalf("export: %v", err)
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			fatalf("create %s: %v", out, err)
		}
		defer f.Close()
		w = f
	}
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(js); err != nil {
		fatalf("encode: %v", err)
	}
}

// loadType reads a schema document, decodes it into a node tree and projects
// it into a runtime type.
func loadType(path string, strip bool) typson.Type {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	var n typson.Node
	if isYAML(path) {
		n, err = typson.DecodeSchemaYAML(data)
	} else {
		n, err = typson.DecodeSchemaJSON(data)
	}
	if err != nil {
		printIssues(err)
		os.Exit(1)
	}
	var iopt typson.InferOpt
	if strip {
		iopt.Unknown = typson.UnknownStrip
	}
	ty, err := typson.Infer(n, iopt)
	if err != nil {
		printIssues(err)
		os.Exit(1)
	}
	return ty
}

func valueSource(path string, data []byte) (typson.Source, error) {
	if isYAML(path) {
		return typson.YAMLBytes(data)
	}
	return typson.JSONBytes(data), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// printIssues renders issues one per line, or the raw error when the failure
// is not issue-shaped.
func printIssues(err error) {
	iss, ok := typson.AsIssues(err)
	if !ok {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	for _, it := range iss {
		line := fmt.Sprintf("%s\t%s", it.Path, it.Code)
		if it.Message != "" {
			line += "\t" + it.Message
		}
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		fmt.Fprintln(os.Stderr, line)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
