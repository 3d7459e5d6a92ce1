// Command hml converts an HML document to XML on stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	hml "github.com/hml-lang/go-hml"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hml", flag.ContinueOnError)
	fs.SetOutput(stderr)
	version := fs.String("xml-version", "1.00", "XML version written in the declaration")
	output := fs.String("output", "", "write XML to `file` instead of stdout")
	fs.Usage = func() {
		writef(stderr, "usage: hml [flags] [file]\n\nReads HML from file (or stdin) and writes XML.\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	v, err := parseVersion(*version)
	if err != nil {
		writef(stderr, "hml: %v\n", err)
		return 2
	}

	var input []byte
	switch fs.NArg() {
	case 0:
		input, err = io.ReadAll(stdin)
	case 1:
		input, err = os.ReadFile(fs.Arg(0))
	default:
		fs.Usage()
		return 2
	}
	if err != nil {
		writef(stderr, "hml: %v\n", err)
		return 1
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			writef(stderr, "hml: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	return convert(string(input), v, out, stderr)
}

func convert(input string, version int, out, stderr io.Writer) int {
	r := hml.NewReader(input, hml.NewNamespace(false)).SetVersion(version)
	w := hml.NewXMLWriter(out, r.Namespace())
	for {
		ev, err := r.Next()
		if err != nil {
			writef(stderr, "hml: %v\n", err)
			var perr *hml.Error
			if errors.As(err, &perr) && perr.HasSpan {
				writef(stderr, "%s", r.Source().Context(perr.Span))
			}
			return 1
		}
		if err := w.WriteEvent(ev); err != nil {
			writef(stderr, "hml: %v\n", err)
			return 1
		}
		if ev.Type == hml.EventEndDocument {
			return 0
		}
	}
}

// parseVersion turns a decimal version like "1.00" into its value
// scaled by 100.
func parseVersion(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid xml version %q", s)
	}
	return int(math.Round(f * 100)), nil
}

func writef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
