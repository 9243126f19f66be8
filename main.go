package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	out := flag.String("out", "", "directory to write .nc files into (default: print to stdout)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] <source.lisp>\n\nEvaluates a spec source file and emits the generated G-code programs.\nPass \"-\" to read the source from stdin.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	source, err := readSource(flag.Arg(0))
	if err != nil {
		log.Fatalf("read source: %v", err)
	}

	result := NewApp().Evaluate(source)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(os.Stderr, "line %d: %s\n", e.Line, e.Message)
				continue
			}
			fmt.Fprintln(os.Stderr, e.Message)
		}
		os.Exit(1)
	}

	if *out == "" {
		for _, p := range result.Programs {
			fmt.Printf("( program: %s )\n%s", p.Name, p.Text)
		}
		return
	}

	for i, p := range result.Programs {
		path := filepath.Join(*out, outputName(p.Name, i))
		if err := os.WriteFile(path, []byte(p.Text), 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func readSource(arg string) (string, error) {
	if arg == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(arg)
	return string(b), err
}

// outputName turns a program label into a filesystem-safe .nc file name.
func outputName(name string, i int) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		}
		return '_'
	}, name)
	return fmt.Sprintf("%02d_%s.nc", i+1, safe)
}
