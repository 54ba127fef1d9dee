package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/raymyers/eopcheck/pkg/lexer"
	"github.com/raymyers/eopcheck/pkg/parser"
	"golang.org/x/sync/errgroup"
)

// options are the resolved settings for one run
type options struct {
	MaxDepth      int
	Keywords      []string
	NestedMembers bool
	Jobs          int
	DumpExpr      bool
	DumpNames     bool
	Verbose       bool
}

func (o options) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMaxDepth(o.MaxDepth),
		parser.WithKeywords(o.Keywords...),
		parser.WithNestedMembers(o.NestedMembers),
	}
}

// result is the outcome of checking one file
type result struct {
	file    string
	src     string
	readErr error
	err     error
	exprs   []parser.Expression
	names   []declared
}

type declared struct {
	name       string
	isTemplate bool
}

// checkFile reads and parses one file. It never fails itself; problems
// are recorded in the result.
func checkFile(filename string, opts options) result {
	r := result{file: filename}
	content, err := os.ReadFile(filename)
	if err != nil {
		r.readErr = err
		return r
	}
	r.src = string(content)

	popts := opts.parserOptions()
	if opts.DumpExpr {
		popts = append(popts, parser.WithExpressionHook(func(e parser.Expression) {
			r.exprs = append(r.exprs, e)
		}))
	}

	p := parser.New(lexer.New(r.src, lexer.Position{File: filename}), popts...)
	r.err = p.Parse()

	if opts.DumpNames {
		for _, n := range p.Registry().Names() {
			isTemplate, _ := p.Registry().Lookup(n)
			r.names = append(r.names, declared{name: n.String(), isTemplate: isTemplate})
		}
	}
	return r
}

// checkFiles checks files with up to opts.Jobs parsers running at once and
// prints the results in argument order
func checkFiles(ctx context.Context, files []string, opts options, out, errOut io.Writer) error {
	results := make([]result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(f, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !printResult(r, opts, out, errOut) {
			failed++
		}
	}
	if failed > 0 {
		if len(files) > 1 {
			fmt.Fprintf(errOut, "eopcheck: %d of %d files failed\n", failed, len(files))
		}
		return ErrCheckFailed
	}
	return nil
}

// printResult writes the dumps and diagnostics for r and reports whether
// the file parsed
func printResult(r result, opts options, out, errOut io.Writer) bool {
	if r.readErr != nil {
		fmt.Fprintf(errOut, "eopcheck: error reading %s: %v\n", r.file, r.readErr)
		return false
	}

	for _, e := range r.exprs {
		fmt.Fprintf(out, "%s: %s\n", e.Pos, e.Stack)
	}
	for _, d := range r.names {
		if d.isTemplate {
			fmt.Fprintf(out, "%s: %s template\n", r.file, d.name)
		} else {
			fmt.Fprintf(out, "%s: %s\n", r.file, d.name)
		}
	}

	if r.err != nil {
		reportError(errOut, r.err, r.src)
		return false
	}
	if opts.Verbose {
		fmt.Fprintf(errOut, "eopcheck: %s: ok\n", r.file)
	}
	return true
}
