package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/quadpas/internal/diag"
	"github.com/jcorbin/quadpas/internal/panicerr"
	"github.com/jcorbin/quadpas/internal/source"
)

type checkResult struct {
	name string
	out  bytes.Buffer
	ok   bool
}

func (res *checkResult) check(opts []CompileOption) {
	log := diag.New(&res.out)
	in, err := source.Open(res.name)
	if err != nil {
		log.ErrorIf(err)
		return
	}
	defer in.Close()
	opts = append([]CompileOption{
		WithDiagnostics(log.Printf),
		WithVerdict(&res.out),
	}, opts...)
	_, err = Compile(in, opts...)
	res.ok = err == nil
}

// checkFiles compiles each named file independently, at most jobs at a time,
// then writes every file's diagnostics and verdict to out in the order given.
// It returns the number of files that failed to compile.
func checkFiles(ctx context.Context, out io.Writer, jobs int, names []string, opts ...CompileOption) (int, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]checkResult, len(names))
	sem := make(chan struct{}, jobs)
	eg, ctx := errgroup.WithContext(ctx)
	for i := range names {
		res := &results[i]
		res.name = names[i]
		eg.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()
			if err := panicerr.Recover(res.name, func() error {
				res.check(opts)
				return nil
			}); err != nil {
				fmt.Fprintf(&res.out, "%v: %+v\n", diag.Error, err)
				res.ok = false
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return 0, err
	}

	failed := 0
	for i := range results {
		res := &results[i]
		if !res.ok {
			failed++
		}
		if _, err := fmt.Fprintf(out, "== %v\n", res.name); err != nil {
			return failed, err
		}
		if _, err := res.out.WriteTo(out); err != nil {
			return failed, err
		}
	}
	return failed, nil
}
