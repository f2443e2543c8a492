package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/peterh/liner"

	"github.com/jcorbin/quadpas/internal/diag"
	"github.com/jcorbin/quadpas/internal/source"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()
	log := diag.New(os.Stdout)

	var (
		timeout   time.Duration
		trace     bool
		echo      bool
		tokens    bool
		check     bool
		dumpDir   string
		quote     string
		demo      string
		demoN     int
		jobs      int
		stepLimit int
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable parser and interpreter trace logging")
	flag.BoolVar(&echo, "echo", false, "echo numbered source lines")
	flag.BoolVar(&tokens, "tokens", false, "print every scanned token")
	flag.BoolVar(&check, "check", false, "only compile each named file, reporting the verdicts")
	flag.StringVar(&dumpDir, "dump", "", "write symbol, quad, and reserved word tables into this directory")
	flag.StringVar(&quote, "quote", "'", "character that delimits text literals")
	flag.StringVar(&demo, "demo", "", "run a built in quad program instead of compiling: "+strings.Join(demoNames(), ", "))
	flag.IntVar(&demoN, "n", 10, "argument of the -demo program")
	flag.IntVar(&jobs, "jobs", 4, "how many files -check compiles at once")
	flag.IntVar(&stepLimit, "step-limit", 0, "fault after executing this many quads")
	flag.Parse()

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r, size := utf8.DecodeRuneInString(quote)
	if size == 0 || size != len(quote) {
		log.Errorf("-quote must be a single character, not %q", quote)
		return log.ExitCode()
	}
	copts := []CompileOption{WithQuote(r)}
	if tokens {
		copts = append(copts, WithTokenLog(log.Leveledf("")))
	}
	if trace {
		copts = append(copts, WithParseTrace(log.Leveledf("TRACE")))
	}

	if check {
		failed, err := checkFiles(ctx, os.Stdout, jobs, flag.Args(), copts...)
		log.ErrorIf(err)
		if failed > 0 {
			return 1
		}
		return log.ExitCode()
	}

	var prog *Program
	if demo != "" {
		build, ok := demoPrograms[demo]
		if !ok {
			log.Errorf("no demo program named %q", demo)
			return log.ExitCode()
		}
		prog = build(demoN)
	} else {
		if flag.NArg() != 1 {
			log.Errorf("expected one source file, got %v arguments", flag.NArg())
			return log.ExitCode()
		}
		in, err := source.Open(flag.Arg(0))
		if err != nil {
			log.ErrorIf(err)
			return log.ExitCode()
		}
		defer in.Close()

		copts = append(copts,
			WithDiagnostics(log.Printf),
			WithVerdict(os.Stdout))
		if echo {
			copts = append(copts, WithEcho(os.Stdout))
		}
		prog, err = Compile(in, copts...)
		if dumpDir != "" {
			log.ErrorIf(dumpProgram(dumpDir, prog))
		}
		if err != nil {
			return 1
		}
	}

	opts := []VMOption{
		WithOutput(os.Stdout),
		WithStepLimit(stepLimit),
	}
	if isTerminal(os.Stdin) && liner.TerminalSupported() {
		opts = append(opts, WithReader(newTerminalReader()))
	} else {
		opts = append(opts, WithInput(os.Stdin))
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	vm := New(prog, opts...)
	defer vm.Close()

	if err := vm.Run(ctx); err != nil {
		log.Errorf("%+v", err)
	}
	return log.ExitCode()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v [flags] program.pas\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "       %v -check [flags] a.pas b.pas ...\n", os.Args[0])
		flag.PrintDefaults()
	}
}
