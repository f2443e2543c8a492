package main

import (
	"io"
	"io/ioutil"

	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/parser"
	"github.com/jcorbin/quadpas/internal/source"
)

// VMOption configures a VM.
type VMOption interface{ apply(vm *VM) }

// CompileOption configures Compile.
type CompileOption interface{ applyCompile(c *compiler) }

var defaults = []VMOption{
	withOutput(ioutil.Discard),
}

func (vm *VM) apply(opts ...VMOption) {
	for _, opt := range defaults {
		opt.apply(vm)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
	if vm.in == nil {
		vm.in = newLineReader(source.New(vm.input...), vm.out)
	}
}

type compiler struct {
	maxSymbols int
	maxQuads   int
	lexOpts    []lexer.Option
	parseOpts  []parser.Option
}

func (c *compiler) apply(opts ...CompileOption) {
	c.maxSymbols = defaultMaxSymbols
	c.maxQuads = defaultMaxQuads
	for _, opt := range opts {
		if opt != nil {
			opt.applyCompile(c)
		}
	}
}

type vmOptions []VMOption

// VMOptions combines several options into one.
func VMOptions(opts ...VMOption) VMOption {
	var all vmOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case vmOptions:
			all = append(all, impl...)
		default:
			all = append(all, opt)
		}
	}
	return all
}

func (opts vmOptions) apply(vm *VM) {
	for _, opt := range opts {
		opt.apply(vm)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type readerOption struct{ IntReader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type stepLimitOption int

func withInput(r io.Reader) inputOption       { return inputOption{r} }
func withReader(r IntReader) readerOption     { return readerOption{r} }
func withOutput(w io.Writer) outputOption     { return outputOption{w} }
func withTee(w io.Writer) teeOption           { return teeOption{w} }
func withStepLimit(limit int) stepLimitOption { return stepLimitOption(limit) }

func (i inputOption) apply(vm *VM)       { vm.input = append(vm.input, i.Reader) }
func (r readerOption) apply(vm *VM)      { vm.in = r.IntReader }
func (o teeOption) apply(vm *VM)         { vm.out = addTee(vm.out, newOutput(o.Writer)) }
func (lim stepLimitOption) apply(vm *VM) { vm.stepLimit = int(lim) }

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = newOutput(o.Writer)
}

type compileOptionFunc func(c *compiler)

func (f compileOptionFunc) applyCompile(c *compiler) { f(c) }

func withMaxSymbols(n int) CompileOption {
	return compileOptionFunc(func(c *compiler) { c.maxSymbols = n })
}

func withMaxQuads(n int) CompileOption {
	return compileOptionFunc(func(c *compiler) { c.maxQuads = n })
}

func withLexOption(opt lexer.Option) CompileOption {
	return compileOptionFunc(func(c *compiler) { c.lexOpts = append(c.lexOpts, opt) })
}

func withParseOption(opt parser.Option) CompileOption {
	return compileOptionFunc(func(c *compiler) { c.parseOpts = append(c.parseOpts, opt) })
}
