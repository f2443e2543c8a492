package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jcorbin/quadpas/internal/lexer"
	"github.com/jcorbin/quadpas/internal/names"
	"github.com/jcorbin/quadpas/internal/quads"
	"github.com/jcorbin/quadpas/internal/symtab"
)

// tableDumper writes pipe delimited tables with a header row; only stored
// rows are written, never unused capacity.
type tableDumper struct {
	out io.Writer
	err error
}

func (dump *tableDumper) row(mess string, args ...interface{}) {
	if dump.err == nil {
		_, dump.err = fmt.Fprintf(dump.out, mess+"\n", args...)
	}
}

func (dump *tableDumper) symbols(syms *symtab.Table) {
	dump.row("%5v|%-20v|%-3v|%-3v|%v", "Index", "Name", "Use", "Typ", "Value")
	for i := 0; i < syms.Len(); i++ {
		sym := syms.Symbol(i)
		dump.row("%5v|%-20v|%-3c|%-3c|%v", i, sym.Name, sym.Usage, sym.Value.Kind(), sym.Value)
	}
}

func (dump *tableDumper) quads(qt *quads.Table) {
	mnemonics := quads.Mnemonics()
	dump.row("%5v|%-5v|%5v|%5v|%5v", "Index", "Op", "A", "B", "C")
	for i := 0; i < qt.Len(); i++ {
		q := qt.Get(i)
		mnemonic := mnemonics.LookupCode(int(q.Op))
		if mnemonic == "" {
			mnemonic = q.Op.String()
		}
		dump.row("%5v|%-5v|%5v|%5v|%5v", i, mnemonic, q.A, q.B, q.C)
	}
}

func (dump *tableDumper) names(tab *names.Table) {
	dump.row("%5v|%-10v|%v", "Index", "Name", "Code")
	for i := 0; i < tab.Len(); i++ {
		name, code := tab.Row(i)
		dump.row("%5v|%-10v|%v", i, name, code)
	}
}

// dumpProgram writes the symbol, quad, and reserved word tables of prog into
// files under dir.
func dumpProgram(dir string, prog *Program) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, file := range []struct {
		name  string
		write func(dump *tableDumper)
	}{
		{"symbols.txt", func(dump *tableDumper) { dump.symbols(prog.Symbols) }},
		{"quads.txt", func(dump *tableDumper) { dump.quads(prog.Quads) }},
		{"reserved.txt", func(dump *tableDumper) { dump.names(lexer.ReserveWords()) }},
	} {
		if err := dumpFile(filepath.Join(dir, file.name), file.write); err != nil {
			return err
		}
	}
	return nil
}

func dumpFile(name string, write func(dump *tableDumper)) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	dump := tableDumper{out: f}
	write(&dump)
	if cerr := f.Close(); dump.err == nil {
		dump.err = cerr
	}
	return dump.err
}
