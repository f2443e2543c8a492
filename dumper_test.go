package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/quadpas/internal/lexer"
)

func Test_tableDumper(t *testing.T) {
	prog := compileTest(t, "unit t; var x: integer; begin x := 2 end.")

	var out strings.Builder
	dump := tableDumper{out: &out}
	dump.symbols(prog.Symbols)
	dump.quads(prog.Quads)
	require.NoError(t, dump.err)

	assert.Equal(t, lines(
		"Index|Name                |Use|Typ|Value",
		"    0|t                   |P  |I  |0",
		"    1|x                   |V  |I  |0",
		"    2|2                   |C  |I  |2",
		"Index|Op   |    A|    B|    C",
		"    0|MOV  |    2|    0|    1",
		"    1|STOP |    0|    0|    0",
	), out.String())
}

func Test_dumpProgram(t *testing.T) {
	dir, err := ioutil.TempDir("", "quadpas-dump")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	prog := compileTest(t, "unit t; var s: string; begin s := 'hi'; writeln(s) end.")
	require.NoError(t, dumpProgram(filepath.Join(dir, "tables"), prog))

	read := func(name string) []string {
		b, err := ioutil.ReadFile(filepath.Join(dir, "tables", name))
		require.NoError(t, err)
		return strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	}

	syms := read("symbols.txt")
	assert.Len(t, syms, prog.Symbols.Len()+1, "expected a header and one row per symbol")
	assert.Equal(t, "    2|'hi'                |C  |S  |hi", syms[3])

	code := read("quads.txt")
	assert.Len(t, code, prog.Quads.Len()+1, "expected a header and one row per quad")
	assert.Equal(t, "    1|PRINT|    0|    0|    1", code[2])

	reserved := read("reserved.txt")
	assert.Equal(t, "Index|Name      |Code", reserved[0])
	assert.Len(t, reserved, lexer.ReserveWords().Len()+1)
}
