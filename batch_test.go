package main

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_checkFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "quadpas-check")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, src string) string {
		name = filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(name, []byte(src), 0644))
		return name
	}
	good := write("good.pas", "unit good; var i: integer; begin for i := 1 to 3 do writeln(i) end.")
	bad := write("bad.pas", "unit bad begin end.")
	warned := write("warned.pas", "unit warned; begin y := 1 end.")
	trailing := write("trailing.pas", "unit trailing; begin end. (* left open")
	missing := filepath.Join(dir, "missing.pas")

	var out strings.Builder
	failed, err := checkFiles(context.Background(), &out, 2, []string{good, bad, missing, warned, trailing})
	require.NoError(t, err)
	assert.Equal(t, 3, failed, "expected failure count")

	sections := strings.Split(out.String(), "== ")
	require.Len(t, sections, 6, "expected one section per file")
	assert.Equal(t, "", sections[0])
	assert.Equal(t, good+"\nSuccess.\n", sections[1])

	assert.True(t, strings.HasPrefix(sections[2], bad+"\nERROR: Expected "), "got %q", sections[2])
	assert.True(t, strings.HasSuffix(sections[2], "Compilation failed.\n"), "got %q", sections[2])

	assert.True(t, strings.HasPrefix(sections[3], missing+"\nERROR: "), "got %q", sections[3])
	assert.NotContains(t, sections[3], "Success.")

	assert.Equal(t, warned+"\nWARNING: Undeclared identifier y\nSuccess.\n", sections[4])
	assert.Equal(t, trailing+"\nERROR: Comment not terminated before End Of File\nCompilation failed.\n", sections[5])
}
