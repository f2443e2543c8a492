package source_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/quadpas/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Input(t *testing.T) {
	in := source.New(
		namedString("a.pas", "unit a;\r\nbegin\n\nend"),
		namedString("b.pas", "x\n"),
	)

	for _, expect := range []struct {
		line string
		loc  source.Location
	}{
		{"unit a;", source.Location{Name: "a.pas", Line: 1}},
		{"begin", source.Location{Name: "a.pas", Line: 2}},
		{"", source.Location{Name: "a.pas", Line: 3}},
		{"end", source.Location{Name: "a.pas", Line: 4}},
		{"x", source.Location{Name: "b.pas", Line: 1}},
	} {
		line, err := in.ReadLine()
		require.NoError(t, err)
		assert.Equal(t, expect.line, line)
		assert.Equal(t, expect.loc, in.Location())
	}

	_, err := in.ReadLine()
	assert.Equal(t, io.EOF, err)
	_, err = in.ReadLine()
	assert.Equal(t, io.EOF, err, "EOF must be sticky")
	assert.Equal(t, "b.pas:1", in.Location().String())
}

func Test_FromString(t *testing.T) {
	in := source.FromString("prog", "one\ntwo")
	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", line)
	assert.Equal(t, `prog:1 "one"`, in.Last.String())
}

type named struct {
	*strings.Reader
	name string
}

func (n named) Name() string { return n.name }

func namedString(name, s string) io.Reader { return named{strings.NewReader(s), name} }
