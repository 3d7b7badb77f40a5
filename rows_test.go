package tableparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "lf", input: "a,b\nc,d\n", want: []string{"a,b", "c,d"}},
		{name: "crlf", input: "a,b\r\nc,d\r\n", want: []string{"a,b", "c,d"}},
		{name: "noTrailingNewline", input: "a,b\nc,d", want: []string{"a,b", "c,d"}},
		{name: "blankLinesKept", input: "a\n\nb\n", want: []string{"a", "", "b"}},
		{name: "onlyOneTrailingBlankDropped", input: "a\n\n", want: []string{"a"}},
		{name: "loneCarriageReturnKept", input: "a\rb\nc\r", want: []string{"a\rb", "c"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rows, err := LoadRows(tc.name, strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.name, rows.Name())
			require.Equal(t, len(tc.want), rows.RowCount())
			for i, want := range tc.want {
				got, err := rows.Row(i)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestLoadRowsReadError(t *testing.T) {
	t.Parallel()

	exp := errors.New("truncated stream")
	_, err := LoadRows("bad", &failingSource{data: "a,b\nc,d\npartial", err: exp})
	require.ErrorIs(t, err, exp)

	var ferr *FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "bad", ferr.Path)
	assert.Equal(t, 3, ferr.Line)
}

func TestRowsBounds(t *testing.T) {
	t.Parallel()

	rows := NewRows("bounds", []string{"only"})
	_, err := rows.Row(1)
	assert.Error(t, err)
	_, err = rows.Row(-1)
	assert.Error(t, err)

	var nilRows *Rows
	assert.Zero(t, nilRows.RowCount())
	assert.Empty(t, nilRows.Name())
	_, err = nilRows.Row(0)
	assert.Error(t, err)
}
