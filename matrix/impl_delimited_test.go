// SPDX-License-Identifier: MIT

package matrix_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connstat/matrix"
)

func TestReadDelimited_CommaAndWhitespace(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"comma":      "0,1.5,2\n1.5,0,3\n2,3,0\n",
		"spaces":     "0 1.5 2\n1.5   0 3\n2 3 0",
		"tabs+blank": "0\t1.5\t2\n\n1.5\t0\t3\n2\t3\t0\n\n",
		"comma+pad":  " 0 , 1.5 ,2\n1.5,0,3\r\n2,3,0\n",
	}
	for name, in := range cases {
		m, err := matrix.ReadDelimited(strings.NewReader(in))
		require.NoError(t, err, name)
		require.Equal(t, []float64{0, 1.5, 2, 1.5, 0, 3, 2, 3, 0}, flatten(t, m), name)
	}
}

func TestReadDelimited_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":      "",
		"blank only": "\n  \n",
		"ragged":     "1,2,3\n4,5\n",
		"text":       "1,x\n2,3\n",
		"empty cell": "1,,3\n",
	}
	for name, in := range cases {
		_, err := matrix.ReadDelimited(strings.NewReader(in))
		require.ErrorIs(t, err, matrix.ErrMalformed, name)
	}

	_, err := matrix.ReadDelimited(strings.NewReader("1,NaN\n"))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestReadDelimited_ReaderError(t *testing.T) {
	t.Parallel()

	_, err := matrix.ReadDelimited(failingReader{})
	require.ErrorContains(t, err, "disk gone")
}

func TestWriteDelimited_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 2, 2, []float64{0, 1.0 / 3, 1e-300, 0})
	var buf bytes.Buffer
	require.NoError(t, matrix.WriteDelimited(&buf, m))
	require.Equal(t, "0,0.3333333333333333\n1e-300,0\n", buf.String())

	back, err := matrix.ReadDelimited(&buf)
	require.NoError(t, err)
	require.Equal(t, flatten(t, m), flatten(t, back))
}

func TestWriteDelimited_Options(t *testing.T) {
	t.Parallel()

	m := NewFilledDense(t, 1, 3, []float64{0.123456, 2, 3})
	var buf bytes.Buffer
	require.NoError(t, matrix.WriteDelimited(&buf, m, matrix.WithDelimiter(' '), matrix.WithPrecision(3)))
	require.Equal(t, "0.123 2 3\n", buf.String())

	require.ErrorIs(t, matrix.WriteDelimited(&buf, nil), matrix.ErrNilMatrix)
}
