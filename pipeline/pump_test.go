package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// upperTranslator is a minimal Translator used only to exercise PumpTranslate's
// line-splitting and remainder handling; the real per-format logic lives in
// package xlate.
type upperTranslator struct {
	calls [][]byte
}

func (u *upperTranslator) Translate(dst, record []byte) ([]byte, error) {
	cp := append([]byte(nil), record...)
	u.calls = append(u.calls, cp)
	dst = append(dst, bytes.ToUpper(record)...)
	return append(dst, '\n'), nil
}

type closeBuffer struct {
	bytes.Buffer
	closed bool
}

func (b *closeBuffer) Close() error {
	b.closed = true
	return nil
}

func TestPumpTranslateSplitsCompleteLines(t *testing.T) {
	src := bytes.NewBufferString("one\ntwo\nthree\n")
	dst := &closeBuffer{}
	xl := &upperTranslator{}

	err := PumpTranslate(dst, src, xl, "test")
	require.NoError(t, err)
	assert.True(t, dst.closed)
	assert.Equal(t, "ONE\nTWO\nTHREE\n", dst.String())
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two"), []byte("three")}, xl.calls)
}

// chunkReader returns one chunk per Read call and io.EOF once the chunks
// are used up, to simulate a source that delivers a record across multiple
// short reads.
type chunkReader struct {
	chunks [][]byte
	i      int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.i >= len(c.chunks) {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[c.i])
	c.i++
	return n, nil
}

func TestPumpTranslateHandlesRemainderAcrossReads(t *testing.T) {
	src := &chunkReader{chunks: [][]byte{
		[]byte("ab"),
		[]byte("c\nde"),
		[]byte("f\n"),
	}}
	dst := &closeBuffer{}
	xl := &upperTranslator{}

	err := PumpTranslate(dst, src, xl, "test")
	require.NoError(t, err)
	assert.Equal(t, "ABC\nDEF\n", dst.String())
}

func TestPumpTranslateFlushesTrailingRecordWithoutNewline(t *testing.T) {
	src := bytes.NewBufferString("one\ntwo")
	dst := &closeBuffer{}
	xl := &upperTranslator{}

	err := PumpTranslate(dst, src, xl, "test")
	require.NoError(t, err)
	assert.True(t, dst.closed)
	assert.Equal(t, "ONE\nTWO\n", dst.String())
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, xl.calls)
}

func TestPumpTranslateEmptyInput(t *testing.T) {
	src := bytes.NewBufferString("")
	dst := &closeBuffer{}
	xl := &upperTranslator{}

	err := PumpTranslate(dst, src, xl, "test")
	require.NoError(t, err)
	assert.Equal(t, "", dst.String())
}

func TestPumpTranslateRecordExceedsBufferIsAnError(t *testing.T) {
	// A single "record" longer than defaultSrcBufSize, with no newline in
	// sight, must fail instead of growing without bound.
	huge := bytes.Repeat([]byte("x"), defaultSrcBufSize+1)
	src := bytes.NewReader(huge)
	dst := &closeBuffer{}
	xl := &upperTranslator{}

	err := PumpTranslate(dst, src, xl, "test")
	require.Error(t, err)
}

type erroringTranslator struct{}

func (erroringTranslator) Translate(dst, record []byte) ([]byte, error) {
	return nil, fmt.Errorf("boom")
}

func TestPumpTranslatePropagatesTranslateError(t *testing.T) {
	src := bytes.NewBufferString("x\n")
	dst := &closeBuffer{}

	err := PumpTranslate(dst, src, erroringTranslator{}, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestForwardRawCopiesAndCloses(t *testing.T) {
	src := bytes.NewBufferString("hello world")
	dst := &closeBuffer{}

	err := ForwardRaw(dst, src)
	require.NoError(t, err)
	assert.True(t, dst.closed)
	assert.Equal(t, "hello world", dst.String())
}
