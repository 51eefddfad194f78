package xlate

import (
	"testing"

	"github.com/grailbio/bedconvert/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGFFTranslateBasicRecord(t *testing.T) {
	tr := &GFFTranslator{}
	rec := []byte("chr1\tsrc\tgene\t10\t20\t.\t+\t.\tID=gene1;Name=foo")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t9\t20\tgene1\t.\t+\tsrc\tgene\t.\tID=gene1;Name=foo\n", string(out))
}

func TestGFFTranslateZeroLengthInsertionSwapsCoordsAndTagsAttrs(t *testing.T) {
	tr := &GFFTranslator{}
	rec := []byte("chr1\tsrc\tinsertion\t20\t19\t.\t+\t.\tID=ins1")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t18\t20\tins1\t.\t+\tsrc\tinsertion\t.\tID=ins1;zero_length_insertion=True\n", string(out))
}

func TestGFFTranslateMissingIDDefaultsToDot(t *testing.T) {
	tr := &GFFTranslator{}
	rec := []byte("chr1\tsrc\tgene\t10\t20\t.\t+\t.\tNote=no id here")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\t20\t.\t.\t+\tsrc\tgene\t.\tNote=no id here\n")
}

func TestGFFTranslateVersionPragmaKeptAsHeader(t *testing.T) {
	tr := &GFFTranslator{Opts: config.GFFOptions{KeepHeader: true}}
	out, err := tr.Translate(nil, []byte("##gff-version 3"))
	require.NoError(t, err)
	assert.Equal(t, "_header\t##gff-version 3\n", string(out))
}

func TestGFFTranslateOtherPragmasDropped(t *testing.T) {
	tr := &GFFTranslator{Opts: config.GFFOptions{KeepHeader: true}}
	out, err := tr.Translate(nil, []byte("##sequence-region chr1 1 1000"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGFFTranslateFASTAPragmaAndFollowingLinesDropped(t *testing.T) {
	tr := &GFFTranslator{}
	out, err := tr.Translate(nil, []byte("##FASTA"))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = tr.Translate(nil, []byte(">chr1"))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = tr.Translate(nil, []byte("ACGTACGT"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGFFTranslateWrongFieldCountIsError(t *testing.T) {
	tr := &GFFTranslator{}
	_, err := tr.Translate(nil, []byte("chr1\tsrc\tgene\t10\t20"))
	require.Error(t, err)
}
