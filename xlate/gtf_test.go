package xlate

import (
	"testing"

	"github.com/grailbio/bedconvert/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGTFTranslateBasicRecord(t *testing.T) {
	tr := &GTFTranslator{}
	rec := []byte("chr1\tsrc\texon\t10\t20\t.\t+\t.\tgene_id \"g1\"; ID=exon1")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t9\t20\texon1\t.\t+\tsrc\texon\t.\tgene_id \"g1\"; ID=exon1\n", string(out))
}

func TestGTFTranslateWithTrailingComments(t *testing.T) {
	tr := &GTFTranslator{}
	rec := []byte("chr1\tsrc\texon\t10\t20\t.\t+\t.\tID=exon1\ttrailing comment")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t9\t20\texon1\t.\t+\tsrc\texon\t.\tID=exon1\ttrailing comment\n", string(out))
}

func TestGTFTranslateZeroLengthInsertion(t *testing.T) {
	tr := &GTFTranslator{}
	rec := []byte("chr1\tsrc\tinsertion\t20\t19\t.\t+\t.\tID=ins1")
	out, err := tr.Translate(nil, rec)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t18\t20\tins1\t.\t+\tsrc\tinsertion\t.\tID=ins1; zero_length_insertion=True\n", string(out))
}

func TestGTFTranslateCommentLineKeptAsHeader(t *testing.T) {
	tr := &GTFTranslator{Opts: config.GTFOptions{KeepHeader: true}}
	out, err := tr.Translate(nil, []byte("#!genome-build GRCh38"))
	require.NoError(t, err)
	assert.Equal(t, "_header\t#!genome-build GRCh38\n", string(out))
}

func TestGTFTranslateWrongFieldCountIsError(t *testing.T) {
	tr := &GTFTranslator{}
	_, err := tr.Translate(nil, []byte("chr1\tsrc"))
	require.Error(t, err)
}
