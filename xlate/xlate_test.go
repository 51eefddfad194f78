package xlate

import (
	"testing"

	"github.com/grailbio/bedconvert/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDispatchesOnInputFormat(t *testing.T) {
	cases := []struct {
		in   config.InputFormat
		want interface{}
	}{
		{config.InputBAM, &SAMTranslator{}},
		{config.InputSAM, &SAMTranslator{}},
		{config.InputGFF, &GFFTranslator{}},
		{config.InputGTF, &GTFTranslator{}},
		{config.InputPSL, &PSLTranslator{}},
		{config.InputVCF, &VCFTranslator{}},
		{config.InputWIG, &WIGTranslator{}},
	}
	for _, tc := range cases {
		got, err := New(&config.Config{Input: tc.in})
		require.NoError(t, err)
		assert.IsType(t, tc.want, got)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(&config.Config{Input: config.InputUnknown})
	require.Error(t, err)
}
