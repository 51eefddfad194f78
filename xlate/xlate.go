package xlate

import (
	"fmt"

	"github.com/grailbio/bedconvert/config"
	"github.com/grailbio/bedconvert/pipeline"
)

// New returns the Translator appropriate for c.Input. BAM input is decoded
// to SAM by the external samtools helper before it ever reaches a
// Translator, so InputBAM and InputSAM share the SAM translator.
func New(c *config.Config) (pipeline.Translator, error) {
	switch c.Input {
	case config.InputBAM, config.InputSAM:
		return &SAMTranslator{Opts: c.SAM}, nil
	case config.InputGFF:
		return &GFFTranslator{Opts: c.GFF}, nil
	case config.InputGTF:
		return &GTFTranslator{Opts: c.GTF}, nil
	case config.InputPSL:
		return &PSLTranslator{Opts: c.PSL}, nil
	case config.InputVCF:
		return &VCFTranslator{Opts: c.VCF}, nil
	case config.InputWIG:
		return &WIGTranslator{Opts: c.WIG}, nil
	default:
		return nil, fmt.Errorf("xlate: unsupported input format %v", c.Input)
	}
}
