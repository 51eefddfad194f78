package pipeline

import (
	"testing"

	"github.com/grailbio/bedconvert/config"
	"github.com/stretchr/testify/assert"
)

func TestBuildChainBAMSortToBed(t *testing.T) {
	c := &config.Config{
		Input:  config.InputBAM,
		Output: config.OutputBED,
		Deps:   config.Deps{Samtools: "/usr/bin/samtools", SortBed: "/usr/bin/sort-bed"},
	}
	ch := BuildChain(c, nil)
	assert.Equal(t, "'/usr/bin/samtools' view -h -", ch.SAMtoolsCmd)
	assert.Equal(t, "'/usr/bin/sort-bed' -", ch.SortBedCmd)
	assert.Equal(t, "", ch.StarchCmd)
}

func TestBuildChainVCFNoSortToStarchWithOptions(t *testing.T) {
	c := &config.Config{
		Input:  config.InputVCF,
		Output: config.OutputStarch,
		Sort:   config.SortOptions{DoNotSort: true},
		Starch: config.StarchOptions{Gzip: true, Note: "sample 1"},
		Deps:   config.Deps{Starch: "/usr/bin/starch"},
	}
	ch := BuildChain(c, nil)
	assert.Equal(t, "", ch.SAMtoolsCmd)
	assert.Equal(t, "", ch.SortBedCmd)
	assert.Equal(t, "'/usr/bin/starch' --gzip --note='sample 1' -", ch.StarchCmd)
}

func TestBuildChainSortWithMaxMemAndTmpDir(t *testing.T) {
	c := &config.Config{
		Input:  config.InputGFF,
		Output: config.OutputBED,
		Sort:   config.SortOptions{MaxMem: "2G", TmpDir: "/scratch"},
		Deps:   config.Deps{SortBed: "/usr/bin/sort-bed"},
	}
	ch := BuildChain(c, nil)
	assert.Equal(t, "'/usr/bin/sort-bed' --max-mem '2G' --tmpdir '/scratch' -", ch.SortBedCmd)
}

func TestShQuoteEscapesSingleQuotes(t *testing.T) {
	assert.Equal(t, `'it'\''s'`, shQuote("it's"))
}
