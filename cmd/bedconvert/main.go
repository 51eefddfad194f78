package main

// bedconvert converts BAM, SAM, GFF, GTF, PSL, VCF, and WIG records into BED
// format, streaming the conversion through the same external samtools /
// sort-bed / starch helpers the underlying formats' native tools use.
//
// Usage: bedconvert --input=bam [flags] < in.bam > out.bed

import (
	"flag"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedconvert/config"
	"github.com/grailbio/bedconvert/pipeline"
	"github.com/grailbio/bedconvert/xlate"
)

var (
	inputFlag  = flag.String("input", "", "Input format: bam, sam, gff, gtf, psl, vcf, wig")
	outputFlag = flag.String("output", "bed", "Output format: bed or starch")

	doNotSortFlag = flag.Bool("do-not-sort", false, "Do not pipe output through sort-bed")
	maxMemFlag    = flag.String("max-mem", "", "Memory limit passed to sort-bed as --max-mem")
	sortTmpDir    = flag.String("sort-tmpdir", "", "Temporary directory passed to sort-bed as --tmpdir")

	allReadsFlag   = flag.Bool("all-reads", false, "SAM/BAM: also emit unmapped reads, with chromosome _unmapped")
	keepHeaderFlag = flag.Bool("keep-header", false, "Emit header/comment/track lines as _header records")
	splitFlag      = flag.Bool("split", false, "SAM/BAM: emit one BED record per N-separated CIGAR segment; PSL: one per block")

	doNotSplitFlag = flag.Bool("do-not-split", false, "VCF: do not split multi-allelic ALT into one record per allele")
	snvsFlag       = flag.Bool("snvs", false, "VCF: keep only single-nucleotide variants")
	insertionsFlag = flag.Bool("insertions", false, "VCF: keep only insertions")
	deletionsFlag  = flag.Bool("deletions", false, "VCF: keep only deletions")

	starchBzip2Flag = flag.Bool("starch-bzip2", false, "Compress starch output with bzip2 (default)")
	starchGzipFlag  = flag.Bool("starch-gzip", false, "Compress starch output with gzip")
	starchNoteFlag  = flag.String("starch-note", "", "Note string embedded in starch output metadata")

	multisplitFlag = flag.String("multisplit", "", "WIG: basename used to build per-section synthetic ids")

	samtoolsFlag = flag.String("samtools", "samtools", "Path to the samtools binary")
	sortBedFlag  = flag.String("sort-bed", "sort-bed", "Path to the sort-bed binary")
	starchFlag   = flag.String("starch", "starch", "Path to the starch binary")
)

func usage() {
	os.Stderr.WriteString(`Usage: bedconvert --input=FORMAT [flags] < input > output

Converts BAM, SAM, GFF, GTF, PSL, VCF, or WIG records read from stdin into
BED (or starch) records written to stdout.

`)
	flag.PrintDefaults()
}

func buildConfig() *config.Config {
	c := &config.Config{
		SAM: config.SAMOptions{
			AllReads:   *allReadsFlag,
			KeepHeader: *keepHeaderFlag,
			Split:      *splitFlag,
		},
		GFF: config.GFFOptions{KeepHeader: *keepHeaderFlag},
		GTF: config.GTFOptions{KeepHeader: *keepHeaderFlag},
		PSL: config.PSLOptions{Split: *splitFlag},
		VCF: config.VCFOptions{
			DoNotSplit: *doNotSplitFlag,
			SNVs:       *snvsFlag,
			Insertions: *insertionsFlag,
			Deletions:  *deletionsFlag,
		},
		WIG: config.WIGOptions{
			KeepHeader: *keepHeaderFlag,
			Multisplit: *multisplitFlag,
		},
		Starch: config.StarchOptions{
			Bzip2: *starchBzip2Flag,
			Gzip:  *starchGzipFlag,
			Note:  *starchNoteFlag,
		},
		Sort: config.SortOptions{
			DoNotSort: *doNotSortFlag,
			MaxMem:    *maxMemFlag,
			TmpDir:    *sortTmpDir,
		},
		Deps: config.Deps{
			Samtools: *samtoolsFlag,
			SortBed:  *sortBedFlag,
			Starch:   *starchFlag,
		},
	}

	in, err := config.ParseInputFormat(*inputFlag)
	if err != nil {
		log.Panicf("%v", err)
	}
	c.Input = in

	out, err := config.ParseOutputFormat(*outputFlag)
	if err != nil {
		log.Panicf("%v", err)
	}
	c.Output = out

	return c
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	c := buildConfig()
	if err := c.Validate(); err != nil {
		log.Panicf("%v", err)
	}
	if err := config.ResolveDependencies(c); err != nil {
		log.Panicf("%v", err)
	}

	translator, err := xlate.New(c)
	if err != nil {
		log.Panicf("%v", err)
	}

	chain := pipeline.BuildChain(c, translator)
	if err := pipeline.Run(os.Stdin, os.Stdout, chain); err != nil {
		log.Panicf("%v", err)
	}
}
