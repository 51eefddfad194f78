// Package config holds the immutable, process-wide configuration for a
// single conversion run: input/output formats and every format-specific
// and downstream-helper option, built once by the CLI and read thereafter
// by the pipeline composer and the translators. Nothing here is mutated
// after ResolveDependencies returns.
package config

import "fmt"

// InputFormat names one of the six record formats this converter reads.
type InputFormat int

const (
	InputUnknown InputFormat = iota
	InputBAM
	InputSAM
	InputGFF
	InputGTF
	InputPSL
	InputVCF
	InputWIG
)

var inputNames = map[string]InputFormat{
	"bam": InputBAM,
	"sam": InputSAM,
	"gff": InputGFF,
	"gtf": InputGTF,
	"psl": InputPSL,
	"vcf": InputVCF,
	"wig": InputWIG,
}

// ParseInputFormat maps a --input flag value to an InputFormat.
func ParseInputFormat(s string) (InputFormat, error) {
	f, ok := inputNames[s]
	if !ok {
		return InputUnknown, fmt.Errorf("config: unsupported input format %q", s)
	}
	return f, nil
}

func (f InputFormat) String() string {
	for name, v := range inputNames {
		if v == f {
			return name
		}
	}
	return "unknown"
}

// OutputFormat names the converter's output container.
type OutputFormat int

const (
	OutputBED OutputFormat = iota
	OutputStarch
)

// ParseOutputFormat maps a --output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "bed":
		return OutputBED, nil
	case "starch":
		return OutputStarch, nil
	default:
		return OutputBED, fmt.Errorf("config: unsupported output format %q", s)
	}
}

func (f OutputFormat) String() string {
	if f == OutputStarch {
		return "starch"
	}
	return "bed"
}

// SAMOptions controls the SAM/BAM translator.
type SAMOptions struct {
	AllReads   bool // emit unmapped reads too (synthetic "_unmapped" chrom)
	KeepHeader bool // preserve @-header lines as "_header" BED records
	Split      bool // split spliced (CIGAR 'N') alignments into per-block BED lines
}

// GFFOptions controls the GFF3 translator.
type GFFOptions struct {
	KeepHeader bool
}

// GTFOptions controls the GTF translator.
type GTFOptions struct {
	KeepHeader bool
}

// PSLOptions controls the PSL translator.
type PSLOptions struct {
	Split bool
}

// VCFOptions controls the VCF translator.
type VCFOptions struct {
	DoNotSplit bool // emit one BED line per record instead of per ALT allele
	SNVs       bool // when any of SNVs/Insertions/Deletions is set, filter to only those classes
	Insertions bool
	Deletions  bool
}

func (o VCFOptions) anyFilter() bool {
	return o.SNVs || o.Insertions || o.Deletions
}

// AnyFilter reports whether at least one of the --snvs/--insertions/
// --deletions filters is active.
func (o VCFOptions) AnyFilter() bool { return o.anyFilter() }

// WIGOptions controls the WIG translator.
type WIGOptions struct {
	KeepHeader bool
	Multisplit string // basename for "<basename>.<section>.<k>" ids; "" = "id.<n>" with n monotonic over the input
}

// StarchOptions controls the external starch compressor invocation.
type StarchOptions struct {
	Bzip2 bool
	Gzip  bool
	Note  string
}

// SortOptions controls the external sort-bed invocation.
type SortOptions struct {
	DoNotSort bool
	MaxMem    string
	TmpDir    string
}

// Deps holds the resolved, absolute paths of the external helper binaries.
type Deps struct {
	Samtools string
	SortBed  string
	Starch   string
}

// Config is the complete, immutable configuration for one run.
type Config struct {
	Input  InputFormat
	Output OutputFormat

	SAM    SAMOptions
	GFF    GFFOptions
	GTF    GTFOptions
	PSL    PSLOptions
	VCF    VCFOptions
	WIG    WIGOptions
	Starch StarchOptions
	Sort   SortOptions

	Deps Deps
}

// Validate checks cross-field invariants that flag parsing alone can't,
// mirroring spec.md §6/§7: unsupported format combinations are a
// configuration error, caught before any pipe is opened.
func (c *Config) Validate() error {
	if c.Input == InputUnknown {
		return fmt.Errorf("config: --input is required")
	}
	if c.VCF.DoNotSplit && c.VCF.AnyFilter() {
		return fmt.Errorf("config: --do-not-split cannot be combined with --snvs/--insertions/--deletions")
	}
	if c.Starch.Bzip2 && c.Starch.Gzip {
		return fmt.Errorf("config: --starch-bzip2 and --starch-gzip are mutually exclusive")
	}
	return nil
}
