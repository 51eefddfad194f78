package xlate

import (
	"bytes"
	"strconv"

	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// VCFTranslator converts VCF records into BED lines, per spec.md §4.5.5.
type VCFTranslator struct {
	Opts config.VCFOptions
}

const (
	vcfChrom = iota
	vcfPos
	vcfID
	vcfRef
	vcfAlt
	vcfQual
	vcfFilter
	vcfInfo
	vcfFormat
)

type vcfAlleleClass int

const (
	vcfSNV vcfAlleleClass = iota
	vcfInsertion
	vcfDeletion
	vcfComplex
	vcfSymbolic
)

// Translate implements pipeline.Translator.
func (t *VCFTranslator) Translate(dst, record []byte) ([]byte, error) {
	if len(record) == 0 {
		return dst, nil
	}
	if bytes.HasPrefix(record, []byte("#")) {
		return dst, nil
	}

	fields := splitFields(record)
	if len(fields) < 8 {
		return nil, errors.Errorf("vcf: record has %d fields, need at least 8", len(fields))
	}
	chrom, id, ref, altCol, qual, filter, info := fields[vcfChrom], fields[vcfID], fields[vcfRef], fields[vcfAlt], fields[vcfQual], fields[vcfFilter], fields[vcfInfo]
	var trailer [][]byte
	if len(fields) > 8 {
		trailer = fields[vcfFormat:]
	}

	pos, err := strconv.ParseInt(string(fields[vcfPos]), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "vcf: parse POS %q", fields[vcfPos])
	}

	if bytes.Equal(altCol, dot) {
		return dst, nil
	}

	var alts [][]byte
	if t.Opts.DoNotSplit {
		alts = [][]byte{altCol}
	} else {
		alts = bytes.Split(altCol, []byte(","))
	}

	for _, alt := range alts {
		class := classifyAllele(ref, alt)
		if t.Opts.AnyFilter() && !alleleMatchesFilter(class, t.Opts) {
			continue
		}

		start, stop := vcfCoords(pos, ref, alt, class)

		dst = append(dst, chrom...)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, start, 10)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, stop, 10)
		dst = append(dst, '\t')
		dst = append(dst, id...)
		dst = append(dst, '\t')
		dst = append(dst, qual...)
		dst = append(dst, '\t')
		dst = append(dst, '.')
		dst = append(dst, '\t')
		dst = append(dst, ref...)
		dst = append(dst, '\t')
		dst = append(dst, alt...)
		dst = append(dst, '\t')
		dst = append(dst, filter...)
		dst = append(dst, '\t')
		dst = append(dst, info...)
		for _, f := range trailer {
			dst = append(dst, '\t')
			dst = append(dst, f...)
		}
		dst = append(dst, '\n')
	}
	return dst, nil
}

func isACGTN(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		return true
	default:
		return false
	}
}

func allACGTN(s []byte) bool {
	for _, b := range s {
		if !isACGTN(b) {
			return false
		}
	}
	return len(s) > 0
}

func classifyAllele(ref, alt []byte) vcfAlleleClass {
	if len(alt) > 0 && alt[0] == '<' {
		return vcfSymbolic
	}
	switch {
	case len(ref) == 1 && len(alt) == 1 && allACGTN(ref) && allACGTN(alt):
		return vcfSNV
	case len(alt) > len(ref) && bytes.HasPrefix(alt, ref):
		return vcfInsertion
	case len(ref) > len(alt) && bytes.HasPrefix(ref, alt):
		return vcfDeletion
	default:
		return vcfComplex
	}
}

// alleleMatchesFilter reports whether class should be kept given the
// active --snvs/--insertions/--deletions filters. An opaque symbolic
// allele ("<ID>") only passes when no filter is active; alleleMatchesFilter
// is only called when at least one filter is set, so symbolic alleles are
// always dropped here.
func alleleMatchesFilter(class vcfAlleleClass, opts config.VCFOptions) bool {
	if class == vcfSymbolic {
		return false
	}
	switch class {
	case vcfSNV:
		return opts.SNVs
	case vcfInsertion:
		return opts.Insertions
	case vcfDeletion:
		return opts.Deletions
	default:
		return false
	}
}

// vcfCoords computes the BED start/stop for one (REF, alt) pair per
// spec.md §4.5.5: start = POS-1 always; stop = POS-1+|REF| for a
// deletion, POS for an insertion or SNV (and, by the same rule, for
// complex/symbolic alleles which are neither).
func vcfCoords(pos int64, ref, alt []byte, class vcfAlleleClass) (start, stop int64) {
	start = pos - 1
	if class == vcfDeletion {
		stop = pos - 1 + int64(len(ref))
	} else {
		stop = pos
	}
	return start, stop
}
