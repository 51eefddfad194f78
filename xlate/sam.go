package xlate

import (
	"strconv"

	"github.com/biogo/hts/sam"
	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// SAMTranslator converts SAM-format records (as produced by "samtools view
// -h -", or read directly when --input sam) into BED lines, per spec.md
// §4.5.1.
type SAMTranslator struct {
	Opts      config.SAMOptions
	headerIdx int
}

var (
	unmappedChrom = []byte("_unmapped")
	headerTag     = []byte("_header")
)

const samFlagUnmapped = 0x4
const samFlagReverse = 0x10

// Translate implements pipeline.Translator.
func (t *SAMTranslator) Translate(dst, record []byte) ([]byte, error) {
	if len(record) == 0 {
		return dst, nil
	}
	if record[0] == '@' {
		if !t.Opts.KeepHeader {
			return dst, nil
		}
		idx := strconv.Itoa(t.headerIdx)
		t.headerIdx++
		dst = append(dst, headerTag...)
		dst = append(dst, '\t')
		dst = append(dst, idx...)
		dst = append(dst, '\t')
		nextIdx := strconv.Itoa(t.headerIdx)
		dst = append(dst, nextIdx...)
		dst = append(dst, '\t')
		dst = append(dst, record...)
		return append(dst, '\n'), nil
	}

	fields := splitFields(record)
	if len(fields) < 11 {
		return nil, errors.Errorf("sam: record has %d fields, need at least 11", len(fields))
	}
	qname := fields[0]
	flagStr := fields[1]
	rname := fields[2]
	posStr := fields[3]
	mapq := fields[4]
	cigarStr := fields[5]
	rnext := fields[6]
	pnext := fields[7]
	tlen := fields[8]
	seq := fields[9]
	qual := fields[10]
	optional := fields[11:]

	flag, err := strconv.ParseInt(string(flagStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "sam: parse FLAG %q", flagStr)
	}

	mapped := flag&samFlagUnmapped == 0
	if !mapped && !t.Opts.AllReads {
		return dst, nil
	}

	strand := []byte("+")
	if flag&samFlagReverse != 0 {
		strand = []byte("-")
	}

	var chrom []byte
	var start, stop int64
	if !mapped {
		chrom = unmappedChrom
		start, stop = 0, 1
	} else {
		pos, err := strconv.ParseInt(string(posStr), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "sam: parse POS %q", posStr)
		}
		chrom = rname
		start = pos - 1

		refSpan := int64(0)
		if string(cigarStr) != "*" {
			cig, err := sam.ParseCigar(cigarStr)
			if err != nil {
				return nil, errors.Wrapf(err, "sam: parse CIGAR %q", cigarStr)
			}
			r, _ := cig.Lengths()
			refSpan = int64(r)
		}
		if refSpan <= 0 {
			stop = start + 1
		} else {
			stop = pos + refSpan - 1
		}

		if t.Opts.Split && string(cigarStr) != "*" {
			return t.emitSplit(dst, chrom, pos, cigarStr, qname, flagStr, strand, mapq, cigarStr, rnext, pnext, tlen, seq, qual, optional)
		}
	}

	dst = appendBED13(dst, chrom, start, stop, qname, flagStr, strand, mapq, cigarStr, rnext, pnext, tlen, seq, qual, optional)
	return dst, nil
}

// emitSplit handles --split: one BED line per maximal span between
// consecutive CIGAR 'N' (skipped-reference, i.e. intron) operations.
func (t *SAMTranslator) emitSplit(dst, chrom []byte, pos int64, cigarStr, qname, flagStr, strand, mapq, cigarRaw, rnext, pnext, tlen, seq, qual []byte, optional [][]byte) ([]byte, error) {
	cig, err := sam.ParseCigar(cigarStr)
	if err != nil {
		return nil, errors.Wrapf(err, "sam: parse CIGAR %q", cigarStr)
	}

	hasN := false
	for _, op := range cig {
		if op.Type() == sam.CigarSkipped {
			hasN = true
			break
		}
	}
	if !hasN {
		r, _ := cig.Lengths()
		refSpan := int64(r)
		stop := pos
		if refSpan > 0 {
			stop = pos + refSpan - 1
		} else {
			stop = pos
		}
		return appendBED13(dst, chrom, pos-1, stop, qname, flagStr, strand, mapq, cigarRaw, rnext, pnext, tlen, seq, qual, optional), nil
	}

	blockStart := pos
	cur := pos
	for _, op := range cig {
		consumesRef := consumesReference(op.Type())
		n := int64(op.Len())
		if op.Type() == sam.CigarSkipped {
			if cur > blockStart {
				dst = appendBED13(dst, chrom, blockStart-1, cur-1, qname, flagStr, strand, mapq, cigarRaw, rnext, pnext, tlen, seq, qual, optional)
			}
			cur += n
			blockStart = cur
			continue
		}
		if consumesRef {
			cur += n
		}
	}
	if cur > blockStart {
		dst = appendBED13(dst, chrom, blockStart-1, cur-1, qname, flagStr, strand, mapq, cigarRaw, rnext, pnext, tlen, seq, qual, optional)
	}
	return dst, nil
}

func consumesReference(t sam.CigarOpType) bool {
	switch t {
	case sam.CigarMatch, sam.CigarDeletion, sam.CigarSkipped, sam.CigarEqual, sam.CigarMismatch:
		return true
	default:
		return false
	}
}

func appendBED13(dst, chrom []byte, start, stop int64, qname, flag, strand, mapq, cigar, rnext, pnext, tlen, seq, qual []byte, optional [][]byte) []byte {
	dst = append(dst, chrom...)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, start, 10)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, stop, 10)
	dst = append(dst, '\t')
	dst = append(dst, qname...)
	dst = append(dst, '\t')
	dst = append(dst, flag...)
	dst = append(dst, '\t')
	dst = append(dst, strand...)
	dst = append(dst, '\t')
	dst = append(dst, mapq...)
	dst = append(dst, '\t')
	dst = append(dst, cigar...)
	dst = append(dst, '\t')
	dst = append(dst, rnext...)
	dst = append(dst, '\t')
	dst = append(dst, pnext...)
	dst = append(dst, '\t')
	dst = append(dst, tlen...)
	dst = append(dst, '\t')
	dst = append(dst, seq...)
	dst = append(dst, '\t')
	dst = append(dst, qual...)
	for _, opt := range optional {
		dst = append(dst, '\t')
		dst = append(dst, opt...)
	}
	return append(dst, '\n')
}
