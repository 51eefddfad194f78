package xlate

import (
	"bytes"
	"strconv"

	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// GFFTranslator converts GFF3 records into BED lines, per spec.md §4.5.2.
type GFFTranslator struct {
	Opts config.GFFOptions

	inFASTA bool // true once a "##FASTA" pragma has been seen; everything after it is sequence, not records
}

var (
	gffPragmaPrefix  = []byte("##")
	gffFASTAPragma   = []byte("##FASTA")
	gffVersionPragma = []byte("##gff-version 3")
	gffIDAttr        = []byte("ID=")
	zeroLenGFF       = []byte(";zero_length_insertion=True")
)

// Translate implements pipeline.Translator.
func (t *GFFTranslator) Translate(dst, record []byte) ([]byte, error) {
	if len(record) == 0 {
		return dst, nil
	}
	if t.inFASTA {
		return dst, nil
	}
	if bytes.HasPrefix(record, gffFASTAPragma) {
		t.inFASTA = true
		return dst, nil
	}
	if bytes.HasPrefix(record, gffPragmaPrefix) {
		if t.Opts.KeepHeader && bytes.Equal(record, gffVersionPragma) {
			dst = append(dst, headerTag...)
			dst = append(dst, '\t')
			dst = appendLine(dst, record)
		}
		return dst, nil
	}

	fields := splitFields(record)
	if len(fields) != 9 {
		return nil, errors.Errorf("gff: record has %d fields, need exactly 9", len(fields))
	}
	seqid, source, typ, startStr, endStr, score, strand, phase, attrs := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6], fields[7], fields[8]

	start, err := strconv.ParseInt(string(startStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "gff: parse start %q", startStr)
	}
	end, err := strconv.ParseInt(string(endStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "gff: parse end %q", endStr)
	}

	id := extractID(attrs)

	zeroLength := false
	if start > end {
		start, end = end, start
		zeroLength = true
	}
	bedStart, bedStop := start-1, end

	dst = append(dst, seqid...)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, bedStart, 10)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, bedStop, 10)
	dst = append(dst, '\t')
	dst = append(dst, id...)
	dst = append(dst, '\t')
	dst = append(dst, score...)
	dst = append(dst, '\t')
	dst = append(dst, strand...)
	dst = append(dst, '\t')
	dst = append(dst, source...)
	dst = append(dst, '\t')
	dst = append(dst, typ...)
	dst = append(dst, '\t')
	dst = append(dst, phase...)
	dst = append(dst, '\t')
	dst = append(dst, attrs...)
	if zeroLength {
		dst = append(dst, zeroLenGFF...)
	}
	return append(dst, '\n'), nil
}

// extractID pulls the value of the "ID=" key out of a GFF/GTF-style
// semicolon-separated attributes column, or returns "." if absent.
func extractID(attrs []byte) []byte {
	parts := bytes.Split(attrs, []byte(";"))
	for _, p := range parts {
		p = bytes.TrimSpace(p)
		if bytes.HasPrefix(p, gffIDAttr) {
			return p[len(gffIDAttr):]
		}
	}
	return dot
}
