package xlate

import (
	"bytes"
	"strconv"

	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// GTFTranslator converts GTF records into BED lines, per spec.md §4.5.3.
type GTFTranslator struct {
	Opts config.GTFOptions
}

var zeroLenGTF = []byte("; zero_length_insertion=True")

// Translate implements pipeline.Translator.
func (t *GTFTranslator) Translate(dst, record []byte) ([]byte, error) {
	if len(record) == 0 {
		return dst, nil
	}
	if bytes.HasPrefix(record, []byte("#")) {
		if t.Opts.KeepHeader {
			dst = append(dst, headerTag...)
			dst = append(dst, '\t')
			dst = appendLine(dst, record)
		}
		return dst, nil
	}

	fields := splitFields(record)
	if len(fields) != 9 && len(fields) != 10 {
		return nil, errors.Errorf("gtf: record has %d fields, need 9 or 10", len(fields))
	}
	seqname, source, feature, startStr, endStr, score, strand, frame, attrs := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5], fields[6], fields[7], fields[8]
	var comments []byte
	if len(fields) == 10 {
		comments = fields[9]
	}

	start, err := strconv.ParseInt(string(startStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "gtf: parse start %q", startStr)
	}
	end, err := strconv.ParseInt(string(endStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "gtf: parse end %q", endStr)
	}

	id := extractID(attrs)

	zeroLength := false
	if start > end {
		start, end = end, start
		zeroLength = true
	}
	bedStart, bedStop := start-1, end

	dst = append(dst, seqname...)
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
	dst = append(dst, feature...)
	dst = append(dst, '\t')
	dst = append(dst, frame...)
	dst = append(dst, '\t')
	dst = append(dst, attrs...)
	if zeroLength {
		dst = append(dst, zeroLenGTF...)
	}
	if len(comments) > 0 {
		dst = append(dst, '\t')
		dst = append(dst, comments...)
	}
	return append(dst, '\n'), nil
}
