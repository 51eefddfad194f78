package xlate

import (
	"bytes"
	"strconv"

	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// PSLTranslator converts PSL (BLAT) records into BED lines, per spec.md
// §4.5.4.
type PSLTranslator struct {
	Opts config.PSLOptions
}

const pslFieldCount = 21

// PSL field indices, 0-based, matching the standard 21-column layout.
const (
	pslMatches = iota
	pslMisMatches
	pslRepMatches
	pslNCount
	pslQNumInsert
	pslQBaseInsert
	pslTNumInsert
	pslTBaseInsert
	pslStrand
	pslQName
	pslQSize
	pslQStart
	pslQEnd
	pslTName
	pslTSize
	pslTStart
	pslTEnd
	pslBlockCount
	pslBlockSizes
	pslQStarts
	pslTStarts
)

// Translate implements pipeline.Translator.
func (t *PSLTranslator) Translate(dst, record []byte) ([]byte, error) {
	if len(record) == 0 {
		return dst, nil
	}
	fields := splitFields(record)
	if len(fields) != pslFieldCount {
		return nil, errors.Errorf("psl: record has %d fields, need exactly %d", len(fields), pslFieldCount)
	}

	if !t.Opts.Split {
		dst = append(dst, fields[pslTName]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslTStart]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslTEnd]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslQName]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslMatches]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslStrand]...)
		for i, f := range fields {
			if i == pslTName || i == pslTStart || i == pslTEnd || i == pslQName || i == pslMatches || i == pslStrand {
				continue
			}
			dst = append(dst, '\t')
			dst = append(dst, f...)
		}
		return append(dst, '\n'), nil
	}

	blockCount, err := strconv.Atoi(string(bytes.TrimSpace(fields[pslBlockCount])))
	if err != nil {
		return nil, errors.Wrapf(err, "psl: parse blockCount %q", fields[pslBlockCount])
	}
	blockSizes, err := splitInts(fields[pslBlockSizes], blockCount)
	if err != nil {
		return nil, errors.Wrapf(err, "psl: blockSizes")
	}
	tStarts, err := splitInts(fields[pslTStarts], blockCount)
	if err != nil {
		return nil, errors.Wrapf(err, "psl: tStarts")
	}

	for k := 0; k < blockCount; k++ {
		start := tStarts[k]
		stop := tStarts[k] + blockSizes[k]
		dst = append(dst, fields[pslTName]...)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, start, 10)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, stop, 10)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslQName]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslMatches]...)
		dst = append(dst, '\t')
		dst = append(dst, fields[pslStrand]...)
		dst = append(dst, '\t')
		dst = strconv.AppendInt(dst, int64(k), 10)
		dst = append(dst, '\n')
	}
	return dst, nil
}

// splitInts parses a comma-separated (possibly trailing-comma) list of
// integers, expecting exactly n values, as used by PSL's blockSizes,
// qStarts, and tStarts columns.
func splitInts(field []byte, n int) ([]int64, error) {
	field = bytes.TrimRight(bytes.TrimSpace(field), ",")
	if len(field) == 0 {
		if n == 0 {
			return nil, nil
		}
		return nil, errors.Errorf("expected %d comma-separated values, got none", n)
	}
	parts := bytes.Split(field, []byte(","))
	if len(parts) != n {
		return nil, errors.Errorf("expected %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]int64, n)
	for i, p := range parts {
		v, err := strconv.ParseInt(string(p), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", p)
		}
		out[i] = v
	}
	return out, nil
}
