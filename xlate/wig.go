package xlate

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/grailbio/bedconvert/config"
	"github.com/pkg/errors"
)

// WIGTranslator converts WIG (variableStep/fixedStep) records into BED
// lines, per spec.md §4.5.6.
type WIGTranslator struct {
	Opts config.WIGOptions

	section     int
	chrom       string
	isFixed     bool
	span        int64
	step        int64
	startPos    int64
	fixedLine   int64 // 0-based index of the next fixedStep value line within the current section, used for coordinate math
	sectionSeen int64 // 1-based count of value lines emitted so far in the current section, used for multisplit ids
	globalSeen  int64 // 1-based count of value lines emitted so far across the whole input, used for default ids
}

// Translate implements pipeline.Translator.
func (t *WIGTranslator) Translate(dst, record []byte) ([]byte, error) {
	line := bytes.TrimRight(record, " \t\r")
	if len(line) == 0 {
		return dst, nil
	}

	switch {
	case bytes.HasPrefix(line, []byte("track")), bytes.HasPrefix(line, []byte("browser")), line[0] == '#':
		if t.Opts.KeepHeader {
			dst = append(dst, headerTag...)
			dst = append(dst, '\t')
			dst = appendLine(dst, line)
		}
		return dst, nil

	case bytes.HasPrefix(line, []byte("variableStep")):
		if err := t.startVariableStep(line); err != nil {
			return nil, err
		}
		return dst, nil

	case bytes.HasPrefix(line, []byte("fixedStep")):
		if err := t.startFixedStep(line); err != nil {
			return nil, err
		}
		return dst, nil
	}

	if t.chrom == "" {
		return nil, errors.Errorf("wig: data line before any declaration: %q", line)
	}

	if t.isFixed {
		value := line
		k := t.fixedLine
		t.fixedLine++
		start := t.startPos - 1 + k*t.step
		stop := start + t.span
		return t.appendRecord(dst, start, stop, value), nil
	}

	sp := bytes.IndexByte(line, '\t')
	if sp < 0 {
		sp = bytes.IndexByte(line, ' ')
	}
	if sp < 0 {
		return nil, errors.Errorf("wig: malformed variableStep data line %q", line)
	}
	posStr := bytes.TrimSpace(line[:sp])
	value := bytes.TrimSpace(line[sp+1:])
	pos, err := strconv.ParseInt(string(posStr), 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "wig: parse pos %q", posStr)
	}
	start := pos - 1
	stop := start + t.span
	return t.appendRecord(dst, start, stop, value), nil
}

func (t *WIGTranslator) newSection() {
	t.section++
	t.fixedLine = 0
	t.sectionSeen = 0
	t.span = 1
}

func (t *WIGTranslator) startVariableStep(line []byte) error {
	t.newSection()
	t.isFixed = false
	attrs := parseWigAttrs(line)
	chrom, ok := attrs["chrom"]
	if !ok {
		return errors.Errorf("wig: variableStep missing chrom=: %q", line)
	}
	t.chrom = chrom
	if spanStr, ok := attrs["span"]; ok {
		span, err := strconv.ParseInt(spanStr, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "wig: parse span %q", spanStr)
		}
		t.span = span
	}
	return nil
}

func (t *WIGTranslator) startFixedStep(line []byte) error {
	t.newSection()
	t.isFixed = true
	attrs := parseWigAttrs(line)
	chrom, ok := attrs["chrom"]
	if !ok {
		return errors.Errorf("wig: fixedStep missing chrom=: %q", line)
	}
	t.chrom = chrom
	startStr, ok := attrs["start"]
	if !ok {
		return errors.Errorf("wig: fixedStep missing start=: %q", line)
	}
	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "wig: parse start %q", startStr)
	}
	t.startPos = start
	stepStr, ok := attrs["step"]
	if !ok {
		return errors.Errorf("wig: fixedStep missing step=: %q", line)
	}
	step, err := strconv.ParseInt(stepStr, 10, 64)
	if err != nil {
		return errors.Wrapf(err, "wig: parse step %q", stepStr)
	}
	t.step = step
	if spanStr, ok := attrs["span"]; ok {
		span, err := strconv.ParseInt(spanStr, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "wig: parse span %q", spanStr)
		}
		t.span = span
	}
	return nil
}

// parseWigAttrs parses the "key=value" pairs on a variableStep/fixedStep
// declaration line, ignoring the leading keyword token.
func parseWigAttrs(line []byte) map[string]string {
	fields := strings.Fields(string(line))
	attrs := make(map[string]string, len(fields))
	for _, f := range fields[1:] {
		eq := strings.IndexByte(f, '=')
		if eq < 0 {
			continue
		}
		attrs[f[:eq]] = f[eq+1:]
	}
	return attrs
}

func (t *WIGTranslator) appendRecord(dst []byte, start, stop int64, value []byte) []byte {
	id := t.nextID()
	dst = append(dst, t.chrom...)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, start, 10)
	dst = append(dst, '\t')
	dst = strconv.AppendInt(dst, stop, 10)
	dst = append(dst, '\t')
	dst = append(dst, id...)
	dst = append(dst, '\t')
	dst = append(dst, value...)
	return append(dst, '\n')
}

// nextID generates the per-line synthetic id: "<basename>.<section>.<k>"
// (k 1-based within the section) when --multisplit basename is set, else
// "id.<n>" with n a monotonic counter over the whole input.
func (t *WIGTranslator) nextID() string {
	t.sectionSeen++
	t.globalSeen++
	if t.Opts.Multisplit != "" {
		return t.Opts.Multisplit + "." + strconv.Itoa(t.section) + "." + strconv.FormatInt(t.sectionSeen, 10)
	}
	return "id." + strconv.FormatInt(t.globalSeen, 10)
}
