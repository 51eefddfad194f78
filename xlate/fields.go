// Package xlate implements the per-format translators that turn one
// tab-delimited input record into zero or more newline-terminated BED
// lines: SAM, GFF3, GTF, PSL, VCF, and WIG.
package xlate

// splitFields walks line once, recording the byte offsets of every tab and
// of the line's end, the way spec.md §4.5.1 specifies for SAM field
// scanning: field i begins right after the (i-1)th tab and runs up to the
// ith tab (or the end of line for the last field). Returns the fields as
// subslices of line; line is never copied.
func splitFields(line []byte) [][]byte {
	fields := make([][]byte, 0, 16)
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			fields = append(fields, line[start:i])
			start = i + 1
		}
	}
	fields = append(fields, line[start:])
	return fields
}

func appendLine(dst []byte, cols ...[]byte) []byte {
	for i, c := range cols {
		if i > 0 {
			dst = append(dst, '\t')
		}
		dst = append(dst, c...)
	}
	return append(dst, '\n')
}

var dot = []byte(".")
