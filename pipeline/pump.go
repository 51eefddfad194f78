package pipeline

import (
	"bytes"
	"fmt"
	"io"

	"v.io/x/lib/vlog"
)

// Translator appends zero or more complete, newline-terminated BED lines
// to dst for the single input record (one line, without its trailing '\n')
// and returns the extended dst.
type Translator interface {
	Translate(dst, record []byte) ([]byte, error)
}

const (
	// defaultSrcBufSize bounds the longest single input record (line) this
	// pump accepts; spec.md calls this constant "B".
	defaultSrcBufSize = 8 << 20 // 8 MiB

	// expansionFactor bounds how much larger one read's worth of
	// translated output can be than the input that produced it; spec.md
	// calls this "L". WIG fixedStep sections and multi-allele VCF records
	// are the translators that need L > 1.
	expansionFactor = 4
)

// ForwardRaw copies bytes verbatim from src to dst until src returns EOF,
// then closes dst. It performs no parsing; this is the "raw forwarder"
// thread body from spec.md §4.3, used for stdin->pipe and pipe->pipe
// hand-offs. The final copy to stdout is forwardToStdout, which leaves
// stdout open.
func ForwardRaw(dst io.WriteCloser, src io.Reader) error {
	defer dst.Close()
	buf := make([]byte, defaultSrcBufSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return fmt.Errorf("pipeline: forward: write: %w", werr)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pipeline: forward: read: %w", err)
		}
	}
}

// PumpTranslate is the line-translating middle worker: it reads from src in
// up-to-B-byte chunks, splits the accumulated bytes on '\n', calls
// xlate.Translate once per complete record, and writes each read's worth of
// translated output to dst in a single call, preserving any trailing
// partial record ("remainder") across reads. It closes dst on EOF so the
// downstream stage observes EOF in turn.
func PumpTranslate(dst io.WriteCloser, src io.Reader, xlate Translator, label string) error {
	defer dst.Close()

	srcBuf := make([]byte, defaultSrcBufSize)
	dstBuf := make([]byte, 0, defaultSrcBufSize*expansionFactor)
	remainderLen := 0
	nRecords := 0

	for {
		n, rerr := src.Read(srcBuf[remainderLen:])
		if rerr != nil && rerr != io.EOF {
			return fmt.Errorf("pipeline: %s: read: %w", label, rerr)
		}
		filled := remainderLen + n
		if n == 0 && rerr == io.EOF {
			if filled > 0 {
				// The final record has no trailing newline; spec.md §8's own
				// end-to-end examples (a fixedStep's last value line, a SAM
				// line) are given without one. Flush it as the last record
				// instead of treating the missing terminator as an error.
				// That error is reserved for the buffer-overflow case below.
				dstBuf = dstBuf[:0]
				var err error
				dstBuf, err = xlate.Translate(dstBuf, srcBuf[:filled])
				if err != nil {
					return fmt.Errorf("pipeline: %s: %w", label, err)
				}
				nRecords++
				if len(dstBuf) > 0 {
					if _, werr := dst.Write(dstBuf); werr != nil {
						return fmt.Errorf("pipeline: %s: write: %w", label, werr)
					}
				}
			}
			vlog.Infof("%s: finished, %d records translated", label, nRecords)
			return nil
		}

		remainderOffset := bytes.LastIndexByte(srcBuf[:filled], '\n') + 1
		if remainderOffset == 0 {
			if filled == len(srcBuf) {
				return fmt.Errorf("pipeline: %s: record exceeds buffer size %d bytes (no newline found)", label, len(srcBuf))
			}
			remainderLen = filled
			continue
		}

		dstBuf = dstBuf[:0]
		recStart := 0
		for i := 0; i < remainderOffset; i++ {
			if srcBuf[i] != '\n' {
				continue
			}
			record := srcBuf[recStart:i]
			var err error
			dstBuf, err = xlate.Translate(dstBuf, record)
			if err != nil {
				return fmt.Errorf("pipeline: %s: %w", label, err)
			}
			nRecords++
			recStart = i + 1
		}

		if len(dstBuf) > 0 {
			if _, werr := dst.Write(dstBuf); werr != nil {
				return fmt.Errorf("pipeline: %s: write: %w", label, werr)
			}
		}

		remainderLen = copy(srcBuf, srcBuf[remainderOffset:filled])
	}
}
