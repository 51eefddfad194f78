// Package pipeline implements the multi-stage streaming conversion engine:
// an ordered chain of in-process goroutines and child processes connected by
// anonymous pipes, as described for the genomic-format-to-BED converter.
package pipeline

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// MaxPipes bounds the number of pipe triples in a single pipeline. The six
// chains this converter builds never need more than four: at most five
// stages (stdin forwarder, decoder, translator, sorter, compressor) joined
// by four pipes.
const MaxPipes = 4

// Pipe is one anonymous pipe: a read end and a write end.
type Pipe struct {
	Read  *os.File
	Write *os.File
}

func newPipe() (Pipe, error) {
	var fd [2]int
	if err := unix.Pipe2(fd[:], unix.O_CLOEXEC); err != nil {
		return Pipe{}, fmt.Errorf("pipeline: create pipe: %w", err)
	}
	return Pipe{
		Read:  os.NewFile(uintptr(fd[0]), "pipe-r"),
		Write: os.NewFile(uintptr(fd[1]), "pipe-w"),
	}, nil
}

// Triple is the (stdin, stdout, stderr)-shaped set of three pipes attached
// to one pipeline stage. "In" is read by the stage, "Out" and "Err" are
// written by it.
type Triple struct {
	In  Pipe
	Out Pipe
	Err Pipe
}

func newTriple() (Triple, error) {
	var t Triple
	var err error
	if t.In, err = newPipe(); err != nil {
		return Triple{}, err
	}
	if t.Out, err = newPipe(); err != nil {
		closePipe(t.In)
		return Triple{}, err
	}
	if t.Err, err = newPipe(); err != nil {
		closePipe(t.In)
		closePipe(t.Out)
		return Triple{}, err
	}
	return t, nil
}

func closePipe(p Pipe) {
	if p.Read != nil {
		p.Read.Close()
	}
	if p.Write != nil {
		p.Write.Close()
	}
}

// PipeSet is an ordered, stably-indexed sequence of pipe triples shared by
// every stage of one pipeline.
type PipeSet struct {
	Triples []Triple
}

// NewPipeSet allocates n pipe triples. n must not exceed MaxPipes.
func NewPipeSet(n int) (*PipeSet, error) {
	if n < 0 || n > MaxPipes {
		return nil, fmt.Errorf("pipeline: requested %d pipe triples, max is %d", n, MaxPipes)
	}
	set := &PipeSet{Triples: make([]Triple, 0, n)}
	for i := 0; i < n; i++ {
		t, err := newTriple()
		if err != nil {
			set.Close()
			return nil, err
		}
		set.Triples = append(set.Triples, t)
	}
	return set, nil
}

// Close closes every descriptor in the set that is still open. It is safe
// to call after stages have already closed their own ends; closing an
// *os.File twice returns an error that Close discards, matching the
// "dispose does not itself guarantee every descriptor was already closed
// by callers" contract.
func (s *PipeSet) Close() {
	for _, t := range s.Triples {
		closePipe(t.In)
		closePipe(t.Out)
		closePipe(t.Err)
	}
}
