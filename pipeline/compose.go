package pipeline

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/grailbio/base/errors"
	"v.io/x/lib/vlog"
)

// Chain describes one of the six stage sequences spec.md §4.4 enumerates,
// resolved from a Config before Run is called.
type Chain struct {
	SAMtoolsCmd string // "" if not needed (non-BAM input)
	SortBedCmd  string // "" if --do-not-sort
	StarchCmd   string // "" if output is bed, not starch
	Translate   Translator
}

// Run wires stdin -> [samtools?] -> translate -> [sort-bed?] -> [starch?]
// -> stdout per spec.md §4.4, spawning child processes first (outermost to
// innermost, each depending on the pipe of the stage before it) and then
// starting the in-process goroutines, joining both before returning. It
// implements the hardening spec.md §7 calls out as missing from the
// original C source: every child's exit status is checked, and a nonzero
// exit anywhere in the chain is surfaced as a single reported error
// instead of silently accepting partial output.
func Run(stdin io.Reader, stdout io.Writer, c Chain) error {
	nTriples := 0
	if c.SAMtoolsCmd != "" {
		nTriples++
	}
	nTriples++ // the translate stage always owns one triple (its output)
	if c.SortBedCmd != "" {
		nTriples++
	}
	if c.StarchCmd != "" {
		nTriples++
	}

	set, err := NewPipeSet(nTriples)
	if err != nil {
		return err
	}
	defer set.Close()

	var children []*Child
	idx := 0

	spawnNext := func(name, cmd string) (*Child, error) {
		triple := set.Triples[idx]
		idx++
		ch, err := Spawn(name, cmd, triple, SpawnFlags{})
		if err != nil {
			return nil, err
		}
		vlog.Infof("pipeline: spawned %s", name)
		return ch, nil
	}

	var samtools *Child
	if c.SAMtoolsCmd != "" {
		samtools, err = spawnNext("samtools", c.SAMtoolsCmd)
		if err != nil {
			return err
		}
		children = append(children, samtools)
	}

	translateOutTriple := set.Triples[idx]
	idx++

	var sortBed *Child
	if c.SortBedCmd != "" {
		sortBed, err = spawnNext("sort-bed", c.SortBedCmd)
		if err != nil {
			return err
		}
		children = append(children, sortBed)
	}

	var starch *Child
	if c.StarchCmd != "" {
		starch, err = spawnNext("starch", c.StarchCmd)
		if err != nil {
			return err
		}
		children = append(children, starch)
	}

	var wg sync.WaitGroup
	var gerr errors.Once

	// Every spawned child's stderr pipe must be drained, or a chatty child
	// blocks on a full pipe once the kernel buffer fills. The original C
	// source never drains this end either; relaying it to our own stderr
	// both avoids that deadlock and surfaces the child's diagnostics.
	for _, ch := range children {
		ch := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := io.Copy(os.Stderr, ch.Err); err != nil {
				vlog.Infof("pipeline: %s: stderr relay: %v", ch.Name, err)
			}
		}()
	}

	// stdin -> (samtools.In | translate input)
	translateSrc := io.Reader(stdin)
	var stdinForwardDst io.WriteCloser
	if samtools != nil {
		stdinForwardDst = samtools.In
		translateSrc = samtools.Out
	}
	if stdinForwardDst != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gerr.Set(ForwardRaw(stdinForwardDst, stdin))
		}()
	}

	// translate: translateSrc -> translateOutTriple.In.Write
	wg.Add(1)
	go func() {
		defer wg.Done()
		gerr.Set(PumpTranslate(translateOutTriple.In.Write, translateSrc, c.Translate, "xlate"))
	}()

	// (translateOutTriple.In.Read | sort-bed | starch) -> stdout
	tailSrc := io.Reader(translateOutTriple.In.Read)
	if sortBed != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gerr.Set(ForwardRaw(sortBed.In, tailSrc))
		}()
		tailSrc = sortBed.Out
	}
	if starch != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gerr.Set(ForwardRaw(starch.In, tailSrc))
		}()
		tailSrc = starch.Out
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		gerr.Set(forwardToStdout(stdout, tailSrc))
	}()

	wg.Wait()

	for _, ch := range children {
		if werr := ch.Wait(); werr != nil {
			gerr.Set(werr)
		}
	}

	if err := gerr.Err(); err != nil {
		return fmt.Errorf("pipeline: conversion failed: %w", err)
	}
	return nil
}

func forwardToStdout(stdout io.Writer, src io.Reader) error {
	_, err := io.Copy(stdout, src)
	if err != nil {
		return fmt.Errorf("pipeline: write stdout: %w", err)
	}
	return nil
}
