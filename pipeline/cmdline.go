package pipeline

import (
	"fmt"
	"strings"

	"github.com/grailbio/bedconvert/config"
)

// BuildChain resolves c into the Chain spec.md §4.4's table describes:
// which children run, in which order, and with which flags.
func BuildChain(c *config.Config, translate Translator) Chain {
	var ch Chain
	ch.Translate = translate

	if c.Input == config.InputBAM {
		ch.SAMtoolsCmd = shQuote(c.Deps.Samtools) + " view -h -"
	}

	if !c.Sort.DoNotSort {
		var b strings.Builder
		b.WriteString(shQuote(c.Deps.SortBed))
		if c.Sort.MaxMem != "" {
			fmt.Fprintf(&b, " --max-mem %s", shQuote(c.Sort.MaxMem))
		}
		if c.Sort.TmpDir != "" {
			fmt.Fprintf(&b, " --tmpdir %s", shQuote(c.Sort.TmpDir))
		}
		b.WriteString(" -")
		ch.SortBedCmd = b.String()
	}

	if c.Output == config.OutputStarch {
		var b strings.Builder
		b.WriteString(shQuote(c.Deps.Starch))
		switch {
		case c.Starch.Bzip2:
			b.WriteString(" --bzip2")
		case c.Starch.Gzip:
			b.WriteString(" --gzip")
		}
		if c.Starch.Note != "" {
			fmt.Fprintf(&b, " --note=%s", shQuote(c.Starch.Note))
		}
		b.WriteString(" -")
		ch.StarchCmd = b.String()
	}

	return ch
}

// shQuote wraps s in single quotes for safe embedding in the "/bin/sh -c"
// command string the launcher builds, escaping any single quote in s. Paths
// and flag values here come from resolved dependency discovery and parsed
// CLI flags, never directly from record data, but the composer still
// quotes them instead of trusting the caller to pass shell-safe text.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
