package config

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// helperNeeds reports which external helpers a given pipeline actually
// invokes, so ResolveDependencies only demands what this run will use.
func helperNeeds(c *Config) (samtools, sortBed, starch bool) {
	samtools = c.Input == InputBAM
	sortBed = !c.Sort.DoNotSort
	starch = c.Output == OutputStarch
	return
}

// found mirrors spec.md §6's rule: a binary is "found" if it exists, is a
// regular file, and is executable by the current user. exec.LookPath
// already walks $PATH applying the executable-bit check; the remaining
// regular-file check guards against a same-named directory shadowing the
// binary somewhere on $PATH.
func found(name string) (string, bool) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// ResolveDependencies locates every external helper this run's pipeline
// will need and caches their resolved absolute paths on c.Deps, which on
// entry holds the name or path the caller wants resolved (the binary's
// plain name by default, or a --samtools/--sort-bed/--starch override). It
// checks all needed helpers before returning, joining every missing one
// into a single error message (supplementing spec.md's bare "missing
// dependency" error kind the way original_source/convert2bed.c's
// c2b_test_dependencies does: report every missing tool at once).
func ResolveDependencies(c *Config) error {
	needSamtools, needSortBed, needStarch := helperNeeds(c)

	var missing []string

	if needSamtools {
		if path, ok := found(c.Deps.Samtools); ok {
			c.Deps.Samtools = path
		} else {
			missing = append(missing, c.Deps.Samtools)
		}
	}
	if needSortBed {
		if path, ok := found(c.Deps.SortBed); ok {
			c.Deps.SortBed = path
		} else {
			missing = append(missing, c.Deps.SortBed)
		}
	}
	if needStarch {
		if path, ok := found(c.Deps.Starch); ok {
			c.Deps.Starch = path
		} else {
			missing = append(missing, c.Deps.Starch)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: required dependencies not found on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
