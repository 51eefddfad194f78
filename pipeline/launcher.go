package pipeline

import (
	"fmt"
	"os"
	"os/exec"
)

// SpawnFlags controls which of the child-owned pipe ends the launcher
// closes in the parent after Start. All three of the child's standard
// streams are always wired to the caller-supplied Triple.
type SpawnFlags struct {
	NoCloseParentIn  bool // don't close the parent's copy of triple.In.Read after Start
	NoCloseParentOut bool // don't close the parent's copy of triple.Out.Write after Start
	NoCloseParentErr bool // don't close the parent's copy of triple.Err.Write after Start
}

// Child is a spawned helper process together with the ends of its pipe
// triple the parent retained for reading/writing.
type Child struct {
	Name string
	Cmd  *exec.Cmd
	In   *os.File // parent writes here to feed the child's stdin
	Out  *os.File // parent reads here to drain the child's stdout
	Err  *os.File // parent reads here to drain the child's stderr
}

// Spawn runs cmd as "/bin/sh -c cmd", with the child's stdin/stdout/stderr
// dup'd onto triple.In.Read/triple.Out.Write/triple.Err.Write respectively.
// Assigning *os.File values to exec.Cmd's Stdin/Stdout/Stderr fields makes
// the runtime perform the fork+exec-with-dup2 dance spec.md describes by
// hand, which is why the explicit close-on-exec-clearing step from the C
// source has no counterpart here. Once Start returns, Spawn closes the
// parent's copies of these three child-owned ends, except those a
// NoCloseParent* flag keeps open.
func Spawn(name, cmd string, triple Triple, flags SpawnFlags) (*Child, error) {
	c := exec.Command("/bin/sh", "-c", cmd)
	c.Stdin = triple.In.Read
	c.Stdout = triple.Out.Write
	c.Stderr = triple.Err.Write

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("pipeline: spawn %s (%q): %w", name, cmd, err)
	}

	// The child now owns these ends; the parent's job is the other three.
	if !flags.NoCloseParentIn {
		triple.In.Read.Close()
	}
	if !flags.NoCloseParentOut {
		triple.Out.Write.Close()
	}
	if !flags.NoCloseParentErr {
		triple.Err.Write.Close()
	}

	return &Child{
		Name: name,
		Cmd:  c,
		In:   triple.In.Write,
		Out:  triple.Out.Read,
		Err:  triple.Err.Read,
	}, nil
}

// Wait blocks until the child exits and reports a non-nil error if it
// exited with a nonzero status, naming the child so a multi-child
// pipeline failure can be attributed to the stage that caused it.
func (c *Child) Wait() error {
	if err := c.Cmd.Wait(); err != nil {
		return fmt.Errorf("pipeline: child %s: %w", c.Name, err)
	}
	return nil
}
