// Package gitinspect is the only component that shells out to git
// (spec.md §4.A). It is a pure read side: it never mutates the working
// tree or creates commits, with the single exception of the on-demand
// `git fetch` performed inside LocalCommitsAvailability for partial
// clones.
package gitinspect

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/montagne-dev/lampe/pkg/logger"
)

var log = logger.New("gitinspect:run")

// Runner abstracts subprocess execution so callers can inject a fake
// for testing (spec.md §9 "Git subprocess calls → child-process
// abstraction").
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout string, stderr string, err error)
}

// execRunner is the production Runner, invoking the real `git` binary.
type execRunner struct{}

// DefaultRunner is the Runner used by Inspector when none is injected.
var DefaultRunner Runner = execRunner{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		log.Printf("git %v failed in %s: %v (stderr: %s)", args, dir, err, stderr.String())
		err = fmt.Errorf("git %v: %w: %s", args, err, stderr.String())
	}
	return stdout.String(), stderr.String(), err
}
