package iso

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Runner executes external commands. The real implementation shells out;
// tests substitute a fake to inspect the argument lists.
type Runner interface {
	// Run executes name with args, streaming stdout to the given writer.
	Run(ctx context.Context, stdout io.Writer, name string, args ...string) error
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command, wiring stderr to the process stderr.
func (r *ExecRunner) Run(ctx context.Context, stdout io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
