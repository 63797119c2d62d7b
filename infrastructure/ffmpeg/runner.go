package ffmpeg

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Process is a started command whose merged output can be read while it
// runs.
type Process interface {
	// Output streams the child's combined stdout and stderr. It reaches
	// EOF once the child has closed both.
	Output() io.Reader
	// Wait blocks until the child exits. Call it only after Output has
	// been drained.
	Wait() error
}

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	// Start launches a command with stdout and stderr merged into the
	// returned Process's output stream.
	Start(ctx context.Context, name string, args ...string) (Process, error)
	// Output executes a command and returns its output
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

type execProcess struct {
	cmd *exec.Cmd
	out *os.File
}

func (p *execProcess) Output() io.Reader { return p.out }

func (p *execProcess) Wait() error {
	defer p.out.Close()
	return p.cmd.Wait()
}

// Start launches the command with both output streams pointed at one pipe.
// ffmpeg writes its progress to stderr, so the merge keeps progress on the
// same stream as everything else. The read end must be drained while the
// child runs: an undrained pipe fills its kernel buffer and blocks the
// child forever.
func (r *ExecCommandRunner) Start(ctx context.Context, name string, args ...string) (Process, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()
		return nil, err
	}

	// The child inherited its own copy of the write end. Closing ours lets
	// the read end see EOF when the child exits.
	pw.Close()

	return &execProcess{cmd: cmd, out: pr}, nil
}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
