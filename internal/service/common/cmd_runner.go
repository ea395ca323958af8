package common

import (
	"context"
	"os/exec"
)

// CmdRunner is interface for executing external commands
type CmdRunner interface {
	// Run executes the command and returns its stdout
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	// RunCombined executes the command and returns stdout and stderr
	// interleaved. ffmpeg and friends report on stderr even on success.
	RunCombined(ctx context.Context, name string, args ...string) ([]byte, error)
	// LookPath reports whether the named binary is on PATH
	LookPath(name string) error
}

// realCmdRunner implements CmdRunner using os/exec
type realCmdRunner struct{}

// NewCmdRunner creates a new CmdRunner
func NewCmdRunner() CmdRunner {
	return &realCmdRunner{}
}

// Run executes external command with given arguments
func (r *realCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// RunCombined executes external command and captures both output streams
func (r *realCmdRunner) RunCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// LookPath checks binary availability without executing it
func (r *realCmdRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}
