package repositories

import (
	"context"
	"time"
)

// CommandRun describes one shell command to execute.
type CommandRun struct {
	Command     string
	Dir         string
	Shell       string
	Timeout     time.Duration
	GracePeriod time.Duration
}

// CommandRunResult is what came back from the process.
type CommandRunResult struct {
	ExitCode int
	TimedOut bool
	Output   string
	Duration time.Duration
	StartErr error
}

// CommandRunner executes shell commands as independent OS processes.
type CommandRunner interface {
	// Run blocks until the command exits or has been torn down after its
	// timeout. It never returns an error; failures are in the result.
	Run(ctx context.Context, run CommandRun) CommandRunResult
}
