package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// Runner executes commands with "<shell> -c" in their own process group.
// A command that outlives its timeout gets a termination signal, then a
// kill after the grace period. Both signals go to the whole group so that
// children the command spawned are torn down too.
type Runner struct{}

var _ repositories.CommandRunner = (*Runner)(nil)

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{}
}

func (it *Runner) Run(ctx context.Context, run repositories.CommandRun) repositories.CommandRunResult {
	shell := run.Shell
	if shell == "" {
		shell = entities.DefaultShell
	}
	grace := run.GracePeriod
	if grace <= 0 {
		grace = entities.DefaultGracePeriod
	}

	var output bytes.Buffer
	// #nosec G204 -- commands come from the repository's own commands.conf
	cmd := exec.Command(shell, "-c", run.Command)
	cmd.Dir = run.Dir
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = grace
	configureProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return repositories.CommandRunResult{ExitCode: -1, StartErr: err, Duration: time.Since(start)}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	var expired <-chan time.Time
	if run.Timeout > 0 {
		timer := time.NewTimer(run.Timeout)
		defer timer.Stop()
		expired = timer.C
	}

	result := repositories.CommandRunResult{}
	var waitErr error
	select {
	case waitErr = <-done:
	case <-expired:
		result.TimedOut = true
		waitErr = terminate(cmd, done, grace)
	case <-ctx.Done():
		waitErr = terminate(cmd, done, grace)
		result.StartErr = ctx.Err()
	}

	result.Duration = time.Since(start)
	result.Output = output.String()
	result.ExitCode = exitCode(cmd, waitErr)
	return result
}

// terminate asks the process group to stop, and kills it if it is still
// running after grace. It returns the result of Wait.
func terminate(cmd *exec.Cmd, done <-chan error, grace time.Duration) error {
	if err := terminateGroup(cmd); err != nil {
		logger.Debugf("Failed to signal process group %d: %v", cmd.Process.Pid, err)
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
	}

	logger.Debugf("Process group %d ignored termination, killing it", cmd.Process.Pid)
	if err := killGroup(cmd); err != nil {
		logger.Debugf("Failed to kill process group %d: %v", cmd.Process.Pid, err)
	}
	return <-done
}

func exitCode(cmd *exec.Cmd, waitErr error) int {
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if waitErr != nil {
		return -1
	}
	return 0
}
