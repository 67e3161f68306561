package commands

import (
	"context"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"mvdan.cc/sh/v3/syntax"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

const tracerName = "github.com/rios0rios0/gitflow-hooks/commands"

// Executor runs a prioritized work list of configured commands.
type Executor interface {
	Run(ctx context.Context, specs []entities.CommandSpec, opts ExecutionOptions) []entities.ExecutionResult
}

// ExecutionOptions controls one executor run.
type ExecutionOptions struct {
	HookName    string
	Mode        entities.ExecutionMode
	MaxParallel int
	Dir         string
	Shell       string
	GracePeriod time.Duration
}

// ExecutionOptionsFrom derives the options for a hook invocation.
func ExecutionOptionsFrom(settings *entities.Settings) ExecutionOptions {
	return ExecutionOptions{
		HookName:    settings.HookName,
		Mode:        settings.ExecutionMode(),
		MaxParallel: settings.MaxParallel,
		Dir:         settings.RootDir,
		Shell:       settings.Shell,
		GracePeriod: settings.GracePeriod,
	}
}

// CommandExecutor runs commands through a CommandRunner, sequentially with
// stop-on-first-mandatory-failure or in bounded-parallel priority tiers.
type CommandExecutor struct {
	runner repositories.CommandRunner
	git    repositories.GitRepository
}

// NewCommandExecutor creates a new CommandExecutor.
func NewCommandExecutor(runner repositories.CommandRunner, git repositories.GitRepository) *CommandExecutor {
	return &CommandExecutor{runner: runner, git: git}
}

// preparedCommand is a spec with its template already expanded.
type preparedCommand struct {
	spec    entities.CommandSpec
	command string
	skip    bool
}

// Run executes the work list and returns one result per command that ran.
// In sequential mode the list is cut short after the first mandatory
// command that does not succeed; in parallel mode every command runs.
func (it *CommandExecutor) Run(
	ctx context.Context,
	specs []entities.CommandSpec,
	opts ExecutionOptions,
) []entities.ExecutionResult {
	if len(specs) == 0 {
		return nil
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "commands.run",
		trace.WithAttributes(
			attribute.String("hook.name", opts.HookName),
			attribute.String("commands.mode", opts.Mode.String()),
			attribute.Int("commands.count", len(specs)),
		),
	)
	defer span.End()

	prepared := it.prepare(ctx, specs)
	logger.Infof("Running %d %s command(s) in %s mode", len(prepared), opts.HookName, opts.Mode)

	if opts.Mode == entities.ModeParallel {
		return it.runParallel(ctx, prepared, opts)
	}
	return it.runSequential(ctx, prepared, opts)
}

func (it *CommandExecutor) runSequential(
	ctx context.Context,
	prepared []preparedCommand,
	opts ExecutionOptions,
) []entities.ExecutionResult {
	results := make([]entities.ExecutionResult, 0, len(prepared))
	for i, pc := range prepared {
		result := it.runOne(ctx, pc, opts)
		results = append(results, result)
		if result.Blocking() {
			if remaining := len(prepared) - i - 1; remaining > 0 {
				logger.Errorf(
					"Mandatory command %q did not succeed, skipping %d remaining command(s)",
					pc.spec.Label(), remaining,
				)
			}
			break
		}
	}
	return results
}

// runParallel runs each priority tier concurrently, at most MaxParallel at a
// time, and always moves on to the next tier. Results keep work-list order.
func (it *CommandExecutor) runParallel(
	ctx context.Context,
	prepared []preparedCommand,
	opts ExecutionOptions,
) []entities.ExecutionResult {
	limit := opts.MaxParallel
	if limit <= 0 {
		limit = entities.DefaultMaxParallel
	}

	results := make([]entities.ExecutionResult, len(prepared))
	for _, tier := range priorityTiers(prepared) {
		group := new(errgroup.Group)
		group.SetLimit(limit)
		for _, idx := range tier {
			group.Go(func() error {
				results[idx] = it.runOne(ctx, prepared[idx], opts)
				return nil
			})
		}
		_ = group.Wait()
	}
	return results
}

// priorityTiers groups indexes of a priority-sorted list by equal priority.
func priorityTiers(prepared []preparedCommand) [][]int {
	var tiers [][]int
	for i, pc := range prepared {
		if i == 0 || pc.spec.Priority != prepared[i-1].spec.Priority {
			tiers = append(tiers, nil)
		}
		tiers[len(tiers)-1] = append(tiers[len(tiers)-1], i)
	}
	return tiers
}

func (it *CommandExecutor) runOne(
	ctx context.Context,
	pc preparedCommand,
	opts ExecutionOptions,
) entities.ExecutionResult {
	if pc.skip {
		logger.Infof("Skipping %q: no staged files", pc.spec.Label())
		return entities.ExecutionResult{Spec: pc.spec, Outcome: entities.OutcomeSuccess}
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "command.exec",
		trace.WithAttributes(
			attribute.String("command.description", pc.spec.Label()),
			attribute.Int("command.priority", pc.spec.Priority),
			attribute.Bool("command.mandatory", pc.spec.Mandatory),
		),
	)
	defer span.End()

	logger.Debugf("Executing %q: %s", pc.spec.Label(), pc.command)
	res := it.runner.Run(ctx, repositories.CommandRun{
		Command:     pc.command,
		Dir:         opts.Dir,
		Shell:       opts.Shell,
		Timeout:     pc.spec.Timeout(),
		GracePeriod: opts.GracePeriod,
	})

	result := entities.ExecutionResult{
		Spec:     pc.spec,
		Outcome:  entities.OutcomeSuccess,
		ExitCode: res.ExitCode,
		Duration: res.Duration,
		Output:   res.Output,
	}
	switch {
	case res.TimedOut:
		result.Outcome = entities.OutcomeTimeout
	case res.StartErr != nil:
		result.Outcome = entities.OutcomeFailure
		result.ExitCode = -1
		result.Output = strings.TrimSpace(result.Output + "\n" + res.StartErr.Error())
	case res.ExitCode != 0:
		result.Outcome = entities.OutcomeFailure
	}

	span.SetAttributes(attribute.String("command.outcome", result.Outcome.String()))
	if !result.Succeeded() {
		span.SetStatus(codes.Error, result.Outcome.String())
	}
	reportResult(result)
	return result
}

// reportResult logs the outcome. Captured output is only logged, and thus
// only reaches the audit log, when the command did not succeed.
func reportResult(result entities.ExecutionResult) {
	label := result.Spec.Label()
	seconds := result.Duration.Seconds()

	logf := logger.Warnf
	if result.Spec.Mandatory {
		logf = logger.Errorf
	}

	switch result.Outcome {
	case entities.OutcomeSuccess:
		logger.Infof("Passed: %s (%.1fs)", label, seconds)
		return
	case entities.OutcomeTimeout:
		logf("Timed out: %s after %ds", label, result.Spec.TimeoutSeconds)
	case entities.OutcomeFailure:
		logf("Failed: %s (exit code %d, %.1fs)", label, result.ExitCode, seconds)
	}
	if output := strings.TrimSpace(result.Output); output != "" {
		logf("Output of %s:\n%s", label, output)
	}
}

// prepare expands {staged} in every template. Staged files are listed once.
func (it *CommandExecutor) prepare(ctx context.Context, specs []entities.CommandSpec) []preparedCommand {
	var staged []string
	var stagedLoaded bool

	prepared := make([]preparedCommand, 0, len(specs))
	for _, spec := range specs {
		pc := preparedCommand{spec: spec, command: spec.Command}
		if spec.UsesStagedFiles() {
			if !stagedLoaded {
				staged = it.stagedFiles(ctx)
				stagedLoaded = true
			}
			if len(staged) == 0 {
				pc.skip = true
			} else {
				pc.command = ExpandStaged(spec.Command, staged)
			}
		}
		prepared = append(prepared, pc)
	}
	return prepared
}

func (it *CommandExecutor) stagedFiles(ctx context.Context) []string {
	files, err := it.git.StagedFiles(ctx)
	if err != nil {
		logger.Warnf("Failed to list staged files: %v", err)
		return nil
	}
	return files
}

// ExpandStaged replaces {staged} with the files quoted as individual shell
// words, so no part of a filename can be read as shell syntax. Files that
// cannot be quoted at all (such as names with NUL bytes) are left out.
func ExpandStaged(template string, files []string) string {
	quoted := make([]string, 0, len(files))
	for _, file := range files {
		word, err := syntax.Quote(file, syntax.LangBash)
		if err != nil {
			logger.Warnf("Leaving %q out of {staged}: %v", file, err)
			continue
		}
		quoted = append(quoted, word)
	}
	return strings.ReplaceAll(template, entities.StagedPlaceholder, strings.Join(quoted, " "))
}
