package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// Hook is the interface for running one git hook end to end.
type Hook interface {
	Execute(ctx context.Context, request HookRequest) error
}

// HookRequest is a hook invocation as git made it.
type HookRequest struct {
	HookName string
	Args     []string
}

// HookCommand runs the Git-Flow validations of a hook, then its configured
// commands, then the auto-fix pass.
type HookCommand struct {
	settings   repositories.SettingsRepository
	audit      repositories.AuditRepository
	config     repositories.CommandConfigRepository
	executor   Executor
	remediator *Remediator
	branch     *BranchCommand
	message    *CommitMessageCommand
	checkout   *CheckoutCommand
	push       *PushCommand
	checkMerge CheckMerge
}

// NewHookCommand creates a new HookCommand.
func NewHookCommand(
	settings repositories.SettingsRepository,
	audit repositories.AuditRepository,
	config repositories.CommandConfigRepository,
	executor Executor,
	remediator *Remediator,
	branch *BranchCommand,
	message *CommitMessageCommand,
	checkout *CheckoutCommand,
	push *PushCommand,
	checkMerge CheckMerge,
) *HookCommand {
	return &HookCommand{
		settings:   settings,
		audit:      audit,
		config:     config,
		executor:   executor,
		remediator: remediator,
		branch:     branch,
		message:    message,
		checkout:   checkout,
		push:       push,
		checkMerge: checkMerge,
	}
}

// Execute returns an error wrapping entities.ErrHookFailed when a rule is
// violated or a mandatory command did not succeed.
func (it *HookCommand) Execute(ctx context.Context, request HookRequest) error {
	hookName := request.HookName
	if !entities.IsKnownHook(hookName) {
		return fmt.Errorf("unknown hook %q, expected one of %v", hookName, entities.KnownHooks())
	}

	settings, err := it.settings.Load(ctx, hookName)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Bypass {
		logger.Warnf("BYPASS_HOOKS=1: skipping all %s validations and commands", hookName)
		return nil
	}

	detach, err := it.audit.Attach(settings.LogFile, hookName)
	if err != nil {
		logger.Warnf("Audit log disabled: %v", err)
	} else {
		defer detach()
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "hook."+hookName,
		trace.WithAttributes(
			attribute.String("hook.name", hookName),
			attribute.StringSlice("hook.args", request.Args),
		),
	)
	defer span.End()

	logger.Debugf("Running %s hook in %s", hookName, settings.RootDir)
	if validateErr := it.validate(ctx, settings, request.Args); validateErr != nil {
		span.RecordError(validateErr)
		span.SetStatus(codes.Error, "validation failed")
		logger.Errorf("%s validation failed: %v", hookName, validateErr)
		return validateErr
	}

	specs, err := it.config.Load(ctx, settings.CommandsFile, hookName)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", settings.CommandsFile, err)
	}
	if len(specs) == 0 {
		logger.Debugf("No commands configured for %s", hookName)
		return nil
	}

	var snapshot WorkingTreeSnapshot
	if hookName == entities.HookPreCommit {
		snapshot = it.remediator.Snapshot(ctx)
	}

	results := it.executor.Run(ctx, specs, ExecutionOptionsFrom(settings))
	aggregate := entities.Aggregate(results)
	span.SetAttributes(
		attribute.Int("commands.passed", len(aggregate.Passed)),
		attribute.Int("commands.failed", len(aggregate.Failed)),
	)

	if !aggregate.OverallSuccess {
		span.SetStatus(codes.Error, "mandatory command failed")
		logger.Errorf("%s failed: %s", hookName, strings.Join(aggregate.Failed, ", "))
		return fmt.Errorf("%w: mandatory command(s) did not succeed: %s",
			entities.ErrHookFailed, strings.Join(aggregate.Failed, ", "))
	}
	if len(aggregate.Failed) > 0 {
		logger.Warnf("Optional command(s) failed: %s", strings.Join(aggregate.Failed, ", "))
	}
	logger.Infof("%s passed (%d command(s))", hookName, len(aggregate.Passed))

	if hookName == entities.HookPreCommit {
		if _, fixErr := it.remediator.Execute(ctx, settings, snapshot); fixErr != nil {
			logger.Warnf("Auto-fix pass skipped: %v", fixErr)
		}
	}
	return nil
}

// validate dispatches the Git-Flow checks that belong to a hook.
func (it *HookCommand) validate(ctx context.Context, settings *entities.Settings, args []string) error {
	switch settings.HookName {
	case entities.HookPreCommit:
		return it.branch.Execute(ctx, settings)
	case entities.HookPrepareCommitMsg:
		if len(args) == 0 {
			return missingArgument(settings.HookName, "message file")
		}
		source := ""
		if len(args) > 1 {
			source = args[1]
		}
		return it.message.Prepare(ctx, args[0], source)
	case entities.HookCommitMsg, entities.HookApplypatchMsg:
		if len(args) == 0 {
			return missingArgument(settings.HookName, "message file")
		}
		return it.message.Validate(ctx, settings, args[0])
	case entities.HookPostCheckout:
		return it.checkout.Execute(ctx, args)
	case entities.HookPostCommit:
		report, err := it.checkMerge.Execute(ctx, "HEAD")
		if err != nil {
			logger.Warnf("Could not inspect the new commit: %v", err)
			return nil
		}
		reportMerge(report)
		return nil
	case entities.HookPrePush:
		return it.push.Execute(ctx, settings)
	}
	return nil
}

func missingArgument(hookName, what string) error {
	return fmt.Errorf("%w: %s expects a %s argument", entities.ErrHookFailed, hookName, what)
}
