//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// CommandSpecBuilder helps create test command specs with a fluent interface.
type CommandSpecBuilder struct {
	*testkit.BaseBuilder
	hook        string
	priority    int
	mandatory   bool
	timeout     int
	command     string
	description string
}

// NewCommandSpecBuilder creates a new command spec builder with sensible defaults.
func NewCommandSpecBuilder() *CommandSpecBuilder {
	return &CommandSpecBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		hook:        entities.HookPreCommit,
		priority:    1,
		mandatory:   true,
		timeout:     30,
		command:     "true",
		description: "test command",
	}
}

// WithHook sets the hook name.
func (b *CommandSpecBuilder) WithHook(hook string) *CommandSpecBuilder {
	b.hook = hook
	return b
}

// WithPriority sets the priority.
func (b *CommandSpecBuilder) WithPriority(priority int) *CommandSpecBuilder {
	b.priority = priority
	return b
}

// WithMandatory sets whether a failure blocks the hook.
func (b *CommandSpecBuilder) WithMandatory(mandatory bool) *CommandSpecBuilder {
	b.mandatory = mandatory
	return b
}

// WithTimeout sets the timeout in seconds.
func (b *CommandSpecBuilder) WithTimeout(seconds int) *CommandSpecBuilder {
	b.timeout = seconds
	return b
}

// WithCommand sets the shell command template.
func (b *CommandSpecBuilder) WithCommand(command string) *CommandSpecBuilder {
	b.command = command
	return b
}

// WithDescription sets the description.
func (b *CommandSpecBuilder) WithDescription(description string) *CommandSpecBuilder {
	b.description = description
	return b
}

// Build creates the spec (satisfies testkit.Builder interface).
func (b *CommandSpecBuilder) Build() interface{} {
	return b.BuildCommandSpec()
}

// BuildCommandSpec creates the spec with a concrete return type.
func (b *CommandSpecBuilder) BuildCommandSpec() entities.CommandSpec {
	return entities.CommandSpec{
		Hook:           b.hook,
		Priority:       b.priority,
		Mandatory:      b.mandatory,
		TimeoutSeconds: b.timeout,
		Command:        b.command,
		Description:    b.description,
	}
}

// BuildLine renders the spec as a commands.conf line.
func (b *CommandSpecBuilder) BuildLine() string {
	return fmt.Sprintf("%s:%d:%t:%d:%s:%s",
		b.hook, b.priority, b.mandatory, b.timeout, b.command, b.description)
}

// Reset clears the builder state, allowing it to be reused.
func (b *CommandSpecBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.hook = entities.HookPreCommit
	b.priority = 1
	b.mandatory = true
	b.timeout = 30
	b.command = "true"
	b.description = "test command"
	return b
}

// Clone creates a deep copy of the CommandSpecBuilder.
func (b *CommandSpecBuilder) Clone() testkit.Builder {
	return &CommandSpecBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		hook:        b.hook,
		priority:    b.priority,
		mandatory:   b.mandatory,
		timeout:     b.timeout,
		command:     b.command,
		description: b.description,
	}
}
