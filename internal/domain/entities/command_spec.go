package entities

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"mvdan.cc/sh/v3/syntax"
)

// StagedPlaceholder is replaced by the shell-quoted staged file list.
const StagedPlaceholder = "{staged}"

// commandSpecFields is the field count of a commands.conf line:
// HOOK:PRIORITY:MANDATORY:TIMEOUT:COMMAND:DESCRIPTION.
const commandSpecFields = 6

// CommandSpec is one configured validation or fix command.
type CommandSpec struct {
	Hook           string `yaml:"hook"`
	Priority       int    `yaml:"priority"`
	Mandatory      bool   `yaml:"mandatory"`
	TimeoutSeconds int    `yaml:"timeout"`
	Command        string `yaml:"command"`
	Description    string `yaml:"description"`
	Line           int    `yaml:"line"`
}

// Timeout returns the configured wall-clock limit.
func (s CommandSpec) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// UsesStagedFiles reports whether the template embeds StagedPlaceholder.
func (s CommandSpec) UsesStagedFiles() bool {
	return strings.Contains(s.Command, StagedPlaceholder)
}

// Label is the description, falling back to the command itself.
func (s CommandSpec) Label() string {
	if s.Description != "" {
		return s.Description
	}
	return s.Command
}

// ParseCommandSpecs parses commands.conf text and returns the specs for
// hookName sorted by ascending priority, ties kept in file order. Blank lines
// and lines starting with '#' are skipped. Malformed lines are dropped and
// reported in the returned error slice; they never abort the parse.
func ParseCommandSpecs(configText, hookName string) ([]CommandSpec, []*ConfigParseError) {
	var specs []CommandSpec
	var parseErrs []*ConfigParseError

	for i, raw := range strings.Split(strings.ReplaceAll(configText, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, err := ParseCommandSpecLine(line, i+1)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		if spec.Hook == hookName {
			specs = append(specs, spec)
		}
	}

	slices.SortStableFunc(specs, func(a, b CommandSpec) int {
		return cmp.Compare(a.Priority, b.Priority)
	})
	return specs, parseErrs
}

// ParseCommandSpecLine parses a single non-comment line.
func ParseCommandSpecLine(line string, lineNo int) (CommandSpec, *ConfigParseError) {
	fail := func(format string, args ...any) (CommandSpec, *ConfigParseError) {
		return CommandSpec{}, &ConfigParseError{Line: lineNo, Text: line, Reason: fmt.Sprintf(format, args...)}
	}

	fields := strings.Split(line, ":")
	if len(fields) != commandSpecFields {
		return fail("expected %d colon-separated fields, got %d", commandSpecFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	hook := fields[0]
	if !IsKnownHook(hook) {
		return fail("unknown hook %q", hook)
	}

	priority, err := strconv.Atoi(fields[1])
	if err != nil {
		return fail("priority %q is not an integer", fields[1])
	}

	mandatory, err := parseMandatory(fields[2])
	if err != nil {
		return fail("%v", err)
	}

	timeout, err := strconv.Atoi(fields[3])
	if err != nil || timeout <= 0 {
		return fail("timeout %q must be a positive integer", fields[3])
	}

	command := fields[4]
	if command == "" {
		return fail("command is empty")
	}
	if syntaxErr := checkShellSyntax(command); syntaxErr != nil {
		return fail("command is not valid shell: %v", syntaxErr)
	}

	return CommandSpec{
		Hook:           hook,
		Priority:       priority,
		Mandatory:      mandatory,
		TimeoutSeconds: timeout,
		Command:        command,
		Description:    fields[5],
		Line:           lineNo,
	}, nil
}

func parseMandatory(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("mandatory %q must be true or false", value)
	}
}

// checkShellSyntax parses the template as bash so that typos surface as a
// config error instead of a failing hook.
func checkShellSyntax(command string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	_, err := parser.Parse(strings.NewReader(command), "")
	return err
}
