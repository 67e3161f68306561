package entities

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MessageKind classifies a commit message.
type MessageKind int

const (
	MessageInvalid MessageKind = iota
	MessageMerge
	MessageRevert
	MessageConventional
)

// String implements fmt.Stringer.
func (k MessageKind) String() string {
	switch k {
	case MessageMerge:
		return "merge"
	case MessageRevert:
		return "revert"
	case MessageConventional:
		return "conventional"
	default:
		return "invalid"
	}
}

// scissorsLine marks the start of the verbose diff git appends to the editor buffer.
const scissorsLine = "# ------------------------ >8 ------------------------"

// minDescriptiveWords is the shortest subject accepted as plain prose on release branches.
const minDescriptiveWords = 3

//nolint:gochecknoglobals // compiled once
var conventionalRegexp = regexp.MustCompile(
	`^([a-z]+)(?:\(([^()\s]+)\))?(!)?: (?:(` + ticketPattern + `) )?(\S.*)$`,
)

//nolint:gochecknoglobals // compiled once
var exactTicketRegexp = regexp.MustCompile(`^` + ticketPattern + `$`)

// ConventionalTypes returns the accepted conventional commit types.
func ConventionalTypes() []string {
	return []string{
		"feat", "fix", "chore", "break", "tests", "test", "docs", "style",
		"refactor", "perf", "build", "ci", "release", "version", "revert", "hotfix",
	}
}

// DefaultReleaseVerbs returns the bare imperative verbs accepted as the first
// word of a release-branch subject when no whitelist is configured.
func DefaultReleaseVerbs() []string {
	return []string{"Bump", "Update", "Prepare", "Merge", "Release", "Finalize", "Version"}
}

// CommitMessage is the parsed subject line of a commit message.
type CommitMessage struct {
	Kind        MessageKind
	Subject     string
	Type        string
	Scope       string
	TicketID    string
	Description string
	Breaking    bool
}

// CleanCommitMessage drops comment lines, anything below the scissors line,
// and surrounding blank lines, the way git does before recording a message.
func CleanCommitMessage(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == scissorsLine {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRightFunc(line, unicode.IsSpace))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// ParseCommitMessage classifies the first line of a cleaned message.
func ParseCommitMessage(raw string) CommitMessage {
	subject, _, _ := strings.Cut(CleanCommitMessage(raw), "\n")
	subject = strings.TrimSpace(subject)
	msg := CommitMessage{Kind: MessageInvalid, Subject: subject}

	switch {
	case subject == "":
		return msg
	case strings.HasPrefix(subject, "Merge "):
		msg.Kind = MessageMerge
		return msg
	case strings.HasPrefix(subject, `Revert "`):
		msg.Kind = MessageRevert
		return msg
	}

	m := conventionalRegexp.FindStringSubmatch(subject)
	if m == nil {
		return msg
	}
	msg.Type, msg.Scope, msg.Breaking, msg.TicketID, msg.Description = m[1], m[2], m[3] == "!", m[4], m[5]

	// "feat: PROJ-1" and "feat(PROJ-1): x" both carry the ticket outside the usual slot.
	if msg.TicketID == "" && exactTicketRegexp.MatchString(msg.Description) {
		msg.TicketID, msg.Description = msg.Description, ""
	}
	if msg.TicketID == "" && exactTicketRegexp.MatchString(msg.Scope) {
		msg.TicketID = msg.Scope
	}

	if slices.Contains(ConventionalTypes(), msg.Type) && msg.Description != "" {
		msg.Kind = MessageConventional
	}
	return msg
}

// ValidateCommitMessage checks a message against the rules for the branch type.
// Release branches accept unticketed conventional messages, subjects that
// start with a whitelisted verb, and plain descriptive subjects. Unknown
// branches accept any non-empty message. Every other type needs a
// conventional message with a ticket.
func ValidateCommitMessage(raw string, branch BranchType, releaseVerbs []string) error {
	msg := ParseCommitMessage(raw)
	if msg.Subject == "" {
		return NewValidationFailure(
			"commit message must not be empty", "(empty)", "<type>: <TICKET> <description>",
			"git commit -m \"feat: PROJ-123 describe the change\"",
		)
	}

	switch msg.Kind {
	case MessageMerge, MessageRevert:
		return nil
	case MessageInvalid, MessageConventional:
	}

	switch branch {
	case BranchUnknown:
		return nil
	case BranchRelease:
		if msg.Kind == MessageConventional || startsWithVerb(msg.Subject, releaseVerbs) ||
			isDescriptive(msg.Subject) {
			return nil
		}
		return NewValidationFailure(
			"release branch commit messages must be conventional, start with an approved verb, or be descriptive",
			msg.Subject,
			fmt.Sprintf("<type>: [TICKET] <description>, or one of %s ...", strings.Join(releaseVerbs, ", ")),
			"git commit --amend -m \"release: prepare 1.2.0\"",
		)
	case BranchMain, BranchDevelop, BranchFeature, BranchBugfix, BranchHotfix, BranchSupport:
	}

	if msg.Kind != MessageConventional {
		return NewValidationFailure(
			fmt.Sprintf("commit messages on %s branches must follow <type>: <TICKET> <description>", branch),
			msg.Subject,
			"type one of "+strings.Join(ConventionalTypes(), ", "),
			"git commit --amend -m \"feat: PROJ-123 describe the change\"",
		)
	}
	if msg.TicketID == "" {
		return NewValidationFailure(
			fmt.Sprintf("commit messages on %s branches must reference a ticket", branch),
			msg.Subject,
			fmt.Sprintf("%s: <TICKET> %s", msg.Type, msg.Description),
			fmt.Sprintf("git commit --amend -m \"%s: PROJ-123 %s\"", msg.Type, msg.Description),
		)
	}
	return nil
}

// CommitTypeFor returns the conventional type suggested for commits on a branch type.
func CommitTypeFor(t BranchType) string {
	switch t {
	case BranchFeature:
		return "feat"
	case BranchBugfix, BranchHotfix:
		return "fix"
	case BranchSupport:
		return "chore"
	case BranchRelease:
		return "release"
	default:
		return ""
	}
}

func startsWithVerb(subject string, verbs []string) bool {
	first, _, _ := strings.Cut(subject, " ")
	for _, verb := range verbs {
		if strings.EqualFold(first, verb) {
			return true
		}
	}
	return false
}

func isDescriptive(subject string) bool {
	r, _ := utf8.DecodeRuneInString(subject)
	return unicode.IsLetter(r) && len(strings.Fields(subject)) >= minDescriptiveWords
}
