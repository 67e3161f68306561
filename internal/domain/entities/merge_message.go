package entities

import (
	"regexp"
	"strings"
)

// MergeVerdict is the classification of a commit against the merge table.
// Undetermined is not a violation: the source branch could not be recovered.
type MergeVerdict int

const (
	MergeNotMerge MergeVerdict = iota
	MergeUndetermined
	MergeCompliant
	MergeViolation
)

// String implements fmt.Stringer.
func (v MergeVerdict) String() string {
	switch v {
	case MergeNotMerge:
		return "not a merge"
	case MergeUndetermined:
		return "undetermined"
	case MergeCompliant:
		return "git-flow compliant"
	case MergeViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// sourceBranchRule is one named way of recovering the source branch from a
// merge commit subject.
type sourceBranchRule struct {
	name      string
	pattern   *regexp.Regexp
	normalize func(string) string
}

// sourceBranchRules are tried in order. "merge-branch" must precede
// "merge-into" because the latter is broader.
//
//nolint:gochecknoglobals // immutable ordered rule list
var sourceBranchRules = []sourceBranchRule{
	{
		name:    "merge-branch",
		pattern: regexp.MustCompile(`^Merge branch '([^']+)'`),
	},
	{
		name:    "merge-into",
		pattern: regexp.MustCompile(`^Merge ([A-Za-z0-9][A-Za-z0-9._/-]*) (?:into|to) \S+`),
	},
	{
		name:    "remote-tracking",
		pattern: regexp.MustCompile(`^Merge remote-tracking branch '([^']+)'`),
		normalize: func(name string) string {
			name = strings.TrimPrefix(name, "refs/remotes/")
			return strings.TrimPrefix(name, "origin/")
		},
	},
	{
		name:    "pull-request",
		pattern: regexp.MustCompile(`^Merge pull request #[0-9]+ from (\S+)`),
		normalize: func(name string) string {
			if _, branch, found := strings.Cut(name, "/"); found {
				return branch
			}
			return name
		},
	},
}

// ExtractSourceBranch recovers the merged branch name from a merge commit
// message. The boolean is false when no rule matches.
func ExtractSourceBranch(message string) (string, bool) {
	subject, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	for _, rule := range sourceBranchRules {
		m := rule.pattern.FindStringSubmatch(subject)
		if m == nil {
			continue
		}
		name := m[1]
		if rule.normalize != nil {
			name = rule.normalize(name)
		}
		if name != "" {
			return name, true
		}
	}
	return "", false
}

// SourceBranchRuleNames lists the extraction rules in evaluation order.
func SourceBranchRuleNames() []string {
	names := make([]string, 0, len(sourceBranchRules))
	for _, rule := range sourceBranchRules {
		names = append(names, rule.name)
	}
	return names
}
