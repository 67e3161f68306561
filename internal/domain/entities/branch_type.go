package entities

import (
	"regexp"
	"strings"
)

// BranchType is the Git-Flow role derived from a branch name.
type BranchType string

const (
	BranchMain    BranchType = "main"
	BranchDevelop BranchType = "develop"
	BranchRelease BranchType = "release"
	BranchHotfix  BranchType = "hotfix"
	BranchFeature BranchType = "feature"
	BranchBugfix  BranchType = "bugfix"
	BranchSupport BranchType = "support"
	BranchUnknown BranchType = "unknown"
)

// ticketPattern is the JIRA-style ticket embedded in short-lived branch names.
const ticketPattern = `[A-Z]{2,10}-[0-9]+`

// branchPattern maps one anchored name pattern to the type it yields.
type branchPattern struct {
	branchType BranchType
	pattern    *regexp.Regexp
}

// branchPatterns is evaluated in order; the first match wins. Main, Develop
// and Release come before the ticketed patterns.
//
//nolint:gochecknoglobals // immutable lookup table
var branchPatterns = []branchPattern{
	{BranchMain, regexp.MustCompile(`^(main|master)$`)},
	{BranchDevelop, regexp.MustCompile(`^(develop|development)$`)},
	{BranchRelease, regexp.MustCompile(`^release-[0-9]+(\.[0-9]+)*(-[a-z0-9][a-z0-9.]*)?$`)},
	{BranchFeature, regexp.MustCompile(`^feat(ure)?-` + ticketPattern + `(-[A-Za-z0-9._-]+)?$`)},
	{BranchBugfix, regexp.MustCompile(`^(bugfix|fix)-` + ticketPattern + `(-[A-Za-z0-9._-]+)?$`)},
	{BranchHotfix, regexp.MustCompile(`^hotfix-` + ticketPattern + `(-[A-Za-z0-9._-]+)?$`)},
	{BranchSupport, regexp.MustCompile(`^support-` + ticketPattern + `(-[A-Za-z0-9._-]+)?$`)},
}

//nolint:gochecknoglobals // compiled once
var ticketRegexp = regexp.MustCompile(ticketPattern)

// AllBranchTypes lists every type Classify can return, Unknown last.
func AllBranchTypes() []BranchType {
	return []BranchType{
		BranchMain, BranchDevelop, BranchRelease, BranchFeature,
		BranchBugfix, BranchHotfix, BranchSupport, BranchUnknown,
	}
}

// Classify maps a branch name to its BranchType. It never fails: anything
// that matches no pattern is BranchUnknown. A leading "refs/heads/" is ignored.
func Classify(name string) BranchType {
	name = strings.TrimPrefix(name, "refs/heads/")
	for _, bp := range branchPatterns {
		if bp.pattern.MatchString(name) {
			return bp.branchType
		}
	}
	return BranchUnknown
}

// TicketID returns the ticket embedded in a ticketed branch name, or "" for
// types that carry none.
func TicketID(name string) string {
	switch Classify(name) {
	case BranchFeature, BranchBugfix, BranchHotfix, BranchSupport:
		return ticketRegexp.FindString(strings.TrimPrefix(name, "refs/heads/"))
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (t BranchType) String() string {
	return string(t)
}

// IsProtected reports whether the type is one of the permanent branches.
func (t BranchType) IsProtected() bool {
	return t == BranchMain || t == BranchDevelop
}

// IsShortLived reports whether the type is a temporary Git-Flow branch.
func (t BranchType) IsShortLived() bool {
	switch t {
	case BranchRelease, BranchHotfix, BranchFeature, BranchBugfix, BranchSupport:
		return true
	default:
		return false
	}
}

// NamingHint describes the expected name shape for a type.
func (t BranchType) NamingHint() string {
	switch t {
	case BranchMain:
		return "main"
	case BranchDevelop:
		return "develop"
	case BranchRelease:
		return "release-<major>.<minor>[.<patch>][-<suffix>]"
	case BranchFeature:
		return "feat-<TICKET>-<short-description>"
	case BranchBugfix:
		return "bugfix-<TICKET>-<short-description>"
	case BranchHotfix:
		return "hotfix-<TICKET>-<short-description>"
	case BranchSupport:
		return "support-<TICKET>-<short-description>"
	default:
		return ""
	}
}
