package entities

import (
	"fmt"
	"slices"
)

// OriginPolicy answers whether new branches may be created from a type.
type OriginPolicy int

const (
	OriginAllowed OriginPolicy = iota
	OriginBlocked
	OriginUnusual
)

// String implements fmt.Stringer.
func (p OriginPolicy) String() string {
	switch p {
	case OriginAllowed:
		return "allowed"
	case OriginBlocked:
		return "blocked"
	case OriginUnusual:
		return "unusual"
	default:
		return "unknown"
	}
}

// baseRequirements is the creation base of each short-lived type.
// Main and Develop are roots and have no entry.
//
//nolint:gochecknoglobals // immutable lookup table
var baseRequirements = map[BranchType]BranchType{
	BranchFeature: BranchDevelop,
	BranchBugfix:  BranchDevelop,
	BranchSupport: BranchDevelop,
	BranchRelease: BranchDevelop,
	BranchHotfix:  BranchMain,
}

// mergeTargets is the merge destination table, keyed by source type.
//
//nolint:gochecknoglobals // immutable lookup table
var mergeTargets = map[BranchType][]BranchType{
	BranchFeature: {BranchDevelop},
	BranchBugfix:  {BranchDevelop},
	BranchSupport: {BranchDevelop},
	BranchRelease: {BranchMain, BranchDevelop},
	BranchHotfix:  {BranchMain, BranchDevelop},
	BranchMain:    {},
	BranchDevelop: {},
}

// originPolicies says which types new branches may be cut from.
//
//nolint:gochecknoglobals // immutable lookup table
var originPolicies = map[BranchType]OriginPolicy{
	BranchMain:    OriginAllowed,
	BranchDevelop: OriginAllowed,
	BranchRelease: OriginBlocked,
	BranchHotfix:  OriginBlocked,
	BranchFeature: OriginUnusual,
	BranchBugfix:  OriginUnusual,
	BranchSupport: OriginUnusual,
}

// RequiredBase returns the type a branch of the given type must be created
// from. The boolean is false for root branches and for Unknown.
func RequiredBase(t BranchType) (BranchType, bool) {
	base, ok := baseRequirements[t]
	return base, ok
}

// AllowedMergeTargets returns the types a branch of the given type may be
// merged into. Unknown sources may merge anywhere.
func AllowedMergeTargets(source BranchType) []BranchType {
	if source == BranchUnknown {
		return AllBranchTypes()
	}
	return slices.Clone(mergeTargets[source])
}

// IsMergeAllowed reports whether merging source into target follows the
// merge table. Either side being Unknown is accepted.
func IsMergeAllowed(source, target BranchType) bool {
	if source == BranchUnknown || target == BranchUnknown {
		return true
	}
	return slices.Contains(mergeTargets[source], target)
}

// CanOriginateBranches returns the origin policy for a type. Unknown is allowed.
func CanOriginateBranches(t BranchType) OriginPolicy {
	if policy, ok := originPolicies[t]; ok {
		return policy
	}
	return OriginAllowed
}

// ValidateBranchCreation checks creating newBranch while origin is checked
// out. Blocked origins fail whatever the new name is; unusual origins are
// accepted with a warning; allowed origins must match the new branch's
// required base.
func ValidateBranchCreation(origin, newBranch string) (string, error) {
	originType := Classify(origin)
	newType := Classify(newBranch)

	switch CanOriginateBranches(originType) {
	case OriginBlocked:
		return "", NewValidationFailure(
			fmt.Sprintf("new branches cannot be created from %s branches; commit directly on them", originType),
			fmt.Sprintf("%s created from %s", newBranch, origin),
			"a branch cut from develop or main",
			"git checkout "+origin,
			"git branch -D "+newBranch,
		)
	case OriginUnusual:
		return fmt.Sprintf("creating %s from %s branch %s is unusual", newBranch, originType, origin), nil
	case OriginAllowed:
	}

	required, ok := RequiredBase(newType)
	if !ok || originType == BranchUnknown || originType == required {
		return "", nil
	}
	return "", NewValidationFailure(
		fmt.Sprintf("%s branches must be created from %s", newType, required),
		fmt.Sprintf("%s created from %s (%s)", newBranch, origin, originType),
		required.String(),
		fmt.Sprintf("git checkout %s", required.NamingHint()),
		fmt.Sprintf("git branch -D %s", newBranch),
		fmt.Sprintf("git checkout -b %s", newBranch),
	)
}
