package entities

import "slices"

// Git lifecycle hooks that commands.conf lines may target.
const (
	HookPreCommit        = "pre-commit"
	HookPrepareCommitMsg = "prepare-commit-msg"
	HookCommitMsg        = "commit-msg"
	HookPostCommit       = "post-commit"
	HookPrePush          = "pre-push"
	HookPostCheckout     = "post-checkout"
	HookPostRewrite      = "post-rewrite"
	HookApplypatchMsg    = "applypatch-msg"
)

// KnownHooks returns the supported hook names in lifecycle order.
func KnownHooks() []string {
	return []string{
		HookApplypatchMsg,
		HookPreCommit,
		HookPrepareCommitMsg,
		HookCommitMsg,
		HookPostCommit,
		HookPostCheckout,
		HookPostRewrite,
		HookPrePush,
	}
}

// IsKnownHook reports whether name is a supported hook.
func IsKnownHook(name string) bool {
	return slices.Contains(KnownHooks(), name)
}
