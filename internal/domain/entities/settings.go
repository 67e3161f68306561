package entities

import "time"

// Defaults applied when neither the settings file nor git config set a value.
const (
	DefaultMaxCommits  = 5
	DefaultMaxParallel = 4
	DefaultGracePeriod = time.Second
	DefaultShell       = "bash"
	DefaultConfigDir   = ".githooks"
	CommandsFileName   = "commands.conf"
	SettingsFileName   = "settings.yaml"
	AuditLogFileName   = "hooks.log"
)

// Settings is the per-invocation context handed to every component.
// It is built once by the settings repository; nothing reads globals.
type Settings struct {
	HookName string
	RootDir  string
	GitDir   string

	MaxCommits        int
	AutoAddAfterFix   bool
	ParallelExecution bool
	MaxParallel       int
	GracePeriod       time.Duration
	Shell             string

	CommandsFile string
	LogFile      string
	ReleaseVerbs []string

	Bypass               bool
	AllowDirectProtected bool
}

// ExecutionMode derives the executor mode from ParallelExecution.
func (s *Settings) ExecutionMode() ExecutionMode {
	if s.ParallelExecution {
		return ModeParallel
	}
	return ModeSequential
}
