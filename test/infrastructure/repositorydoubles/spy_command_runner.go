//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// SpyCommandRunner implements repositories.CommandRunner without spawning
// processes. Results are looked up by command text.
type SpyCommandRunner struct {
	mu sync.Mutex

	// --- configuration ---
	Results map[string]repositories.CommandRunResult
	Default repositories.CommandRunResult
	Delay   time.Duration

	// --- spy ---
	Runs      []repositories.CommandRun
	active    int
	MaxActive int
}

var _ repositories.CommandRunner = (*SpyCommandRunner)(nil)

// NewSpyCommandRunner creates a runner where every command succeeds.
func NewSpyCommandRunner() *SpyCommandRunner {
	return &SpyCommandRunner{Results: map[string]repositories.CommandRunResult{}}
}

// WithResult configures the result returned for command.
func (s *SpyCommandRunner) WithResult(command string, result repositories.CommandRunResult) *SpyCommandRunner {
	s.Results[command] = result
	return s
}

func (s *SpyCommandRunner) Run(_ context.Context, run repositories.CommandRun) repositories.CommandRunResult {
	s.mu.Lock()
	s.Runs = append(s.Runs, run)
	s.active++
	s.MaxActive = max(s.MaxActive, s.active)
	result, ok := s.Results[run.Command]
	if !ok {
		result = s.Default
	}
	s.mu.Unlock()

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return result
}

// Commands returns the executed command texts in call order.
func (s *SpyCommandRunner) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands := make([]string, 0, len(s.Runs))
	for _, run := range s.Runs {
		commands = append(commands, run.Command)
	}
	return commands
}
