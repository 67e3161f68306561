package entities

import "time"

// ExecutionMode selects how a work list is run.
type ExecutionMode int

const (
	ModeSequential ExecutionMode = iota
	ModeParallel
)

// String implements fmt.Stringer.
func (m ExecutionMode) String() string {
	if m == ModeParallel {
		return "parallel"
	}
	return "sequential"
}

// Outcome is how a single command ended.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTimeout
	OutcomeFailure
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// ExecutionResult records one executed command. ExitCode is meaningful only
// for OutcomeFailure; -1 means the process could not be started.
type ExecutionResult struct {
	Spec     CommandSpec
	Outcome  Outcome
	ExitCode int
	Duration time.Duration
	Output   string
}

// Succeeded reports whether the command ended with OutcomeSuccess.
func (r ExecutionResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Blocking reports whether the result fails the whole run.
func (r ExecutionResult) Blocking() bool {
	return r.Spec.Mandatory && !r.Succeeded()
}

// AggregateResult is the verdict over a batch of results.
type AggregateResult struct {
	OverallSuccess bool
	Passed         []string
	Failed         []string
}

// Aggregate splits results into passed and failed descriptions. The run
// succeeds unless a mandatory command did not succeed.
func Aggregate(results []ExecutionResult) AggregateResult {
	agg := AggregateResult{OverallSuccess: true}
	for _, r := range results {
		if r.Succeeded() {
			agg.Passed = append(agg.Passed, r.Spec.Label())
			continue
		}
		agg.Failed = append(agg.Failed, r.Spec.Label())
		if r.Spec.Mandatory {
			agg.OverallSuccess = false
		}
	}
	return agg
}
