package gateways

import (
	"context"
	"errors"
)

// fakeRunner records invocations and replays canned results
type fakeRunner struct {
	calls   []ExecuteCommandConfig
	results []*ExecuteResult
}

func (f *fakeRunner) Run(_ context.Context, config ExecuteCommandConfig) *ExecuteResult {
	f.calls = append(f.calls, config)
	if len(f.results) == 0 {
		return &ExecuteResult{Success: true}
	}
	result := f.results[0]
	f.results = f.results[1:]
	return result
}

func ok(stdout string) *ExecuteResult {
	return &ExecuteResult{Success: true, Stdout: stdout}
}

func failed(exitCode int, stderr string) *ExecuteResult {
	return &ExecuteResult{
		ExitCode: exitCode,
		Stderr:   stderr,
		Error:    errors.New("exit status"),
	}
}
