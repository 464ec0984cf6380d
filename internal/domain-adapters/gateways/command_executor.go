package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

// CommandRunner runs external tools. CommandExecutor is the production implementation.
type CommandRunner interface {
	Run(ctx context.Context, config ExecuteCommandConfig) *ExecuteResult
}

// CommandExecutor handles execution of external tools (syft, docker, git).
// Commands run until they exit unless the caller sets a Timeout.
type CommandExecutor struct {
	logger interfaces.Logger
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(logger interfaces.Logger) *CommandExecutor {
	return &CommandExecutor{
		logger: interfaces.OrNoOp(logger),
	}
}

// ExecuteCommandConfig contains configuration for running a command.
type ExecuteCommandConfig struct {
	Name        string
	Args        []string
	WorkingDir  string
	Env         map[string]string
	Stdin       string
	Timeout     time.Duration // zero means no limit
	Description string
}

// ExecuteResult contains the result of command execution
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	Error    error
}

// Run executes the command with the given configuration
func (ce *CommandExecutor) Run(ctx context.Context, config ExecuteCommandConfig) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	execCtx := ctx
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: Command and arguments are built by the adapters, not user input
	cmd := exec.CommandContext(execCtx, config.Name, config.Args...)

	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	if len(config.Env) > 0 {
		env := os.Environ()
		for key, value := range config.Env {
			env = append(env, fmt.Sprintf("%s=%s", key, value))
		}
		cmd.Env = env
	}

	if config.Stdin != "" {
		cmd.Stdin = strings.NewReader(config.Stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if config.Description != "" {
		ce.logger.Debug("Executing command",
			interfaces.F("description", config.Description),
			interfaces.F("command", config.Name),
			interfaces.F("dir", config.WorkingDir))
	}

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		result.Error = err
		result.ExitCode = -1
		var exitErr *exec.ExitError
		switch {
		case config.Timeout > 0 && errors.Is(execCtx.Err(), context.DeadlineExceeded):
			result.Error = fmt.Errorf("%s execution timeout after %v: %w", config.Name, config.Timeout, context.DeadlineExceeded)
		case errors.As(err, &exitErr):
			result.ExitCode = exitErr.ExitCode()
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}
