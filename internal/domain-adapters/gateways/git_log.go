package gateways

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// GitCommitLog reads commit timestamps from a local clone
type GitCommitLog struct {
	runner  CommandRunner
	repoDir string
}

// NewGitCommitLog creates a commit log reader for the clone at repoDir
func NewGitCommitLog(runner CommandRunner, repoDir string) *GitCommitLog {
	return &GitCommitLog{runner: runner, repoDir: repoDir}
}

// CommitTimestamps returns the committer dates of branch, newest first
func (g *GitCommitLog) CommitTimestamps(ctx context.Context, branch string) (entities.CommitHistory, error) {
	if branch == "" {
		return nil, fmt.Errorf("branch cannot be empty")
	}

	result := g.runner.Run(ctx, ExecuteCommandConfig{
		Name:        "git",
		Args:        []string{"log", "--format=%cI", branch, "--"},
		WorkingDir:  g.repoDir,
		Description: "git log",
	})
	if !result.Success {
		return nil, fmt.Errorf("git log failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, strings.TrimSpace(result.Stderr))
	}

	return parseCommitTimestamps(result.Stdout)
}

// parseCommitTimestamps parses one strict ISO 8601 timestamp per line
func parseCommitTimestamps(output string) (entities.CommitHistory, error) {
	history := entities.CommitHistory{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, line)
		if err != nil {
			return nil, fmt.Errorf("invalid commit timestamp %q: %w", line, err)
		}
		history = append(history, ts)
	}
	return history, nil
}
