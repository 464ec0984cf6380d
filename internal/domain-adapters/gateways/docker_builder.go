package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

// DockerBuilder drives the docker CLI for registry login and image builds
type DockerBuilder struct {
	runner CommandRunner
	binary string
	logger interfaces.Logger
}

// NewDockerBuilder creates a new container builder gateway
func NewDockerBuilder(runner CommandRunner, logger interfaces.Logger) *DockerBuilder {
	return &DockerBuilder{
		runner: runner,
		binary: "docker",
		logger: interfaces.OrNoOp(logger),
	}
}

// Login runs `docker login --username <user> --password-stdin <registry>`
func (b *DockerBuilder) Login(ctx context.Context, creds entities.RegistryCredentials) error {
	registry, err := name.NewRegistry(creds.Registry)
	if err != nil {
		return fmt.Errorf("invalid registry %q: %w", creds.Registry, err)
	}

	username := creds.Username
	if username == "" {
		username = "AWS"
	}

	b.logger.Info("Logging in to registry", interfaces.F("registry", registry.RegistryStr()))

	result := b.runner.Run(ctx, ExecuteCommandConfig{
		Name:        b.binary,
		Args:        []string{"login", "--username", username, "--password-stdin", creds.Registry},
		Stdin:       creds.Password,
		Description: "registry login",
	})
	if !result.Success {
		return fmt.Errorf("registry login failed (exit %d): %w\nStderr: %s",
			result.ExitCode, result.Error, strings.TrimSpace(result.Stderr))
	}

	return nil
}

// Build runs `docker build -f <dockerfile> -t <tag> .` inside contextDir
func (b *DockerBuilder) Build(ctx context.Context, contextDir, dockerfile, tag string) error {
	if _, err := name.NewTag(tag); err != nil {
		return fmt.Errorf("invalid image tag %q: %w", tag, err)
	}

	b.logger.Info("Building image", interfaces.F("dockerfile", dockerfile), interfaces.F("tag", tag))

	result := b.runner.Run(ctx, ExecuteCommandConfig{
		Name:        b.binary,
		Args:        []string{"build", "-f", dockerfile, "-t", tag, "."},
		WorkingDir:  contextDir,
		Description: "image build",
	})
	if !result.Success {
		return fmt.Errorf("image build failed for %s (exit %d): %w\nStderr: %s",
			dockerfile, result.ExitCode, result.Error, strings.TrimSpace(result.Stderr))
	}

	b.logger.Debug("Image built", interfaces.F("tag", tag), interfaces.F("duration", result.Duration))
	return nil
}
