// Package env loads the runtime settings from environment variables.
package env

import (
	"github.com/spf13/viper"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// Environment variable names
const (
	KeyRepoName           = "REPO_NAME"
	KeyRepoOwner          = "REPO_OWNER"
	KeyDefaultBranch      = "DEFAULT_BRANCH"
	KeyDockerPassword     = "DOCKER_ECR_PASSWORD"
	KeyDockerRegistry     = "DOCKER_REGISTRY"
	KeyAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	KeyAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	KeyAWSRegion          = "AWS_REGION"
	KeyGitHubToken        = "GH_TOKEN"
	KeyGitHubAPIURL       = "GITHUB_API_URL"
	KeyLogLevel           = "LOGLEVEL"
	KeyOutputDir          = "SBOM_OUTPUT_DIR"
	KeySigningKey         = "SBOM_SIGNING_KEY"
)

var defaults = map[string]string{
	KeyRepoName:      "no-name",
	KeyRepoOwner:     "olxbr",
	KeyDefaultBranch: "main",
	KeyAWSRegion:     "us-east-1",
	KeyGitHubAPIURL:  "https://api.github.com",
	KeyLogLevel:      "info",
	KeyOutputDir:     "/tmp",
}

// Loader reads RuntimeEnvironment through viper
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader bound to the process environment
func NewLoader() *Loader {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return &Loader{v: v}
}

// Set overrides a value, mainly for flags and tests
func (l *Loader) Set(key, value string) {
	l.v.Set(key, value)
}

// Load returns the runtime environment with defaults applied.
// Variables set to an empty string fall back to their defaults.
func (l *Loader) Load() entities.RuntimeEnvironment {
	return entities.RuntimeEnvironment{
		RepoName:           l.get(KeyRepoName),
		RepoOwner:          l.get(KeyRepoOwner),
		DefaultBranch:      l.get(KeyDefaultBranch),
		DockerPassword:     l.get(KeyDockerPassword),
		DockerRegistry:     l.get(KeyDockerRegistry),
		AWSAccessKeyID:     l.get(KeyAWSAccessKeyID),
		AWSSecretAccessKey: l.get(KeyAWSSecretAccessKey),
		AWSRegion:          l.get(KeyAWSRegion),
		GitHubToken:        l.get(KeyGitHubToken),
		GitHubAPIURL:       l.get(KeyGitHubAPIURL),
		LogLevel:           l.get(KeyLogLevel),
		OutputDir:          l.get(KeyOutputDir),
		SigningKey:         l.get(KeySigningKey),
	}
}

func (l *Loader) get(key string) string {
	if value := l.v.GetString(key); value != "" {
		return value
	}
	return defaults[key]
}
