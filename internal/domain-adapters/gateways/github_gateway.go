package gateways

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

// DefaultGitHubAPIURL is the public GitHub REST endpoint
const DefaultGitHubAPIURL = "https://api.github.com"

// HTTPGitHubGateway implements RepositoryGateway on top of RateLimitedClient
type HTTPGitHubGateway struct {
	client    *RateLimitedClient
	baseURL   string
	token     string
	userAgent string
	logger    interfaces.Logger
}

// NewHTTPGitHubGateway creates a new GitHub gateway
func NewHTTPGitHubGateway(client *RateLimitedClient, baseURL, token string, logger interfaces.Logger) *HTTPGitHubGateway {
	if baseURL == "" {
		baseURL = DefaultGitHubAPIURL
	}
	return &HTTPGitHubGateway{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		token:     token,
		userAgent: "sbom-snapshot/1.0",
		logger:    interfaces.OrNoOp(logger),
	}
}

// githubRepository represents the GitHub API repository format
type githubRepository struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	CreatedAt     string `json:"created_at"`
}

func (g *HTTPGitHubGateway) headers() map[string]string {
	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": g.userAgent,
	}
	if g.token != "" {
		headers["Authorization"] = "Bearer " + g.token
	}
	return headers
}

// GetLanguages retrieves the language histogram of a repository
func (g *HTTPGitHubGateway) GetLanguages(ctx context.Context, org, repo string) (entities.Languages, error) {
	g.logger.Debug("Getting repository languages", interfaces.F("repo", repo))

	url := fmt.Sprintf("%s/repos/%s/%s/languages", g.baseURL, org, repo)
	resp, err := g.client.Get(ctx, url, g.headers(), nil)
	if resp == nil {
		return nil, fmt.Errorf("failed to get languages: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get languages: status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var languages entities.Languages
	if err := resp.JSON(&languages); err != nil {
		return nil, err
	}
	if languages == nil {
		languages = entities.Languages{}
	}

	if most, ok := languages.MostUsed(); ok {
		g.logger.Info("Most used language found", interfaces.F("repo", repo), interfaces.F("language", most))
	} else {
		g.logger.Debug("No languages found", interfaces.F("repo", repo))
	}

	return languages, nil
}

// GetRepository retrieves repository details
func (g *HTTPGitHubGateway) GetRepository(ctx context.Context, org, repo string) (*entities.RepositoryInfo, error) {
	g.logger.Debug("Getting repository details", interfaces.F("repo", repo))

	url := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, org, repo)
	resp, err := g.client.Get(ctx, url, g.headers(), nil)
	if resp == nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("repository not found: %s/%s", org, repo)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get repository: status %d: %s", resp.StatusCode, string(resp.Body))
	}

	var result githubRepository
	if err := resp.JSON(&result); err != nil {
		return nil, err
	}

	return &entities.RepositoryInfo{
		FullName:      result.FullName,
		DefaultBranch: result.DefaultBranch,
		CreatedAt:     result.CreatedAt,
	}, nil
}
