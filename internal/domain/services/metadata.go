package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
)

const (
	// monthLength is the length of a month in the activity figures
	monthLength = 30 * 24 * time.Hour
	// commitRateWindow is how far back commits count towards the rate
	commitRateWindow = 180 * 24 * time.Hour
	// commitRateDivisor turns the window count into the reported rate
	commitRateDivisor = 30
	// commitDateLayout renders first/last commit dates
	commitDateLayout = "2006-01-02 -0700"
)

// AgeInMonths returns the completed 30-day months between the oldest commit and now
func AgeInMonths(commits entities.CommitHistory, now time.Time) float64 {
	oldest, ok := commits.Oldest()
	if !ok || !now.After(oldest) {
		return 0
	}
	return math.Floor(float64(now.Sub(oldest)) / float64(monthLength))
}

// CommitRate returns the commits of the last 180 days divided by 30
func CommitRate(commits entities.CommitHistory, now time.Time) float64 {
	since := now.Add(-commitRateWindow)
	recent := 0
	for _, ts := range commits {
		if ts.After(since) {
			recent++
		}
	}
	return float64(recent) / commitRateDivisor
}

// metadataService implements MetadataService
type metadataService struct {
	commits gateways.CommitLog
	repos   gateways.RepositoryGateway
	logger  interfaces.Logger
	now     func() time.Time
}

// NewMetadataService creates a new metadata service
func NewMetadataService(commits gateways.CommitLog, repos gateways.RepositoryGateway, logger interfaces.Logger) services.MetadataService {
	return newMetadataService(commits, repos, logger, time.Now)
}

func newMetadataService(commits gateways.CommitLog, repos gateways.RepositoryGateway, logger interfaces.Logger, now func() time.Time) *metadataService {
	return &metadataService{
		commits: commits,
		repos:   repos,
		logger:  interfaces.OrNoOp(logger),
		now:     now,
	}
}

// Collect gathers the activity figures of a repository.
// Git and API failures are logged and leave the affected fields at their zero value.
func (s *metadataService) Collect(ctx context.Context, org, repo, branch string) (*entities.RepositoryMetadata, error) {
	metadata := &entities.RepositoryMetadata{}
	now := s.now()

	history, err := s.commits.CommitTimestamps(ctx, branch)
	if err != nil {
		s.logger.Warn("Could not read commit history, age and commit rate set to 0",
			interfaces.F("branch", branch),
			interfaces.F("error", err))
	} else {
		metadata.AgeInMonths = AgeInMonths(history, now)
		metadata.CommitRate = CommitRate(history, now)
		if oldest, ok := history.Oldest(); ok {
			metadata.FirstCommitDate = oldest.Format(commitDateLayout)
		}
		if newest, ok := history.Newest(); ok {
			metadata.LastCommitDate = newest.Format(commitDateLayout)
		}
	}

	info, err := s.repos.GetRepository(ctx, org, repo)
	if err != nil {
		s.logger.Warn("Could not read repository details", interfaces.F("repo", repo), interfaces.F("error", err))
	} else {
		metadata.CreatedAt = info.CreatedAt
	}

	s.logger.Info("Repository metadata collected",
		interfaces.F("repo", repo),
		interfaces.F("age", metadata.AgeInMonths),
		interfaces.F("commit_rate", metadata.CommitRate))

	return metadata, nil
}

// Languages returns the language histogram of a repository
func (s *metadataService) Languages(ctx context.Context, org, repo string) (entities.Languages, error) {
	languages, err := s.repos.GetLanguages(ctx, org, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get languages for %s/%s: %w", org, repo, err)
	}
	return languages, nil
}
