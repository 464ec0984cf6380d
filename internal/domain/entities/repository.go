package entities

import "time"

// RepositoryInfo is the subset of the upstream repository resource used in reports
type RepositoryInfo struct {
	FullName      string
	DefaultBranch string
	CreatedAt     string // RFC 3339, as returned by the API
}

// RepositoryMetadata aggregates the activity figures of a repository
type RepositoryMetadata struct {
	AgeInMonths     float64
	CommitRate      float64
	CreatedAt       string
	FirstCommitDate string
	LastCommitDate  string
}

// CommitHistory is an ordered sequence of commit timestamps, newest first
type CommitHistory []time.Time

// Oldest returns the earliest timestamp in the history
func (h CommitHistory) Oldest() (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	oldest := h[0]
	for _, ts := range h[1:] {
		if ts.Before(oldest) {
			oldest = ts
		}
	}
	return oldest, true
}

// Newest returns the latest timestamp in the history
func (h CommitHistory) Newest() (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	newest := h[0]
	for _, ts := range h[1:] {
		if ts.After(newest) {
			newest = ts
		}
	}
	return newest, true
}
