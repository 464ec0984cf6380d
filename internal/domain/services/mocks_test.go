package services

import (
	"context"
	"fmt"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
)

// mockScanner returns canned documents per source
type mockScanner struct {
	results map[string][]entities.Component
	errors  map[string]error
	scanned []string
}

func (m *mockScanner) Scan(_ context.Context, source string) (*entities.CycloneDXDocument, error) {
	m.scanned = append(m.scanned, source)
	if err := m.errors[source]; err != nil {
		return nil, err
	}
	return &entities.CycloneDXDocument{BOMFormat: "CycloneDX", Components: m.results[source]}, nil
}

// mockBuilder records logins and builds
type mockBuilder struct {
	loginErr   error
	buildErrs  map[string]error
	logins     []entities.RegistryCredentials
	builtTags  []string
	dockerfile []string
}

func (m *mockBuilder) Login(_ context.Context, creds entities.RegistryCredentials) error {
	m.logins = append(m.logins, creds)
	return m.loginErr
}

func (m *mockBuilder) Build(_ context.Context, _, dockerfile, tag string) error {
	m.dockerfile = append(m.dockerfile, dockerfile)
	if err := m.buildErrs[dockerfile]; err != nil {
		return err
	}
	m.builtTags = append(m.builtTags, tag)
	return nil
}

// mockLocator returns a fixed file list
type mockLocator struct {
	files   []string
	err     error
	pattern string
}

func (m *mockLocator) FindFiles(pattern, _ string) ([]string, error) {
	m.pattern = pattern
	return m.files, m.err
}

// mockCommitLog returns a fixed history
type mockCommitLog struct {
	history entities.CommitHistory
	err     error
}

func (m *mockCommitLog) CommitTimestamps(_ context.Context, _ string) (entities.CommitHistory, error) {
	return m.history, m.err
}

// mockRepositoryGateway returns fixed repository data
type mockRepositoryGateway struct {
	languages    entities.Languages
	languagesErr error
	info         *entities.RepositoryInfo
	infoErr      error
}

func (m *mockRepositoryGateway) GetLanguages(_ context.Context, _, _ string) (entities.Languages, error) {
	return m.languages, m.languagesErr
}

func (m *mockRepositoryGateway) GetRepository(_ context.Context, _, _ string) (*entities.RepositoryInfo, error) {
	return m.info, m.infoErr
}

// mockAssumer records role assumptions
type mockAssumer struct {
	roles []entities.RoleAssumption
	err   error
}

func (m *mockAssumer) AssumeRole(_ context.Context, role entities.RoleAssumption) (*entities.TemporaryCredentials, error) {
	m.roles = append(m.roles, role)
	if m.err != nil {
		return nil, m.err
	}
	return &entities.TemporaryCredentials{AccessKeyID: "ASIA", SecretAccessKey: "secret", SessionToken: "token"}, nil
}

// mockStore keeps uploaded objects in memory
type mockStore struct {
	objects map[string][]byte
	err     error
}

func (m *mockStore) PutObject(_ context.Context, creds *entities.TemporaryCredentials, bucket, key string, body []byte) error {
	if m.err != nil {
		return m.err
	}
	if creds == nil {
		return fmt.Errorf("no credentials")
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[bucket+"/"+key] = body
	return nil
}

// mockSigner returns a predictable signature
type mockSigner struct {
	err error
}

func (m *mockSigner) Sign(data []byte) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []byte(fmt.Sprintf("signature of %d bytes", len(data))), nil
}

func strPtr(s string) *string {
	return &s
}

func components(n int) []entities.Component {
	out := make([]entities.Component, n)
	for i := range out {
		out[i] = entities.Component{
			Type:    strPtr("library"),
			Name:    fmt.Sprintf("pkg-%d", i),
			Version: strPtr("1.0.0"),
			BOMRef:  strPtr(fmt.Sprintf("pkg:generic/pkg-%d@1.0.0", i)),
		}
	}
	return out
}
