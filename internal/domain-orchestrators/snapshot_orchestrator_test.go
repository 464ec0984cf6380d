package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
	domainservices "github.com/ochairo/sbom-snapshot/internal/domain/services"
)

// Mock implementations for testing
type mockMetadataService struct {
	metadata     *entities.RepositoryMetadata
	err          error
	languages    entities.Languages
	languagesErr error
}

func (m *mockMetadataService) Collect(_ context.Context, _, _, _ string) (*entities.RepositoryMetadata, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.metadata, nil
}

func (m *mockMetadataService) Languages(_ context.Context, _, _ string) (entities.Languages, error) {
	return m.languages, m.languagesErr
}

type mockAcquisitionService struct {
	components []entities.Component
	err        error
	creds      entities.RegistryCredentials
	path       string
}

func (m *mockAcquisitionService) AcquireSBOM(_ context.Context, path string, creds entities.RegistryCredentials) ([]entities.Component, error) {
	m.path = path
	m.creds = creds
	return m.components, m.err
}

type mockPersistenceService struct {
	localErr  error
	remoteErr error
	target    services.RemoteTarget
	calls     []string
	dates     []time.Time
}

func (m *mockPersistenceService) PersistLocal(_ string, date time.Time, _ *entities.SBOMReport) (string, error) {
	m.calls = append(m.calls, "local")
	m.dates = append(m.dates, date)
	return "/tmp/report.json", m.localErr
}

func (m *mockPersistenceService) PersistRemote(_ context.Context, _ string, date time.Time, _ *entities.SBOMReport, target services.RemoteTarget) (string, error) {
	m.calls = append(m.calls, "remote")
	m.dates = append(m.dates, date)
	m.target = target
	return "2022-05-04-tech-radar-0123456789abcdef.json", m.remoteErr
}

type mockResolver struct {
	creds *entities.RegistryCredentials
	err   error
	calls int
}

func (m *mockResolver) RegistryCredentials(_ context.Context, _ string) (*entities.RegistryCredentials, error) {
	m.calls++
	return m.creds, m.err
}

func newOrchestrator(meta *mockMetadataService, acq *mockAcquisitionService, persist *mockPersistenceService, resolver RegistryCredentialResolver) *SnapshotOrchestrator {
	return NewSnapshotOrchestrator(meta, acq, domainservices.NewReportCompressor(nil), persist, SnapshotOrchestratorConfig{Resolver: resolver})
}

func testRequest() SnapshotRequest {
	return SnapshotRequest{
		Org:      "olxbr",
		Repo:     "tech-radar",
		Branch:   "main",
		ScanPath: "/src",
		Registry: entities.RegistryCredentials{Registry: "registry.example.com", Username: "AWS", Password: "pw"},
		Target:   services.RemoteTarget{Bucket: "devtools-test", RoleARN: "arn:aws:iam::123456789012:role/w"},
	}
}

func TestSnapshotOrchestrator_Run(t *testing.T) {
	version := "2.31.0"
	meta := &mockMetadataService{
		metadata:  &entities.RepositoryMetadata{AgeInMonths: 1, CommitRate: 0.3},
		languages: entities.Languages{{Name: "go", Bytes: "100"}},
	}
	acq := &mockAcquisitionService{components: []entities.Component{{Name: "requests", Version: &version}}}
	persist := &mockPersistenceService{}

	orch := newOrchestrator(meta, acq, persist, nil)

	result, err := orch.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, "/src", acq.path)
	assert.Equal(t, []string{"local", "remote"}, persist.calls)
	assert.Equal(t, "devtools-test", persist.target.Bucket)

	assert.Equal(t, "tech-radar", result.Report.Repo)
	assert.Equal(t, 1, result.Components)
	assert.Equal(t, 0.3, result.Report.Metadata.CommitRate)
	require.Len(t, result.Report.Packages, 1)
	assert.Equal(t, "requests", result.Report.Packages[0].Name)
	assert.Equal(t, "/tmp/report.json", result.LocalPath)
	assert.Equal(t, "2022-05-04-tech-radar-0123456789abcdef.json", result.RemoteKey)

	summary := orch.GetSnapshotSummary(result)
	assert.Contains(t, summary, "tech-radar")
	assert.Contains(t, summary, "Most used language: go")
}

func TestSnapshotOrchestrator_Run_SingleUTCDate(t *testing.T) {
	persist := &mockPersistenceService{}
	clock := time.Date(2022, 5, 4, 23, 59, 59, 0, time.FixedZone("BRT", -3*60*60))
	calls := 0
	orch := NewSnapshotOrchestrator(
		&mockMetadataService{metadata: &entities.RepositoryMetadata{}},
		&mockAcquisitionService{},
		domainservices.NewReportCompressor(nil),
		persist,
		SnapshotOrchestratorConfig{Now: func() time.Time {
			calls++
			return clock.Add(time.Duration(calls) * time.Minute)
		}},
	)

	_, err := orch.Run(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, persist.dates, 2)
	assert.Equal(t, persist.dates[0], persist.dates[1])
	assert.Equal(t, time.UTC, persist.dates[0].Location())
	assert.Equal(t, time.Date(2022, 5, 5, 3, 0, 59, 0, time.UTC), persist.dates[0])
}

func TestSnapshotOrchestrator_Run_LanguagesFailureIsRecovered(t *testing.T) {
	meta := &mockMetadataService{
		metadata:     &entities.RepositoryMetadata{},
		languagesErr: errors.New("bad credentials"),
	}
	orch := newOrchestrator(meta, &mockAcquisitionService{}, &mockPersistenceService{}, nil)

	result, err := orch.Run(context.Background(), testRequest())
	require.NoError(t, err)
	assert.NotNil(t, result.Report.Languages)
	assert.Empty(t, result.Report.Languages)
	assert.Equal(t, entities.NotAPackageName, result.Report.Packages[0].Name)
}

func TestSnapshotOrchestrator_Run_Errors(t *testing.T) {
	okMeta := func() *mockMetadataService {
		return &mockMetadataService{metadata: &entities.RepositoryMetadata{}}
	}

	tests := []struct {
		name      string
		meta      *mockMetadataService
		acq       *mockAcquisitionService
		persist   *mockPersistenceService
		wantErr   string
		wantCalls []string
	}{
		{
			name:    "metadata",
			meta:    &mockMetadataService{err: errors.New("boom")},
			acq:     &mockAcquisitionService{},
			persist: &mockPersistenceService{},
			wantErr: "metadata collection failed",
		},
		{
			name:    "acquisition",
			meta:    okMeta(),
			acq:     &mockAcquisitionService{err: &entities.ScannerInvocationError{Source: "/src", ExitCode: 1}},
			persist: &mockPersistenceService{},
			wantErr: "SBOM acquisition failed",
		},
		{
			name:      "local persistence",
			meta:      okMeta(),
			acq:       &mockAcquisitionService{},
			persist:   &mockPersistenceService{localErr: errors.New("read-only")},
			wantErr:   "local persistence failed",
			wantCalls: []string{"local"},
		},
		{
			name:      "remote persistence",
			meta:      okMeta(),
			acq:       &mockAcquisitionService{},
			persist:   &mockPersistenceService{remoteErr: errors.New("AccessDenied")},
			wantErr:   "remote persistence failed",
			wantCalls: []string{"local", "remote"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := newOrchestrator(tt.meta, tt.acq, tt.persist, nil)

			_, err := orch.Run(context.Background(), testRequest())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, tt.wantCalls, tt.persist.calls)
		})
	}
}

func TestSnapshotOrchestrator_ResolvesRegistryCredentials(t *testing.T) {
	resolved := &entities.RegistryCredentials{Registry: "123456789012.dkr.ecr.us-east-1.amazonaws.com", Username: "AWS", Password: "token"}

	tests := []struct {
		name      string
		registry  entities.RegistryCredentials
		resolver  *mockResolver
		wantPass  string
		wantCalls int
	}{
		{
			name:      "password configured",
			registry:  entities.RegistryCredentials{Registry: "r.example.com", Password: "pw"},
			resolver:  &mockResolver{creds: resolved},
			wantPass:  "pw",
			wantCalls: 0,
		},
		{
			name:      "resolved",
			registry:  entities.RegistryCredentials{Registry: resolved.Registry},
			resolver:  &mockResolver{creds: resolved},
			wantPass:  "token",
			wantCalls: 1,
		},
		{
			name:      "resolver failure keeps original",
			registry:  entities.RegistryCredentials{Registry: resolved.Registry},
			resolver:  &mockResolver{err: errors.New("no identity")},
			wantPass:  "",
			wantCalls: 1,
		},
		{
			name:      "no registry",
			registry:  entities.RegistryCredentials{},
			resolver:  &mockResolver{creds: resolved},
			wantPass:  "",
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acq := &mockAcquisitionService{}
			orch := newOrchestrator(&mockMetadataService{}, acq, &mockPersistenceService{}, tt.resolver)

			_, err := orch.Scan(context.Background(), "/src", tt.registry)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPass, acq.creds.Password)
			assert.Equal(t, tt.wantCalls, tt.resolver.calls)
		})
	}
}
