package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/gateways"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
)

const (
	// DefaultOutputDir receives local reports when none is configured
	DefaultOutputDir = "/tmp"
	// SessionNamePrefix prefixes the STS session names
	SessionNamePrefix = "sbom-snapshot-"
	// SignatureSuffix is appended to report names for detached signatures
	SignatureSuffix = ".asc"

	objectHashLength = 16
)

// ReportPersisterConfig configures a ReportPersister
type ReportPersisterConfig struct {
	OutputDir string
	Assumer   gateways.RoleAssumer
	Store     gateways.ObjectStore
	Signer    gateways.ReportSigner // optional
	Logger    interfaces.Logger
}

// ReportPersister implements PersistenceService
type ReportPersister struct {
	outputDir string
	assumer   gateways.RoleAssumer
	store     gateways.ObjectStore
	signer    gateways.ReportSigner
	logger    interfaces.Logger
}

var _ services.PersistenceService = (*ReportPersister)(nil)

// NewReportPersister creates a new persister
func NewReportPersister(config ReportPersisterConfig) *ReportPersister {
	p := &ReportPersister{
		outputDir: config.OutputDir,
		assumer:   config.Assumer,
		store:     config.Store,
		signer:    config.Signer,
		logger:    interfaces.OrNoOp(config.Logger),
	}
	if p.outputDir == "" {
		p.outputDir = DefaultOutputDir
	}
	return p
}

// SerializeReport renders a report as indented JSON without HTML escaping
func SerializeReport(report *entities.SBOMReport) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(report); err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectName returns {YYYY-MM-DD}-{repo}-{hash}.json for serialized report data.
// The date is rendered in UTC.
func ObjectName(date time.Time, repo string, data []byte) string {
	hash := digest.SHA256.FromBytes(data).Encoded()[:objectHashLength]
	return fmt.Sprintf("%s-%s-%s.json", date.UTC().Format("2006-01-02"), repo, hash)
}

// PersistLocal writes the report into the output directory and returns its path
func (p *ReportPersister) PersistLocal(repo string, date time.Time, report *entities.SBOMReport) (string, error) {
	data, err := SerializeReport(report)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.outputDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(p.outputDir, ObjectName(date, repo, data))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	if p.signer != nil {
		sig, err := p.signer.Sign(data)
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path+SignatureSuffix, sig, 0o600); err != nil {
			return "", fmt.Errorf("failed to write signature: %w", err)
		}
	}

	p.logger.Info("Report saved locally", interfaces.F("path", path))
	return path, nil
}

// PersistRemote uploads the report to the target bucket with assumed-role
// credentials and returns the object key
func (p *ReportPersister) PersistRemote(ctx context.Context, repo string, date time.Time, report *entities.SBOMReport, target services.RemoteTarget) (string, error) {
	if p.assumer == nil || p.store == nil {
		return "", fmt.Errorf("remote persistence is not configured")
	}
	if target.Bucket == "" {
		return "", fmt.Errorf("bucket is required")
	}
	if _, err := arn.Parse(target.RoleARN); err != nil {
		return "", fmt.Errorf("invalid role ARN %q: %w", target.RoleARN, err)
	}

	data, err := SerializeReport(report)
	if err != nil {
		return "", err
	}

	creds, err := p.assumer.AssumeRole(ctx, entities.RoleAssumption{
		RoleARN:     target.RoleARN,
		ExternalID:  target.ExternalID,
		SessionName: SessionNamePrefix + uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("role assumption failed: %w", err)
	}

	key := ObjectName(date, repo, data)
	if err := p.store.PutObject(ctx, creds, target.Bucket, key, data); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	if p.signer != nil {
		sig, err := p.signer.Sign(data)
		if err != nil {
			return "", err
		}
		if err := p.store.PutObject(ctx, creds, target.Bucket, key+SignatureSuffix, sig); err != nil {
			return "", fmt.Errorf("signature upload failed: %w", err)
		}
	}

	p.logger.Info("Report uploaded", interfaces.F("bucket", target.Bucket), interfaces.F("key", key))
	return key, nil
}
