package services

import (
	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces/services"
)

// reportCompressor implements CompressorService
type reportCompressor struct {
	logger interfaces.Logger
}

// NewReportCompressor creates a new report compressor
func NewReportCompressor(logger interfaces.Logger) services.CompressorService {
	return &reportCompressor{logger: interfaces.OrNoOp(logger)}
}

// Compress builds a fresh report with one package per component, in order.
// Missing optional fields become null, an empty input yields the placeholder package.
func (c *reportCompressor) Compress(
	repo string,
	metadata entities.RepositoryMetadata,
	languages entities.Languages,
	components []entities.Component,
) *entities.SBOMReport {
	report := &entities.SBOMReport{
		Repo: repo,
		Metadata: entities.ReportMetadata{
			Age:             metadata.AgeInMonths,
			CommitRate:      metadata.CommitRate,
			CreatedAt:       metadata.CreatedAt,
			FirstCommitDate: metadata.FirstCommitDate,
			LastCommitDate:  metadata.LastCommitDate,
		},
		Languages: languages.Clone(),
	}

	if len(components) == 0 {
		report.Packages = []entities.Package{entities.PlaceholderPackage()}
		return report
	}

	report.Packages = make([]entities.Package, 0, len(components))
	missingRefs := 0
	for _, component := range components {
		if component.BOMRef == nil {
			missingRefs++
		}
		report.Packages = append(report.Packages, entities.Package{
			Name:    component.Name,
			Type:    copyString(component.Type),
			Version: copyString(component.Version),
			BOMRef:  copyString(component.BOMRef),
		})
	}

	if missingRefs > 0 {
		c.logger.Warn("Components without bom-ref", interfaces.F("count", missingRefs))
	}

	return report
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
