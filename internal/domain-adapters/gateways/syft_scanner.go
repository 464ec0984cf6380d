package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ochairo/sbom-snapshot/internal/domain/entities"
	"github.com/ochairo/sbom-snapshot/internal/domain/interfaces"
)

// DefaultScannerBinary is the scanner executable looked up on PATH
const DefaultScannerBinary = "syft"

// SyftScanner produces CycloneDX reports by invoking the syft CLI
type SyftScanner struct {
	runner CommandRunner
	binary string
	logger interfaces.Logger
}

// NewSyftScanner creates a new scanner gateway
func NewSyftScanner(runner CommandRunner, logger interfaces.Logger) *SyftScanner {
	return &SyftScanner{
		runner: runner,
		binary: DefaultScannerBinary,
		logger: interfaces.OrNoOp(logger),
	}
}

// Scan runs `syft <source> -o cyclonedx-json -q` and decodes its output
func (s *SyftScanner) Scan(ctx context.Context, source string) (*entities.CycloneDXDocument, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("scan source cannot be empty")
	}

	s.logger.Info("Scanning", interfaces.F("source", source))

	result := s.runner.Run(ctx, ExecuteCommandConfig{
		Name:        s.binary,
		Args:        []string{source, "-o", "cyclonedx-json", "-q"},
		Description: "sbom scan",
	})

	if !result.Success {
		return nil, &entities.ScannerInvocationError{
			Source:   source,
			ExitCode: result.ExitCode,
			Stderr:   strings.TrimSpace(result.Stderr),
			Err:      result.Error,
		}
	}

	var doc entities.CycloneDXDocument
	if err := json.Unmarshal([]byte(result.Stdout), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode scanner output for %s: %w", source, err)
	}

	s.logger.Debug("Scan complete",
		interfaces.F("source", source),
		interfaces.F("components", len(doc.Components)),
		interfaces.F("duration", result.Duration))

	return &doc, nil
}
