package gateways

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/opencontainers/go-digest"
)

// reportNamePattern matches {YYYY-MM-DD}-{repo}-{hash}.json
var reportNamePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-.+-([0-9a-f]{16})\.json$`)

// reportChecksumVerifier checks persisted reports against the hash in their name
type reportChecksumVerifier struct{}

// NewReportChecksumVerifier creates a new report checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewReportChecksumVerifier() *reportChecksumVerifier {
	return &reportChecksumVerifier{}
}

// CalculateChecksum calculates the SHA256 digest of a file
func (v *reportChecksumVerifier) CalculateChecksum(filePath string) (digest.Digest, error) {
	//nolint:gosec // G304: File path is user-provided for checksum calculation
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	digester := digest.SHA256.Digester()
	if _, err := io.Copy(digester.Hash(), f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return digester.Digest(), nil
}

// VerifyReportName checks that the hash embedded in the report file name is the
// prefix of the file's SHA256 digest
func (v *reportChecksumVerifier) VerifyReportName(filePath string) error {
	match := reportNamePattern.FindStringSubmatch(filepath.Base(filePath))
	if match == nil {
		return fmt.Errorf("not a report file name: %s", filepath.Base(filePath))
	}
	expected := match[1]

	actual, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actual.Encoded()[:len(expected)] != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual.Encoded()[:len(expected)])
	}

	return nil
}
