package gateways

import (
	"fmt"

	"github.com/ochairo/sbom-snapshot/internal/external-adapters/gpg"
)

// gpgReportSigner wraps the external GPG adapter to implement the domain gateway interface
type gpgReportSigner struct {
	signer *gpg.Signer
}

// NewGPGReportSigner creates a report signer from an armored private key
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGReportSigner(armoredKey, passphrase string) (*gpgReportSigner, error) {
	signer, err := gpg.NewSigner(armoredKey, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to load report signing key: %w", err)
	}
	return &gpgReportSigner{signer: signer}, nil
}

// Sign returns an armored detached signature of data
func (g *gpgReportSigner) Sign(data []byte) ([]byte, error) {
	sig, err := g.signer.Sign(data)
	if err != nil {
		return nil, fmt.Errorf("report signing failed: %w", err)
	}
	return sig, nil
}

// KeyID returns the ID of the signing key
func (g *gpgReportSigner) KeyID() string {
	return g.signer.KeyID()
}
