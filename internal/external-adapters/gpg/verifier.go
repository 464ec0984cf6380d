package gpg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks detached signatures against an armored keyring
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier from armored public (or private) keys
func NewVerifier(armoredKeys io.Reader) (*Verifier, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(armoredKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	if len(keyring) == 0 {
		return nil, fmt.Errorf("no keys found")
	}
	return &Verifier{keyring: keyring}, nil
}

// NewVerifierFromFile loads the keyring from a file
func NewVerifierFromFile(keyPath string) (*Verifier, error) {
	//nolint:gosec // G304: Key path is provided by the operator
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	return NewVerifier(f)
}

// Verify checks an armored detached signature of data and returns the signer key ID
func (v *Verifier) Verify(data, signature []byte) (string, error) {
	signer, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}
	return signer.PrimaryKey.KeyIdString(), nil
}

// VerifyFiles verifies sigPath as a detached signature of filePath
func (v *Verifier) VerifyFiles(filePath, sigPath string) (string, error) {
	//nolint:gosec // G304: Paths are provided by the operator
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	//nolint:gosec // G304: Paths are provided by the operator
	sig, err := os.ReadFile(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}
	return v.Verify(data, sig)
}

// KeyringSize returns the number of keys loaded
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}
