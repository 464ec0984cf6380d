// Package gpg provides OpenPGP signing and verification of persisted reports.
package gpg

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces armored detached signatures using ProtonMail's go-crypto.
// This is in external-adapters to isolate the external dependency
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner creates a signer from an armored private key.
// The first key of the block carrying a private key is used.
func NewSigner(armoredKey, passphrase string) (*Signer, error) {
	if strings.TrimSpace(armoredKey) == "" {
		return nil, fmt.Errorf("signing key is empty")
	}

	keyring, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}

	var entity *openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			entity = e
			break
		}
	}
	if entity == nil {
		return nil, fmt.Errorf("no private key found in signing key")
	}

	if entity.PrivateKey.Encrypted {
		if passphrase == "" {
			return nil, fmt.Errorf("signing key is encrypted and no passphrase was given")
		}
		if err := entity.DecryptPrivateKeys([]byte(passphrase)); err != nil {
			return nil, fmt.Errorf("failed to decrypt signing key: %w", err)
		}
	}

	return &Signer{entity: entity}, nil
}

// NewSignerFromEntity wraps an already loaded entity
func NewSignerFromEntity(entity *openpgp.Entity) (*Signer, error) {
	if entity == nil || entity.PrivateKey == nil {
		return nil, errors.New("entity has no private key")
	}
	return &Signer{entity: entity}, nil
}

// Sign returns an armored detached signature of data
func (s *Signer) Sign(data []byte) ([]byte, error) {
	var sig bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&sig, s.entity, bytes.NewReader(data), nil); err != nil {
		return nil, fmt.Errorf("failed to sign report: %w", err)
	}
	return sig.Bytes(), nil
}

// KeyID returns the hex key ID of the signing key
func (s *Signer) KeyID() string {
	return s.entity.PrimaryKey.KeyIdString()
}
