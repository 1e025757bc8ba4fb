package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/clubhouse/pkg/cryptox"
)

// KeyManager owns the signing keys of one process and the KeySet used to
// verify what they sign.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

type KeyManagerOptions struct {
	// Issuer is required; tokens with another iss are rejected.
	Issuer string

	// Audience values a token must contain one of. Empty disables the check.
	Audience []string

	// NumKeys defaults to 1 and is capped at 10.
	NumKeys int

	// KeyPEMs are PKCS8 Ed25519 keys to load instead of generating fresh ones.
	KeyPEMs [][]byte
}

// NewKeyManager loads opts.KeyPEMs, or generates ephemeral keys when none
// are given. Ephemeral keys live only in memory, so every token becomes
// invalid on restart.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	pems := opts.KeyPEMs
	if len(pems) == 0 {
		n := min(max(opts.NumKeys, 1), 10)
		for range n {
			p, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return nil, fmt.Errorf("jwtx: generate key: %w", err)
			}
			pems = append(pems, p)
		}
	}

	km := &KeyManager{KeySet: NewKeySet()}
	for i, p := range pems {
		kid, err := newKeyID()
		if err != nil {
			return nil, err
		}
		s, err := NewSignerEdDSA(kid, p)
		if err != nil {
			return nil, fmt.Errorf("jwtx: key %d: %w", i+1, err)
		}
		if err := km.AddSigner(s); err != nil {
			return nil, fmt.Errorf("jwtx: key %d: %w", i+1, err)
		}
	}

	km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer, opts.Audience)
	return km, nil
}

// Signer returns one of the active signers at random.
func (km *KeyManager) Signer() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	default:
		return km.signers[rand.IntN(len(km.signers))]
	}
}

// AddSigner makes s available for signing and its public key for verification.
func (km *KeyManager) AddSigner(s Signer) error {
	if s == nil {
		return fmt.Errorf("jwtx: signer cannot be nil")
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(s); err != nil {
		return err
	}
	km.signers = append(km.signers, s)
	return nil
}

func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

func newKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: key id: %w", err)
	}
	return "clubhouse-" + token, nil
}
