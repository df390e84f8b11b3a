// Package stellar is the attestation collaborator: it supplies user
// keypairs and an opaque transaction reference anchoring each share.
// Whether that reference is cryptographically meaningful is outside the
// vault's contract; the vault only requires that obtaining it either
// succeeds or fails cleanly.
package stellar

import (
	"context"
	"strings"
)

// Account is a Stellar keypair. The secret key is stored with the user
// row and never leaves the system boundary in responses.
type Account struct {
	PublicKey string
	SecretKey string
}

// Client is what the vault and user services depend on. HorizonClient
// talks to a real Horizon server; MockClient runs offline.
type Client interface {
	// CreateAccount generates and funds a fresh keypair.
	CreateAccount(ctx context.Context) (*Account, error)

	// AttestShare records that the holder of sourceSecret shared
	// processID with supplierPublicKey, returning an opaque
	// transaction reference. Any failure must abort the share.
	AttestShare(ctx context.Context, sourceSecret, supplierPublicKey, processID string) (string, error)
}

// ShareMemo is the memo attached to share attestations.
func ShareMemo(processID string) string {
	return "NDA_SHARE:" + processID
}

// ValidPublicKey reports whether s has the shape of a Stellar ed25519
// public key (G..., 56 chars).
func ValidPublicKey(s string) bool {
	return len(s) == 56 && strings.HasPrefix(s, "G")
}

// ValidSecretKey reports whether s has the shape of a Stellar ed25519
// secret seed (S..., 56 chars).
func ValidSecretKey(s string) bool {
	return len(s) == 56 && strings.HasPrefix(s, "S")
}
