package application

import (
	"context"
	"strings"
)

// Authenticator is the policy deciding whether an admin login attempt is
// accepted. It is injected so the trivial demo policy can later be swapped for
// a real one without touching the admin workflow.
type Authenticator interface {
	Authenticate(ctx context.Context, name, email, password string) error
}

// AcceptAllPolicy accepts any non-empty name/email/password triple. This is
// the dashboard's original demonstration gate, not a security mechanism.
type AcceptAllPolicy struct{}

// Authenticate implements Authenticator.
func (AcceptAllPolicy) Authenticate(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// CredentialPolicy verifies passwords against a fixed table of argon2id
// hashes keyed by lowercased email.
type CredentialPolicy struct {
	hashes map[string]string
}

// NewCredentialPolicy builds a policy from an email to password-hash table.
func NewCredentialPolicy(hashes map[string]string) *CredentialPolicy {
	normalized := make(map[string]string, len(hashes))
	for email, hash := range hashes {
		normalized[strings.ToLower(strings.TrimSpace(email))] = hash
	}
	return &CredentialPolicy{hashes: normalized}
}

// Authenticate implements Authenticator.
func (p *CredentialPolicy) Authenticate(ctx context.Context, name, email, password string) error {
	if p == nil || strings.TrimSpace(name) == "" {
		return ErrInvalidCredentials
	}

	hash, ok := p.hashes[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return ErrInvalidCredentials
	}
	return VerifyPassword(hash, password)
}
