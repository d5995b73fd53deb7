package ports

import "context"

// CredentialVerifier checks a username/password pair before a session is
// established. Session establishment and credential verification are split so
// a real verifier can be substituted without touching role-gating logic; the
// wired implementation accepts everything.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) error
}
