package session

import "context"

// NoopVerifier accepts any username/password pair. Session establishment is
// simulated: the console derives a role from the username and never talks to
// a credential backend. Swap this for a real ports.CredentialVerifier to add
// actual authentication without touching role gating.
type NoopVerifier struct{}

func (NoopVerifier) Verify(ctx context.Context, username, password string) error {
	return nil
}
