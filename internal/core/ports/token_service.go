package ports

// TokenService issues and checks signed bearer tokens.
type TokenService interface {
	// Generate returns a signed, time-limited token for the given subject.
	Generate(subject string) (string, error)
	// Subject parses and signature-verifies a token and returns its subject
	// claim. Malformed, tampered, or expired tokens yield an error.
	Subject(token string) (string, error)
	// Validate reports whether a token is well-formed, correctly signed, and
	// not yet expired. Every failure mode collapses to false.
	Validate(token string) bool
}
