package security

// TokenManager issues and validates the bearer tokens that authenticate API
// requests
type TokenManager interface {
	// Generate issues a signed token carrying the user's identity
	Generate(userID uint64) (string, error)
	// Validate checks a token's signature and expiry and returns the user id
	// it carries
	Validate(token string) (uint64, error)
}
