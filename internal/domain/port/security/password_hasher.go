package security

// PasswordHasher hides the password hashing scheme from the domain layer
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
