package auth

// Sealer protects the bearer token while it sits in the preference store.
type Sealer interface {
	Seal(token string) (string, error)
	Open(sealed string) (string, error)
	Name() string
}
