package domain

// Identity is the stable fact the identity provider vouches for. The engine
// never mutates it, only reads it or finds it absent.
type Identity struct {
	UserID string
	Email  string
}

type Credentials struct {
	Email    string
	Password string
}
