package ports

// TokenClaims is the verified identity assertion carried by a token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}
