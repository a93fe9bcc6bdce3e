package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the device token payload. Site identifies the backend the
// session was opened against; the WordPress token itself stays server-side.
type Claims struct {
	Username string `json:"username"`
	Site     string `json:"site"`
	jwt.RegisteredClaims
}
