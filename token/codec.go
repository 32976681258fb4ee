package token

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// demoTokenLifetime is how long a demo-format token stays valid after issuance, in seconds.
const demoTokenLifetime = 86400

// Payload holds the claims decoded from a token string.
type Payload struct {
	Subject   string `json:"sub"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// IdentityMapper derives a role and display name from a demo-token user identifier.
// The server issues real claims for JWT tokens; this mapping only exists for the
// demo token shape and must not be treated as a trust boundary.
type IdentityMapper func(userID string) (role, username string)

// DefaultIdentityMapper is the mapping the demo backend uses: user "1" is the
// admin account, everyone else is a regular user.
func DefaultIdentityMapper(userID string) (string, string) {
	if userID == "1" {
		return "admin", "admin"
	}
	return "user", "user"
}

// Codec decodes token strings into claim payloads.
type Codec struct {
	mapper IdentityMapper
}

// NewCodec creates a Codec. A nil mapper falls back to DefaultIdentityMapper.
func NewCodec(mapper IdentityMapper) *Codec {
	if mapper == nil {
		mapper = DefaultIdentityMapper
	}
	return &Codec{mapper: mapper}
}

// Decode turns a token string into a Payload. It recognizes two shapes: the
// demo format "kind_userid_timestamp" and a compact JWT whose middle segment
// is base64url JSON. It returns nil for anything it cannot decode; it never
// panics or returns an error, so callers treat nil as "token is invalid".
func (c *Codec) Decode(raw string) *Payload {
	if raw == "" {
		return nil
	}
	if p := c.decodeDemo(raw); p != nil {
		return p
	}
	return decodeJWT(raw)
}

// decodeDemo parses the "kind_userid_timestamp" shape. Base64url JWT
// segments may contain underscores too, so anything with a dot is left for
// the JWT path.
func (c *Codec) decodeDemo(raw string) *Payload {
	if strings.Contains(raw, ".") {
		return nil
	}
	parts := strings.Split(raw, "_")
	if len(parts) != 3 {
		return nil
	}
	kind, userID, tsStr := parts[0], parts[1], parts[2]
	if kind == "" || userID == "" {
		return nil
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return nil
	}
	role, username := c.mapper(userID)
	return &Payload{
		Subject:   userID,
		Username:  username,
		Role:      role,
		IssuedAt:  ts,
		ExpiresAt: ts + demoTokenLifetime,
	}
}

// decodeJWT parses the three-segment dot-delimited shape without verifying
// the signature. The client has no signing key; validity is the server's
// concern and expiry is checked separately against the decoded claims.
func decodeJWT(raw string) *Payload {
	if strings.Count(raw, ".") != 2 {
		return nil
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		log.Debug().Err(err).Msg("Failed to parse token claims")
		return nil
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		// Some backends issue numeric subjects.
		if n, ok := claims["sub"].(float64); ok {
			sub = strconv.FormatInt(int64(n), 10)
		}
	}
	exp := numericClaim(claims, "exp")
	if sub == "" || exp == 0 {
		return nil
	}

	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)
	return &Payload{
		Subject:   sub,
		Username:  username,
		Role:      role,
		IssuedAt:  numericClaim(claims, "iat"),
		ExpiresAt: exp,
	}
}

func numericClaim(claims jwt.MapClaims, key string) int64 {
	switch v := claims[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	}
	return 0
}
