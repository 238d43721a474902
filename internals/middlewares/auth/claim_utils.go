package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	var exp time.Time
	switch v := expRaw.(type) {
	case float64:
		exp = time.Unix(int64(v), 0)
	case int64:
		exp = time.Unix(v, 0)
	default:
		return errors.New("invalid exp claim")
	}
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["sub"].(string)
	if !ok || raw == "" {
		if alt, ok2 := claims["user_id"].(string); ok2 {
			raw = alt
		}
	}
	if raw == "" {
		return uuid.Nil, errors.New("missing user id claim")
	}
	return uuid.Parse(raw)
}

func extractRoles(claims jwt.MapClaims) []string {
	out := []string{}
	switch v := claims["roles"].(type) {
	case []interface{}:
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		if v != "" {
			out = append(out, v)
		}
	}
	// legacy single-role claim
	if s, ok := claims["role"].(string); ok && s != "" {
		out = append(out, s)
	}
	return out
}
