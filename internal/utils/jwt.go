package utils // package utils provides helper functions for session tokens and hashing

import (
    "errors" // sentinel for invalid/expired tokens
    "time"   // expiration arithmetic

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is returned by ParseAccessToken for any token that
// fails signature, expiry or claim-shape checks.  Callers do not need
// to distinguish why a token was bad, only that it was.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the payload carried inside a session token.  Tokens are
// self-contained: verifying one recovers the identity with no
// server-side session store involved.
type Identity struct {
    UserID   string // subject account id
    Username string // login name at issue time
    Role     string // role at issue time; re-login refreshes it after promotion
}

// NewAccessToken builds and signs an HS256 session token for a user.
// The claims embed userId, username and role plus the standard exp/iat
// pair; the token expires after the given TTL in hours (24 by
// default).
func NewAccessToken(secret string, id Identity, ttlHours int) (string, error) {
    now := time.Now().UTC()
    claims := jwt.MapClaims{
        "userId":   id.UserID,
        "username": id.Username,
        "role":     id.Role,
        "exp":      now.Add(time.Duration(ttlHours) * time.Hour).Unix(),
        "iat":      now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry and extracts the
// identity claims.  The signing method is pinned to HMAC so tokens
// signed with a different algorithm are rejected outright.
func ParseAccessToken(secret, raw string) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Identity{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrInvalidToken
    }
    id := Identity{}
    if v, ok := claims["userId"].(string); ok {
        id.UserID = v
    }
    if v, ok := claims["username"].(string); ok {
        id.Username = v
    }
    if v, ok := claims["role"].(string); ok {
        id.Role = v
    }
    if id.UserID == "" {
        return Identity{}, ErrInvalidToken
    }
    return id, nil
}
