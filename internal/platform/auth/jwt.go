package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the platform role carried by an identity.
type Role string

const (
	RolePublic Role = "public"
	RoleVet    Role = "vet"
	RoleNGO    Role = "ngo"
	RoleAdmin  Role = "admin"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	switch r {
	case RolePublic, RoleVet, RoleNGO, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps an identity provider role string onto a Role. Unknown or
// empty roles fall back to public.
func ParseRole(s string) Role {
	r := Role(s)
	if !r.IsValid() {
		return RolePublic
	}
	return r
}

// Identity is the current user as asserted by the identity provider.
type Identity struct {
	UserID      uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
}

// Claims are the JWT claims issued by the identity provider.
type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid token")

// JWTManager validates (and, for development tooling, issues) access tokens.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
}

// NewJWTManager creates a JWTManager signing with HMAC-SHA256.
func NewJWTManager(secret, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer, accessTTL: accessTTL}
}

// Generate issues an access token for the identity.
func (m *JWTManager) Generate(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID.String(),
		Name:   id.DisplayName,
		Email:  id.Email,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the identity it carries.
func (m *JWTManager) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: bad user id", ErrInvalidToken)
	}

	return Identity{
		UserID:      userID,
		DisplayName: claims.Name,
		Email:       claims.Email,
		Role:        ParseRole(claims.Role),
	}, nil
}
