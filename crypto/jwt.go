package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"arenaserver/domain"
)

// nestedUser matches tokens that wrap the identity in a "user" object.
type nestedUser struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

// arenaClaims accepts both claim shapes issued over time: the nested
// {"user":{...}} form and the flat {"userId"/"id","role","username"} form.
// The nested form wins when both are present.
type arenaClaims struct {
	User     *nestedUser `json:"user,omitempty"`
	UserID   string      `json:"userId,omitempty"`
	FlatID   string      `json:"id,omitempty"`
	Role     string      `json:"role,omitempty"`
	Username string      `json:"username,omitempty"`
	jwt.RegisteredClaims
}

type JWTManager struct {
	secretKey []byte
}

func NewJWTManager(secretKey string) *JWTManager {
	return &JWTManager{secretKey: []byte(secretKey)}
}

// Generate signs a token in the nested claim shape. Only used by tests and
// tooling here; real tokens come from the account service.
func (m *JWTManager) Generate(user domain.User, ttl time.Duration) string {
	claims := arenaClaims{
		User: &nestedUser{ID: user.ID, Role: user.Role, Username: user.Username},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, _ := token.SignedString(m.secretKey)
	return signedToken
}

// Verify parses and validates a token and extracts the user identity.
func (m *JWTManager) Verify(tokenString string) (domain.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &arenaClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidSigningAlg
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.User{}, domain.ErrExpiredToken
		}
		return domain.User{}, domain.ErrCorruptedToken
	}

	claims, ok := token.Claims.(*arenaClaims)
	if !ok || !token.Valid {
		return domain.User{}, domain.ErrCorruptedToken
	}

	user := domain.User{
		ID:       claims.UserID,
		Role:     claims.Role,
		Username: claims.Username,
	}
	if user.ID == "" {
		user.ID = claims.FlatID
	}
	if claims.User != nil {
		if claims.User.ID != "" {
			user.ID = claims.User.ID
		}
		if claims.User.Role != "" {
			user.Role = claims.User.Role
		}
		if claims.User.Username != "" {
			user.Username = claims.User.Username
		}
	}

	if user.ID == "" {
		return domain.User{}, domain.ErrMissingSubject
	}
	if user.Role == "" {
		user.Role = "user"
	}
	return user, nil
}
