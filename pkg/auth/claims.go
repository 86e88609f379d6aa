package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/warmpaws/warmpaws-backend/pkg/enums"
)

// Claims is the access token payload. Subject carries the user id.
type Claims struct {
	Role enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}
