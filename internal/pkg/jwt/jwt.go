package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

const issuer = "bolisetti-backend"

// CitizenClaims are the claims carried by a citizen bearer token
type CitizenClaims struct {
	UserID      string `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
	jwt.RegisteredClaims
}

// AdminClaims are the claims carried by an admin bearer token.
// UserType is the discriminant keeping the two principal kinds apart.
type AdminClaims struct {
	AdminID  string `json:"adminId"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	jwt.RegisteredClaims
}

// GenerateCitizenToken mints a citizen token valid for expiryDays
func GenerateCitizenToken(userID, phoneNumber, secret, algorithm string, expiryDays int) (string, error) {
	claims := CitizenClaims{
		UserID:      userID,
		PhoneNumber: phoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryDays) * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   userID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(signingMethod(algorithm), claims)
	return token.SignedString([]byte(secret))
}

// GenerateAdminToken mints an admin token valid for expiryHours
func GenerateAdminToken(adminID, email, secret, algorithm string, expiryHours int) (string, error) {
	claims := AdminClaims{
		AdminID:  adminID,
		Email:    email,
		UserType: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   adminID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(signingMethod(algorithm), claims)
	return token.SignedString([]byte(secret))
}

// ValidateCitizenToken validates a citizen token and returns its claims.
// Both identity claims must be present; an admin token never passes.
func ValidateCitizenToken(tokenString, secret string) (*CitizenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CitizenClaims{}, keyFunc(secret))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*CitizenClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == "" || claims.PhoneNumber == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateAdminToken validates an admin token and returns its claims.
// Requires the admin discriminant; a citizen token never passes.
func ValidateAdminToken(tokenString, secret string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, keyFunc(secret))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.AdminID == "" || claims.UserType != "admin" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// keyFunc returns the shared secret after checking the signing method family
func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}
}

// signingMethod maps a configured algorithm name to a method; one fixed
// HMAC algorithm per deployment, HS256 unless configured otherwise
func signingMethod(algorithm string) jwt.SigningMethod {
	switch algorithm {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}
