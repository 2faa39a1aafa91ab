package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PurposeVerifyEmail marks tokens that may only be used to verify an address.
const PurposeVerifyEmail = "verify_email"

var errWrongPurpose = errors.New("token purpose mismatch")

// VerificationTokens issues HS256 tokens binding an email address to a purpose.
type VerificationTokens struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewVerificationTokens(secret, issuer string, ttl time.Duration) *VerificationTokens {
	return &VerificationTokens{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Claims carries the standard claims plus the token purpose.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// Issue signs a token whose subject is the lower-cased address.
func (g *VerificationTokens) Issue(email string) (string, error) {
	now := g.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   strings.ToLower(email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Purpose: PurposeVerifyEmail,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Parse validates signature, issuer, expiry and purpose, and returns the address.
func (g *VerificationTokens) Parse(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	}
	if g.issuer != "" {
		opts = append(opts, jwt.WithIssuer(g.issuer))
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	}, opts...)
	if err != nil {
		return "", err
	}
	if claims.Purpose != PurposeVerifyEmail {
		return "", errWrongPurpose
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return claims.Subject, nil
}
