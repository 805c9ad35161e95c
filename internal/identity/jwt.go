// Package identity issues and validates the bearer tokens that carry an
// invoker's MSP membership into the ledger.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/requestcontext"
)

// Claims are the JWT claims for an invoker token.
type Claims struct {
	MSPID string `json:"msp_id"`
	jwt.RegisteredClaims
}

// Invoker converts validated claims to the ledger-facing identity.
func (c *Claims) Invoker() requestcontext.Invoker {
	return requestcontext.Invoker{Subject: c.Subject, MSPID: c.MSPID}
}

// JWTService signs and validates HS256 invoker tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

func NewJWTService(signingKey, issuer string) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
}

// GenerateToken mints a token for subject as a member of mspID.
func (s *JWTService) GenerateToken(subject, mspID string, expiresIn time.Duration) (string, error) {
	if strings.TrimSpace(mspID) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "msp id is required")
	}
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		MSPID: mspID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.MSPID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token carries no msp id")
	}
	return claims, nil
}
