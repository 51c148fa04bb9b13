// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec verifies and issues the RS256 tokens that grant edit access.
//
// The API server only holds the public key and never mints tokens. Tokens
// are issued offline by the stamtavla CLI, which holds the private key.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EditorClaims is the payload of a Stamtavla access token.
type EditorClaims struct {
	jwt.RegisteredClaims

	// Role is abbreviated to keep the token small.
	Role string `json:"rol"`
}

// UserRole returns the role claim as a [UserRole].
func (claims *EditorClaims) UserRole() UserRole {
	return UserRole(claims.Role)
}

// # Verification

// TokenVerifier checks RS256 signatures with a public key.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewTokenVerifier creates a verifier for tokens from issuer.
func NewTokenVerifier(publicKey *rsa.PublicKey, issuer string) *TokenVerifier {
	return &TokenVerifier{publicKey: publicKey, issuer: issuer}
}

// LoadTokenVerifier reads a PEM public key from disk.
func LoadTokenVerifier(publicKeyPath, issuer string) (*TokenVerifier, error) {
	data, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenVerifier(publicKey, issuer), nil
}

// VerifyToken checks the signature, expiry and issuer of a token string.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*EditorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EditorClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*EditorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	return claims, nil
}

// # Issuing

// TokenIssuer signs tokens with a private key.
type TokenIssuer struct {
	privateKey *rsa.PrivateKey
	issuer     string
	now        func() time.Time
}

// NewTokenIssuer creates an issuer signing as issuer.
func NewTokenIssuer(privateKey *rsa.PrivateKey, issuer string) *TokenIssuer {
	return &TokenIssuer{privateKey: privateKey, issuer: issuer, now: time.Now}
}

// LoadTokenIssuer reads a PEM private key from disk.
func LoadTokenIssuer(privateKeyPath, issuer string) (*TokenIssuer, error) {
	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(data)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	return NewTokenIssuer(privateKey, issuer), nil
}

// Issue signs a token for subject with role, valid for timeToLive.
func (issuer *TokenIssuer) Issue(subject string, role UserRole, timeToLive time.Duration) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("sec: unknown role %q", role)
	}

	currentTime := issuer.now()
	claims := EditorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Role: string(role),
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(issuer.privateKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}
