// Package chattoken bootstraps sessions against the external chat/video
// provider. The provider authenticates users with an HS256 token signed by
// the application's API secret and carrying the user id; issuing it here
// keeps the secret server-side.
package chattoken

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

type Issuer struct {
	apiKey    string
	apiSecret string
}

func NewIssuer(apiKey, apiSecret string) (*Issuer, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("chat api key and secret must be configured")
	}
	return &Issuer{apiKey: apiKey, apiSecret: apiSecret}, nil
}

// APIKey returns the public API key the client SDK needs alongside the token.
func (i *Issuer) APIKey() string { return i.apiKey }

// IssueToken creates a provider token for the given user id.
func (i *Issuer) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required to issue a chat token")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	signed, err := token.SignedString([]byte(i.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign chat token: %v", err)
	}
	return signed, nil
}

// VerifyToken checks a token issued by IssueToken and returns the user id.
// Used in tests and by the websocket relay's token auth.
func (i *Issuer) VerifyToken(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.apiSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid chat token")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", fmt.Errorf("chat token missing user id")
	}
	return userID, nil
}
