package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GameClaims ties a token to the single game it was issued for.
type GameClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
	now           func() time.Time
}

func NewTokens(secret string, lifetime time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	t := &Tokens{
		secret:        []byte(secret),
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
		now:           time.Now,
	}
	return t, nil
}

func (t *Tokens) Sign(gameID string) (string, error) {
	now := t.now()
	claims := &GameClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(t.signingMethod, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*GameClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&GameClaims{},
		func(*jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.signingMethod.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*GameClaims)
	if !ok || claims.GameID == "" {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
