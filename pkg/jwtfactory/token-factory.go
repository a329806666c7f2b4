package jwtfactory

import (
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type TokenFactory struct {
	tokenAuth           *jwtauth.JWTAuth
	userIDClaimName     string
	tokenExpirationTime time.Duration
}

func New(tokenAuth *jwtauth.JWTAuth, userIDClaimName string, tokenExpirationTime time.Duration) *TokenFactory {
	return &TokenFactory{
		tokenAuth:           tokenAuth,
		userIDClaimName:     userIDClaimName,
		tokenExpirationTime: tokenExpirationTime,
	}
}

func (tf *TokenFactory) Generate(userID int) (string, error) {
	timeNow := time.Now()
	claims := map[string]any{
		tf.userIDClaimName: strconv.Itoa(userID),
		"exp":              timeNow.Add(tf.tokenExpirationTime).Unix(),
		"iat":              timeNow.Unix(),
	}
	_, tokenString, err := tf.tokenAuth.Encode(claims)
	return tokenString, err
}
