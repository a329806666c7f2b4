package service

import (
	"context"
	"errors"
	"fmt"

	"go-storefront/internal/storefront/data"
)

type Login struct {
	repository   UserRepository
	tokenFactory TokenFactory
}

func NewLogin(repository UserRepository, tokenFactory TokenFactory) *Login {
	return &Login{
		repository:   repository,
		tokenFactory: tokenFactory,
	}
}

func (l *Login) Login(ctx context.Context, login string, password string) (string, error) {
	userID, err := l.repository.ValidateUser(ctx, login, hashPassword(password))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrInvalidLogin):
			return "", ErrInvalidCredentials
		case errors.Is(err, data.ErrInvalidPassword):
			return "", ErrInvalidCredentials
		default:
			return "", fmt.Errorf("error validating user: %w", err)
		}
	}

	token, err := l.tokenFactory.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}
