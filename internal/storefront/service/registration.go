package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go-storefront/internal/storefront/data"
)

type Registration struct {
	repository   UserRepository
	tokenFactory TokenFactory
}

func NewRegistration(repository UserRepository, tokenFactory TokenFactory) *Registration {
	return &Registration{
		repository:   repository,
		tokenFactory: tokenFactory,
	}
}

func (r *Registration) Register(ctx context.Context, login string, password string) (string, error) {
	userID, err := r.repository.InsertUser(ctx, login, hashPassword(password))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUniqueConstraintViolation):
			return "", ErrLoginTaken
		default:
			return "", fmt.Errorf("error inserting user: %w", err)
		}
	}

	token, err := r.tokenFactory.Generate(userID)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	return token, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
